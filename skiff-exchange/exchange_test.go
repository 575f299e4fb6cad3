package skiff_exchange_test

import (
	"testing"

	"github.com/jacksonzamorano/skiff/skiff-exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestMessage struct {
	Message string `json:"message"`
}

func TestEndToEnd(t *testing.T) {
	value := TestMessage{Message: "Hello, world!"}
	encrypted, err := skiff_exchange.EncodeJson(value)
	require.NoError(t, err)
	decrypted, err := skiff_exchange.DecodeJson[TestMessage](encrypted)
	require.NoError(t, err)
	assert.Equal(t, value.Message, decrypted.Message)
}

func TestTokensAreUnique(t *testing.T) {
	value := TestMessage{Message: "same payload"}
	first, err := skiff_exchange.EncodeJson(value)
	require.NoError(t, err)
	second, err := skiff_exchange.EncodeJson(value)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := skiff_exchange.DecodeJson[TestMessage]("not hex")
	assert.ErrorIs(t, err, skiff_exchange.ErrBadToken)

	_, err = skiff_exchange.DecodeJson[TestMessage]("abcd")
	assert.ErrorIs(t, err, skiff_exchange.ErrBadToken)
}

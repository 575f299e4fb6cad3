// Package skiff_exchange provides stateless authentication tokens through
// AES encryption. Session data is encrypted into an opaque hex token that
// can be handed to clients (typically inside a Set-Cookie response) and
// verified when it comes back, with no server-side session storage.
//
// Tokens are AES-CBC encrypted with a random IV per call, carry the low
// byte of the original content size to bound unpadding, and are
// hex-encoded for safe transport. The key comes from the SIGNING_KEY
// environment variable; the built-in fallback key exists for local
// development only. A 32-byte key gives AES-256. The key length is not
// checked beyond what AES accepts, so a 16- or 24-byte key is used as
// AES-128 or AES-192.
package skiff_exchange

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/labstack/gommon/log"
)

var logger = log.New("skiff-exchange")

// Token decoding errors.
var (
	ErrBadToken = errors.New("token is malformed or truncated")
	ErrBadKey   = errors.New("signing key must be 16, 24 or 32 bytes")
)

// getSecret retrieves the encryption key from the SIGNING_KEY environment
// variable. The default key is for development only; never serve with it.
func getSecret() string {
	key, exists := os.LookupEnv("SIGNING_KEY")
	if exists {
		return key
	}
	logger.Warn("no signing key found, using default. DO NOT USE IN PRODUCTION.")
	return "SOME_RANDOM_KEY_SOME_RANDOM_KEY_"
}

// EncodeJson marshals data to JSON, encrypts it, and returns the hex
// token. Each call generates a fresh IV, so equal payloads produce
// different tokens.
func EncodeJson(data interface{}) (string, error) {
	contents, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	contentSize := len(contents)
	block, err := aes.NewCipher([]byte(getSecret()))
	if err != nil {
		return "", ErrBadKey
	}
	for len(contents)%aes.BlockSize != 0 {
		contents = append(contents, 0)
	}
	encrypted := make([]byte, aes.BlockSize+len(contents))
	if _, err := io.ReadFull(rand.Reader, encrypted[:aes.BlockSize]); err != nil {
		return "", err
	}
	mode := cipher.NewCBCEncrypter(block, encrypted[:aes.BlockSize])
	mode.CryptBlocks(encrypted[aes.BlockSize:], contents)
	encrypted = append(encrypted, byte(contentSize))
	return hex.EncodeToString(encrypted), nil
}

// DecodeJson reverses EncodeJson into a value of type Data. It returns
// ErrBadToken for bad hex, a token of the wrong length, or decrypted bytes
// that do not unmarshal into Data, and ErrBadKey for a key AES rejects.
// Tokens carry no authentication tag: a wrong key or altered bytes are
// caught only when the decrypted bytes fail to unmarshal, and JSON fields
// that Data does not declare are ignored.
func DecodeJson[Data any](contents string) (*Data, error) {
	encrypted, err := hex.DecodeString(contents)
	if err != nil {
		return nil, ErrBadToken
	}
	if len(encrypted) < aes.BlockSize+aes.BlockSize+1 {
		return nil, ErrBadToken
	}
	messageEnd := len(encrypted) - 1
	contentSize := int(encrypted[messageEnd])
	block, err := aes.NewCipher([]byte(getSecret()))
	if err != nil {
		return nil, ErrBadKey
	}
	decrypted := make([]byte, len(encrypted)-aes.BlockSize-1)
	// The trailing byte holds the size modulo 256; padding is shorter than
	// a block, so the real size is the largest match not past the end.
	for contentSize+256 <= len(decrypted) {
		contentSize += 256
	}
	if len(decrypted)%aes.BlockSize != 0 || contentSize > len(decrypted) {
		return nil, ErrBadToken
	}
	decrypter := cipher.NewCBCDecrypter(block, encrypted[:aes.BlockSize])
	decrypter.CryptBlocks(decrypted, encrypted[aes.BlockSize:messageEnd])
	var decoded Data
	if err := json.Unmarshal(decrypted[:contentSize], &decoded); err != nil {
		return nil, ErrBadToken
	}
	return &decoded, nil
}

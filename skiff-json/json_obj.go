package skiff_json

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// JsonObject slices a JSON object into raw per-key value bytes, decoded
// lazily by the typed getters. No reflection, no intermediate tree.
type JsonObject struct {
	data map[string][]byte
}

func NewJsonObject() *JsonObject {
	return &JsonObject{
		data: make(map[string][]byte),
	}
}

func (o *JsonObject) Parse(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	i := skipSpace(data, 0)
	if i >= len(data) || data[i] != '{' {
		return errors.New("expected object")
	}
	i++
	for i < len(data) {
		i = skipSpace(data, i)
		if i >= len(data) || data[i] == '}' {
			break
		}
		if data[i] == ',' {
			i++
			continue
		}
		if data[i] != '"' {
			return errors.New("expected key")
		}
		i++
		keyStart := i
		for i < len(data) && data[i] != '"' {
			i++
		}
		if i >= len(data) {
			return errors.New("unterminated key")
		}
		key := string(data[keyStart:i])
		i++
		i = skipSpace(data, i)
		if i >= len(data) || data[i] != ':' {
			return errors.New("expected value")
		}
		i = skipSpace(data, i+1)
		end := scanValue(data, i)
		o.data[key] = trimSpaceBytes(data[i:end])
		i = end
	}
	return nil
}

func (o *JsonObject) GetString(key string) (*string, *JsonFieldError) {
	val, ok := o.data[key]
	if !ok {
		return nil, NoFieldError(key)
	}
	inner, ok := unquote(val)
	if !ok {
		return nil, InvalidFieldError(key, "string")
	}
	str := string(inner)
	return &str, nil
}

func (o *JsonObject) GetInt32(key string) (*int32, *JsonFieldError) {
	val, ok := o.data[key]
	if !ok {
		return nil, NoFieldError(key)
	}
	i, err := strconv.ParseInt(string(val), 10, 32)
	if err != nil {
		return nil, InvalidFieldError(key, "int32")
	}
	sized := int32(i)
	return &sized, nil
}

func (o *JsonObject) GetInt64(key string) (*int64, *JsonFieldError) {
	val, ok := o.data[key]
	if !ok {
		return nil, NoFieldError(key)
	}
	i, err := strconv.ParseInt(string(val), 10, 64)
	if err != nil {
		return nil, InvalidFieldError(key, "int64")
	}
	return &i, nil
}

func (o *JsonObject) GetFloat32(key string) (*float32, *JsonFieldError) {
	val, ok := o.data[key]
	if !ok {
		return nil, NoFieldError(key)
	}
	f, err := strconv.ParseFloat(string(val), 32)
	if err != nil {
		return nil, InvalidFieldError(key, "float32")
	}
	sized := float32(f)
	return &sized, nil
}

func (o *JsonObject) GetFloat64(key string) (*float64, *JsonFieldError) {
	val, ok := o.data[key]
	if !ok {
		return nil, NoFieldError(key)
	}
	f, err := strconv.ParseFloat(string(val), 64)
	if err != nil {
		return nil, InvalidFieldError(key, "float64")
	}
	return &f, nil
}

func (o *JsonObject) GetBool(key string) (*bool, *JsonFieldError) {
	val, ok := o.data[key]
	if !ok {
		return nil, NoFieldError(key)
	}
	b, err := strconv.ParseBool(string(val))
	if err != nil {
		return nil, InvalidFieldError(key, "bool")
	}
	return &b, nil
}

func (o *JsonObject) GetObject(key string) (*JsonObject, *JsonFieldError) {
	val, ok := o.data[key]
	if !ok {
		return nil, NoFieldError(key)
	}
	obj := NewJsonObject()
	if err := obj.Parse(val); err != nil {
		return nil, CouldNotParseError(key)
	}
	return obj, nil
}

func (o *JsonObject) GetArray(key string) (*JsonArray, *JsonFieldError) {
	val, ok := o.data[key]
	if !ok {
		return nil, NoFieldError(key)
	}
	arr := NewJsonArray()
	if err := arr.Parse(val); err != nil {
		return nil, CouldNotParseError(key)
	}
	return arr, nil
}

// GetData returns the raw bytes of the value, quotes and all.
func (o *JsonObject) GetData(key string) (*[]byte, *JsonFieldError) {
	val, ok := o.data[key]
	if !ok {
		return nil, NoFieldError(key)
	}
	return &val, nil
}

func (o *JsonObject) GetTime(key string) (*time.Time, *JsonFieldError) {
	val, ok := o.data[key]
	if !ok {
		return nil, NoFieldError(key)
	}
	inner, ok := unquote(val)
	if !ok {
		return nil, CouldNotParseError(key)
	}
	t, err := time.Parse(time.RFC3339, string(inner))
	if err != nil {
		return nil, CouldNotParseError(key)
	}
	return &t, nil
}

func (o *JsonObject) GetUuid(key string) (*uuid.UUID, *JsonFieldError) {
	val, ok := o.data[key]
	if !ok {
		return nil, NoFieldError(key)
	}
	inner, ok := unquote(val)
	if !ok {
		return nil, InvalidFieldError(key, "uuid")
	}
	id, err := uuid.ParseBytes(inner)
	if err != nil {
		return nil, InvalidFieldError(key, "uuid")
	}
	return &id, nil
}

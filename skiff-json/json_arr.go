package skiff_json

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// JsonArray slices a JSON array into raw per-index value bytes.
type JsonArray struct {
	data [][]byte
}

func NewJsonArray() *JsonArray {
	return &JsonArray{
		data: make([][]byte, 0),
	}
}

func (a *JsonArray) Parse(data []byte) error {
	i := skipSpace(data, 0)
	if i >= len(data) || data[i] != '[' {
		return errors.New("expected array")
	}
	i++
	for i < len(data) {
		i = skipSpace(data, i)
		if i >= len(data) || data[i] == ']' {
			break
		}
		if data[i] == ',' {
			i++
			continue
		}
		end := scanValue(data, i)
		a.data = append(a.data, trimSpaceBytes(data[i:end]))
		i = end
	}
	return nil
}

// Count returns the number of elements.
func (a *JsonArray) Count() int {
	return len(a.data)
}

func (a *JsonArray) at(index int) ([]byte, *JsonFieldError) {
	if index < 0 || index >= len(a.data) {
		return nil, NoFieldError(strconv.Itoa(index))
	}
	return a.data[index], nil
}

func (a *JsonArray) GetString(index int) (*string, *JsonFieldError) {
	val, ferr := a.at(index)
	if ferr != nil {
		return nil, ferr
	}
	inner, ok := unquote(val)
	if !ok {
		return nil, InvalidFieldError(strconv.Itoa(index), "string")
	}
	str := string(inner)
	return &str, nil
}

func (a *JsonArray) GetInt32(index int) (*int32, *JsonFieldError) {
	val, ferr := a.at(index)
	if ferr != nil {
		return nil, ferr
	}
	i, err := strconv.ParseInt(string(val), 10, 32)
	if err != nil {
		return nil, InvalidFieldError(strconv.Itoa(index), "int32")
	}
	sized := int32(i)
	return &sized, nil
}

func (a *JsonArray) GetInt64(index int) (*int64, *JsonFieldError) {
	val, ferr := a.at(index)
	if ferr != nil {
		return nil, ferr
	}
	i, err := strconv.ParseInt(string(val), 10, 64)
	if err != nil {
		return nil, InvalidFieldError(strconv.Itoa(index), "int64")
	}
	return &i, nil
}

func (a *JsonArray) GetFloat32(index int) (*float32, *JsonFieldError) {
	val, ferr := a.at(index)
	if ferr != nil {
		return nil, ferr
	}
	f, err := strconv.ParseFloat(string(val), 32)
	if err != nil {
		return nil, InvalidFieldError(strconv.Itoa(index), "float32")
	}
	sized := float32(f)
	return &sized, nil
}

func (a *JsonArray) GetFloat64(index int) (*float64, *JsonFieldError) {
	val, ferr := a.at(index)
	if ferr != nil {
		return nil, ferr
	}
	f, err := strconv.ParseFloat(string(val), 64)
	if err != nil {
		return nil, InvalidFieldError(strconv.Itoa(index), "float64")
	}
	return &f, nil
}

func (a *JsonArray) GetBool(index int) (*bool, *JsonFieldError) {
	val, ferr := a.at(index)
	if ferr != nil {
		return nil, ferr
	}
	b, err := strconv.ParseBool(string(val))
	if err != nil {
		return nil, InvalidFieldError(strconv.Itoa(index), "bool")
	}
	return &b, nil
}

func (a *JsonArray) GetObject(index int) (*JsonObject, *JsonFieldError) {
	val, ferr := a.at(index)
	if ferr != nil {
		return nil, ferr
	}
	obj := NewJsonObject()
	if err := obj.Parse(val); err != nil {
		return nil, CouldNotParseError(strconv.Itoa(index))
	}
	return obj, nil
}

func (a *JsonArray) GetArray(index int) (*JsonArray, *JsonFieldError) {
	val, ferr := a.at(index)
	if ferr != nil {
		return nil, ferr
	}
	arr := NewJsonArray()
	if err := arr.Parse(val); err != nil {
		return nil, CouldNotParseError(strconv.Itoa(index))
	}
	return arr, nil
}

func (a *JsonArray) GetTime(index int) (*time.Time, *JsonFieldError) {
	val, ferr := a.at(index)
	if ferr != nil {
		return nil, ferr
	}
	inner, ok := unquote(val)
	if !ok {
		return nil, CouldNotParseError(strconv.Itoa(index))
	}
	t, err := time.Parse(time.RFC3339, string(inner))
	if err != nil {
		return nil, CouldNotParseError(strconv.Itoa(index))
	}
	return &t, nil
}

func (a *JsonArray) GetUuid(index int) (*uuid.UUID, *JsonFieldError) {
	val, ferr := a.at(index)
	if ferr != nil {
		return nil, ferr
	}
	inner, ok := unquote(val)
	if !ok {
		return nil, InvalidFieldError(strconv.Itoa(index), "uuid")
	}
	id, err := uuid.ParseBytes(inner)
	if err != nil {
		return nil, InvalidFieldError(strconv.Itoa(index), "uuid")
	}
	return &id, nil
}

//go:build jsoniter

package skiff_http

import (
	jsoniter "github.com/json-iterator/go"
)

var (
	jnt           = jsoniter.ConfigCompatibleWithStandardLibrary
	jsonMarshal   = jnt.Marshal
	jsonUnmarshal = jnt.Unmarshal
)

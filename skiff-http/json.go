//go:build !jsoniter

package skiff_http

import (
	j "encoding/json"
)

var (
	jsonMarshal   = j.Marshal
	jsonUnmarshal = j.Unmarshal
)

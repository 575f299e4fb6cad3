package skiff_http

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// IntoResp is the capability of producing a complete HTTP/1.1 response
// message: status line, headers, blank line, body.
type IntoResp interface {
	IntoResponse() []byte
}

// encodeResponse assembles the wire form shared by every encodable shape.
// Content-Length always equals the exact byte length of the body; the
// extra header lines are emitted in the order given, each CRLF-terminated.
func encodeResponse(status StatusCode, headerLines []string, body []byte) []byte {
	var b strings.Builder
	b.WriteString("HTTP/1.1 ")
	b.WriteString(strconv.Itoa(int(status)))
	b.WriteString(" ")
	b.WriteString(status.Reason())
	b.WriteString("\r\nContent-Length: ")
	b.WriteString(strconv.Itoa(len(body)))
	b.WriteString("\r\n")
	for _, line := range headerLines {
		b.WriteString(line)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	out := make([]byte, 0, b.Len()+len(body))
	out = append(out, b.String()...)
	out = append(out, body...)
	return out
}

// A bare status code encodes to a response with an empty body.
func (c StatusCode) IntoResponse() []byte {
	return encodeResponse(c, nil, nil)
}

// TextResponse is a status code with a plain string body.
type TextResponse struct {
	Status StatusCode
	Body   string
}

func (r TextResponse) IntoResponse() []byte {
	return encodeResponse(r.Status, nil, []byte(r.Body))
}

// BytesResponse is a status code with a raw byte body.
type BytesResponse struct {
	Status StatusCode
	Body   []byte
}

func (r BytesResponse) IntoResponse() []byte {
	return encodeResponse(r.Status, nil, r.Body)
}

// Html wraps a string body served as text/html with status 200.
type Html string

func (h Html) IntoResponse() []byte {
	return encodeResponse(StatusOK, []string{"Content-Type: text/html"}, []byte(h))
}

// Json serializes an arbitrary value as application/json with status 200.
// A value that fails to serialize turns into a 500 instead.
type Json struct {
	Value any
}

func (j Json) IntoResponse() []byte {
	body, err := jsonMarshal(j.Value)
	if err != nil {
		return StatusInternalServerError.IntoResponse()
	}
	return encodeResponse(StatusOK, []string{"Content-Type: application/json"}, body)
}

// Redirect answers 302 with a Location header pointing at the target.
type Redirect string

func (r Redirect) IntoResponse() []byte {
	return encodeResponse(StatusFound, []string{"Location:" + string(r)}, nil)
}

// SameSite is the SameSite cookie attribute.
type SameSite string

const (
	SameSiteStrict SameSite = "Strict"
	SameSiteLax    SameSite = "Lax"
	SameSiteNone   SameSite = "None"
)

// Cookie carries the fields formatted into a Set-Cookie header value.
// Zero-valued optional fields are omitted.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	SameSite SameSite
	Expires  time.Time
	MaxAge   int
	Secure   bool
	HttpOnly bool
	Path     string
}

func NewCookie(name string, value string) Cookie {
	return Cookie{Name: name, Value: value, Secure: true, HttpOnly: true}
}

// Header formats the cookie as a Set-Cookie header value.
func (c Cookie) Header() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString("=")
	b.WriteString(c.Value)
	if c.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}
	if c.SameSite != "" {
		b.WriteString("; SameSite=")
		b.WriteString(string(c.SameSite))
	}
	if !c.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(c.Expires.UTC().Format(time.RFC1123))
	}
	if c.MaxAge > 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(c.MaxAge))
	}
	if c.Secure {
		b.WriteString("; Secure")
	}
	if c.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	if c.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}
	return b.String()
}

// CookieResponse is a status and string body carrying one Set-Cookie
// header.
type CookieResponse struct {
	Status StatusCode
	Cookie Cookie
	Body   string
}

func (r CookieResponse) IntoResponse() []byte {
	return encodeResponse(r.Status, []string{"Set-Cookie: " + r.Cookie.Header()}, []byte(r.Body))
}

// HttpResponse is the general status-headers-body shape, for handlers
// that build responses imperatively.
type HttpResponse struct {
	StatusCode StatusCode
	Headers    map[string]string
	Body       []byte
}

func NewHttpResponse() *HttpResponse {
	return &HttpResponse{
		StatusCode: StatusOK,
		Headers:    make(map[string]string),
		Body:       []byte{},
	}
}

// StringResponse answers 200 with a text/plain body.
func StringResponse(body string) *HttpResponse {
	res := NewHttpResponse()
	res.Headers["Content-Type"] = "text/plain"
	res.Body = []byte(body)
	return res
}

// JsonResponse answers 200 with the value serialized as JSON. Marshal
// failure is remembered and surfaces as a 500 at encode time.
func JsonResponse(body any) *HttpResponse {
	res := NewHttpResponse()
	encoded, err := jsonMarshal(body)
	if err != nil {
		res.StatusCode = StatusInternalServerError
		return res
	}
	res.Headers["Content-Type"] = "application/json"
	res.Body = encoded
	return res
}

// ErrorMessageResponse answers 500 with a terse string body.
func ErrorMessageResponse(message string) *HttpResponse {
	res := NewHttpResponse()
	res.StatusCode = StatusInternalServerError
	res.Body = []byte(message)
	return res
}

// NotFoundResponse answers 404 with a terse string body.
func NotFoundResponse(message string) *HttpResponse {
	res := NewHttpResponse()
	res.StatusCode = StatusNotFound
	res.Body = []byte(message)
	return res
}

func (r *HttpResponse) SetHeader(key string, value string) {
	r.Headers[key] = value
}

func (r *HttpResponse) SetStatus(status StatusCode) {
	r.StatusCode = status
}

func (r *HttpResponse) IntoResponse() []byte {
	keys := make([]string, 0, len(r.Headers))
	for key := range r.Headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key+": "+r.Headers[key])
	}
	return encodeResponse(r.StatusCode, lines, r.Body)
}

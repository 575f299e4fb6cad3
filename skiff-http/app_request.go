package skiff_http

import (
	"errors"
	"strings"

	"github.com/jacksonzamorano/skiff/skiff-json"
)

// Request parsing errors.
var (
	ErrEmptyRequest         = errors.New("empty request")
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrMalformedHeader      = errors.New("malformed header")
	ErrNoBody               = errors.New("request has no body")
)

// RequestLine is the first line of an HTTP/1.1 request: method, path with
// the query string stripped, and protocol version.
type RequestLine struct {
	Method  HttpMethod
	Path    string
	Version string
}

// HttpRequest is one parsed HTTP/1.1 request. Header names are stored in
// lower case with their raw values. Query is nil when the request target
// carried no usable query pairs, Body is nil when nothing followed the
// header terminator. The body is never interpreted here; handlers decide
// what the bytes mean.
type HttpRequest struct {
	Line    RequestLine
	Headers map[string]string
	Query   map[string]string
	Body    []byte
}

func parseRequestLine(line string) (RequestLine, error) {
	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return RequestLine{}, ErrMalformedRequestLine
	}
	method, ok := HttpMethods[parts[0]]
	if !ok {
		return RequestLine{}, ErrMalformedRequestLine
	}
	return RequestLine{Method: method, Path: parts[1], Version: parts[2]}, nil
}

func parseHeaderLine(line string) (string, string, error) {
	parts := strings.Split(line, ": ")
	if len(parts) != 2 || parts[0] == "" {
		return "", "", ErrMalformedHeader
	}
	return strings.ToLower(parts[0]), parts[1], nil
}

// parseQueryString splits k=v pairs on &. Pairs that do not split cleanly
// on a single = are dropped. Returns nil when nothing usable remains.
func parseQueryString(raw string) map[string]string {
	var query map[string]string
	for _, pair := range strings.Split(raw, "&") {
		parts := strings.Split(pair, "=")
		if len(parts) != 2 {
			continue
		}
		if query == nil {
			query = make(map[string]string)
		}
		query[parts[0]] = parts[1]
	}
	return query
}

// ParseRequest turns one raw read buffer into an HttpRequest. The buffer
// holds at most one request; the caller does not loop to accumulate more.
// Header parsing ends at the first line that is not a well-formed header,
// and whatever follows the header terminator is the body.
func ParseRequest(buf []byte) (*HttpRequest, error) {
	raw := string(buf)
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyRequest
	}
	lines := strings.Split(raw, "\r\n")
	if lines[0] == "" {
		return nil, ErrEmptyRequest
	}

	line, err := parseRequestLine(lines[0])
	if err != nil {
		return nil, err
	}
	req := &HttpRequest{Line: line, Headers: make(map[string]string)}

	if idx := strings.Index(req.Line.Path, "?"); idx >= 0 {
		req.Query = parseQueryString(req.Line.Path[idx+1:])
		req.Line.Path = req.Line.Path[:idx]
	}

	i := 1
	for ; i < len(lines); i++ {
		name, value, err := parseHeaderLine(lines[i])
		if err != nil {
			break
		}
		req.Headers[name] = value
	}

	if i < len(lines) && lines[i] == "" {
		i++
	}
	if i < len(lines) {
		body := strings.Join(lines[i:], "\r\n")
		if body != "" {
			req.Body = []byte(body)
		}
	}
	return req, nil
}

// QueryGet returns one query-string value.
func (req *HttpRequest) QueryGet(key string) (string, bool) {
	if req.Query == nil {
		return "", false
	}
	val, ok := req.Query[key]
	return val, ok
}

// Cookies parses the cookie header into a name to value map. The scan
// stops at the first pair that does not split on =. Returns nil when the
// request carries no cookie header.
func (req *HttpRequest) Cookies() map[string]string {
	raw, ok := req.Headers["cookie"]
	if !ok {
		return nil
	}
	cookies := make(map[string]string)
	for _, pair := range strings.Split(raw, ";") {
		parts := strings.Split(pair, "=")
		if len(parts) != 2 {
			break
		}
		name := strings.ReplaceAll(parts[0], " ", "")
		value := strings.ReplaceAll(parts[1], " ", "")
		cookies[name] = value
	}
	return cookies
}

// FromJson decodes the request body as JSON into T. Surfaces an error when
// the body is absent or malformed.
func FromJson[T any](req *HttpRequest) (*T, error) {
	if req.Body == nil {
		return nil, ErrNoBody
	}
	var value T
	if err := jsonUnmarshal(req.Body, &value); err != nil {
		return nil, err
	}
	return &value, nil
}

// BodyJson exposes the body through the dynamic JSON accessor, for
// handlers that want individual fields without declaring a struct.
func (req *HttpRequest) BodyJson() (*skiff_json.JsonObject, error) {
	if req.Body == nil {
		return nil, ErrNoBody
	}
	obj := skiff_json.NewJsonObject()
	if err := obj.Parse(req.Body); err != nil {
		return nil, err
	}
	return obj, nil
}

// BodyJsonArray is BodyJson for a top-level array body.
func (req *HttpRequest) BodyJsonArray() (*skiff_json.JsonArray, error) {
	if req.Body == nil {
		return nil, ErrNoBody
	}
	arr := skiff_json.NewJsonArray()
	if err := arr.Parse(req.Body); err != nil {
		return nil, err
	}
	return arr, nil
}

package skiff_http

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeIntoResponse(t *testing.T) {
	out := string(StatusOK.IntoResponse())
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n", out)

	out = string(StatusNotFound.IntoResponse())
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 404 NOT FOUND\r\n"))
}

func TestTextResponse(t *testing.T) {
	out := string(TextResponse{Status: StatusOK, Body: "root"}.IntoResponse())
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 4\r\n\r\nroot", out)
}

func TestBytesResponse(t *testing.T) {
	out := string(BytesResponse{Status: StatusOK, Body: []byte{0x01, 0x02}}.IntoResponse())
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\n"))
	assert.True(t, strings.HasSuffix(out, "\x01\x02"))
}

func TestHtmlResponse(t *testing.T) {
	out := string(Html("<p>hi</p>").IntoResponse())
	assert.Contains(t, out, "Content-Type: text/html\r\n")
	assert.True(t, strings.HasSuffix(out, "\r\n\r\n<p>hi</p>"))
	assert.Contains(t, out, "Content-Length: 9\r\n")
}

func TestJsonResponseShape(t *testing.T) {
	out := string(Json{Value: map[string]bool{"ok": true}}.IntoResponse())
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n"))
	assert.Contains(t, out, "Content-Type: application/json\r\n")
	assert.Contains(t, out, "Content-Length: 11\r\n")
	assert.True(t, strings.HasSuffix(out, `{"ok":true}`))
}

func TestJsonResponseEncodeFailure(t *testing.T) {
	out := string(Json{Value: make(chan int)}.IntoResponse())
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 500 INTERNAL SERVER ERROR\r\n"))
}

func TestRedirect(t *testing.T) {
	out := string(Redirect("/t").IntoResponse())
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 302 FOUND\r\n"))
	assert.Contains(t, out, "Location:/t\r\n")
}

func TestCookieHeader(t *testing.T) {
	cookie := NewCookie("session", "abc")
	assert.Equal(t, "session=abc; Secure; HttpOnly", cookie.Header())

	cookie.Domain = "example.com"
	cookie.SameSite = SameSiteStrict
	cookie.Path = "/admin"
	assert.Equal(
		t,
		"session=abc; Domain=example.com; SameSite=Strict; Secure; HttpOnly; Path=/admin",
		cookie.Header(),
	)

	expires := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	plain := Cookie{Name: "theme", Value: "dark", Expires: expires, MaxAge: 60}
	assert.Equal(t, "theme=dark; Expires=Fri, 01 Mar 2024 12:00:00 UTC; Max-Age=60", plain.Header())
}

func TestCookieResponse(t *testing.T) {
	resp := CookieResponse{
		Status: StatusOK,
		Cookie: NewCookie("session", "abc"),
		Body:   "signed in",
	}
	out := string(resp.IntoResponse())
	assert.Contains(t, out, "Set-Cookie: session=abc; Secure; HttpOnly\r\n")
	assert.True(t, strings.HasSuffix(out, "signed in"))
}

func TestHttpResponseHeaders(t *testing.T) {
	res := StringResponse("hello")
	res.SetHeader("X-Custom", "1")
	res.SetStatus(StatusCreated)
	out := string(res.IntoResponse())
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 201 CREATED\r\nContent-Length: 5\r\n"))
	assert.Contains(t, out, "Content-Type: text/plain\r\n")
	assert.Contains(t, out, "X-Custom: 1\r\n")
	assert.True(t, strings.HasSuffix(out, "\r\n\r\nhello"))
}

func TestJsonResponseConstructor(t *testing.T) {
	res := JsonResponse(map[string]int{"n": 1})
	out := string(res.IntoResponse())
	assert.Contains(t, out, "Content-Type: application/json\r\n")
	assert.True(t, strings.HasSuffix(out, `{"n":1}`))

	bad := JsonResponse(make(chan int))
	assert.Equal(t, StatusInternalServerError, bad.StatusCode)
}

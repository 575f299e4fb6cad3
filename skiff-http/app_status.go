package skiff_http

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type StatusCode int

const (
	StatusOK                  StatusCode = 200
	StatusCreated             StatusCode = 201
	StatusNoContent           StatusCode = 204
	StatusFound               StatusCode = 302
	StatusBadRequest          StatusCode = 400
	StatusUnauthorized        StatusCode = 401
	StatusForbidden           StatusCode = 403
	StatusNotFound            StatusCode = 404
	StatusMethodNotAllowed    StatusCode = 405
	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
)

// statusReasons maps each status code to its reason phrase, the canonical
// name uppercased. Built once so the caser is never shared across
// connection goroutines.
var statusReasons = func() map[StatusCode]string {
	names := map[StatusCode]string{
		StatusOK:                  "OK",
		StatusCreated:             "Created",
		StatusNoContent:           "No Content",
		StatusFound:               "Found",
		StatusBadRequest:          "Bad Request",
		StatusUnauthorized:        "Unauthorized",
		StatusForbidden:           "Forbidden",
		StatusNotFound:            "Not Found",
		StatusMethodNotAllowed:    "Method Not Allowed",
		StatusInternalServerError: "Internal Server Error",
		StatusNotImplemented:      "Not Implemented",
	}
	upper := cases.Upper(language.English)
	reasons := make(map[StatusCode]string, len(names))
	for code, name := range names {
		reasons[code] = upper.String(name)
	}
	return reasons
}()

// Reason returns the uppercase reason phrase for the code. Codes outside
// the table fall back to the 500 phrase.
func (c StatusCode) Reason() string {
	if reason, ok := statusReasons[c]; ok {
		return reason
	}
	return "INTERNAL SERVER ERROR"
}

func (c StatusCode) String() string {
	return strconv.Itoa(int(c)) + " " + c.Reason()
}

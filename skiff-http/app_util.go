package skiff_http

import "strings"

// PathListFromString splits a pattern or request path into its
// /-separated segments, dropping the leading slash and a single trailing
// slash. The root path yields one empty segment. Registration and
// parametric matching both segment through here so a pattern and a
// candidate path always slice the same way.
func PathListFromString(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	trimmed = strings.TrimSuffix(trimmed, "/")
	return strings.Split(trimmed, "/")
}

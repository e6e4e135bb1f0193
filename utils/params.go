package utils

import (
	"net/http"
	"strconv"
)

// QueryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func QueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// QueryBool parses a boolean query parameter. Only the literals "true" and
// "false" override def; anything else falls back.
func QueryBool(r *http.Request, name string, def bool) bool {
	switch r.URL.Query().Get(name) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

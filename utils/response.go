package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"gathr_server/services"
)

// WriteJSON serializes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError maps a service error onto the HTTP taxonomy and writes a short
// `{"error": ...}` body. Internal errors are logged with their wrapped
// cause; the cause is never serialized to the client.
func WriteError(w http.ResponseWriter, log *slog.Logger, err error) {
	kind := services.KindOf(err)
	if kind == services.KindInternal && log != nil {
		log.Error("request failed", "err", err)
	}
	WriteJSON(w, statusOf(kind), map[string]string{"error": services.MessageOf(err)})
}

func statusOf(kind services.Kind) int {
	switch kind {
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindInvalidInput:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

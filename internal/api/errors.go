package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: message})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeInternalError logs err and returns a 500. The error detail is only
// echoed to the client when expose is set; production clients see a generic
// message.
func writeInternalError(w http.ResponseWriter, log *zap.Logger, expose bool, err error) {
	log.Error("request failed", zap.Error(err))
	msg := "internal server error"
	if expose {
		msg = err.Error()
	}
	writeError(w, http.StatusInternalServerError, msg)
}

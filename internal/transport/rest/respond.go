package rest

import (
	"encoding/json"
	"net/http"
)

// dataEnvelope is the body of every successful API response.
type dataEnvelope struct {
	Status int   `json:"status"`
	Data   []any `json:"data"`
}

// errorEnvelope is the body of every failed API response.
type errorEnvelope struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// message is the data item returned by mutations.
type message struct {
	ID      any    `json:"id"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeData(w http.ResponseWriter, status int, items ...any) {
	if items == nil {
		items = []any{}
	}
	writeJSON(w, status, dataEnvelope{Status: status, Data: items})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorEnvelope{Status: status, Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it to the HTTP response with
// the given status code. Every response body the vault API produces goes
// through here, so whatever a handler keeps out of its response struct
// (envelopes, plaintext keys via `json:"-"`) never reaches the wire.
//
// If marshaling fails, it responds with a plain 500 and returns a wrapped
// error; the failing value is never echoed back to the caller.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

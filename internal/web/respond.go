package web

import (
	"encoding/json"
	"net/http"
)

// envelope is the JSON response shape every endpoint uses.
type envelope map[string]any

// respondSuccess writes a success envelope merged with extra fields.
func respondSuccess(w http.ResponseWriter, extra envelope) {
	payload := envelope{"status": "success"}
	for k, v := range extra {
		payload[k] = v
	}
	writeJSON(w, http.StatusOK, payload)
}

// respondError writes an error envelope with the given status code.
func respondError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, envelope{
		"status":  "error",
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, code int, payload envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	// Encoding a map of already-marshalable values cannot fail in a
	// way we could report to the client at this point.
	_ = json.NewEncoder(w).Encode(payload)
}

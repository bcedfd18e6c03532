package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the API error envelope. Handlers use rest.Responder;
// middleware runs before a handler exists and writes the same shape directly.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

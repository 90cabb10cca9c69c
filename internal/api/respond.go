// Package api holds the JSON response helpers shared by all handlers.
package api

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// Error writes the {"message": ...} failure body every endpoint uses.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

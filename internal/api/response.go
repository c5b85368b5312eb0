package api

import (
	"encoding/json"
	"net/http"

	"github.com/banshee-data/minehint/internal/monitoring"
)

// writeJSON writes data as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		monitoring.Logf("failed to encode json response: %v", err)
	}
}

// writeJSONError writes {"error": msg} with the given status code.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSONError(w, http.StatusBadRequest, msg)
}

func notFound(w http.ResponseWriter, msg string) {
	writeJSONError(w, http.StatusNotFound, msg)
}

func internalServerError(w http.ResponseWriter, msg string) {
	writeJSONError(w, http.StatusInternalServerError, msg)
}

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopmate/shopmate-go/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response failed", "error", err)
	}
}

func failure(msg string) model.Envelope {
	return model.Envelope{Success: false, Message: msg}
}

// decodeJSON reads the request body into dst with a 1MB cap.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, failure("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, failure("invalid request body"))
		return false
	}
	return true
}

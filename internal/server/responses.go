package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/simonvc/trackit/internal/store"
)

// errorResponse mirrors the hosted backend, which reports failures as {"detail": "..."}.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Detail: msg})
}

func mapError(err error) int {
	switch {
	case errors.Is(err, store.ErrUnknownToken), errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrEmailTaken), errors.Is(err, store.ErrDuplicateTransaction):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

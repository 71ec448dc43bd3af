package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrBadRequest is returned when the provided HTTP request
// is malformed or describes an invalid transaction.
var ErrBadRequest = errors.New("invalid request")

func badRequest(err error) error {
	return fmt.Errorf("%w: %v", ErrBadRequest, err)
}

// HumanReadableError is the JSON error body.
type HumanReadableError struct {
	Msg string `json:"msg"`
}

// HttpCodeForError maps an error to its HTTP status.
func HttpCodeForError(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ReplyWithError renders err as human-readable JSON.
func ReplyWithError(w http.ResponseWriter, err error) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("x-content-type-options", "nosniff")
	w.WriteHeader(HttpCodeForError(err))
	_ = json.NewEncoder(w).Encode(HumanReadableError{Msg: err.Error()})
}

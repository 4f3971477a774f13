// Package respond writes the JSON response envelope and maps error kinds to
// status codes.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stockpile/backend/internal/apperror"
)

// maskInternal hides server-side failure details from clients. Enabled once
// at startup for production deployments.
var maskInternal bool

func MaskInternalErrors(mask bool) {
	maskInternal = mask
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, messageResponse{Message: msg})
}

// Error maps the error's kind to a client status. Errors without a kind are
// server-side failures: logged, and masked in production.
func Error(w http.ResponseWriter, err error) {
	if kind, ok := apperror.KindOf(err); ok {
		status := http.StatusInternalServerError

		switch kind {
		case apperror.Invalid:
			status = http.StatusBadRequest
		case apperror.Unprocessable:
			status = http.StatusUnprocessableEntity
		case apperror.NotFound:
			status = http.StatusNotFound
		}

		Message(w, status, err.Error())

		return
	}

	slog.Error("request failed", "error", err)

	msg := err.Error()
	if maskInternal {
		msg = "internal server error"
	}

	Message(w, http.StatusInternalServerError, msg)
}

// Package httpio holds the request decoding and response writing shared by
// the API handlers.
package httpio

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/collecta/internal/export"
	"github.com/MrJamesThe3rd/collecta/internal/importer"
	"github.com/MrJamesThe3rd/collecta/internal/importer/loansheet"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/state"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode reads a JSON body into dst and validates its struct tags.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	return nil
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err as plain text with a status derived from its kind.
func Error(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}

	http.Error(w, err.Error(), status)
}

// Status maps domain errors onto HTTP status codes.
func Status(err error) int {
	switch {
	case errors.Is(err, state.ErrLoanNotFound), errors.Is(err, state.ErrAgentNotFound):
		return http.StatusNotFound
	case errors.Is(err, state.ErrUnknownUser):
		return http.StatusUnauthorized
	case errors.Is(err, state.ErrAdminDelete):
		return http.StatusForbidden
	case errors.Is(err, state.ErrNoCollectors):
		return http.StatusConflict
	case errors.Is(err, export.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, loan.ErrInvalidAmount),
		errors.Is(err, loan.ErrAmountExceedsBalance),
		errors.Is(err, loan.ErrEmptyNotes),
		errors.Is(err, loan.ErrInvalidCommType),
		errors.Is(err, state.ErrInvalidAgent),
		errors.Is(err, importer.ErrUnsupportedFormat),
		errors.Is(err, importer.ErrUnreadable),
		errors.Is(err, loansheet.ErrNoHeader):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

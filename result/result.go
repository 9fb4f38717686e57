// Package result defines the uniform success/failure envelope returned by
// every operation above the transport boundary. The HTTP layer serializes a
// single shape regardless of which operation ran.
package result

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/user/todoserve-go/apperror"
)

// Result is the outcome envelope. Invariants: Message is always non-empty,
// and a failed Result never carries Data.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK builds a successful Result. Data may be nil for pure side-effect
// operations that return nothing.
func OK(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Fail builds a failed Result. Failure envelopes never carry a payload.
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}

// WriteJSON serializes a Result to the response writer with the given status.
func WriteJSON(w http.ResponseWriter, status int, res Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError converts any error into a failure Result and writes it with the
// status code mapped from the apperror taxonomy. Errors that are not
// AppErrors are reported as a generic internal failure so that internal
// details never leak to clients.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", appErr.Error(),
		)
	}

	WriteJSON(w, appErr.StatusCode(), Fail(appErr.Message))
}

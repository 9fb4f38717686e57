package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/result"
)

// Handlers exposes the auth service over HTTP.
type Handlers struct {
	service  *Service
	validate *validator.Validate
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{
		service:  service,
		validate: validator.New(),
	}
}

// HandleLogin authenticates a credential pair and returns the issued token
// inside the result envelope.
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			result.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			result.WriteError(w, r, apperror.NewValidationError("username and password are required", err))
			return
		}

		tokens, err := h.service.Login(r.Context(), req)
		if err != nil {
			result.WriteError(w, r, err)
			return
		}

		result.WriteJSON(w, http.StatusOK, result.OK("Login successful!", tokens))
	}
}

package users

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/result"
)

// Handlers exposes the user service over HTTP.
type Handlers struct {
	service  *Service
	validate *validator.Validate
}

// NewHandlers creates new user Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the protected user routes on the given router.
// Registration (POST /users) is mounted separately because it must stay
// reachable without a token.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleFindAll())
	r.Get("/{id}", h.HandleFindOne())
	r.Put("/{id}", h.HandleUpdate())
	r.Delete("/{id}", h.HandleDelete())
}

// HandleFindAll lists all users.
func (h *Handlers) HandleFindAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.service.FindAll(r.Context())
		if err != nil {
			result.WriteError(w, r, err)
			return
		}
		result.WriteJSON(w, http.StatusOK, res)
	}
}

// HandleFindOne returns a single user by id.
func (h *Handlers) HandleFindOne() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			result.WriteError(w, r, err)
			return
		}

		res, err := h.service.FindOne(r.Context(), id)
		if err != nil {
			result.WriteError(w, r, err)
			return
		}
		result.WriteJSON(w, http.StatusOK, res)
	}
}

// HandleCreate registers a new user.
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			result.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			result.WriteError(w, r, apperror.NewValidationError("invalid user payload", err))
			return
		}

		res, err := h.service.Create(r.Context(), req)
		if err != nil {
			result.WriteError(w, r, err)
			return
		}
		result.WriteJSON(w, http.StatusCreated, res)
	}
}

// HandleUpdate modifies an existing user.
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			result.WriteError(w, r, err)
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			result.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			result.WriteError(w, r, apperror.NewValidationError("invalid user payload", err))
			return
		}

		res, err := h.service.Update(r.Context(), id, req)
		if err != nil {
			result.WriteError(w, r, err)
			return
		}
		result.WriteJSON(w, http.StatusOK, res)
	}
}

// HandleDelete removes a user.
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			result.WriteError(w, r, err)
			return
		}

		res, err := h.service.Delete(r.Context(), id)
		if err != nil {
			result.WriteError(w, r, err)
			return
		}
		result.WriteJSON(w, http.StatusOK, res)
	}
}

// parseID extracts the numeric {id} URL parameter.
func parseID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apperror.NewBadRequestError("invalid id parameter", err)
	}
	return id, nil
}

package todos

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/result"
)

// Handlers exposes the todo service over HTTP.
type Handlers struct {
	service  *Service
	validate *validator.Validate
}

// NewHandlers creates new todo Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the todo routes on the given router. All of them
// sit behind the authentication guard applied by the caller.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleFindAll())
	r.Post("/", h.HandleCreate())
	r.Get("/{id}", h.HandleFindOne())
	r.Put("/{id}", h.HandleUpdate())
	r.Delete("/{id}", h.HandleDelete())
}

// HandleFindAll lists all todos.
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

// HandleFindOne returns a single todo by id.
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

// HandleCreate inserts a new todo.
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := h.decodeTodoRequest(r)
		if err != nil {
			result.WriteError(w, r, err)
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

// HandleUpdate modifies an existing todo.
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			result.WriteError(w, r, err)
			return
		}

		req, err := h.decodeTodoRequest(r)
		if err != nil {
			result.WriteError(w, r, err)
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

// HandleDelete removes a todo.
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

// decodeTodoRequest parses and validates the create/update payload.
func (h *Handlers) decodeTodoRequest(r *http.Request) (TodoRequest, error) {
	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, apperror.NewBadRequestError("invalid request body", err)
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		return req, apperror.NewValidationError("name and isDone are required", err)
	}
	return req, nil
}

// parseID extracts the numeric {id} URL parameter.
func parseID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apperror.NewBadRequestError("invalid id parameter", err)
	}
	return id, nil
}

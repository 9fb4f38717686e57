package todos

// TodoRequest is the create/update payload. IsDone is a pointer so that an
// explicit false passes validation while an absent field does not.
type TodoRequest struct {
	Name   string `json:"name" validate:"required"`
	IsDone *bool  `json:"isDone" validate:"required"`
}

// Package todos implements the todo resource: a thin CRUD layer reachable
// only through the authentication guard.
package todos

// Todo represents a single todo item.
type Todo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	IsDone bool   `json:"isDone"`
}

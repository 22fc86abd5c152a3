package domain

type Student struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// IDProvider hands out identifiers for newly created units and students.
type IDProvider interface {
	NewID() string
}

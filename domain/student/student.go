// Package student provides the student entity.
package student

import (
	"time"

	"github.com/rotavan/rotavan/pkg/validate"
)

// Student is an enrolled rider. Identity is independent of any billing
// period; payment records reference students by ID.
type Student struct {
	ID        string
	Name      string `validate:"required,max=120"`
	CPF       string `validate:"omitempty,cpf"`
	Phone     string `validate:"omitempty,max=30"`
	StopID    string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the entity's field rules.
func (s Student) Validate() error {
	return validate.Struct(s)
}

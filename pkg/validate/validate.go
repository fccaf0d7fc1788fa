// Package validate wraps go-playground/validator with the custom rules
// used across domain types.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for empty tags or nil funcs.
	if err := val.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return CPF(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return val
}

// FieldError describes a single failed field, suitable for rendering as
// a user-facing message.
type FieldError struct {
	Field string
	Rule  string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: failed %q", e.Field, e.Rule)
}

// Error aggregates field errors for one struct.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Struct validates a struct by its tags. Returns *Error on rule
// violations so callers can surface per-field messages.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// CPF reports whether s is a structurally valid Brazilian CPF: eleven
// digits with correct check digits. Uniqueness is not this function's
// concern.
func CPF(s string) bool {
	if len(s) != 11 {
		return false
	}

	digits := make([]int, 11)
	allSame := true
	for i := 0; i < 11; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
		if digits[i] != digits[0] {
			allSame = false
		}
	}
	// Repeated sequences like 00000000000 pass the check-digit math but
	// are not assignable.
	if allSame {
		return false
	}

	if checkDigit(digits[:9]) != digits[9] {
		return false
	}
	return checkDigit(digits[:10]) == digits[10]
}

// checkDigit computes a CPF verification digit over the given prefix.
func checkDigit(prefix []int) int {
	weight := len(prefix) + 1
	sum := 0
	for _, d := range prefix {
		sum += d * weight
		weight--
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

package app

import (
	"errors"

	"github.com/rotavan/rotavan/ports"
)

// ErrInvalidInput marks rejected input that never reached storage.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidStatus is returned for unknown payment status values.
var ErrInvalidStatus = errors.New("invalid payment status")

func isNotFound(err error) bool {
	return errors.Is(err, ports.ErrNotFound)
}

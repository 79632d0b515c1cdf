package domain

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("invalid")

func invalidf(format string, v ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, v...))
}

func requireID[T ~string](name string, id T) error {
	if id == "" {
		return invalidf("%s is required", name)
	}
	return nil
}

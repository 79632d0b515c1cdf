package usecase

import (
	"errors"
	"fmt"

	"github.com/finebook/finebook/internal/repository"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrFailedPrecondition = errors.New("failed precondition")
	ErrInvalidArgument    = errors.New("invalid argument")
)

// Kind is the machine readable error kind reported to callers.
type Kind string

const (
	KindUnauthenticated    Kind = "unauthenticated"
	KindPermissionDenied   Kind = "permission-denied"
	KindNotFound           Kind = "not-found"
	KindAlreadyExists      Kind = "already-exists"
	KindFailedPrecondition Kind = "failed-precondition"
	KindInvalidArgument    Kind = "invalid-argument"
	KindInternal           Kind = "internal"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrUnauthenticated, KindUnauthenticated},
	{ErrPermissionDenied, KindPermissionDenied},
	{ErrNotFound, KindNotFound},
	{ErrAlreadyExists, KindAlreadyExists},
	{ErrFailedPrecondition, KindFailedPrecondition},
	{ErrInvalidArgument, KindInvalidArgument},
}

func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// lookup translates a repository read error for the named entity.
func lookup(what string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return fmt.Errorf("get %s: %w", what, err)
}

// absent returns ErrAlreadyExists when a read found the entity, nil when it
// did not, and the read error otherwise.
func absent(what string, err error) error {
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrAlreadyExists, what)
	case errors.Is(err, repository.ErrNotFound):
		return nil
	}
	return fmt.Errorf("get %s: %w", what, err)
}

func write(what string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, repository.ErrAlreadyExists):
		return fmt.Errorf("%w: %s", ErrAlreadyExists, what)
	}
	return fmt.Errorf("write %s: %w", what, err)
}

type validator interface {
	Validate() error
}

func validate(v validator) error {
	if err := v.Validate(); err != nil {
		return invalidArgument(err)
	}
	return nil
}

func invalidArgument(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
}

package creature

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrInvalidCreature = errors.New("invalid creature")
)

// ValidationError describes which field of a Move or Template was rejected.
// It unwraps to ErrInvalidMove or ErrInvalidCreature.
type ValidationError struct {
	Kind   error
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %s", e.Kind, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func invalidMove(field, reason string) error {
	return &ValidationError{Kind: ErrInvalidMove, Field: field, Reason: reason}
}

func invalidCreature(field, reason string) error {
	return &ValidationError{Kind: ErrInvalidCreature, Field: field, Reason: reason}
}

package hesabna

import (
	"errors"
	"fmt"
)

// ErrLinkedAmount is returned when an amount edit is attempted on a
// transaction linked to a goal, debt or subscription. Linked amounts are
// immutable: the parent entity was adjusted by exactly that amount when the
// transaction was created.
var ErrLinkedAmount = errors.New("amount of a linked transaction is immutable")

// ErrNotFound is returned by update-type operations referencing an id absent
// from its collection. Delete-type operations treat an absent id as a no-op.
var ErrNotFound = errors.New("not found")

// ValidationError rejects a mutation before any state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

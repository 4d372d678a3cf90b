package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// DuplicateIdentifierError surfaces a unique-index violation on insert.
// Field names the colliding identifier ("username" or "email"). The
// store, not the service, arbitrates concurrent inserts of the same
// identifier; services translate this error the same way as the
// pre-insert duplicate check.
type DuplicateIdentifierError struct {
	Field string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate identifier: %s", e.Field)
}

// AsDuplicateIdentifier unwraps a DuplicateIdentifierError if present.
func AsDuplicateIdentifier(err error) (*DuplicateIdentifierError, bool) {
	var dup *DuplicateIdentifierError
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}

package service

import (
	"errors"
	"fmt"
)

// ErrEmptyOutline rejects a tree replacement with no root sections. Without
// it a malformed request would wipe the owner's entire outline and leave
// nothing behind.
var ErrEmptyOutline = errors.New("outline replacement must contain at least one section")

// ValidationError reports a caller error on a specific field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

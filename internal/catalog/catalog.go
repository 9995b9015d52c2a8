// Package catalog holds the vocabulary shared by the author, language and
// book packages: get-or-create outcomes and the error taxonomy.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate entry")
	ErrInUse            = errors.New("entry is still referenced")
	ErrInvalidReference = errors.New("referenced entry does not exist")
)

// Outcome reports how a get-or-create call was satisfied.
type Outcome int

const (
	// Found means a matching row already existed and was returned unchanged.
	Found Outcome = iota + 1
	// Created means a new row was inserted by this call.
	Created
	// Conflict means the insert lost a uniqueness race; the caller should
	// look the row up instead.
	Conflict
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Created:
		return "created"
	case Conflict:
		return "conflict"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when an entity fails its field constraints.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

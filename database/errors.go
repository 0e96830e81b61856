package database

import (
	"errors"
	"fmt"
)

var (
	// ErrConnect is returned when the database file cannot be opened.
	ErrConnect = errors.New("failed to connect")

	ErrColumnTypeMismatch = errors.New("mismatching number of columns and types")
	ErrNoColumns          = errors.New("no columns given")
	ErrNoValues           = errors.New("no values to insert")
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrUnknownIdentifier  = errors.New("unknown identifier")
	ErrInvalidColumnType  = errors.New("invalid column type")
)

// IdentifierKind says which part of a statement an identifier was destined
// for.
type IdentifierKind string

const (
	IdentifierTable  IdentifierKind = "table"
	IdentifierColumn IdentifierKind = "column"
)

type IdentifierError struct {
	Kind  IdentifierKind
	Name  string
	Table string
	Err   error
}

func (e *IdentifierError) Error() string {
	if e.Kind == IdentifierColumn && e.Table != "" {
		return fmt.Sprintf("%v: column %q of table %q", e.Err, e.Name, e.Table)
	}
	return fmt.Sprintf("%v: %s %q", e.Err, e.Kind, e.Name)
}

func (e *IdentifierError) Unwrap() error {
	return e.Err
}

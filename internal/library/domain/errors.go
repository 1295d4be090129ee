package domain

import "fmt"

// AlreadyIssuedError indicates an issue transition was attempted on a record
// that is already issued.
type AlreadyIssuedError struct {
	Identifier string
}

// Error implements the error interface.
func (e *AlreadyIssuedError) Error() string {
	return fmt.Sprintf("record %q is already issued", e.Identifier)
}

// NotIssuedError indicates a return transition was attempted on a record
// that is not currently issued.
type NotIssuedError struct {
	Identifier string
}

// Error implements the error interface.
func (e *NotIssuedError) Error() string {
	return fmt.Sprintf("record %q is not issued", e.Identifier)
}

// DuplicateIdentifierError indicates an attempt to add a record whose
// identifier is already present in the catalog.
type DuplicateIdentifierError struct {
	Identifier string
}

// Error implements the error interface.
func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("record with identifier %q already exists", e.Identifier)
}

// RecordNotFoundError indicates that no record with the given identifier
// exists in the catalog. Lookups report absence as a boolean; this error is
// only produced by operations that require the record to exist.
type RecordNotFoundError struct {
	Identifier string
}

// Error implements the error interface.
func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("no record with identifier %q", e.Identifier)
}

// EmptyFieldError indicates a required field was empty after trimming.
type EmptyFieldError struct {
	Field string
}

// Error implements the error interface.
func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

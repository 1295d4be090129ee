// Package domain implements the domain layer for the libris catalog.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code with standard library imports (no external dependencies)
//   - Defines the Record entity and the Status value object
//   - Implements domain logic (field normalization, issue/return transitions)
//   - Has no knowledge of infrastructure concerns (file I/O, logging, CLI tools)
//
// # Core Types
//
// Record represents a single catalog entry with title, author, identifier
// and status. Records are immutable by convention: the Issue and Return
// transitions return an updated copy rather than mutating in place.
//
// Status is a value object representing the record lifecycle state. A record
// is either available or issued; anything else is coerced to available when
// a Record is constructed or decoded.
package domain

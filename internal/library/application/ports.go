package application

import domain "libris/internal/library/domain"

// RecordReader reads records from the catalog.
type RecordReader interface {
	// FindByIdentifier returns the record with the given identifier.
	// Absence is a valid result, not an error.
	FindByIdentifier(identifier string) (domain.Record, bool)

	// SearchByTitle returns all records whose title contains the trimmed
	// query, case-insensitively, in store order.
	SearchByTitle(query string) []domain.Record

	// ListAll returns every record in store order.
	ListAll() []domain.Record
}

// RecordWriter provides write operations for the catalog.
type RecordWriter interface {
	// Add appends a record. It fails with DuplicateIdentifierError when the
	// identifier is already taken. Add does not persist; callers invoke Save.
	Add(record domain.Record) error

	// Issue transitions the identified record to issued and persists the
	// catalog before returning.
	Issue(identifier string) error

	// Return transitions the identified record back to available and
	// persists the catalog before returning.
	Return(identifier string) error

	// Save writes the full catalog to the persistence target, replacing the
	// prior contents.
	Save() error
}

// Reloader re-reads the catalog from its persistence target, replacing the
// in-memory state. Implemented by stores whose backing file can change
// underneath them.
type Reloader interface {
	Load() error
}

// Inventory combines read and write access to the catalog.
// This is the full interface implemented by infrastructure.JSONStore.
type Inventory interface {
	RecordReader
	RecordWriter
}

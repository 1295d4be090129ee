// Package infrastructure provides the JSON-file-backed catalog store and the
// change watcher used for auto-refresh.
package infrastructure

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"libris/internal/library/application"
	domain "libris/internal/library/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CorruptSuffix is appended to the catalog file name when its contents could
// not be parsed. The bad file is preserved for inspection, never deleted.
const CorruptSuffix = ".corrupt"

// Compile-time check that JSONStore implements the inventory ports.
var _ application.Inventory = (*JSONStore)(nil)

// JSONStore owns the in-memory record collection and its persistence target.
// It is the sole authority for reading and writing the catalog file. The
// store is single-threaded by design: every operation is call-and-return,
// and mutating operations that persist do so before returning.
type JSONStore struct {
	path    string
	records []domain.Record
	logger  *slog.Logger
}

// Option configures a JSONStore.
type Option func(*JSONStore)

// WithLogger injects the logger used for persistence events. The default
// discards everything, so the store has no hidden output in tests.
func WithLogger(logger *slog.Logger) Option {
	return func(s *JSONStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a store persisting to path and loads any existing catalog.
// A missing or corrupted file is recovered into an empty catalog; only an
// unexpected read failure (or an unwritable parent directory) is returned.
func New(path string, opts ...Option) (*JSONStore, error) {
	s := &JSONStore{
		path:   path,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			s.logger.Error("creating catalog directory failed", "dir", dir, "error", err)
			return nil, err
		}
	}

	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the persistence target.
func (s *JSONStore) Path() string {
	return s.path
}

// Add appends a record to the catalog. It fails with
// DuplicateIdentifierError when the identifier is already taken, leaving the
// catalog unchanged. Add does not persist; the caller invokes Save.
func (s *JSONStore) Add(record domain.Record) error {
	for _, existing := range s.records {
		if existing.Identifier == record.Identifier {
			s.logger.Error("duplicate identifier rejected", "identifier", record.Identifier)
			return &domain.DuplicateIdentifierError{Identifier: record.Identifier}
		}
	}
	s.records = append(s.records, record)
	s.logger.Info("record added", "identifier", record.Identifier, "title", record.Title)
	return nil
}

// FindByIdentifier returns the first record with the given identifier.
// Absence is reported through the boolean, not an error.
func (s *JSONStore) FindByIdentifier(identifier string) (domain.Record, bool) {
	identifier = strings.TrimSpace(identifier)
	for _, record := range s.records {
		if record.Identifier == identifier {
			return record, true
		}
	}
	return domain.Record{}, false
}

// SearchByTitle returns all records whose title contains the trimmed query,
// case-insensitively, in store order.
func (s *JSONStore) SearchByTitle(query string) []domain.Record {
	query = strings.ToLower(strings.TrimSpace(query))
	var matches []domain.Record
	for _, record := range s.records {
		if strings.Contains(strings.ToLower(record.Title), query) {
			matches = append(matches, record)
		}
	}
	s.logger.Info("title search", "query", query, "results", len(matches))
	return matches
}

// ListAll returns every record in insertion order.
func (s *JSONStore) ListAll() []domain.Record {
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Issue transitions the identified record from available to issued and
// persists the catalog before returning. A persistence failure propagates to
// the caller; the in-memory transition is not rolled back, so memory and
// disk may disagree until the next successful Save.
func (s *JSONStore) Issue(identifier string) error {
	return s.transition(identifier, domain.Record.Issue, "issued")
}

// Return transitions the identified record from issued back to available and
// persists the catalog before returning. Same persistence caveat as Issue.
func (s *JSONStore) Return(identifier string) error {
	return s.transition(identifier, domain.Record.Return, "returned")
}

func (s *JSONStore) transition(identifier string, apply func(domain.Record) (domain.Record, error), verb string) error {
	identifier = strings.TrimSpace(identifier)
	for i, record := range s.records {
		if record.Identifier != identifier {
			continue
		}
		updated, err := apply(record)
		if err != nil {
			s.logger.Error("transition rejected", "identifier", identifier, "error", err)
			return err
		}
		s.records[i] = updated
		if err := s.Save(); err != nil {
			return err
		}
		s.logger.Info("record "+verb, "identifier", identifier)
		return nil
	}
	s.logger.Error("transition on unknown identifier", "identifier", identifier)
	return &domain.RecordNotFoundError{Identifier: identifier}
}

// Save writes the full catalog to the persistence target, replacing the
// prior contents. The document is written to a temporary file first and
// renamed into place so a crash mid-write cannot truncate the catalog.
func (s *JSONStore) Save() error {
	records := s.records
	if records == nil {
		records = []domain.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.logger.Error("encoding catalog failed", "error", err)
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		s.logger.Error("writing catalog failed", "path", tmp, "error", err)
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("replacing catalog failed", "path", s.path, "error", err)
		return err
	}
	s.logger.Info("catalog saved", "path", s.path, "records", len(records))
	return nil
}

// Load reads the persistence target and replaces the in-memory collection.
//
// Recovery policy:
//   - missing file: start empty and materialize an empty document
//   - unparseable or non-array content: move the bad file aside with
//     CorruptSuffix, start empty, materialize an empty document
//   - any other read failure: log and return the error
//
// Failures during the bootstrap save or the rename are logged and swallowed;
// Load itself only fails on an unexpected read error.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("catalog file missing, starting empty", "path", s.path)
			s.records = nil
			s.bootstrap()
			return nil
		}
		s.logger.Error("reading catalog failed", "path", s.path, "error", err)
		return err
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.recover("catalog file is not valid JSON", err)
		return nil
	}
	// JSON null decodes into a nil slice without error; the file held
	// something, just not an array of records.
	if records == nil && len(bytes.TrimSpace(data)) > 0 {
		s.recover("catalog file is not an array of records", nil)
		return nil
	}

	s.records = records
	s.logger.Info("catalog loaded", "path", s.path, "records", len(records))
	return nil
}

// recover moves the unreadable catalog aside and resets to an empty one.
func (s *JSONStore) recover(reason string, cause error) {
	s.logger.Error(reason, "path", s.path, "error", cause)

	corrupt := s.path + CorruptSuffix
	if err := os.Rename(s.path, corrupt); err != nil {
		s.logger.Error("moving corrupted catalog aside failed", "path", s.path, "error", err)
	} else {
		s.logger.Warn("corrupted catalog moved aside", "path", corrupt)
	}

	s.records = nil
	s.bootstrap()
}

// bootstrap materializes an empty catalog document. Failure is logged and
// swallowed: an empty store that cannot write yet is still usable, and the
// next mutating operation will surface the problem.
func (s *JSONStore) bootstrap() {
	if err := s.Save(); err != nil {
		s.logger.Error("bootstrap save failed", "path", s.path, "error", err)
	}
}

package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status represents the record lifecycle state.
type Status string

const (
	StatusAvailable Status = "available"
	StatusIssued    Status = "issued"
)

// normalizeStatus coerces unknown status values to StatusAvailable.
func normalizeStatus(s Status) Status {
	switch s {
	case StatusAvailable, StatusIssued:
		return s
	default:
		return StatusAvailable
	}
}

// Record represents a single catalog entry.
type Record struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Identifier string `json:"identifier"`
	Status     Status `json:"status"`
}

// New constructs a Record, trimming surrounding whitespace from all string
// fields and coercing an unrecognized status to StatusAvailable. New never
// fails; empty fields are accepted here and rejected by the caller-facing
// validation in the application layer.
func New(title, author, identifier string, status Status) Record {
	return Record{
		Title:      strings.TrimSpace(title),
		Author:     strings.TrimSpace(author),
		Identifier: strings.TrimSpace(identifier),
		Status:     normalizeStatus(Status(strings.TrimSpace(string(status)))),
	}
}

// Issue transitions the record from available to issued, returning the
// updated copy. It fails with AlreadyIssuedError when the record is already
// issued; no other field is affected.
func (r Record) Issue() (Record, error) {
	if r.Status == StatusIssued {
		return r, &AlreadyIssuedError{Identifier: r.Identifier}
	}
	r.Status = StatusIssued
	return r, nil
}

// Return transitions the record from issued back to available, returning the
// updated copy. It fails with NotIssuedError when the record is not issued.
func (r Record) Return() (Record, error) {
	if r.Status == StatusAvailable {
		return r, &NotIssuedError{Identifier: r.Identifier}
	}
	r.Status = StatusAvailable
	return r, nil
}

// IsAvailable reports whether the record can currently be issued.
func (r Record) IsAvailable() bool {
	return r.Status == StatusAvailable
}

// String returns the display form used by the CLI.
func (r Record) String() string {
	return fmt.Sprintf("%s by %s (id %s) [%s]", r.Title, r.Author, r.Identifier, r.Status)
}

// UnmarshalJSON decodes a record document, applying the same normalization
// as New. Missing keys decode to empty strings (or the default status), so
// partial documents from older files remain readable.
func (r *Record) UnmarshalJSON(data []byte) error {
	var doc struct {
		Title      string `json:"title"`
		Author     string `json:"author"`
		Identifier string `json:"identifier"`
		Status     string `json:"status"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*r = New(doc.Title, doc.Author, doc.Identifier, Status(doc.Status))
	return nil
}

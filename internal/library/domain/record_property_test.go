package domain

import (
	"encoding/json"
	"testing"

	"pgregory.net/rapid"
)

// ============================================================================
// Property-Based Tests for Normalization Invariants
// ============================================================================

// TestProperty_NormalizationIsIdempotent verifies that constructing a record
// from an already-constructed record's fields changes nothing: normalizing
// twice equals normalizing once.
func TestProperty_NormalizationIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		title := rapid.String().Draw(t, "title")
		author := rapid.String().Draw(t, "author")
		identifier := rapid.String().Draw(t, "identifier")
		status := Status(rapid.String().Draw(t, "status"))

		once := New(title, author, identifier, status)
		twice := New(once.Title, once.Author, once.Identifier, once.Status)

		if once != twice {
			t.Errorf("normalization not idempotent: %+v != %+v", once, twice)
		}
	})
}

// TestProperty_StatusAlwaysEnumerated verifies that no input can produce a
// record whose status is outside the two enumerated values.
func TestProperty_StatusAlwaysEnumerated(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		status := Status(rapid.String().Draw(t, "status"))
		r := New("t", "a", "i", status)

		if r.Status != StatusAvailable && r.Status != StatusIssued {
			t.Errorf("unexpected status %q", r.Status)
		}
	})
}

// TestProperty_JSONRoundTrip verifies that every constructed record survives
// a marshal/unmarshal cycle unchanged.
func TestProperty_JSONRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := New(
			rapid.String().Draw(t, "title"),
			rapid.String().Draw(t, "author"),
			rapid.String().Draw(t, "identifier"),
			Status(rapid.SampledFrom([]string{"available", "issued", "bogus"}).Draw(t, "status")),
		)

		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var decoded Record
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if decoded != r {
			t.Errorf("round trip changed record: %+v != %+v", decoded, r)
		}
	})
}

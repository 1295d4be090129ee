package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	domain "libris/internal/library/domain"
	"libris/internal/log"
)

// Search results are cached briefly to keep the TUI responsive while typing;
// any mutation flushes the cache.
const (
	searchCacheTTL     = 30 * time.Second
	searchCacheCleanup = time.Minute
)

// Service is the caller-facing layer over the catalog store. It validates
// user input, persists after adds, caches title searches and records an
// audit trail with a unique operation ID per mutation.
type Service struct {
	inv    Inventory
	cache  *gocache.Cache
	tracer trace.Tracer
}

// NewService wraps the given inventory.
func NewService(inv Inventory) *Service {
	return &Service{
		inv:    inv,
		cache:  gocache.New(searchCacheTTL, searchCacheCleanup),
		tracer: otel.Tracer("libris/library"),
	}
}

// AddRecord validates, constructs and stores a new record, then persists the
// catalog. Emptiness after trimming is rejected here; the domain constructor
// itself accepts anything.
func (s *Service) AddRecord(ctx context.Context, title, author, identifier string) (domain.Record, error) {
	_, span := s.tracer.Start(ctx, "library.add")
	defer span.End()

	for _, field := range []struct{ name, value string }{
		{"title", title},
		{"author", author},
		{"identifier", identifier},
	} {
		if strings.TrimSpace(field.value) == "" {
			return domain.Record{}, &domain.EmptyFieldError{Field: field.name}
		}
	}

	record := domain.New(title, author, identifier, domain.StatusAvailable)
	span.SetAttributes(attribute.String("record.identifier", record.Identifier))

	op := uuid.NewString()
	if err := s.inv.Add(record); err != nil {
		span.RecordError(err)
		log.Error(log.CatAudit, "add rejected", "op", op, "identifier", record.Identifier, "error", err)
		return domain.Record{}, err
	}
	if err := s.inv.Save(); err != nil {
		span.RecordError(err)
		log.ErrorErr(log.CatAudit, "add persisted in memory only", err, "op", op, "identifier", record.Identifier)
		return domain.Record{}, err
	}

	s.cache.Flush()
	log.Info(log.CatAudit, "record added", "op", op, "identifier", record.Identifier, "title", record.Title)
	return record, nil
}

// IssueRecord issues the identified record. The store persists before
// returning; a persistence failure propagates and is audited, since memory
// and disk then disagree until the next successful save.
func (s *Service) IssueRecord(ctx context.Context, identifier string) error {
	return s.transition(ctx, identifier, "library.issue", s.inv.Issue)
}

// ReturnRecord returns the identified record to the available state.
func (s *Service) ReturnRecord(ctx context.Context, identifier string) error {
	return s.transition(ctx, identifier, "library.return", s.inv.Return)
}

func (s *Service) transition(ctx context.Context, identifier, spanName string, apply func(string) error) error {
	_, span := s.tracer.Start(ctx, spanName)
	defer span.End()
	span.SetAttributes(attribute.String("record.identifier", identifier))

	op := uuid.NewString()
	if err := apply(identifier); err != nil {
		span.RecordError(err)
		log.Error(log.CatAudit, "transition failed", "op", op, "span", spanName, "identifier", identifier, "error", err)
		return err
	}

	s.cache.Flush()
	log.Info(log.CatAudit, "transition applied", "op", op, "span", spanName, "identifier", identifier)
	return nil
}

// Find looks up a single record by identifier. Absence is not an error.
func (s *Service) Find(ctx context.Context, identifier string) (domain.Record, bool) {
	_, span := s.tracer.Start(ctx, "library.find")
	defer span.End()
	return s.inv.FindByIdentifier(identifier)
}

// Search returns records matching the title query, serving repeated queries
// from the cache until the next mutation.
func (s *Service) Search(ctx context.Context, query string) []domain.Record {
	_, span := s.tracer.Start(ctx, "library.search")
	defer span.End()

	key := strings.ToLower(strings.TrimSpace(query))
	if hit, ok := s.cache.Get(key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return hit.([]domain.Record)
	}

	results := s.inv.SearchByTitle(query)
	s.cache.Set(key, results, gocache.DefaultExpiration)
	return results
}

// Reload re-reads the catalog from disk when the inventory supports it,
// then flushes the search cache. Used by the auto-refresh path when another
// process rewrote the file.
func (s *Service) Reload(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "library.reload")
	defer span.End()

	r, ok := s.inv.(Reloader)
	if !ok {
		return nil
	}
	if err := r.Load(); err != nil {
		span.RecordError(err)
		return err
	}
	s.cache.Flush()
	return nil
}

// List returns the full catalog in store order.
func (s *Service) List(ctx context.Context) []domain.Record {
	_, span := s.tracer.Start(ctx, "library.list")
	defer span.End()
	return s.inv.ListAll()
}

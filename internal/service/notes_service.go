package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"notesnest-web/internal/domain"
	"notesnest-web/internal/repository"
	"notesnest-web/internal/search"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// Catalog is an immutable snapshot of the approved notes with its search
// index.
type Catalog struct {
	Notes    []*domain.Note
	Subjects []string
	LoadedAt time.Time

	index *search.Index
}

func newCatalog(notes []*domain.Note, threshold float64) *Catalog {
	return &Catalog{
		Notes:    notes,
		Subjects: domain.Subjects(notes),
		LoadedAt: time.Now(),
		index:    search.NewIndex(notes, threshold),
	}
}

// Apply runs the fuzzy query, then narrows to the exact subject.
func (c *Catalog) Apply(f Filter) []*domain.Note {
	results := c.index.Search(f.Query)
	if f.Subject == "" {
		return results
	}

	filtered := results[:0]
	for _, n := range results {
		if n.Subject == f.Subject {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

type RetryPolicy struct {
	Attempts  uint
	BaseDelay time.Duration
	Timeout   time.Duration
}

type NotesService struct {
	repo      repository.NoteRepository
	retry     RetryPolicy
	threshold float64
	logger    *zap.Logger

	mu      sync.RWMutex
	catalog *Catalog
}

func NewNotesService(repo repository.NoteRepository, retry RetryPolicy, threshold float64, logger *zap.Logger) *NotesService {
	if retry.Attempts == 0 {
		retry.Attempts = 1
	}
	return &NotesService{
		repo:      repo,
		retry:     retry,
		threshold: threshold,
		logger:    logger,
	}
}

// Catalog returns the last successfully fetched snapshot, or nil.
func (s *NotesService) Catalog() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// FetchApproved loads the approved notes, retrying transport failures and
// 5xx answers with a linearly growing delay. The whole operation, waits
// included, is bounded by the policy timeout.
func (s *NotesService) FetchApproved(ctx context.Context) (*Catalog, error) {
	if s.retry.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.retry.Timeout)
		defer cancel()
	}

	attempt := 0
	operation := func() ([]*domain.Note, error) {
		attempt++
		notes, err := s.repo.ListApproved(ctx)
		if err == nil {
			return notes, nil
		}

		var apiErr *repository.APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	notes, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(newLinearBackOff(s.retry.BaseDelay)),
		backoff.WithMaxTries(s.retry.Attempts),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Warn("approved notes fetch failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("next_delay", next),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		s.logger.Error("approved notes unavailable", zap.Int("attempts", attempt), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch approved notes after %d attempt(s): %w", attempt, err)
	}

	return s.replace(notes), nil
}

// replace swaps in a new snapshot unless the collection is unchanged, in
// which case the current index is kept.
func (s *NotesService) replace(notes []*domain.Note) *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog != nil && sameNotes(s.catalog.Notes, notes) {
		refreshed := *s.catalog
		refreshed.LoadedAt = time.Now()
		s.catalog = &refreshed
		return s.catalog
	}

	s.catalog = newCatalog(notes, s.threshold)
	s.logger.Debug("search index rebuilt", zap.Int("notes", len(notes)))
	return s.catalog
}

func sameNotes(a, b []*domain.Note) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if *a[i] != *b[i] {
			return false
		}
	}
	return true
}

// Listing resolves the page state for f, fetching when refresh is set or
// nothing has been loaded yet.
func (s *NotesService) Listing(ctx context.Context, f Filter, refresh bool) *Listing {
	catalog := s.Catalog()
	if refresh || catalog == nil {
		var err error
		catalog, err = s.FetchApproved(ctx)
		if err != nil {
			return BuildListing(nil, err, f)
		}
	}
	return BuildListing(catalog, nil, f)
}

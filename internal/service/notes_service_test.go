package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"notesnest-web/internal/domain"
	"notesnest-web/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNotes() []*domain.Note {
	return []*domain.Note{
		{ID: "1", Title: "Linear Algebra Cheatsheet", Subject: "Mathematics", Contributor: "Ada"},
		{ID: "2", Title: "Quantum Mechanics Primer", Subject: "Physics", Contributor: "Erwin"},
		{ID: "3", Title: "Algebraic Topology Intro", Subject: "Mathematics", Contributor: "Emmy"},
		{ID: "4", Title: "Classical Mechanics", Subject: "physics", Contributor: "Isaac"},
	}
}

func fastRetry() RetryPolicy {
	return RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond, Timeout: 5 * time.Second}
}

func TestNotesService_RetriesExactlyThreeTimes(t *testing.T) {
	repo := &mockNoteRepo{approvedErrs: []error{errNetwork, errNetwork, errNetwork, errNetwork}}
	svc := NewNotesService(repo, fastRetry(), 0.4, nopLogger())

	listing := svc.Listing(context.Background(), Filter{}, true)

	assert.Equal(t, 3, repo.approvedCalls)
	assert.Equal(t, StateError, listing.State)
	assert.ErrorIs(t, listing.Err, errNetwork)
	assert.Nil(t, svc.Catalog())
}

func TestNotesService_RecoversWithinBudget(t *testing.T) {
	repo := &mockNoteRepo{
		approved:     sampleNotes(),
		approvedErrs: []error{errNetwork, &repository.APIError{StatusCode: http.StatusBadGateway}},
	}
	svc := NewNotesService(repo, fastRetry(), 0.4, nopLogger())

	catalog, err := svc.FetchApproved(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, repo.approvedCalls)
	assert.Len(t, catalog.Notes, 4)
	assert.Equal(t, []string{"Mathematics", "Physics", "physics"}, catalog.Subjects)
}

func TestNotesService_ClientErrorsAreNotRetried(t *testing.T) {
	repo := &mockNoteRepo{approvedErrs: []error{&repository.APIError{StatusCode: http.StatusNotFound}}}
	svc := NewNotesService(repo, fastRetry(), 0.4, nopLogger())

	_, err := svc.FetchApproved(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 1, repo.approvedCalls)
}

func TestNotesService_TimeoutBoundsRetries(t *testing.T) {
	repo := &mockNoteRepo{approvedErrs: []error{errNetwork, errNetwork, errNetwork}}
	svc := NewNotesService(repo, RetryPolicy{Attempts: 3, BaseDelay: time.Hour, Timeout: 20 * time.Millisecond}, 0.4, nopLogger())

	start := time.Now()
	_, err := svc.FetchApproved(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 1, repo.approvedCalls)
}

func TestNotesService_ListingUsesCachedCatalog(t *testing.T) {
	repo := &mockNoteRepo{approved: sampleNotes()}
	svc := NewNotesService(repo, fastRetry(), 0.4, nopLogger())

	first := svc.Listing(context.Background(), Filter{}, false)
	require.Equal(t, StateResults, first.State)
	second := svc.Listing(context.Background(), Filter{Query: "algebra"}, false)
	require.Equal(t, StateResults, second.State)

	assert.Equal(t, 1, repo.approvedCalls, "filtering must not refetch")

	svc.Listing(context.Background(), Filter{}, true)
	assert.Equal(t, 2, repo.approvedCalls)
}

func TestNotesService_IndexKeptWhenCollectionUnchanged(t *testing.T) {
	repo := &mockNoteRepo{approved: sampleNotes()}
	svc := NewNotesService(repo, fastRetry(), 0.4, nopLogger())

	c1, err := svc.FetchApproved(context.Background())
	require.NoError(t, err)
	c2, err := svc.FetchApproved(context.Background())
	require.NoError(t, err)
	assert.Same(t, c1.index, c2.index)

	repo.approved = append(repo.approved, &domain.Note{ID: "5", Title: "Genetics", Subject: "Biology"})
	c3, err := svc.FetchApproved(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, c1.index, c3.index)
	assert.Len(t, c3.Notes, 5)
}

func TestCatalog_Apply(t *testing.T) {
	catalog := newCatalog(sampleNotes(), 0.4)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter returns all", Filter{}, []string{"1", "2", "3", "4"}},
		{"subject is exact and case sensitive", Filter{Subject: "Physics"}, []string{"2"}},
		{"query finds title substring", Filter{Query: "quantum"}, []string{"2"}},
		{"query then subject", Filter{Query: "mechanics", Subject: "physics"}, []string{"4"}},
		{"unknown subject", Filter{Subject: "Biology"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, n := range catalog.Apply(tt.filter) {
				got = append(got, n.ID)
			}
			if tt.filter.Query == "" {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Subset(t, got, tt.want)
				for _, n := range catalog.Apply(tt.filter) {
					if tt.filter.Subject != "" {
						assert.Equal(t, tt.filter.Subject, n.Subject)
					}
				}
			}
		})
	}
}

func TestBuildListing_StatesAreExclusive(t *testing.T) {
	catalog := newCatalog(sampleNotes(), 0.4)
	empty := newCatalog(nil, 0.4)

	tests := []struct {
		name    string
		catalog *Catalog
		err     error
		filter  Filter
		want    ListingState
	}{
		{"not fetched yet", nil, nil, Filter{}, StateLoading},
		{"fetch failed", nil, errNetwork, Filter{}, StateError},
		{"error wins over stale catalog", catalog, errNetwork, Filter{}, StateError},
		{"no notes at all", empty, nil, Filter{}, StateEmpty},
		{"filter matches nothing", catalog, nil, Filter{Query: "zzzzqqq"}, StateEmpty},
		{"results", catalog, nil, Filter{Subject: "Mathematics"}, StateResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := BuildListing(tt.catalog, tt.err, tt.filter)
			assert.Equal(t, tt.want, l.State)
			switch l.State {
			case StateResults:
				assert.NotEmpty(t, l.Notes)
			case StateError:
				assert.Error(t, l.Err)
				assert.Empty(t, l.Notes)
			default:
				assert.Empty(t, l.Notes)
			}
		})
	}
}

func TestLinearBackOff(t *testing.T) {
	b := newLinearBackOff(10 * time.Millisecond)

	assert.Equal(t, 10*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 20*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 30*time.Millisecond, b.NextBackOff())

	b.Reset()
	assert.Equal(t, 10*time.Millisecond, b.NextBackOff())
}

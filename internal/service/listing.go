package service

import "notesnest-web/internal/domain"

type ListingState string

const (
	StateLoading ListingState = "loading"
	StateError   ListingState = "error"
	StateEmpty   ListingState = "empty"
	StateResults ListingState = "results"
)

// Filter is the visitor's search input. It lives only in the request.
type Filter struct {
	Query   string
	Subject string
}

// Listing is what the notes page shows. Exactly one state applies.
type Listing struct {
	State    ListingState
	Notes    []*domain.Note
	Subjects []string
	Err      error
}

// BuildListing derives the page state from the outcome of a fetch. A nil
// catalog with no error means the fetch has not happened yet.
func BuildListing(catalog *Catalog, fetchErr error, f Filter) *Listing {
	switch {
	case fetchErr != nil:
		return &Listing{State: StateError, Err: fetchErr}
	case catalog == nil:
		return &Listing{State: StateLoading}
	}

	notes := catalog.Apply(f)
	l := &Listing{Notes: notes, Subjects: catalog.Subjects}
	if len(notes) == 0 {
		l.State = StateEmpty
	} else {
		l.State = StateResults
	}
	return l
}

package pagination

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Item is one decoded element of a collection resource. Only the "id" field
// is meaningful to the pagination logic; everything else passes through
// untouched.
type Item = map[string]any

// Common errors returned by the fetcher.
var (
	// ErrNotFound is returned when the collection is empty.
	ErrNotFound = errors.New("collection is empty")

	// ErrInvalidLimit is returned when the configured page size is not >= 1.
	ErrInvalidLimit = errors.New("page limit must be >= 1")
)

// PageError wraps a transport or decode failure with the resource and offset
// of the failed page request.
type PageError struct {
	Resource string
	Offset   int
	Err      error
}

// Error implements the error interface.
func (e *PageError) Error() string {
	return fmt.Sprintf("fetch page of %s at offset %d: %v", e.Resource, e.Offset, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *PageError) Unwrap() error {
	return e.Err
}

// PageFetcher is the collaborator contract for fetching a single page of a
// collection resource. client.Client implements it.
type PageFetcher interface {
	FetchPage(ctx context.Context, resource string, query url.Values, limit, offset int) ([]Item, error)
}

// FetcherFunc adapts a plain function to the PageFetcher interface.
type FetcherFunc func(ctx context.Context, resource string, query url.Values, limit, offset int) ([]Item, error)

// FetchPage implements PageFetcher.
func (f FetcherFunc) FetchPage(ctx context.Context, resource string, query url.Values, limit, offset int) ([]Item, error) {
	return f(ctx, resource, query, limit, offset)
}

// phase is the state of one fetch walk.
type phase int

const (
	phaseFetching phase = iota
	phaseDone
	phaseFailed
)

// fetchState carries the walk's counters and the candidate answer. The walk
// is an explicit state machine: step observes one page and performs exactly
// one transition.
type fetchState struct {
	limit       int
	offset      int
	lastOfFull  Item // last item of the most recent full page
	sawFullPage bool
	result      Item
	err         error
	phase       phase
}

// step applies one observed page to the state.
//
// Transitions:
//   - empty page, no full page seen  -> Failed (ErrNotFound)
//   - empty page after full pages    -> Done (the page boundary landed
//     exactly on the collection end; the recorded full-page item wins)
//   - short page                     -> Done (its last item is the answer)
//   - full page                      -> Fetching, offset advanced by the
//     page length
func (s *fetchState) step(page []Item) {
	n := len(page)
	switch {
	case n == 0 && !s.sawFullPage:
		s.fail(ErrNotFound)
	case n == 0:
		s.finish(s.lastOfFull)
	case n < s.limit:
		s.finish(page[n-1])
	default:
		s.lastOfFull = page[n-1]
		s.sawFullPage = true
		s.offset += n
	}
}

func (s *fetchState) finish(item Item) {
	s.result = item
	s.phase = phaseDone
}

func (s *fetchState) fail(err error) {
	s.err = err
	s.phase = phaseFailed
}

// LastItemFetcher walks a collection resource in fixed-size pages and returns
// the last item of the full logical collection. The walk terminates within
// ceil(total/limit)+1 requests.
type LastItemFetcher struct {
	fetcher PageFetcher
	limit   int
	logger  zerolog.Logger
}

// NewLastItemFetcher creates a fetcher with the given page size.
func NewLastItemFetcher(fetcher PageFetcher, limit int) (*LastItemFetcher, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("page fetcher is required")
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidLimit, limit)
	}

	return &LastItemFetcher{
		fetcher: fetcher,
		limit:   limit,
		logger:  log.With().Str("component", "pagination").Logger(),
	}, nil
}

// FetchLast returns the last item of the filtered collection, ErrNotFound if
// the collection is empty, or a *PageError carrying the offending offset when
// a page request fails. Each page request is idempotent; the fetcher itself
// never re-issues a failed page, retry policy belongs to the transport.
func (f *LastItemFetcher) FetchLast(ctx context.Context, resource string, query url.Values) (Item, error) {
	st := &fetchState{limit: f.limit, phase: phaseFetching}
	requests := 0

	for st.phase == phaseFetching {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := f.fetcher.FetchPage(ctx, resource, query, st.limit, st.offset)
		if err != nil {
			st.fail(&PageError{Resource: resource, Offset: st.offset, Err: err})
			break
		}
		requests++

		f.logger.Debug().
			Str("resource", resource).
			Int("offset", st.offset).
			Int("page_len", len(page)).
			Msg("Fetched page")

		st.step(page)
	}

	if st.phase == phaseFailed {
		return nil, st.err
	}

	f.logger.Debug().
		Str("resource", resource).
		Int("requests", requests).
		Msg("Found last item")

	return st.result, nil
}

// Limit returns the configured page size.
func (f *LastItemFetcher) Limit() int {
	return f.limit
}

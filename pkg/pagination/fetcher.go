package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	pagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wallhaven_pages_fetched_total",
		Help: "Total number of listing pages fetched",
	})

	paginationAbortsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wallhaven_pagination_aborts_total",
		Help: "Total number of paginated fetches aborted by a page error",
	})
)

// ErrInvalidLimit is returned when Fetch is called with a negative limit.
var ErrInvalidLimit = errors.New("limit must not be negative")

// Config holds fetcher configuration.
type Config struct {
	// Delay between two page requests. Zero disables the pause.
	Delay time.Duration
	// Timeout per page fetch
	Timeout time.Duration
}

// DefaultConfig returns the configuration used against the public API:
// half a second between pages and a 10 second budget per page.
func DefaultConfig() Config {
	return Config{
		Delay:   500 * time.Millisecond,
		Timeout: 10 * time.Second,
	}
}

// Meta is the pagination block of a listing response.
type Meta struct {
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}

// Page is one page of a listing.
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// PageFetcher fetches a single page of a listing. Pages start at 1.
type PageFetcher[T any] interface {
	FetchPage(ctx context.Context, page int) (Page[T], error)
}

// PageFetcherFunc adapts a function to PageFetcher.
type PageFetcherFunc[T any] func(ctx context.Context, page int) (Page[T], error)

// FetchPage calls f.
func (f PageFetcherFunc[T]) FetchPage(ctx context.Context, page int) (Page[T], error) {
	return f(ctx, page)
}

// Fetcher accumulates the items of a paginated listing.
type Fetcher[T any] struct {
	fetcher PageFetcher[T]
	config  Config
	logger  zerolog.Logger
}

// NewFetcher creates a new fetcher.
func NewFetcher[T any](fetcher PageFetcher[T], config Config) *Fetcher[T] {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Delay < 0 {
		config.Delay = 0
	}

	return &Fetcher[T]{
		fetcher: fetcher,
		config:  config,
		logger:  log.With().Str("component", "pagination").Logger(),
	}
}

// Fetch returns up to limit items, following pages until the last one.
// A limit of 0 means every page.
//
// The first page decides the rest: an empty first page yields an empty result,
// and its meta tells how many pages exist. Any page error aborts the whole
// fetch and no items are returned.
func (f *Fetcher[T]) Fetch(ctx context.Context, limit int) ([]T, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidLimit, limit)
	}

	start := time.Now()

	first, err := f.fetchPage(ctx, 1)
	if err != nil {
		paginationAbortsTotal.Inc()
		return nil, fmt.Errorf("fetch page 1: %w", err)
	}

	if len(first.Items) == 0 {
		f.logger.Debug().Msg("First page empty")
		return []T{}, nil
	}

	if limit > 0 && len(first.Items) >= limit {
		f.logger.Debug().
			Int("limit", limit).
			Int("page_items", len(first.Items)).
			Msg("Limit reached on first page")
		return append([]T(nil), first.Items[:limit]...), nil
	}

	items := append(make([]T, 0, len(first.Items)), first.Items...)
	lastPage := first.Meta.LastPage

	f.logger.Debug().
		Int("last_page", lastPage).
		Int("limit", limit).
		Msg("Following pages")

	for page := 2; page <= lastPage; page++ {
		if limit > 0 && len(items) >= limit {
			break
		}

		if err := f.wait(ctx); err != nil {
			paginationAbortsTotal.Inc()
			return nil, err
		}

		next, err := f.fetchPage(ctx, page)
		if err != nil {
			f.logger.Warn().
				Err(err).
				Int("page", page).
				Int("accumulated", len(items)).
				Msg("Page fetch failed - discarding accumulated items")
			paginationAbortsTotal.Inc()
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}

		if len(next.Items) == 0 {
			f.logger.Debug().Int("page", page).Msg("Empty page before last page")
			break
		}

		for _, item := range next.Items {
			if limit > 0 && len(items) >= limit {
				break
			}
			items = append(items, item)
		}
	}

	f.logger.Info().
		Int("items", len(items)).
		Int("last_page", lastPage).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return items, nil
}

// fetchPage fetches one page with the per-page timeout.
func (f *Fetcher[T]) fetchPage(ctx context.Context, page int) (Page[T], error) {
	pageCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	result, err := f.fetcher.FetchPage(pageCtx, page)
	if err != nil {
		return Page[T]{}, err
	}
	pagesFetchedTotal.Inc()
	return result, nil
}

// wait pauses between requests.
func (f *Fetcher[T]) wait(ctx context.Context) error {
	if f.config.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(f.config.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("wait between pages: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

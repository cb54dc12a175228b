package pagination

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errNotFound  = errors.New("not found")
	errRateLimit = errors.New("rate limit exceeded")
)

// fakeSource serves numbered items from pre-sized pages and records requests.
type fakeSource struct {
	pageSizes []int
	lastPage  int
	failOn    map[int]error
	requested []int
}

func (s *fakeSource) FetchPage(ctx context.Context, page int) (Page[string], error) {
	s.requested = append(s.requested, page)
	if err, ok := s.failOn[page]; ok {
		return Page[string]{}, err
	}
	if page > len(s.pageSizes) {
		return Page[string]{Meta: Meta{CurrentPage: page, LastPage: s.lastPage}}, nil
	}

	items := make([]string, s.pageSizes[page-1])
	for i := range items {
		items[i] = fmt.Sprintf("p%d-%d", page, i)
	}
	return Page[string]{
		Items: items,
		Meta:  Meta{CurrentPage: page, LastPage: s.lastPage, PerPage: 24},
	}, nil
}

func noDelay() Config {
	return Config{Delay: 0, Timeout: time.Second}
}

func TestFetch_SinglePage(t *testing.T) {
	src := &fakeSource{pageSizes: []int{24}, lastPage: 1}

	items, err := NewFetcher[string](src, noDelay()).Fetch(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, items, 24)
	assert.Equal(t, []int{1}, src.requested)
}

func TestFetch_LimitSatisfiedByFirstPage(t *testing.T) {
	src := &fakeSource{pageSizes: []int{24, 24}, lastPage: 2}

	items, err := NewFetcher[string](src, noDelay()).Fetch(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, items, 10)
	assert.Equal(t, "p1-0", items[0])
	assert.Equal(t, "p1-9", items[9])
	assert.Equal(t, []int{1}, src.requested)
}

func TestFetch_AllPages(t *testing.T) {
	src := &fakeSource{pageSizes: []int{24, 24, 7}, lastPage: 3}

	items, err := NewFetcher[string](src, noDelay()).Fetch(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, items, 24+24+7)
	assert.Equal(t, []int{1, 2, 3}, src.requested)
	assert.Equal(t, "p3-6", items[len(items)-1])
}

func TestFetch_LimitAcrossPages(t *testing.T) {
	src := &fakeSource{pageSizes: []int{24, 24, 24}, lastPage: 3}

	items, err := NewFetcher[string](src, noDelay()).Fetch(context.Background(), 30)

	require.NoError(t, err)
	require.Len(t, items, 30)
	assert.Equal(t, "p2-5", items[29])
	assert.Equal(t, []int{1, 2}, src.requested)
}

func TestFetch_LimitLargerThanListing(t *testing.T) {
	src := &fakeSource{pageSizes: []int{24, 3}, lastPage: 2}

	items, err := NewFetcher[string](src, noDelay()).Fetch(context.Background(), 100)

	require.NoError(t, err)
	assert.Len(t, items, 27)
	assert.Equal(t, []int{1, 2}, src.requested)
}

func TestFetch_EmptyFirstPage(t *testing.T) {
	src := &fakeSource{pageSizes: []int{0}, lastPage: 1}

	items, err := NewFetcher[string](src, noDelay()).Fetch(context.Background(), 0)

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, []int{1}, src.requested)
}

func TestFetch_EmptyPageStopsEarly(t *testing.T) {
	src := &fakeSource{pageSizes: []int{24, 0, 24}, lastPage: 3}

	items, err := NewFetcher[string](src, noDelay()).Fetch(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, items, 24)
	assert.Equal(t, []int{1, 2}, src.requested)
}

func TestFetch_FirstPageError(t *testing.T) {
	src := &fakeSource{pageSizes: []int{24}, lastPage: 1, failOn: map[int]error{1: errNotFound}}

	items, err := NewFetcher[string](src, noDelay()).Fetch(context.Background(), 0)

	assert.ErrorIs(t, err, errNotFound)
	assert.Nil(t, items)
}

func TestFetch_LaterPageErrorDiscardsItems(t *testing.T) {
	src := &fakeSource{
		pageSizes: []int{24, 24, 24},
		lastPage:  3,
		failOn:    map[int]error{3: errRateLimit},
	}

	items, err := NewFetcher[string](src, noDelay()).Fetch(context.Background(), 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, errRateLimit)
	assert.Contains(t, err.Error(), "fetch page 3")
	assert.Nil(t, items)
	assert.Equal(t, []int{1, 2, 3}, src.requested)
}

func TestFetch_NegativeLimit(t *testing.T) {
	src := &fakeSource{pageSizes: []int{24}, lastPage: 1}

	_, err := NewFetcher[string](src, noDelay()).Fetch(context.Background(), -1)

	assert.ErrorIs(t, err, ErrInvalidLimit)
	assert.Empty(t, src.requested)
}

func TestFetch_DelayBetweenPages(t *testing.T) {
	src := &fakeSource{pageSizes: []int{1, 1, 1}, lastPage: 3}
	cfg := Config{Delay: 20 * time.Millisecond, Timeout: time.Second}

	start := time.Now()
	items, err := NewFetcher[string](src, cfg).Fetch(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestFetch_ContextCancelledDuringDelay(t *testing.T) {
	src := &fakeSource{pageSizes: []int{1, 1}, lastPage: 2}
	cfg := Config{Delay: time.Minute, Timeout: time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	items, err := NewFetcher[string](src, cfg).Fetch(ctx, 0)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, items)
	assert.Equal(t, []int{1}, src.requested)
}

func TestPageFetcherFunc(t *testing.T) {
	calls := 0
	fn := PageFetcherFunc[int](func(ctx context.Context, page int) (Page[int], error) {
		calls++
		return Page[int]{Items: []int{page}, Meta: Meta{LastPage: 2}}, nil
	})

	items, err := NewFetcher[int](fn, noDelay()).Fetch(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, items)
	assert.Equal(t, 2, calls)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 500*time.Millisecond, cfg.Delay)
	assert.Equal(t, 10*time.Second, cfg.Timeout)

	f := NewFetcher[int](PageFetcherFunc[int](nil), Config{Delay: -time.Second})
	assert.Equal(t, time.Duration(0), f.config.Delay)
	assert.Equal(t, 10*time.Second, f.config.Timeout)
}

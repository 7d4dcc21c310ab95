package fetcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettboylen/redditscope/models"
)

// scriptedSource replays a fixed sequence of pages, or an endless cursor chain when pages is nil
type scriptedSource struct {
	mu     sync.Mutex
	pages  []models.Page
	errs   map[int]error
	calls  int
	afters []string
	limits []int
}

func (s *scriptedSource) next(after string, limit int) (models.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.calls
	s.calls++
	s.afters = append(s.afters, after)
	s.limits = append(s.limits, limit)

	if err, ok := s.errs[n]; ok {
		return models.Page{}, err
	}
	if s.pages == nil {
		id := fmt.Sprintf("p%d", n)
		return models.Page{
			Items: []models.Item{{ID: id, Subreddit: "golang", SubredditType: "public"}},
			After: "t3_" + id,
		}, nil
	}
	if n >= len(s.pages) {
		return models.Page{}, nil
	}
	return s.pages[n], nil
}

func (s *scriptedSource) GetPage(ctx context.Context, username string, kind models.ListingKind, after string, limit int) (models.Page, error) {
	return s.next(after, limit)
}

func (s *scriptedSource) SearchByAuthor(ctx context.Context, username string, after string) (models.Page, error) {
	return s.next(after, 0)
}

func items(ids ...string) []models.Item {
	out := make([]models.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Item{ID: id, Subreddit: "golang", SubredditType: "public"})
	}
	return out
}

func newTestFetcher(src *scriptedSource) *Fetcher {
	log, _ := test.NewNullLogger()
	return NewFetcher(src, src, Options{PageDelay: -1, SearchDelay: -1}, log)
}

func TestFetchListingStopsAtMaxPages(t *testing.T) {
	src := &scriptedSource{}
	f := newTestFetcher(src)

	got, err := f.FetchListing(context.Background(), "spez", models.ListingSubmitted)
	require.NoError(t, err)

	assert.Equal(t, 10, src.calls)
	assert.Len(t, got, 10)
	assert.Equal(t, "", src.afters[0])
	assert.Equal(t, "t3_p0", src.afters[1])
	assert.Equal(t, 100, src.limits[0])
}

func TestFetchListingStopConditions(t *testing.T) {
	tests := []struct {
		name      string
		pages     []models.Page
		errs      map[int]error
		wantIDs   []string
		wantCalls int
	}{
		{
			name:      "empty first page",
			pages:     []models.Page{{}},
			wantCalls: 1,
		},
		{
			name: "no further cursor",
			pages: []models.Page{
				{Items: items("a", "b"), After: "t3_b"},
				{Items: items("c")},
			},
			wantIDs:   []string{"a", "b", "c"},
			wantCalls: 2,
		},
		{
			name: "empty page ends pagination",
			pages: []models.Page{
				{Items: items("a"), After: "t3_a"},
				{After: "t3_x"},
			},
			wantIDs:   []string{"a"},
			wantCalls: 2,
		},
		{
			name: "failed page keeps partial results",
			pages: []models.Page{
				{Items: items("a"), After: "t3_a"},
				{Items: items("b"), After: "t3_b"},
			},
			errs:      map[int]error{1: fmt.Errorf("page: %w", models.ErrUnreachable)},
			wantIDs:   []string{"a"},
			wantCalls: 2,
		},
		{
			name:      "malformed listing is not an error",
			pages:     []models.Page{},
			errs:      map[int]error{0: models.ErrMalformedListing},
			wantCalls: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := &scriptedSource{pages: tc.pages, errs: tc.errs}
			f := newTestFetcher(src)

			got, err := f.FetchListing(context.Background(), "spez", models.ListingComments)
			require.NoError(t, err)

			var ids []string
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
			assert.Equal(t, tc.wantCalls, src.calls)
		})
	}
}

func TestFetchListingPropagatesRateLimit(t *testing.T) {
	src := &scriptedSource{
		pages: []models.Page{{Items: items("a"), After: "t3_a"}},
		errs:  map[int]error{1: models.ErrRateLimited},
	}
	f := newTestFetcher(src)

	got, err := f.FetchListing(context.Background(), "spez", models.ListingSubmitted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrRateLimited))
	assert.Len(t, got, 1)
}

func TestFetchListingHonoursCancellation(t *testing.T) {
	src := &scriptedSource{}
	log, _ := test.NewNullLogger()
	f := NewFetcher(src, src, Options{PageDelay: time.Hour}, log)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	got, err := f.FetchListing(ctx, "spez", models.ListingSubmitted)
	require.Error(t, err)
	assert.Equal(t, 1, src.calls)
	assert.Len(t, got, 1)
}

func TestFetchListingBySearchDedups(t *testing.T) {
	src := &scriptedSource{pages: []models.Page{
		{Items: items("a", "b", "c"), After: "t3_c"},
		{Items: items("c", "d", "a"), After: "t3_d"},
		{Items: items("e")},
	}}
	f := newTestFetcher(src)

	got, err := f.FetchListingBySearch(context.Background(), "spez")
	require.NoError(t, err)

	var ids []string
	for _, it := range got {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)
	assert.Equal(t, 3, src.calls)
}

func TestCheckIfHidden(t *testing.T) {
	userItems := []models.Item{
		{ID: "u1", SubredditType: "user"},
		{ID: "u2", SubredditType: "user"},
	}
	mixed := append([]models.Item{{ID: "p1", SubredditType: "public"}}, userItems...)

	tests := []struct {
		name  string
		pages []models.Page
		errs  map[int]error
		want  bool
	}{
		{"ten community posts", []models.Page{{Items: items("1", "2", "3", "4", "5", "6", "7", "8", "9", "10")}}, nil, false},
		{"zero items", []models.Page{{}}, nil, true},
		{"only profile posts", []models.Page{{Items: userItems}}, nil, true},
		{"some community posts", []models.Page{{Items: mixed}}, nil, false},
		{"unreadable listing", nil, map[int]error{0: models.ErrMalformedListing}, true},
		{"request error", nil, map[int]error{0: models.ErrUnreachable}, false},
		{"rate limited", nil, map[int]error{0: models.ErrRateLimited}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := &scriptedSource{pages: tc.pages, errs: tc.errs}
			if src.pages == nil {
				src.pages = []models.Page{}
			}
			f := newTestFetcher(src)

			assert.Equal(t, tc.want, f.CheckIfHidden(context.Background(), "spez"))
			assert.Equal(t, 1, src.calls)
			assert.Equal(t, 10, src.limits[0])
		})
	}
}

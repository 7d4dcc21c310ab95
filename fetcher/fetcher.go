package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/brettboylen/redditscope/models"
)

const (
	defaultMaxPages    = 10
	defaultPageSize    = 100
	defaultSampleSize  = 10
	defaultPageDelay   = 120 * time.Millisecond
	defaultSearchDelay = 150 * time.Millisecond

	// subreddit_type of a user's own profile space
	profileSubredditType = "user"
)

// ListingSource serves pages of a user's submitted or comments listing
type ListingSource interface {
	GetPage(ctx context.Context, username string, kind models.ListingKind, after string, limit int) (models.Page, error)
}

// SearchSource serves pages of the search index filtered by author
type SearchSource interface {
	SearchByAuthor(ctx context.Context, username string, after string) (models.Page, error)
}

// ProfileSource serves a user's profile record
type ProfileSource interface {
	GetProfile(ctx context.Context, username string) (models.Profile, error)
}

// Options bounds pagination. Zero values take the defaults; a negative delay disables it.
type Options struct {
	MaxPages    int
	PageSize    int
	SampleSize  int
	PageDelay   time.Duration
	SearchDelay time.Duration
}

// Fetcher walks cursor-paginated listings
type Fetcher struct {
	listings ListingSource
	search   SearchSource
	opts     Options
	log      *logrus.Logger
}

// NewFetcher creates a new fetcher over the given sources
func NewFetcher(listings ListingSource, search SearchSource, opts Options, log *logrus.Logger) *Fetcher {
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.SampleSize <= 0 {
		opts.SampleSize = defaultSampleSize
	}
	if opts.PageDelay == 0 {
		opts.PageDelay = defaultPageDelay
	}
	if opts.SearchDelay == 0 {
		opts.SearchDelay = defaultSearchDelay
	}

	return &Fetcher{
		listings: listings,
		search:   search,
		opts:     opts,
		log:      log,
	}
}

// pageFunc fetches the page after the given cursor
type pageFunc func(ctx context.Context, after string) (models.Page, error)

// FetchListing collects up to MaxPages pages of a user's listing.
// A failed page ends pagination with the items gathered so far; only a rate
// limit or cancellation is returned as an error, alongside those items.
func (f *Fetcher) FetchListing(ctx context.Context, username string, kind models.ListingKind) ([]models.Item, error) {
	fetch := func(ctx context.Context, after string) (models.Page, error) {
		return f.listings.GetPage(ctx, username, kind, after, f.opts.PageSize)
	}

	items, err := f.paginate(ctx, fetch, f.opts.PageDelay, nil)

	f.log.WithFields(logrus.Fields{
		"username": username,
		"kind":     kind,
		"count":    len(items),
	}).Debug("Fetched listing")

	return items, err
}

// FetchListingBySearch collects a user's posts from the search index, keeping each id once
func (f *Fetcher) FetchListingBySearch(ctx context.Context, username string) ([]models.Item, error) {
	fetch := func(ctx context.Context, after string) (models.Page, error) {
		return f.search.SearchByAuthor(ctx, username, after)
	}

	seen := make(map[string]struct{})
	keep := func(item models.Item) bool {
		if _, ok := seen[item.ID]; ok {
			return false
		}
		seen[item.ID] = struct{}{}
		return true
	}

	items, err := f.paginate(ctx, fetch, f.opts.SearchDelay, keep)

	f.log.WithFields(logrus.Fields{
		"username": username,
		"count":    len(items),
	}).Debug("Fetched listing from search index")

	return items, err
}

// CheckIfHidden samples the submitted listing to decide whether the profile hides its posts.
// An unreadable listing or an empty page reads as hidden, while any other failure reads as visible.
func (f *Fetcher) CheckIfHidden(ctx context.Context, username string) bool {
	page, err := f.listings.GetPage(ctx, username, models.ListingSubmitted, "", f.opts.SampleSize)
	if err != nil {
		if errors.Is(err, models.ErrMalformedListing) {
			return true
		}
		f.log.WithError(err).WithField("username", username).Debug("Visibility check failed, assuming visible")
		return false
	}

	if len(page.Items) == 0 {
		return true
	}

	for _, item := range page.Items {
		if item.SubredditType != profileSubredditType {
			return false
		}
	}
	return true
}

func (f *Fetcher) paginate(ctx context.Context, fetch pageFunc, delay time.Duration, keep func(models.Item) bool) ([]models.Item, error) {
	limiter := newPageLimiter(delay)

	var items []models.Item
	after := ""

	for page := 0; page < f.opts.MaxPages; page++ {
		if page > 0 {
			if err := limiter.Wait(ctx); err != nil {
				return items, err
			}
		}

		res, err := fetch(ctx, after)
		if err != nil {
			if errors.Is(err, models.ErrRateLimited) || ctx.Err() != nil {
				return items, fmt.Errorf("page %d: %w", page+1, err)
			}
			f.log.WithError(err).WithField("page", page+1).Debug("Page fetch failed, keeping partial results")
			break
		}
		if len(res.Items) == 0 {
			break
		}

		for _, item := range res.Items {
			if keep == nil || keep(item) {
				items = append(items, item)
			}
		}

		if res.After == "" {
			break
		}
		after = res.After
	}

	return items, nil
}

// newPageLimiter spaces consecutive page requests by delay
func newPageLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	// the first Wait consumes the initial token, so the next page waits a full delay
	limiter := rate.NewLimiter(rate.Every(delay), 1)
	limiter.Allow()
	return limiter
}

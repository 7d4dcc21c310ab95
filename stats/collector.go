package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/brettboylen/redditscope/db"
	"github.com/brettboylen/redditscope/fetcher"
	"github.com/brettboylen/redditscope/models"
	"github.com/brettboylen/redditscope/utils"
)

const (
	defaultDatabasePath = ":memory:"

	// fewer submitted posts than this triggers the search index fallback
	searchFallbackThreshold = 5
)

// classified errors, in the order they are matched
var knownErrors = []error{
	models.ErrInvalidUsername,
	models.ErrNotFound,
	models.ErrSuspended,
	models.ErrRateLimited,
	models.ErrInvalidResponse,
	models.ErrUnreachable,
}

// CollectorOptions configures the collector
type CollectorOptions struct {
	Location     *time.Location
	DatabasePath string
	Now          func() time.Time
}

// session is the latest analysis and the explorer database loaded with its items
type session struct {
	analysis *models.Analysis
	database *db.Database
}

// Collector fetches a user's activity, analyses it and keeps the result as the current session
type Collector struct {
	profiles fetcher.ProfileSource
	fetcher  *fetcher.Fetcher
	opts     CollectorOptions
	current  *session
	log      *logrus.Logger
	mutex    sync.RWMutex
}

// NewCollector creates a new collector
func NewCollector(
	profiles fetcher.ProfileSource,
	f *fetcher.Fetcher,
	opts CollectorOptions,
	log *logrus.Logger,
) *Collector {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.DatabasePath == "" {
		opts.DatabasePath = defaultDatabasePath
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Collector{
		profiles: profiles,
		fetcher:  f,
		opts:     opts,
		log:      log,
	}
}

// Analyze runs the whole pipeline for one user and makes the result the current session.
// Every returned error is an *models.AnalysisError carrying a message safe to show users.
func (c *Collector) Analyze(ctx context.Context, raw string) (*models.Analysis, error) {
	username, err := utils.NormalizeUsername(raw)
	if err != nil {
		return nil, c.fail(err, raw)
	}

	logger := c.log.WithField("username", username)
	logger.Info("Starting analysis")

	profile, err := c.profiles.GetProfile(ctx, username)
	if err != nil {
		return nil, c.fail(err, username)
	}

	var (
		posts, comments      []models.Item
		hidden, usedFallback bool
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		posts, hidden, usedFallback, err = c.fetchPosts(gctx, username)
		return err
	})

	g.Go(func() error {
		var err error
		comments, err = c.fetcher.FetchListing(gctx, username, models.ListingComments)
		if err != nil {
			return fmt.Errorf("failed to fetch comments: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, c.fail(err, username)
	}

	profile.IsHidden = hidden
	profile.UsedSearchFallback = usedFallback

	analysis := Assemble(profile, posts, comments, Options{
		Now:      c.opts.Now(),
		Location: c.opts.Location,
	})

	if err := c.replaceSession(analysis); err != nil {
		return nil, c.fail(err, username)
	}

	logger.WithFields(logrus.Fields{
		"analysis_id":     analysis.ID,
		"posts":           len(analysis.Posts),
		"comments":        len(analysis.Comments),
		"hidden":          hidden,
		"search_fallback": usedFallback,
		"persona":         analysis.Persona.Label,
		"type":            analysis.PersonalityType.Code,
	}).Info("Analysis complete")

	return analysis, nil
}

// fetchPosts checks visibility, reads the submitted listing and swaps in the
// search index results when they recover more posts
func (c *Collector) fetchPosts(ctx context.Context, username string) ([]models.Item, bool, bool, error) {
	hidden := c.fetcher.CheckIfHidden(ctx, username)

	posts, err := c.fetcher.FetchListing(ctx, username, models.ListingSubmitted)
	if err != nil {
		return nil, hidden, false, fmt.Errorf("failed to fetch posts: %w", err)
	}

	if !hidden && len(posts) >= searchFallbackThreshold {
		return posts, hidden, false, nil
	}

	c.log.WithFields(logrus.Fields{
		"username": username,
		"hidden":   hidden,
		"posts":    len(posts),
	}).Info("Searching index for posts")

	found, err := c.fetcher.FetchListingBySearch(ctx, username)
	if err != nil {
		return nil, hidden, false, fmt.Errorf("failed to search posts: %w", err)
	}

	if len(found) > len(posts) {
		return found, hidden, true, nil
	}
	return posts, hidden, false, nil
}

// replaceSession loads the analysis into a fresh explorer database and drops the previous session
func (c *Collector) replaceSession(analysis *models.Analysis) error {
	database, err := db.NewDatabase(c.opts.DatabasePath, c.log)
	if err != nil {
		return fmt.Errorf("failed to open explorer database: %w", err)
	}

	if err := database.LoadItems(analysis.Posts, analysis.Comments); err != nil {
		database.Close()
		return fmt.Errorf("failed to load explorer items: %w", err)
	}

	c.mutex.Lock()
	previous := c.current
	c.current = &session{analysis: analysis, database: database}
	c.mutex.Unlock()

	if previous != nil {
		if err := previous.database.Close(); err != nil {
			c.log.WithError(err).WithField("analysis_id", previous.analysis.ID).Warn("Failed to close previous explorer database")
		}
	}

	return nil
}

// fail converts err into an *models.AnalysisError and logs it
func (c *Collector) fail(err error, username string) error {
	kind := err
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			kind = known
			break
		}
	}

	c.log.WithError(err).WithField("username", username).Error("Analysis failed")

	return models.NewAnalysisError(kind, username)
}

// Current returns the current analysis when it belongs to username
func (c *Collector) Current(username string) (*models.Analysis, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.current == nil || !strings.EqualFold(c.current.analysis.Profile.Name, username) {
		return nil, false
	}
	return c.current.analysis, true
}

// Explore queries the current session's items. It returns ErrNoSession when
// the current session belongs to another user or there is none.
func (c *Collector) Explore(username string, q models.ItemQuery) (models.ItemPage, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.current == nil || !strings.EqualFold(c.current.analysis.Profile.Name, username) {
		return models.ItemPage{}, models.ErrNoSession
	}
	return c.current.database.QueryItems(q)
}

// Close closes the current session's database
func (c *Collector) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.current == nil {
		return nil
	}
	err := c.current.database.Close()
	c.current = nil
	return err
}

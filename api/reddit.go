package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/brettboylen/redditscope/models"
)

const (
	defaultBaseURL  = "https://www.reddit.com"
	defaultTimeout  = 9 * time.Second
	defaultPageSize = 100 // max items per listing request
)

// RedditAPI reads public Reddit JSON endpoints, trying each delivery route in order
type RedditAPI struct {
	baseURL        string
	userAgent      string
	routes         []Route
	requestTimeout time.Duration
	client         *resty.Client
	metrics        *Metrics
	log            *logrus.Logger
}

// Options configures a RedditAPI
type Options struct {
	BaseURL        string
	UserAgent      string
	Routes         []Route
	RequestTimeout time.Duration
	Metrics        *Metrics
}

// redditItem is the data of a t1 (comment) or t3 (post) thing
type redditItem struct {
	ID                  string   `json:"id"`
	Author              string   `json:"author"`
	Subreddit           string   `json:"subreddit"`
	SubredditType       string   `json:"subreddit_type"`
	CreatedUTC          float64  `json:"created_utc"`
	Score               int      `json:"score"`
	Title               string   `json:"title"`
	SelfText            string   `json:"selftext"`
	Body                string   `json:"body"`
	Permalink           string   `json:"permalink"`
	TotalAwardsReceived int      `json:"total_awards_received"`
	IsVideo             bool     `json:"is_video"`
	IsGallery           bool     `json:"is_gallery"`
	IsSelf              bool     `json:"is_self"`
	URL                 string   `json:"url"`
	NumComments         int      `json:"num_comments"`
	UpvoteRatio         *float64 `json:"upvote_ratio"`
	LinkTitle           string   `json:"link_title"`
	LinkPermalink       string   `json:"link_permalink"`
	LinkID              string   `json:"link_id"`
}

// RedditListing represents the Reddit listing response structure
type RedditListing struct {
	Kind string `json:"kind"`
	Data *struct {
		After    string `json:"after"`
		Children []struct {
			Kind string      `json:"kind"`
			Data *redditItem `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// redditAbout represents the about.json response, including Reddit's 404 body
type redditAbout struct {
	Kind    string          `json:"kind"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Data    *struct {
		Name             string  `json:"name"`
		CreatedUTC       float64 `json:"created_utc"`
		LinkKarma        int     `json:"link_karma"`
		CommentKarma     int     `json:"comment_karma"`
		IsSuspended      bool    `json:"is_suspended"`
		IsEmployee       bool    `json:"is_employee"`
		IsGold           bool    `json:"is_gold"`
		HasVerifiedEmail bool    `json:"has_verified_email"`
		IconImg          string  `json:"icon_img"`
		SnoovatarImg     string  `json:"snoovatar_img"`
	} `json:"data"`
}

// NewRedditAPI creates a new Reddit API client
func NewRedditAPI(opts Options, log *logrus.Logger) *RedditAPI {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if len(opts.Routes) == 0 {
		opts.Routes = DefaultRoutes()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultTimeout
	}

	client := resty.New().
		SetHeader("Accept", "application/json")
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &RedditAPI{
		baseURL:        opts.BaseURL,
		userAgent:      opts.UserAgent,
		routes:         opts.Routes,
		requestTimeout: opts.RequestTimeout,
		client:         client,
		metrics:        opts.Metrics,
		log:            log,
	}
}

// GetProfile fetches a user's about.json
func (r *RedditAPI) GetProfile(ctx context.Context, username string) (models.Profile, error) {
	endpoint := fmt.Sprintf("%s/user/%s/about.json", r.baseURL, url.PathEscape(username))

	var about redditAbout
	if err := r.fetchJSON(ctx, endpoint, &about); err != nil {
		return models.Profile{}, err
	}

	if string(about.Error) == "404" || about.Message == "Not Found" {
		return models.Profile{}, fmt.Errorf("u/%s: %w", username, models.ErrNotFound)
	}
	if about.Data != nil && about.Data.IsSuspended {
		return models.Profile{}, fmt.Errorf("u/%s: %w", username, models.ErrSuspended)
	}
	if about.Data == nil || about.Kind != "t2" {
		return models.Profile{}, fmt.Errorf("about.json for u/%s has kind %q: %w", username, about.Kind, models.ErrInvalidResponse)
	}

	d := about.Data
	return models.Profile{
		Name:             d.Name,
		CreatedUTC:       d.CreatedUTC,
		LinkKarma:        d.LinkKarma,
		CommentKarma:     d.CommentKarma,
		IsSuspended:      d.IsSuspended,
		IsEmployee:       d.IsEmployee,
		IsGold:           d.IsGold,
		HasVerifiedEmail: d.HasVerifiedEmail,
		IconImg:          d.IconImg,
		SnoovatarImg:     d.SnoovatarImg,
	}, nil
}

// GetPage fetches one page of a user's submitted or comments listing
func (r *RedditAPI) GetPage(ctx context.Context, username string, kind models.ListingKind, after string, limit int) (models.Page, error) {
	if limit <= 0 || limit > defaultPageSize {
		limit = defaultPageSize
	}

	endpoint := fmt.Sprintf("%s/user/%s/%s.json?limit=%d", r.baseURL, url.PathEscape(username), kind, limit)
	if after != "" {
		endpoint += "&after=" + url.QueryEscape(after)
	}

	r.log.WithFields(logrus.Fields{
		"username": username,
		"kind":     kind,
		"after":    after,
		"limit":    limit,
	}).Debug("Fetching listing page")

	return r.fetchPage(ctx, endpoint)
}

// SearchByAuthor fetches one page of the search index filtered to posts by username
func (r *RedditAPI) SearchByAuthor(ctx context.Context, username string, after string) (models.Page, error) {
	q := fmt.Sprintf("author:%q", username)
	endpoint := fmt.Sprintf("%s/search.json?q=%s&sort=relevance&limit=%d&type=link", r.baseURL, url.QueryEscape(q), defaultPageSize)
	if after != "" {
		endpoint += "&after=" + url.QueryEscape(after)
	}

	r.log.WithFields(logrus.Fields{
		"username": username,
		"after":    after,
	}).Debug("Fetching search page")

	return r.fetchPage(ctx, endpoint)
}

func (r *RedditAPI) fetchPage(ctx context.Context, endpoint string) (models.Page, error) {
	var listing RedditListing
	if err := r.fetchJSON(ctx, endpoint, &listing); err != nil {
		return models.Page{}, err
	}
	if listing.Data == nil || listing.Data.Children == nil {
		return models.Page{}, models.ErrMalformedListing
	}

	items := make([]models.Item, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		if child.Data == nil {
			continue
		}
		items = append(items, toItem(child.Kind, child.Data))
	}

	return models.Page{Items: items, After: listing.Data.After}, nil
}

func toItem(thingKind string, d *redditItem) models.Item {
	item := models.Item{
		ID:            d.ID,
		Author:        d.Author,
		Subreddit:     d.Subreddit,
		SubredditType: d.SubredditType,
		CreatedUTC:    d.CreatedUTC,
		Score:         d.Score,
		Permalink:     d.Permalink,
		TotalAwards:   d.TotalAwardsReceived,
	}

	if thingKind == "t1" {
		item.Kind = models.KindComment
		item.Body = d.Body
		item.ParentPostTitle = d.LinkTitle
		item.LinkPermalink = d.LinkPermalink
		item.LinkID = d.LinkID
		return item
	}

	item.Kind = models.KindPost
	item.Title = d.Title
	item.Body = d.SelfText
	item.IsVideo = d.IsVideo
	item.IsGallery = d.IsGallery
	item.IsSelf = d.IsSelf
	item.URL = d.URL
	item.NumComments = d.NumComments
	item.UpvoteRatio = d.UpvoteRatio
	return item
}

// fetchJSON decodes target into out, trying each route in priority order.
// A 429 from any route ends the attempt immediately with ErrRateLimited.
func (r *RedditAPI) fetchJSON(ctx context.Context, target string, out interface{}) error {
	var lastErr error

	for _, route := range r.routes {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := r.tryRoute(ctx, route, target, out)
		if err == nil {
			return nil
		}
		if errors.Is(err, models.ErrRateLimited) {
			return err
		}

		lastErr = err
		r.log.WithFields(logrus.Fields{
			"route":  route.Name,
			"target": target,
		}).WithError(err).Debug("Route failed, trying next")
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: %v", models.ErrUnreachable, lastErr)
}

func (r *RedditAPI) tryRoute(ctx context.Context, route Route, target string, out interface{}) error {
	attemptCtx, cancel := context.WithTimeout(ctx, r.requestTimeout)
	defer cancel()

	resp, err := r.client.R().
		SetContext(attemptCtx).
		Get(route.Wrap(target))
	if err != nil {
		r.metrics.observe(route.Name, outcomeTransportError)
		return fmt.Errorf("failed to execute request: %w", err)
	}

	r.logRateLimits(route.Name, resp.Header())

	status := resp.StatusCode()
	if status == http.StatusTooManyRequests {
		r.metrics.observe(route.Name, outcomeRateLimited)
		r.log.WithFields(logrus.Fields{
			"route":     route.Name,
			"reset_sec": getHeaderAsInt(resp.Header(), "X-Ratelimit-Reset"),
		}).Warn("Reddit API rate limit hit")
		return models.ErrRateLimited
	}
	if (status < 200 || status > 299) && status != http.StatusNotFound {
		r.metrics.observe(route.Name, outcomeHTTPError)
		return fmt.Errorf("request failed with status %d", status)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		r.metrics.observe(route.Name, outcomeDecodeError)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	r.metrics.observe(route.Name, outcomeOK)
	return nil
}

// logRateLimits records Reddit's rate limit headers for debugging
func (r *RedditAPI) logRateLimits(route string, header http.Header) {
	// X-Ratelimit-Used: Approximate number of requests used in this period
	// X-Ratelimit-Remaining: Approximate number of requests left to use
	// X-Ratelimit-Reset: Approximate number of seconds to end of period
	used := getHeaderAsInt(header, "X-Ratelimit-Used")
	reset := getHeaderAsInt(header, "X-Ratelimit-Reset")

	// proxies usually strip these
	if reset == 0 && used == 0 {
		return
	}

	r.log.WithFields(logrus.Fields{
		"route":     route,
		"used":      used,
		"remaining": getHeaderAsInt(header, "X-Ratelimit-Remaining"),
		"reset_sec": reset,
	}).Debug("Reddit rate limit status")
}

func getHeaderAsInt(header http.Header, name string) int {
	value := header.Get(name)
	if value == "" {
		return 0
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		// reddit sends fractional values for remaining, e.g. "596.0"
		floatValue, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil {
			return 0
		}
		return int(floatValue)
	}

	return intValue
}

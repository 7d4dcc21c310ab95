package models

import (
	"time"
)

// ListingKind names a user listing endpoint
type ListingKind string

const (
	ListingSubmitted ListingKind = "submitted"
	ListingComments  ListingKind = "comments"
)

// Item kinds
const (
	KindPost    = "post"
	KindComment = "comment"
)

// Item represents a single post or comment authored by the analysed user
type Item struct {
	Kind          string  `json:"kind"`
	ID            string  `json:"id"`
	Author        string  `json:"author"`
	Subreddit     string  `json:"subreddit"`
	SubredditType string  `json:"subreddit_type,omitempty"`
	CreatedUTC    float64 `json:"created_utc"`
	Score         int     `json:"score"`
	Title         string  `json:"title,omitempty"`
	Body          string  `json:"body,omitempty"`
	Permalink     string  `json:"permalink,omitempty"`
	TotalAwards   int     `json:"total_awards_received"`

	// post only
	IsVideo     bool     `json:"is_video,omitempty"`
	IsGallery   bool     `json:"is_gallery,omitempty"`
	IsSelf      bool     `json:"is_self,omitempty"`
	URL         string   `json:"url,omitempty"`
	NumComments int      `json:"num_comments,omitempty"`
	UpvoteRatio *float64 `json:"upvote_ratio,omitempty"`

	// comment only
	ParentPostTitle string `json:"link_title,omitempty"`
	LinkPermalink   string `json:"link_permalink,omitempty"`
	LinkID          string `json:"link_id,omitempty"`
}

// TextBody returns the text analysed for sentiment and word frequency:
// the title of a post or the body of a comment
func (i Item) TextBody() string {
	if i.Kind == KindComment {
		return i.Body
	}
	return i.Title
}

// Page is one page of a cursor-paginated listing
type Page struct {
	Items []Item
	After string
}

// Profile represents a Reddit account as returned by about.json
type Profile struct {
	Name             string  `json:"name"`
	CreatedUTC       float64 `json:"created_utc"`
	LinkKarma        int     `json:"link_karma"`
	CommentKarma     int     `json:"comment_karma"`
	IsSuspended      bool    `json:"is_suspended"`
	IsEmployee       bool    `json:"is_employee"`
	IsGold           bool    `json:"is_gold"`
	HasVerifiedEmail bool    `json:"has_verified_email"`
	IconImg          string  `json:"icon_img,omitempty"`
	SnoovatarImg     string  `json:"snoovatar_img,omitempty"`

	// set by the fetch pipeline
	IsHidden           bool `json:"is_hidden"`
	UsedSearchFallback bool `json:"used_search_fallback"`
}

// TotalKarma returns link plus comment karma
func (p Profile) TotalKarma() int {
	return p.LinkKarma + p.CommentKarma
}

// SubredditCount is one row of the subreddit frequency table
type SubredditCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Pct   int    `json:"pct"`
}

// WordCount is one row of the word frequency table
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// ContentTypes counts posts by content type
type ContentTypes struct {
	Image   int `json:"image"`
	Link    int `json:"link"`
	Text    int `json:"text"`
	Video   int `json:"video"`
	Gallery int `json:"gallery"`
}

// ActiveDay is the calendar day with the most activity
type ActiveDay struct {
	Date    string `json:"date"`
	Weekday int    `json:"weekday"`
	Count   int    `json:"count"`
}

// Persona is a rule-derived archetype
type Persona struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Desc  string `json:"desc"`
}

// Metrics holds every statistic derived from a user's activity
type Metrics struct {
	TopSubreddits    []SubredditCount `json:"top_subreddits"`
	HourDist         [24]int          `json:"hour_dist"`
	DowDist          [7]int           `json:"dow_dist"`
	PeakHour         int              `json:"peak_hour"`
	PeakDow          int              `json:"peak_dow"`
	ContentTypes     ContentTypes     `json:"content_types"`
	TopPost          *Item            `json:"top_post"`
	TopComment       *Item            `json:"top_comment"`
	AvgPostScore     int              `json:"avg_post_score"`
	AvgComments      string           `json:"avg_comments"`
	PostsPerMonth    string           `json:"posts_per_month"`
	Ratio            string           `json:"ratio"`
	Controversiality int              `json:"controversiality"`
	Sentiment        int              `json:"sentiment"`
	WordFreq         []WordCount      `json:"word_freq"`
	MostActiveDay    *ActiveDay       `json:"most_active_day"`
	Awards           int              `json:"awards"`
	TotalItems       int              `json:"total_items"`
	Persona          Persona          `json:"persona"`
}

// Axes are the four 0-100 personality axis scores
type Axes struct {
	Creator  int `json:"creator"`
	Viral    int `json:"viral"`
	Positive int `json:"positive"`
	Focused  int `json:"focused"`
}

// PersonalityType is the four-letter axis classification
type PersonalityType struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Tagline    string   `json:"tagline"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Similar    []string `json:"similar"`
	Axes       Axes     `json:"axes"`
}

// FallbackNotice tells the consumer that posts came from the search index
type FallbackNotice struct {
	Title                 string `json:"title"`
	Description           string `json:"description"`
	CommentsUnrecoverable bool   `json:"comments_unrecoverable"`
}

// Analysis is the immutable result handed to renderers
type Analysis struct {
	ID              string          `json:"id"`
	GeneratedAt     time.Time       `json:"generated_at"`
	Profile         Profile         `json:"profile"`
	Posts           []Item          `json:"posts"`
	Comments        []Item          `json:"comments"`
	Metrics         Metrics         `json:"metrics"`
	Persona         Persona         `json:"persona"`
	PersonalityType PersonalityType `json:"personality_type"`
	Summary         Summary         `json:"summary"`
	ReportCard      ReportCard      `json:"report_card"`
	Roast           Roast           `json:"roast"`
	Notice          *FallbackNotice `json:"notice,omitempty"`
}

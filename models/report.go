package models

// Dimension is one personality bar of the summary
type Dimension struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Low   string `json:"low"`
	High  string `json:"high"`
}

// ContentStyle describes what and how a user writes
type ContentStyle struct {
	TopType       string `json:"top_type"`
	TopTypePct    int    `json:"top_type_pct"`
	AvgCommentLen int    `json:"avg_comment_len"`
	CommentStyle  string `json:"comment_style"`
}

// ActivityRow is a key/value line of the activity profile
type ActivityRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Summary is the prose overview and its supporting figures
type Summary struct {
	InfluenceScore int           `json:"influence_score"`
	Overview       string        `json:"overview"`
	Insight        string        `json:"insight"`
	Traits         []string      `json:"traits"`
	Dimensions     []Dimension   `json:"dimensions"`
	ContentStyle   ContentStyle  `json:"content_style"`
	Activity       []ActivityRow `json:"activity"`
}

// Grade is a letter grade with its GPA points
type Grade struct {
	Letter string  `json:"letter"`
	Points float64 `json:"points"`
}

// Subject is one graded line of the report card
type Subject struct {
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
	Grade   Grade  `json:"grade"`
}

// ReportCard grades a user across six subjects
type ReportCard struct {
	Subjects       []Subject `json:"subjects"`
	GPA            string    `json:"gpa"`
	GPAGrade       Grade     `json:"gpa_grade"`
	Standing       string    `json:"standing"`
	TeacherComment string    `json:"teacher_comment"`
	Term           string    `json:"term"`
}

// RoastLine is a single joke with its icon
type RoastLine struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// Roast is the light-hearted ribbing section
type Roast struct {
	Lines      []RoastLine `json:"lines"`
	Heat       int         `json:"heat"`
	Subtitle   string      `json:"subtitle"`
	Redemption string      `json:"redemption"`
}

// Explorer filters and sort orders
const (
	FilterAll      = "all"
	FilterPosts    = "posts"
	FilterComments = "comments"

	SortDateDesc  = "date-desc"
	SortDateAsc   = "date-asc"
	SortScoreDesc = "score-desc"
	SortScoreAsc  = "score-asc"
)

// ItemQuery selects a page of the item explorer
type ItemQuery struct {
	Filter string `json:"filter" query:"filter"`
	Search string `json:"search" query:"q"`
	Sort   string `json:"sort" query:"sort"`
	Page   int    `json:"page" query:"page"`
}

// ExploreItem is a flattened post or comment for browsing
type ExploreItem struct {
	Type        string   `json:"type"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Subreddit   string   `json:"subreddit"`
	Score       int      `json:"score"`
	Comments    *int     `json:"comments,omitempty"`
	Date        float64  `json:"date"`
	Link        string   `json:"link"`
	UpvoteRatio *float64 `json:"upvote_ratio,omitempty"`
}

// ItemPage is one page of explorer results with stats over the whole filtered set
type ItemPage struct {
	Items      []ExploreItem `json:"items"`
	Total      int           `json:"total"`
	Posts      int           `json:"posts"`
	Comments   int           `json:"comments"`
	TotalScore int           `json:"total_score"`
	Page       int           `json:"page"`
	Pages      int           `json:"pages"`
	Label      string        `json:"label"`
}

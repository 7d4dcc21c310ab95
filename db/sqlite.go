package db

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/brettboylen/redditscope/models"
)

const (
	// PageSize is the number of explorer results per page
	PageSize = 25

	redditURL = "https://reddit.com"
)

// Database holds one analysis's posts and comments for filtering, searching and paging
type Database struct {
	db      *sql.DB
	mutex   sync.RWMutex
	printer *message.Printer
	log     *logrus.Logger
}

// NewDatabase creates a new SQLite database connection
func NewDatabase(dbPath string, log *logrus.Logger) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{
		db:      db,
		printer: message.NewPrinter(language.English),
		log:     log,
	}

	if err := database.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return database, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.db.Close()
}

// initTables creates the items table
func (d *Database) initTables() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	query := `
	CREATE TABLE IF NOT EXISTS items (
		seq INTEGER PRIMARY KEY,
		type TEXT NOT NULL,
		id TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		subreddit TEXT NOT NULL,
		score INTEGER NOT NULL,
		comments INTEGER,
		date REAL NOT NULL,
		link TEXT NOT NULL,
		upvote_ratio REAL,
		haystack TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_items_date ON items(date, seq);
	CREATE INDEX IF NOT EXISTS idx_items_score ON items(score, seq);
	`

	_, err := d.db.Exec(query)
	return err
}

// LoadItems replaces the stored items with the given posts and comments, posts first
func (d *Database) LoadItems(posts, comments []models.Item) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM items"); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}

	stmt, err := tx.Prepare(`
	INSERT INTO items (
		seq, type, id, title, body, subreddit, score, comments, date, link, upvote_ratio, haystack
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	seq := 0
	insert := func(e models.ExploreItem) error {
		seq++
		haystack := strings.ToLower(e.Title + " " + e.Body + " " + e.Subreddit)
		_, err := stmt.Exec(
			seq, e.Type, e.ID, e.Title, e.Body, e.Subreddit, e.Score,
			e.Comments, e.Date, e.Link, e.UpvoteRatio, haystack,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s %s: %w", e.Type, e.ID, err)
		}
		return nil
	}

	for _, p := range posts {
		if err := insert(fromPost(p)); err != nil {
			return err
		}
	}
	for _, c := range comments {
		if err := insert(fromComment(c)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit items: %w", err)
	}

	d.log.WithFields(logrus.Fields{
		"posts":    len(posts),
		"comments": len(comments),
	}).Debug("Loaded explorer items")

	return nil
}

func fromPost(p models.Item) models.ExploreItem {
	link := fmt.Sprintf("%s/r/%s/comments/%s", redditURL, p.Subreddit, p.ID)
	if p.Permalink != "" {
		link = redditURL + p.Permalink
	}

	title := p.Title
	if title == "" {
		title = "(untitled)"
	}

	comments := p.NumComments
	var ratio *float64
	if p.UpvoteRatio != nil && *p.UpvoteRatio != 0 {
		r := *p.UpvoteRatio
		ratio = &r
	}

	return models.ExploreItem{
		Type:        models.KindPost,
		ID:          p.ID,
		Title:       title,
		Body:        p.Body,
		Subreddit:   p.Subreddit,
		Score:       p.Score,
		Comments:    &comments,
		Date:        p.CreatedUTC,
		Link:        link,
		UpvoteRatio: ratio,
	}
}

func fromComment(c models.Item) models.ExploreItem {
	var link string
	switch {
	case c.Permalink != "":
		link = redditURL + c.Permalink
	case c.LinkPermalink != "":
		link = c.LinkPermalink
	default:
		link = fmt.Sprintf("%s/r/%s/comments/%s", redditURL, c.Subreddit, strings.Replace(c.LinkID, "t3_", "", 1))
	}

	title := c.ParentPostTitle
	if title == "" {
		title = "(context unavailable)"
	}

	return models.ExploreItem{
		Type:      models.KindComment,
		ID:        c.ID,
		Title:     title,
		Body:      c.Body,
		Subreddit: c.Subreddit,
		Score:     c.Score,
		Date:      c.CreatedUTC,
		Link:      link,
	}
}

// QueryItems filters, searches and sorts the stored items and returns one page.
// Equal sort keys keep insertion order. Page numbers start at 1.
func (d *Database) QueryItems(q models.ItemQuery) (models.ItemPage, error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	where, args := buildFilter(q)

	page := models.ItemPage{Items: []models.ExploreItem{}}

	statsQuery := `
	SELECT COUNT(*),
		COALESCE(SUM(type = 'post'), 0),
		COALESCE(SUM(type = 'comment'), 0),
		COALESCE(SUM(score), 0)
	FROM items` + where

	err := d.db.QueryRow(statsQuery, args...).Scan(&page.Total, &page.Posts, &page.Comments, &page.TotalScore)
	if err != nil {
		return models.ItemPage{}, fmt.Errorf("failed to query item stats: %w", err)
	}

	page.Pages = (page.Total + PageSize - 1) / PageSize
	page.Page = q.Page
	if page.Page < 1 {
		page.Page = 1
	}
	page.Label = d.resultLabel(page.Total)

	// past the end; also keeps the offset from overflowing
	if page.Page > page.Pages {
		return page, nil
	}

	listQuery := `
	SELECT type, id, title, body, subreddit, score, comments, date, link, upvote_ratio
	FROM items` + where + `
	ORDER BY ` + orderBy(q.Sort) + `
	LIMIT ? OFFSET ?
	`
	listArgs := append(args, PageSize, (page.Page-1)*PageSize)

	rows, err := d.db.Query(listQuery, listArgs...)
	if err != nil {
		return models.ItemPage{}, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ExploreItem
		var comments sql.NullInt64
		var ratio sql.NullFloat64

		err := rows.Scan(
			&item.Type, &item.ID, &item.Title, &item.Body, &item.Subreddit,
			&item.Score, &comments, &item.Date, &item.Link, &ratio,
		)
		if err != nil {
			return models.ItemPage{}, fmt.Errorf("failed to scan item: %w", err)
		}

		if comments.Valid {
			n := int(comments.Int64)
			item.Comments = &n
		}
		if ratio.Valid {
			r := ratio.Float64
			item.UpvoteRatio = &r
		}
		page.Items = append(page.Items, item)
	}

	if err := rows.Err(); err != nil {
		return models.ItemPage{}, fmt.Errorf("row iteration error: %w", err)
	}

	return page, nil
}

func buildFilter(q models.ItemQuery) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	switch q.Filter {
	case models.FilterPosts:
		clauses = append(clauses, "type = ?")
		args = append(args, models.KindPost)
	case models.FilterComments:
		clauses = append(clauses, "type = ?")
		args = append(args, models.KindComment)
	}

	if search := strings.ToLower(strings.TrimSpace(q.Search)); search != "" {
		clauses = append(clauses, "instr(haystack, ?) > 0")
		args = append(args, search)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func orderBy(sort string) string {
	switch sort {
	case models.SortDateAsc:
		return "date ASC, seq ASC"
	case models.SortScoreDesc:
		return "score DESC, seq ASC"
	case models.SortScoreAsc:
		return "score ASC, seq ASC"
	default:
		return "date DESC, seq ASC"
	}
}

func (d *Database) resultLabel(total int) string {
	if total == 1 {
		return d.printer.Sprintf("%d result", total)
	}
	return d.printer.Sprintf("%d results", total)
}

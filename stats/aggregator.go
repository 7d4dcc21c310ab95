package stats

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/brettboylen/redditscope/models"
	"github.com/brettboylen/redditscope/persona"
	"github.com/brettboylen/redditscope/utils"
)

const (
	topSubredditsLimit = 8
	wordFreqLimit      = 40
	minWordLength      = 4
	controversialRatio = 0.6
	neutralSentiment   = 50
)

var (
	imageURLPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)`)
	nonWordPattern  = regexp.MustCompile(`\W+`)
	nonAlnumPattern = regexp.MustCompile(`[^a-z0-9\s]`)

	// tokens a numeric conversion would accept, e.g. "2024", "0x1f", "1e10"
	numericPattern = regexp.MustCompile(`^(?:[0-9]+|[0-9]+e[0-9]+|0x[0-9a-f]+|0o[0-7]+|0b[01]+)$`)
)

var positiveWords = wordSet(
	"good", "great", "best", "love", "awesome", "amazing", "excellent", "wonderful", "fantastic",
	"happy", "glad", "thanks", "thank", "helpful", "nice", "perfect", "brilliant", "beautiful", "enjoy", "enjoyed",
	"useful", "interesting", "incredible", "impressive", "outstanding", "positive", "agree", "correct", "right",
)

var negativeWords = wordSet(
	"bad", "worst", "hate", "awful", "terrible", "horrible", "disgusting", "wrong", "broken",
	"stupid", "idiot", "dumb", "annoying", "fail", "failed", "disappointed", "useless", "pathetic", "garbage",
	"trash", "scam", "lie", "lying", "fake", "false", "misleading", "disagree", "incorrect", "evil",
)

var stopWords = wordSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "is", "are", "was", "were",
	"be", "been", "have", "has", "had", "do", "does", "did", "will", "would", "could", "should", "may", "might",
	"this", "that", "these", "those", "i", "my", "me", "we", "our", "you", "your", "he", "his", "she", "her",
	"they", "their", "it", "its", "not", "so", "as", "if", "by", "from", "up", "out", "about", "just", "no",
	"more", "when", "what", "all", "one", "can", "get", "like", "than", "then", "there", "also", "into", "after",
	"before", "how", "which", "who", "re", "https", "www", "http", "amp", "gt", "lt", "edit", "deleted", "removed",
	"really", "very", "much", "still", "even", "some", "only", "any", "other", "same", "too",
	"most", "over", "such", "back", "well", "know", "think", "want", "need", "dont", "cant", "wont",
	"here", "now", "people", "time", "year", "make", "made", "use", "used", "going", "come", "see",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Options controls the clock and time zone used for time-based metrics
type Options struct {
	Now      time.Time
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// Aggregate computes every metric for a user's posts and comments.
// It has no side effects; identical input yields identical output.
func Aggregate(profile models.Profile, posts, comments []models.Item, opts Options) models.Metrics {
	opts = opts.withDefaults()

	all := make([]models.Item, 0, len(posts)+len(comments))
	all = append(all, posts...)
	all = append(all, comments...)

	m := models.Metrics{
		TopSubreddits: topSubreddits(all),
		ContentTypes:  contentTypes(posts),
		TopPost:       topScoring(posts),
		TopComment:    topScoring(comments),
		Sentiment:     sentiment(posts, comments),
		WordFreq:      wordFrequency(posts, comments),
		MostActiveDay: mostActiveDay(all, opts.Location),
		TotalItems:    len(all),
	}

	for _, item := range all {
		if item.CreatedUTC == 0 {
			continue
		}
		t := localTime(item.CreatedUTC, opts.Location)
		m.HourDist[t.Hour()]++
		m.DowDist[t.Weekday()]++
	}
	m.PeakHour = peakIndex(m.HourDist[:])
	m.PeakDow = peakIndex(m.DowDist[:])

	m.AvgPostScore, m.AvgComments = postAverages(posts)
	m.PostsPerMonth = postsPerMonth(len(posts), profile.CreatedUTC, opts.Now)
	m.Ratio = commentRatio(len(posts), len(comments))
	m.Controversiality = controversiality(posts)

	for _, item := range all {
		m.Awards += item.TotalAwards
	}

	m.Persona = persona.Detect(persona.NewSignals(len(posts), len(comments), m))

	return m
}

func localTime(createdUTC float64, loc *time.Location) time.Time {
	return time.UnixMilli(int64(createdUTC * 1000)).In(loc)
}

// topSubreddits counts items per subreddit, keeping first-seen order among equal counts
func topSubreddits(all []models.Item) []models.SubredditCount {
	var order []string
	counts := make(map[string]int)
	for _, item := range all {
		if item.Subreddit == "" {
			continue
		}
		if _, ok := counts[item.Subreddit]; !ok {
			order = append(order, item.Subreddit)
		}
		counts[item.Subreddit]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topSubredditsLimit {
		order = order[:topSubredditsLimit]
	}

	out := make([]models.SubredditCount, 0, len(order))
	for _, name := range order {
		count := counts[name]
		out = append(out, models.SubredditCount{
			Name:  name,
			Count: count,
			Pct:   utils.Round(float64(count) / float64(len(all)) * 100),
		})
	}
	return out
}

func peakIndex(dist []int) int {
	peak := 0
	for i, n := range dist {
		if n > dist[peak] {
			peak = i
		}
	}
	return peak
}

func contentTypes(posts []models.Item) models.ContentTypes {
	var ct models.ContentTypes
	for _, p := range posts {
		switch {
		case p.IsVideo:
			ct.Video++
		case p.IsGallery:
			ct.Gallery++
		case p.IsSelf:
			ct.Text++
		case p.URL != "" && imageURLPattern.MatchString(p.URL):
			ct.Image++
		default:
			ct.Link++
		}
	}
	return ct
}

// topScoring returns the highest scoring item; the earliest wins ties
func topScoring(items []models.Item) *models.Item {
	if len(items) == 0 {
		return nil
	}
	best := items[0]
	for _, item := range items[1:] {
		if item.Score > best.Score {
			best = item
		}
	}
	return &best
}

func postAverages(posts []models.Item) (int, string) {
	if len(posts) == 0 {
		return 0, "0"
	}

	score, comments := 0, 0
	for _, p := range posts {
		score += p.Score
		comments += p.NumComments
	}
	n := float64(len(posts))
	return utils.Round(float64(score) / n), utils.ToFixed(float64(comments)/n, 1)
}

func postsPerMonth(posts int, createdUTC float64, now time.Time) string {
	months := utils.AgeInMonths(createdUTC, now)
	if months <= 0 {
		return utils.FormatFloat(float64(posts))
	}
	return utils.ToFixed(float64(posts)/months, 1)
}

func commentRatio(posts, comments int) string {
	if posts == 0 {
		return utils.FormatFloat(float64(comments))
	}
	return utils.ToFixed(float64(comments)/float64(posts), 1)
}

func controversiality(posts []models.Item) int {
	if len(posts) == 0 {
		return 0
	}
	n := 0
	for _, p := range posts {
		// a missing or zero ratio is treated as unknown
		if p.UpvoteRatio != nil && *p.UpvoteRatio != 0 && *p.UpvoteRatio < controversialRatio {
			n++
		}
	}
	return utils.Round(float64(n) / float64(len(posts)) * 100)
}

func sentiment(posts, comments []models.Item) int {
	pos, neg := 0, 0
	count := func(text string) {
		if text == "" {
			return
		}
		for _, w := range nonWordPattern.Split(strings.ToLower(text), -1) {
			if _, ok := positiveWords[w]; ok {
				pos++
			}
			if _, ok := negativeWords[w]; ok {
				neg++
			}
		}
	}

	for _, p := range posts {
		count(p.TextBody())
	}
	for _, c := range comments {
		count(c.TextBody())
	}

	if pos+neg == 0 {
		return neutralSentiment
	}
	return utils.Round(float64(pos) / float64(pos+neg) * 100)
}

// wordFrequency returns the most used words, keeping first-seen order among equal counts
func wordFrequency(posts, comments []models.Item) []models.WordCount {
	var order []string
	counts := make(map[string]int)
	add := func(text string) {
		if text == "" {
			return
		}
		cleaned := nonAlnumPattern.ReplaceAllString(strings.ToLower(text), " ")
		for _, w := range strings.Fields(cleaned) {
			if !countableWord(w) {
				continue
			}
			if _, ok := counts[w]; !ok {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	for _, p := range posts {
		add(p.TextBody())
	}
	for _, c := range comments {
		add(c.TextBody())
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > wordFreqLimit {
		order = order[:wordFreqLimit]
	}

	out := make([]models.WordCount, 0, len(order))
	for _, w := range order {
		out = append(out, models.WordCount{Word: w, Count: counts[w]})
	}
	return out
}

func countableWord(w string) bool {
	if len(w) < minWordLength {
		return false
	}
	if _, stop := stopWords[w]; stop {
		return false
	}
	return !numericPattern.MatchString(w)
}

// mostActiveDay finds the local calendar date with the most items; the earliest seen wins ties
func mostActiveDay(all []models.Item, loc *time.Location) *models.ActiveDay {
	var order []string
	days := make(map[string]*models.ActiveDay)
	for _, item := range all {
		if item.CreatedUTC == 0 {
			continue
		}
		t := localTime(item.CreatedUTC, loc)
		key := t.Format("2006-01-02")
		day, ok := days[key]
		if !ok {
			day = &models.ActiveDay{Date: key, Weekday: int(t.Weekday())}
			days[key] = day
			order = append(order, key)
		}
		day.Count++
	}

	if len(order) == 0 {
		return nil
	}

	best := days[order[0]]
	for _, key := range order[1:] {
		if days[key].Count > best.Count {
			best = days[key]
		}
	}
	out := *best
	return &out
}

package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettboylen/redditscope/models"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testProfile() models.Profile {
	return models.Profile{
		Name:         "gopher",
		CreatedUTC:   float64(testNow.AddDate(0, 0, -365).Unix()),
		LinkKarma:    1200,
		CommentKarma: 3400,
	}
}

func testOptions() Options {
	return Options{Now: testNow, Location: time.UTC}
}

func unix(t time.Time) float64 {
	return float64(t.Unix())
}

func post(id, sub, title string, score int) models.Item {
	return models.Item{
		Kind:       models.KindPost,
		ID:         id,
		Subreddit:  sub,
		Title:      title,
		Score:      score,
		CreatedUTC: unix(testNow.Add(-time.Hour)),
	}
}

func comment(id, sub, body string, score int) models.Item {
	return models.Item{
		Kind:       models.KindComment,
		ID:         id,
		Subreddit:  sub,
		Body:       body,
		Score:      score,
		CreatedUTC: unix(testNow.Add(-2 * time.Hour)),
	}
}

func TestAggregateEmpty(t *testing.T) {
	m := Aggregate(testProfile(), nil, nil, testOptions())

	assert.Empty(t, m.TopSubreddits)
	assert.Empty(t, m.WordFreq)
	assert.Nil(t, m.TopPost)
	assert.Nil(t, m.TopComment)
	assert.Nil(t, m.MostActiveDay)
	assert.Equal(t, 50, m.Sentiment)
	assert.Equal(t, 0, m.AvgPostScore)
	assert.Equal(t, "0", m.AvgComments)
	assert.Equal(t, "0", m.Ratio)
	assert.Equal(t, "0.0", m.PostsPerMonth)
	assert.Equal(t, 0, m.Controversiality)
	assert.Equal(t, 0, m.TotalItems)
	assert.Equal(t, 0, m.PeakHour)
	assert.Equal(t, "Ghost", m.Persona.Label)
}

func TestAggregateIsDeterministic(t *testing.T) {
	posts := []models.Item{
		post("p1", "golang", "Great generics tutorial", 120),
		post("p2", "rust", "Borrow checker is terrible", 4),
	}
	comments := []models.Item{
		comment("c1", "golang", "Channels make concurrency easy", 12),
		comment("c2", "golang", "Thanks, this was helpful", 3),
	}

	first, err := json.Marshal(Aggregate(testProfile(), posts, comments, testOptions()))
	require.NoError(t, err)
	second, err := json.Marshal(Aggregate(testProfile(), posts, comments, testOptions()))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestTopSubredditsStableAndLimited(t *testing.T) {
	subs := []string{"a", "b", "c", "a", "c", "a", "c", "d", "e", "f", "g", "h", "i"}
	all := make([]models.Item, 0, len(subs))
	for _, s := range subs {
		all = append(all, models.Item{Subreddit: s})
	}

	got := topSubreddits(all)
	require.Len(t, got, 8)

	names := make([]string, 0, len(got))
	for _, sc := range got {
		names = append(names, sc.Name)
	}
	assert.Equal(t, []string{"a", "c", "b", "d", "e", "f", "g", "h"}, names)
	assert.Equal(t, models.SubredditCount{Name: "a", Count: 3, Pct: 23}, got[0])
	assert.Equal(t, models.SubredditCount{Name: "b", Count: 1, Pct: 8}, got[2])
}

func TestSentiment(t *testing.T) {
	tests := []struct {
		name     string
		posts    []models.Item
		comments []models.Item
		want     int
	}{
		{
			name: "no sentiment words is neutral",
			want: 50,
		},
		{
			name:  "post titles count",
			posts: []models.Item{post("p1", "golang", "Great post, love it!", 1)},
			want:  100,
		},
		{
			name:     "mixed",
			posts:    []models.Item{post("p1", "golang", "Great post, love it!", 1)},
			comments: []models.Item{comment("c1", "golang", "this is TERRIBLE", 1)},
			want:     67,
		},
		{
			name: "post body is ignored",
			posts: []models.Item{
				{Kind: models.KindPost, Title: "neutral title", Body: "awful awful awful"},
			},
			want: 50,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sentiment(tc.posts, tc.comments))
		})
	}
}

func TestWordFrequency(t *testing.T) {
	t.Run("short and stop words are dropped", func(t *testing.T) {
		got := wordFrequency(nil, []models.Item{comment("c1", "x", "the big cat ran", 1)})
		assert.Empty(t, got)
	})

	t.Run("numeric tokens are dropped", func(t *testing.T) {
		got := wordFrequency(nil, []models.Item{
			comment("c1", "x", "2024 0x1f 1e10 0b101 golang rust1", 1),
			comment("c2", "x", "Golang!", 1),
		})
		assert.Equal(t, []models.WordCount{
			{Word: "golang", Count: 2},
			{Word: "rust1", Count: 1},
		}, got)
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		got := wordFrequency(
			[]models.Item{post("p1", "x", "zebra apple", 1)},
			[]models.Item{comment("c1", "x", "apple mango zebra mango", 1)},
		)
		assert.Equal(t, []models.WordCount{
			{Word: "zebra", Count: 2},
			{Word: "apple", Count: 2},
			{Word: "mango", Count: 2},
		}, got)
	})
}

func TestContentTypes(t *testing.T) {
	posts := []models.Item{
		{IsVideo: true, IsSelf: true},
		{IsGallery: true},
		{IsSelf: true},
		{URL: "https://i.redd.it/cat.PNG"},
		{URL: "https://go.dev/blog"},
		{},
	}

	assert.Equal(t, models.ContentTypes{Image: 1, Link: 2, Text: 1, Video: 1, Gallery: 1}, contentTypes(posts))
}

func TestControversiality(t *testing.T) {
	r := func(v float64) *float64 { return &v }
	posts := []models.Item{
		{UpvoteRatio: r(0.5)},
		{UpvoteRatio: r(0.6)},
		{UpvoteRatio: r(0)},
		{},
	}

	assert.Equal(t, 25, controversiality(posts))
	assert.Equal(t, 0, controversiality(nil))
}

func TestTopScoringEarliestWinsTies(t *testing.T) {
	items := []models.Item{
		post("p1", "x", "a", 5),
		post("p2", "x", "b", 9),
		post("p3", "x", "c", 9),
	}

	got := topScoring(items)
	require.NotNil(t, got)
	assert.Equal(t, "p2", got.ID)
}

func TestPostAveragesAndRatio(t *testing.T) {
	posts := []models.Item{
		{Score: 10, NumComments: 1},
		{Score: 11, NumComments: 2},
	}

	avg, comments := postAverages(posts)
	assert.Equal(t, 11, avg)
	assert.Equal(t, "1.5", comments)

	assert.Equal(t, "3", commentRatio(0, 3))
	assert.Equal(t, "1.5", commentRatio(2, 3))
}

func TestTimeDistributionsUseLocation(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	late := unix(time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC))

	all := []models.Item{
		{Kind: models.KindComment, CreatedUTC: late},
		{Kind: models.KindComment, CreatedUTC: late + 60},
		{Kind: models.KindComment, CreatedUTC: unix(time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC))},
		{Kind: models.KindComment},
	}

	m := Aggregate(testProfile(), nil, all, Options{Now: testNow, Location: loc})

	assert.Equal(t, 21, m.PeakHour)
	assert.Equal(t, 2, m.HourDist[21])
	assert.Equal(t, 1, m.HourDist[10])
	assert.Equal(t, int(time.Friday), m.PeakDow)

	require.NotNil(t, m.MostActiveDay)
	assert.Equal(t, models.ActiveDay{Date: "2024-05-31", Weekday: int(time.Friday), Count: 2}, *m.MostActiveDay)
	assert.Equal(t, 4, m.TotalItems)
}

func TestAggregatePersona(t *testing.T) {
	comments := make([]models.Item, 0, 11)
	for i := 0; i < 11; i++ {
		comments = append(comments, comment("c", "golang", "hmm", 1))
	}

	m := Aggregate(testProfile(), nil, comments, testOptions())
	assert.Equal(t, "Silent Observer", m.Persona.Label)
	assert.Equal(t, "11", m.Ratio)
}

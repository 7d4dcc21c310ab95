package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettboylen/redditscope/models"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func yearsAgo(years float64) float64 {
	return float64(testNow.Unix()) - years*365*24*3600
}

func baseInput() Input {
	return Input{
		Profile: models.Profile{Name: "spez", CreatedUTC: yearsAgo(1)},
		Metrics: models.Metrics{
			Ratio:         "2.0",
			PostsPerMonth: "0",
			AvgComments:   "0",
			Sentiment:     50,
			Persona:       models.Persona{Label: "Explorer", Desc: "Curious generalist ranging across many communities"},
		},
		Now:      testNow,
		Location: time.UTC,
	}
}

func topSubs(n int) []models.SubredditCount {
	out := make([]models.SubredditCount, n)
	for i := range out {
		out[i] = models.SubredditCount{Name: string(rune('a' + i)), Count: 1}
	}
	return out
}

func TestScoreToGrade(t *testing.T) {
	tests := []struct {
		score  float64
		letter string
		points float64
	}{
		{100, "A+", 4.0},
		{93, "A+", 4.0},
		{92.9, "A", 4.0},
		{87, "A−", 3.7},
		{80, "B", 3.0},
		{67, "C−", 1.7},
		{66, "D", 1.0},
		{60, "D", 1.0},
		{59, "F", 0},
		{-5, "F", 0},
	}

	for _, tc := range tests {
		g := ScoreToGrade(tc.score)
		assert.Equal(t, tc.letter, g.Letter, "score %v", tc.score)
		assert.Equal(t, tc.points, g.Points, "score %v", tc.score)
	}
}

func TestBuildReportCardFailing(t *testing.T) {
	in := baseInput()
	in.Metrics.Ratio = "0"

	card := BuildReportCard(in)
	require.Len(t, card.Subjects, 6)

	scores := make([]int, 0, 6)
	for _, s := range card.Subjects {
		scores = append(scores, s.Score)
		assert.Equal(t, "F", s.Grade.Letter)
	}
	assert.Equal(t, []int{8, 0, 0, 0, 50, 4}, scores)

	assert.Equal(t, "0.00", card.GPA)
	assert.Equal(t, "F", card.GPAGrade.Letter)
	assert.Equal(t, "Needs Improvement", card.Standing)
	// later subjects win ties, so the last zero is the worst
	assert.Contains(t, card.TeacherComment, "Poor engagement is holding back")
	assert.True(t, strings.HasPrefix(card.TeacherComment, "spez needs to seriously reflect"))
	assert.Equal(t, "Since June 2023", card.Term)
}

func TestBuildReportCardTopMarks(t *testing.T) {
	in := baseInput()
	in.Profile.LinkKarma = 10_000_000
	in.Metrics.AvgPostScore = 5000
	in.Metrics.PostsPerMonth = "45.2"
	in.Metrics.Ratio = "20.0"
	in.Metrics.Sentiment = 100
	in.Metrics.TopSubreddits = topSubs(8)

	card := BuildReportCard(in)

	assert.Equal(t, 80, card.Subjects[2].Score)
	assert.Equal(t, "B", card.Subjects[2].Grade.Letter)
	for i, s := range card.Subjects {
		if i == 2 {
			continue
		}
		assert.Equal(t, 100, s.Score, s.Name)
	}

	assert.Equal(t, "3.83", card.GPA)
	assert.Equal(t, "A+", card.GPAGrade.Letter)
	assert.Equal(t, "Dean's List", card.Standing)
	assert.Contains(t, card.TeacherComment, "Their karma accumulated is frankly outstanding")
}

func TestInfluenceScore(t *testing.T) {
	in := baseInput()
	assert.Equal(t, 0, InfluenceScore(in))

	in.Profile.CommentKarma = 10_000_000
	in.Metrics.AvgPostScore = 4000
	in.Metrics.Awards = 99
	in.Metrics.PostsPerMonth = "31.0"
	assert.Equal(t, 100, InfluenceScore(in))

	in.Profile.CommentKarma = 1000
	in.Metrics.AvgPostScore = 1000
	in.Metrics.Awards = 3
	in.Metrics.PostsPerMonth = "15.0"
	// karma 17, engagement 18, awards 3, frequency 5
	assert.Equal(t, 43, InfluenceScore(in))
}

func TestOverview(t *testing.T) {
	in := baseInput()
	in.Profile.LinkKarma = 1500
	in.Posts = make([]models.Item, 3)
	in.Comments = make([]models.Item, 12)
	in.Metrics.TopSubreddits = topSubs(4)
	in.Metrics.WordFreq = []models.WordCount{{Word: "golang", Count: 3}, {Word: "gopher", Count: 2}}
	in.Metrics.AvgPostScore = 150
	in.Metrics.PeakHour = 21
	in.Metrics.PeakDow = 2

	got := Overview(in)

	assert.True(t, strings.HasPrefix(got, "u/spez is a 1 year-old Redditor and an occasional visitor with 1.5K total karma, who calls r/a, r/b and r/c home."))
	assert.Contains(t, got, "Across 3 posts and 12 comments, they emerge as a content creator at heart")
	assert.Contains(t, got, "achieving strong engagement with an average of 150 upvotes per post")
	assert.Contains(t, got, `themes of "golang", "gopher"`)
	assert.Contains(t, got, "Most at home during late night — especially on Tuesdays")
	assert.True(t, strings.HasSuffix(got, `the "Explorer" archetype: curious generalist ranging across many communities.`))

	in.Metrics.TopSubreddits = topSubs(1)
	in.Metrics.AvgPostScore = 0
	got = Overview(in)
	assert.Contains(t, got, "who calls r/a home")
	assert.NotContains(t, got, "achieving")
}

func TestJoinAnd(t *testing.T) {
	assert.Equal(t, "r/a", joinAnd([]string{"r/a"}))
	assert.Equal(t, "r/a and r/b", joinAnd([]string{"r/a", "r/b"}))
	assert.Equal(t, "r/a, r/b and r/c", joinAnd([]string{"r/a", "r/b", "r/c"}))
}

func TestInsightKeepsThreeLines(t *testing.T) {
	in := baseInput()
	in.Metrics.AvgPostScore = 800
	in.Metrics.PostsPerMonth = "12.4"
	in.Metrics.Controversiality = 45
	in.Metrics.Sentiment = 90
	in.Metrics.Awards = 50

	got := Insight(in)
	assert.True(t, strings.HasPrefix(got, "With an average of 800 upvotes per post"))
	assert.Contains(t, got, "steady cadence of ~12 posts/month")
	assert.Contains(t, got, "controversiality rate of 45%")
	assert.NotContains(t, got, "Remarkably")
	assert.NotContains(t, got, "awards accumulated")
}

func TestTraits(t *testing.T) {
	in := baseInput()
	in.Profile.IsGold = true
	in.Profile.HasVerifiedEmail = true
	in.Profile.IsEmployee = true
	in.Metrics.Sentiment = 55
	in.Metrics.AvgPostScore = 1200
	in.Metrics.Ratio = "22.0"
	in.Metrics.PostsPerMonth = "40.0"
	in.Metrics.TopSubreddits = topSubs(1)
	in.Metrics.Awards = 31
	in.Metrics.Controversiality = 36
	in.Metrics.HourDist[23] = 10

	got := Traits(in)
	assert.Len(t, got, 10)
	assert.Equal(t, []string{
		"⚖️ Balanced",
		"🚀 Viral Creator",
		"💬 Super Commenter",
		"⚡ Power Poster",
		"🎯 Niche Specialist",
		"★ Reddit Premium",
		"✓ Verified",
		"🏆 Award Magnet",
		"⚡ Controversial",
		"🏢 Reddit Staff",
	}, got)

	assert.Equal(t, []string{"⚖️ Balanced"}, Traits(baseInput()))
}

func TestDimensions(t *testing.T) {
	in := baseInput()
	in.Metrics.AvgPostScore = 500
	in.Metrics.Ratio = "30.0"
	in.Metrics.PostsPerMonth = "6.0"
	in.Metrics.Controversiality = 12
	in.Metrics.TopSubreddits = topSubs(8)

	dims := Dimensions(in)
	require.Len(t, dims, 6)

	values := map[string]int{}
	for _, d := range dims {
		values[d.Label] = d.Value
	}
	assert.Equal(t, map[string]int{
		"Positivity":  50,
		"Engagement":  25,
		"Discussion":  100,
		"Activity":    20,
		"Controversy": 12,
		"Reach":       100,
	}, values)
}

func TestBuildContentStyle(t *testing.T) {
	in := baseInput()
	style := BuildContentStyle(in)
	assert.Equal(t, "image", style.TopType)
	assert.Equal(t, 0, style.TopTypePct)
	assert.Equal(t, "Brief", style.CommentStyle)

	in.Metrics.ContentTypes = models.ContentTypes{Image: 1, Link: 2, Text: 2, Video: 0, Gallery: 1}
	in.Comments = []models.Item{
		{Kind: models.KindComment, Body: strings.Repeat("x", 300)},
		{Kind: models.KindComment, Body: strings.Repeat("😀", 50)},
	}
	style = BuildContentStyle(in)
	assert.Equal(t, "link", style.TopType)
	assert.Equal(t, 33, style.TopTypePct)
	assert.Equal(t, 200, style.AvgCommentLen)
	assert.Equal(t, "Concise", style.CommentStyle)
}

func TestActivityProfile(t *testing.T) {
	in := baseInput()
	in.Profile.CreatedUTC = float64(time.Date(2020, 3, 5, 10, 0, 0, 0, time.UTC).Unix())
	in.Metrics.PostsPerMonth = "1.2"
	in.Metrics.PeakHour = 13
	in.Metrics.PeakDow = 6
	in.Posts = make([]models.Item, 600)
	in.Comments = make([]models.Item, 900)

	rows := ActivityProfile(in)
	require.Len(t, rows, 6)
	assert.Equal(t, models.ActivityRow{Key: "Joined", Value: "Mar 5, 2020"}, rows[0])
	assert.Equal(t, "4 years, 2 months", rows[1].Value)
	assert.Equal(t, "1.2", rows[2].Value)
	assert.Equal(t, "1pm", rows[3].Value)
	assert.Equal(t, "Sat", rows[4].Value)
	assert.Equal(t, "1.5K", rows[5].Value)
}

func TestBuildRoastMild(t *testing.T) {
	roast := BuildRoast(baseInput())

	require.Len(t, roast.Lines, 1)
	assert.Equal(t, "Their spiritual home is r/unknown. No further questions at this time.", roast.Lines[0].Text)
	assert.Equal(t, 10, roast.Heat)
	assert.Equal(t, "A light singe", roast.Subtitle)
	assert.True(t, strings.HasPrefix(roast.Redemption, "Look — everyone's on Reddit"))
}

func TestBuildRoastOrderAndHeat(t *testing.T) {
	in := baseInput()
	in.Profile.CreatedUTC = yearsAgo(12)
	in.Profile.CommentKarma = 50
	in.Metrics.Ratio = "35.0"
	in.Metrics.PostsPerMonth = "1.0"
	in.Metrics.Sentiment = 10
	in.Metrics.TopSubreddits = topSubs(1)
	in.Posts = make([]models.Item, 2)

	roast := BuildRoast(in)

	icons := make([]string, 0, len(roast.Lines))
	for _, l := range roast.Lines {
		icons = append(icons, l.Icon)
	}
	assert.Equal(t, []string{"🧓", "💬", "😤", "🏠", "🪨"}, icons)
	assert.Contains(t, roast.Lines[0].Text, "over 12 years")
	assert.Contains(t, roast.Lines[1].Text, "With a 35:1 comment-to-post ratio, u/spez")
	assert.Contains(t, roast.Lines[4].Text, "has accumulated 50 karma")

	// 15 + 20 + 22 + 5 + 20
	assert.Equal(t, 82, roast.Heat)
	assert.Equal(t, "This one is scorched 🔥", roast.Subtitle)
}

func TestBuildRoastRedemption(t *testing.T) {
	in := baseInput()
	in.Metrics.Awards = 11
	assert.Contains(t, BuildRoast(in).Redemption, "has earned 11 awards")

	in.Metrics.AvgPostScore = 600
	assert.Contains(t, BuildRoast(in).Redemption, "consistently creates content people actually upvote")
}

func TestBuildSummary(t *testing.T) {
	s := BuildSummary(baseInput())
	assert.NotEmpty(t, s.Overview)
	assert.NotEmpty(t, s.Insight)
	assert.Len(t, s.Dimensions, 6)
	assert.Len(t, s.Activity, 6)
}

package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/brettboylen/redditscope/models"
	"github.com/brettboylen/redditscope/utils"
)

const (
	maxTraits       = 10
	maxInsightLines = 3
)

var overviewHours = [24]string{
	"midnight", "the early hours", "the morning", "the morning", "the morning", "the early hours",
	"the morning", "the morning", "the morning", "the morning", "the morning", "midday", "midday",
	"the afternoon", "the afternoon", "the afternoon", "the afternoon", "the evening", "the evening",
	"the evening", "late night", "late night", "late night", "the early hours",
}

var weekdaysPlural = [7]string{"Sundays", "Mondays", "Tuesdays", "Wednesdays", "Thursdays", "Fridays", "Saturdays"}

var shortHours = [24]string{
	"12am", "1am", "2am", "3am", "4am", "5am", "6am", "7am", "8am", "9am", "10am", "11am",
	"12pm", "1pm", "2pm", "3pm", "4pm", "5pm", "6pm", "7pm", "8pm", "9pm", "10pm", "11pm",
}

var shortWeekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// BuildSummary assembles the overview section
func BuildSummary(in Input) models.Summary {
	return models.Summary{
		InfluenceScore: InfluenceScore(in),
		Overview:       Overview(in),
		Insight:        Insight(in),
		Traits:         Traits(in),
		Dimensions:     Dimensions(in),
		ContentStyle:   BuildContentStyle(in),
		Activity:       ActivityProfile(in),
	}
}

// InfluenceScore rates reach from 0 to 100: karma 40, engagement 35, awards 15, frequency 10
func InfluenceScore(in Input) int {
	m := in.Metrics

	karma := minInt(40, logScaled(math.Max(float64(in.karma()), 1), 1e7, 40))
	engagement := minInt(35, scaled(math.Min(float64(m.AvgPostScore), 2000), 2000, 35))
	awards := minInt(15, m.Awards)
	frequency := minInt(10, scaled(math.Min(in.postsPerMonth(), 30), 30, 10))

	return karma + engagement + awards + frequency
}

// Overview writes the prose paragraph describing the user
func Overview(in Input) string {
	m := in.Metrics

	var engagement string
	switch {
	case m.AvgPostScore > 1000:
		engagement = "viral-level"
	case m.AvgPostScore > 500:
		engagement = "exceptional"
	case m.AvgPostScore > 100:
		engagement = "strong"
	case m.AvgPostScore > 20:
		engagement = "moderate"
	default:
		engagement = "modest"
	}

	var voice string
	switch {
	case m.Sentiment > 75:
		voice = "unmistakably upbeat and constructive"
	case m.Sentiment > 60:
		voice = "generally warm and positive"
	case m.Sentiment > 45:
		voice = "balanced and even-handed"
	case m.Sentiment > 30:
		voice = "skeptical and critical by nature"
	default:
		voice = "fiercely contrarian"
	}

	ratio := in.ratio()
	var role string
	switch {
	case ratio > 20:
		role = "a devoted commenter who rarely originates content"
	case ratio > 8:
		role = "someone who engages far more in discussion than in posting"
	case ratio > 3:
		role = "a balanced participant who both posts and comments"
	default:
		role = "a content creator at heart who posts far more than they comment"
	}

	ppm := in.postsPerMonth()
	var cadence string
	switch {
	case ppm > 30:
		cadence = "a relentless daily contributor"
	case ppm > 10:
		cadence = "a highly active member"
	case ppm > 2:
		cadence = "a regular contributor"
	default:
		cadence = "an occasional visitor"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s is a %s-old Redditor and %s with %s total karma",
		in.username(), utils.AccountAge(in.Profile.CreatedUTC, in.Now), cadence, utils.FormatNumber(float64(in.karma())))

	var homes []string
	for i, s := range m.TopSubreddits {
		if i == 3 {
			break
		}
		homes = append(homes, "r/"+s.Name)
	}
	if len(homes) > 0 {
		fmt.Fprintf(&b, ", who calls %s home", joinAnd(homes))
	}

	fmt.Fprintf(&b, ". Across %s posts and %s comments, they emerge as %s",
		utils.FormatNumber(float64(len(in.Posts))), utils.FormatNumber(float64(len(in.Comments))), role)
	if m.AvgPostScore > 0 {
		fmt.Fprintf(&b, ", achieving %s engagement with an average of %s upvotes per post",
			engagement, utils.FormatNumber(float64(m.AvgPostScore)))
	}

	fmt.Fprintf(&b, ". Their voice is %s", voice)

	var themes []string
	for i, w := range m.WordFreq {
		if i == 4 {
			break
		}
		themes = append(themes, w.Word)
	}
	if len(themes) > 0 {
		fmt.Fprintf(&b, `, and their writing gravitates toward themes of "%s"`, strings.Join(themes, `", "`))
	}

	fmt.Fprintf(&b, ". Most at home during %s — especially on %s", overviewHours[m.PeakHour], weekdaysPlural[m.PeakDow])
	fmt.Fprintf(&b, ` — their Reddit identity aligns with the "%s" archetype: %s.`, m.Persona.Label, strings.ToLower(m.Persona.Desc))

	return b.String()
}

// joinAnd renders "a", "a and b" or "a, b and c"
func joinAnd(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

// Insight picks up to three behavioural observations
func Insight(in Input) string {
	m := in.Metrics
	var lines []string

	switch {
	case m.AvgPostScore > 500:
		lines = append(lines, fmt.Sprintf("With an average of %s upvotes per post, this user has cracked the code on what resonates with Reddit communities — a rare skill that puts them in the top tier of content creators.", utils.FormatNumber(float64(m.AvgPostScore))))
	case m.AvgPostScore > 50:
		lines = append(lines, "Their posts reliably accumulate upvotes above the community average, suggesting a good read on audience taste and consistent quality output.")
	default:
		lines = append(lines, "Their posting style prioritizes participation over virality — the mark of someone who's here for the community conversation rather than the karma chase.")
	}

	ppm := in.postsPerMonth()
	switch {
	case ppm > 30:
		lines = append(lines, "Posting multiple times daily, they are deeply embedded in Reddit's real-time culture — this level of consistency suggests Reddit is a primary media outlet for them.")
	case ppm > 5:
		lines = append(lines, fmt.Sprintf("Their steady cadence of ~%d posts/month reflects an engaged but intentional approach — they show up regularly without over-saturating their audience.", utils.Round(ppm)))
	}

	if m.Controversiality > 30 {
		lines = append(lines, fmt.Sprintf("A controversiality rate of %d%% reveals a user who doesn't shy away from divisive takes — they either love debate or simply aren't optimizing for consensus.", m.Controversiality))
	}
	if m.Sentiment > 75 {
		lines = append(lines, fmt.Sprintf("Remarkably, %d%% of their language skews positive — in a platform often associated with cynicism, they stand out as a genuine force for good vibes.", m.Sentiment))
	}

	switch n := len(m.TopSubreddits); {
	case n >= 6:
		lines = append(lines, fmt.Sprintf("Scattered across %d distinct communities, their interests span a wide terrain — this breadth of engagement suggests intellectual curiosity and social versatility.", n))
	case n == 1:
		lines = append(lines, "Nearly all their activity concentrates in a single subreddit — a deep specialist whose Reddit experience is tightly focused.")
	}

	if m.Awards > 20 {
		lines = append(lines, fmt.Sprintf("%d awards accumulated across their history confirm that the community recognizes genuine value in their contributions.", m.Awards))
	}

	if len(lines) > maxInsightLines {
		lines = lines[:maxInsightLines]
	}
	return strings.Join(lines, " ")
}

// Traits lists up to ten short badges
func Traits(in Input) []string {
	m := in.Metrics
	p := in.Profile
	traits := make([]string, 0, maxTraits)

	if m.Sentiment > 70 {
		traits = append(traits, "😊 Positive Vibes")
	}
	if m.Sentiment < 35 {
		traits = append(traits, "🌩 Contrarian")
	}
	if m.Sentiment > 40 && m.Sentiment <= 60 {
		traits = append(traits, "⚖️ Balanced")
	}

	switch {
	case m.AvgPostScore > 1000:
		traits = append(traits, "🚀 Viral Creator")
	case m.AvgPostScore > 500:
		traits = append(traits, "🔥 Top Performer")
	case m.AvgPostScore > 100:
		traits = append(traits, "⭐ High Engagement")
	}

	switch ratio := in.ratio(); {
	case ratio > 20:
		traits = append(traits, "💬 Super Commenter")
	case ratio > 8:
		traits = append(traits, "💬 Discussion Lover")
	}

	switch ppm := in.postsPerMonth(); {
	case ppm > 30:
		traits = append(traits, "⚡ Power Poster")
	case ppm > 10:
		traits = append(traits, "📅 Active Contributor")
	}

	switch n := len(m.TopSubreddits); {
	case n == 1:
		traits = append(traits, "🎯 Niche Specialist")
	case n >= 6:
		traits = append(traits, "🌐 Wide Reach")
	}

	if p.IsGold {
		traits = append(traits, "★ Reddit Premium")
	}
	if p.HasVerifiedEmail {
		traits = append(traits, "✓ Verified")
	}

	switch {
	case m.Awards > 30:
		traits = append(traits, "🏆 Award Magnet")
	case m.Awards > 10:
		traits = append(traits, "🏅 Award Winner")
	}

	if m.Controversiality > 35 {
		traits = append(traits, "⚡ Controversial")
	}
	if p.IsEmployee {
		traits = append(traits, "🏢 Reddit Staff")
	}

	s := in.signals()
	if s.IsNightOwl() {
		traits = append(traits, "🦉 Night Owl")
	}
	if s.IsEarlyBird() {
		traits = append(traits, "🌅 Early Bird")
	}

	if len(traits) > maxTraits {
		traits = traits[:maxTraits]
	}
	return traits
}

// Dimensions computes the six personality bars
func Dimensions(in Input) []models.Dimension {
	m := in.Metrics
	return []models.Dimension{
		{Label: "Positivity", Value: m.Sentiment, Low: "Critical", High: "Positive"},
		{Label: "Engagement", Value: minInt(100, scaled(float64(m.AvgPostScore), 2000, 100)), Low: "Low", High: "Viral"},
		{Label: "Discussion", Value: minInt(100, scaled(in.ratio(), 20, 100)), Low: "Creator", High: "Commenter"},
		{Label: "Activity", Value: minInt(100, scaled(in.postsPerMonth(), 30, 100)), Low: "Casual", High: "Power"},
		{Label: "Controversy", Value: m.Controversiality, Low: "Harmonious", High: "Divisive"},
		{Label: "Reach", Value: minInt(100, len(m.TopSubreddits)*14), Low: "Specialist", High: "Generalist"},
	}
}

// BuildContentStyle reports the dominant post type and how long comments run
func BuildContentStyle(in Input) models.ContentStyle {
	ct := in.Metrics.ContentTypes
	types := []struct {
		name  string
		count int
	}{
		{"image", ct.Image},
		{"link", ct.Link},
		{"text", ct.Text},
		{"video", ct.Video},
		{"gallery", ct.Gallery},
	}

	total := 0
	top := types[0]
	for _, t := range types {
		total += t.count
		if t.count > top.count {
			top = t
		}
	}
	if total == 0 {
		total = 1
	}

	avgLen := in.avgCommentLength()
	var style string
	switch {
	case avgLen > 500:
		style = "Long-form"
	case avgLen > 200:
		style = "Medium"
	case avgLen > 50:
		style = "Concise"
	default:
		style = "Brief"
	}

	return models.ContentStyle{
		TopType:       top.name,
		TopTypePct:    scaled(float64(top.count), float64(total), 100),
		AvgCommentLen: avgLen,
		CommentStyle:  style,
	}
}

// ActivityProfile lists when and how often the user shows up
func ActivityProfile(in Input) []models.ActivityRow {
	m := in.Metrics
	return []models.ActivityRow{
		{Key: "Joined", Value: in.joined().Format("Jan 2, 2006")},
		{Key: "Account age", Value: utils.AccountAge(in.Profile.CreatedUTC, in.Now)},
		{Key: "Posts / month", Value: m.PostsPerMonth},
		{Key: "Peak hour", Value: shortHours[m.PeakHour]},
		{Key: "Peak day", Value: shortWeekdays[m.PeakDow]},
		{Key: "Total interactions", Value: utils.FormatNumber(float64(len(in.Posts) + len(in.Comments)))},
	}
}

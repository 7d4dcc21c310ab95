package persona

import (
	"fmt"

	"github.com/brettboylen/redditscope/models"
	"github.com/brettboylen/redditscope/utils"
)

// Signals are the aggregated inputs the archetype rules look at
type Signals struct {
	Posts     int
	Comments  int
	TopSubs   []models.SubredditCount
	Ratio     float64
	AvgScore  int
	Sentiment int
	HourDist  [24]int
}

// NewSignals extracts persona signals from aggregated metrics
func NewSignals(posts, comments int, m models.Metrics) Signals {
	return Signals{
		Posts:     posts,
		Comments:  comments,
		TopSubs:   m.TopSubreddits,
		Ratio:     utils.ParseNumber(m.Ratio),
		AvgScore:  m.AvgPostScore,
		Sentiment: m.Sentiment,
		HourDist:  m.HourDist,
	}
}

// Activity is the combined post and comment count
func (s Signals) Activity() int {
	return s.Posts + s.Comments
}

func (s Signals) hourShare(hours ...int) float64 {
	total := 0
	for _, n := range s.HourDist {
		total += n
	}
	if total == 0 {
		total = 1
	}

	sum := 0
	for _, h := range hours {
		sum += s.HourDist[h]
	}
	return float64(sum) / float64(total)
}

// IsNightOwl reports whether more than 30% of activity falls between 22:00 and 04:59
func (s Signals) IsNightOwl() bool {
	return s.hourShare(22, 23, 0, 1, 2, 3, 4) > 0.3
}

// IsEarlyBird reports whether more than 35% of activity falls between 06:00 and 09:59
func (s Signals) IsEarlyBird() bool {
	return s.hourShare(6, 7, 8, 9) > 0.35
}

// Rule maps a condition on the signals to an archetype
type Rule struct {
	Name string
	When func(Signals) bool
	Then func(Signals) models.Persona
}

func fixed(icon, label, desc string) func(Signals) models.Persona {
	p := models.Persona{Icon: icon, Label: label, Desc: desc}
	return func(Signals) models.Persona { return p }
}

// Explorer is the archetype used when no rule matches
var Explorer = models.Persona{Icon: "🧭", Label: "Explorer", Desc: "Curious generalist ranging across many communities"}

// Rules is evaluated top to bottom; the first matching rule decides the persona
var Rules = []Rule{
	{
		Name: "silent-observer",
		When: func(s Signals) bool { return s.Posts == 0 && s.Comments > 10 },
		Then: fixed("👀", "Silent Observer", "Lurks and comments, never starts the conversation"),
	},
	{
		Name: "ghost",
		When: func(s Signals) bool { return s.Posts == 0 && s.Comments <= 10 },
		Then: fixed("🕵️", "Ghost", "Barely leaves a trace on Reddit"),
	},
	{
		Name: "broadcaster",
		When: func(s Signals) bool { return s.Comments == 0 && s.Posts > 0 },
		Then: fixed("📢", "Broadcaster", "Posts content but rarely engages in replies"),
	},
	{
		Name: "reddit-legend",
		When: func(s Signals) bool { return s.AvgScore > 5000 },
		Then: fixed("🌟", "Reddit Legend", "Posts consistently dominate the frontpage"),
	},
	{
		Name: "viral-creator",
		When: func(s Signals) bool { return s.AvgScore > 1000 },
		Then: fixed("🏆", "Viral Creator", "Content regularly goes viral across Reddit"),
	},
	{
		Name: "trending-machine",
		When: func(s Signals) bool { return s.AvgScore > 500 },
		Then: fixed("🔥", "Trending Machine", "Consistently reaches hot with quality content"),
	},
	{
		Name: "comment-dynamo",
		When: func(s Signals) bool { return s.Ratio > 25 },
		Then: fixed("💬", "Comment Dynamo", "Lives in the comments, almost never posts"),
	},
	{
		Name: "conversationalist",
		When: func(s Signals) bool { return s.Ratio > 10 },
		Then: fixed("🗣️", "Conversationalist", "Loves discussions far more than posting"),
	},
	{
		Name: "pure-creator",
		When: func(s Signals) bool { return s.Ratio < 0.5 && s.Posts > 10 },
		Then: fixed("📸", "Pure Creator", "Posts prolifically and rarely replies"),
	},
	{
		Name: "positivity-beacon",
		When: func(s Signals) bool { return s.Sentiment > 80 },
		Then: fixed("☀️", "Positivity Beacon", "Relentlessly upbeat, a ray of sunshine on Reddit"),
	},
	{
		Name: "positive-force",
		When: func(s Signals) bool { return s.Sentiment > 70 },
		Then: fixed("😊", "Positive Force", "Spreads warmth and positivity across communities"),
	},
	{
		Name: "edgelord",
		When: func(s Signals) bool { return s.Sentiment < 25 },
		Then: fixed("⚔️", "Edgelord", "Deeply contrarian, thrives in debate and conflict"),
	},
	{
		Name: "contrarian",
		When: func(s Signals) bool { return s.Sentiment < 35 },
		Then: fixed("🌩️", "Contrarian", "Challenges prevailing views and loves a good argument"),
	},
	{
		Name: "midnight-debater",
		When: func(s Signals) bool { return s.IsNightOwl() && s.Ratio > 5 },
		Then: fixed("🦉", "Midnight Debater", "Comes alive in comment sections after dark"),
	},
	{
		Name: "night-owl",
		When: Signals.IsNightOwl,
		Then: fixed("🦉", "Night Owl", "Most active during the late-night hours"),
	},
	{
		Name: "early-bird",
		When: Signals.IsEarlyBird,
		Then: fixed("🌅", "Early Bird", "Greets the Reddit day before most others wake up"),
	},
	{
		Name: "niche-specialist",
		When: func(s Signals) bool { return len(s.TopSubs) == 1 },
		Then: func(s Signals) models.Persona {
			return models.Persona{
				Icon:  "🎯",
				Label: "Niche Specialist",
				Desc:  fmt.Sprintf("Laser-focused on r/%s", s.TopSubs[0].Name),
			}
		},
	},
	{
		Name: "dual-citizen",
		When: func(s Signals) bool { return len(s.TopSubs) == 2 },
		Then: func(s Signals) models.Persona {
			return models.Persona{
				Icon:  "🎲",
				Label: "Dual Citizen",
				Desc:  fmt.Sprintf("Splits time between r/%s and r/%s", s.TopSubs[0].Name, s.TopSubs[1].Name),
			}
		},
	},
	{
		Name: "power-user",
		When: func(s Signals) bool { return s.Activity() > 300 && s.AvgScore > 200 },
		Then: fixed("⭐", "Power User", "Prolific, high-quality contributor"),
	},
	{
		Name: "hyperactive",
		When: func(s Signals) bool { return s.Activity() > 200 },
		Then: fixed("⚡", "Hyperactive", "Posts and comments at a relentless pace"),
	},
	{
		Name: "community-hopper",
		When: func(s Signals) bool { return len(s.TopSubs) >= 7 },
		Then: fixed("🌐", "Community Hopper", "Deeply involved across a wide range of subreddits"),
	},
	{
		Name: "explorer",
		When: func(Signals) bool { return true },
		Then: func(Signals) models.Persona { return Explorer },
	},
}

// Detect returns the persona of the first rule that matches, or Explorer
func Detect(s Signals) models.Persona {
	for _, rule := range Rules {
		if rule.When(s) {
			return rule.Then(s)
		}
	}
	return Explorer
}

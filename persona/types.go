package persona

import (
	"math"

	"github.com/brettboylen/redditscope/models"
	"github.com/brettboylen/redditscope/utils"
)

// DefaultTypeCode is used for any code missing from Types
const DefaultTypeCode = "KIPB"

// axis threshold between the two letters of each axis
const axisThreshold = 50

// TypeProfile is the static description behind a four-letter code
type TypeProfile struct {
	Name       string
	Tagline    string
	Strengths  [3]string
	Weaknesses [3]string
	Similar    [2]string
}

// ComputeAxes scores the four personality axes from 0 to 100.
// Creator falls as the comment/post ratio rises, Viral tracks average post score,
// Positive is the sentiment score and Focused falls with subreddit breadth.
func ComputeAxes(m models.Metrics) models.Axes {
	ratio := utils.ParseNumber(m.Ratio)

	return models.Axes{
		Creator:  utils.Round(clamp(100 - (ratio/20)*100)),
		Viral:    utils.Round(math.Min(100, float64(m.AvgPostScore)/500*100)),
		Positive: m.Sentiment,
		Focused:  utils.Round(clamp(100 - float64(len(m.TopSubreddits))/10*100)),
	}
}

// DeriveType turns axis scores into a code and its profile
func DeriveType(axes models.Axes) models.PersonalityType {
	code := axisLetter(axes.Creator, 'C', 'K') +
		axisLetter(axes.Viral, 'V', 'I') +
		axisLetter(axes.Positive, 'P', 'X') +
		axisLetter(axes.Focused, 'F', 'B')

	profile, ok := Types[code]
	if !ok {
		profile = Types[DefaultTypeCode]
	}

	return models.PersonalityType{
		Code:       code,
		Name:       profile.Name,
		Tagline:    profile.Tagline,
		Strengths:  profile.Strengths[:],
		Weaknesses: profile.Weaknesses[:],
		Similar:    profile.Similar[:],
		Axes:       axes,
	}
}

func axisLetter(score int, high, low byte) string {
	if score >= axisThreshold {
		return string(high)
	}
	return string(low)
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(100, x))
}

// Types describes every four-letter code
var Types = map[string]TypeProfile{
	"CVPF": {
		Name:       "The Vanguard",
		Tagline:    "A trailblazing creator who dominates their niche with viral positivity.",
		Strengths:  [3]string{"Consistently high upvote counts", "Focused expertise builds real authority", "Positivity attracts loyal followers"},
		Weaknesses: [3]string{"May miss trends outside their comfort zone", "Can come across as a sycophant", "Niche focus limits broader influence"},
		Similar:    [2]string{"GallowBoob", "MrPeanutbutter"},
	},
	"CVPB": {
		Name:       "The Social Architect",
		Tagline:    "A popular creator spreading good vibes across many communities.",
		Strengths:  [3]string{"Wide reach across Reddit", "High engagement and likability", "Sets the tone in multiple subs"},
		Weaknesses: [3]string{"Spread thin — depth suffers for breadth", "Risk of becoming a content machine", "May lack a dedicated audience"},
		Similar:    [2]string{"spez", "a viral meme creator"},
	},
	"CVXF": {
		Name:       "The Provocateur",
		Tagline:    "A niche creator who thrives on controversy and heated takes.",
		Strengths:  [3]string{"Commands attention in their domain", "Fearless opinions generate discussion", "Creates memorable content"},
		Weaknesses: [3]string{"Alienates potential allies", "Reputation for negativity lingers", "High risk of ban in sensitive subs"},
		Similar:    [2]string{"A hot-take specialist", "debate sub regular"},
	},
	"CVXB": {
		Name:       "The Firestarter",
		Tagline:    "Drops controversial content across Reddit and watches it burn.",
		Strengths:  [3]string{"Excellent at generating discussion", "Fearless and uncensored voice", "High virality potential"},
		Weaknesses: [3]string{"Leaves a trail of drama", "Banned in more subs than average", "Hard to build long-term credibility"},
		Similar:    [2]string{"A classic internet troll", "AMA bomb thrower"},
	},
	"CIPF": {
		Name:       "The Craftsman",
		Tagline:    "Quietly crafts quality niche content that earns loyal respect.",
		Strengths:  [3]string{"Deep expertise in their field", "Consistent and reliable output", "Trusted voice in their community"},
		Weaknesses: [3]string{"Struggles to break out of niche", "Low virality ceiling", "Often underappreciated by outsiders"},
		Similar:    [2]string{"A subreddit wiki maintainer", "hobby expert"},
	},
	"CIPB": {
		Name:       "The Wanderer",
		Tagline:    "A curious creator who posts good stuff wherever inspiration strikes.",
		Strengths:  [3]string{"Versatile and adaptable", "Always fresh perspective", "Good across many topics"},
		Weaknesses: [3]string{"Jack of all trades, master of none", "No consistent audience", "Posts can feel scattered"},
		Similar:    [2]string{"A casual Redditor", "hobbyist poster"},
	},
	"CIXF": {
		Name:       "The Specialist",
		Tagline:    "A focused, low-key creator who takes no prisoners in their niche.",
		Strengths:  [3]string{"Deep niche knowledge", "Straightforward and no-nonsense", "Highly respected by insiders"},
		Weaknesses: [3]string{"Can come off as dismissive", "Low crossover appeal", "Critical tone repels newcomers"},
		Similar:    [2]string{"A technical sub expert", "contrarian hobbyist"},
	},
	"CIXB": {
		Name:       "The Drifter",
		Tagline:    "Floats across Reddit, leaving critical opinions in the wake.",
		Strengths:  [3]string{"Broad knowledge base", "Honest and unfiltered", "Always has an opinion"},
		Weaknesses: [3]string{"No real community home", "Reputation for negativity", "Posts often go unnoticed"},
		Similar:    [2]string{"A serial lurker turned critic", "thread hopper"},
	},
	"KVPF": {
		Name:       "The Ambassador",
		Tagline:    "The warmest presence in their subreddit — everyone loves them.",
		Strengths:  [3]string{"Deep community roots", "Uplifting and supportive tone", "Go-to person for advice"},
		Weaknesses: [3]string{"Rarely creates original content", "Can be seen as an enabler", "Low individual name recognition"},
		Similar:    [2]string{"A longtime sub moderator", "community pillar"},
	},
	"KVPB": {
		Name:       "The Butterfly",
		Tagline:    "Spreads positivity across every subreddit they visit.",
		Strengths:  [3]string{"Universally liked", "Breaks echo chambers", "High comment karma magnet"},
		Weaknesses: [3]string{"Comments without deep context", "Surface-level engagement", "Hard to pin down a specialty"},
		Similar:    [2]string{"A casual commenter", "friendly generalist"},
	},
	"KVXF": {
		Name:       "The Gatekeeper",
		Tagline:    "The niche community's fiercest defender and harshest critic.",
		Strengths:  [3]string{"Enforces high community standards", "Deep sub knowledge", "Cuts through bad takes fast"},
		Weaknesses: [3]string{"Intimidates newcomers", "Reputation for gatekeeping", "Gets into comment wars often"},
		Similar:    [2]string{"A sub veteran", "r/gatekeeping regular"},
	},
	"KVXB": {
		Name:       "The Contrarian",
		Tagline:    "Roams Reddit unpacking bad takes and delivering hard truths.",
		Strengths:  [3]string{"Fearless in calling out BS", "Broad knowledge base", "Keeps discussions honest"},
		Weaknesses: [3]string{"Gets downvoted frequently", "Can be exhausting to interact with", "Rarely wins karma"},
		Similar:    [2]string{"A debate sub regular", "devil's advocate"},
	},
	"KIPF": {
		Name:       "The Sage",
		Tagline:    "A quiet, focused commenter whose words carry real weight.",
		Strengths:  [3]string{"Highly trusted perspective", "Thoughtful and nuanced", "In-depth comment quality"},
		Weaknesses: [3]string{"Low output limits influence", "Can seem elitist", "Hard to discover organically"},
		Similar:    [2]string{"A subreddit elder", "expert lurker"},
	},
	"KIPB": {
		Name:       "The Explorer",
		Tagline:    "Wanders across Reddit, leaving thoughtful observations everywhere.",
		Strengths:  [3]string{"Broad curiosity and knowledge", "Uplifting presence", "Well-regarded in many communities"},
		Weaknesses: [3]string{"No persistent identity", "Easy to forget", "Rarely builds a following"},
		Similar:    [2]string{"A casual helpful commenter", "curious generalist"},
	},
	"KIXF": {
		Name:       "The Purist",
		Tagline:    "The uncompromising voice of standards in their chosen community.",
		Strengths:  [3]string{"Crystal-clear standards", "Sub experts respect them", "Never sugarcoats"},
		Weaknesses: [3]string{"Abrasive to newcomers", "Often misread as hostile", "Low karma for the effort"},
		Similar:    [2]string{"A strict sub regular", "rules enforcer"},
	},
	"KIXB": {
		Name:       "The Phantom",
		Tagline:    "Appears from nowhere with a sharp comment, then vanishes.",
		Strengths:  [3]string{"Unpredictable and interesting", "Cuts through noise efficiently", "No tribal loyalty"},
		Weaknesses: [3]string{"No community investment", "Often misunderstood", "Hard to build on reputation"},
		Similar:    [2]string{"A ghost account", "thread sniper"},
	},
}

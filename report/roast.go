package report

import (
	"fmt"
	"math"

	"github.com/brettboylen/redditscope/models"
	"github.com/brettboylen/redditscope/utils"
)

const (
	minHeat = 10
	maxHeat = 100
)

var roastHours = [24]string{
	"midnight", "1am", "2am", "3am", "4am", "5am", "6am", "7am", "8am", "9am", "10am", "11am",
	"noon", "1pm", "2pm", "3pm", "4pm", "5pm", "6pm", "7pm", "8pm", "9pm", "10pm", "11pm",
}

// BuildRoast writes the roast lines in a fixed order and rates their heat
func BuildRoast(in Input) models.Roast {
	m := in.Metrics
	name := in.username()
	ratio := in.ratio()
	freq := in.postsPerMonth()
	ageYears := utils.AgeInYears(in.Profile.CreatedUTC, in.Now)
	avgLen := in.avgCommentLength()
	karma := in.karma()
	posts := len(in.Posts)

	topSub := "unknown"
	if len(m.TopSubreddits) > 0 && m.TopSubreddits[0].Name != "" {
		topSub = m.TopSubreddits[0].Name
	}

	var lines []models.RoastLine
	heat := 0
	add := func(icon string, h int, format string, args ...interface{}) {
		lines = append(lines, models.RoastLine{Icon: icon, Text: fmt.Sprintf(format, args...)})
		heat += h
	}

	switch {
	case ageYears > 10:
		add("🧓", 15, "%s has been on Reddit for over %d years. For context, that's longer than most marriages last. At this point Reddit isn't a hobby — it's an identity crisis.",
			name, int(math.Floor(ageYears)))
	case ageYears < 0.5:
		add("🐣", 8, "%s's account is barely %d months old and already leaving a footprint. We admire the commitment. Most people last two weeks before abandoning their account like a New Year's gym membership.",
			name, utils.Round(ageYears*12))
	}

	switch {
	case ratio > 30:
		add("💬", 20, "With a %s:1 comment-to-post ratio, %s has never once started a conversation in their life — but they'll happily insert themselves into yours. The parasocial commenter in their natural habitat.",
			utils.FormatFloat(ratio), name)
	case ratio < 0.3 && posts > 20:
		add("📣", 15, `%s posts %d times but rarely comments. Basically screaming into a void and walking away. The textbook definition of "doesn't read the replies."`,
			name, posts)
	}

	switch {
	case m.AvgPostScore < 5 && posts > 20:
		add("📉", 25, `An average post score of %d upvotes. That's not just below average — that's "the algorithm actively hiding you" territory. Reddit's recommendation engine has quietly put %s on a list.`,
			m.AvgPostScore, name)
	case m.AvgPostScore > 2000:
		add("🤩", 5, "Averaging %s upvotes per post is actually impressive. Not that we'd say it to their face, but %s clearly knows what Reddit wants. Probably spent too long figuring that out, but here we are.",
			utils.FormatNumber(float64(m.AvgPostScore)), name)
	}

	switch {
	case freq > 60:
		add("⚡", 20, `%s posts per month. That's roughly twice a day, every day. At what point does this become a clinical condition? %s's search history is probably just "how to add more hours to a day."`,
			utils.FormatFloat(freq), name)
	case freq < 0.5 && posts > 0:
		add("🦥", 12, "Less than one post per month on average. %s treats Reddit like a gym membership — pays the attention, shows up twice a year, wonders why nothing changes.",
			name)
	}

	if in.signals().IsNightOwl() {
		add("🦉", 15, "Most active at %s. At that hour, the only other things awake are raccoons and people making terrible decisions. %s has found their tribe.",
			roastHours[m.PeakHour], name)
	}

	switch {
	case m.Sentiment < 25:
		add("😤", 22, "A sentiment score of %d%% positive. To put that in perspective, even tech support bots score higher. %s sees Reddit as a battleground, and everyone else as combatants.",
			m.Sentiment, name)
	case m.Sentiment > 90:
		add("🌈", 8, "%d%% positive sentiment. Either %s is the most genuinely wholesome person online, or they've mastered the art of performative positivity so thoroughly that even the algorithm is fooled.",
			m.Sentiment, name)
	}

	if m.Controversiality > 40 {
		add("🌊", 20, "%d%% of posts are controversial (sub-60%% upvote ratio). %s doesn't just push buttons — they rearrange the entire keyboard. Communities probably have a secret alert system for when they post.",
			m.Controversiality, name)
	}

	add("🏠", 5, "Their spiritual home is r/%s. No further questions at this time.", topSub)

	switch {
	case avgLen > 800:
		add("📜", 15, "Average comment length: %d characters. %s doesn't comment — they deliver closing arguments. Reddit has TLDRs for a reason, and this person is the reason.",
			avgLen, name)
	case avgLen < 30 && len(in.Comments) > 50:
		add("🫥", 18, `Average comment is just %d characters long. "%s has entered the chat" is immediately followed by "%s has added nothing." A true ghost of the comment section.`,
			avgLen, name, name)
	}

	if karma < 100 && ageYears > 2 {
		add("🪨", 20, "After %d years on Reddit, %s has accumulated %s karma. That's not a hobby — that's a grudge match between a person and the internet, and the internet is winning.",
			int(math.Floor(ageYears)), name, utils.FormatNumber(float64(karma)))
	}

	heat = minInt(maxHeat, heat)
	if heat < minHeat {
		heat = minHeat
	}

	return models.Roast{
		Lines:      lines,
		Heat:       heat,
		Subtitle:   roastSubtitle(heat),
		Redemption: redemption(in, name),
	}
}

func roastSubtitle(heat int) string {
	switch {
	case heat >= 70:
		return "This one is scorched 🔥"
	case heat >= 40:
		return "Medium well done"
	default:
		return "A light singe"
	}
}

func redemption(in Input, name string) string {
	m := in.Metrics
	switch {
	case m.AvgPostScore > 500:
		return fmt.Sprintf("But in all seriousness — %s consistently creates content people actually upvote. That's genuinely harder than it looks, and not everyone can do it. Respect.", name)
	case m.Awards > 10:
		return fmt.Sprintf("Jokes aside, %s has earned %d awards over their time here. That means real people appreciated their content enough to spend actual money on it. That's not nothing.", name, m.Awards)
	case m.Sentiment > 70:
		return fmt.Sprintf("In fairness, %s's positivity is a genuine contribution to a platform that desperately needs more of it. The internet is already dark enough without them adding to it.", name)
	case len(in.Comments) > 200:
		return fmt.Sprintf("At the end of the day, %s has shown up and engaged — hundreds of times. That kind of consistency is rarer than it sounds, and Reddit genuinely runs on people like that.", name)
	default:
		return fmt.Sprintf("Look — everyone's on Reddit for their own reasons. %s's reasons may be deeply mysterious to the rest of us, but who are we to judge. They're here, they're real, they're… something.", name)
	}
}

package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/brettboylen/redditscope/models"
	"github.com/brettboylen/redditscope/utils"
)

// gradeScale is checked top down; the first floor the score reaches wins
var gradeScale = []struct {
	floor int
	grade models.Grade
}{
	{93, models.Grade{Letter: "A+", Points: 4.0}},
	{90, models.Grade{Letter: "A", Points: 4.0}},
	{87, models.Grade{Letter: "A−", Points: 3.7}},
	{83, models.Grade{Letter: "B+", Points: 3.3}},
	{80, models.Grade{Letter: "B", Points: 3.0}},
	{77, models.Grade{Letter: "B−", Points: 2.7}},
	{73, models.Grade{Letter: "C+", Points: 2.3}},
	{70, models.Grade{Letter: "C", Points: 2.0}},
	{67, models.Grade{Letter: "C−", Points: 1.7}},
	{60, models.Grade{Letter: "D", Points: 1.0}},
}

var failing = models.Grade{Letter: "F", Points: 0}

// ScoreToGrade maps a 0-100 score to a letter grade
func ScoreToGrade(score float64) models.Grade {
	for _, g := range gradeScale {
		if score >= float64(g.floor) {
			return g.grade
		}
	}
	return failing
}

// BuildReportCard grades the user in six subjects
func BuildReportCard(in Input) models.ReportCard {
	m := in.Metrics

	subjects := []models.Subject{
		{
			Name:    "Content Quality",
			Icon:    "📄",
			Score:   minInt(100, logScaled(math.Max(float64(m.AvgPostScore), 1)+1, 5001, 100)),
			Comment: "How upvoted your posts are on average",
		},
		{
			Name:    "Consistency",
			Icon:    "📅",
			Score:   minInt(100, scaled(math.Min(in.postsPerMonth(), 30), 30, 100)),
			Comment: "Posting frequency vs. maximum cadence",
		},
		{
			Name:    "Community Presence",
			Icon:    "🌐",
			Score:   minInt(100, scaled(float64(len(m.TopSubreddits)), 10, 100)),
			Comment: "Breadth of subreddit involvement",
		},
		{
			Name:    "Engagement",
			Icon:    "💬",
			Score:   minInt(100, scaled(math.Min(in.ratio(), 20), 20, 100)),
			Comment: "Comment-to-post ratio and interaction depth",
		},
		{
			Name:    "Positive Vibes",
			Icon:    "😊",
			Score:   m.Sentiment,
			Comment: "Sentiment positivity across all content",
		},
		{
			Name:    "Karma Accumulated",
			Icon:    "⬆️",
			Score:   minInt(100, logScaled(math.Max(float64(in.karma()), 1)+1, 1e7+1, 100)),
			Comment: "Total karma earned over account lifetime",
		},
	}

	points := 0.0
	for i := range subjects {
		subjects[i].Grade = ScoreToGrade(float64(subjects[i].Score))
		points += subjects[i].Grade.Points
	}

	gpa := utils.ToFixed(points/float64(len(subjects)), 2)
	gpaNum := utils.ParseNumber(gpa)

	return models.ReportCard{
		Subjects:       subjects,
		GPA:            gpa,
		GPAGrade:       ScoreToGrade(gpaNum / 4.0 * 100),
		Standing:       standing(gpaNum),
		TeacherComment: teacherComment(in.Profile.Name, gpaNum, subjects),
		Term:           "Since " + in.joined().Format("January 2006"),
	}
}

func standing(gpa float64) string {
	switch {
	case gpa >= 3.5:
		return "Dean's List"
	case gpa >= 3.0:
		return "Honors"
	case gpa >= 2.0:
		return "Passing"
	default:
		return "Needs Improvement"
	}
}

// bestAndWorst returns the highest and lowest scoring subjects; later subjects win ties
func bestAndWorst(subjects []models.Subject) (models.Subject, models.Subject) {
	best, worst := subjects[0], subjects[0]
	for _, s := range subjects[1:] {
		if !(best.Score > s.Score) {
			best = s
		}
		if !(worst.Score < s.Score) {
			worst = s
		}
	}
	return best, worst
}

func teacherComment(name string, gpa float64, subjects []models.Subject) string {
	best, worst := bestAndWorst(subjects)
	bestName := strings.ToLower(best.Name)
	worstName := strings.ToLower(worst.Name)

	switch {
	case gpa >= 3.7:
		return fmt.Sprintf("%s is an exceptional student of Reddit. Their %s is frankly outstanding, and it shows in everything they do. If they keep this up, they may qualify for the Reddit Hall of Fame. A delight to have in class.", name, bestName)
	case gpa >= 3.0:
		return fmt.Sprintf("%s demonstrates solid academic performance with notable strengths in %s. There's real potential here. Could achieve even more by working on their %s. Solid student, bright future.", name, bestName, worstName)
	case gpa >= 2.0:
		return fmt.Sprintf("%s is passing, but barely meeting expectations in several areas. Their %s shows promise, however their %s drags their overall performance down. Recommend office hours.", name, bestName, worstName)
	default:
		return fmt.Sprintf("%s needs to seriously reflect on their Reddit journey. Poor %s is holding back what little potential exists. Participation is the bare minimum — we expect more. See faculty advisor immediately.", name, worstName)
	}
}

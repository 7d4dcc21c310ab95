package stats

import (
	"github.com/google/uuid"

	"github.com/brettboylen/redditscope/models"
	"github.com/brettboylen/redditscope/persona"
	"github.com/brettboylen/redditscope/report"
)

// Assemble runs the aggregator, both classifiers and the report builders over
// one user's data and returns the finished analysis
func Assemble(profile models.Profile, posts, comments []models.Item, opts Options) *models.Analysis {
	opts = opts.withDefaults()
	if posts == nil {
		posts = []models.Item{}
	}
	if comments == nil {
		comments = []models.Item{}
	}

	metrics := Aggregate(profile, posts, comments, opts)

	in := report.Input{
		Profile:  profile,
		Posts:    posts,
		Comments: comments,
		Metrics:  metrics,
		Now:      opts.Now,
		Location: opts.Location,
	}

	return &models.Analysis{
		ID:              uuid.NewString(),
		GeneratedAt:     opts.Now.UTC(),
		Profile:         profile,
		Posts:           posts,
		Comments:        comments,
		Metrics:         metrics,
		Persona:         metrics.Persona,
		PersonalityType: persona.DeriveType(persona.ComputeAxes(metrics)),
		Summary:         report.BuildSummary(in),
		ReportCard:      report.BuildReportCard(in),
		Roast:           report.BuildRoast(in),
		Notice:          fallbackNotice(profile),
	}
}

// fallbackNotice explains where posts came from when the profile endpoint could not be trusted
func fallbackNotice(p models.Profile) *models.FallbackNotice {
	if !p.IsHidden && !p.UsedSearchFallback {
		return nil
	}

	title := "Profile is hidden"
	if p.UsedSearchFallback {
		title = "Posts were fetched via Reddit's search index"
	}

	desc := "Fewer posts were found via the profile endpoint, so the search index was used to recover more."
	if p.IsHidden {
		desc = "This user has hidden their profile: their posts are invisible on their profile page, but were recovered from Reddit's search index."
	}

	return &models.FallbackNotice{
		Title:                 title,
		Description:           desc + " Comments from hidden profiles cannot be recovered.",
		CommentsUnrecoverable: p.IsHidden,
	}
}

// Package report turns aggregated metrics into the narrative sections of an analysis:
// the summary prose, the report card and the roast.
package report

import (
	"math"
	"time"
	"unicode/utf16"

	"github.com/brettboylen/redditscope/models"
	"github.com/brettboylen/redditscope/persona"
	"github.com/brettboylen/redditscope/utils"
)

// Input is everything the builders read; none of it is modified
type Input struct {
	Profile  models.Profile
	Posts    []models.Item
	Comments []models.Item
	Metrics  models.Metrics
	Now      time.Time
	Location *time.Location
}

func (in Input) username() string {
	return "u/" + in.Profile.Name
}

func (in Input) ratio() float64 {
	return utils.ParseNumber(in.Metrics.Ratio)
}

func (in Input) postsPerMonth() float64 {
	return utils.ParseNumber(in.Metrics.PostsPerMonth)
}

func (in Input) karma() int {
	return in.Profile.TotalKarma()
}

func (in Input) joined() time.Time {
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(int64(in.Profile.CreatedUTC * 1000)).In(loc)
}

func (in Input) signals() persona.Signals {
	return persona.NewSignals(len(in.Posts), len(in.Comments), in.Metrics)
}

// avgCommentLength is the mean comment body length in UTF-16 code units
func (in Input) avgCommentLength() int {
	if len(in.Comments) == 0 {
		return 0
	}
	total := 0
	for _, c := range in.Comments {
		total += len(utf16.Encode([]rune(c.Body)))
	}
	return utils.Round(float64(total) / float64(len(in.Comments)))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// scaled maps value/max onto 0..span, rounding half up
func scaled(value, max float64, span float64) int {
	return utils.Round(value / max * span)
}

func logScaled(value float64, max float64, span float64) int {
	return utils.Round(math.Log10(value) / math.Log10(max) * span)
}

package summarize

import (
	"math"

	"tldr/internal/domain/entity"
	"tldr/internal/utils/text"
)

// ComputeStats measures original and summary in characters (Unicode runes)
// and derives the reduction percentage, rounded half up.
// An empty original yields 0%. A summary longer than the original yields a
// negative percentage.
func ComputeStats(original, summary string) entity.Stats {
	o := text.CountRunes(original)
	s := text.CountRunes(summary)

	stats := entity.Stats{OriginalLength: o, SummaryLength: s}
	if o == 0 {
		return stats
	}

	stats.ReductionPercent = int(math.Floor(100*float64(o-s)/float64(o) + 0.5))
	return stats
}

package organize

import (
	"fmt"
	"strings"

	"scholarly/internal/core"
	"scholarly/internal/patterns"
)

// timelineBucket defines one rolling window relative to the current year.
type timelineBucket struct {
	Period    string
	MaxAge    int // Inclusive upper bound on years back; -1 means unbounded
	MinAge    int // Inclusive lower bound on years back
	Relevance string
}

var timelineBuckets = []timelineBucket{
	{"Last 2 years", 2, 0, "high"},
	{"3-5 years ago", 5, 3, "high"},
	{"6-10 years ago", 10, 6, "moderate"},
	{"More than 10 years ago", -1, 11, "low"},
}

// GroupByTimeline buckets sources into rolling windows relative to the
// current year and computes a simple trend string per bucket.
func GroupByTimeline(sources []core.Source, currentYear int) []core.TimelineGroup {
	var groups []core.TimelineGroup
	for _, bucket := range timelineBuckets {
		var members []core.Source
		for _, source := range sources {
			if source.Year <= 0 {
				continue
			}
			age := currentYear - source.Year
			if age < bucket.MinAge {
				continue
			}
			if bucket.MaxAge >= 0 && age > bucket.MaxAge {
				continue
			}
			members = append(members, source)
		}
		if len(members) == 0 {
			continue
		}

		ids := make([]string, len(members))
		yearSum := 0
		for i, source := range members {
			ids[i] = source.ID
			yearSum += source.Year
		}
		avgYear := yearSum / len(members)

		endYear := currentYear - bucket.MinAge
		startYear := 0
		if bucket.MaxAge >= 0 {
			startYear = currentYear - bucket.MaxAge
		}

		groups = append(groups, core.TimelineGroup{
			Period:             bucket.Period,
			StartYear:          startYear,
			EndYear:            endYear,
			SourceIDs:          ids,
			Trend:              trendFor(members, avgYear),
			RelevanceToPresent: bucket.Relevance,
		})
	}
	return groups
}

// trendFor summarizes a bucket: source count, dominant extracted term, and
// average publication year.
func trendFor(members []core.Source, avgYear int) string {
	dominant := patterns.ExtractThemes(members)[0]
	noun := "sources"
	if len(members) == 1 {
		noun = "source"
	}
	return fmt.Sprintf("%d %s, dominated by %s (avg. year %d)", len(members), noun, strings.ToLower(dominant), avgYear)
}

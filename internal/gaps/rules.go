package gaps

import (
	"fmt"

	"github.com/google/uuid"

	"scholarly/internal/core"
	"scholarly/internal/patterns"
)

// RuleBasedGaps is the deterministic fallback generator. It derives gaps from
// three signals: populations with limited coverage, canonical methodologies
// absent from the collection, and the first recorded temporal gap. Output is
// capped at MaxGaps.
func RuleBasedGaps(synthesis core.SourceSynthesis, sources []core.Source) []core.GapOpportunity {
	var drafts []core.GapOpportunity

	for _, pop := range synthesis.Populations {
		if pop.Coverage != core.CoverageLimited {
			continue
		}
		drafts = append(drafts, core.GapOpportunity{
			ID:                uuid.NewString(),
			GapType:           core.GapPopulation,
			Title:             fmt.Sprintf("Limited research on %s", pop.Demographic),
			Description:       fmt.Sprintf("Only %d source(s) in the collection study %s.", pop.SourceCount, pop.Demographic),
			WhyMatters:        fmt.Sprintf("Findings may not generalize to %s without dedicated study.", pop.Demographic),
			CurrentLimitation: fmt.Sprintf("The collection underrepresents %s.", pop.Demographic),
			ProposedApproach:  fmt.Sprintf("Recruit %s directly in a focused study.", pop.Demographic),
			EstimatedScope:    core.ScopeMedium,
			EstimatedTime:     "6-12 months",
		})
		if len(drafts) == MaxGaps {
			return drafts
		}
	}

	present := make(map[string]bool, len(synthesis.Methodologies))
	for _, method := range synthesis.Methodologies {
		present[method.Approach] = true
	}
	for _, method := range patterns.CanonicalMethods() {
		if present[method] {
			continue
		}
		drafts = append(drafts, core.GapOpportunity{
			ID:                uuid.NewString(),
			GapType:           core.GapMethodology,
			Title:             fmt.Sprintf("No %s in the collection", method),
			Description:       fmt.Sprintf("None of the sources use a %s design.", method),
			WhyMatters:        fmt.Sprintf("A %s would add evidence the current designs cannot provide.", method),
			CurrentLimitation: fmt.Sprintf("The evidence base lacks %s findings.", method),
			ProposedApproach:  fmt.Sprintf("Design a study using a %s approach.", method),
			EstimatedScope:    core.ScopeLarge,
			EstimatedTime:     "12-24 months",
		})
		if len(drafts) == MaxGaps {
			return drafts
		}
	}

	if len(synthesis.Temporal.Gaps) > 0 {
		gap := synthesis.Temporal.Gaps[0]
		drafts = append(drafts, core.GapOpportunity{
			ID:                uuid.NewString(),
			GapType:           core.GapTemporal,
			Title:             fmt.Sprintf("Publication gap during %s", gap),
			Description:       fmt.Sprintf("No sources in the collection were published during %s.", gap),
			WhyMatters:        "Developments from the uncovered period may change current conclusions.",
			CurrentLimitation: fmt.Sprintf("The collection skips %s entirely.", gap),
			ProposedApproach:  "Search specifically for work published in the uncovered period, or study how the field changed across it.",
			EstimatedScope:    core.ScopeSmall,
			EstimatedTime:     "1-3 months",
		})
	}

	if len(drafts) > MaxGaps {
		drafts = drafts[:MaxGaps]
	}
	return drafts
}

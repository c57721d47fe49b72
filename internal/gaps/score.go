package gaps

import (
	"math"
	"sort"
	"strings"

	"scholarly/internal/core"
)

// Overall score weights. overall = 0.3*novelty + 0.4*feasibility + 0.3*contribution.
const (
	noveltyWeight      = 0.3
	feasibilityWeight  = 0.4
	contributionWeight = 0.3
)

// scoreGaps fills in the three axis scores and the overall score for each
// draft. Drafts are not reordered here.
func scoreGaps(drafts []core.GapOpportunity, synthesis core.SourceSynthesis, question string) []core.GapOpportunity {
	scored := make([]core.GapOpportunity, len(drafts))
	for i, draft := range drafts {
		draft.NoveltyScore = noveltyScore(draft, synthesis)
		draft.FeasibilityScore = feasibilityScore(draft)
		draft.ContributionScore = contributionScore(draft, question)
		draft.OverallScore = overallScore(draft.NoveltyScore, draft.FeasibilityScore, draft.ContributionScore)
		scored[i] = draft
	}
	return scored
}

// overallScore combines the three axes with the fixed weights.
func overallScore(novelty, feasibility, contribution int) int {
	return int(math.Round(noveltyWeight*float64(novelty) + feasibilityWeight*float64(feasibility) + contributionWeight*float64(contribution)))
}

// noveltyScore grades how unexplored the gap is. Population gaps score by the
// coverage of the named demographic (missing 90, limited 75, otherwise 50);
// methodology gaps score 85 when the method is absent from the corpus and 40
// when present; everything else defaults to 60.
func noveltyScore(gap core.GapOpportunity, synthesis core.SourceSynthesis) int {
	switch gap.GapType {
	case core.GapPopulation:
		switch populationCoverageFor(gap, synthesis) {
		case core.CoverageMissing:
			return 90
		case core.CoverageLimited:
			return 75
		default:
			return 50
		}
	case core.GapMethodology:
		if methodologyPresent(gap, synthesis) {
			return 40
		}
		return 85
	default:
		return 60
	}
}

// populationCoverageFor finds the coverage level of the demographic a
// population gap names. A demographic absent from the synthesis is implicitly
// missing.
func populationCoverageFor(gap core.GapOpportunity, synthesis core.SourceSynthesis) core.CoverageLevel {
	text := strings.ToLower(gap.Title + " " + gap.Description)
	for _, pop := range synthesis.Populations {
		if strings.Contains(text, strings.ToLower(pop.Demographic)) {
			return pop.Coverage
		}
	}
	return core.CoverageMissing
}

// methodologyPresent reports whether the method a methodology gap names
// already appears in the corpus.
func methodologyPresent(gap core.GapOpportunity, synthesis core.SourceSynthesis) bool {
	text := strings.ToLower(gap.Title + " " + gap.Description)
	for _, method := range synthesis.Methodologies {
		if strings.Contains(text, strings.ToLower(method.Approach)) {
			return true
		}
	}
	return false
}

// feasibilityScore is primarily a function of the estimated scope, with
// gap-type defaults applied only when scope is unset.
func feasibilityScore(gap core.GapOpportunity) int {
	switch gap.EstimatedScope {
	case core.ScopeSmall:
		return 90
	case core.ScopeMedium:
		return 70
	case core.ScopeLarge:
		return 40
	}
	switch gap.GapType {
	case core.GapPopulation:
		return 75
	case core.GapMethodology:
		return 60
	case core.GapTemporal:
		return 85
	default:
		return 60
	}
}

// contributionScore is the fraction of the research question's words (longer
// than 3 chars) that literally appear in the gap's title and description,
// scaled to 0-100. Deliberately crude lexical overlap: more overlap always
// scores higher.
func contributionScore(gap core.GapOpportunity, question string) int {
	gapText := strings.ToLower(gap.Title + " " + gap.Description)

	var considered, matched int
	for _, word := range strings.Fields(strings.ToLower(question)) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if len(word) <= 3 {
			continue
		}
		considered++
		if strings.Contains(gapText, word) {
			matched++
		}
	}
	if considered == 0 {
		return 0
	}
	return int(math.Round(float64(matched) / float64(considered) * 100))
}

// rankGaps sorts gaps by overall score descending. The sort is stable: ties
// keep generator order.
func rankGaps(gaps []core.GapOpportunity) []core.GapOpportunity {
	ranked := make([]core.GapOpportunity, len(gaps))
	copy(ranked, gaps)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallScore > ranked[j].OverallScore
	})
	return ranked
}

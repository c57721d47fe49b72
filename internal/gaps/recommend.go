package gaps

import (
	"fmt"
	"strings"

	"scholarly/internal/core"
)

// methodCatalogEntry is one entry in the fixed catalog used for
// methodological gap advisories.
type methodCatalogEntry struct {
	Method     string
	Rationale  string
	Difficulty string
}

// methodCatalog lists the five canonical methods checked for absence, with
// static difficulty ratings.
var methodCatalog = []methodCatalogEntry{
	{"randomized controlled trial", "Would establish causal relationships the current designs cannot", "hard"},
	{"longitudinal study", "Would capture how effects develop and persist over time", "hard"},
	{"qualitative study", "Would surface mechanisms and lived experience behind the quantitative findings", "easy"},
	{"mixed methods", "Would triangulate quantitative effects with qualitative context", "moderate"},
	{"meta-analysis", "Would aggregate the existing evidence into pooled effect estimates", "moderate"},
}

// identifyMethodologicalGaps emits an advisory for each catalog method absent
// from the synthesis, capped at MaxMethodGaps. Independent of the identified
// gap list.
func identifyMethodologicalGaps(synthesis core.SourceSynthesis) []core.MethodologicalGap {
	present := make(map[string]bool, len(synthesis.Methodologies))
	for _, method := range synthesis.Methodologies {
		present[method.Approach] = true
	}

	var gaps []core.MethodologicalGap
	for _, entry := range methodCatalog {
		if present[entry.Method] {
			continue
		}
		gaps = append(gaps, core.MethodologicalGap{
			Methodology: entry.Method,
			Rationale:   entry.Rationale,
			Difficulty:  entry.Difficulty,
		})
		if len(gaps) == MaxMethodGaps {
			break
		}
	}
	return gaps
}

// deriveOpportunities synthesizes up to MaxOpportunities follow-up questions
// from the top-ranked gaps using gap-type-specific templates.
func deriveOpportunities(ranked []core.GapOpportunity, synthesis core.SourceSynthesis) []core.ResearchOpportunity {
	topic := primaryTopic(synthesis)

	var opportunities []core.ResearchOpportunity
	for _, gap := range ranked {
		opportunities = append(opportunities, core.ResearchOpportunity{
			Question:        opportunityQuestion(gap, topic),
			Rationale:       opportunityRationale(gap),
			ExpectedOutcome: expectedOutcome(gap, topic),
			GapID:           gap.ID,
		})
		if len(opportunities) == MaxOpportunities {
			break
		}
	}
	return opportunities
}

// primaryTopic names the collection's dominant theme in sentence position.
func primaryTopic(synthesis core.SourceSynthesis) string {
	if len(synthesis.Themes) > 0 {
		return strings.ToLower(synthesis.Themes[0])
	}
	return "the phenomenon under study"
}

// opportunityQuestion builds a follow-up question from the per-type template.
func opportunityQuestion(gap core.GapOpportunity, topic string) string {
	focus := gapFocus(gap)
	switch gap.GapType {
	case core.GapPopulation:
		return fmt.Sprintf("How does %s affect %s?", topic, focus)
	case core.GapMethodology:
		return fmt.Sprintf("What insights could be gained about %s through a %s?", topic, focus)
	case core.GapTemporal:
		return fmt.Sprintf("How have findings on %s changed in recent years?", topic)
	case core.GapContext:
		return fmt.Sprintf("How does %s manifest in %s settings?", topic, focus)
	case core.GapVariableInteraction:
		return fmt.Sprintf("How do the factors behind %s interact with %s?", focus, topic)
	default:
		return fmt.Sprintf("What would closing the gap %q reveal about %s?", gap.Title, topic)
	}
}

// opportunityRationale cites the gap's WhyMatters field.
func opportunityRationale(gap core.GapOpportunity) string {
	if gap.WhyMatters != "" {
		return gap.WhyMatters
	}
	return fmt.Sprintf("The collection leaves %q unaddressed.", gap.Title)
}

// expectedOutcome states what answering the question would contribute, per
// gap type.
func expectedOutcome(gap core.GapOpportunity, topic string) string {
	switch gap.GapType {
	case core.GapPopulation:
		return fmt.Sprintf("Evidence on whether existing findings about %s generalize to %s.", topic, gapFocus(gap))
	case core.GapMethodology:
		return fmt.Sprintf("Findings with a form of validity the current evidence base on %s lacks.", topic)
	case core.GapTemporal:
		return fmt.Sprintf("An up-to-date picture of %s reflecting recent developments.", topic)
	case core.GapContext:
		return fmt.Sprintf("Knowledge of how %s varies across settings.", topic)
	case core.GapVariableInteraction:
		return fmt.Sprintf("A clearer model of the mechanisms underlying %s.", topic)
	default:
		return fmt.Sprintf("A more complete understanding of %s.", topic)
	}
}

// gapFocus extracts the demographic, method, or topic portion of a gap title
// for use inside question templates.
func gapFocus(gap core.GapOpportunity) string {
	title := strings.TrimSpace(gap.Title)
	lower := strings.ToLower(title)

	if idx := strings.LastIndex(lower, " on "); idx >= 0 {
		return strings.ToLower(strings.TrimSpace(title[idx+4:]))
	}
	if strings.HasPrefix(lower, "no ") {
		rest := title[3:]
		if idx := strings.Index(strings.ToLower(rest), " in the collection"); idx >= 0 {
			rest = rest[:idx]
		}
		return strings.ToLower(strings.TrimSpace(rest))
	}
	if idx := strings.Index(title, ": "); idx >= 0 {
		return strings.ToLower(strings.TrimSpace(title[idx+2:]))
	}
	return strings.ToLower(title)
}

// composeAssessment writes the narrative summary for a completed analysis.
func composeAssessment(result core.GapAnalysisResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Analyzed %d sources spanning %d theme(s) and %d methodology type(s).",
		result.SourcesCovered, len(result.Synthesis.Themes), len(result.Synthesis.Methodologies)))

	if len(result.IdentifiedGaps) > 0 {
		top := result.IdentifiedGaps[0]
		sb.WriteString(fmt.Sprintf(" The most promising opportunity is %q (overall score %d).", top.Title, top.OverallScore))
	} else {
		sb.WriteString(" No clear gaps were identified; the collection covers its topic broadly.")
	}

	switch result.ConfidenceLevel {
	case core.ConfidenceHigh:
		sb.WriteString(" The collection is large and methodologically diverse, so these findings are well supported.")
	case core.ConfidenceModerate:
		sb.WriteString(" The collection provides moderate support for these findings; more sources would sharpen them.")
	default:
		sb.WriteString(" The collection is small, so treat these findings as preliminary.")
	}

	return sb.String()
}

// composeRecommendations builds the capped list of actionable advice from
// template rules over the result.
func composeRecommendations(result core.GapAnalysisResult) []string {
	var recommendations []string

	if len(result.IdentifiedGaps) > 0 {
		top := result.IdentifiedGaps[0]
		recommendations = append(recommendations,
			fmt.Sprintf("Prioritize the top-ranked gap: %s", top.Title))
	}

	for _, methodGap := range result.MethodologicalGaps {
		if methodGap.Difficulty == "easy" || methodGap.Difficulty == "moderate" {
			recommendations = append(recommendations,
				fmt.Sprintf("Add a %s to the research program (%s to implement)", methodGap.Methodology, methodGap.Difficulty))
			break
		}
	}

	for _, gap := range result.IdentifiedGaps {
		if gap.GapType == core.GapPopulation {
			recommendations = append(recommendations,
				fmt.Sprintf("Broaden population coverage: %s", gap.Title))
			break
		}
	}

	feasible := 0
	for _, gap := range result.IdentifiedGaps {
		if gap.FeasibilityScore >= 70 {
			feasible++
		}
	}
	if feasible > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("%d of the identified gaps are highly feasible and could be pursued immediately", feasible))
	}

	if len(result.IdentifiedGaps) < 3 {
		recommendations = append(recommendations,
			"Collect more sources to surface additional gaps")
	}

	if len(recommendations) > MaxRecommendations {
		recommendations = recommendations[:MaxRecommendations]
	}
	return recommendations
}

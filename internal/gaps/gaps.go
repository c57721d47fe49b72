// Package gaps implements the gap-opportunity engine: it synthesizes a source
// collection, identifies candidate research gaps (AI-first with a rule-based
// fallback), scores and ranks them, and derives follow-up questions and
// methodological advisories. PerformGapAnalysis never fails past its own
// boundary; degraded pipelines return a well-formed result with a lower
// confidence level.
package gaps

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scholarly/internal/core"
	"scholarly/internal/llm"
	"scholarly/internal/logger"
	"scholarly/internal/patterns"
)

const (
	// MinSources is the smallest collection gap analysis accepts. Below it a
	// defined insufficient-sources result is returned, not an error.
	MinSources = 3
	// MaxGaps caps the number of identified gaps per run.
	MaxGaps = 5
	// MaxOpportunities caps derived research opportunities.
	MaxOpportunities = 3
	// MaxMethodGaps caps methodological gap advisories.
	MaxMethodGaps = 3
	// MaxRecommendations caps actionable recommendations.
	MaxRecommendations = 5
)

// Completer is the external completion service contract.
type Completer interface {
	GenerateText(ctx context.Context, prompt string, options llm.TextGenerationOptions) (string, error)
}

// Analyzer runs gap analyses over source collections.
type Analyzer struct {
	completer Completer
}

// NewAnalyzer creates a gap analyzer. A nil completer makes every run take
// the rule-based path.
func NewAnalyzer(completer Completer) *Analyzer {
	return &Analyzer{completer: completer}
}

// Synthesize derives the cross-source synthesis the rest of the pipeline
// works from. It is recomputed on every call.
func Synthesize(sources []core.Source) core.SourceSynthesis {
	return core.SourceSynthesis{
		Themes:        patterns.ExtractThemes(sources),
		Populations:   patterns.AnalyzePopulationCoverage(sources),
		Methodologies: patterns.AnalyzeMethodologies(sources),
		Temporal:      patterns.AnalyzeTemporalCoverage(sources, time.Now().Year()),
		Contexts:      patterns.AnalyzeContexts(sources),
		Variables:     patterns.AnalyzeVariables(sources),
	}
}

// PerformGapAnalysis runs the full pipeline for a collection and research
// question. It always returns a well-formed result: fewer than MinSources
// short-circuits to the insufficient-sources result, and any internal panic
// is converted into the generic fallback result.
func (a *Analyzer) PerformGapAnalysis(ctx context.Context, sources []core.Source, question string) (result core.GapAnalysisResult) {
	if len(sources) < MinSources {
		return insufficientSourcesResult(len(sources))
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("gap analysis pipeline panicked, returning fallback result", nil, "panic", r)
			result = fallbackResult(sources)
		}
	}()

	synthesis := Synthesize(sources)

	drafts := a.identifyGaps(ctx, synthesis, sources, question)
	scored := scoreGaps(drafts, synthesis, question)
	ranked := rankGaps(scored)
	if len(ranked) > MaxGaps {
		ranked = ranked[:MaxGaps]
	}

	methodGaps := identifyMethodologicalGaps(synthesis)

	result = core.GapAnalysisResult{
		ID:                 uuid.NewString(),
		Synthesis:          synthesis,
		IdentifiedGaps:     ranked,
		Opportunities:      deriveOpportunities(ranked, synthesis),
		MethodologicalGaps: methodGaps,
		ConfidenceLevel:    confidenceFor(len(sources), len(synthesis.Methodologies)),
		SourcesCovered:     len(sources),
		GeneratedAt:        time.Now().UTC(),
	}
	result.OverallAssessment = composeAssessment(result)
	result.Recommendations = composeRecommendations(result)
	return result
}

// identifyGaps requests AI-identified candidate gaps and falls back to the
// rule-based generator on request or parse failure. First success wins; the
// two generators are never combined.
func (a *Analyzer) identifyGaps(ctx context.Context, synthesis core.SourceSynthesis, sources []core.Source, question string) []core.GapOpportunity {
	if a.completer != nil {
		drafts, err := a.requestAIGaps(ctx, synthesis, question)
		if err == nil && len(drafts) > 0 {
			return drafts
		}
		if err != nil {
			logger.Warn("AI gap identification failed, using rule-based generator", "error", err.Error())
		}
	}
	return RuleBasedGaps(synthesis, sources)
}

// confidenceFor grades an analysis by collection size and methodological
// diversity.
func confidenceFor(sourceCount, methodologyCount int) core.ConfidenceLevel {
	switch {
	case sourceCount >= 10 && methodologyCount >= 3:
		return core.ConfidenceHigh
	case sourceCount >= 5 && methodologyCount >= 2:
		return core.ConfidenceModerate
	default:
		return core.ConfidenceLow
	}
}

// insufficientSourcesResult is the defined output for collections below
// MinSources: guidance text, zero gaps, low confidence.
func insufficientSourcesResult(sourceCount int) core.GapAnalysisResult {
	return core.GapAnalysisResult{
		ID:              uuid.NewString(),
		IdentifiedGaps:  []core.GapOpportunity{},
		ConfidenceLevel: core.ConfidenceLow,
		OverallAssessment: "At least 3 sources are needed for a meaningful gap analysis. " +
			"Add more sources to your collection and run the analysis again.",
		Recommendations: []string{
			"Collect at least 3 sources before running gap analysis",
			"Aim for sources spanning different methodologies and populations",
		},
		SourcesCovered: sourceCount,
		GeneratedAt:    time.Now().UTC(),
	}
}

// fallbackResult is the generic result produced when the pipeline fails
// unexpectedly: one methodological-diversification gap and a best-effort
// assessment.
func fallbackResult(sources []core.Source) core.GapAnalysisResult {
	ids := make([]string, len(sources))
	for i, source := range sources {
		ids[i] = source.ID
	}
	gap := core.GapOpportunity{
		ID:                uuid.NewString(),
		GapType:           core.GapMethodology,
		Title:             "Methodological diversification",
		Description:       "The collection would benefit from a wider range of research methods.",
		WhyMatters:        "Methodological diversity strengthens the evidence base and reduces shared-method bias.",
		CurrentLimitation: "The automated analysis could not fully characterize the collection.",
		ProposedApproach:  "Review the methodologies represented and add studies using complementary designs.",
		NoveltyScore:      60,
		FeasibilityScore:  60,
		ContributionScore: 60,
		OverallScore:      60,
		EstimatedScope:    core.ScopeMedium,
		EstimatedTime:     "3-6 months",
		RelatedSourceIDs:  ids,
	}
	return core.GapAnalysisResult{
		ID:                uuid.NewString(),
		IdentifiedGaps:    []core.GapOpportunity{gap},
		ConfidenceLevel:   core.ConfidenceLow,
		OverallAssessment: "The analysis completed with reduced detail. Consider re-running once more sources are available.",
		Recommendations:   []string{"Re-run the analysis; if the problem persists, review source metadata for completeness"},
		SourcesCovered:    len(sources),
		GeneratedAt:       time.Now().UTC(),
	}
}

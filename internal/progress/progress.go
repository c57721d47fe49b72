// Package progress scores a free-text research question against five
// maturity factors, yielding a 0-100 completeness score and a discrete
// stage label. Pure functions throughout; the cache package wraps them.
package progress

import (
	"strings"

	"scholarly/internal/core"
)

// Additive factor weights. Base presence plus the five factors.
const (
	basePoints        = 10
	populationPoints  = 20
	methodPoints      = 25
	outcomePoints     = 20
	specificityPoints = 15
	refinementPoints  = 10
)

// Stage thresholds on the 0-100 progress score.
const (
	initialMax  = 25
	emergingMax = 50
	focusedMax  = 75
)

// specificWordCount is the word count at which a question counts as specific.
const specificWordCount = 8

var populationKeywords = []string{
	"students", "children", "adolescents", "teenagers", "adults", "elderly",
	"seniors", "women", "men", "patients", "employees", "teachers", "nurses",
	"athletes", "parents", "infants",
}

var methodKeywords = []string{
	"does", "affect", "effect", "impact", "influence", "relationship",
	"relate", "compare", "comparison", "correlat", "predict", "cause",
	"difference between",
}

var outcomeKeywords = []string{
	"measure", "score", "rate of", "rates of", "level of", "levels of",
	"frequency", "percentage", "improve", "increase", "decrease", "reduce",
	"outcome",
}

var factorRecommendations = map[string]string{
	"population":  "Specify the population you want to study (e.g. college students, older adults)",
	"method":      "Indicate the relationship or effect you want to examine",
	"outcome":     "Name a measurable outcome (e.g. test scores, rates, levels)",
	"specificity": "Add detail to narrow the question; aim for a full, specific sentence",
	"refinements": "Refine the question as you learn from your sources",
}

// AnalyzeQuestionProgress scores a research question. conversationCount and
// documentCount are engagement signals from the surrounding project; history
// holds prior wordings of the question.
func AnalyzeQuestionProgress(question string, conversationCount, documentCount int, history []string) core.QuestionProgress {
	trimmed := strings.TrimSpace(question)
	lower := strings.ToLower(trimmed)

	factors := core.ProgressFactors{
		HasSpecificPopulation: containsAny(lower, populationKeywords),
		HasResearchMethod:     containsAny(lower, methodKeywords),
		HasMeasurableOutcome:  containsAny(lower, outcomeKeywords),
		IsSpecific:            len(strings.Fields(trimmed)) >= specificWordCount,
		HasRefinements:        hasRefinementEvidence(trimmed, conversationCount, history),
	}

	score := 0
	if trimmed != "" {
		score += basePoints
	}
	if factors.HasSpecificPopulation {
		score += populationPoints
	}
	if factors.HasResearchMethod {
		score += methodPoints
	}
	if factors.HasMeasurableOutcome {
		score += outcomePoints
	}
	if factors.IsSpecific {
		score += specificityPoints
	}
	if factors.HasRefinements {
		score += refinementPoints
	}

	return core.QuestionProgress{
		Stage:           StageForScore(score),
		Progress:        score,
		Factors:         factors,
		Recommendations: recommendationsFor(factors),
	}
}

// StageForScore maps a progress score to its maturity stage.
func StageForScore(score int) core.Stage {
	switch {
	case score <= initialMax:
		return core.StageInitial
	case score <= emergingMax:
		return core.StageEmerging
	case score <= focusedMax:
		return core.StageFocused
	default:
		return core.StageResearchReady
	}
}

// hasRefinementEvidence reports whether the question shows signs of prior
// refinement: an earlier differing wording, or sustained conversation.
func hasRefinementEvidence(question string, conversationCount int, history []string) bool {
	for _, prior := range history {
		if strings.TrimSpace(prior) != "" && !strings.EqualFold(strings.TrimSpace(prior), question) {
			return true
		}
	}
	return conversationCount >= 3
}

// recommendationsFor appends the literal recommendation for every unmet
// factor. Purely advisory; not scored.
func recommendationsFor(factors core.ProgressFactors) []string {
	var recommendations []string
	if !factors.HasSpecificPopulation {
		recommendations = append(recommendations, factorRecommendations["population"])
	}
	if !factors.HasResearchMethod {
		recommendations = append(recommendations, factorRecommendations["method"])
	}
	if !factors.HasMeasurableOutcome {
		recommendations = append(recommendations, factorRecommendations["outcome"])
	}
	if !factors.IsSpecific {
		recommendations = append(recommendations, factorRecommendations["specificity"])
	}
	if !factors.HasRefinements {
		recommendations = append(recommendations, factorRecommendations["refinements"])
	}
	return recommendations
}

// containsAny reports whether text contains any of the given keywords.
func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// ProjectProgress is the project-level aggregate over all of a project's
// research questions.
type ProjectProgress struct {
	Progress      int        `json:"progress"`       // Average question progress, 0-100
	Stage         core.Stage `json:"stage"`          // Stage of the average
	QuestionCount int        `json:"question_count"` // Number of questions aggregated
	DocumentCount int        `json:"document_count"` // Documents attached to the project
}

// AnalyzeProjectProgress aggregates question progress across a project.
func AnalyzeProjectProgress(questions []string, conversationCount, documentCount int) ProjectProgress {
	if len(questions) == 0 {
		return ProjectProgress{Stage: core.StageInitial, DocumentCount: documentCount}
	}

	total := 0
	for _, question := range questions {
		total += AnalyzeQuestionProgress(question, conversationCount, documentCount, nil).Progress
	}
	avg := total / len(questions)

	return ProjectProgress{
		Progress:      avg,
		Stage:         StageForScore(avg),
		QuestionCount: len(questions),
		DocumentCount: documentCount,
	}
}

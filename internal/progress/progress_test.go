package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarly/internal/core"
)

func TestAnalyzeQuestionProgressWorkedExample(t *testing.T) {
	question := "How does sleep deprivation affect academic performance in college students?"

	result := AnalyzeQuestionProgress(question, 0, 0, nil)

	assert.True(t, result.Factors.HasSpecificPopulation)
	assert.True(t, result.Factors.HasResearchMethod)
	assert.False(t, result.Factors.HasMeasurableOutcome)
	assert.True(t, result.Factors.IsSpecific)
	assert.False(t, result.Factors.HasRefinements)
	assert.Equal(t, 70, result.Progress)
	assert.Equal(t, core.StageFocused, result.Stage)
}

func TestAnalyzeQuestionProgressEmptyQuestion(t *testing.T) {
	result := AnalyzeQuestionProgress("", 0, 0, nil)

	assert.Equal(t, 0, result.Progress)
	assert.Equal(t, core.StageInitial, result.Stage)
	assert.Len(t, result.Recommendations, 5, "every factor unmet yields its recommendation")
}

func TestAnalyzeQuestionProgressFullScore(t *testing.T) {
	question := "How does sleep deprivation affect test scores and dropout rates of college students over a semester?"

	result := AnalyzeQuestionProgress(question, 3, 5, []string{"How does sleep affect students?"})

	assert.True(t, result.Factors.HasMeasurableOutcome)
	assert.True(t, result.Factors.HasRefinements)
	assert.Equal(t, 100, result.Progress)
	assert.Equal(t, core.StageResearchReady, result.Stage)
	assert.Empty(t, result.Recommendations)
}

func TestStageForScoreBoundaries(t *testing.T) {
	assert.Equal(t, core.StageInitial, StageForScore(0))
	assert.Equal(t, core.StageInitial, StageForScore(25))
	assert.Equal(t, core.StageEmerging, StageForScore(26))
	assert.Equal(t, core.StageEmerging, StageForScore(50))
	assert.Equal(t, core.StageFocused, StageForScore(51))
	assert.Equal(t, core.StageFocused, StageForScore(75))
	assert.Equal(t, core.StageResearchReady, StageForScore(76))
	assert.Equal(t, core.StageResearchReady, StageForScore(100))
}

func TestHasRefinementEvidence(t *testing.T) {
	question := "How does sleep affect memory?"

	assert.False(t, hasRefinementEvidence(question, 0, nil))
	assert.False(t, hasRefinementEvidence(question, 2, nil))
	assert.True(t, hasRefinementEvidence(question, 3, nil), "sustained conversation counts as refinement")
	assert.True(t, hasRefinementEvidence(question, 0, []string{"Does sleep matter?"}))
	assert.False(t, hasRefinementEvidence(question, 0, []string{"how does sleep affect memory?"}),
		"a case-only difference is not a refinement")
	assert.False(t, hasRefinementEvidence(question, 0, []string{"  ", ""}))
}

func TestRecommendationsMatchUnmetFactors(t *testing.T) {
	result := AnalyzeQuestionProgress("Does meditation reduce stress in nurses during night shifts?", 0, 0, nil)

	assert.True(t, result.Factors.HasSpecificPopulation)
	assert.True(t, result.Factors.HasResearchMethod)
	assert.True(t, result.Factors.HasMeasurableOutcome)
	assert.True(t, result.Factors.IsSpecific)
	assert.False(t, result.Factors.HasRefinements)

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Refine the question as you learn from your sources", result.Recommendations[0])
}

func TestAnalyzeProjectProgressAverages(t *testing.T) {
	questions := []string{
		"How does sleep deprivation affect academic performance in college students?", // 70
		"sleep", // 10
	}

	result := AnalyzeProjectProgress(questions, 0, 4)

	assert.Equal(t, 40, result.Progress)
	assert.Equal(t, core.StageEmerging, result.Stage)
	assert.Equal(t, 2, result.QuestionCount)
	assert.Equal(t, 4, result.DocumentCount)
}

func TestAnalyzeProjectProgressNoQuestions(t *testing.T) {
	result := AnalyzeProjectProgress(nil, 5, 2)

	assert.Equal(t, 0, result.Progress)
	assert.Equal(t, core.StageInitial, result.Stage)
	assert.Equal(t, 2, result.DocumentCount)
}

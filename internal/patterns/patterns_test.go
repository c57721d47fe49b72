package patterns

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarly/internal/core"
)

func sourceWith(id, title, abstract string, year int, findings ...string) core.Source {
	return core.Source{
		ID:          id,
		Title:       title,
		Abstract:    abstract,
		Year:        year,
		Authors:     []string{"Doe, J."},
		KeyFindings: findings,
	}
}

func TestExtractThemesMatchesKeywordTable(t *testing.T) {
	sources := []core.Source{
		sourceWith("s1", "Sleep quality and academic performance", "A survey of sleep habits", 2022),
		sourceWith("s2", "Anxiety in the workplace", "Employee mental health outcomes", 2021),
	}

	themes := ExtractThemes(sources)

	assert.Contains(t, themes, "Sleep & Rest")
	assert.Contains(t, themes, "Mental Health & Wellbeing")
	assert.Contains(t, themes, "Work & Organizations")
}

func TestExtractThemesDeterministic(t *testing.T) {
	sources := []core.Source{
		sourceWith("s1", "Digital technology and learning", "Education research", 2020),
	}

	first := ExtractThemes(sources)
	for i := 0; i < 10; i++ {
		require.True(t, reflect.DeepEqual(first, ExtractThemes(sources)), "extraction must be byte-identical for identical input")
	}
}

func TestExtractThemesEmptyYieldsGeneralBucket(t *testing.T) {
	sources := []core.Source{
		sourceWith("s1", "Zzz qqq", "xyz", 2020),
	}

	themes := ExtractThemes(sources)

	require.Equal(t, []string{GeneralBucket}, themes)
}

func TestAnalyzePopulationCoverageThresholds(t *testing.T) {
	sources := []core.Source{
		sourceWith("s1", "Study of college students", "undergraduate students sample", 2020),
		sourceWith("s2", "More students research", "students again", 2021),
		sourceWith("s3", "A third students paper", "students once more", 2022),
		sourceWith("s4", "Older adults and memory", "elderly participants", 2022),
		sourceWith("s5", "Seniors and technology", "older adults online", 2023),
		sourceWith("s6", "Children and screens", "pediatric sample", 2023),
	}

	coverage := AnalyzePopulationCoverage(sources)

	byDemographic := make(map[string]core.PopulationCoverage)
	for _, pop := range coverage {
		byDemographic[pop.Demographic] = pop
	}

	require.Contains(t, byDemographic, "college students")
	assert.Equal(t, core.CoverageExtensive, byDemographic["college students"].Coverage)
	require.Contains(t, byDemographic, "older adults")
	assert.Equal(t, core.CoverageModerate, byDemographic["older adults"].Coverage)
	require.Contains(t, byDemographic, "children")
	assert.Equal(t, core.CoverageLimited, byDemographic["children"].Coverage)
}

func TestAnalyzeMethodologiesRecordsSourceIDs(t *testing.T) {
	sources := []core.Source{
		sourceWith("s1", "A randomized controlled trial of sleep hygiene", "", 2020),
		sourceWith("s2", "A survey of attitudes", "questionnaire study", 2021),
		sourceWith("s3", "Another survey", "self-report measures", 2021),
	}

	methods := AnalyzeMethodologies(sources)

	byApproach := make(map[string]core.MethodologyPattern)
	for _, method := range methods {
		byApproach[method.Approach] = method
	}

	require.Contains(t, byApproach, "randomized controlled trial")
	assert.Equal(t, []string{"s1"}, byApproach["randomized controlled trial"].SourceIDs)
	require.Contains(t, byApproach, "survey")
	assert.Equal(t, 2, byApproach["survey"].Frequency)
	assert.Equal(t, []string{"s2", "s3"}, byApproach["survey"].SourceIDs)
}

func TestAnalyzeMethodologiesEmptyYieldsGeneralBucket(t *testing.T) {
	sources := []core.Source{
		sourceWith("s1", "Theory paper", "conceptual discussion", 2020),
	}

	methods := AnalyzeMethodologies(sources)

	require.Len(t, methods, 1)
	assert.Equal(t, GeneralBucket, methods[0].Approach)
	assert.Equal(t, []string{"s1"}, methods[0].SourceIDs)
}

func TestAnalyzeTemporalCoverage(t *testing.T) {
	sources := []core.Source{
		sourceWith("s1", "Old study", "", 2010),
		sourceWith("s2", "Recent study", "", 2023),
		sourceWith("s3", "Another recent study", "", 2024),
	}

	pattern := AnalyzeTemporalCoverage(sources, 2025)

	assert.Equal(t, "2010-2024", pattern.YearRange)
	require.NotEmpty(t, pattern.Gaps)
	assert.Equal(t, "2011-2022", pattern.Gaps[0])
}

func TestAnalyzeTemporalCoverageNoYears(t *testing.T) {
	pattern := AnalyzeTemporalCoverage([]core.Source{sourceWith("s1", "t", "", 0)}, 2025)

	assert.Equal(t, "unknown", pattern.YearRange)
}

func TestAnalyzeContextsDetectsSettings(t *testing.T) {
	sources := []core.Source{
		sourceWith("s1", "Clinical trial in a hospital", "", 2020),
		sourceWith("s2", "Online survey", "web-based study", 2021),
	}

	contexts := AnalyzeContexts(sources)

	settings := make([]string, len(contexts))
	for i, ctx := range contexts {
		settings[i] = ctx.Setting
	}
	assert.Contains(t, settings, "clinical")
	assert.Contains(t, settings, "online")
}

func TestAnalyzeVariablesPairsCoOccurringTerms(t *testing.T) {
	sources := []core.Source{
		sourceWith("s1", "Sleep and stress in nurses", "sleep loss raises stress", 2020),
		sourceWith("s2", "Sleep, stress, and burnout", "", 2021),
	}

	variables := AnalyzeVariables(sources)

	require.NotEmpty(t, variables)
	assert.Equal(t, []string{"sleep", "stress"}, variables[0].Variables)
	assert.Equal(t, 2, variables[0].SourceCount)
}

func TestClassifyMethodologyFirstMatchWins(t *testing.T) {
	survey := sourceWith("s1", "A survey of attitudes", "", 2020)
	experimental := sourceWith("s2", "A laboratory experiment", "controlled experiment", 2020)
	unclassified := sourceWith("s3", "Theoretical essay", "", 2020)

	assert.Equal(t, "survey", ClassifyMethodology(survey))
	assert.Equal(t, "experimental study", ClassifyMethodology(experimental))
	assert.Equal(t, MethodOther, ClassifyMethodology(unclassified))
}

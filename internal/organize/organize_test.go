package organize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarly/internal/core"
	"scholarly/internal/llm"
	"scholarly/internal/similarity"
)

type stubCompleter struct {
	response string
	err      error
	calls    int
}

func (s *stubCompleter) GenerateText(ctx context.Context, prompt string, options llm.TextGenerationOptions) (string, error) {
	s.calls++
	return s.response, s.err
}

func testSources() []core.Source {
	return []core.Source{
		{ID: "s1", Title: "A survey of sleep habits in college students", Year: 2024},
		{ID: "s2", Title: "Survey data on stress and sleep quality", Year: 2021},
		{ID: "s3", Title: "An experimental study of sleep deprivation", Year: 2017},
		{ID: "s4", Title: "Perspectives on rest", Year: 2010},
	}
}

func TestOrganizeSourcesAIPath(t *testing.T) {
	completer := &stubCompleter{response: `{"clusters":[
		{"name":"Sleep Quality","description":"Sleep-focused work","source_indices":[0,1,2,3],"keywords":["sleep"],"relevance":85}
	]}`}
	organizer := NewOrganizer(completer, similarity.NewEngine(nil, 16))

	organized := organizer.OrganizeSources(context.Background(), testSources(), "How does sleep affect students?")

	assert.Equal(t, "ai", organized.Metadata.ClusteringMethod)
	require.Len(t, organized.Themes, 1)
	assert.Equal(t, "Sleep Quality", organized.Themes[0].Name)
	assert.Len(t, organized.Themes[0].SourceIDs, 4)
	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, 4, organized.Metadata.SourceCount)
}

func TestOrganizeSourcesFallsBackWhenAIFails(t *testing.T) {
	completer := &stubCompleter{err: errors.New("model unavailable")}
	organizer := NewOrganizer(completer, similarity.NewEngine(nil, 16))

	organized := organizer.OrganizeSources(context.Background(), testSources(), "")

	assert.Equal(t, "similarity_threshold", organized.Metadata.ClusteringMethod)
	require.NotEmpty(t, organized.Themes)

	clustered := 0
	for _, theme := range organized.Themes {
		clustered += len(theme.SourceIDs)
	}
	assert.Equal(t, 4, clustered, "threshold clustering assigns every source exactly once")
}

func TestOrganizeSourcesNilCompleterUsesThreshold(t *testing.T) {
	organizer := NewOrganizer(nil, similarity.NewEngine(nil, 16))

	organized := organizer.OrganizeSources(context.Background(), testSources(), "")

	assert.Equal(t, "similarity_threshold", organized.Metadata.ClusteringMethod)
}

func TestClusterThemesSingleSourceCatchAll(t *testing.T) {
	organizer := NewOrganizer(nil, similarity.NewEngine(nil, 16))
	sources := []core.Source{{ID: "only", Title: "A lone study"}}

	organized := organizer.OrganizeSources(context.Background(), sources, "")

	require.Len(t, organized.Themes, 1)
	assert.Equal(t, "All Sources", organized.Themes[0].Name)
	assert.Equal(t, []string{"only"}, organized.Themes[0].SourceIDs)
}

func TestParseClusterResponseStripsCodeFences(t *testing.T) {
	sources := testSources()
	response := "```json\n{\"clusters\":[{\"name\":\"Theme\",\"source_indices\":[0],\"relevance\":50}]}\n```"

	clusters, err := parseClusterResponse(response, sources)

	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Equal(t, []string{"s1"}, clusters[0].SourceIDs)
}

func TestParseClusterResponseDropsOutOfRangeIndices(t *testing.T) {
	sources := testSources()
	response := `{"clusters":[
		{"name":"Valid","source_indices":[1,99,-1],"relevance":120},
		{"name":"Empty","source_indices":[42],"relevance":10}
	]}`

	clusters, err := parseClusterResponse(response, sources)

	require.NoError(t, err)
	require.Len(t, clusters, 1, "clusters left with no valid members are dropped")
	assert.Equal(t, []string{"s2"}, clusters[0].SourceIDs)
	assert.Equal(t, 100, clusters[0].Relevance, "relevance is clamped to 0-100")
}

func TestParseClusterResponseRejectsGarbage(t *testing.T) {
	_, err := parseClusterResponse("not json at all", testSources())

	assert.Error(t, err)
}

func TestGroupByMethodologyPartitionsAllSources(t *testing.T) {
	groups := GroupByMethodology(testSources())

	total := 0
	methodologies := make([]string, len(groups))
	for i, group := range groups {
		total += len(group.SourceIDs)
		methodologies[i] = group.Methodology
	}

	assert.Equal(t, 4, total, "every source lands in exactly one group")
	assert.Equal(t, []string{"survey", "experimental study", "other"}, methodologies)

	byMethod := make(map[string]core.MethodologyGroup)
	for _, group := range groups {
		byMethod[group.Methodology] = group
	}
	assert.Equal(t, []string{"s1", "s2"}, byMethod["survey"].SourceIDs)
	assert.Equal(t, []string{"s3"}, byMethod["experimental study"].SourceIDs)
	assert.Equal(t, []string{"s4"}, byMethod["other"].SourceIDs)
	assert.NotEmpty(t, byMethod["survey"].Description)
	assert.NotEmpty(t, byMethod["survey"].Strengths)
}

func TestGroupByTimelineBucketsAndRelevance(t *testing.T) {
	groups := GroupByTimeline(testSources(), 2025)

	require.Len(t, groups, 4)

	assert.Equal(t, "Last 2 years", groups[0].Period)
	assert.Equal(t, 2023, groups[0].StartYear)
	assert.Equal(t, 2025, groups[0].EndYear)
	assert.Equal(t, "high", groups[0].RelevanceToPresent)
	assert.Equal(t, []string{"s1"}, groups[0].SourceIDs)

	assert.Equal(t, "3-5 years ago", groups[1].Period)
	assert.Equal(t, "high", groups[1].RelevanceToPresent)
	assert.Equal(t, []string{"s2"}, groups[1].SourceIDs)

	assert.Equal(t, "6-10 years ago", groups[2].Period)
	assert.Equal(t, "moderate", groups[2].RelevanceToPresent)

	assert.Equal(t, "More than 10 years ago", groups[3].Period)
	assert.Equal(t, "low", groups[3].RelevanceToPresent)
	assert.Equal(t, 2014, groups[3].EndYear)
}

func TestGroupByTimelineSkipsEmptyBucketsAndUnknownYears(t *testing.T) {
	sources := []core.Source{
		{ID: "s1", Title: "Recent", Year: 2025},
		{ID: "s2", Title: "Undated", Year: 0},
	}

	groups := GroupByTimeline(sources, 2025)

	require.Len(t, groups, 1)
	assert.Equal(t, "Last 2 years", groups[0].Period)
	assert.Equal(t, []string{"s1"}, groups[0].SourceIDs)
}

func TestOrganizationConfidenceGrades(t *testing.T) {
	assert.Equal(t, core.ConfidenceHigh, organizationConfidence(10, clusteringMethodAI))
	assert.Equal(t, core.ConfidenceModerate, organizationConfidence(10, clusteringMethodThreshold))
	assert.Equal(t, core.ConfidenceModerate, organizationConfidence(5, clusteringMethodAI))
	assert.Equal(t, core.ConfidenceLow, organizationConfidence(4, clusteringMethodAI))
}

func TestOrganizationSuggestions(t *testing.T) {
	sources := testSources()
	singleTheme := []core.ThemeCluster{{Name: "Only"}}

	suggestions := organizationSuggestions(sources, singleTheme)

	assert.Contains(t, suggestions, "Add more sources to strengthen theme clusters")
	assert.Contains(t, suggestions, "Sources cover a single theme; consider broadening the search")
}

func TestOrganizationSuggestionsLowCredibility(t *testing.T) {
	sources := []core.Source{
		{ID: "s1", Credibility: core.Credibility{Level: core.CredibilityLow}},
		{ID: "s2", Credibility: core.Credibility{Level: core.CredibilityLow}},
		{ID: "s3", Credibility: core.Credibility{Level: core.CredibilityHigh}},
	}

	suggestions := organizationSuggestions(sources, nil)

	assert.Contains(t, suggestions, "Over half of the sources are low credibility; seek peer-reviewed work")
}

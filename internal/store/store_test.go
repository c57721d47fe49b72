package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarly/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPersistAndGetAnalysis(t *testing.T) {
	store := newTestStore(t)
	result := core.GapAnalysisResult{
		ID:              "run-1",
		ConfidenceLevel: core.ConfidenceModerate,
		IdentifiedGaps: []core.GapOpportunity{
			{ID: "gap-1", GapType: core.GapPopulation, Title: "Limited research on children", OverallScore: 72},
		},
		SourcesCovered: 5,
	}

	require.NoError(t, store.PersistAnalysis("proj-1", result))

	loaded, err := store.GetAnalysis("proj-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "run-1", loaded.ID)
	assert.Equal(t, core.ConfidenceModerate, loaded.ConfidenceLevel)
	require.Len(t, loaded.IdentifiedGaps, 1)
	assert.Equal(t, 72, loaded.IdentifiedGaps[0].OverallScore)
	assert.Equal(t, 5, loaded.SourcesCovered)
}

func TestGetAnalysisMissingProject(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.GetAnalysis("nope")

	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestPersistAnalysisReplacesPrevious(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.PersistAnalysis("proj-1", core.GapAnalysisResult{ID: "old"}))
	require.NoError(t, store.PersistAnalysis("proj-1", core.GapAnalysisResult{ID: "new"}))

	loaded, err := store.GetAnalysis("proj-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "new", loaded.ID)

	stats, err := store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.AnalysisCount)
}

func TestPersistAndGetOrganization(t *testing.T) {
	store := newTestStore(t)
	organized := core.OrganizedSources{
		Themes: []core.ThemeCluster{{ID: "c1", Name: "Sleep Quality", SourceIDs: []string{"s1", "s2"}}},
		Metadata: core.OrganizationMetadata{
			SourceCount:      2,
			ClusteringMethod: "similarity_threshold",
			Confidence:       core.ConfidenceLow,
		},
	}

	require.NoError(t, store.PersistOrganization("proj-1", organized))

	loaded, err := store.GetOrganization("proj-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Themes, 1)
	assert.Equal(t, "Sleep Quality", loaded.Themes[0].Name)
	assert.Equal(t, "similarity_threshold", loaded.Metadata.ClusteringMethod)
}

func TestGetOrganizationMissingProject(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.GetOrganization("nope")

	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestGetStats(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PersistAnalysis("proj-1", core.GapAnalysisResult{ID: "a"}))
	require.NoError(t, store.PersistAnalysis("proj-2", core.GapAnalysisResult{ID: "b"}))
	require.NoError(t, store.PersistOrganization("proj-1", core.OrganizedSources{}))

	stats, err := store.GetStats()

	require.NoError(t, err)
	assert.Equal(t, 2, stats.AnalysisCount)
	assert.Equal(t, 1, stats.OrganizationCount)
	assert.Positive(t, stats.Size)
}

func TestClearRemovesEverything(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PersistAnalysis("proj-1", core.GapAnalysisResult{ID: "a"}))
	require.NoError(t, store.PersistOrganization("proj-1", core.OrganizedSources{}))

	require.NoError(t, store.Clear())

	stats, err := store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.AnalysisCount)
	assert.Equal(t, 0, stats.OrganizationCount)

	loaded, err := store.GetAnalysis("proj-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

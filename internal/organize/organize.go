// Package organize turns a source collection into theme clusters, methodology
// groups, and timeline buckets. Theme clustering prefers AI-proposed labels
// and degrades to similarity-threshold clustering when the completion service
// is unavailable.
package organize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"scholarly/internal/core"
	"scholarly/internal/llm"
	"scholarly/internal/logger"
	"scholarly/internal/patterns"
	"scholarly/internal/similarity"
)

const (
	// DefaultSimilarityThreshold is the cosine similarity above which the
	// fallback clusterer absorbs a source into a cluster.
	DefaultSimilarityThreshold = 0.3

	// clusteringMethodAI and clusteringMethodThreshold record which path
	// produced the theme clusters.
	clusteringMethodAI        = "ai"
	clusteringMethodThreshold = "similarity_threshold"
)

// Completer is the external completion service contract.
type Completer interface {
	GenerateText(ctx context.Context, prompt string, options llm.TextGenerationOptions) (string, error)
}

// Organizer produces OrganizedSources bundles.
type Organizer struct {
	completer           Completer
	engine              *similarity.Engine
	similarityThreshold float64
}

// NewOrganizer creates an organizer. A nil completer skips the AI clustering
// path entirely and always uses threshold clustering.
func NewOrganizer(completer Completer, engine *similarity.Engine) *Organizer {
	return &Organizer{
		completer:           completer,
		engine:              engine,
		similarityThreshold: DefaultSimilarityThreshold,
	}
}

// WithSimilarityThreshold overrides the fallback clustering threshold.
func (o *Organizer) WithSimilarityThreshold(threshold float64) *Organizer {
	o.similarityThreshold = threshold
	return o
}

// OrganizeSources derives the full organization bundle for a collection.
// Every call is a fresh derivation; callers wanting reorganization pass the
// updated collection and discard the previous bundle.
func (o *Organizer) OrganizeSources(ctx context.Context, sources []core.Source, question string) core.OrganizedSources {
	vectors := o.embedAll(ctx, sources)
	matrix := matrixFor(sources, vectors)

	themes, method := o.clusterThemes(ctx, sources, matrix, question)

	organized := core.OrganizedSources{
		Themes:        themes,
		Methodologies: GroupByMethodology(sources),
		Timeline:      GroupByTimeline(sources, time.Now().Year()),
		Metadata: core.OrganizationMetadata{
			SourceCount:      len(sources),
			ClusteringMethod: method,
			Confidence:       organizationConfidence(len(sources), method),
			Suggestions:      organizationSuggestions(sources, themes),
		},
		GeneratedAt: time.Now().UTC(),
	}
	return organized
}

// embedAll embeds every source, or returns nil when no engine is configured.
func (o *Organizer) embedAll(ctx context.Context, sources []core.Source) map[string][]float64 {
	if o.engine == nil {
		return nil
	}
	return o.engine.EmbedSources(ctx, sources)
}

// matrixFor builds the pairwise similarity matrix in source order.
func matrixFor(sources []core.Source, vectors map[string][]float64) [][]float64 {
	ordered := make([][]float64, len(sources))
	for i, source := range sources {
		ordered[i] = vectors[source.ID]
	}
	return similarity.Matrix(ordered)
}

// clusterThemes returns theme clusters and the clustering method used. With
// fewer than two sources clustering is skipped in favor of one catch-all
// theme.
func (o *Organizer) clusterThemes(ctx context.Context, sources []core.Source, matrix [][]float64, question string) ([]core.ThemeCluster, string) {
	if len(sources) < 2 {
		return []core.ThemeCluster{catchAllTheme(sources)}, clusteringMethodThreshold
	}

	if o.completer != nil {
		clusters, err := o.clusterWithAI(ctx, sources, matrix, question)
		if err == nil && len(clusters) > 0 {
			return clusters, clusteringMethodAI
		}
		if err != nil {
			logger.Warn("AI theme clustering failed, using similarity threshold fallback", "error", err.Error())
		}
	}

	return o.clusterByThreshold(sources, matrix), clusteringMethodThreshold
}

// aiCluster is the wire shape of one AI-proposed cluster.
type aiCluster struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	SourceIndices []int    `json:"source_indices"`
	Keywords      []string `json:"keywords"`
	Relevance     int      `json:"relevance"`
}

// clusterSchema constrains the completion model to structured cluster output.
func clusterSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"clusters": {
				Type:        genai.TypeArray,
				Description: "Theme clusters grouping the numbered sources",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        {Type: genai.TypeString, Description: "Short theme name"},
						"description": {Type: genai.TypeString, Description: "One-line description of the theme"},
						"source_indices": {
							Type:        genai.TypeArray,
							Description: "Zero-based indices of the sources in this cluster",
							Items:       &genai.Schema{Type: genai.TypeInteger},
						},
						"keywords": {
							Type:        genai.TypeArray,
							Description: "Key terms for this theme",
							Items:       &genai.Schema{Type: genai.TypeString},
						},
						"relevance": {Type: genai.TypeInteger, Description: "Relevance to the research question, 0-100"},
					},
					Required: []string{"name", "source_indices"},
				},
			},
		},
		Required: []string{"clusters"},
	}
}

// clusterWithAI asks the completion service to propose labeled clusters
// seeded with the similarity matrix and source titles.
func (o *Organizer) clusterWithAI(ctx context.Context, sources []core.Source, matrix [][]float64, question string) ([]core.ThemeCluster, error) {
	prompt := buildClusterPrompt(sources, matrix, question)

	response, err := o.completer.GenerateText(ctx, prompt, llm.TextGenerationOptions{
		Temperature:    0.3,
		MaxTokens:      2048,
		ResponseSchema: clusterSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("cluster generation failed: %w", err)
	}

	return parseClusterResponse(response, sources)
}

// buildClusterPrompt summarizes the collection for the completion model.
func buildClusterPrompt(sources []core.Source, matrix [][]float64, question string) string {
	var sb strings.Builder

	sb.WriteString("You are organizing bibliographic sources for a literature review.\n")
	if question != "" {
		sb.WriteString("Research question: ")
		sb.WriteString(question)
		sb.WriteString("\n")
	}
	sb.WriteString("\nSOURCES:\n")
	for i, source := range sources {
		sb.WriteString(fmt.Sprintf("%d. %s (%d)\n", i, source.Title, source.Year))
	}

	sb.WriteString("\nPAIRWISE SIMILARITY (cosine, row-major):\n")
	for i, row := range matrix {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%.2f", v)
		}
		sb.WriteString(fmt.Sprintf("%d: %s\n", i, strings.Join(cells, " ")))
	}

	sb.WriteString("\nTASK:\n")
	sb.WriteString("Group the sources into 2-5 topical theme clusters. A source may appear in more than one cluster when it genuinely spans themes.\n")
	sb.WriteString("For each cluster provide: name, one-line description, zero-based source_indices, keywords, and relevance (0-100) to the research question.\n")

	return sb.String()
}

// parseClusterResponse decodes the structured cluster JSON, dropping indices
// outside the source range.
func parseClusterResponse(response string, sources []core.Source) ([]core.ThemeCluster, error) {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var parsed struct {
		Clusters []aiCluster `json:"clusters"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse cluster response: %w", err)
	}

	var clusters []core.ThemeCluster
	for _, c := range parsed.Clusters {
		var ids []string
		for _, idx := range c.SourceIndices {
			if idx >= 0 && idx < len(sources) {
				ids = append(ids, sources[idx].ID)
			}
		}
		if len(ids) == 0 {
			continue
		}
		relevance := c.Relevance
		if relevance < 0 {
			relevance = 0
		}
		if relevance > 100 {
			relevance = 100
		}
		clusters = append(clusters, core.ThemeCluster{
			ID:          uuid.NewString(),
			Name:        c.Name,
			Description: c.Description,
			Keywords:    c.Keywords,
			SourceIDs:   ids,
			Relevance:   relevance,
		})
	}
	return clusters, nil
}

// clusterByThreshold is the deterministic fallback clusterer: take the first
// unclustered source, absorb every other unclustered source above the
// similarity threshold, and repeat until all sources are assigned.
func (o *Organizer) clusterByThreshold(sources []core.Source, matrix [][]float64) []core.ThemeCluster {
	assigned := make([]bool, len(sources))
	var clusters []core.ThemeCluster

	for i := range sources {
		if assigned[i] {
			continue
		}
		members := []int{i}
		assigned[i] = true
		for j := range sources {
			if assigned[j] {
				continue
			}
			if matrix[i][j] >= o.similarityThreshold {
				members = append(members, j)
				assigned[j] = true
			}
		}

		ids := make([]string, len(members))
		for k, idx := range members {
			ids[k] = sources[idx].ID
		}
		clusters = append(clusters, core.ThemeCluster{
			ID:          uuid.NewString(),
			Name:        fmt.Sprintf("Theme %d: %s", len(clusters)+1, dominantTheme(membersOf(sources, members))),
			Description: fmt.Sprintf("Sources grouped by textual similarity around %q", sources[i].Title),
			Keywords:    patterns.ExtractThemes(membersOf(sources, members)),
			SourceIDs:   ids,
			Relevance:   50,
		})
	}
	return clusters
}

// membersOf selects the sources at the given indices.
func membersOf(sources []core.Source, indices []int) []core.Source {
	selected := make([]core.Source, len(indices))
	for i, idx := range indices {
		selected[i] = sources[idx]
	}
	return selected
}

// dominantTheme names a cluster after its first extracted theme.
func dominantTheme(sources []core.Source) string {
	themes := patterns.ExtractThemes(sources)
	return themes[0]
}

// catchAllTheme wraps a sub-minimum collection in a single theme.
func catchAllTheme(sources []core.Source) core.ThemeCluster {
	ids := make([]string, len(sources))
	for i, source := range sources {
		ids[i] = source.ID
	}
	return core.ThemeCluster{
		ID:          uuid.NewString(),
		Name:        "All Sources",
		Description: "Too few sources to cluster meaningfully",
		Keywords:    patterns.ExtractThemes(sources),
		SourceIDs:   ids,
		Relevance:   50,
	}
}

// organizationConfidence grades the bundle by collection size and whether the
// AI labeling path succeeded.
func organizationConfidence(sourceCount int, method string) core.ConfidenceLevel {
	switch {
	case sourceCount >= 10 && method == clusteringMethodAI:
		return core.ConfidenceHigh
	case sourceCount >= 5:
		return core.ConfidenceModerate
	default:
		return core.ConfidenceLow
	}
}

// organizationSuggestions derives improvement hints for the collection.
func organizationSuggestions(sources []core.Source, themes []core.ThemeCluster) []string {
	var suggestions []string
	if len(sources) < 5 {
		suggestions = append(suggestions, "Add more sources to strengthen theme clusters")
	}
	if len(themes) == 1 {
		suggestions = append(suggestions, "Sources cover a single theme; consider broadening the search")
	}
	lowCredibility := 0
	for _, source := range sources {
		if source.Credibility.Level == core.CredibilityLow {
			lowCredibility++
		}
	}
	if lowCredibility > len(sources)/2 && len(sources) > 0 {
		suggestions = append(suggestions, "Over half of the sources are low credibility; seek peer-reviewed work")
	}
	return suggestions
}

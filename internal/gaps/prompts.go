package gaps

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"scholarly/internal/core"
	"scholarly/internal/llm"
)

// gapSchema constrains the completion model to structured gap output.
func gapSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"gaps": {
				Type:        genai.TypeArray,
				Description: "3-5 candidate research gaps",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"gap_type": {
							Type:        genai.TypeString,
							Description: "Kind of gap",
							Enum:        []string{"population", "methodology", "temporal", "context", "variable_interaction"},
						},
						"title":              {Type: genai.TypeString, Description: "Short gap title"},
						"description":        {Type: genai.TypeString, Description: "What is missing from the literature"},
						"why_matters":        {Type: genai.TypeString, Description: "Why closing this gap matters"},
						"current_limitation": {Type: genai.TypeString, Description: "What the current literature lacks"},
						"proposed_approach":  {Type: genai.TypeString, Description: "Suggested way to address the gap"},
						"estimated_scope": {
							Type:        genai.TypeString,
							Description: "Effort estimate",
							Enum:        []string{"small", "medium", "large"},
						},
						"estimated_time": {Type: genai.TypeString, Description: "e.g. '3-6 months'"},
					},
					Required: []string{"gap_type", "title", "description"},
				},
			},
		},
		Required: []string{"gaps"},
	}
}

// requestAIGaps asks the completion service for candidate gaps and parses the
// response through the two-stage parser.
func (a *Analyzer) requestAIGaps(ctx context.Context, synthesis core.SourceSynthesis, question string) ([]core.GapOpportunity, error) {
	prompt := buildGapPrompt(synthesis, question)

	response, err := a.completer.GenerateText(ctx, prompt, llm.TextGenerationOptions{
		Temperature:    0.4,
		MaxTokens:      2048,
		ResponseSchema: gapSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("gap generation failed: %w", err)
	}

	drafts, err := parseGapResponse(response)
	if err != nil {
		return nil, fmt.Errorf("gap response unparseable: %w", err)
	}
	return drafts, nil
}

// buildGapPrompt summarizes the synthesis and research question for the
// completion model.
func buildGapPrompt(synthesis core.SourceSynthesis, question string) string {
	var sb strings.Builder

	sb.WriteString("You are a research methodologist identifying gaps in a literature collection.\n\n")
	if question != "" {
		sb.WriteString("RESEARCH QUESTION: ")
		sb.WriteString(question)
		sb.WriteString("\n\n")
	}

	sb.WriteString("THEMES: ")
	sb.WriteString(strings.Join(synthesis.Themes, ", "))
	sb.WriteString("\n")

	sb.WriteString("POPULATIONS STUDIED:\n")
	for _, pop := range synthesis.Populations {
		sb.WriteString(fmt.Sprintf("- %s: %d sources (%s coverage)\n", pop.Demographic, pop.SourceCount, pop.Coverage))
	}

	sb.WriteString("METHODOLOGIES USED:\n")
	for _, method := range synthesis.Methodologies {
		sb.WriteString(fmt.Sprintf("- %s: %d sources\n", method.Approach, method.Frequency))
	}

	sb.WriteString(fmt.Sprintf("TEMPORAL COVERAGE: %s (%s)\n", synthesis.Temporal.YearRange, synthesis.Temporal.Distribution))
	if len(synthesis.Temporal.Gaps) > 0 {
		sb.WriteString(fmt.Sprintf("TEMPORAL GAPS: %s\n", strings.Join(synthesis.Temporal.Gaps, ", ")))
	}

	sb.WriteString("CONTEXTS:\n")
	for _, ctx := range synthesis.Contexts {
		sb.WriteString(fmt.Sprintf("- %s: %d sources\n", ctx.Setting, ctx.SourceCount))
	}

	sb.WriteString("\nTASK:\n")
	sb.WriteString("Identify 3-5 research gaps: under-studied populations, missing methodologies, temporal blind spots, unexplored contexts, or untested variable interactions.\n")
	sb.WriteString("For each gap provide gap_type, title, description, why_matters, current_limitation, proposed_approach, estimated_scope (small/medium/large), and estimated_time.\n")

	return sb.String()
}

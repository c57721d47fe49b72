package gaps

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"scholarly/internal/core"
)

// parseGapResponse turns a completion response into gap drafts. It is a
// two-stage parser: a strict JSON parse first, then a line-oriented heuristic
// extractor. Parsing ambiguity never propagates past this boundary; an error
// here routes the caller to the rule-based generator.
func parseGapResponse(response string) ([]core.GapOpportunity, error) {
	if drafts, err := parseGapJSON(response); err == nil && len(drafts) > 0 {
		return drafts, nil
	}
	drafts := parseGapFreeText(response)
	if len(drafts) == 0 {
		return nil, fmt.Errorf("no gaps recognized in response")
	}
	return drafts, nil
}

// parseGapJSON is the strict stage: schema-shaped JSON, optionally wrapped in
// a markdown fence. Fails closed on any decode error.
func parseGapJSON(response string) ([]core.GapOpportunity, error) {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var parsed struct {
		Gaps []struct {
			GapType           string `json:"gap_type"`
			Title             string `json:"title"`
			Description       string `json:"description"`
			WhyMatters        string `json:"why_matters"`
			CurrentLimitation string `json:"current_limitation"`
			ProposedApproach  string `json:"proposed_approach"`
			EstimatedScope    string `json:"estimated_scope"`
			EstimatedTime     string `json:"estimated_time"`
		} `json:"gaps"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse gap JSON: %w", err)
	}

	var drafts []core.GapOpportunity
	for _, g := range parsed.Gaps {
		if g.Title == "" {
			continue
		}
		drafts = append(drafts, core.GapOpportunity{
			ID:                uuid.NewString(),
			GapType:           normalizeGapType(g.GapType),
			Title:             g.Title,
			Description:       g.Description,
			WhyMatters:        g.WhyMatters,
			CurrentLimitation: g.CurrentLimitation,
			ProposedApproach:  g.ProposedApproach,
			EstimatedScope:    normalizeScope(g.EstimatedScope),
			EstimatedTime:     g.EstimatedTime,
		})
		if len(drafts) == MaxGaps {
			break
		}
	}
	return drafts, nil
}

// parseGapFreeText is the heuristic stage: scan numbered or bulleted lines,
// split each into a title and description, and infer the gap type from
// keywords. Best effort only.
func parseGapFreeText(response string) []core.GapOpportunity {
	var drafts []core.GapOpportunity
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		if len(line) > 2 && line[0] >= '1' && line[0] <= '9' && (line[1] == '.' || line[1] == ')') {
			line = strings.TrimSpace(line[2:])
		}
		if len(line) < 10 {
			continue
		}

		title, description := line, ""
		for _, sep := range []string{": ", " - ", " — "} {
			if idx := strings.Index(line, sep); idx > 0 {
				title = strings.TrimSpace(line[:idx])
				description = strings.TrimSpace(line[idx+len(sep):])
				break
			}
		}
		if !looksLikeGap(title + " " + description) {
			continue
		}

		drafts = append(drafts, core.GapOpportunity{
			ID:          uuid.NewString(),
			GapType:     inferGapType(title + " " + description),
			Title:       title,
			Description: description,
		})
		if len(drafts) == MaxGaps {
			break
		}
	}
	return drafts
}

// looksLikeGap filters out prose lines that are clearly not gap statements.
func looksLikeGap(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range []string{"gap", "lack", "missing", "under-studied", "understudied", "unexplored", "limited", "absence", "few studies", "no studies"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// inferGapType guesses a gap's type from its text.
func inferGapType(text string) core.GapType {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "population", "demographic", "participants", "sample", "adults", "children", "adolescents", "students", "elderly"):
		return core.GapPopulation
	case containsAny(lower, "method", "design", "trial", "longitudinal", "qualitative", "survey", "experiment"):
		return core.GapMethodology
	case containsAny(lower, "recent", "temporal", "years", "outdated", "longitudinally", "over time"):
		return core.GapTemporal
	case containsAny(lower, "setting", "context", "workplace", "clinical", "online", "school"):
		return core.GapContext
	case containsAny(lower, "interaction", "relationship", "combined", "moderat", "mediat"):
		return core.GapVariableInteraction
	default:
		return core.GapContext
	}
}

// containsAny reports whether text contains any of the given substrings.
func containsAny(text string, substrings ...string) bool {
	for _, s := range substrings {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// normalizeGapType maps arbitrary strings onto a valid GapType.
func normalizeGapType(raw string) core.GapType {
	switch core.GapType(strings.ToLower(strings.TrimSpace(raw))) {
	case core.GapPopulation:
		return core.GapPopulation
	case core.GapMethodology:
		return core.GapMethodology
	case core.GapTemporal:
		return core.GapTemporal
	case core.GapContext:
		return core.GapContext
	case core.GapVariableInteraction:
		return core.GapVariableInteraction
	default:
		return inferGapType(raw)
	}
}

// normalizeScope maps arbitrary strings onto a valid ScopeEstimate; unknown
// values stay unset so scoring falls back to gap-type defaults.
func normalizeScope(raw string) core.ScopeEstimate {
	switch core.ScopeEstimate(strings.ToLower(strings.TrimSpace(raw))) {
	case core.ScopeSmall:
		return core.ScopeSmall
	case core.ScopeMedium:
		return core.ScopeMedium
	case core.ScopeLarge:
		return core.ScopeLarge
	default:
		return ""
	}
}

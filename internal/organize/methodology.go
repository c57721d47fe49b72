package organize

import (
	"fmt"

	"scholarly/internal/core"
	"scholarly/internal/patterns"
)

// methodProfile holds the static description, strengths, and weaknesses
// attached to each canonical method group. Looked up, never computed.
type methodProfile struct {
	Description string
	Strengths   []string
	Weaknesses  []string
}

var methodProfiles = map[string]methodProfile{
	"randomized controlled trial": {
		Description: "Experimental studies with random assignment to conditions",
		Strengths:   []string{"Strong causal inference", "Controls for confounding variables"},
		Weaknesses:  []string{"Expensive to run", "May lack ecological validity"},
	},
	"longitudinal study": {
		Description: "Studies following the same participants over time",
		Strengths:   []string{"Captures change over time", "Supports developmental claims"},
		Weaknesses:  []string{"Attrition risk", "Slow to yield results"},
	},
	"survey": {
		Description: "Studies collecting self-reported data from respondents",
		Strengths:   []string{"Large samples at low cost", "Broad topical coverage"},
		Weaknesses:  []string{"Self-report bias", "No causal inference"},
	},
	"qualitative study": {
		Description: "Interview, focus-group, and ethnographic investigations",
		Strengths:   []string{"Rich contextual detail", "Surfaces unanticipated phenomena"},
		Weaknesses:  []string{"Limited generalizability", "Labor-intensive analysis"},
	},
	"experimental study": {
		Description: "Controlled experiments without full randomization",
		Strengths:   []string{"Isolates variables of interest", "Replicable procedures"},
		Weaknesses:  []string{"Artificial settings", "Small samples"},
	},
	"meta-analysis": {
		Description: "Quantitative syntheses of prior studies",
		Strengths:   []string{"Aggregates evidence across studies", "High statistical power"},
		Weaknesses:  []string{"Inherits biases of included studies", "Sensitive to inclusion criteria"},
	},
	"cross-sectional study": {
		Description: "Single-time-point observational studies",
		Strengths:   []string{"Fast and inexpensive", "Good for prevalence estimates"},
		Weaknesses:  []string{"No temporal ordering", "Cohort effects confounded"},
	},
	"case study": {
		Description: "In-depth examinations of single cases or small groups",
		Strengths:   []string{"Deep insight into rare phenomena", "Hypothesis generating"},
		Weaknesses:  []string{"Not generalizable", "Researcher subjectivity"},
	},
	"mixed methods": {
		Description: "Studies combining quantitative and qualitative approaches",
		Strengths:   []string{"Triangulates findings", "Balances depth and breadth"},
		Weaknesses:  []string{"Complex to design", "Integration challenges"},
	},
	patterns.MethodOther: {
		Description: "Sources without a detectable methodology signature",
		Strengths:   []string{"May cover theoretical or review work"},
		Weaknesses:  []string{"Methodology could not be classified"},
	},
}

// GroupByMethodology classifies each source into exactly one canonical method
// type and groups sources sharing a type. Descriptions and strengths come
// from a fixed lookup table.
func GroupByMethodology(sources []core.Source) []core.MethodologyGroup {
	byMethod := make(map[string][]string)
	for _, source := range sources {
		method := patterns.ClassifyMethodology(source)
		byMethod[method] = append(byMethod[method], source.ID)
	}

	var groups []core.MethodologyGroup
	for _, method := range patterns.MethodologyTypes() {
		ids, ok := byMethod[method]
		if !ok {
			continue
		}
		profile, ok := methodProfiles[method]
		if !ok {
			profile = methodProfile{Description: fmt.Sprintf("Sources using %s", method)}
		}
		groups = append(groups, core.MethodologyGroup{
			Methodology: method,
			Description: profile.Description,
			Strengths:   profile.Strengths,
			Weaknesses:  profile.Weaknesses,
			SourceIDs:   ids,
		})
	}
	return groups
}

// Package core defines the shared data model for the literature synthesis
// and gap-opportunity engine.
package core

import "time"

// CredibilityLevel is a coarse rating of how trustworthy a source is.
type CredibilityLevel string

const (
	CredibilityHigh     CredibilityLevel = "high"
	CredibilityModerate CredibilityLevel = "moderate"
	CredibilityLow      CredibilityLevel = "low"
)

// Credibility captures the credibility assessment attached to a source.
type Credibility struct {
	Level       CredibilityLevel `json:"level"`       // High/Moderate/Low rating
	Score       float64          `json:"score"`       // Numeric score 0-100
	StudyType   string           `json:"study_type"`  // e.g. "randomized controlled trial", "survey"
	Strengths   []string         `json:"strengths"`   // Notable methodological strengths
	Limitations []string         `json:"limitations"` // Notable methodological limitations
}

// Source represents one bibliographic record owned by the literature
// collection feature. It is passed by value and never mutated here.
type Source struct {
	ID          string      `json:"id"`           // Unique identifier for the source
	Title       string      `json:"title"`        // Title of the work
	Authors     []string    `json:"authors"`      // Ordered author list, non-empty
	Journal     string      `json:"journal"`      // Journal or venue name
	Year        int         `json:"year"`         // Publication year
	DOI         string      `json:"doi"`          // Optional DOI
	Abstract    string      `json:"abstract"`     // Optional abstract text
	KeyFindings []string    `json:"key_findings"` // Key finding statements
	Credibility Credibility `json:"credibility"`  // Credibility assessment
}

// CoverageLevel describes how well a demographic is covered by the collection.
type CoverageLevel string

const (
	CoverageExtensive CoverageLevel = "extensive"
	CoverageModerate  CoverageLevel = "moderate"
	CoverageLimited   CoverageLevel = "limited"
	CoverageMissing   CoverageLevel = "missing"
)

// PopulationCoverage records how many sources study a given demographic.
type PopulationCoverage struct {
	Demographic string        `json:"demographic"`  // Population descriptor (e.g. "adolescents")
	SourceCount int           `json:"source_count"` // Number of sources mentioning it
	Coverage    CoverageLevel `json:"coverage"`     // Derived coverage level
}

// MethodologyPattern records a research method detected across the collection.
type MethodologyPattern struct {
	Approach  string   `json:"approach"`   // Canonical method name
	Frequency int      `json:"frequency"`  // Number of sources using it
	SourceIDs []string `json:"source_ids"` // IDs of the sources using it
}

// TemporalPattern summarizes the publication-year spread of the collection.
type TemporalPattern struct {
	YearRange     string   `json:"year_range"`     // e.g. "2015-2024"
	Distribution  string   `json:"distribution"`   // Narrative distribution summary
	Gaps          []string `json:"gaps"`           // Detected year-range gaps
	OutdatedAreas []string `json:"outdated_areas"` // Themes only covered by old sources
}

// ContextPattern records a study setting/context detected in the collection.
type ContextPattern struct {
	Setting     string   `json:"setting"`      // e.g. "clinical", "online", "workplace"
	SourceCount int      `json:"source_count"` // Number of sources in this setting
	SourceIDs   []string `json:"source_ids"`   // IDs of those sources
}

// VariablePattern records a pair of variables studied together.
type VariablePattern struct {
	Variables   []string `json:"variables"`    // The co-occurring variables
	SourceCount int      `json:"source_count"` // Number of sources pairing them
}

// SourceSynthesis is the derived cross-source summary the gap analyzer works
// from. It is recomputed on every analysis call and never persisted.
type SourceSynthesis struct {
	Themes        []string             `json:"themes"`
	Populations   []PopulationCoverage `json:"populations"`
	Methodologies []MethodologyPattern `json:"methodologies"`
	Temporal      TemporalPattern      `json:"temporal"`
	Contexts      []ContextPattern     `json:"contexts"`
	Variables     []VariablePattern    `json:"variables"`
}

// GapType classifies a research gap by what kind of coverage is missing.
type GapType string

const (
	GapPopulation          GapType = "population"
	GapMethodology         GapType = "methodology"
	GapTemporal            GapType = "temporal"
	GapContext             GapType = "context"
	GapVariableInteraction GapType = "variable_interaction"
)

// ScopeEstimate sizes the effort a gap would take to pursue.
type ScopeEstimate string

const (
	ScopeSmall  ScopeEstimate = "small"
	ScopeMedium ScopeEstimate = "medium"
	ScopeLarge  ScopeEstimate = "large"
)

// GapOpportunity is one candidate research gap, scored on three axes.
// Instances are created fresh per analysis run and never mutated after ranking.
type GapOpportunity struct {
	ID                string        `json:"id"`                 // Unique identifier for this gap
	GapType           GapType       `json:"gap_type"`           // Kind of gap
	Title             string        `json:"title"`              // Short gap title
	Description       string        `json:"description"`        // Longer description
	WhyMatters        string        `json:"why_matters"`        // Why closing this gap matters
	CurrentLimitation string        `json:"current_limitation"` // What the current literature lacks
	ProposedApproach  string        `json:"proposed_approach"`  // Suggested way to address it
	NoveltyScore      int           `json:"novelty_score"`      // 0-100
	FeasibilityScore  int           `json:"feasibility_score"`  // 0-100
	ContributionScore int           `json:"contribution_score"` // 0-100
	OverallScore      int           `json:"overall_score"`      // Weighted combination, 0-100
	EstimatedScope    ScopeEstimate `json:"estimated_scope"`    // Small/Medium/Large
	EstimatedTime     string        `json:"estimated_time"`     // e.g. "3-6 months"
	RequiredResources []string      `json:"required_resources"` // Resources needed
	RelatedSourceIDs  []string      `json:"related_source_ids"` // Sources the gap derives from
}

// ResearchOpportunity is a follow-up question synthesized from a top gap.
type ResearchOpportunity struct {
	Question        string `json:"question"`         // Suggested research question
	Rationale       string `json:"rationale"`        // Why this question is worth pursuing
	ExpectedOutcome string `json:"expected_outcome"` // What answering it would contribute
	GapID           string `json:"gap_id"`           // The gap this derives from
}

// MethodologicalGap flags a canonical method absent from the collection.
type MethodologicalGap struct {
	Methodology string `json:"methodology"` // Canonical method name
	Rationale   string `json:"rationale"`   // What adopting it would add
	Difficulty  string `json:"difficulty"`  // easy/moderate/hard
}

// ConfidenceLevel indicates how much evidence backs an analysis.
type ConfidenceLevel string

const (
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceModerate ConfidenceLevel = "moderate"
	ConfidenceLow      ConfidenceLevel = "low"
)

// GapAnalysisResult is the full output of a gap analysis run. It is always
// well-formed; degraded pipelines lower ConfidenceLevel instead of failing.
type GapAnalysisResult struct {
	ID                 string                `json:"id"`                  // Analysis run identifier
	Synthesis          SourceSynthesis       `json:"synthesis"`           // Cross-source synthesis
	IdentifiedGaps     []GapOpportunity      `json:"identified_gaps"`     // Ranked gaps, overall score desc
	Opportunities      []ResearchOpportunity `json:"opportunities"`       // Follow-up questions, max 3
	MethodologicalGaps []MethodologicalGap   `json:"methodological_gaps"` // Missing methods, max 3
	ConfidenceLevel    ConfidenceLevel       `json:"confidence_level"`    // Evidence-backed confidence
	OverallAssessment  string                `json:"overall_assessment"`  // Narrative summary
	Recommendations    []string              `json:"recommendations"`     // Actionable advice, max 5
	SourcesCovered     int                   `json:"sources_covered"`     // Size of the input collection
	GeneratedAt        time.Time             `json:"generated_at"`        // When the analysis ran
}

// ThemeCluster groups topically related sources. A source may belong to more
// than one cluster.
type ThemeCluster struct {
	ID          string   `json:"id"`          // Cluster identifier
	Name        string   `json:"name"`        // Human-readable theme name
	Description string   `json:"description"` // One-line cluster description
	Keywords    []string `json:"keywords"`    // Key terms for the theme
	SourceIDs   []string `json:"source_ids"`  // Members of the cluster
	Relevance   int      `json:"relevance"`   // Relevance to the research question, 0-100
}

// MethodologyGroup groups sources sharing a detected research method.
type MethodologyGroup struct {
	Methodology string   `json:"methodology"` // One of the canonical method types
	Description string   `json:"description"` // Static descriptive template
	Strengths   []string `json:"strengths"`   // Static strengths for the method
	Weaknesses  []string `json:"weaknesses"`  // Static weaknesses for the method
	SourceIDs   []string `json:"source_ids"`  // Members of the group
}

// TimelineGroup buckets sources into a rolling window relative to today.
type TimelineGroup struct {
	Period             string   `json:"period"`               // e.g. "Last 2 years"
	StartYear          int      `json:"start_year"`           // Inclusive start of the window
	EndYear            int      `json:"end_year"`             // Inclusive end of the window
	SourceIDs          []string `json:"source_ids"`           // Members of the bucket
	Trend              string   `json:"trend"`                // Simple trend summary string
	RelevanceToPresent string   `json:"relevance_to_present"` // high/moderate/low by bucket age
}

// OrganizationMetadata describes how an organization run was produced.
type OrganizationMetadata struct {
	SourceCount      int             `json:"source_count"`      // Size of the input collection
	ClusteringMethod string          `json:"clustering_method"` // "ai" or "similarity_threshold"
	Confidence       ConfidenceLevel `json:"confidence"`        // Confidence in the grouping
	Suggestions      []string        `json:"suggestions"`       // Organization improvement hints
}

// OrganizedSources is the output bundle of the organizer.
type OrganizedSources struct {
	Themes        []ThemeCluster       `json:"themes"`
	Methodologies []MethodologyGroup   `json:"methodologies"`
	Timeline      []TimelineGroup      `json:"timeline"`
	Metadata      OrganizationMetadata `json:"metadata"`
	GeneratedAt   time.Time            `json:"generated_at"`
}

// Stage is the discrete maturity label for a research question.
type Stage string

const (
	StageInitial       Stage = "initial"
	StageEmerging      Stage = "emerging"
	StageFocused       Stage = "focused"
	StageResearchReady Stage = "research-ready"
)

// ProgressFactors records which maturity factors a question satisfies.
type ProgressFactors struct {
	HasSpecificPopulation bool `json:"has_specific_population"`
	HasResearchMethod     bool `json:"has_research_method"`
	HasMeasurableOutcome  bool `json:"has_measurable_outcome"`
	IsSpecific            bool `json:"is_specific"`
	HasRefinements        bool `json:"has_refinements"`
}

// QuestionProgress is the progress evaluator's output for one question.
type QuestionProgress struct {
	Stage           Stage           `json:"stage"`           // Maturity stage
	Progress        int             `json:"progress"`        // 0-100 completeness score
	Factors         ProgressFactors `json:"factors"`         // Which factors were met
	Recommendations []string        `json:"recommendations"` // One literal hint per unmet factor
}

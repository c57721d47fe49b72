// Package patterns extracts themes, populations, methodologies, temporal
// coverage, contexts, and variable pairings from source text. All extractors
// are pure functions over fixed keyword tables: identical input produces
// byte-identical output.
package patterns

import (
	"fmt"
	"sort"
	"strings"

	"scholarly/internal/core"
)

// GeneralBucket is the synthetic label used when a category has no matches,
// so downstream consumers never branch on emptiness.
const GeneralBucket = "General/Other"

// SourceText returns the case-folded concatenation of a source's title,
// abstract, and key findings — the text every extractor scans.
func SourceText(source core.Source) string {
	parts := make([]string, 0, 2+len(source.KeyFindings))
	parts = append(parts, source.Title, source.Abstract)
	parts = append(parts, source.KeyFindings...)
	return strings.ToLower(strings.Join(parts, " "))
}

// ExtractThemes scans all sources against the theme table and returns the
// matched theme labels in table order.
func ExtractThemes(sources []core.Source) []string {
	matched := make(map[string]bool)
	for _, source := range sources {
		text := SourceText(source)
		for _, theme := range themeTable {
			if matched[theme.Label] {
				continue
			}
			for _, keyword := range theme.Keywords {
				if strings.Contains(text, keyword) {
					matched[theme.Label] = true
					break
				}
			}
		}
	}

	var themes []string
	for _, theme := range themeTable {
		if matched[theme.Label] {
			themes = append(themes, theme.Label)
		}
	}
	if len(themes) == 0 {
		themes = []string{GeneralBucket}
	}
	return themes
}

// AnalyzePopulationCoverage detects which demographics the collection studies
// and grades coverage by source count: >=3 extensive, ==2 moderate, <2
// limited. Demographics never mentioned are not materialized; their absence
// is inferred later by the gap analyzer.
func AnalyzePopulationCoverage(sources []core.Source) []core.PopulationCoverage {
	counts := make(map[string]int)
	for _, source := range sources {
		text := SourceText(source)
		for _, pop := range populationTable {
			if pop.Pattern.MatchString(text) {
				counts[pop.Demographic]++
			}
		}
	}

	var coverage []core.PopulationCoverage
	for _, pop := range populationTable {
		count, ok := counts[pop.Demographic]
		if !ok {
			continue
		}
		coverage = append(coverage, core.PopulationCoverage{
			Demographic: pop.Demographic,
			SourceCount: count,
			Coverage:    coverageForCount(count),
		})
	}
	if len(coverage) == 0 {
		coverage = []core.PopulationCoverage{{
			Demographic: GeneralBucket,
			SourceCount: len(sources),
			Coverage:    coverageForCount(len(sources)),
		}}
	}
	return coverage
}

// coverageForCount maps a source count to a coverage level.
func coverageForCount(count int) core.CoverageLevel {
	switch {
	case count >= 3:
		return core.CoverageExtensive
	case count == 2:
		return core.CoverageModerate
	default:
		return core.CoverageLimited
	}
}

// AnalyzeMethodologies detects research methods across the collection,
// recording frequency and the contributing source ids in input order.
func AnalyzeMethodologies(sources []core.Source) []core.MethodologyPattern {
	bySources := make(map[string][]string)
	for _, source := range sources {
		text := SourceText(source)
		for _, method := range methodologyTable {
			if method.Pattern.MatchString(text) {
				bySources[method.Approach] = append(bySources[method.Approach], source.ID)
			}
		}
	}

	var methods []core.MethodologyPattern
	for _, method := range methodologyTable {
		ids, ok := bySources[method.Approach]
		if !ok {
			continue
		}
		methods = append(methods, core.MethodologyPattern{
			Approach:  method.Approach,
			Frequency: len(ids),
			SourceIDs: ids,
		})
	}
	if len(methods) == 0 {
		var allIDs []string
		for _, source := range sources {
			allIDs = append(allIDs, source.ID)
		}
		methods = []core.MethodologyPattern{{
			Approach:  GeneralBucket,
			Frequency: len(sources),
			SourceIDs: allIDs,
		}}
	}
	return methods
}

// AnalyzeTemporalCoverage summarizes the publication-year spread: range,
// distribution narrative, gaps of three or more missing consecutive years,
// and themes only covered by sources older than ten years.
func AnalyzeTemporalCoverage(sources []core.Source, currentYear int) core.TemporalPattern {
	var years []int
	for _, source := range sources {
		if source.Year > 0 {
			years = append(years, source.Year)
		}
	}
	if len(years) == 0 {
		return core.TemporalPattern{
			YearRange:    "unknown",
			Distribution: "No publication years recorded",
		}
	}
	sort.Ints(years)
	minYear, maxYear := years[0], years[len(years)-1]

	pattern := core.TemporalPattern{
		YearRange: fmt.Sprintf("%d-%d", minYear, maxYear),
	}

	recent := 0
	for _, year := range years {
		if currentYear-year <= 5 {
			recent++
		}
	}
	switch {
	case recent == len(years):
		pattern.Distribution = "All sources published within the last 5 years"
	case recent == 0:
		pattern.Distribution = "No sources published within the last 5 years"
	default:
		pattern.Distribution = fmt.Sprintf("%d of %d sources published within the last 5 years", recent, len(years))
	}

	// Gaps of >=3 consecutive missing years inside the covered range.
	present := make(map[int]bool, len(years))
	for _, year := range years {
		present[year] = true
	}
	gapStart := 0
	for year := minYear + 1; year <= maxYear; year++ {
		if !present[year] {
			if gapStart == 0 {
				gapStart = year
			}
			continue
		}
		if gapStart != 0 && year-gapStart >= 3 {
			pattern.Gaps = append(pattern.Gaps, fmt.Sprintf("%d-%d", gapStart, year-1))
		}
		gapStart = 0
	}

	// Themes only attested by sources older than ten years are outdated areas.
	themeLatest := make(map[string]int)
	for _, source := range sources {
		if source.Year <= 0 {
			continue
		}
		for _, label := range ExtractThemes([]core.Source{source}) {
			if label == GeneralBucket {
				continue
			}
			if source.Year > themeLatest[label] {
				themeLatest[label] = source.Year
			}
		}
	}
	for _, theme := range themeTable {
		latest, ok := themeLatest[theme.Label]
		if ok && currentYear-latest > 10 {
			pattern.OutdatedAreas = append(pattern.OutdatedAreas, theme.Label)
		}
	}

	return pattern
}

// AnalyzeContexts detects study settings across the collection.
func AnalyzeContexts(sources []core.Source) []core.ContextPattern {
	bySources := make(map[string][]string)
	for _, source := range sources {
		text := SourceText(source)
		for _, ctx := range contextTable {
			if ctx.Pattern.MatchString(text) {
				bySources[ctx.Setting] = append(bySources[ctx.Setting], source.ID)
			}
		}
	}

	var contexts []core.ContextPattern
	for _, ctx := range contextTable {
		ids, ok := bySources[ctx.Setting]
		if !ok {
			continue
		}
		contexts = append(contexts, core.ContextPattern{
			Setting:     ctx.Setting,
			SourceCount: len(ids),
			SourceIDs:   ids,
		})
	}
	if len(contexts) == 0 {
		var allIDs []string
		for _, source := range sources {
			allIDs = append(allIDs, source.ID)
		}
		contexts = []core.ContextPattern{{
			Setting:     GeneralBucket,
			SourceCount: len(sources),
			SourceIDs:   allIDs,
		}}
	}
	return contexts
}

// AnalyzeVariables finds pairs of known variable terms studied together in
// the same source, counted across the collection in vocabulary order.
func AnalyzeVariables(sources []core.Source) []core.VariablePattern {
	pairCounts := make(map[string]int)
	for _, source := range sources {
		text := SourceText(source)
		var found []string
		for _, term := range variableTerms {
			if strings.Contains(text, term) {
				found = append(found, term)
			}
		}
		for i := 0; i < len(found); i++ {
			for j := i + 1; j < len(found); j++ {
				pairCounts[found[i]+"|"+found[j]]++
			}
		}
	}

	var variables []core.VariablePattern
	for i := 0; i < len(variableTerms); i++ {
		for j := i + 1; j < len(variableTerms); j++ {
			key := variableTerms[i] + "|" + variableTerms[j]
			count, ok := pairCounts[key]
			if !ok {
				continue
			}
			variables = append(variables, core.VariablePattern{
				Variables:   []string{variableTerms[i], variableTerms[j]},
				SourceCount: count,
			})
		}
	}
	if len(variables) == 0 {
		variables = []core.VariablePattern{{
			Variables:   []string{GeneralBucket},
			SourceCount: 0,
		}}
	}
	return variables
}

// MethodOther is the classification for sources matching no method pattern.
const MethodOther = "other"

// ClassifyMethodology assigns a single source to the first matching canonical
// method type, or MethodOther when nothing matches. Classification is
// mutually exclusive per source, unlike AnalyzeMethodologies which records
// every match.
func ClassifyMethodology(source core.Source) string {
	text := SourceText(source)
	for _, method := range methodologyTable {
		if method.Pattern.MatchString(text) {
			return method.Approach
		}
	}
	return MethodOther
}

// MethodologyTypes returns the canonical method type names in table order,
// followed by MethodOther.
func MethodologyTypes() []string {
	types := make([]string, 0, len(methodologyTable)+1)
	for _, method := range methodologyTable {
		types = append(types, method.Approach)
	}
	return append(types, MethodOther)
}

package patterns

import "regexp"

// themePattern maps a set of trigger keywords to a theme label. Tables are
// ordered slices so extraction order is stable for identical input.
type themePattern struct {
	Label    string
	Keywords []string
}

var themeTable = []themePattern{
	{"Mental Health & Wellbeing", []string{"mental health", "wellbeing", "well-being", "anxiety", "depression", "psychological"}},
	{"Technology & Digital Media", []string{"technology", "digital", "social media", "smartphone", "online", "internet"}},
	{"Education & Learning", []string{"education", "learning", "academic", "school", "curriculum", "instruction"}},
	{"Health & Medicine", []string{"health", "clinical", "medical", "treatment", "patient", "disease"}},
	{"Sleep & Rest", []string{"sleep", "insomnia", "circadian", "rest", "fatigue"}},
	{"Work & Organizations", []string{"workplace", "employee", "organizational", "job", "occupational"}},
	{"Social Relationships", []string{"relationship", "social support", "peer", "family", "community"}},
	{"Behavior & Habits", []string{"behavior", "behaviour", "habit", "addiction", "self-regulation"}},
	{"Performance & Achievement", []string{"performance", "achievement", "productivity", "outcome", "attainment"}},
	{"Development & Aging", []string{"development", "aging", "ageing", "lifespan", "maturation"}},
}

// populationPattern maps detection regexes to a canonical demographic label.
type populationPattern struct {
	Demographic string
	Pattern     *regexp.Regexp
}

var populationTable = []populationPattern{
	{"children", regexp.MustCompile(`\b(children|child|pediatric|kids|elementary)\b`)},
	{"adolescents", regexp.MustCompile(`\b(adolescen\w*|teen\w*|youth|middle school|high school)\b`)},
	{"college students", regexp.MustCompile(`\b(college|university|undergraduate|graduate) (student|sample|population)s?\b|\bstudents\b`)},
	{"adults", regexp.MustCompile(`\b(adults?|working-age|aged 18)\b`)},
	{"older adults", regexp.MustCompile(`\b(older adults?|elderly|seniors?|aged 65|geriatric)\b`)},
	{"women", regexp.MustCompile(`\b(women|female participants|mothers|maternal)\b`)},
	{"men", regexp.MustCompile(`\b(men|male participants|fathers|paternal)\b`)},
	{"clinical populations", regexp.MustCompile(`\b(patients?|clinical (sample|population)|diagnosed)\b`)},
}

// methodologyPattern maps detection regexes to a canonical method name.
type methodologyPattern struct {
	Approach string
	Pattern  *regexp.Regexp
}

var methodologyTable = []methodologyPattern{
	{"randomized controlled trial", regexp.MustCompile(`\b(randomized controlled trial|randomised controlled trial|rct)\b`)},
	{"longitudinal study", regexp.MustCompile(`\b(longitudinal|cohort study|follow-up study|panel study)\b`)},
	{"survey", regexp.MustCompile(`\b(survey|questionnaire|self-report)\b`)},
	{"qualitative study", regexp.MustCompile(`\b(qualitative|interviews?|focus groups?|ethnograph\w*|thematic analysis)\b`)},
	{"experimental study", regexp.MustCompile(`\b(experiment\w*|laboratory stud\w*|controlled condition)\b`)},
	{"meta-analysis", regexp.MustCompile(`\b(meta-analysis|systematic review)\b`)},
	{"cross-sectional study", regexp.MustCompile(`\b(cross-sectional)\b`)},
	{"case study", regexp.MustCompile(`\b(case stud(y|ies))\b`)},
	{"mixed methods", regexp.MustCompile(`\b(mixed methods?|mixed-methods?)\b`)},
}

// contextPattern maps detection regexes to a canonical study setting.
type contextPattern struct {
	Setting string
	Pattern *regexp.Regexp
}

var contextTable = []contextPattern{
	{"clinical", regexp.MustCompile(`\b(clinic\w*|hospital|inpatient|outpatient)\b`)},
	{"educational", regexp.MustCompile(`\b(school|classroom|campus|university setting)\b`)},
	{"workplace", regexp.MustCompile(`\b(workplace|office|organizational setting|worksite)\b`)},
	{"online", regexp.MustCompile(`\b(online|remote|virtual|web-based|internet-based)\b`)},
	{"community", regexp.MustCompile(`\b(community|neighborhood|household)\b`)},
	{"laboratory", regexp.MustCompile(`\b(laboratory|lab setting|controlled setting)\b`)},
}

// variableTerms is the fixed vocabulary scanned for co-occurring variables.
var variableTerms = []string{
	"sleep",
	"stress",
	"anxiety",
	"depression",
	"academic performance",
	"social media use",
	"physical activity",
	"screen time",
	"memory",
	"attention",
	"motivation",
	"self-esteem",
}

// canonicalMethods is the fixed list checked for missing-methodology gaps.
var canonicalMethods = []string{
	"randomized controlled trial",
	"longitudinal study",
	"qualitative study",
	"mixed methods",
}

// CanonicalMethods returns the fixed method list used for rule-derived
// methodology gaps.
func CanonicalMethods() []string {
	out := make([]string, len(canonicalMethods))
	copy(out, canonicalMethods)
	return out
}

package review

import (
	"math"
	"regexp"
	"strings"
)

// Each dimension is an independent pure heuristic with a common signature,
// baseline 10 minus fixed deductions, clamped to [0,10].
type dimensionFunc func(snippet string, comments []string, lang Language) float64

const maxScore = 10.0

// Penalty magnitudes. These are tuning constants, not load-bearing design:
// swapping them changes calibration, not the contract.
const (
	penaltySingleLetter  = 1.5
	penaltyTightOperator = 0.5
	penaltyNestedLoop    = 1.5
	penaltyPerfPattern   = 1.0
	penaltyHarshComment  = 1.0
	penaltyModerate      = 0.5
	penaltyLongSnippet   = 0.5 // per lengthStep lines beyond lengthThreshold
	penaltyAntiPattern   = 1.0
)

const (
	lengthThreshold = 30
	lengthStep      = 10
)

// loopCounters are single-letter names conventionally excused as counters.
var loopCounters = map[string]bool{"i": true, "j": true, "k": true, "_": true}

var (
	singleLetterRE = regexp.MustCompile(`\b[a-z]\b`)
	// An operator with an identifier character hard against both sides.
	tightOperatorRE = regexp.MustCompile(`\w(==|!=|<=|>=|\+=|-=|\*=|/=|=|\+|\*|/)\w`)
	loopLineRE      = regexp.MustCompile(`^(\s*).*\b(for|while)\b`)
)

// perfPatterns are known inefficient constructs, matched case-insensitively
// as substrings of the snippet.
var perfPatterns = []string{
	"range(len(",
	".index(",
	"+= \"",
	"+= '",
}

// antiPatterns is the per-language table of best-practice violations,
// matched case-insensitively. Unknown has no entries: with no language
// there is nothing language-specific to penalize.
var antiPatterns = map[Language][]string{
	LangPython: {
		"== true", "== false", "except:", "import *", "global ", "eval(",
	},
	LangJavaScript: {
		"var ", "== true", "== false", "document.write", "eval(",
	},
	LangJava: {
		"== true", "== false", "system.out.println", "new boolean(",
	},
	LangCPP: {
		"using namespace std", "malloc(", "goto ",
	},
	LangGo: {
		"panic(", "interface{}", "goto ",
	},
}

// Score combines snippet features and comment severities into the four
// subscores and their aggregate. Pure function of its three inputs:
// identical inputs yield bit-identical output.
func Score(snippet string, comments []string, lang Language) QualityScore {
	r := round1(scoreReadability(snippet, comments, lang))
	p := round1(scorePerformance(snippet, comments, lang))
	m := round1(scoreMaintainability(snippet, comments, lang))
	b := round1(scoreBestPractices(snippet, comments, lang))

	overall := round1((r + p + m + b) / 4)
	improvement := round1(math.Max(0, maxScore-overall))

	return QualityScore{
		Readability:          r,
		Performance:          p,
		Maintainability:      m,
		BestPractices:        b,
		Overall:              overall,
		ImprovementPotential: improvement,
	}
}

// scoreReadability deducts for single-letter identifiers outside the
// conventional loop counters and for operators written without whitespace.
func scoreReadability(snippet string, _ []string, _ Language) float64 {
	if snippet == "" {
		return maxScore
	}
	score := maxScore

	seen := map[string]bool{}
	for _, m := range singleLetterRE.FindAllString(strings.ToLower(snippet), -1) {
		if loopCounters[m] || seen[m] {
			continue
		}
		seen[m] = true
		score -= penaltySingleLetter
	}

	score -= float64(len(tightOperatorRE.FindAllString(snippet, -1))) * penaltyTightOperator

	return clamp(score)
}

// scorePerformance deducts for nested loops and for matches in the fixed
// inefficient-pattern table.
func scorePerformance(snippet string, _ []string, _ Language) float64 {
	if snippet == "" {
		return maxScore
	}
	score := maxScore

	score -= float64(countNestedLoops(snippet)) * penaltyNestedLoop

	lower := strings.ToLower(snippet)
	for _, pat := range perfPatterns {
		score -= float64(strings.Count(lower, pat)) * penaltyPerfPattern
	}

	return clamp(score)
}

// scoreMaintainability deducts proportionally to snippet length beyond a
// threshold and per comment classified Harsh or Moderate. This is the one
// dimension defined over the comments as well, so it still deducts when the
// snippet is empty.
func scoreMaintainability(snippet string, comments []string, _ Language) float64 {
	score := maxScore

	if lines := countLines(snippet); lines > lengthThreshold {
		over := lines - lengthThreshold
		score -= float64((over+lengthStep-1)/lengthStep) * penaltyLongSnippet
	}

	for _, c := range comments {
		switch Classify(c) {
		case TierHarsh:
			score -= penaltyHarshComment
		case TierModerate:
			score -= penaltyModerate
		}
	}

	return clamp(score)
}

// scoreBestPractices deducts per language-specific anti-pattern occurrence.
func scoreBestPractices(snippet string, _ []string, lang Language) float64 {
	if snippet == "" {
		return maxScore
	}
	score := maxScore

	lower := strings.ToLower(snippet)
	for _, pat := range antiPatterns[lang] {
		score -= float64(strings.Count(lower, pat)) * penaltyAntiPattern
	}

	return clamp(score)
}

// countNestedLoops counts loop lines indented deeper than an enclosing loop
// line. Indentation tracking covers both Python-style and braced snippets
// well enough for a heuristic.
func countNestedLoops(snippet string) int {
	var stack []int // indents of open loop lines
	nested := 0
	for _, line := range strings.Split(snippet, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		for len(stack) > 0 && indent <= stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
		}
		if loopLineRE.MatchString(line) {
			if len(stack) > 0 {
				nested++
			}
			stack = append(stack, indent)
		}
	}
	return nested
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(maxScore, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

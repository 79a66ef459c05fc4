package review

// Language is a detected programming language label.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangCPP        Language = "cpp"
	LangGo         Language = "go"
	LangUnknown    Language = "unknown"
)

// Display returns the human-facing name of a language.
func (l Language) Display() string {
	switch l {
	case LangPython:
		return "Python"
	case LangJavaScript:
		return "JavaScript"
	case LangJava:
		return "Java"
	case LangCPP:
		return "C++"
	case LangGo:
		return "Go"
	default:
		return "Unknown"
	}
}

// Tier represents the severity of a single review comment.
type Tier string

const (
	TierMild     Tier = "mild"
	TierModerate Tier = "moderate"
	TierHarsh    Tier = "harsh"
)

// TierRank returns a numeric rank for ordering (higher = harsher).
func TierRank(t Tier) int {
	switch t {
	case TierHarsh:
		return 3
	case TierModerate:
		return 2
	case TierMild:
		return 1
	default:
		return 0
	}
}

// Request is a validated review request.
type Request struct {
	CodeSnippet    string   `json:"code_snippet"`
	ReviewComments []string `json:"review_comments"`
}

// QualityScore holds the four heuristic subscores and their aggregate.
// All values are on a 0-10 scale, rounded to one decimal.
type QualityScore struct {
	Readability          float64 `json:"readability"`
	Performance          float64 `json:"performance"`
	Maintainability      float64 `json:"maintainability"`
	BestPractices        float64 `json:"bestPractices"`
	Overall              float64 `json:"overall"`
	ImprovementPotential float64 `json:"improvementPotential"`
}

// TierCounts holds counts by severity tier.
type TierCounts struct {
	Mild     int `json:"mild"`
	Moderate int `json:"moderate"`
	Harsh    int `json:"harsh"`
}

// Rewrite is one empathetic rewrite of an original review comment.
type Rewrite struct {
	Original    string `json:"original"`
	Severity    Tier   `json:"severity"`
	Rephrasing  string `json:"rephrasing"`
	Why         string `json:"why"`
	Improvement string `json:"improvement,omitempty"`
}

// InputInfo describes what was reviewed.
type InputInfo struct {
	Source       string `json:"source"`
	SnippetBytes int    `json:"snippetBytes"`
	Comments     int    `json:"comments"`
}

// Timing contains per-phase durations in milliseconds.
type Timing struct {
	AnalysisMs int64 `json:"analysisMs"`
	LLMMs      int64 `json:"llmMs"`
	TotalMs    int64 `json:"totalMs"`
}

// Report is the top-level output structure.
type Report struct {
	Tool       string       `json:"tool"`
	Version    string       `json:"version"`
	RunID      string       `json:"runId"`
	Persona    string       `json:"persona"`
	Language   Language     `json:"language"`
	Inputs     InputInfo    `json:"inputs"`
	Severities []Tier       `json:"severities"`
	Breakdown  TierCounts   `json:"breakdown"`
	Tone       Tier         `json:"tone"`
	Score      QualityScore `json:"score"`
	Rewrites   []Rewrite    `json:"rewrites,omitempty"`
	Summary    string       `json:"summary,omitempty"`
	Resources  []string     `json:"resources,omitempty"`
	Timing     Timing       `json:"timing"`
}

// ComputeBreakdown tallies tiers per comment.
func ComputeBreakdown(tiers []Tier) TierCounts {
	var c TierCounts
	for _, t := range tiers {
		switch t {
		case TierMild:
			c.Mild++
		case TierModerate:
			c.Moderate++
		case TierHarsh:
			c.Harsh++
		}
	}
	return c
}

// DominantTone returns the most frequent tier across comments. Ties resolve
// toward the harsher tier so prompt softening never under-corrects.
func DominantTone(tiers []Tier) Tier {
	c := ComputeBreakdown(tiers)
	switch {
	case c.Harsh > 0 && c.Harsh >= c.Moderate && c.Harsh >= c.Mild:
		return TierHarsh
	case c.Moderate > 0 && c.Moderate >= c.Mild:
		return TierModerate
	default:
		return TierMild
	}
}

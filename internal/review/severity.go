package review

import "strings"

// harshMarkers flag hostile or absolutist phrasing. Any hit classifies the
// comment Harsh regardless of what else it contains.
var harshMarkers = []string{
	"terrible", "awful", "horrible", "stupid", "dumb", "wrong", "never",
	"useless", "garbage", "lazy", "completely", "totally", "absolutely",
	"obviously",
}

// moderateMarkers flag blunt-but-technical criticism.
var moderateMarkers = []string{
	"inefficient", "bad", "should not", "shouldn't", "redundant", "unclear",
	"confusing", "messy", "poor", "avoid", "slow", "don't",
}

// exclamationThreshold marks exclamation-heavy phrasing as Harsh even
// without a keyword hit.
const exclamationThreshold = 2

// Classify maps a single review comment to a severity tier. Tiers are
// tested in priority order Harsh > Moderate > Mild; classification is not
// cumulative across keyword count. An empty comment is Mild: absence of
// negative signal. Pure and deterministic.
func Classify(comment string) Tier {
	lower := strings.ToLower(comment)

	if strings.Count(lower, "!") >= exclamationThreshold {
		return TierHarsh
	}
	for _, m := range harshMarkers {
		if strings.Contains(lower, m) {
			return TierHarsh
		}
	}
	for _, m := range moderateMarkers {
		if strings.Contains(lower, m) {
			return TierModerate
		}
	}
	return TierMild
}

// ClassifyAll classifies each comment, preserving input order.
func ClassifyAll(comments []string) []Tier {
	tiers := make([]Tier, len(comments))
	for i, c := range comments {
		tiers[i] = Classify(c)
	}
	return tiers
}

package lua

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxTypoDistance is the largest edit distance at which a name is still
// suggested for a misspelled one.
const maxTypoDistance = 2

// ClosestMatch returns the candidate that is most likely meant by target:
// the best fuzzy match containing its characters in order, or else the
// nearest candidate by edit distance.
func ClosestMatch(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}
	candidates = append([]string(nil), candidates...)
	sort.Strings(candidates)
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", maxTypoDistance+1
	for _, candidate := range candidates {
		if d := fuzzy.LevenshteinDistance(target, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

// didYouMean formats a suggestion to be appended to an error message.
func didYouMean(target string, candidates []string) string {
	if match := ClosestMatch(target, candidates); match != "" && match != target {
		return fmt.Sprintf(" (did you mean '%s'?)", match)
	}
	return ""
}

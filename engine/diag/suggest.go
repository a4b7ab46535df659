package diag

import "github.com/lithammer/fuzzysearch/fuzzy"

// Suggest returns the closest candidate to target by fuzzy rank, or ""
// when candidates is empty or nothing ranks — used to build "did you mean
// X?" suggestions on unrecognized-word errors.
//
// Grounded on the teacher's runtime/planner.findClosestMatch.
func Suggest(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}

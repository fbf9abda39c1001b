package checker

import "strings"

// Match ranks, highest wins. Ambiguous partial matches are never silently
// accepted: a substring hit only counts under MatchSubstring, and ties at
// equal rank resolve to the earliest candidate in insertion order so the
// result is reproducible across runs.
const (
	rankNone = iota
	rankSubstring
	rankToken
	rankExact
)

// matchRank scores how well pattern matches one candidate name under the
// given strategy. Exact equality always wins. A token match means the
// pattern appears as a complete path or dot-separated token of the
// candidate (e.g. pattern "top" against candidate "runs/top.rpt" base
// "top.rpt" token "top"), which resolves the filename-versus-bare-identifier
// ambiguity toward the most specific literal.
func matchRank(pattern, candidate string, strategy MatchStrategy) int {
	if pattern == candidate {
		return rankExact
	}
	if strategy == MatchWholeToken {
		return rankNone
	}
	if containsToken(candidate, pattern) {
		return rankToken
	}
	if strategy == MatchSubstring && pattern != "" && strings.Contains(candidate, pattern) {
		return rankSubstring
	}
	return rankNone
}

// containsToken reports whether want appears in name as a complete token,
// where tokens are the segments produced by splitting on '/' and '.'.
func containsToken(name, want string) bool {
	if want == "" {
		return false
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == want {
			return true
		}
		for _, tok := range strings.Split(seg, ".") {
			if tok == want {
				return true
			}
		}
	}
	return false
}

// bestMatch returns the candidate name pattern matches best, or ok=false.
// Candidates already claimed by an earlier pattern are skipped so one
// finding never satisfies two requirements.
func bestMatch(pattern string, names []string, claimed map[string]bool, strategy MatchStrategy) (string, bool) {
	best := ""
	bestRank := rankNone
	for _, name := range names {
		if claimed[name] {
			continue
		}
		if r := matchRank(pattern, name, strategy); r > bestRank {
			best, bestRank = name, r
			if r == rankExact {
				break
			}
		}
	}
	return best, bestRank > rankNone
}

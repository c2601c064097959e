// Package fuzzy provides similarity scoring and close-match search over
// short strings such as player names. Scores are ratios in [0,1]; callers
// pick the cutoff that suits their candidate set (short team nicknames
// tolerate a much lower cutoff than full player names).
package fuzzy

import "sort"

// Match is one candidate that met the cutoff.
type Match struct {
	Value string
	Score float64
	Index int
}

// Ratio returns a similarity ratio between a and b: twice the length of
// their longest common subsequence over the total length. Identical strings
// score 1, disjoint strings 0. Comparison is byte-wise; callers lower-case
// beforehand when they want case-insensitive behavior.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	common := lcsLength(a, b)
	return 2 * float64(common) / float64(len(a)+len(b))
}

// CloseMatches returns up to n candidates scoring at least cutoff against
// query, best first. Ties keep candidate order, so a pre-ranked candidate
// list stays ranked.
func CloseMatches(query string, candidates []string, n int, cutoff float64) []Match {
	matches := make([]Match, 0, n)
	for i, c := range candidates {
		score := Ratio(query, c)
		if score >= cutoff {
			matches = append(matches, Match{Value: c, Score: score, Index: i})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}
	return matches
}

// lcsLength computes the longest-common-subsequence length with a rolling
// single-row table.
func lcsLength(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// CommonChars counts distinct bytes that appear in both strings. The
// resolver uses it as a cheap guard against absurd fuzzy matches.
func CommonChars(a, b string) int {
	var seenA, seenB [256]bool
	for i := 0; i < len(a); i++ {
		seenA[a[i]] = true
	}
	for i := 0; i < len(b); i++ {
		seenB[b[i]] = true
	}
	count := 0
	for i := 0; i < 256; i++ {
		if seenA[i] && seenB[i] {
			count++
		}
	}
	return count
}

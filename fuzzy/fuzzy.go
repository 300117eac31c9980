// Package fuzzy reconciles inconsistent free-text library names using a
// similarity-ratio based best-candidate selection.
//
// Catalog sites often print a library's name slightly differently between
// the directory page and a search-result row (whitespace, bracketed branch
// codes, abbreviations), so exact matching is not an option.
package fuzzy

import "github.com/hbollon/go-edlib"

// Candidate pairs a value with the display name it is matched under.
type Candidate[T any] struct {
	Value T
	Name  string
}

// Ratio returns a similarity ratio in [0, 1] over the rune sequences of a
// and b: 2*LCS/(len(a)+len(b)). Two empty strings are identical.
func Ratio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la+lb == 0 {
		return 1
	}
	return 2 * float64(edlib.LCS(a, b)) / float64(la+lb)
}

// SelectClosest returns the candidate whose name is most similar to
// target. Ties are broken by first occurrence. It is total over non-empty
// candidate sets and always returns a member of candidates; calling it
// with an empty set is a programmer error and panics.
func SelectClosest[T any](candidates []Candidate[T], target string) T {
	if len(candidates) == 0 {
		panic("fuzzy: SelectClosest called with no candidates")
	}
	best := 0
	bestRatio := Ratio(candidates[0].Name, target)
	for i := 1; i < len(candidates); i++ {
		if r := Ratio(candidates[i].Name, target); r > bestRatio {
			best, bestRatio = i, r
		}
	}
	return candidates[best].Value
}

package query

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matching is case-insensitive via Unicode case folding, so "Straße" and
// "STRASSE" compare equal the way a site visitor expects, not just ASCII.

func fold(s string) string {
	return cases.Fold().String(s)
}

// foldEqual reports whether a and b are equal under case folding.
func foldEqual(a, b string) bool {
	return fold(a) == fold(b)
}

// foldContains reports whether s contains substr under case folding. The
// empty substring matches everything.
func foldContains(s, substr string) bool {
	return strings.Contains(fold(s), fold(substr))
}

// anyFoldEqual reports whether any element of list equals v under folding.
func anyFoldEqual(list []string, v string) bool {
	for _, s := range list {
		if foldEqual(s, v) {
			return true
		}
	}
	return false
}

// anyFoldContains reports whether any element of list contains substr
// under folding.
func anyFoldContains(list []string, substr string) bool {
	for _, s := range list {
		if foldContains(s, substr) {
			return true
		}
	}
	return false
}

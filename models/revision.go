package models

import (
	"fmt"
	"strconv"
	"strings"
)

// RevGeneration returns the numeric prefix of a "N-suffix" revision, or 0 when
// the revision is empty or malformed.
func RevGeneration(rev string) int {
	head, _, ok := strings.Cut(rev, "-")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return n
}

// NextRev builds the revision that follows prev using suffix as the unique
// part.
func NextRev(prev, suffix string) string {
	return fmt.Sprintf("%d-%s", RevGeneration(prev)+1, suffix)
}

// RevWins reports whether revision a beats revision b. The higher generation
// wins and equal generations fall back to the lexicographically greater
// revision, so every replica picks the same winner.
func RevWins(a, b string) bool {
	ga, gb := RevGeneration(a), RevGeneration(b)
	if ga != gb {
		return ga > gb
	}
	return a > b
}

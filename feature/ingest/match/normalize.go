package match

import (
	"sort"
	"strings"
)

// NormalizeName folds the common name formatting variants into one key:
// case, punctuation, and token order ("TAN, Wei Ming" vs "Wei Ming Tan")
// all normalize to the same value. Token sorting makes the fold
// order-independent, which is what lets the exact index absorb both the
// comma-inverted and the natural ordering.
func NormalizeName(s string) string {
	s = strings.ToUpper(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func normalizeClub(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

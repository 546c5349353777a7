package golightqa

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/unicode/norm"
)

// Scorer computes a similarity score in [0, 100] between two strings.
type Scorer func(a, b string) int

// Normalize case-folds s and trims surrounding whitespace. Queries and dataset questions are
// normalized identically before scoring.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TokenSortRatio scores two strings while ignoring word order. Both strings are reduced to
// lowercase letters and digits of any script except Latin-1 (U+0080 to U+00FF), their
// whitespace-delimited tokens are sorted and joined,
// and the results are compared with an Indel (insertion/deletion) normalized similarity:
//
//	round(100 * 2*LCS(a, b) / (len(a) + len(b)))
//
// Rounding is half-to-even. If either string is empty after processing the score is 0,
// so an empty query never matches anything, not even an empty question.
func TokenSortRatio(a, b string) int {
	return ratio(sortTokens(processString(a)), sortTokens(processString(b)))
}

func ratio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	lcs := edlib.LCS(a, b)

	return int(math.RoundToEven(200 * float64(lcs) / float64(total)))
}

// processString folds compatibility forms, drops the Latin-1 range, replaces everything
// that is not a letter, digit or underscore with a space, lowercases, and trims.
func processString(s string) string {
	const latin1Start, latin1End = 0x80, 0xff

	s = norm.NFKC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= latin1Start && r <= latin1End:
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte(' ')
		}
	}

	return strings.TrimSpace(b.String())
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

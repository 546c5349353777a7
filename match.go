package golightqa

// DefaultThreshold is the minimum similarity score for a dataset answer to be accepted.
const DefaultThreshold = 80

// Matcher selects the dataset answer closest to a query.
// The zero value uses DefaultThreshold and TokenSortRatio.
type Matcher struct {
	// Threshold values of zero or below mean DefaultThreshold.
	Threshold int
	Scorer    Scorer
}

// Match scores the normalized query against every normalized question and returns the best one.
// On ties the earliest record wins. The answer is only reported as found when the best score is
// at least the threshold. Match has no side effects.
func (m Matcher) Match(query string, records []QARecord) MatchResult {
	res := MatchResult{Index: -1}
	if len(records) == 0 {
		return res
	}

	score := m.scorer()
	q := Normalize(query)

	best := -1
	for i, rec := range records {
		s := min(max(score(q, Normalize(rec.Question)), 0), 100)
		if s > best {
			best = s
			res.Index = i
		}
	}

	res.Score = best
	if best >= m.threshold() {
		res.Answer = records[res.Index].Answer
		res.Found = true
	}

	return res
}

func (m Matcher) threshold() int {
	if m.Threshold <= 0 {
		return DefaultThreshold
	}
	return m.Threshold
}

func (m Matcher) scorer() Scorer {
	if m.Scorer == nil {
		return TokenSortRatio
	}
	return m.Scorer
}

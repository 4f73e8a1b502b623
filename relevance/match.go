// Package relevance holds the two relevance definitions of the board:
// the live-dispatch interest match (exact tag intersection) and the looser
// unseen-count strategies. They are intentionally separate computations.
package relevance

// Match compares a jobseeker's interests against a vacancy's extracted
// keywords.
//
// A user with no interests recorded is broadcast-eligible: the notification
// is delivered anyway, flagged as not relevant. A user with interests is
// delivered to only when at least one interest matches. MatchedInterests
// preserves the user's interest order.
type Match struct {
	IsRelevant       bool
	MatchedInterests []string
}

func MatchInterests(interests, vacancyKeywords []string) Match {
	matched := make([]string, 0, len(interests))

	keywordSet := make(map[string]bool, len(vacancyKeywords))
	for _, k := range vacancyKeywords {
		keywordSet[k] = true
	}

	for _, interest := range interests {
		if keywordSet[interest] {
			matched = append(matched, interest)
		}
	}

	return Match{
		IsRelevant:       len(matched) > 0,
		MatchedInterests: matched,
	}
}

// ShouldDeliver reports whether the notification is sent at all: relevant
// matches and interest-less users both receive it.
func (m Match) ShouldDeliver(interests []string) bool {
	return m.IsRelevant || len(interests) == 0
}

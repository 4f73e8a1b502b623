package relevance

import (
	"strings"

	"github.com/jobfinder/api/data"
)

// The unseen counter answers "did anything change since my last look", which
// is deliberately looser than the live-dispatch match: a vacancy qualifies if
// ANY strategy matches. The free-text scan exists because extraction can miss
// a term that is present verbatim in the text.

// MatchesKeywordSet reports whether any interest appears in the vacancy's
// extracted keyword set.
func MatchesKeywordSet(interests, vacancyKeywords []string) bool {
	keywordSet := make(map[string]bool, len(vacancyKeywords))
	for _, k := range vacancyKeywords {
		keywordSet[k] = true
	}
	for _, interest := range interests {
		if keywordSet[interest] {
			return true
		}
	}
	return false
}

// MatchesFreeText reports whether any interest appears, case-insensitively,
// in the vacancy's title, description or requirements.
func MatchesFreeText(interests []string, v data.Vacancy) bool {
	fields := []string{
		strings.ToLower(v.Title),
		strings.ToLower(v.Description),
		strings.ToLower(v.Requirements),
	}
	for _, interest := range interests {
		needle := strings.ToLower(interest)
		if needle == "" {
			continue
		}
		for _, field := range fields {
			if strings.Contains(field, needle) {
				return true
			}
		}
	}
	return false
}

// IsUnseenRelevant applies the strategy list: users with no interests count
// every vacancy; otherwise keyword membership OR free-text scan.
func IsUnseenRelevant(interests []string, v data.Vacancy) bool {
	if len(interests) == 0 {
		return true
	}
	return MatchesKeywordSet(interests, v.Keywords) || MatchesFreeText(interests, v)
}

// CountUnseen counts the vacancies relevant to the interests. Callers pass
// the active vacancies created after the user's last check; counting has no
// side effects and may be repeated freely.
func CountUnseen(interests []string, vacancies []data.Vacancy) int {
	count := 0
	for _, v := range vacancies {
		if IsUnseenRelevant(interests, v) {
			count++
		}
	}
	return count
}

// FilterRelevant returns the vacancies matching the same loose strategies,
// up to limit (0 means no limit). Input order is preserved.
func FilterRelevant(interests []string, vacancies []data.Vacancy, limit int) []data.Vacancy {
	relevant := make([]data.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		if IsUnseenRelevant(interests, v) {
			relevant = append(relevant, v)
			if limit > 0 && len(relevant) == limit {
				break
			}
		}
	}
	return relevant
}

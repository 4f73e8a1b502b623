package relevance

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/jobfinder/api/data"
)

func vacancy(title, description, requirements string, keywords ...string) data.Vacancy {
	return data.Vacancy{
		Title:        title,
		Description:  description,
		Requirements: requirements,
		Keywords:     pq.StringArray(keywords),
	}
}

func TestIsUnseenRelevant_KeywordMembership(t *testing.T) {
	v := vacancy("Engineer", "", "", "React", "Frontend")

	assert.True(t, IsUnseenRelevant([]string{"React"}, v))
	assert.False(t, IsUnseenRelevant([]string{"Java"}, v))
}

func TestIsUnseenRelevant_FreeTextFallback(t *testing.T) {
	// "Golang" was never extracted as a keyword but appears verbatim in the
	// requirements; the fallback scan must still catch it.
	v := vacancy("Engineer", "Backend team", "Experience with Golang required")

	assert.True(t, IsUnseenRelevant([]string{"Golang"}, v))
	assert.True(t, IsUnseenRelevant([]string{"golang"}, v))
	assert.False(t, IsUnseenRelevant([]string{"Rust"}, v))
}

func TestIsUnseenRelevant_NoInterestsMatchesEverything(t *testing.T) {
	assert.True(t, IsUnseenRelevant(nil, vacancy("Anything", "", "")))
	assert.True(t, IsUnseenRelevant([]string{}, vacancy("", "", "")))
}

func TestCountUnseen(t *testing.T) {
	vacancies := []data.Vacancy{
		vacancy("Frontend Developer", "", "", "React", "Frontend"),
		vacancy("Accountant", "", ""),
		vacancy("Dev", "We want React experience", ""),
	}

	assert.Equal(t, 2, CountUnseen([]string{"React"}, vacancies))
	assert.Equal(t, 3, CountUnseen(nil, vacancies))
	assert.Equal(t, 0, CountUnseen([]string{"Java"}, vacancies))
}

func TestCountUnseen_EmptyInput(t *testing.T) {
	// Immediately after mark-checked there are no candidate vacancies.
	assert.Equal(t, 0, CountUnseen([]string{"React"}, nil))
	assert.Equal(t, 0, CountUnseen(nil, nil))
}

func TestFilterRelevant_LimitAndOrder(t *testing.T) {
	vacancies := []data.Vacancy{
		vacancy("First", "", "", "React"),
		vacancy("Second", "", "", "Java"),
		vacancy("Third", "", "", "React"),
		vacancy("Fourth", "", "", "React"),
	}

	relevant := FilterRelevant([]string{"React"}, vacancies, 2)

	assert.Len(t, relevant, 2)
	assert.Equal(t, "First", relevant[0].Title)
	assert.Equal(t, "Third", relevant[1].Title)
}

func TestFilterRelevant_NoLimit(t *testing.T) {
	vacancies := []data.Vacancy{
		vacancy("First", "", "", "React"),
		vacancy("Second", "", "", "React"),
	}

	assert.Len(t, FilterRelevant([]string{"React"}, vacancies, 0), 2)
}

func TestMatchesFreeText_IgnoresEmptyInterest(t *testing.T) {
	v := vacancy("Engineer", "", "")

	assert.False(t, MatchesFreeText([]string{""}, v))
}

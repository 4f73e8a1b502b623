package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchInterests_EmptyInterestsBroadcasts(t *testing.T) {
	match := MatchInterests(nil, []string{"React", "Frontend"})

	assert.False(t, match.IsRelevant)
	assert.Empty(t, match.MatchedInterests)
	assert.True(t, match.ShouldDeliver(nil))
}

func TestMatchInterests_DisjointInterestsNotDelivered(t *testing.T) {
	interests := []string{"Java"}
	match := MatchInterests(interests, []string{"React", "TypeScript", "Frontend"})

	assert.False(t, match.IsRelevant)
	assert.Empty(t, match.MatchedInterests)
	assert.False(t, match.ShouldDeliver(interests))
}

func TestMatchInterests_OverlapIsRelevant(t *testing.T) {
	interests := []string{"React", "Python"}
	match := MatchInterests(interests, []string{"React", "TypeScript", "Frontend"})

	assert.True(t, match.IsRelevant)
	assert.Equal(t, []string{"React"}, match.MatchedInterests)
	assert.True(t, match.ShouldDeliver(interests))
}

func TestMatchInterests_PreservesInterestOrder(t *testing.T) {
	interests := []string{"Python", "Docker", "React"}
	match := MatchInterests(interests, []string{"React", "Frontend", "Python"})

	assert.Equal(t, []string{"Python", "React"}, match.MatchedInterests)
}

func TestMatchInterests_EmptyKeywords(t *testing.T) {
	interests := []string{"React"}
	match := MatchInterests(interests, nil)

	assert.False(t, match.IsRelevant)
	assert.False(t, match.ShouldDeliver(interests))

	// A vacancy with no extracted keywords still reaches interest-less users.
	broadcast := MatchInterests(nil, nil)
	assert.True(t, broadcast.ShouldDeliver(nil))
}

package realtime

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/jobfinder/api/data"
	"github.com/jobfinder/api/models"
)

type fakePusher struct {
	bound     map[uuid.UUID]bool
	attempts  []uuid.UUID
	delivered map[uuid.UUID]NewVacancyEvent
}

func newFakePusher(bound ...uuid.UUID) *fakePusher {
	p := &fakePusher{
		bound:     make(map[uuid.UUID]bool),
		delivered: make(map[uuid.UUID]NewVacancyEvent),
	}
	for _, id := range bound {
		p.bound[id] = true
	}
	return p
}

func (p *fakePusher) Push(userID uuid.UUID, event string, payload any) bool {
	p.attempts = append(p.attempts, userID)
	if !p.bound[userID] {
		return false
	}
	p.delivered[userID] = payload.(NewVacancyEvent)
	return true
}

type fakeUserStore struct {
	users []data.User
	err   error
}

func (s *fakeUserStore) GetUsersByRole(role string) ([]data.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func jobseeker(interests ...string) data.User {
	return data.User{ID: uuid.New(), Role: data.RoleJobseeker, Interests: pq.StringArray(interests)}
}

func TestDispatcher_DeliversToEligibleBoundUsers(t *testing.T) {
	matching := jobseeker("React", "Python")
	disjoint := jobseeker("Java")
	noInterests := jobseeker()
	offline := jobseeker("React")

	store := &fakeUserStore{users: []data.User{matching, disjoint, noInterests, offline}}
	pusher := newFakePusher(matching.ID, disjoint.ID, noInterests.ID)
	d := NewDispatcher(store, pusher, testLogger())

	vacancy := models.Vacancy{
		ID:       1,
		Title:    "Senior Frontend Developer",
		Company:  "Acme",
		Keywords: []string{"React", "TypeScript", "Frontend"},
	}

	err := d.VacancyCreated(vacancy)
	assert.NoError(t, err)

	// Relevant match: delivered, flagged relevant, intersection attached.
	event, ok := pusher.delivered[matching.ID]
	assert.True(t, ok)
	assert.True(t, event.IsRelevant)
	assert.Equal(t, []string{"React"}, event.MatchedInterests)
	assert.Equal(t, "New vacancy: Senior Frontend Developer at Acme", event.Message)
	assert.Equal(t, int64(1), event.Vacancy.ID)

	// No interests: delivered as broadcast, not relevant.
	event, ok = pusher.delivered[noInterests.ID]
	assert.True(t, ok)
	assert.False(t, event.IsRelevant)
	assert.Empty(t, event.MatchedInterests)

	// Disjoint interests: never even attempted.
	assert.NotContains(t, pusher.attempts, disjoint.ID)

	// Eligible but unbound: attempted, silently dropped, no error.
	assert.Contains(t, pusher.attempts, offline.ID)
	_, ok = pusher.delivered[offline.ID]
	assert.False(t, ok)
}

func TestDispatcher_EmptyKeywordsReachOnlyInterestless(t *testing.T) {
	withInterests := jobseeker("React")
	without := jobseeker()

	store := &fakeUserStore{users: []data.User{withInterests, without}}
	pusher := newFakePusher(withInterests.ID, without.ID)
	d := NewDispatcher(store, pusher, testLogger())

	err := d.VacancyCreated(models.Vacancy{ID: 2, Title: "Clerk", Company: "Acme"})
	assert.NoError(t, err)

	assert.NotContains(t, pusher.attempts, withInterests.ID)
	_, ok := pusher.delivered[without.ID]
	assert.True(t, ok)
}

func TestDispatcher_NoJobseekers(t *testing.T) {
	store := &fakeUserStore{}
	pusher := newFakePusher()
	d := NewDispatcher(store, pusher, testLogger())

	err := d.VacancyCreated(models.Vacancy{ID: 3})
	assert.NoError(t, err)
	assert.Empty(t, pusher.attempts)
}

func TestDispatcher_StoreFailure(t *testing.T) {
	store := &fakeUserStore{err: errors.New("db down")}
	pusher := newFakePusher()
	d := NewDispatcher(store, pusher, testLogger())

	err := d.VacancyCreated(models.Vacancy{ID: 4})
	assert.Error(t, err)
	assert.Empty(t, pusher.attempts)
}

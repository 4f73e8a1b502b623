package realtime

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jobfinder/api/data"
	"github.com/jobfinder/api/metrics"
	"github.com/jobfinder/api/models"
	"github.com/jobfinder/api/relevance"
)

// Pusher delivers one event to one user, best effort. Satisfied by *Hub.
type Pusher interface {
	Push(userID uuid.UUID, event string, payload any) bool
}

// JobseekerStore loads the notification audience. Satisfied by *repos.UserRepo.
type JobseekerStore interface {
	GetUsersByRole(role string) ([]data.User, error)
}

// Dispatcher fans out newVacancy notifications. It walks the whole jobseeker
// population per creation, which is fine at the board's size; a future
// indexed rewrite must keep the per-user decision in relevance.MatchInterests
// intact.
type Dispatcher struct {
	users  JobseekerStore
	pusher Pusher
	logger *slog.Logger
}

func NewDispatcher(users JobseekerStore, pusher Pusher, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		users:  users,
		pusher: pusher,
		logger: logger,
	}
}

// VacancyCreated runs after the vacancy is durably stored. Each recipient is
// independent: an offline user or full buffer is skipped silently and no
// recipient can fail the loop for the others. The event is not queued or
// retried; users who miss it discover the vacancy through the unseen count.
func (d *Dispatcher) VacancyCreated(vacancy models.Vacancy) error {
	jobseekers, err := d.users.GetUsersByRole(data.RoleJobseeker)
	if err != nil {
		return errors.Wrap(err, "dispatch vacancy: load jobseekers")
	}

	delivered := 0
	for _, jobseeker := range jobseekers {
		match := relevance.MatchInterests(jobseeker.Interests, vacancy.Keywords)
		if !match.ShouldDeliver(jobseeker.Interests) {
			metrics.NotificationsSkippedTotal.WithLabelValues("not_relevant").Inc()
			continue
		}

		event := NewVacancyEvent{
			Vacancy:          vacancy,
			Message:          fmt.Sprintf("New vacancy: %s at %s", vacancy.Title, vacancy.Company),
			IsRelevant:       match.IsRelevant,
			MatchedInterests: match.MatchedInterests,
		}

		if d.pusher.Push(jobseeker.ID, EventNewVacancy, event) {
			metrics.NotificationsDispatchedTotal.WithLabelValues(strconv.FormatBool(match.IsRelevant)).Inc()
			delivered++
		} else {
			metrics.NotificationsSkippedTotal.WithLabelValues("offline").Inc()
		}
	}

	d.logger.Info("vacancy dispatched",
		"vacancyId", vacancy.ID,
		"keywords", vacancy.Keywords,
		"jobseekers", len(jobseekers),
		"delivered", delivered)

	return nil
}

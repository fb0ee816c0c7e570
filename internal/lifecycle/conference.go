package lifecycle

import (
	"context"
	"time"

	"confportal-backend/internal/models"
)

// ComputeConferenceStatus derives a conference's status from its dates.
// Canceled is sticky: it is an explicit admin action and wins over any
// date-derived value.
func ComputeConferenceStatus(c *models.Conference, now time.Time) string {
	if c.IsCanceled() {
		return models.ConferenceCanceled
	}
	switch {
	case now.Before(c.StartDate):
		return models.ConferenceUpcoming
	case now.After(c.EndDate):
		return models.ConferenceCompleted
	default:
		return models.ConferenceOngoing
	}
}

// AdvanceConferences reconciles every stored conference status with the one
// derived from now. Both updates are conditional on the current stored
// status, so re-running with the same now is a no-op and a partially applied
// run is safe to retry.
func (e *Engine) AdvanceConferences(ctx context.Context, now time.Time) (int64, error) {
	ongoing, err := e.store.MarkConferencesOngoing(ctx, now)
	if err != nil {
		return ongoing, err
	}
	completed, err := e.store.MarkConferencesCompleted(ctx, now)
	if err != nil {
		return ongoing + completed, err
	}
	return ongoing + completed, nil
}

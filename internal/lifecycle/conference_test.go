package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confportal-backend/internal/lifecycle"
	"confportal-backend/internal/models"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeConferenceStatus(t *testing.T) {
	conf := &models.Conference{
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-10"),
		Status:    models.ConferenceUpcoming,
	}

	tests := []struct {
		name   string
		now    string
		status string
		want   string
	}{
		{"before start", "2023-12-31", models.ConferenceUpcoming, models.ConferenceUpcoming},
		{"on start date", "2024-01-01", models.ConferenceUpcoming, models.ConferenceOngoing},
		{"mid window", "2024-01-05", models.ConferenceUpcoming, models.ConferenceOngoing},
		{"on end date", "2024-01-10", models.ConferenceOngoing, models.ConferenceOngoing},
		{"after end", "2024-01-11", models.ConferenceOngoing, models.ConferenceCompleted},
		{"canceled stays canceled in window", "2024-01-05", models.ConferenceCanceled, models.ConferenceCanceled},
		{"canceled stays canceled after end", "2024-02-01", models.ConferenceCanceled, models.ConferenceCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *conf
			c.Status = tt.status
			assert.Equal(t, tt.want, lifecycle.ComputeConferenceStatus(&c, date(tt.now)))
		})
	}
}

func TestAdvanceConferences(t *testing.T) {
	store := newMemStore()
	engine := lifecycle.NewEngine(store)

	active := store.addConference(models.Conference{
		StartDate: date("2024-01-01"), EndDate: date("2024-01-10"),
		SubmissionDeadline: date("2024-01-05"), Status: models.ConferenceUpcoming,
	})
	past := store.addConference(models.Conference{
		StartDate: date("2023-06-01"), EndDate: date("2023-06-05"),
		SubmissionDeadline: date("2023-06-03"), Status: models.ConferenceOngoing,
	})
	future := store.addConference(models.Conference{
		StartDate: date("2025-01-01"), EndDate: date("2025-01-10"),
		SubmissionDeadline: date("2025-01-05"), Status: models.ConferenceUpcoming,
	})
	canceled := store.addConference(models.Conference{
		StartDate: date("2024-01-01"), EndDate: date("2024-01-10"),
		SubmissionDeadline: date("2024-01-05"), Status: models.ConferenceCanceled,
	})

	now := date("2024-01-03")
	changed, err := engine.AdvanceConferences(context.Background(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, changed)

	assert.Equal(t, models.ConferenceOngoing, store.conferences[active].Status)
	assert.Equal(t, models.ConferenceCompleted, store.conferences[past].Status)
	assert.Equal(t, models.ConferenceUpcoming, store.conferences[future].Status)
	assert.Equal(t, models.ConferenceCanceled, store.conferences[canceled].Status)

	// Re-running with the same now changes nothing.
	changed, err = engine.AdvanceConferences(context.Background(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 0, changed)
	assert.Equal(t, models.ConferenceOngoing, store.conferences[active].Status)
	assert.Equal(t, models.ConferenceCanceled, store.conferences[canceled].Status)
}

func TestAdvanceConferencesSurfacesPersistenceFailure(t *testing.T) {
	store := newMemStore()
	store.failWith = &lifecycle.PersistenceError{Op: "mark conferences ongoing", Err: assert.AnError}
	engine := lifecycle.NewEngine(store)

	_, err := engine.AdvanceConferences(context.Background(), date("2024-01-03"))
	var perr *lifecycle.PersistenceError
	require.ErrorAs(t, err, &perr)
}

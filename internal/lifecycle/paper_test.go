package lifecycle_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confportal-backend/internal/lifecycle"
	"confportal-backend/internal/models"
)

func submission(conferenceID, authorID uuid.UUID) lifecycle.SubmitPaperInput {
	return lifecycle.SubmitPaperInput{
		ConferenceID: conferenceID,
		AuthorID:     authorID,
		Title:        "Adaptive Consensus in Partially Synchronous Networks",
		Abstract:     "We study consensus under partial synchrony.",
		Keywords:     []string{"consensus", "distributed systems"},
		Authors:      []string{"A. Author"},
		CategoryID:   uuid.New(),
		FileURL:      "https://storage.example.com/manuscripts/abc.pdf",
	}
}

func ongoingConference(store *memStore) uuid.UUID {
	return store.addConference(models.Conference{
		StartDate: date("2024-01-01"), EndDate: date("2024-01-10"),
		SubmissionDeadline: date("2024-01-05"), Status: models.ConferenceOngoing,
	})
}

func TestSubmitPaperDeadlineGate(t *testing.T) {
	store := newMemStore()
	engine := lifecycle.NewEngine(store)
	confID := ongoingConference(store)
	authorID := uuid.New()

	// On the deadline itself submission is still allowed.
	paper, err := engine.SubmitPaper(context.Background(), date("2024-01-05"), submission(confID, authorID))
	require.NoError(t, err)
	assert.Equal(t, models.PaperDraft, paper.Status)

	// Past the deadline it fails, for drafts and finals alike.
	for _, final := range []bool{false, true} {
		in := submission(confID, authorID)
		in.Final = final
		_, err := engine.SubmitPaper(context.Background(), date("2024-01-06"), in)
		assert.ErrorIs(t, err, lifecycle.ErrDeadlineExceeded)
	}

	// The gate also wins over a stale stored status: a conference past its
	// deadline reports the deadline error even when already completed.
	completed := store.addConference(models.Conference{
		StartDate: date("2023-06-01"), EndDate: date("2023-06-05"),
		SubmissionDeadline: date("2023-06-03"), Status: models.ConferenceCompleted,
	})
	_, err = engine.SubmitPaper(context.Background(), date("2023-07-01"), submission(completed, authorID))
	assert.ErrorIs(t, err, lifecycle.ErrDeadlineExceeded)
}

func TestSubmitPaperConferenceGuards(t *testing.T) {
	store := newMemStore()
	engine := lifecycle.NewEngine(store)
	authorID := uuid.New()

	// Unknown conference.
	_, err := engine.SubmitPaper(context.Background(), date("2024-01-03"), submission(uuid.New(), authorID))
	assert.ErrorIs(t, err, lifecycle.ErrNotFound)

	// Before the start date the conference is not ongoing, even though the
	// stored status might claim otherwise; the derived status decides.
	stale := store.addConference(models.Conference{
		StartDate: date("2024-02-01"), EndDate: date("2024-02-10"),
		SubmissionDeadline: date("2024-02-05"), Status: models.ConferenceOngoing,
	})
	_, err = engine.SubmitPaper(context.Background(), date("2024-01-15"), submission(stale, authorID))
	assert.ErrorIs(t, err, lifecycle.ErrConferenceNotOngoing)

	// Canceled conferences never accept submissions.
	canceled := store.addConference(models.Conference{
		StartDate: date("2024-01-01"), EndDate: date("2024-01-10"),
		SubmissionDeadline: date("2024-01-05"), Status: models.ConferenceCanceled,
	})
	_, err = engine.SubmitPaper(context.Background(), date("2024-01-03"), submission(canceled, authorID))
	assert.ErrorIs(t, err, lifecycle.ErrConferenceNotOngoing)
}

func TestSubmitPaperValidation(t *testing.T) {
	store := newMemStore()
	engine := lifecycle.NewEngine(store)
	confID := ongoingConference(store)
	authorID := uuid.New()
	now := date("2024-01-03")

	tests := []struct {
		name   string
		mutate func(*lifecycle.SubmitPaperInput)
		want   error
	}{
		{"missing title", func(in *lifecycle.SubmitPaperInput) { in.Title = "" }, lifecycle.ErrValidation},
		{"missing keywords", func(in *lifecycle.SubmitPaperInput) { in.Keywords = nil }, lifecycle.ErrValidation},
		{"missing authors", func(in *lifecycle.SubmitPaperInput) { in.Authors = nil }, lifecycle.ErrValidation},
		{"missing category", func(in *lifecycle.SubmitPaperInput) { in.CategoryID = uuid.Nil }, lifecycle.ErrValidation},
		{"missing file", func(in *lifecycle.SubmitPaperInput) { in.FileURL = "" }, lifecycle.ErrMissingFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := submission(confID, authorID)
			tt.mutate(&in)
			_, err := engine.SubmitPaper(context.Background(), now, in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmitPaperFinalFlag(t *testing.T) {
	store := newMemStore()
	engine := lifecycle.NewEngine(store)
	confID := ongoingConference(store)
	now := date("2024-01-03")

	draft, err := engine.SubmitPaper(context.Background(), now, submission(confID, uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, models.PaperDraft, draft.Status)
	assert.False(t, draft.FinalVersion)

	in := submission(confID, uuid.New())
	in.Final = true
	final, err := engine.SubmitPaper(context.Background(), now, in)
	require.NoError(t, err)
	assert.Equal(t, models.PaperSubmitted, final.Status)
	assert.True(t, final.FinalVersion)
}

func TestEditPaperStripsProtectedFields(t *testing.T) {
	store := newMemStore()
	engine := lifecycle.NewEngine(store)
	authorID := uuid.New()
	paperID := store.addPaper(models.Paper{
		Title:  "Original Title",
		UserID: authorID,
		Status: models.PaperDraft,
	})

	updated, err := engine.EditPaper(context.Background(), paperID, authorID, map[string]interface{}{
		"title":  "New Title",
		"status": models.PaperAccepted,
		"user":   uuid.New().String(),
	})
	require.NoError(t, err)

	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, models.PaperDraft, updated.Status)
	assert.Equal(t, authorID, updated.UserID)
}

func TestEditPaperOwnership(t *testing.T) {
	store := newMemStore()
	engine := lifecycle.NewEngine(store)
	paperID := store.addPaper(models.Paper{Title: "Original", UserID: uuid.New()})

	// Someone else's paper and a missing paper are indistinguishable.
	_, err := engine.EditPaper(context.Background(), paperID, uuid.New(), map[string]interface{}{"title": "Hijacked"})
	assert.ErrorIs(t, err, lifecycle.ErrNotFound)

	_, err = engine.EditPaper(context.Background(), uuid.New(), uuid.New(), map[string]interface{}{"title": "Ghost"})
	assert.ErrorIs(t, err, lifecycle.ErrNotFound)
}

func TestEditPaperRejectsEmptyUpdate(t *testing.T) {
	store := newMemStore()
	engine := lifecycle.NewEngine(store)
	authorID := uuid.New()
	paperID := store.addPaper(models.Paper{Title: "Original", UserID: authorID})

	// An update consisting only of protected fields strips down to nothing.
	_, err := engine.EditPaper(context.Background(), paperID, authorID, map[string]interface{}{
		"status": models.PaperAccepted,
	})
	assert.ErrorIs(t, err, lifecycle.ErrValidation)
}

func TestSweepDeadlines(t *testing.T) {
	store := newMemStore()
	engine := lifecycle.NewEngine(store)

	expired := store.addConference(models.Conference{
		StartDate: date("2024-01-01"), EndDate: date("2024-01-10"),
		SubmissionDeadline: date("2024-01-05"), Status: models.ConferenceOngoing,
	})
	open := store.addConference(models.Conference{
		StartDate: date("2024-01-01"), EndDate: date("2024-01-20"),
		SubmissionDeadline: date("2024-01-15"), Status: models.ConferenceOngoing,
	})

	expiredDraft := store.addPaper(models.Paper{ConferenceID: expired, Status: models.PaperDraft})
	expiredSubmitted := store.addPaper(models.Paper{ConferenceID: expired, Status: models.PaperSubmitted})
	openDraft := store.addPaper(models.Paper{ConferenceID: open, Status: models.PaperDraft})

	changed, err := engine.SweepDeadlines(context.Background(), date("2024-01-06"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, changed)

	assert.Equal(t, models.PaperSubmitted, store.papers[expiredDraft].Status)
	assert.Equal(t, models.PaperSubmitted, store.papers[expiredSubmitted].Status)
	assert.Equal(t, models.PaperDraft, store.papers[openDraft].Status)

	// Idempotent.
	changed, err = engine.SweepDeadlines(context.Background(), date("2024-01-06"))
	require.NoError(t, err)
	assert.EqualValues(t, 0, changed)
}

func TestConferenceAndPaperEndToEnd(t *testing.T) {
	store := newMemStore()
	engine := lifecycle.NewEngine(store)
	ctx := context.Background()

	confID := store.addConference(models.Conference{
		StartDate: date("2024-01-01"), EndDate: date("2024-01-10"),
		SubmissionDeadline: date("2024-01-05"), Status: models.ConferenceUpcoming,
	})

	_, err := engine.AdvanceConferences(ctx, date("2024-01-03"))
	require.NoError(t, err)
	require.Equal(t, models.ConferenceOngoing, store.conferences[confID].Status)

	paper, err := engine.SubmitPaper(ctx, date("2024-01-03"), submission(confID, uuid.New()))
	require.NoError(t, err)
	require.Equal(t, models.PaperDraft, paper.Status)

	_, err = engine.SweepDeadlines(ctx, date("2024-01-06"))
	require.NoError(t, err)
	assert.Equal(t, models.PaperSubmitted, store.papers[paper.ID].Status)

	_, err = engine.AdvanceConferences(ctx, date("2024-01-11"))
	require.NoError(t, err)
	assert.Equal(t, models.ConferenceCompleted, store.conferences[confID].Status)
}

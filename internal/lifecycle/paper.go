package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"confportal-backend/internal/models"
)

type SubmitPaperInput struct {
	ConferenceID uuid.UUID
	AuthorID     uuid.UUID
	Title        string
	Abstract     string
	Keywords     []string
	Authors      []string
	CategoryID   uuid.UUID
	FileURL      string
	Final        bool
}

// SubmitPaper creates a paper in a conference. The deadline gate applies
// uniformly to draft and final submissions, and the conference status is
// recomputed as-of now rather than trusted from the stored row, so a stale
// "upcoming" cannot block a submission the calendar already allows.
func (e *Engine) SubmitPaper(ctx context.Context, now time.Time, in SubmitPaperInput) (*models.Paper, error) {
	if in.Title == "" {
		return nil, validationf("title is required")
	}
	if len(in.Keywords) == 0 {
		return nil, validationf("at least one keyword is required")
	}
	if len(in.Authors) == 0 {
		return nil, validationf("at least one author is required")
	}
	if in.CategoryID == uuid.Nil {
		return nil, validationf("category is required")
	}
	if in.FileURL == "" {
		return nil, ErrMissingFile
	}

	conf, err := e.store.GetConference(ctx, in.ConferenceID)
	if err != nil {
		return nil, err
	}
	if now.After(conf.SubmissionDeadline) {
		return nil, ErrDeadlineExceeded
	}
	if ComputeConferenceStatus(conf, now) != models.ConferenceOngoing {
		return nil, ErrConferenceNotOngoing
	}

	status := models.PaperDraft
	if in.Final {
		status = models.PaperSubmitted
	}
	paper := &models.Paper{
		ID:           uuid.New(),
		Title:        in.Title,
		Abstract:     in.Abstract,
		Keywords:     in.Keywords,
		Authors:      in.Authors,
		CategoryID:   in.CategoryID,
		ConferenceID: in.ConferenceID,
		UserID:       in.AuthorID,
		FileURL:      in.FileURL,
		Status:       status,
		FinalVersion: in.Final,
		SubmittedAt:  now,
	}
	if err := e.store.CreatePaper(ctx, paper); err != nil {
		return nil, err
	}
	return paper, nil
}

// EditPaper applies an author's updates to their own paper. The status and
// submitter identity are stripped unconditionally; they can only change
// through the sweep and review paths. A paper that does not exist and a
// paper owned by someone else both come back as ErrNotFound.
func (e *Engine) EditPaper(ctx context.Context, paperID, authorID uuid.UUID, updates map[string]interface{}) (*models.Paper, error) {
	delete(updates, "status")
	delete(updates, "user")
	delete(updates, "user_id")
	if len(updates) == 0 {
		return nil, validationf("no editable fields in update")
	}
	return e.store.UpdatePaperFields(ctx, paperID, authorID, updates)
}

// SweepDeadlines finalizes drafts whose conference submission deadline has
// passed. Idempotent: once every affected draft is submitted, re-running is
// a no-op.
func (e *Engine) SweepDeadlines(ctx context.Context, now time.Time) (int64, error) {
	return e.store.ForceSubmitDrafts(ctx, now)
}

// EnableResubmissions grants the one extra edit+resubmit cycle to papers
// accepted with changes. Idempotent.
func (e *Engine) EnableResubmissions(ctx context.Context) (int64, error) {
	return e.store.EnableResubmissions(ctx)
}

// ApplyReviewOutcome sets a paper's status from a reviewer's recommendation.
// Together with the deadline sweep this is the only way a paper leaves
// submitted/under_review.
func (e *Engine) ApplyReviewOutcome(ctx context.Context, paperID uuid.UUID, recommendation string) error {
	return e.store.SetPaperStatus(ctx, paperID, ResolveRecommendation(recommendation))
}

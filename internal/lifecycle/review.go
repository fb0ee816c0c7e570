package lifecycle

import (
	"context"

	"github.com/google/uuid"

	"confportal-backend/internal/models"
)

// ResolveRecommendation maps a reviewer's recommendation to the paper status
// it produces. Total: anything outside the three known values falls back to
// under_review.
func ResolveRecommendation(recommendation string) string {
	switch recommendation {
	case models.RecommendPublish:
		return models.PaperAccepted
	case models.RecommendReject:
		return models.PaperRejected
	case models.RecommendPublishWithChanges:
		return models.PaperAcceptedWithChanges
	default:
		return models.PaperUnderReview
	}
}

type SubmitReviewInput struct {
	PaperID        uuid.UUID
	ReviewerID     uuid.UUID
	Responses      []models.QuestionResponse
	Comments       string
	Recommendation string
}

// SubmitReview persists a reviewer's evaluation and applies the resulting
// status to the paper. If the status write fails after the review was saved
// the review is kept: the mismatch between a stored review and its paper's
// status is detectable by joining the two collections and is repaired by the
// next successful outcome application, not by rolling back the review.
func (e *Engine) SubmitReview(ctx context.Context, in SubmitReviewInput) (*models.Review, error) {
	if in.PaperID == uuid.Nil {
		return nil, validationf("paper id is required")
	}
	if len(in.Responses) == 0 {
		return nil, validationf("responses are required")
	}
	if in.Recommendation == "" {
		return nil, validationf("recommendation is required")
	}

	review := &models.Review{
		ID:             uuid.New(),
		PaperID:        in.PaperID,
		ReviewerID:     in.ReviewerID,
		Responses:      in.Responses,
		Comments:       in.Comments,
		Recommendation: in.Recommendation,
	}
	if err := e.store.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	if err := e.ApplyReviewOutcome(ctx, in.PaperID, in.Recommendation); err != nil {
		return review, err
	}
	return review, nil
}

// UpdateReview amends an existing review in place. Changing the
// recommendation here does not re-apply the paper outcome; only the initial
// submission moves the paper.
func (e *Engine) UpdateReview(ctx context.Context, reviewID uuid.UUID, upd ReviewUpdate) (*models.Review, error) {
	if upd.Empty() {
		return nil, validationf("at least one of responses, comments or recommendation is required")
	}
	return e.store.UpdateReview(ctx, reviewID, upd)
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Reviewer recommendations. Anything outside this set resolves to
// under_review when the paper outcome is applied.
const (
	RecommendPublish            = "publish"
	RecommendPublishWithChanges = "publish_with_changes"
	RecommendReject             = "reject"
)

// QuestionResponse is one answered questionnaire entry. Answers are kept as
// strings regardless of question type; the question's type drives rendering
// and validation on the frontend.
type QuestionResponse struct {
	QuestionID uuid.UUID `json:"question_id"`
	Answer     string    `json:"answer"`
}

type Review struct {
	ID             uuid.UUID          `json:"id" db:"id"`
	PaperID        uuid.UUID          `json:"paper_id" db:"paper_id"`
	ReviewerID     uuid.UUID          `json:"reviewer_id" db:"reviewer_id"`
	Responses      []QuestionResponse `json:"responses" db:"responses"`
	Comments       string             `json:"comments" db:"comments"`
	Recommendation string             `json:"recommendation" db:"recommendation"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" db:"updated_at"`
}

type CreateReviewRequest struct {
	PaperID        uuid.UUID          `json:"paper_id" binding:"required"`
	Responses      []QuestionResponse `json:"responses" binding:"required"`
	Comments       string             `json:"comments"`
	Recommendation string             `json:"recommendation" binding:"required,oneof=publish publish_with_changes reject"`
}

type UpdateReviewRequest struct {
	Responses      []QuestionResponse `json:"responses"`
	Comments       *string            `json:"comments"`
	Recommendation string             `json:"recommendation" binding:"omitempty,oneof=publish publish_with_changes reject"`
}

type ReviewWithReviewer struct {
	Review
	ReviewerName  string `json:"reviewer_name" db:"reviewer_name"`
	ReviewerEmail string `json:"reviewer_email" db:"reviewer_email"`
	PaperTitle    string `json:"paper_title" db:"paper_title"`
}

func (r *Review) IsPublish() bool {
	return r.Recommendation == RecommendPublish
}

func (r *Review) IsPublishWithChanges() bool {
	return r.Recommendation == RecommendPublishWithChanges
}

func (r *Review) IsReject() bool {
	return r.Recommendation == RecommendReject
}

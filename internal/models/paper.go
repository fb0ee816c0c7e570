package models

import (
	"time"

	"github.com/google/uuid"
)

// Paper statuses. Drafts stay editable until the deadline sweep forces them
// to submitted; the decision statuses are only ever set from a review
// recommendation.
const (
	PaperDraft               = "draft"
	PaperSubmitted           = "submitted"
	PaperUnderReview         = "under_review"
	PaperAccepted            = "accepted"
	PaperAcceptedWithChanges = "accepted_with_changes"
	PaperRejected            = "rejected"
)

type Paper struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	Title               string     `json:"title" db:"title"`
	Abstract            string     `json:"abstract" db:"abstract"`
	Keywords            []string   `json:"keywords" db:"keywords"`
	Authors             []string   `json:"authors" db:"authors"`
	CategoryID          uuid.UUID  `json:"category_id" db:"category_id"`
	ConferenceID        uuid.UUID  `json:"conference_id" db:"conference_id"`
	UserID              uuid.UUID  `json:"user_id" db:"user_id"`
	ReviewerID          *uuid.UUID `json:"reviewer_id" db:"reviewer_id"`
	FileURL             string     `json:"file_url" db:"file_url"`
	Status              string     `json:"status" db:"status"`
	FinalVersion        bool       `json:"final_version" db:"final_version"`
	ResubmissionAllowed bool       `json:"resubmission_allowed" db:"resubmission_allowed"`
	SubmittedAt         time.Time  `json:"submitted_at" db:"submitted_at"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

type AssignReviewerRequest struct {
	ReviewerID uuid.UUID `json:"reviewer_id" binding:"required"`
}

type PaperWithAuthor struct {
	Paper
	AuthorName  string `json:"author_name" db:"author_name"`
	AuthorEmail string `json:"author_email" db:"author_email"`
}

type PaperWithReviews struct {
	PaperWithAuthor
	Reviews []Review `json:"reviews,omitempty"`
}

func (p *Paper) IsDraft() bool {
	return p.Status == PaperDraft
}

func (p *Paper) IsSubmitted() bool {
	return p.Status == PaperSubmitted
}

func (p *Paper) IsUnderReview() bool {
	return p.Status == PaperUnderReview
}

func (p *Paper) IsAccepted() bool {
	return p.Status == PaperAccepted
}

func (p *Paper) IsAcceptedWithChanges() bool {
	return p.Status == PaperAcceptedWithChanges
}

func (p *Paper) IsRejected() bool {
	return p.Status == PaperRejected
}

func (p *Paper) CanEdit() bool {
	return p.IsDraft()
}

func (p *Paper) CanReview() bool {
	return p.IsSubmitted() || p.IsUnderReview()
}

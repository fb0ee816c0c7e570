package models

import (
	"time"

	"github.com/google/uuid"
)

// Conference statuses. Canceled is only ever set by an admin and is never
// overwritten by the time-driven sweep.
const (
	ConferenceUpcoming  = "upcoming"
	ConferenceOngoing   = "ongoing"
	ConferenceCompleted = "completed"
	ConferenceCanceled  = "canceled"
)

type Conference struct {
	ID                 uuid.UUID   `json:"id" db:"id"`
	Year               int         `json:"year" db:"year"`
	Location           string      `json:"location" db:"location"`
	University         string      `json:"university" db:"university"`
	StartDate          time.Time   `json:"start_date" db:"start_date"`
	EndDate            time.Time   `json:"end_date" db:"end_date"`
	SubmissionDeadline time.Time   `json:"submission_deadline" db:"submission_deadline"`
	ReviewDeadline     *time.Time  `json:"review_deadline" db:"review_deadline"`
	Status             string      `json:"status" db:"status"`
	CreatedBy          uuid.UUID   `json:"created_by" db:"created_by"`
	CategoryIDs        []uuid.UUID `json:"category_ids" db:"-"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`
}

type CreateConferenceRequest struct {
	Year               int         `json:"year" binding:"required"`
	Location           string      `json:"location" binding:"required,max=255"`
	University         string      `json:"university" binding:"required,max=255"`
	StartDate          time.Time   `json:"start_date" binding:"required"`
	EndDate            time.Time   `json:"end_date" binding:"required"`
	SubmissionDeadline time.Time   `json:"submission_deadline" binding:"required"`
	ReviewDeadline     *time.Time  `json:"review_deadline"`
	CategoryIDs        []uuid.UUID `json:"category_ids"`
}

type UpdateConferenceRequest struct {
	Location           string      `json:"location" binding:"required,max=255"`
	University         string      `json:"university" binding:"required,max=255"`
	StartDate          time.Time   `json:"start_date" binding:"required"`
	EndDate            time.Time   `json:"end_date" binding:"required"`
	SubmissionDeadline time.Time   `json:"submission_deadline" binding:"required"`
	ReviewDeadline     *time.Time  `json:"review_deadline"`
	CategoryIDs        []uuid.UUID `json:"category_ids"`
}

type ConferenceWithCreator struct {
	Conference
	CreatorName  string `json:"creator_name" db:"creator_name"`
	CreatorEmail string `json:"creator_email" db:"creator_email"`
}

func (c *Conference) IsUpcoming() bool {
	return c.Status == ConferenceUpcoming
}

func (c *Conference) IsOngoing() bool {
	return c.Status == ConferenceOngoing
}

func (c *Conference) IsCompleted() bool {
	return c.Status == ConferenceCompleted
}

func (c *Conference) IsCanceled() bool {
	return c.Status == ConferenceCanceled
}

func (c *Conference) SubmissionOpen(now time.Time) bool {
	return c.IsOngoing() && !now.After(c.SubmissionDeadline)
}

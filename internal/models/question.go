package models

import (
	"time"

	"github.com/google/uuid"
)

// Question types for the review questionnaire.
const (
	QuestionRating = "rating"
	QuestionYesNo  = "yes_no"
	QuestionText   = "text"
)

type Question struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Type      string    `json:"type" db:"type"`
	Min       *int      `json:"min" db:"min"`
	Max       *int      `json:"max" db:"max"`
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateQuestionRequest struct {
	Text     string `json:"text" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=rating yes_no text"`
	Min      *int   `json:"min"`
	Max      *int   `json:"max"`
	Category string `json:"category"`
}

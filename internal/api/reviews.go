package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"confportal-backend/internal/lifecycle"
	"confportal-backend/internal/models"
)

// Review Handlers
func (s *Server) CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	review, err := s.engine.SubmitReview(c.Request.Context(), lifecycle.SubmitReviewInput{
		PaperID:        req.PaperID,
		ReviewerID:     reviewerID,
		Responses:      req.Responses,
		Comments:       req.Comments,
		Recommendation: req.Recommendation,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// Notify the author; delivery failures never affect the review result.
	s.notifyDecision(c, req.PaperID)

	c.JSON(http.StatusCreated, review)
}

func (s *Server) UpdateReview(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Reviewers may only amend their own reviews; admins may amend any.
	// Both failure modes read as not-found.
	if currentRole(c) != "admin" {
		var owner uuid.UUID
		err := s.db.Pool.QueryRow(c.Request.Context(),
			`SELECT reviewer_id FROM reviews WHERE id = $1`, reviewID).Scan(&owner)
		if err != nil || owner != reviewerID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
	}

	upd := lifecycle.ReviewUpdate{
		Responses: req.Responses,
		Comments:  req.Comments,
	}
	if req.Recommendation != "" {
		upd.Recommendation = &req.Recommendation
	}

	review, err := s.engine.UpdateReview(c.Request.Context(), reviewID, upd)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (s *Server) GetReviews(c *gin.Context) {
	ctx := c.Request.Context()

	paperID := c.Query("paper_id")
	query := `
		SELECT r.id, r.paper_id, r.reviewer_id, r.responses, r.comments, r.recommendation,
		       r.created_at, r.updated_at,
		       reviewer.name as reviewer_name, reviewer.email as reviewer_email,
		       p.title as paper_title
		FROM reviews r
		LEFT JOIN users reviewer ON r.reviewer_id = reviewer.id
		LEFT JOIN papers p ON r.paper_id = p.id
	`
	var args []interface{}
	if paperID != "" {
		query += ` WHERE r.paper_id = $1`
		args = append(args, paperID)
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	defer rows.Close()

	var reviews []models.ReviewWithReviewer
	for rows.Next() {
		var review models.ReviewWithReviewer
		err := rows.Scan(
			&review.ID, &review.PaperID, &review.ReviewerID, &review.Responses, &review.Comments,
			&review.Recommendation, &review.CreatedAt, &review.UpdatedAt,
			&review.ReviewerName, &review.ReviewerEmail, &review.PaperTitle,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan review"})
			return
		}
		reviews = append(reviews, review)
	}

	c.JSON(http.StatusOK, reviews)
}

// notifyDecision tells a paper's author that a decision was recorded.
func (s *Server) notifyDecision(c *gin.Context, paperID uuid.UUID) {
	ctx := c.Request.Context()

	var authorID uuid.UUID
	var authorEmail, paperTitle, status string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT u.id, u.email, p.title, p.status
		FROM papers p
		JOIN users u ON p.user_id = u.id
		WHERE p.id = $1
	`, paperID).Scan(&authorID, &authorEmail, &paperTitle, &status)
	if err != nil {
		log.Printf("failed to load author for decision notice: %v", err)
		return
	}

	s.notify(authorID, &paperID, fmt.Sprintf("A decision has been recorded for %q: %s", paperTitle, status))
	go func() {
		if err := s.email.SendDecisionNotice(authorEmail, paperTitle, status); err != nil {
			log.Printf("failed to email author %s: %v", authorEmail, err)
		}
	}()
}

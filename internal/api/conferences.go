package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"confportal-backend/internal/lifecycle"
	"confportal-backend/internal/models"
)

const minConferenceYear = 2010

// Conference Handlers
func (s *Server) ListConferences(c *gin.Context) {
	ctx := c.Request.Context()

	// Reconcile statuses before serving the list so clients never see a
	// conference the calendar has already moved on from.
	if _, err := s.engine.AdvanceConferences(ctx, time.Now()); err != nil {
		log.Printf("pre-read conference advance failed: %v", err)
	}

	query := `
		SELECT co.id, co.year, co.location, co.university, co.start_date, co.end_date,
		       co.submission_deadline, co.review_deadline, co.status, co.created_by,
		       co.created_at, co.updated_at,
		       COALESCE(array_agg(cc.category_id) FILTER (WHERE cc.category_id IS NOT NULL), '{}') AS category_ids,
		       u.name as creator_name, u.email as creator_email
		FROM conferences co
		LEFT JOIN conference_categories cc ON cc.conference_id = co.id
		LEFT JOIN users u ON co.created_by = u.id
		GROUP BY co.id, u.name, u.email
		ORDER BY co.start_date DESC
	`

	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conferences"})
		return
	}
	defer rows.Close()

	var conferences []models.ConferenceWithCreator
	for rows.Next() {
		var conf models.ConferenceWithCreator
		err := rows.Scan(
			&conf.ID, &conf.Year, &conf.Location, &conf.University, &conf.StartDate, &conf.EndDate,
			&conf.SubmissionDeadline, &conf.ReviewDeadline, &conf.Status, &conf.CreatedBy,
			&conf.CreatedAt, &conf.UpdatedAt, &conf.CategoryIDs, &conf.CreatorName, &conf.CreatorEmail,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan conference"})
			return
		}
		conferences = append(conferences, conf)
	}

	c.JSON(http.StatusOK, conferences)
}

func (s *Server) GetConference(c *gin.Context) {
	conferenceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conference ID"})
		return
	}

	ctx := c.Request.Context()
	query := `
		SELECT co.id, co.year, co.location, co.university, co.start_date, co.end_date,
		       co.submission_deadline, co.review_deadline, co.status, co.created_by,
		       co.created_at, co.updated_at,
		       COALESCE(array_agg(cc.category_id) FILTER (WHERE cc.category_id IS NOT NULL), '{}') AS category_ids
		FROM conferences co
		LEFT JOIN conference_categories cc ON cc.conference_id = co.id
		WHERE co.id = $1
		GROUP BY co.id
	`

	var conf models.Conference
	err = s.db.Pool.QueryRow(ctx, query, conferenceID).Scan(
		&conf.ID, &conf.Year, &conf.Location, &conf.University, &conf.StartDate, &conf.EndDate,
		&conf.SubmissionDeadline, &conf.ReviewDeadline, &conf.Status, &conf.CreatedBy,
		&conf.CreatedAt, &conf.UpdatedAt, &conf.CategoryIDs,
	)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conference not found"})
		return
	}

	c.JSON(http.StatusOK, conf)
}

func (s *Server) CreateConference(c *gin.Context) {
	var req models.CreateConferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	if req.Year < minConferenceYear || req.Year > now.Year()+5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Year must be between %d and %d", minConferenceYear, now.Year()+5)})
		return
	}
	if req.EndDate.Before(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must not precede start date"})
		return
	}

	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	conf := models.Conference{
		Year:               req.Year,
		Location:           req.Location,
		University:         req.University,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		SubmissionDeadline: req.SubmissionDeadline,
		ReviewDeadline:     req.ReviewDeadline,
		CreatedBy:          adminID,
		CategoryIDs:        req.CategoryIDs,
	}
	conf.Status = lifecycle.ComputeConferenceStatus(&conf, now)

	ctx := c.Request.Context()
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conference"})
		return
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO conferences (year, location, university, start_date, end_date,
		                         submission_deadline, review_deadline, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		conf.Year, conf.Location, conf.University, conf.StartDate, conf.EndDate,
		conf.SubmissionDeadline, conf.ReviewDeadline, conf.Status, conf.CreatedBy,
	).Scan(&conf.ID, &conf.CreatedAt, &conf.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conference"})
		return
	}

	for _, categoryID := range conf.CategoryIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO conference_categories (conference_id, category_id) VALUES ($1, $2)`,
			conf.ID, categoryID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conference"})
		return
	}

	c.JSON(http.StatusCreated, conf)
}

func (s *Server) UpdateConference(c *gin.Context) {
	conferenceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conference ID"})
		return
	}

	var req models.UpdateConferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.EndDate.Before(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must not precede start date"})
		return
	}

	ctx := c.Request.Context()
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update conference"})
		return
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE conferences
		SET location = $1, university = $2, start_date = $3, end_date = $4,
		    submission_deadline = $5, review_deadline = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id, year, location, university, start_date, end_date,
		          submission_deadline, review_deadline, status, created_by, created_at, updated_at
	`

	var conf models.Conference
	err = tx.QueryRow(ctx, query,
		req.Location, req.University, req.StartDate, req.EndDate,
		req.SubmissionDeadline, req.ReviewDeadline, conferenceID,
	).Scan(
		&conf.ID, &conf.Year, &conf.Location, &conf.University, &conf.StartDate, &conf.EndDate,
		&conf.SubmissionDeadline, &conf.ReviewDeadline, &conf.Status, &conf.CreatedBy,
		&conf.CreatedAt, &conf.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conference not found"})
		return
	}

	if req.CategoryIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM conference_categories WHERE conference_id = $1`, conf.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update conference"})
			return
		}
		for _, categoryID := range req.CategoryIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO conference_categories (conference_id, category_id) VALUES ($1, $2)`,
				conf.ID, categoryID); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
				return
			}
		}
		conf.CategoryIDs = req.CategoryIDs
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update conference"})
		return
	}

	c.JSON(http.StatusOK, conf)
}

// CancelConference is the only way into the canceled status. Once set, the
// lifecycle sweep leaves the conference alone for good.
func (s *Server) CancelConference(c *gin.Context) {
	conferenceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conference ID"})
		return
	}

	ctx := c.Request.Context()
	query := `
		UPDATE conferences
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := s.db.Pool.Exec(ctx, query, models.ConferenceCanceled, conferenceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel conference"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conference not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conference canceled"})
}

package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"confportal-backend/internal/lifecycle"
	"confportal-backend/internal/models"
)

// Manuscript upload limits, matching what the storage bucket accepts.
const maxManuscriptSize = 10 * 1024 * 1024 // 10MB

var allowedManuscriptTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// SubmitPaper handles the multipart submission form: it uploads the
// manuscript, then hands the metadata and the opaque file URL to the
// lifecycle engine, which owns every submission rule (conference ongoing,
// deadline, required fields).
func (s *Server) SubmitPaper(c *gin.Context) {
	authorID, ok := currentUserID(c)
	if !ok {
		return
	}

	conferenceID, err := uuid.Parse(c.PostForm("conference_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conference ID"})
		return
	}
	categoryID, err := uuid.Parse(c.PostForm("category_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, lifecycle.ErrMissingFile)
		return
	}
	defer file.Close()

	if header.Size > maxManuscriptSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !allowedManuscriptTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File type not allowed: %s", contentType)})
		return
	}

	fileURL, err := s.storage.UploadManuscript(file, header)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload manuscript"})
		return
	}

	paper, err := s.engine.SubmitPaper(c.Request.Context(), time.Now(), lifecycle.SubmitPaperInput{
		ConferenceID: conferenceID,
		AuthorID:     authorID,
		Title:        c.PostForm("title"),
		Abstract:     c.PostForm("abstract"),
		Keywords:     splitFormList(c.PostForm("keywords")),
		Authors:      splitFormList(c.PostForm("authors")),
		CategoryID:   categoryID,
		FileURL:      fileURL,
		Final:        c.PostForm("final") == "true",
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, paper)
}

// UpdatePaper applies an author's edit. The payload is taken as a raw field
// map so that status or submitter fields sent by a misbehaving client are
// stripped by the engine instead of rejected wholesale.
func (s *Server) UpdatePaper(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	authorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paper, err := s.engine.EditPaper(c.Request.Context(), paperID, authorID, updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, paper)
}

// GetPapers lists papers scoped by role: authors see their own submissions,
// reviewers their assignments, admins everything.
func (s *Server) GetPapers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := `
		SELECT p.id, p.title, p.abstract, p.keywords, p.authors, p.category_id, p.conference_id,
		       p.user_id, p.reviewer_id, p.file_url, p.status, p.final_version,
		       p.resubmission_allowed, p.submitted_at, p.created_at, p.updated_at,
		       u.name as author_name, u.email as author_email
		FROM papers p
		LEFT JOIN users u ON p.user_id = u.id
	`
	var args []interface{}
	switch currentRole(c) {
	case "author":
		query += ` WHERE p.user_id = $1`
		args = append(args, userID)
	case "reviewer":
		query += ` WHERE p.reviewer_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := s.db.Pool.Query(c.Request.Context(), query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
		return
	}
	defer rows.Close()

	var papers []models.PaperWithAuthor
	for rows.Next() {
		var paper models.PaperWithAuthor
		err := rows.Scan(
			&paper.ID, &paper.Title, &paper.Abstract, &paper.Keywords, &paper.Authors,
			&paper.CategoryID, &paper.ConferenceID, &paper.UserID, &paper.ReviewerID,
			&paper.FileURL, &paper.Status, &paper.FinalVersion, &paper.ResubmissionAllowed,
			&paper.SubmittedAt, &paper.CreatedAt, &paper.UpdatedAt,
			&paper.AuthorName, &paper.AuthorEmail,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan paper"})
			return
		}
		papers = append(papers, paper)
	}

	c.JSON(http.StatusOK, papers)
}

func (s *Server) GetPaper(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	query := `
		SELECT p.id, p.title, p.abstract, p.keywords, p.authors, p.category_id, p.conference_id,
		       p.user_id, p.reviewer_id, p.file_url, p.status, p.final_version,
		       p.resubmission_allowed, p.submitted_at, p.created_at, p.updated_at,
		       u.name as author_name, u.email as author_email
		FROM papers p
		LEFT JOIN users u ON p.user_id = u.id
		WHERE p.id = $1
	`

	var paper models.PaperWithAuthor
	err = s.db.Pool.QueryRow(ctx, query, paperID).Scan(
		&paper.ID, &paper.Title, &paper.Abstract, &paper.Keywords, &paper.Authors,
		&paper.CategoryID, &paper.ConferenceID, &paper.UserID, &paper.ReviewerID,
		&paper.FileURL, &paper.Status, &paper.FinalVersion, &paper.ResubmissionAllowed,
		&paper.SubmittedAt, &paper.CreatedAt, &paper.UpdatedAt,
		&paper.AuthorName, &paper.AuthorEmail,
	)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}

	// Owners, the assigned reviewer and admins may read a paper; everyone
	// else gets the same not-found reply as a missing id.
	role := currentRole(c)
	isReviewer := paper.ReviewerID != nil && *paper.ReviewerID == userID
	if role != "admin" && paper.UserID != userID && !isReviewer {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}

	c.JSON(http.StatusOK, paper)
}

// AssignReviewer links a reviewer to a paper. Assignment alone never touches
// the paper status; only a submitted review does that.
func (s *Server) AssignReviewer(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	var req models.AssignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var reviewerEmail, reviewerName string
	err = s.db.Pool.QueryRow(ctx,
		`SELECT email, name FROM users WHERE id = $1 AND role = 'reviewer'`,
		req.ReviewerID,
	).Scan(&reviewerEmail, &reviewerName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reviewer not found"})
		return
	}

	query := `
		UPDATE papers
		SET reviewer_id = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING title
	`

	var paperTitle string
	if err := s.db.Pool.QueryRow(ctx, query, req.ReviewerID, paperID).Scan(&paperTitle); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}

	s.notify(req.ReviewerID, &paperID, fmt.Sprintf("You have been assigned to review %q", paperTitle))
	go func() {
		if err := s.email.SendReviewAssignment(reviewerEmail, paperTitle); err != nil {
			log.Printf("failed to email reviewer %s: %v", reviewerEmail, err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Reviewer assigned"})
}

func splitFormList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

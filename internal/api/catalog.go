package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confportal-backend/internal/models"
)

// Category Handlers
func (s *Server) GetCategories(c *gin.Context) {
	rows, err := s.db.Pool.Query(c.Request.Context(),
		`SELECT id, name, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan category"})
			return
		}
		categories = append(categories, category)
	}

	c.JSON(http.StatusOK, categories)
}

func (s *Server) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.Category
	err := s.db.Pool.QueryRow(c.Request.Context(),
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name, created_at`,
		req.Name,
	).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Question Handlers
func (s *Server) GetQuestions(c *gin.Context) {
	rows, err := s.db.Pool.Query(c.Request.Context(),
		`SELECT id, text, type, min, max, category, created_at FROM questions ORDER BY created_at ASC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var question models.Question
		err := rows.Scan(&question.ID, &question.Text, &question.Type,
			&question.Min, &question.Max, &question.Category, &question.CreatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan question"})
			return
		}
		questions = append(questions, question)
	}

	c.JSON(http.StatusOK, questions)
}

func (s *Server) CreateQuestion(c *gin.Context) {
	var req models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type == models.QuestionRating && (req.Min == nil || req.Max == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating questions require min and max"})
		return
	}

	var question models.Question
	err := s.db.Pool.QueryRow(c.Request.Context(), `
		INSERT INTO questions (text, type, min, max, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, text, type, min, max, category, created_at
	`, req.Text, req.Type, req.Min, req.Max, req.Category).Scan(
		&question.ID, &question.Text, &question.Type,
		&question.Min, &question.Max, &question.Category, &question.CreatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusCreated, question)
}

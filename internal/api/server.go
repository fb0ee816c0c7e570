package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"confportal-backend/internal/auth"
	"confportal-backend/internal/config"
	"confportal-backend/internal/database"
	"confportal-backend/internal/email"
	"confportal-backend/internal/lifecycle"
	"confportal-backend/internal/storage"
)

type Server struct {
	db         *database.Database
	engine     *lifecycle.Engine
	jwtManager *auth.JWTManager
	email      *email.EmailSender
	storage    *storage.SupabaseStorage
	config     *config.Config
}

func NewServer(db *database.Database, engine *lifecycle.Engine, store *storage.SupabaseStorage, cfg *config.Config) *Server {
	return &Server{
		db:         db,
		engine:     engine,
		jwtManager: auth.NewJWTManager(cfg),
		email:      email.NewEmailSender(cfg),
		storage:    store,
		config:     cfg,
	}
}

// currentUserID reads the authenticated user id the auth middleware stored
// on the context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(value.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return uuid.Nil, false
	}
	return id, true
}

func currentRole(c *gin.Context) string {
	value, exists := c.Get("role")
	if !exists {
		return ""
	}
	return value.(string)
}

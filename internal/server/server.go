package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban/internal/auth"
	"kanban/internal/board"
)

// Server provides HTTP handlers for the kanban board backend.
type Server struct {
	engine    *gin.Engine
	sessions  *auth.Service
	boards    *board.Service
	logger    *slog.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(sessions *auth.Service, boards *board.Service, logger *slog.Logger, staticDir string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api"))

	srv := &Server{
		engine:    router,
		sessions:  sessions,
		boards:    boards,
		logger:    logger,
		staticDir: staticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", s.handleSignup)
			authGroup.POST("/login", s.handleLogin)
			authGroup.POST("/logout", s.handleLogout)
			authGroup.POST("/verify-email", s.handleVerifyEmail)
			authGroup.POST("/password-reset", s.handlePasswordReset)
			authGroup.GET("/session", s.handleSession)
		}

		boards := api.Group("/boards")
		{
			boards.GET("", s.handleListBoards)
			boards.POST("", s.handleCreateBoard)
			boards.GET(":id", s.handleGetBoard)
			boards.DELETE(":id", s.handleDeleteBoard)
			boards.GET(":id/tasks", s.handleListTasks)
			boards.POST(":id/tasks", s.handleCreateTask)
			boards.GET(":id/progress", s.handleBoardProgress)
			boards.POST(":id/invitations", s.handleInvite)
		}

		invitations := api.Group("/invitations")
		{
			invitations.GET("", s.handleListInvitations)
			invitations.POST(":id/accept", s.handleAcceptInvitation)
			invitations.POST(":id/reject", s.handleRejectInvitation)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET(":id", s.handleGetTask)
			tasks.PUT(":id", s.handleUpdateTask)
			tasks.DELETE(":id", s.handleDeleteTask)
			tasks.PUT(":id/move", s.handleMoveTask)
			tasks.POST(":id/comments", s.handleAddComment)
		}
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrValidation),
		errors.Is(err, board.ErrEmptyName),
		errors.Is(err, board.ErrEmptyTitle):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, board.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrUnverifiedEmail),
		errors.Is(err, board.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, board.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err != nil {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondDomainError picks the status from the error itself.
func (s *Server) respondDomainError(c *gin.Context, err error) {
	s.respondError(c, statusFor(err), err)
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban/internal/models"
)

type boardRequest struct {
	Name string `json:"name"`
}

type inviteRequest struct {
	Email string `json:"email"`
}

// visibleBoard looks up a board and hides it from non-collaborators.
func (s *Server) visibleBoard(c *gin.Context, session models.Session) (models.Board, bool) {
	b, ok := s.boards.BoardByID(c.Param("id"))
	if !ok || !b.HasCollaborator(session.Email) {
		c.JSON(http.StatusNotFound, gin.H{"error": "board not found"})
		return models.Board{}, false
	}
	return b, true
}

// handleListBoards returns the boards the current user owns or
// collaborates on.
func (s *Server) handleListBoards(c *gin.Context) {
	session, ok := s.currentSession(c)
	if !ok {
		return
	}
	boards := s.boards.BoardsForUser(session.Email)
	if boards == nil {
		boards = []models.Board{}
	}
	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

// handleCreateBoard creates a board owned by the current user.
func (s *Server) handleCreateBoard(c *gin.Context) {
	if _, ok := s.currentSession(c); !ok {
		return
	}
	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	b, err := s.boards.CreateBoard(req.Name)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"board": b})
}

// handleGetBoard fetches a single board.
func (s *Server) handleGetBoard(c *gin.Context) {
	session, ok := s.currentSession(c)
	if !ok {
		return
	}
	b, ok := s.visibleBoard(c, session)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": b})
}

// handleDeleteBoard removes a board and all its tasks. Only the owner
// may delete.
func (s *Server) handleDeleteBoard(c *gin.Context) {
	if _, ok := s.currentSession(c); !ok {
		return
	}
	if err := s.boards.DeleteBoard(c.Param("id")); err != nil {
		s.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// handleBoardProgress returns per-column and per-deadline-class counts
// for the charts.
func (s *Server) handleBoardProgress(c *gin.Context) {
	session, ok := s.currentSession(c)
	if !ok {
		return
	}
	b, ok := s.visibleBoard(c, session)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": s.boards.BoardProgress(b.ID)})
}

// handleInvite starts the collaboration handshake for a board.
func (s *Server) handleInvite(c *gin.Context) {
	session, ok := s.currentSession(c)
	if !ok {
		return
	}
	b, ok := s.visibleBoard(c, session)
	if !ok {
		return
	}
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	invitation, err := s.boards.AddCollaborator(b.ID, req.Email)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"invitation": invitation})
}

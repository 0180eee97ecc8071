package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban/internal/models"
)

// handleListInvitations returns the current user's pending invitations.
func (s *Server) handleListInvitations(c *gin.Context) {
	session, ok := s.currentSession(c)
	if !ok {
		return
	}
	pending := s.boards.PendingInvitationsFor(session.Email)
	if pending == nil {
		pending = []models.Invitation{}
	}
	c.JSON(http.StatusOK, gin.H{"invitations": pending})
}

// handleAcceptInvitation resolves an invitation and joins the board.
// Resolving an unknown or already handled invitation changes nothing.
func (s *Server) handleAcceptInvitation(c *gin.Context) {
	if _, ok := s.currentSession(c); !ok {
		return
	}
	if err := s.boards.Accept(c.Param("id")); err != nil {
		s.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

// handleRejectInvitation declines an invitation.
func (s *Server) handleRejectInvitation(c *gin.Context) {
	if _, ok := s.currentSession(c); !ok {
		return
	}
	if err := s.boards.Reject(c.Param("id")); err != nil {
		s.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban/internal/models"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// currentSession fetches the active identity or answers 401.
func (s *Server) currentSession(c *gin.Context) (models.Session, bool) {
	session, ok := s.sessions.Current()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in first"})
		return models.Session{}, false
	}
	return session, true
}

// handleSignup registers an account; the user still has to verify
// their email and log in afterwards.
func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.sessions.Signup(req.Name, req.Email, req.Password); err != nil {
		s.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "pending verification"})
}

// handleLogin activates a session for valid, verified credentials.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	session, err := s.sessions.Login(req.Email, req.Password)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// handleLogout clears the active session.
func (s *Server) handleLogout(c *gin.Context) {
	if err := s.sessions.Logout(); err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

// handleVerifyEmail completes the pending email verification, if any.
func (s *Server) handleVerifyEmail(c *gin.Context) {
	if err := s.sessions.VerifyEmail(); err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "verified"})
}

// handlePasswordReset records a reset request. The response does not
// reveal whether the email was valid.
func (s *Server) handlePasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.sessions.RequestPasswordReset(req.Email); err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "requested"})
}

// handleSession returns the active session.
func (s *Server) handleSession(c *gin.Context) {
	session, ok := s.currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

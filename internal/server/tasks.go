package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kanban/internal/board"
	"kanban/internal/deadline"
	"kanban/internal/models"
)

type taskRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Priority    *string       `json:"priority"`
	Status      *string       `json:"status"`
	Tags        *[]models.Tag `json:"tags"`
	AssignedTo  *string       `json:"assignedTo"`
	Deadline    *time.Time    `json:"deadline"`
}

type moveRequest struct {
	Status string `json:"status"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// taskResponse decorates a task with its deadline class, computed
// fresh on every request.
type taskResponse struct {
	models.Task
	DeadlineStatus deadline.Class `json:"deadlineStatus"`
}

func renderTask(t models.Task, now time.Time) taskResponse {
	return taskResponse{Task: t, DeadlineStatus: deadline.Classify(t, now)}
}

// handleListTasks fetches tasks for a board.
func (s *Server) handleListTasks(c *gin.Context) {
	session, ok := s.currentSession(c)
	if !ok {
		return
	}
	b, ok := s.visibleBoard(c, session)
	if !ok {
		return
	}

	now := time.Now()
	tasks := []taskResponse{}
	for _, t := range s.boards.TasksByBoard(b.ID) {
		tasks = append(tasks, renderTask(t, now))
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// handleCreateTask inserts a new task into a board's todo column.
func (s *Server) handleCreateTask(c *gin.Context) {
	session, ok := s.currentSession(c)
	if !ok {
		return
	}
	b, ok := s.visibleBoard(c, session)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	task, err := s.boards.CreateTask(b.ID, getString(req.Title), getString(req.Description),
		models.Priority(getString(req.Priority)), getTags(req.Tags))
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": renderTask(task, time.Now())})
}

// handleGetTask retrieves a task by id.
func (s *Server) handleGetTask(c *gin.Context) {
	if _, ok := s.currentSession(c); !ok {
		return
	}
	task, ok := s.boards.TaskByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": renderTask(task, time.Now())})
}

// handleUpdateTask applies a partial update to a task.
func (s *Server) handleUpdateTask(c *gin.Context) {
	if _, ok := s.currentSession(c); !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	patch := board.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		AssignedTo:  req.AssignedTo,
		Deadline:    req.Deadline,
	}
	if req.Priority != nil {
		p := models.Priority(*req.Priority)
		patch.Priority = &p
	}
	if req.Status != nil {
		st := models.Status(*req.Status)
		patch.Status = &st
	}

	task, found, err := s.boards.UpdateTask(c.Param("id"), patch)
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": renderTask(task, time.Now())})
}

// handleMoveTask changes the column a task sits in.
func (s *Server) handleMoveTask(c *gin.Context) {
	if _, ok := s.currentSession(c); !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	task, found, err := s.boards.MoveTask(c.Param("id"), models.Status(req.Status))
	if err != nil {
		s.respondDomainError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": renderTask(task, time.Now())})
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	if _, ok := s.currentSession(c); !ok {
		return
	}
	if err := s.boards.DeleteTask(c.Param("id")); err != nil {
		s.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// handleAddComment appends a comment authored by the current user.
func (s *Server) handleAddComment(c *gin.Context) {
	if _, ok := s.currentSession(c); !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.boards.AddComment(c.Param("id"), req.Text); err != nil {
		s.respondDomainError(c, err)
		return
	}

	task, ok := s.boards.TaskByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": renderTask(task, time.Now())})
}

func getString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func getTags(v *[]models.Tag) []models.Tag {
	if v == nil {
		return nil
	}
	return *v
}

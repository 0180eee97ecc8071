package board

import (
	"log/slog"
	"strings"
	"time"

	"kanban/internal/models"
)

// commentDateLayout renders the human-readable, day-first date stamped
// on comments. Comments never carry a machine timestamp.
const commentDateLayout = "02/01/2006 15:04:05"

// TaskPatch lists the task fields a caller may change. Nil fields are
// left untouched. Status changes also maintain the completion
// timestamp: entering done records it, leaving done clears it.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *models.Priority
	Status      *models.Status
	Tags        *[]models.Tag
	AssignedTo  *string
	Deadline    *time.Time
}

// CreateTask adds a task to the todo column of a board.
func (s *Service) CreateTask(boardID, title, description string, priority models.Priority, tags []models.Tag) (models.Task, error) {
	if _, ok := s.sessions.Current(); !ok {
		return models.Task{}, ErrNoSession
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, ErrEmptyTitle
	}
	if _, ok := models.ValidPriorities[priority]; !ok {
		priority = models.PriorityMedium
	}
	if tags == nil {
		tags = []models.Tag{}
	}

	now := s.now()
	task := models.Task{
		ID:          s.newID(),
		BoardID:     boardID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Priority:    priority,
		Status:      models.StatusTodo,
		Tags:        tags,
		Comments:    []models.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = append(s.tasks, task)
	if err := s.persist(); err != nil {
		return models.Task{}, err
	}

	s.logger.Info("task created", slog.String("task", task.ID), slog.String("board", boardID))
	return task, nil
}

// UpdateTask applies a patch to a task and refreshes its update
// timestamp. An unknown id reports found=false without error.
func (s *Service) UpdateTask(id string, patch TaskPatch) (models.Task, bool, error) {
	if _, ok := s.sessions.Current(); !ok {
		return models.Task{}, false, ErrNoSession
	}

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.applyPatch(&s.tasks[i], patch)
		if err := s.persist(); err != nil {
			return models.Task{}, false, err
		}
		return s.tasks[i], true, nil
	}
	return models.Task{}, false, nil
}

// MoveTask changes only the column a task sits in.
func (s *Service) MoveTask(id string, status models.Status) (models.Task, bool, error) {
	return s.UpdateTask(id, TaskPatch{Status: &status})
}

// DeleteTask removes a task unconditionally. Unknown ids are ignored.
func (s *Service) DeleteTask(id string) error {
	if _, ok := s.sessions.Current(); !ok {
		return ErrNoSession
	}

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// AddComment appends a comment authored by the current user. Without a
// session, or for an unknown task, nothing happens.
func (s *Service) AddComment(taskID, text string) error {
	session, ok := s.sessions.Current()
	if !ok {
		return nil
	}

	for i := range s.tasks {
		if s.tasks[i].ID != taskID {
			continue
		}
		s.tasks[i].Comments = append(s.tasks[i].Comments, models.Comment{
			ID:     s.newID(),
			Author: session.Name,
			Text:   text,
			Date:   s.now().Format(commentDateLayout),
		})
		s.tasks[i].UpdatedAt = s.now()
		return s.persist()
	}
	return nil
}

// TasksByBoard lists a board's tasks without mutating anything.
func (s *Service) TasksByBoard(boardID string) []models.Task {
	var out []models.Task
	for _, t := range s.tasks {
		if t.BoardID == boardID {
			out = append(out, t)
		}
	}
	return out
}

// TaskByID looks a task up without mutating anything.
func (s *Service) TaskByID(id string) (models.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// applyPatch merges the patch into the task. Invalid statuses and
// priorities are dropped rather than failing the whole update, matching
// how column moves behave elsewhere in the app.
func (s *Service) applyPatch(task *models.Task, patch TaskPatch) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) != "" {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Priority != nil {
		if _, ok := models.ValidPriorities[*patch.Priority]; ok {
			task.Priority = *patch.Priority
		}
	}
	if patch.Status != nil {
		if _, ok := models.ValidStatuses[*patch.Status]; ok {
			next := *patch.Status
			if next == models.StatusDone && task.Status != models.StatusDone {
				completed := s.now()
				task.CompletedAt = &completed
			} else if next != models.StatusDone {
				task.CompletedAt = nil
			}
			task.Status = next
		}
	}
	if patch.Tags != nil {
		task.Tags = *patch.Tags
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = *patch.AssignedTo
	}
	if patch.Deadline != nil {
		deadline := *patch.Deadline
		task.Deadline = &deadline
	}
	task.UpdatedAt = s.now()
}

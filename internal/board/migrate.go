package board

import (
	"fmt"
	"log/slog"

	"kanban/internal/models"
	"kanban/internal/storage"
)

// migrateLegacy folds boards and tasks stored under the old per-user
// keys ("<email>_boards", "<email>_tasks") into the global pool. The
// key prefix names the owner; boards written before the owner field
// existed are backfilled from it, falling back to the current session.
// Legacy keys are removed once absorbed so the migration runs once.
func (s *Service) migrateLegacy() error {
	emails := s.knownEmails()
	if len(emails) == 0 {
		return nil
	}

	migrated := false
	for _, email := range emails {
		moved, err := s.absorbLegacyUser(email)
		if err != nil {
			return err
		}
		migrated = migrated || moved
	}

	if migrated {
		if err := s.persist(); err != nil {
			return err
		}
		s.logger.Info("legacy per-user data migrated", slog.Int("boards", len(s.boards)), slog.Int("tasks", len(s.tasks)))
	}
	return nil
}

func (s *Service) absorbLegacyUser(email string) (bool, error) {
	boardsKey := email + "_boards"
	tasksKey := email + "_tasks"

	var legacyBoards []models.Board
	rawBoards, okBoards, err := s.kv.Get(boardsKey)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", boardsKey, err)
	}
	if okBoards {
		if err := decodeRaw(rawBoards, &legacyBoards); err != nil {
			return false, fmt.Errorf("decode %s: %w", boardsKey, err)
		}
	}

	var legacyTasks []models.Task
	rawTasks, okTasks, err := s.kv.Get(tasksKey)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", tasksKey, err)
	}
	if okTasks {
		if err := decodeRaw(rawTasks, &legacyTasks); err != nil {
			return false, fmt.Errorf("decode %s: %w", tasksKey, err)
		}
	}

	if !okBoards && !okTasks {
		return false, nil
	}

	owner := email
	if owner == "" {
		if session, ok := s.sessions.Current(); ok {
			owner = session.Email
		}
	}

	for _, b := range legacyBoards {
		if _, exists := s.BoardByID(b.ID); exists {
			continue
		}
		if b.Owner == "" {
			b.Owner = owner
		}
		if !b.HasCollaborator(b.Owner) {
			b.Collaborators = append(b.Collaborators, b.Owner)
		}
		s.boards = append(s.boards, b)
	}
	for _, t := range legacyTasks {
		if _, exists := s.TaskByID(t.ID); exists {
			continue
		}
		s.tasks = append(s.tasks, t)
	}

	if okBoards {
		if err := s.kv.Remove(boardsKey); err != nil {
			return false, fmt.Errorf("remove %s: %w", boardsKey, err)
		}
	}
	if okTasks {
		if err := s.kv.Remove(tasksKey); err != nil {
			return false, fmt.Errorf("remove %s: %w", tasksKey, err)
		}
	}
	return true, nil
}

// knownEmails gathers every email a legacy key could be prefixed with:
// all registered accounts plus the resumed session.
func (s *Service) knownEmails() []string {
	seen := map[string]struct{}{}
	var emails []string

	var users []models.User
	if err := decodeKey(s.kv, storage.KeyUsers, &users); err != nil {
		s.logger.Warn("skipping users during migration", slog.String("error", err.Error()))
	}
	for _, u := range users {
		if _, dup := seen[u.Email]; !dup {
			seen[u.Email] = struct{}{}
			emails = append(emails, u.Email)
		}
	}

	if session, ok := s.sessions.Current(); ok {
		if _, dup := seen[session.Email]; !dup {
			emails = append(emails, session.Email)
		}
	}
	return emails
}

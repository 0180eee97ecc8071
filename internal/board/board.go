// Package board owns the boards, tasks and invitations of the
// application and persists them as whole snapshots on every mutation.
package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"kanban/internal/models"
	"kanban/internal/storage"
)

var (
	// ErrNoSession indicates an operation that needs a signed-in user.
	ErrNoSession = errors.New("no active session")
	// ErrNotOwner indicates a board mutation reserved for its owner.
	ErrNotOwner = errors.New("only the board owner may do this")
	// ErrNotFound indicates a referenced board does not exist.
	ErrNotFound = errors.New("board not found")
	// ErrEmptyName indicates a missing board name.
	ErrEmptyName = errors.New("board name is required")
	// ErrEmptyTitle indicates a missing task title.
	ErrEmptyTitle = errors.New("task title is required")
)

// SessionSource yields the identity operations run under.
type SessionSource interface {
	Current() (models.Session, bool)
}

// Service is the board/task repository and invitation workflow. It
// keeps the full collections in memory and rewrites them to the store
// after each mutation; the application is single-actor so no locking
// is involved.
type Service struct {
	kv       storage.KV
	sessions SessionSource
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string

	boards      []models.Board
	tasks       []models.Task
	invitations []models.Invitation
}

// New constructs the service. now and newID may be nil, defaulting to
// time.Now and random UUIDs.
func New(kv storage.KV, sessions SessionSource, logger *slog.Logger, now func() time.Time, newID func() string) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Service{kv: kv, sessions: sessions, logger: logger, now: now, newID: newID}
}

// Load reads the persisted collections and folds any legacy per-user
// snapshots into the global pool.
func (s *Service) Load() error {
	if err := decodeKey(s.kv, storage.KeyBoards, &s.boards); err != nil {
		return err
	}
	if err := decodeKey(s.kv, storage.KeyTasks, &s.tasks); err != nil {
		return err
	}
	if err := decodeKey(s.kv, storage.KeyInvitations, &s.invitations); err != nil {
		return err
	}
	return s.migrateLegacy()
}

// CreateBoard creates a board owned by the current user, who is also
// its first collaborator.
func (s *Service) CreateBoard(name string) (models.Board, error) {
	session, ok := s.sessions.Current()
	if !ok {
		return models.Board{}, ErrNoSession
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Board{}, ErrEmptyName
	}

	board := models.Board{
		ID:            s.newID(),
		Name:          name,
		CreatedAt:     s.now(),
		Owner:         session.Email,
		Collaborators: []string{session.Email},
	}
	s.boards = append(s.boards, board)
	if err := s.persist(); err != nil {
		return models.Board{}, err
	}

	s.logger.Info("board created", slog.String("board", board.ID), slog.String("owner", board.Owner))
	return board, nil
}

// DeleteBoard removes a board and every task on it. Only the owner may
// delete a board; an unknown id is a silent no-op.
func (s *Service) DeleteBoard(id string) error {
	session, ok := s.sessions.Current()
	if !ok {
		return ErrNoSession
	}

	idx := -1
	for i := range s.boards {
		if s.boards[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	if s.boards[idx].Owner != session.Email {
		return ErrNotOwner
	}

	s.boards = append(s.boards[:idx], s.boards[idx+1:]...)
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.BoardID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept

	if err := s.persist(); err != nil {
		return err
	}
	s.logger.Info("board deleted", slog.String("board", id))
	return nil
}

// BoardByID looks a board up without mutating anything.
func (s *Service) BoardByID(id string) (models.Board, bool) {
	for _, b := range s.boards {
		if b.ID == id {
			return b, true
		}
	}
	return models.Board{}, false
}

// BoardsForUser lists boards the email owns or collaborates on.
func (s *Service) BoardsForUser(email string) []models.Board {
	var visible []models.Board
	for _, b := range s.boards {
		if b.HasCollaborator(email) {
			visible = append(visible, b)
		}
	}
	return visible
}

// persist rewrites all three collections. There are no partial writes;
// every mutation stores the complete state.
func (s *Service) persist() error {
	if err := encodeKey(s.kv, storage.KeyBoards, s.boards); err != nil {
		return err
	}
	if err := encodeKey(s.kv, storage.KeyTasks, s.tasks); err != nil {
		return err
	}
	return encodeKey(s.kv, storage.KeyInvitations, s.invitations)
}

func decodeKey(kv storage.KV, key string, out any) error {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := decodeRaw(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func decodeRaw(raw string, out any) error {
	return json.Unmarshal([]byte(raw), out)
}

func encodeKey(kv storage.KV, key string, in any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Package auth manages account records and the active session.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"kanban/internal/models"
	"kanban/internal/storage"
)

var (
	// ErrValidation covers malformed email, short password and empty
	// required fields.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail indicates a signup against an existing account.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials indicates no account matches the login pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnverifiedEmail indicates a login before email verification.
	ErrUnverifiedEmail = errors.New("email not verified")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 8

// Service is the credential store and session manager. It holds the
// single active identity; there are no concurrent users in this
// application. State lives here explicitly rather than in package-level
// variables.
type Service struct {
	kv      storage.KV
	logger  *slog.Logger
	session *models.Session
}

// New constructs the auth service.
func New(kv storage.KV, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{kv: kv, logger: logger}
}

// Resume restores a persisted session, if any. Sessions do not expire;
// they last until an explicit logout.
func (s *Service) Resume() error {
	raw, ok, err := s.kv.Get(storage.KeySession)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil
	}
	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	s.session = &session
	s.logger.Info("session resumed", slog.String("email", session.Email))
	return nil
}

// Current returns the active session, if any.
func (s *Service) Current() (models.Session, bool) {
	if s.session == nil {
		return models.Session{}, false
	}
	return *s.session, true
}

// Signup registers a new unverified account and marks its email as
// pending verification. It does not sign the user in.
func (s *Service) Signup(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: email must look like user@domain.tld", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == email {
			return ErrDuplicateEmail
		}
	}

	users = append(users, models.User{
		Email:         email,
		Name:          name,
		Password:      password,
		EmailVerified: false,
	})
	if err := s.saveUsers(users); err != nil {
		return err
	}
	if err := s.kv.Set(storage.KeyPendingVerification, email); err != nil {
		return fmt.Errorf("mark pending verification: %w", err)
	}

	s.logger.Info("account created", slog.String("email", email))
	return nil
}

// Login checks credentials and activates the session on success.
func (s *Service) Login(email, password string) (models.Session, error) {
	if !emailPattern.MatchString(email) {
		return models.Session{}, fmt.Errorf("%w: email must look like user@domain.tld", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return models.Session{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	users, err := s.loadUsers()
	if err != nil {
		return models.Session{}, err
	}

	var match *models.User
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			match = &users[i]
			break
		}
	}
	if match == nil {
		return models.Session{}, ErrInvalidCredentials
	}
	if !match.EmailVerified {
		return models.Session{}, ErrUnverifiedEmail
	}

	session := models.Session{
		Email:         match.Email,
		Name:          match.Name,
		EmailVerified: true,
	}
	if err := s.persistSession(session); err != nil {
		return models.Session{}, err
	}
	s.session = &session

	s.logger.Info("signed in", slog.String("email", email))
	return session, nil
}

// Logout clears the active session and its persisted copy.
func (s *Service) Logout() error {
	s.session = nil
	if err := s.kv.Remove(storage.KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// VerifyEmail marks the pending-verification account as verified and
// clears the marker. Without a marker it does nothing.
func (s *Service) VerifyEmail() error {
	pending, ok, err := s.kv.Get(storage.KeyPendingVerification)
	if err != nil {
		return fmt.Errorf("load pending verification: %w", err)
	}
	if !ok || pending == "" {
		return nil
	}

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Email == pending {
			users[i].EmailVerified = true
		}
	}
	if err := s.saveUsers(users); err != nil {
		return err
	}
	if err := s.kv.Remove(storage.KeyPendingVerification); err != nil {
		return fmt.Errorf("clear pending verification: %w", err)
	}

	s.logger.Info("email verified", slog.String("email", pending))
	return nil
}

// RequestPasswordReset records a reset request marker. Malformed
// emails are ignored silently; the password itself never changes here.
func (s *Service) RequestPasswordReset(email string) error {
	if !emailPattern.MatchString(email) {
		return nil
	}
	if err := s.kv.Set(storage.KeyPasswordReset, email); err != nil {
		return fmt.Errorf("record password reset: %w", err)
	}
	s.logger.Info("password reset requested", slog.String("email", email))
	return nil
}

func (s *Service) persistSession(session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(storage.KeySession, string(raw)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *Service) loadUsers() ([]models.User, error) {
	raw, ok, err := s.kv.Get(storage.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *Service) saveUsers(users []models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.kv.Set(storage.KeyUsers, string(raw)); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

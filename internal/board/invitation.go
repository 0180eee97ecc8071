package board

import (
	"log/slog"

	"kanban/internal/models"
)

// Invite creates a pending invitation to collaborate on a board,
// snapshotting the board name at invite time. A second invite to the
// same email is allowed and produces a second pending invitation.
func (s *Service) Invite(boardID, email string) (models.Invitation, error) {
	session, ok := s.sessions.Current()
	if !ok {
		return models.Invitation{}, ErrNoSession
	}
	b, ok := s.BoardByID(boardID)
	if !ok {
		return models.Invitation{}, ErrNotFound
	}

	invitation := models.Invitation{
		ID:        s.newID(),
		BoardID:   b.ID,
		BoardName: b.Name,
		From:      session.Email,
		To:        email,
		CreatedAt: s.now(),
		Status:    models.InvitationPending,
	}
	s.invitations = append(s.invitations, invitation)
	if err := s.persist(); err != nil {
		return models.Invitation{}, err
	}

	s.logger.Info("invitation sent",
		slog.String("board", b.ID),
		slog.String("from", invitation.From),
		slog.String("to", invitation.To))
	return invitation, nil
}

// AddCollaborator starts the invitation handshake for a board. The
// collaborator list itself only changes when the invitee accepts.
func (s *Service) AddCollaborator(boardID, email string) (models.Invitation, error) {
	return s.Invite(boardID, email)
}

// PendingInvitationsFor lists unresolved invitations addressed to the
// email.
func (s *Service) PendingInvitationsFor(email string) []models.Invitation {
	var pending []models.Invitation
	for _, inv := range s.invitations {
		if inv.To == email && inv.Status == models.InvitationPending {
			pending = append(pending, inv)
		}
	}
	return pending
}

// Accept resolves a pending invitation and adds the invitee to the
// board's collaborators. Accepting twice, or accepting when the email
// already collaborates, never duplicates the entry. Unknown or already
// resolved invitations are left untouched.
func (s *Service) Accept(id string) error {
	for i := range s.invitations {
		inv := &s.invitations[i]
		if inv.ID != id || inv.Status != models.InvitationPending {
			continue
		}

		inv.Status = models.InvitationAccepted
		for j := range s.boards {
			if s.boards[j].ID != inv.BoardID {
				continue
			}
			if !s.boards[j].HasCollaborator(inv.To) {
				s.boards[j].Collaborators = append(s.boards[j].Collaborators, inv.To)
			}
		}
		if err := s.persist(); err != nil {
			return err
		}
		s.logger.Info("invitation accepted", slog.String("board", inv.BoardID), slog.String("collaborator", inv.To))
		return nil
	}
	return nil
}

// Reject resolves a pending invitation without touching the board.
// Unknown or already resolved invitations are left untouched.
func (s *Service) Reject(id string) error {
	for i := range s.invitations {
		inv := &s.invitations[i]
		if inv.ID != id || inv.Status != models.InvitationPending {
			continue
		}

		inv.Status = models.InvitationRejected
		if err := s.persist(); err != nil {
			return err
		}
		s.logger.Info("invitation rejected", slog.String("board", inv.BoardID), slog.String("to", inv.To))
		return nil
	}
	return nil
}

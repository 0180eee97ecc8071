package board

import (
	"errors"
	"reflect"
	"testing"

	"kanban/internal/models"
)

func TestInvitationScenario(t *testing.T) {
	svc, sessions, _, _ := newFixture()
	sessions.signIn("Owner", "owner@x.com")

	b, err := svc.CreateBoard("Sprint 1")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if !reflect.DeepEqual(b.Collaborators, []string{"owner@x.com"}) {
		t.Fatalf("expected owner as sole collaborator, got %v", b.Collaborators)
	}

	inv, err := svc.Invite(b.ID, "dev@x.com")
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if inv.Status != models.InvitationPending || inv.From != "owner@x.com" || inv.BoardName != "Sprint 1" {
		t.Fatalf("unexpected invitation %+v", inv)
	}

	pending := svc.PendingInvitationsFor("dev@x.com")
	if len(pending) != 1 || pending[0].ID != inv.ID {
		t.Fatalf("expected one pending invitation, got %v", pending)
	}

	if err := svc.Accept(inv.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	got, _ := svc.BoardByID(b.ID)
	if !reflect.DeepEqual(got.Collaborators, []string{"owner@x.com", "dev@x.com"}) {
		t.Fatalf("expected both collaborators, got %v", got.Collaborators)
	}
	if len(svc.PendingInvitationsFor("dev@x.com")) != 0 {
		t.Fatal("accepted invitation should leave the pending list")
	}
}

func TestAcceptIsIdempotent(t *testing.T) {
	svc, sessions, _, _ := newFixture()
	sessions.signIn("Owner", "owner@x.com")

	b, _ := svc.CreateBoard("Sprint 1")
	inv, _ := svc.Invite(b.ID, "dev@x.com")

	if err := svc.Accept(inv.ID); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	if err := svc.Accept(inv.ID); err != nil {
		t.Fatalf("second accept: %v", err)
	}

	got, _ := svc.BoardByID(b.ID)
	if !reflect.DeepEqual(got.Collaborators, []string{"owner@x.com", "dev@x.com"}) {
		t.Fatalf("collaborator duplicated: %v", got.Collaborators)
	}
}

func TestInviteDoesNotDeduplicate(t *testing.T) {
	svc, sessions, _, _ := newFixture()
	sessions.signIn("Owner", "owner@x.com")

	b, _ := svc.CreateBoard("Sprint 1")
	if _, err := svc.Invite(b.ID, "dev@x.com"); err != nil {
		t.Fatalf("first invite: %v", err)
	}
	if _, err := svc.Invite(b.ID, "dev@x.com"); err != nil {
		t.Fatalf("second invite: %v", err)
	}

	if pending := svc.PendingInvitationsFor("dev@x.com"); len(pending) != 2 {
		t.Fatalf("repeat invites stay separate, got %d pending", len(pending))
	}
}

func TestInviteUnknownBoard(t *testing.T) {
	svc, sessions, _, _ := newFixture()
	sessions.signIn("Owner", "owner@x.com")

	if _, err := svc.Invite("missing", "dev@x.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRejectLeavesBoardUntouched(t *testing.T) {
	svc, sessions, _, _ := newFixture()
	sessions.signIn("Owner", "owner@x.com")

	b, _ := svc.CreateBoard("Sprint 1")
	inv, _ := svc.Invite(b.ID, "dev@x.com")

	if err := svc.Reject(inv.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	got, _ := svc.BoardByID(b.ID)
	if !reflect.DeepEqual(got.Collaborators, []string{"owner@x.com"}) {
		t.Fatalf("reject must not change collaborators, got %v", got.Collaborators)
	}

	// Rejected is terminal; a later accept changes nothing.
	if err := svc.Accept(inv.ID); err != nil {
		t.Fatalf("accept after reject: %v", err)
	}
	got, _ = svc.BoardByID(b.ID)
	if !reflect.DeepEqual(got.Collaborators, []string{"owner@x.com"}) {
		t.Fatalf("resolved invitation transitioned again: %v", got.Collaborators)
	}
}

func TestResolveUnknownInvitation(t *testing.T) {
	svc, sessions, _, _ := newFixture()
	sessions.signIn("Owner", "owner@x.com")

	if err := svc.Accept("missing"); err != nil {
		t.Fatalf("accept of unknown id should no-op, got %v", err)
	}
	if err := svc.Reject("missing"); err != nil {
		t.Fatalf("reject of unknown id should no-op, got %v", err)
	}
}

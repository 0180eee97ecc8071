package models

import "time"

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Status names the board column a task currently sits in.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// ValidStatuses enumerates the statuses supported by the board columns.
var ValidStatuses = map[Status]struct{}{
	StatusTodo:  {},
	StatusDoing: {},
	StatusDone:  {},
}

// ValidPriorities enumerates the accepted task priorities.
var ValidPriorities = map[Priority]struct{}{
	PriorityHigh:   {},
	PriorityMedium: {},
	PriorityLow:    {},
}

// InvitationStatus tracks the lifecycle of a collaboration invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

// User is a stored account record. The password is kept exactly as
// entered; this application does not hash credentials.
type User struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Password      string `json:"password"`
	EmailVerified bool   `json:"emailVerified"`
}

// Session is the projection of the signed-in user that is safe to
// persist and hand to callers.
type Session struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"emailVerified"`
}

// Board groups tasks and names who may see them. The owner is always
// present in Collaborators.
type Board struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	Owner         string    `json:"owner"`
	Collaborators []string  `json:"collaborators"`
}

// HasCollaborator reports whether email may access the board.
func (b Board) HasCollaborator(email string) bool {
	if b.Owner == email {
		return true
	}
	for _, c := range b.Collaborators {
		if c == email {
			return true
		}
	}
	return false
}

// Tag is a colored label embedded in a task.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Comment is an append-only note on a task. Date is a human-readable
// localized string, not a machine timestamp.
type Comment struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

// Task represents a single card on a board.
type Task struct {
	ID          string     `json:"id"`
	BoardID     string     `json:"boardId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	Tags        []Tag      `json:"tags"`
	Comments    []Comment  `json:"comments"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Invitation is a pending offer of collaborator access to a board.
// BoardName is a snapshot taken at invite time.
type Invitation struct {
	ID        string           `json:"id"`
	BoardID   string           `json:"boardId"`
	BoardName string           `json:"boardName"`
	From      string           `json:"from"`
	To        string           `json:"to"`
	CreatedAt time.Time        `json:"createdAt"`
	Status    InvitationStatus `json:"status"`
}

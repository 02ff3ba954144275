package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for invite operations.
var (
	ErrAlreadyInvited  = errors.New("user already invited")
	ErrAlreadyAnswered = errors.New("invite already answered")
	ErrPrivateEvent    = errors.New("event is private")
)

// Invite joins one user to one event and carries its own response state.
// At most one of AcceptedAt/RejectedAt is ever set; once set, the record is
// terminal and no operation mutates it again.
// swagger:model Invite
type Invite struct {
	ID         string     `json:"id"`
	EventID    string     `json:"eventId"`
	UserID     string     `json:"userId"`
	Message    *string    `json:"message,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	AcceptedAt *time.Time `json:"acceptedAt"`
	RejectedAt *time.Time `json:"rejectedAt"`
}

// NewInvite returns a pending Invite. ID is typically set by the repository on create.
func NewInvite(eventID, userID string, message *string, createdAt time.Time) *Invite {
	return &Invite{
		EventID:   eventID,
		UserID:    userID,
		Message:   message,
		CreatedAt: createdAt,
	}
}

// Answered reports whether the invite has reached a terminal state.
func (i *Invite) Answered() bool {
	return i.AcceptedAt != nil || i.RejectedAt != nil
}

// InviteWithUser is the invite projection embedded in event detail payloads.
// swagger:model InviteWithUser
type InviteWithUser struct {
	User       InvitedUserRef `json:"user"`
	Message    *string        `json:"message,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	AcceptedAt *time.Time     `json:"acceptedAt"`
	RejectedAt *time.Time     `json:"rejectedAt"`
}

// InvitedUserRef is the invited-user projection inside InviteWithUser.
// swagger:model InvitedUserRef
type InvitedUserRef struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

// InviteAnswer is the two-variant response to a pending invite.
type InviteAnswer int

const (
	AnswerAccept InviteAnswer = iota
	AnswerDeny
)

// ParseInviteAnswer maps the wire literals "accept" and "deny" to an
// InviteAnswer. Anything else fails with ErrInvalidAnswer.
func ParseInviteAnswer(s string) (InviteAnswer, error) {
	switch s {
	case "accept":
		return AnswerAccept, nil
	case "deny":
		return AnswerDeny, nil
	default:
		return 0, ErrInvalidAnswer
	}
}

// InviteRepository defines storage operations for invites.
//
// Create relies on the (event_id, user_id) unique constraint and returns
// ErrAlreadyInvited on a duplicate, so concurrent creates cannot race.
// CreateIfAbsent is the idempotent variant used by presence confirmation:
// it reports created=false without error when a row already exists.
// MarkAnswered performs the terminal-state check and the write in one
// conditional update; a pending row that was answered concurrently surfaces
// as ErrAlreadyAnswered.
type InviteRepository interface {
	Create(ctx context.Context, invite *Invite) error
	CreateIfAbsent(ctx context.Context, invite *Invite) (created bool, err error)
	GetByID(ctx context.Context, id string) (*Invite, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Invite, error)
	MarkAnswered(ctx context.Context, id string, answer InviteAnswer, at time.Time) error
}

// InviteService drives the invitation lifecycle.
type InviteService interface {
	// InviteUser creates a pending invite from the event owner to the user
	// with the given email.
	InviteUser(ctx context.Context, principalID, eventID, email string, message *string) (*Invite, error)
	// AnswerInvite transitions a pending invite to accepted or rejected.
	AnswerInvite(ctx context.Context, principalID, inviteID string, answer string) error
	// ConfirmPresence self-confirms attendance at a public event, creating an
	// already-accepted invite. Idempotent: created is false when an invite for
	// (event, principal) already exists in any state.
	ConfirmPresence(ctx context.Context, principalID, eventID string) (created bool, err error)
}

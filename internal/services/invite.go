package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"organizaai/internal/domain"
)

var inviteEmailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type inviteService struct {
	inviteRepo     domain.InviteRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService // optional, may be nil
	contextTimeout time.Duration
}

func NewInviteService(
	inviteRepo domain.InviteRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.InviteService {
	return &inviteService{
		inviteRepo:     inviteRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *inviteService) InviteUser(ctx context.Context, principalID, eventID, email string, message *string) (*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if !inviteEmailRegexp.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.CreatedByID != principalID {
		return nil, domain.ErrForbidden
	}

	invitee, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	invite := domain.NewInvite(event.ID, invitee.ID, message, time.Now())
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		// The unique (event_id, user_id) constraint makes this safe under
		// concurrent duplicate requests.
		if errors.Is(err, domain.ErrAlreadyInvited) {
			return nil, domain.ErrAlreadyInvited
		}
		return nil, fmt.Errorf("create invite: %w", err)
	}

	s.notifyInvitee(ctx, event, invitee, message)

	return invite, nil
}

// notifyInvitee sends the invitation email best-effort: a mailer failure never
// fails the invite operation.
func (s *inviteService) notifyInvitee(ctx context.Context, event *domain.Event, invitee *domain.User, message *string) {
	if s.emailService == nil {
		return
	}
	ownerName := ""
	if owner, err := s.userRepo.GetByID(ctx, event.CreatedByID); err == nil {
		ownerName = owner.Fullname
	}
	data := &domain.InviteEmailData{
		Email:      invitee.Email,
		OwnerName:  ownerName,
		EventTitle: event.Title,
	}
	if message != nil {
		data.Message = *message
	}
	_ = s.emailService.SendInviteNotification(ctx, data)
}

func (s *inviteService) AnswerInvite(ctx context.Context, principalID, inviteID string, answer string) error {
	// Parsed before any lookup so a bad literal never touches storage.
	parsed, err := domain.ParseInviteAnswer(answer)
	if err != nil {
		return domain.ErrInvalidAnswer
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invite, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Collapsed with the ownership failure below so callers cannot
			// probe for invite existence.
			return domain.ErrForbidden
		}
		return fmt.Errorf("get invite: %w", err)
	}
	if invite.UserID != principalID {
		return domain.ErrForbidden
	}
	if invite.Answered() {
		return domain.ErrAlreadyAnswered
	}

	if err := s.inviteRepo.MarkAnswered(ctx, invite.ID, parsed, time.Now()); err != nil {
		if errors.Is(err, domain.ErrAlreadyAnswered) {
			return domain.ErrAlreadyAnswered
		}
		return fmt.Errorf("mark invite answered: %w", err)
	}
	return nil
}

func (s *inviteService) ConfirmPresence(ctx context.Context, principalID, eventID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get event: %w", err)
	}
	if !event.IsPublic {
		return false, domain.ErrPrivateEvent
	}

	now := time.Now()
	invite := domain.NewInvite(event.ID, principalID, nil, now)
	invite.AcceptedAt = &now

	created, err := s.inviteRepo.CreateIfAbsent(ctx, invite)
	if err != nil {
		return false, fmt.Errorf("create invite: %w", err)
	}
	return created, nil
}

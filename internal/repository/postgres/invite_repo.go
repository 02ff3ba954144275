package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"organizaai/internal/domain"
)

type inviteRepository struct {
	DB *sql.DB
}

func NewInviteRepository(db *sql.DB) domain.InviteRepository {
	return &inviteRepository{DB: db}
}

func (r *inviteRepository) Create(ctx context.Context, inv *domain.Invite) error {
	query := `
		INSERT INTO invites (event_id, user_id, message, created_at, accepted_at, rejected_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, inv.EventID, inv.UserID, inv.Message, inv.CreatedAt, inv.AcceptedAt, inv.RejectedAt).Scan(&inv.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyInvited
		}
		return err
	}
	return nil
}

// CreateIfAbsent inserts with ON CONFLICT DO NOTHING, so two concurrent
// confirmations for the same (event, user) pair produce exactly one row.
func (r *inviteRepository) CreateIfAbsent(ctx context.Context, inv *domain.Invite) (bool, error) {
	query := `
		INSERT INTO invites (event_id, user_id, message, created_at, accepted_at, rejected_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, user_id) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, inv.EventID, inv.UserID, inv.Message, inv.CreatedAt, inv.AcceptedAt, inv.RejectedAt).Scan(&inv.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *inviteRepository) GetByID(ctx context.Context, id string) (*domain.Invite, error) {
	query := `
		SELECT id, event_id, user_id, message, created_at, accepted_at, rejected_at
		FROM invites
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *inviteRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Invite, error) {
	query := `
		SELECT id, event_id, user_id, message, created_at, accepted_at, rejected_at
		FROM invites
		WHERE event_id = $1 AND user_id = $2
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, eventID, userID))
}

// MarkAnswered sets the terminal timestamp picked by the answer variant. The
// IS NULL guards make the terminal-state check and the write one atomic
// statement; zero rows affected means the invite was answered concurrently.
func (r *inviteRepository) MarkAnswered(ctx context.Context, id string, answer domain.InviteAnswer, at time.Time) error {
	var query string
	switch answer {
	case domain.AnswerAccept:
		query = `
			UPDATE invites SET accepted_at = $1
			WHERE id = $2 AND accepted_at IS NULL AND rejected_at IS NULL
		`
	case domain.AnswerDeny:
		query = `
			UPDATE invites SET rejected_at = $1
			WHERE id = $2 AND accepted_at IS NULL AND rejected_at IS NULL
		`
	default:
		return domain.ErrInvalidAnswer
	}
	res, err := r.DB.ExecContext(ctx, query, at, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAlreadyAnswered
	}
	return nil
}

func (r *inviteRepository) scanOne(row *sql.Row) (*domain.Invite, error) {
	inv := &domain.Invite{}
	var msgNull sql.NullString
	var acceptedNull, rejectedNull sql.NullTime
	err := row.Scan(&inv.ID, &inv.EventID, &inv.UserID, &msgNull, &inv.CreatedAt, &acceptedNull, &rejectedNull)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if msgNull.Valid {
		inv.Message = &msgNull.String
	}
	if acceptedNull.Valid {
		inv.AcceptedAt = &acceptedNull.Time
	}
	if rejectedNull.Valid {
		inv.RejectedAt = &rejectedNull.Time
	}
	return inv, nil
}

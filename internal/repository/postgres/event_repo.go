package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"organizaai/internal/domain"
)

const (
	foreignKeyViolation       = "23503"
	invalidTextRepresentation = "22P02"
)

// summaryColumns is the projection shared by the feed and owner listings.
const summaryColumns = `
	e.id, e.title, e.description, e.location, e.init_at, e.end_at, e.is_public,
	c.id, c.name,
	u.id, u.email
`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, location, init_at, end_at, is_public, category_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Location, e.InitAt, e.EndAt, e.IsPublic, e.CategoryID, e.CreatedByID, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == foreignKeyViolation || pqErr.Code == invalidTextRepresentation) {
			// Unknown category (FK) or malformed uuid both surface as invalid input.
			return domain.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, description, location, init_at, end_at, is_public, category_id, user_id, created_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var locNull sql.NullString
	var endNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &locNull, &e.InitAt, &endNull, &e.IsPublic, &e.CategoryID, &e.CreatedByID, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if locNull.Valid {
		e.Location = &locNull.String
	}
	if endNull.Valid {
		e.EndAt = &endNull.Time
	}
	return e, nil
}

// ListFeed applies the whole visibility predicate in one query: temporally
// active, and public OR owned by the viewer OR the viewer holds an invite in
// any state. An empty viewerID restricts the feed to public events.
func (r *eventRepository) ListFeed(ctx context.Context, viewerID string, filter domain.FeedFilter) ([]*domain.EventSummary, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	where = append(where, "(e.end_at IS NULL OR e.end_at >= NOW())")
	if viewerID == "" {
		where = append(where, "e.is_public")
	} else {
		p := arg(viewerID)
		where = append(where, fmt.Sprintf(
			"(e.is_public OR e.user_id = %s OR EXISTS (SELECT 1 FROM invites i WHERE i.event_id = e.id AND i.user_id = %s))", p, p,
		))
	}
	if filter.CategoryIDs != nil {
		where = append(where, fmt.Sprintf("e.category_id = ANY(%s)", arg(pq.Array(filter.CategoryIDs))))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN categories c ON c.id = e.category_id
		JOIN users u ON u.id = e.user_id
		WHERE %s
		ORDER BY e.init_at ASC
		OFFSET %s LIMIT %s
	`, summaryColumns, strings.Join(where, " AND "), arg(filter.Pagination.Skip), arg(filter.Pagination.Take))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.EventSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN categories c ON c.id = e.category_id
		JOIN users u ON u.id = e.user_id
		WHERE e.user_id = $1
		ORDER BY e.created_at DESC
	`, summaryColumns)

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func (r *eventRepository) GetDetailByID(ctx context.Context, id string) (*domain.EventDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN categories c ON c.id = e.category_id
		JOIN users u ON u.id = e.user_id
		WHERE e.id = $1
	`, summaryColumns)

	detail := &domain.EventDetail{}
	var locNull sql.NullString
	var endNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&detail.ID, &detail.Title, &detail.Description, &locNull, &detail.InitAt, &endNull, &detail.IsPublic,
		&detail.Category.ID, &detail.Category.Name,
		&detail.CreatedBy.ID, &detail.CreatedBy.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if locNull.Valid {
		detail.Location = &locNull.String
	}
	if endNull.Valid {
		detail.EndAt = &endNull.Time
	}

	invQuery := `
		SELECT u.id, u.email, u.fullname, i.message, i.created_at, i.accepted_at, i.rejected_at
		FROM invites i
		JOIN users u ON u.id = i.user_id
		WHERE i.event_id = $1
		ORDER BY i.created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, invQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invites := make([]*domain.InviteWithUser, 0)
	for rows.Next() {
		inv := &domain.InviteWithUser{}
		var msgNull sql.NullString
		var acceptedNull, rejectedNull sql.NullTime
		if err := rows.Scan(&inv.User.ID, &inv.User.Email, &inv.User.Fullname, &msgNull, &inv.CreatedAt, &acceptedNull, &rejectedNull); err != nil {
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
		invites = append(invites, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	detail.Invites = invites
	return detail, nil
}

func scanSummaries(rows *sql.Rows) ([]*domain.EventSummary, error) {
	events := make([]*domain.EventSummary, 0)
	for rows.Next() {
		e := &domain.EventSummary{}
		var locNull sql.NullString
		var endNull sql.NullTime
		err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &locNull, &e.InitAt, &endNull, &e.IsPublic,
			&e.Category.ID, &e.Category.Name,
			&e.CreatedBy.ID, &e.CreatedBy.Email,
		)
		if err != nil {
			return nil, err
		}
		if locNull.Valid {
			e.Location = &locNull.String
		}
		if endNull.Valid {
			e.EndAt = &endNull.Time
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

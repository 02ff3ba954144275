package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// schema is applied idempotently at startup. The UNIQUE (event_id, user_id)
// constraint on invites is what makes duplicate-invite and double-confirm
// requests safe under concurrency.
const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS users (
	id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	email         text NOT NULL UNIQUE,
	password_hash text NOT NULL,
	salt          text NOT NULL,
	fullname      text NOT NULL,
	birthdate     timestamptz NOT NULL,
	phone         text,
	created_at    timestamptz NOT NULL,
	updated_at    timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	id   uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	name text NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS events (
	id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	title       text NOT NULL,
	description text NOT NULL,
	location    text,
	init_at     timestamptz NOT NULL,
	end_at      timestamptz,
	is_public   boolean NOT NULL DEFAULT false,
	category_id uuid NOT NULL REFERENCES categories (id),
	user_id     uuid NOT NULL REFERENCES users (id),
	created_at  timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS invites (
	id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	event_id    uuid NOT NULL REFERENCES events (id),
	user_id     uuid NOT NULL REFERENCES users (id),
	message     text,
	created_at  timestamptz NOT NULL,
	accepted_at timestamptz,
	rejected_at timestamptz,
	UNIQUE (event_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_events_category_id ON events (category_id);
CREATE INDEX IF NOT EXISTS idx_events_user_id ON events (user_id);
CREATE INDEX IF NOT EXISTS idx_invites_user_id ON invites (user_id);

INSERT INTO categories (name) VALUES
	('Festa'),
	('Reunião'),
	('Esporte'),
	('Show'),
	('Workshop')
ON CONFLICT (name) DO NOTHING;
`

// Migrate applies the embedded schema.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info("database schema applied")
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/session"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGSessionRepository stores the session as one JSONB row keyed by the
// configured session key.
type PGSessionRepository struct {
	db  DB
	key string
}

func NewSessionRepository(db DB, key string) *PGSessionRepository {
	return &PGSessionRepository{db: db, key: key}
}

func (r *PGSessionRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS client_sessions (
		key TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("create client_sessions: %w", err)
	}
	return nil
}

func (r *PGSessionRepository) Get(ctx context.Context) (*domain.Session, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, `SELECT payload FROM client_sessions WHERE key=$1`, r.key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(payload, &s); err != nil || s.AccessToken == "" {
		return nil, nil
	}
	return &s, nil
}

func (r *PGSessionRepository) Set(ctx context.Context, s domain.Session) error {
	if s.AccessToken == "" {
		return session.ErrInvalidSession
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = r.db.Exec(ctx, `INSERT INTO client_sessions (key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`, r.key, payload)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *PGSessionRepository) Clear(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM client_sessions WHERE key=$1`, r.key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

var _ session.Store = (*PGSessionRepository)(nil)

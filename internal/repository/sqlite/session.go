package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/gymfit-client/internal/model"
)

var _ model.SessionRepository = (*SessionRepository)(nil)

// SessionRepository keeps at most one persisted session.
type SessionRepository struct {
	db  *Connection
	now func() time.Time
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{
		db:  db,
		now: time.Now,
	}
}

// Save replaces the persisted session.
func (r *SessionRepository) Save(ctx context.Context, session model.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}

	var expiresAt sql.NullInt64
	if !session.ExpiresAt.IsZero() {
		expiresAt = sql.NullInt64{Int64: session.ExpiresAt.Unix(), Valid: true}
	}

	now := r.now().Unix()
	query := `INSERT INTO sessions (id, user_id, name, email, avatar, token, refresh_token, expires_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, query,
		uuid.NewString(), session.User.ID, session.User.Name, session.User.Email, session.User.AvatarRef,
		session.Token, session.RefreshToken, expiresAt, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}

	return nil
}

// Load returns the persisted session or model.ErrNotFound.
func (r *SessionRepository) Load(ctx context.Context) (model.Session, error) {
	query := `SELECT user_id, name, email, avatar, token, refresh_token, expires_at
			  FROM sessions ORDER BY updated_at DESC LIMIT 1`

	var (
		s         model.Session
		expiresAt sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.User.ID, &s.User.Name, &s.User.Email, &s.User.AvatarRef,
		&s.Token, &s.RefreshToken, &expiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	if expiresAt.Valid {
		s.ExpiresAt = time.Unix(expiresAt.Int64, 0)
	}

	return s, nil
}

// Delete removes the persisted session, if any.
func (r *SessionRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"quillhub/internal/models"
)

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

type sessionUserRow struct {
	SessionID     string    `db:"session_id"`
	UserID        int64     `db:"user_id"`
	ExpiresAt     time.Time `db:"expires_at"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"`
	EmailVerified bool      `db:"email_verified"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.ExecContext(ctx, query, session.ID, session.UserID, session.ExpiresAt); err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

func (r *sessionRepository) FindWithUser(ctx context.Context, sessionID string) (*models.Session, *models.User, error) {
	query := `
		SELECT s.id AS session_id, s.user_id, s.expires_at,
		       u.email, u.password_hash, u.email_verified, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`

	var row sessionUserRow
	if err := r.db.GetContext(ctx, &row, query, sessionID); err != nil {
		return nil, nil, notFoundOr(err, "error getting session")
	}

	memberships, err := selectMemberships(ctx, r.db, row.UserID)
	if err != nil {
		return nil, nil, err
	}

	session := &models.Session{
		ID:        row.SessionID,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt,
	}
	user := &models.User{
		UserID:        row.UserID,
		Email:         row.Email,
		PasswordHash:  row.PasswordHash,
		EmailVerified: row.EmailVerified,
		CreatedAt:     row.CreatedAt,
		Memberships:   memberships,
	}

	return session, user, nil
}

func (r *sessionRepository) UpdateExpiry(ctx context.Context, sessionID string, expiresAt time.Time) error {
	query := `UPDATE sessions SET expires_at = $1 WHERE id = $2`

	if _, err := r.db.ExecContext(ctx, query, expiresAt, sessionID); err != nil {
		return fmt.Errorf("error extending session: %w", err)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM sessions WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	query := `DELETE FROM sessions WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("error deleting user sessions: %w", err)
	}

	return nil
}

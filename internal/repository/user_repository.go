package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"quillhub/internal/common"
	"quillhub/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, email_verified, created_at`

// CreateUser inserts a user whose PasswordHash is already set.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, email_verified)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, user.Email, user.PasswordHash, user.EmailVerified).
		Scan(&user.UserID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, common.ErrConflict)
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, notFoundOr(err, "error getting user by email")
	}

	return &user, nil
}

func (r *userRepository) GetMemberships(ctx context.Context, userID int64) ([]models.CompanyMembership, error) {
	return selectMemberships(ctx, r.db, userID)
}

func selectMemberships(ctx context.Context, db sqlx.QueryerContext, userID int64) ([]models.CompanyMembership, error) {
	query := `
		SELECT company_id, user_id
		FROM company_members
		WHERE user_id = $1
		ORDER BY company_id
	`

	memberships := []models.CompanyMembership{}
	if err := sqlx.SelectContext(ctx, db, &memberships, query, userID); err != nil {
		return nil, fmt.Errorf("error getting company memberships: %w", err)
	}

	return memberships, nil
}

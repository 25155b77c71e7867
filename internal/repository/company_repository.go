package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"quillhub/internal/database"
	"quillhub/internal/models"
)

type companyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepository(db *sqlx.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// CreateWithOwner inserts the company and makes ownerID its first member.
func (r *companyRepository) CreateWithOwner(ctx context.Context, company *models.Company, ownerID int64) error {
	return database.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO companies (name) VALUES ($1) RETURNING id, created_at`,
			company.Name,
		).Scan(&company.CompanyID, &company.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating company: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO company_members (company_id, user_id) VALUES ($1, $2)`,
			company.CompanyID, ownerID,
		)
		if err != nil {
			return fmt.Errorf("error adding company owner: %w", err)
		}

		return nil
	})
}

func (r *companyRepository) IsMember(ctx context.Context, companyID, userID int64) (bool, error) {
	return isMember(ctx, r.db, companyID, userID)
}

func isMember(ctx context.Context, db sqlx.QueryerContext, companyID, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM company_members WHERE company_id = $1 AND user_id = $2)`

	var member bool
	if err := sqlx.GetContext(ctx, db, &member, query, companyID, userID); err != nil {
		return false, fmt.Errorf("error checking company membership: %w", err)
	}

	return member, nil
}

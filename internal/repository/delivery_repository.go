package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"quillhub/internal/database"
	"quillhub/internal/models"
)

type deliveryRepository struct {
	db *sqlx.DB
}

func NewDeliveryRepository(db *sqlx.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

const deliveryColumns = `id, competition_id, user_id, docs, status, created_at`

// Submit reads the competition and the caller's membership, lets check decide,
// and inserts the delivery, all in one transaction. The competition row is
// held FOR SHARE so its end date cannot move between the check and the insert.
func (r *deliveryRepository) Submit(ctx context.Context, d *models.Delivery, check SubmitCheck) error {
	return database.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		var c models.Competition
		err := tx.GetContext(ctx, &c,
			`SELECT `+competitionColumns+` FROM competitions WHERE id = $1 FOR SHARE`,
			d.CompetitionID,
		)
		if err != nil {
			return notFoundOr(err, "error getting competition %d", d.CompetitionID)
		}

		member, err := isMember(ctx, tx, c.CompanyID, d.UserID)
		if err != nil {
			return err
		}

		if err := check(&c, member); err != nil {
			return err
		}

		query := `
			INSERT INTO deliveries (competition_id, user_id, docs, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`
		err = tx.QueryRowxContext(ctx, query, d.CompetitionID, d.UserID, d.Docs, d.Status).
			Scan(&d.DeliveryID, &d.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating delivery: %w", err)
		}

		return nil
	})
}

func (r *deliveryRepository) UpdateStatus(ctx context.Context, deliveryID, actorID int64, next models.DeliveryStatus, check StatusCheck) (*models.Delivery, error) {
	var d models.Delivery

	err := database.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &d,
			`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`,
			deliveryID,
		)
		if err != nil {
			return notFoundOr(err, "error getting delivery %d", deliveryID)
		}

		var c models.Competition
		err = tx.GetContext(ctx, &c,
			`SELECT `+competitionColumns+` FROM competitions WHERE id = $1`,
			d.CompetitionID,
		)
		if err != nil {
			return notFoundOr(err, "error getting competition %d", d.CompetitionID)
		}

		member, err := isMember(ctx, tx, c.CompanyID, actorID)
		if err != nil {
			return err
		}

		if err := check(&d, &c, member); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `UPDATE deliveries SET status = $1 WHERE id = $2`, next, deliveryID); err != nil {
			return fmt.Errorf("error updating delivery status: %w", err)
		}
		d.Status = next

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *deliveryRepository) ListByCompetition(ctx context.Context, competitionID int64, offset, limit int) ([]models.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE competition_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	deliveries := []models.Delivery{}
	if err := r.db.SelectContext(ctx, &deliveries, query, competitionID, limit, offset); err != nil {
		return nil, fmt.Errorf("error listing deliveries: %w", err)
	}

	return deliveries, nil
}

func (r *deliveryRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]models.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	deliveries := []models.Delivery{}
	if err := r.db.SelectContext(ctx, &deliveries, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("error listing user deliveries: %w", err)
	}

	return deliveries, nil
}

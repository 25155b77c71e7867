package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"quillhub/internal/models"
)

type competitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) CompetitionRepository {
	return &competitionRepository{db: db}
}

const competitionColumns = `id, company_id, title, description, content_type, start_date, end_date, created_at`

func (r *competitionRepository) Create(ctx context.Context, c *models.Competition) error {
	query := `
		INSERT INTO competitions (company_id, title, description, content_type, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		c.CompanyID, c.Title, c.Description, c.ContentType, c.StartDate, c.EndDate,
	).Scan(&c.CompetitionID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating competition: %w", err)
	}

	return nil
}

func (r *competitionRepository) GetByID(ctx context.Context, competitionID int64) (*models.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions WHERE id = $1`

	var c models.Competition
	if err := r.db.GetContext(ctx, &c, query, competitionID); err != nil {
		return nil, notFoundOr(err, "error getting competition %d", competitionID)
	}

	return &c, nil
}

// List orders by end_date then id, so pages never overlap while the set is stable.
func (r *competitionRepository) List(ctx context.Context, filter CompetitionFilter, offset, limit int) ([]models.Competition, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Query != "" {
		p := arg("%" + escapeLike(filter.Query) + "%")
		where = append(where, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", p, p))
	}
	if filter.ContentType != "" {
		where = append(where, "content_type = "+arg(filter.ContentType))
	}
	if filter.OpenAt != nil {
		where = append(where, "end_date >= "+arg(*filter.OpenAt))
	}

	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	query := `SELECT ` + competitionColumns + ` FROM competitions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(` ORDER BY end_date %s, id %s LIMIT %s OFFSET %s`, direction, direction, arg(limit), arg(offset))

	competitions := []models.Competition{}
	if err := r.db.SelectContext(ctx, &competitions, query, args...); err != nil {
		return nil, fmt.Errorf("error listing competitions: %w", err)
	}

	return competitions, nil
}

func (r *competitionRepository) ListBookmarked(ctx context.Context, userID int64, offset, limit int) ([]models.Competition, error) {
	query := `
		SELECT c.id, c.company_id, c.title, c.description, c.content_type, c.start_date, c.end_date, c.created_at
		FROM competitions c
		JOIN bookmarks b ON b.competition_id = c.id
		WHERE b.user_id = $1
		ORDER BY c.end_date ASC, c.id ASC
		LIMIT $2 OFFSET $3
	`

	competitions := []models.Competition{}
	if err := r.db.SelectContext(ctx, &competitions, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("error listing bookmarked competitions: %w", err)
	}

	return competitions, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

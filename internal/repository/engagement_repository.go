package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"quillhub/internal/common"
	"quillhub/internal/database"
)

// Engagement describes a (user, target) membership table and, optionally, a
// denormalized counter on the target row that must track the membership count.
type Engagement struct {
	Name          string
	Table         string
	TargetColumn  string
	TargetTable   string
	CounterColumn string
}

var (
	Bookmarks = Engagement{
		Name:         "bookmark",
		Table:        "bookmarks",
		TargetColumn: "competition_id",
		TargetTable:  "competitions",
	}
	PostLikes = Engagement{
		Name:          "like",
		Table:         "post_likes",
		TargetColumn:  "post_id",
		TargetTable:   "posts",
		CounterColumn: "likes",
	}
)

func (e Engagement) HasCounter() bool {
	return e.CounterColumn != ""
}

// lockQuery locks the target row. With a counter the row is locked FOR UPDATE
// so concurrent toggles on the same target serialize.
func (e Engagement) lockQuery() string {
	if e.HasCounter() {
		return fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, e.CounterColumn, e.TargetTable)
	}
	return fmt.Sprintf(`SELECT 0 FROM %s WHERE id = $1 FOR SHARE`, e.TargetTable)
}

func (e Engagement) insertQuery(ignoreConflict bool) string {
	q := fmt.Sprintf(`INSERT INTO %s (user_id, %s) VALUES ($1, $2)`, e.Table, e.TargetColumn)
	if ignoreConflict {
		q += fmt.Sprintf(` ON CONFLICT (user_id, %s) DO NOTHING`, e.TargetColumn)
	}
	return q
}

func (e Engagement) deleteQuery() string {
	return fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND %s = $2`, e.Table, e.TargetColumn)
}

func (e Engagement) existsQuery() string {
	return fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND %s = $2)`, e.Table, e.TargetColumn)
}

func (e Engagement) counterQuery() string {
	return fmt.Sprintf(`UPDATE %s SET %s = %s + $1 WHERE id = $2 RETURNING %s`,
		e.TargetTable, e.CounterColumn, e.CounterColumn, e.CounterColumn)
}

type engagementRepository struct {
	db *sqlx.DB
}

func NewEngagementRepository(db *sqlx.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) Set(ctx context.Context, e Engagement, userID, targetID int64, active bool) (bool, int, error) {
	var (
		changed bool
		count   int
	)

	err := database.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error
		if count, err = lockTarget(ctx, tx, e, targetID); err != nil {
			return err
		}

		query, delta := e.deleteQuery(), -1
		if active {
			query, delta = e.insertQuery(true), 1
		}

		n, err := execRows(ctx, tx, query, userID, targetID)
		if err != nil {
			return fmt.Errorf("error updating %s: %w", e.Name, err)
		}
		if n == 0 {
			return nil
		}

		changed = true
		count, err = applyDelta(ctx, tx, e, targetID, delta, count)
		return err
	})
	if err != nil {
		return false, 0, err
	}

	return changed, count, nil
}

// Toggle removes the membership if present, inserts it otherwise, and moves
// the counter by the same delta. A unique violation on insert means another
// request won the race: the transaction rolls back with common.ErrConflict.
func (r *engagementRepository) Toggle(ctx context.Context, e Engagement, userID, targetID int64) (bool, int, error) {
	var (
		active bool
		count  int
	)

	err := database.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error
		if count, err = lockTarget(ctx, tx, e, targetID); err != nil {
			return err
		}

		removed, err := execRows(ctx, tx, e.deleteQuery(), userID, targetID)
		if err != nil {
			return fmt.Errorf("error removing %s: %w", e.Name, err)
		}

		delta := -1
		if removed == 0 {
			if _, err := tx.ExecContext(ctx, e.insertQuery(false), userID, targetID); err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("concurrent %s toggle: %w", e.Name, common.ErrConflict)
				}
				return fmt.Errorf("error adding %s: %w", e.Name, err)
			}
			active, delta = true, 1
		}

		count, err = applyDelta(ctx, tx, e, targetID, delta, count)
		return err
	})
	if err != nil {
		return false, 0, err
	}

	return active, count, nil
}

func (r *engagementRepository) Exists(ctx context.Context, e Engagement, userID, targetID int64) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, e.existsQuery(), userID, targetID); err != nil {
		return false, fmt.Errorf("error checking %s: %w", e.Name, err)
	}
	return exists, nil
}

func lockTarget(ctx context.Context, tx *sqlx.Tx, e Engagement, targetID int64) (int, error) {
	var count int
	if err := tx.GetContext(ctx, &count, e.lockQuery(), targetID); err != nil {
		return 0, notFoundOr(err, "error locking %s target %d", e.Name, targetID)
	}
	return count, nil
}

func applyDelta(ctx context.Context, tx *sqlx.Tx, e Engagement, targetID int64, delta, count int) (int, error) {
	if !e.HasCounter() {
		return count, nil
	}
	if err := tx.GetContext(ctx, &count, e.counterQuery(), delta, targetID); err != nil {
		return 0, fmt.Errorf("error updating %s counter: %w", e.Name, err)
	}
	return count, nil
}

func execRows(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int64, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

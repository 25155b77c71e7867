package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"quillhub/internal/common"
)

const uniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// notFoundOr maps sql.ErrNoRows to common.ErrNotFound and wraps anything else.
func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

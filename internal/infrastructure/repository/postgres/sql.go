package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

// dateColumn renders a DATE column as the YYYY-MM-DD string used by the domain.
func dateColumn(column, alias string) string {
	return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD') AS %s", column, alias)
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// wrapDB annotates driver failures with the operation and, for server errors,
// the SQLSTATE and constraint so logs point at the failing statement.
func wrapDB(err error, op string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Constraint != "" {
			return crerr.Wrapf(err, "%s (sqlstate %s, constraint %s)", op, pqErr.Code, pqErr.Constraint)
		}
		return crerr.Wrapf(err, "%s (sqlstate %s)", op, pqErr.Code)
	}
	return crerr.Wrap(err, op)
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func stringPtrToNull(v *string) sql.NullString {
	if v == nil || *v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

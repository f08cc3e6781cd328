package repositories

import (
	"database/sql"
	"errors"
	"time"

	"boardapi/internal/domain"

	"github.com/go-sql-driver/mysql"
)

// MySQL error numbers the repositories translate into domain kinds.
const (
	mysqlDuplicateEntry = 1062
	mysqlFKViolation    = 1452
)

// translateDBError converts driver errors into domain error kinds. The
// database's own constraint enforcement is the source of truth; advisory
// pre-checks in handlers only improve messages.
func translateDBError(resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry:
			return domain.ConflictError{Resource: resource, Msg: "duplicate entry", Err: err}
		case mysqlFKViolation:
			return domain.ValidationError{Msg: resource + " references a missing record", Err: err}
		}
	}
	return domain.InternalError{Msg: "database error", Err: err}
}

func nullTimeToPtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

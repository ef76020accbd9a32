package repositories

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"

	"erpBack/internal/models"
)

const (
	mysqlDuplicateEntry   = 1062
	mysqlForeignKey       = 1452
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	sqliteConstraint      = 19
)

// uniqueViolation extracts the offending key description from a uniqueness
// failure reported by MySQL/MariaDB, Postgres or SQLite.
func uniqueViolation(err error) (string, bool) {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		// Duplicate entry 'x' for key 'table.index'
		if i := strings.LastIndex(mysqlErr.Message, "for key"); i >= 0 {
			return strings.ToLower(mysqlErr.Message[i:]), true
		}
		return strings.ToLower(mysqlErr.Message), true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		key := pgErr.Detail
		if i := strings.Index(key, "="); i >= 0 {
			key = key[:i]
		}
		return strings.ToLower(pgErr.ConstraintName + " " + key), true
	}
	if msg, ok := sqliteConstraintMessage(err); ok && (strings.Contains(msg, "UNIQUE") || strings.Contains(msg, "PRIMARY KEY")) {
		// UNIQUE constraint failed: table.column
		if i := strings.Index(msg, "failed:"); i >= 0 {
			msg = msg[i:]
		}
		return strings.ToLower(msg), true
	}
	return "", false
}

func isForeignKeyViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlForeignKey {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return true
	}
	msg, ok := sqliteConstraintMessage(err)
	return ok && strings.Contains(msg, "FOREIGN KEY")
}

// sqliteConstraintMessage returns the message of a SQLite constraint error.
// The low byte of an extended result code is the primary code.
func sqliteConstraintMessage(err error) (string, bool) {
	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) || liteErr.Code()&0xff != sqliteConstraint {
		return "", false
	}
	return liteErr.Error(), true
}

// classifyItemWriteError turns store failures of an item insert or update
// into the sentinels the service reports to the user.
func classifyItemWriteError(err error) error {
	if err == nil {
		return nil
	}
	if key, ok := uniqueViolation(err); ok {
		switch {
		case strings.Contains(key, "sku"):
			return models.ErrDuplicateSKU
		case strings.Contains(key, "name"):
			return models.ErrDuplicateItemName
		default:
			return models.ErrItemConflict
		}
	}
	if isForeignKeyViolation(err) {
		return models.ErrCategoryNotFound
	}
	return err
}

func classifyCategoryWriteError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := uniqueViolation(err); ok {
		return models.ErrDuplicateCategory
	}
	return err
}

package repositories

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Dialect names the database/sql driver a repository talks to.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "pgx"
	DialectSQLite   Dialect = "sqlite"
)

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch d := Dialect(driver); d {
	case DialectMySQL, DialectPostgres, DialectSQLite:
		return d, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

// Builder returns a squirrel statement builder using the placeholder style of the driver.
func (d Dialect) Builder() squirrel.StatementBuilderType {
	if d == DialectPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// lockRows adds a row lock to a select that runs inside a transaction.
// SQLite locks the whole database on write and has no FOR UPDATE.
func (d Dialect) lockRows(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	if d == DialectSQLite {
		return q
	}
	return q.Suffix("FOR UPDATE")
}

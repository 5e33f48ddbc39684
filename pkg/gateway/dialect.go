package gateway

import (
	"fmt"
	"strings"
)

// Dialect определяет SQL диалект целевой СУБД
type Dialect string

const (
	// DialectMySQL - MySQL/MariaDB: backtick quoting, плейсхолдер ?, REPLACE INTO
	DialectMySQL Dialect = "mysql"
	// DialectPostgres - PostgreSQL: double-quote quoting, плейсхолдеры $1..$N,
	// upsert через INSERT ... ON CONFLICT
	DialectPostgres Dialect = "postgres"
	// DialectSQLite - SQLite: double-quote quoting, плейсхолдер ?, REPLACE INTO
	DialectSQLite Dialect = "sqlite"
)

// QuoteIdentifier квотирует идентификатор (имя таблицы или колонки)
// согласно диалекту
func (d Dialect) QuoteIdentifier(name string) string {
	switch d {
	case DialectMySQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// Placeholder возвращает плейсхолдер параметра с порядковым номером n (с 1)
func (d Dialect) Placeholder(n int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// SupportsReplaceInto проверяет поддержку REPLACE INTO диалектом
func (d Dialect) SupportsReplaceInto() bool {
	return d == DialectMySQL || d == DialectSQLite
}

package sync

import (
	"fmt"
	"strings"

	"github.com/ruslano69/rowsync/pkg/core/dataset"
	"github.com/ruslano69/rowsync/pkg/gateway"
)

// StatementBuilder строит параметризованные statements для одной строки.
// Форма SQL (идентификаторы, плейсхолдеры) отделена от значений:
// значения никогда не подставляются в текст запроса.
type StatementBuilder struct {
	dialect gateway.Dialect
	enc     *Encoder
}

// NewStatementBuilder создает builder для диалекта шлюза
func NewStatementBuilder(dialect gateway.Dialect, enc *Encoder) *StatementBuilder {
	return &StatementBuilder{
		dialect: dialect,
		enc:     enc,
	}
}

// columnList возвращает квотированный список колонок через запятую
func (b *StatementBuilder) columnList(columns []string) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = b.dialect.QuoteIdentifier(col)
	}
	return strings.Join(quoted, ", ")
}

// placeholderList возвращает список плейсхолдеров начиная с номера start
func (b *StatementBuilder) placeholderList(n, start int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = b.dialect.Placeholder(start + i)
	}
	return strings.Join(parts, ", ")
}

// Insert строит INSERT INTO t (<все колонки>) VALUES (...) по порядку колонок
func (b *StatementBuilder) Insert(table string, columns []string, row dataset.Row) gateway.Statement {
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		b.dialect.QuoteIdentifier(table),
		b.columnList(columns),
		b.placeholderList(len(columns), 1))

	return gateway.Statement{SQL: sql, Args: b.enc.Args(row, columns)}
}

// Replace строит statement полной перезаписи строки по всем колонкам.
// MySQL/MariaDB и SQLite: REPLACE INTO.
// PostgreSQL: INSERT ... ON CONFLICT (<pk>) DO UPDATE SET c = EXCLUDED.c -
// требует первичный ключ.
func (b *StatementBuilder) Replace(table string, columns []string, primaryKeys []string, row dataset.Row) (gateway.Statement, error) {
	if b.dialect.SupportsReplaceInto() {
		sql := fmt.Sprintf("REPLACE INTO %s (%s) VALUES (%s)",
			b.dialect.QuoteIdentifier(table),
			b.columnList(columns),
			b.placeholderList(len(columns), 1))
		return gateway.Statement{SQL: sql, Args: b.enc.Args(row, columns)}, nil
	}

	if len(primaryKeys) == 0 {
		return gateway.Statement{}, fmt.Errorf("replace on %s dialect: %w", b.dialect, ErrNoPrimaryKey)
	}

	pkSet := make(map[string]struct{}, len(primaryKeys))
	for _, pk := range primaryKeys {
		pkSet[pk] = struct{}{}
	}

	var updates []string
	for _, col := range columns {
		if _, isPK := pkSet[col]; isPK {
			continue
		}
		q := b.dialect.QuoteIdentifier(col)
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", q, q))
	}

	conflict := "DO NOTHING"
	if len(updates) > 0 {
		conflict = "DO UPDATE SET " + strings.Join(updates, ", ")
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) %s",
		b.dialect.QuoteIdentifier(table),
		b.columnList(columns),
		b.placeholderList(len(columns), 1),
		b.columnList(primaryKeys),
		conflict)

	return gateway.Statement{SQL: sql, Args: b.enc.Args(row, columns)}, nil
}

// Update строит UPDATE t SET <не-ключевые колонки> WHERE <pk конъюнкция>.
// Колонки первичного ключа никогда не попадают в SET список;
// порядок конъюнктов WHERE следует порядку primaryKeys.
func (b *StatementBuilder) Update(table string, columns []string, primaryKeys []string, row dataset.Row) (gateway.Statement, error) {
	if len(primaryKeys) == 0 {
		return gateway.Statement{}, ErrNoPrimaryKey
	}

	pkSet := make(map[string]struct{}, len(primaryKeys))
	for _, pk := range primaryKeys {
		pkSet[pk] = struct{}{}
	}

	var (
		sets []string
		args []any
		n    = 1
	)
	for _, col := range columns {
		if _, isPK := pkSet[col]; isPK {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = %s", b.dialect.QuoteIdentifier(col), b.dialect.Placeholder(n)))
		args = append(args, b.enc.Arg(row[col]))
		n++
	}

	if len(sets) == 0 {
		return gateway.Statement{}, ErrNoUpdatableColumns
	}

	var conds []string
	for _, pk := range primaryKeys {
		conds = append(conds, fmt.Sprintf("%s = %s", b.dialect.QuoteIdentifier(pk), b.dialect.Placeholder(n)))
		args = append(args, b.enc.Arg(row[pk]))
		n++
	}

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		b.dialect.QuoteIdentifier(table),
		strings.Join(sets, ", "),
		strings.Join(conds, " AND "))

	return gateway.Statement{SQL: sql, Args: args}, nil
}

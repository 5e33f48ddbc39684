// Package base содержит общую реализацию шлюза поверх database/sql.
// Специфичные адаптеры (mariadb, postgres, sqlite) встраивают SQLGateway
// и добавляют подключение и чтение метаданных своего диалекта.
package base

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ruslano69/rowsync/pkg/core/dataset"
	"github.com/ruslano69/rowsync/pkg/gateway"
)

// SQLGateway - общая часть шлюза для database/sql совместимых драйверов
type SQLGateway struct {
	DB  *sql.DB
	Cfg gateway.Config
	Log zerolog.Logger

	DialectVal   gateway.Dialect
	VersionQuery string // запрос версии СУБД, специфичен для диалекта
}

// Init инициализирует общую часть после успешного подключения драйвера
func (g *SQLGateway) Init(db *sql.DB, d gateway.Dialect, cfg gateway.Config, log zerolog.Logger) {
	g.DB = db
	g.Cfg = cfg
	g.DialectVal = d
	g.Log = log.With().Str("gateway", string(d)).Logger()

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
}

// Close закрывает соединение с базой данных
func (g *SQLGateway) Close(ctx context.Context) error {
	if g.DB != nil {
		return g.DB.Close()
	}
	return nil
}

// Ping проверяет соединение с базой данных
func (g *SQLGateway) Ping(ctx context.Context) error {
	if g.DB == nil {
		return fmt.Errorf("gateway is not connected")
	}
	return g.DB.PingContext(ctx)
}

// Dialect возвращает SQL диалект шлюза
func (g *SQLGateway) Dialect() gateway.Dialect {
	return g.DialectVal
}

// Execute выполняет statement и возвращает число затронутых строк
func (g *SQLGateway) Execute(ctx context.Context, stmt gateway.Statement) (int64, error) {
	g.Log.Debug().Str("sql", stmt.SQL).Int("args", len(stmt.Args)).Msg("execute")

	res, err := g.DB.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		// Не все драйверы сообщают affected rows - это не ошибка выполнения
		return 0, nil
	}
	return affected, nil
}

// FetchQuery выполняет запрос и возвращает результат как Dataset.
// Колонки датасета следуют порядку колонок результата.
func (g *SQLGateway) FetchQuery(ctx context.Context, stmt gateway.Statement) (*dataset.Dataset, error) {
	g.Log.Debug().Str("sql", stmt.SQL).Msg("fetch")

	rows, err := g.DB.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	ds := dataset.New(columns...)
	raw := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(dataset.Row, len(columns))
		for i, col := range columns {
			row[col] = dataset.FromAny(raw[i])
		}
		ds.AppendRow(row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ds, nil
}

// FetchTable возвращает всю таблицу как Dataset
func (g *SQLGateway) FetchTable(ctx context.Context, tableName string) (*dataset.Dataset, error) {
	query := fmt.Sprintf("SELECT * FROM %s", g.DialectVal.QuoteIdentifier(tableName))
	return g.FetchQuery(ctx, gateway.Statement{SQL: query})
}

// RowExists проверяет существование строки по значению колонки-идентификатора.
// Пробный запрос - полный SELECT * с фильтром; true если результат непуст.
func (g *SQLGateway) RowExists(ctx context.Context, tableName, column string, id dataset.Value) (bool, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = %s",
		g.DialectVal.QuoteIdentifier(tableName),
		g.DialectVal.QuoteIdentifier(column),
		g.DialectVal.Placeholder(1))

	rows, err := g.DB.QueryContext(ctx, query, id.Native())
	if err != nil {
		return false, fmt.Errorf("failed to probe row existence: %w", err)
	}
	defer rows.Close()

	exists := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("failed to probe row existence: %w", err)
	}

	g.Log.Debug().Str("table", tableName).Str("column", column).Bool("exists", exists).Msg("row probe")
	return exists, nil
}

// Version возвращает версию СУБД
func (g *SQLGateway) Version(ctx context.Context) (string, error) {
	var version string
	if err := g.DB.QueryRowContext(ctx, g.VersionQuery).Scan(&version); err != nil {
		return "", fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

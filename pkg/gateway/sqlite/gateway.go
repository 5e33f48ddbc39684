package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver (cgo-free)

	"github.com/ruslano69/rowsync/pkg/gateway"
	"github.com/ruslano69/rowsync/pkg/gateway/base"
)

// GatewayType идентификатор SQLite шлюза
const GatewayType = "sqlite"

// Gateway реализует gateway.Gateway для SQLite
type Gateway struct {
	base.SQLGateway

	log zerolog.Logger
}

func init() {
	// Регистрируем SQLite шлюз в фабрике
	gateway.Register(GatewayType, func() gateway.Gateway {
		return &Gateway{}
	})
}

// NewGateway создает шлюз с заданным логгером (до подключения)
func NewGateway(log zerolog.Logger) *Gateway {
	return &Gateway{log: log}
}

// Connect открывает SQLite базу данных.
// cfg.Database - путь к файлу или ":memory:" для БД в памяти.
func (g *Gateway) Connect(ctx context.Context, cfg gateway.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid gateway config: %w", err)
	}

	dsn := cfg.DSN
	if dsn == "" {
		dsn = cfg.Database
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite не поддерживает конкурентную запись - один writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	g.Init(db, gateway.DialectSQLite, cfg, g.log)
	g.VersionQuery = "SELECT sqlite_version()"

	return nil
}

// tableColumn - строка результата PRAGMA table_info
type tableColumn struct {
	name string
	pk   int // порядковый номер в первичном ключе, 0 = не входит в PK
}

// tableInfo читает PRAGMA table_info для таблицы.
// PRAGMA не поддерживает плейсхолдеры - имя таблицы квотируется.
func (g *Gateway) tableInfo(ctx context.Context, tableName string) ([]tableColumn, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", g.DialectVal.QuoteIdentifier(tableName))

	rows, err := g.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read table info: %w", err)
	}
	defer rows.Close()

	var columns []tableColumn
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dfltVal sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltVal, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan table info: %w", err)
		}
		columns = append(columns, tableColumn{name: name, pk: pk})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table info: %w", err)
	}

	return columns, nil
}

// PrimaryKeys возвращает упорядоченный набор колонок первичного ключа
func (g *Gateway) PrimaryKeys(ctx context.Context, tableName string) ([]string, error) {
	columns, err := g.tableInfo(ctx, tableName)
	if err != nil {
		return nil, err
	}

	var pkColumns []tableColumn
	for _, col := range columns {
		if col.pk > 0 {
			pkColumns = append(pkColumns, col)
		}
	}
	sort.Slice(pkColumns, func(i, j int) bool {
		return pkColumns[i].pk < pkColumns[j].pk
	})

	keys := make([]string, 0, len(pkColumns))
	for _, col := range pkColumns {
		keys = append(keys, col.name)
	}
	return keys, nil
}

// ColumnNames возвращает имена колонок таблицы в порядке объявления
func (g *Gateway) ColumnNames(ctx context.Context, tableName string) ([]string, error) {
	columns, err := g.tableInfo(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found or has no columns", tableName)
	}

	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.name
	}
	return names, nil
}

// TableExists проверяет существование таблицы
func (g *Gateway) TableExists(ctx context.Context, tableName string) (bool, error) {
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`

	var count int
	if err := g.DB.QueryRowContext(ctx, query, tableName).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}

	return count > 0, nil
}

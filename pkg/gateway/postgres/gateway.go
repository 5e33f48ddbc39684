package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver (pgx, database/sql режим)
	"github.com/rs/zerolog"

	"github.com/ruslano69/rowsync/pkg/gateway"
	"github.com/ruslano69/rowsync/pkg/gateway/base"
)

// GatewayType идентификатор PostgreSQL шлюза
const GatewayType = "postgres"

// Gateway реализует gateway.Gateway для PostgreSQL
type Gateway struct {
	base.SQLGateway

	log zerolog.Logger
}

func init() {
	// Регистрируем PostgreSQL шлюз в фабрике
	gateway.Register(GatewayType, func() gateway.Gateway {
		return &Gateway{}
	})
}

// NewGateway создает шлюз с заданным логгером (до подключения)
func NewGateway(log zerolog.Logger) *Gateway {
	return &Gateway{log: log}
}

// Connect подключается к PostgreSQL базе данных
func (g *Gateway) Connect(ctx context.Context, cfg gateway.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid gateway config: %w", err)
	}

	dsn := cfg.DSN
	if dsn == "" {
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Password),
			Host:   cfg.Addr(),
			Path:   "/" + cfg.Database,
		}
		if cfg.Timeout > 0 {
			q := u.Query()
			q.Set("connect_timeout", fmt.Sprintf("%d", int(cfg.Timeout.Seconds())))
			u.RawQuery = q.Encode()
		}
		dsn = u.String()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	g.Init(db, gateway.DialectPostgres, cfg, g.log)
	g.VersionQuery = "SELECT version()"

	return nil
}

// PrimaryKeys возвращает упорядоченный набор колонок первичного ключа
func (g *Gateway) PrimaryKeys(ctx context.Context, tableName string) ([]string, error) {
	query := `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name
		 AND kcu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_name = $1
		  AND tc.table_schema = current_schema()
		ORDER BY kcu.ordinal_position
	`

	rows, err := g.DB.QueryContext(ctx, query, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query primary keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan primary key column: %w", err)
		}
		keys = append(keys, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating primary keys: %w", err)
	}

	return keys, nil
}

// ColumnNames возвращает имена колонок таблицы в порядке объявления
func (g *Gateway) ColumnNames(ctx context.Context, tableName string) ([]string, error) {
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema()
		  AND table_name = $1
		ORDER BY ordinal_position
	`

	rows, err := g.DB.QueryContext(ctx, query, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		columns = append(columns, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found or has no columns", tableName)
	}

	return columns, nil
}

// TableExists проверяет существование таблицы
func (g *Gateway) TableExists(ctx context.Context, tableName string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = current_schema()
		  AND table_name = $1
	`

	var count int
	if err := g.DB.QueryRowContext(ctx, query, tableName).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}

	return count > 0, nil
}

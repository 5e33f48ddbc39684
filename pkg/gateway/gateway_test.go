package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruslano69/rowsync/pkg/core/dataset"
)

func TestDialect_QuoteIdentifier(t *testing.T) {
	tests := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{DialectMySQL, "accounts", "`accounts`"},
		{DialectMySQL, "weird`name", "`weird``name`"},
		{DialectPostgres, "accounts", `"accounts"`},
		{DialectPostgres, `weird"name`, `"weird""name"`},
		{DialectSQLite, "accounts", `"accounts"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.dialect.QuoteIdentifier(tt.in))
	}
}

func TestDialect_Placeholder(t *testing.T) {
	assert.Equal(t, "?", DialectMySQL.Placeholder(1))
	assert.Equal(t, "?", DialectSQLite.Placeholder(5))
	assert.Equal(t, "$1", DialectPostgres.Placeholder(1))
	assert.Equal(t, "$7", DialectPostgres.Placeholder(7))
}

func TestDialect_SupportsReplaceInto(t *testing.T) {
	assert.True(t, DialectMySQL.SupportsReplaceInto())
	assert.True(t, DialectSQLite.SupportsReplaceInto())
	assert.False(t, DialectPostgres.SupportsReplaceInto())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid mariadb",
			config: Config{
				Type:     "mariadb",
				Host:     "localhost",
				User:     "app",
				Database: "stocks_db",
			},
		},
		{
			name:   "valid sqlite without host",
			config: Config{Type: "sqlite", Database: ":memory:"},
		},
		{
			name:   "dsn overrides field checks",
			config: Config{Type: "mariadb", DSN: "app:secret@tcp(localhost:3306)/stocks_db"},
		},
		{
			name:    "missing type",
			config:  Config{Database: "stocks_db"},
			wantErr: true,
		},
		{
			name:    "missing database",
			config:  Config{Type: "mariadb", Host: "localhost"},
			wantErr: true,
		},
		{
			name:    "network type without host",
			config:  Config{Type: "postgres", Database: "stocks_db"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, "db:3306", Config{Type: "mariadb", Host: "db"}.Addr())
	assert.Equal(t, "db:5432", Config{Type: "postgres", Host: "db"}.Addr())
	assert.Equal(t, "db:13306", Config{Type: "mariadb", Host: "db", Port: 13306}.Addr())
}

func TestStatement_String(t *testing.T) {
	assert.Equal(t, "SELECT 1", Statement{SQL: "SELECT 1"}.String())
	assert.Equal(t,
		"INSERT INTO t VALUES (?, ?) -- args: [1, Alice]",
		Statement{SQL: "INSERT INTO t VALUES (?, ?)", Args: []any{1, "Alice"}}.String())
}

// stubGateway - минимальная реализация Gateway для тестов фабрики
type stubGateway struct {
	connectErr error
	connected  bool
}

func (s *stubGateway) Connect(ctx context.Context, cfg Config) error {
	if s.connectErr != nil {
		return s.connectErr
	}
	s.connected = true
	return nil
}
func (s *stubGateway) Close(ctx context.Context) error { return nil }
func (s *stubGateway) Ping(ctx context.Context) error  { return nil }
func (s *stubGateway) Execute(ctx context.Context, stmt Statement) (int64, error) {
	return 0, nil
}
func (s *stubGateway) FetchTable(ctx context.Context, tableName string) (*dataset.Dataset, error) {
	return dataset.New(), nil
}
func (s *stubGateway) FetchQuery(ctx context.Context, stmt Statement) (*dataset.Dataset, error) {
	return dataset.New(), nil
}
func (s *stubGateway) RowExists(ctx context.Context, tableName, column string, id dataset.Value) (bool, error) {
	return false, nil
}
func (s *stubGateway) PrimaryKeys(ctx context.Context, tableName string) ([]string, error) {
	return nil, nil
}
func (s *stubGateway) ColumnNames(ctx context.Context, tableName string) ([]string, error) {
	return nil, nil
}
func (s *stubGateway) TableExists(ctx context.Context, tableName string) (bool, error) {
	return false, nil
}
func (s *stubGateway) Version(ctx context.Context) (string, error) { return "stub", nil }
func (s *stubGateway) Dialect() Dialect                            { return DialectSQLite }

func TestFactory_CreateConnectsRegisteredGateway(t *testing.T) {
	f := NewFactory()
	stub := &stubGateway{}
	f.Register("stub", func() Gateway { return stub })

	require.True(t, f.IsRegistered("stub"))
	assert.Contains(t, f.RegisteredTypes(), "stub")

	gw, err := f.Create(context.Background(), Config{Type: "stub", Database: "x", Host: "h", Timeout: time.Second})
	require.NoError(t, err)
	assert.Same(t, stub, gw)
	assert.True(t, stub.connected)
}

func TestFactory_UnknownTypeFails(t *testing.T) {
	f := NewFactory()

	_, err := f.Create(context.Background(), Config{Type: "oracle", Database: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown database type")
}

package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/ruslano69/rowsync/pkg/core/dataset"
)

// Statement представляет SQL запрос с отделенными связанными параметрами.
// Форма запроса (SQL) статична, значения передаются драйверу через Args -
// подстановки строк в текст запроса нет нигде.
type Statement struct {
	SQL  string
	Args []any
}

// String возвращает представление запроса для логов:
// плейсхолдеры не раскрываются, параметры перечисляются отдельно
func (s Statement) String() string {
	if len(s.Args) == 0 {
		return s.SQL
	}
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return s.SQL + " -- args: [" + strings.Join(parts, ", ") + "]"
}

// Gateway - универсальный интерфейс шлюза к БД.
// Реализуется каждым специфичным адаптером (MariaDB, PostgreSQL, SQLite).
// Шлюз владеет соединением: Connect открывает, Close гарантированно
// освобождает на любом пути выхода (вызывается через defer).
type Gateway interface {
	// ========== Lifecycle ==========

	// Connect устанавливает подключение к БД
	Connect(ctx context.Context, cfg Config) error

	// Close закрывает подключение к БД
	Close(ctx context.Context) error

	// Ping проверяет доступность БД
	Ping(ctx context.Context) error

	// ========== Execute / Fetch ==========

	// Execute выполняет statement и возвращает число затронутых строк
	Execute(ctx context.Context, stmt Statement) (int64, error)

	// FetchTable возвращает всю таблицу как Dataset (SELECT *)
	FetchTable(ctx context.Context, tableName string) (*dataset.Dataset, error)

	// FetchQuery возвращает результат произвольного запроса как Dataset
	FetchQuery(ctx context.Context, stmt Statement) (*dataset.Dataset, error)

	// RowExists проверяет существование строки по значению колонки-идентификатора.
	// Пробный запрос - SELECT * с фильтром, true если результат непуст.
	RowExists(ctx context.Context, tableName, column string, id dataset.Value) (bool, error)

	// ========== Metadata ==========

	// PrimaryKeys возвращает упорядоченный набор колонок первичного ключа
	PrimaryKeys(ctx context.Context, tableName string) ([]string, error)

	// ColumnNames возвращает имена колонок таблицы в порядке объявления
	ColumnNames(ctx context.Context, tableName string) ([]string, error)

	// TableExists проверяет существование таблицы
	TableExists(ctx context.Context, tableName string) (bool, error)

	// Version возвращает версию СУБД
	Version(ctx context.Context) (string, error)

	// Dialect возвращает SQL диалект шлюза
	Dialect() Dialect
}

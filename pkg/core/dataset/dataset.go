package dataset

import (
	"errors"
	"fmt"
)

// ErrMissingIdentifier - строка не имеет значения колонки-идентификатора
// (запись отсутствует или NULL)
var ErrMissingIdentifier = errors.New("row has no identifier value")

// Row представляет одну строку данных: имя колонки → значение
type Row map[string]Value

// Dataset представляет упорядоченную таблицу в памяти.
// Порядок колонок значим: первая колонка - идентификатор строки.
// Имена колонок уникальны. Каждая строка обязана иметь значение
// (возможно NULL) для каждой колонки - см. Validate.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// New создает пустой Dataset с заданными колонками
func New(columns ...string) *Dataset {
	return &Dataset{
		Columns: columns,
		Rows:    []Row{},
	}
}

// KeyColumn возвращает колонку-идентификатор (первая колонка)
func (d *Dataset) KeyColumn() string {
	if len(d.Columns) == 0 {
		return ""
	}
	return d.Columns[0]
}

// Append добавляет строку из значений в порядке колонок
func (d *Dataset) Append(values ...Value) error {
	if len(values) != len(d.Columns) {
		return fmt.Errorf("expected %d values, got %d", len(d.Columns), len(values))
	}
	row := make(Row, len(values))
	for i, col := range d.Columns {
		row[col] = values[i]
	}
	d.Rows = append(d.Rows, row)
	return nil
}

// AppendRow добавляет готовую строку без проверок (проверяется через Validate)
func (d *Dataset) AppendRow(row Row) {
	d.Rows = append(d.Rows, row)
}

// NumRows возвращает количество строк
func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// Get возвращает значение ячейки. Отсутствующая запись в строке
// эквивалентна NULL.
func (d *Dataset) Get(rowIdx int, column string) Value {
	if rowIdx < 0 || rowIdx >= len(d.Rows) {
		return Null()
	}
	v, ok := d.Rows[rowIdx][column]
	if !ok {
		return Null()
	}
	return v
}

// Validate проверяет инварианты датасета:
//  1. есть хотя бы одна колонка
//  2. имена колонок уникальны и непусты
//  3. каждая строка не содержит колонок вне списка Columns
//  4. значение колонки-идентификатора присутствует и не NULL в каждой строке
func (d *Dataset) Validate() error {
	if len(d.Columns) == 0 {
		return fmt.Errorf("dataset has no columns")
	}

	seen := make(map[string]struct{}, len(d.Columns))
	for _, col := range d.Columns {
		if col == "" {
			return fmt.Errorf("dataset has empty column name")
		}
		if _, dup := seen[col]; dup {
			return fmt.Errorf("duplicate column name: %s", col)
		}
		seen[col] = struct{}{}
	}

	key := d.KeyColumn()
	for i, row := range d.Rows {
		for col := range row {
			if _, known := seen[col]; !known {
				return fmt.Errorf("row %d has unknown column: %s", i, col)
			}
		}
		id, ok := row[key]
		if !ok || id.IsNull() {
			return fmt.Errorf("row %d, key column %s: %w", i, key, ErrMissingIdentifier)
		}
	}

	return nil
}

// Clone возвращает глубокую копию датасета
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([]Row, len(d.Rows)),
	}
	for i, row := range d.Rows {
		copied := make(Row, len(row))
		for col, v := range row {
			copied[col] = v
		}
		out.Rows[i] = copied
	}
	return out
}

// Normalized возвращает копию, в которой каждая строка имеет явное значение
// для каждой колонки: пропущенные записи заполняются NULL (аналог fillna).
// Исходный датасет не изменяется.
func (d *Dataset) Normalized() *Dataset {
	out := d.Clone()
	for _, row := range out.Rows {
		for _, col := range out.Columns {
			if _, ok := row[col]; !ok {
				row[col] = Null()
			}
		}
	}
	return out
}

// Equal сравнивает два датасета по колонкам и значениям (порядок строк значим)
func (d *Dataset) Equal(other *Dataset) bool {
	if other == nil || len(d.Columns) != len(other.Columns) || len(d.Rows) != len(other.Rows) {
		return false
	}
	for i := range d.Columns {
		if d.Columns[i] != other.Columns[i] {
			return false
		}
	}
	for i := range d.Rows {
		for _, col := range d.Columns {
			if !d.Get(i, col).Equal(other.Get(i, col)) {
				return false
			}
		}
	}
	return true
}

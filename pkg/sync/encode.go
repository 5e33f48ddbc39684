package sync

import (
	"github.com/ruslano69/rowsync/pkg/core/dataset"
)

// EncodeMode определяет стратегию привязки значений к параметрам statement
type EncodeMode int

const (
	// EncodeTyped - значения привязываются нативными Go типами
	// (int64, float64, bool, time.Time), драйвер сам формирует literal.
	// Рекомендуемый режим, используется по умолчанию.
	EncodeTyped EncodeMode = iota

	// EncodeCompat - каждое не-NULL значение привязывается строкой,
	// независимо от исходного типа: числа, даты и bool уходят в БД
	// как текстовые literals. Режим совместимости с историческим
	// поведением "всегда квотировать не-NULL".
	EncodeCompat
)

// Encoder конвертирует значения датасета в аргументы statement.
// NULL в обоих режимах привязывается как nil (несет NULL в SQL, без кавычек).
type Encoder struct {
	mode EncodeMode
}

// NewEncoder создает Encoder с заданным режимом
func NewEncoder(mode EncodeMode) *Encoder {
	return &Encoder{mode: mode}
}

// Mode возвращает режим кодирования
func (e *Encoder) Mode() EncodeMode {
	return e.mode
}

// Arg возвращает значение в форме аргумента database/sql
func (e *Encoder) Arg(v dataset.Value) any {
	if v.IsNull() {
		return nil
	}
	if e.mode == EncodeCompat {
		return v.Text()
	}
	return v.Native()
}

// Args кодирует значения строки в порядке заданных колонок
func (e *Encoder) Args(row dataset.Row, columns []string) []any {
	args := make([]any, len(columns))
	for i, col := range columns {
		args[i] = e.Arg(row[col])
	}
	return args
}

package sync

import (
	"errors"
	"fmt"

	"github.com/ruslano69/rowsync/pkg/core/dataset"
)

// ConflictPolicy определяет поведение при существующей строке
// с тем же идентификатором в целевой таблице
type ConflictPolicy string

const (
	// PolicyFail - существующие строки не трогаем: строка пропускается,
	// statement не выполняется
	PolicyFail ConflictPolicy = "fail"

	// PolicyReplace - существующая строка полностью перезаписывается,
	// незаданные значения становятся NULL
	PolicyReplace ConflictPolicy = "replace"

	// PolicyUpdate - обновляются только не-ключевые колонки существующей
	// строки, первичный ключ не изменяется
	PolicyUpdate ConflictPolicy = "update"
)

// ParsePolicy разбирает строковое представление политики.
// Неизвестное значение - ошибка конфигурации (ErrUnknownPolicy).
func ParsePolicy(s string) (ConflictPolicy, error) {
	switch ConflictPolicy(s) {
	case PolicyFail, PolicyReplace, PolicyUpdate:
		return ConflictPolicy(s), nil
	default:
		return "", fmt.Errorf("%w: %q (supported: fail, replace, update)", ErrUnknownPolicy, s)
	}
}

// ProbePolicy определяет поведение при сбое пробного запроса существования
type ProbePolicy string

const (
	// ProbeFail - сбой пробы фатален для всего вызова Sync (по умолчанию)
	ProbeFail ProbePolicy = "fail"

	// ProbeRetry - проба повторяется с backoff; после исчерпания попыток
	// сбой фатален
	ProbeRetry ProbePolicy = "retry"

	// ProbeAssumeAbsent - сбой логируется как warning, строка считается
	// отсутствующей и уходит в INSERT ветку. Режим совместимости с
	// историческим поведением, не рекомендуется.
	ProbeAssumeAbsent ProbePolicy = "assume-absent"
)

// Ошибки синхронизации
var (
	// ErrUnknownPolicy - нераспознанная политика конфликтов,
	// фатальна для всего вызова Sync до обработки первой строки
	ErrUnknownPolicy = errors.New("unknown conflict policy")

	// ErrNoPrimaryKey - у целевой таблицы нет первичного ключа,
	// политика update невозможна
	ErrNoPrimaryKey = errors.New("table has no primary key")

	// ErrNoUpdatableColumns - все колонки датасета входят в первичный
	// ключ, SET список для update пуст
	ErrNoUpdatableColumns = errors.New("no non-key columns to update")
)

// Action - действие, примененное к строке
type Action string

const (
	ActionInserted Action = "inserted"
	ActionReplaced Action = "replaced"
	ActionUpdated  Action = "updated"
	ActionSkipped  Action = "skipped"
	ActionFailed   Action = "failed"
)

// RowOutcome - результат обработки одной строки датасета
type RowOutcome struct {
	// Key - значение колонки-идентификатора строки
	Key dataset.Value

	// Action - примененное действие
	Action Action

	// Err - причина сбоя (только для ActionFailed)
	Err error
}

// Summary - агрегированная сводка по вызову Sync
type Summary struct {
	Inserted int
	Replaced int
	Updated  int
	Skipped  int
	Failed   int
}

// Total возвращает общее количество обработанных строк
func (s Summary) Total() int {
	return s.Inserted + s.Replaced + s.Updated + s.Skipped + s.Failed
}

// Summarize агрегирует результаты строк в сводку
func Summarize(outcomes []RowOutcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Action {
		case ActionInserted:
			s.Inserted++
		case ActionReplaced:
			s.Replaced++
		case ActionUpdated:
			s.Updated++
		case ActionSkipped:
			s.Skipped++
		case ActionFailed:
			s.Failed++
		}
	}
	return s
}

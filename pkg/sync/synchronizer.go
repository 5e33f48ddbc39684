// Package sync реализует построчную синхронизацию датасета в памяти
// с существующей таблицей реляционной БД.
//
// Для каждой строки по значению колонки-идентификатора (первая колонка
// датасета) проверяется существование строки в целевой таблице, после чего
// строка вставляется, перезаписывается, обновляется или пропускается -
// согласно объявленной политике конфликтов. Statements выполняются через
// шлюз gateway.Gateway строго в порядке строк датасета на одном соединении.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ruslano69/rowsync/pkg/core/dataset"
	"github.com/ruslano69/rowsync/pkg/gateway"
	"github.com/ruslano69/rowsync/pkg/retry"
)

// Options - настройки синхронизатора
type Options struct {
	// Encoding - режим кодирования значений (EncodeTyped по умолчанию)
	Encoding EncodeMode

	// ProbePolicy - поведение при сбое пробного запроса (ProbeFail по умолчанию)
	ProbePolicy ProbePolicy

	// ContinueOnError - продолжать обработку последующих строк после сбоя
	// строки. По умолчанию false: первый сбой прерывает весь вызов Sync,
	// сбойная строка фиксируется в результатах с ActionFailed.
	ContinueOnError bool

	// Retry - конфигурация повторов пробных запросов (только для ProbeRetry;
	// нулевое значение = retry.DefaultConfig)
	Retry retry.Config
}

// Synchronizer выполняет построчную синхронизацию датасетов в таблицы БД.
// Датасет принадлежит вызывающему и не изменяется: нормализация применяется
// к приватной рабочей копии. Synchronizer безопасен для последовательных
// вызовов Sync; одно соединение шлюза не должно использоваться конкурентно.
type Synchronizer struct {
	gw      gateway.Gateway
	log     zerolog.Logger
	opts    Options
	retryer *retry.Retryer
}

// NewSynchronizer создает синхронизатор поверх подключенного шлюза
func NewSynchronizer(gw gateway.Gateway, log zerolog.Logger, opts Options) (*Synchronizer, error) {
	switch opts.ProbePolicy {
	case "", ProbeFail, ProbeRetry, ProbeAssumeAbsent:
	default:
		return nil, fmt.Errorf("unknown probe policy: %q", opts.ProbePolicy)
	}

	s := &Synchronizer{
		gw:   gw,
		log:  log.With().Str("component", "synchronizer").Logger(),
		opts: opts,
	}

	if opts.ProbePolicy == ProbeRetry {
		cfg := opts.Retry
		if !cfg.Enabled {
			cfg = retry.DefaultConfig()
		}
		retryer, err := retry.NewRetryer(cfg)
		if err != nil {
			return nil, err
		}
		s.retryer = retryer
	}

	return s, nil
}

// Sync синхронизирует датасет с существующей таблицей tableName под
// политикой policy. Строки обрабатываются строго в порядке датасета;
// для каждой возвращается RowOutcome.
//
// Предусловия (ответственность вызывающего): таблица существует, имена
// колонок датасета совпадают с колонками таблицы, первая колонка датасета -
// идентификатор строки. Синхронизатор не валидирует схему сверх того,
// что отвергнет само выполнение statement.
//
// Нераспознанная политика - ошибка конфигурации: вызов прерывается до
// обработки первой строки, ни один statement не выполняется. Сбой строки
// по умолчанию прерывает весь вызов (возвращаются накопленные результаты
// и ошибка); с Options.ContinueOnError сбойная строка получает
// ActionFailed и обработка продолжается.
func (s *Synchronizer) Sync(ctx context.Context, ds *dataset.Dataset, tableName string, policy ConflictPolicy) ([]RowOutcome, error) {
	switch policy {
	case PolicyFail, PolicyReplace, PolicyUpdate:
	default:
		return nil, fmt.Errorf("%w: %q (supported: fail, replace, update)", ErrUnknownPolicy, policy)
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	// Рабочая копия: пропущенные значения становятся явными NULL,
	// датасет вызывающего не изменяется
	work := ds.Normalized()
	key := work.KeyColumn()

	builder := NewStatementBuilder(s.gw.Dialect(), NewEncoder(s.opts.Encoding))

	started := time.Now()
	s.log.Info().
		Str("table", tableName).
		Str("policy", string(policy)).
		Int("rows", work.NumRows()).
		Msg("sync started")

	// PrimaryKeySet читается лениво, один раз на весь вызов
	var (
		primaryKeys []string
		pksLoaded   bool
	)
	loadKeys := func() ([]string, error) {
		if pksLoaded {
			return primaryKeys, nil
		}
		keys, err := s.gw.PrimaryKeys(ctx, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to discover primary keys of %s: %w", tableName, err)
		}
		primaryKeys = keys
		pksLoaded = true
		return primaryKeys, nil
	}

	outcomes := make([]RowOutcome, 0, work.NumRows())
	for i, row := range work.Rows {
		id := row[key]

		action, err := s.syncRow(ctx, builder, tableName, work.Columns, key, row, policy, loadKeys)
		if err != nil {
			err = fmt.Errorf("row %d (%s=%s): %w", i, key, id, err)
			outcomes = append(outcomes, RowOutcome{Key: id, Action: ActionFailed, Err: err})
			if !s.opts.ContinueOnError {
				return outcomes, err
			}
			s.log.Error().Err(err).Msg("row failed, continuing")
			continue
		}

		outcomes = append(outcomes, RowOutcome{Key: id, Action: action})
	}

	summary := Summarize(outcomes)
	s.log.Info().
		Str("table", tableName).
		Int("inserted", summary.Inserted).
		Int("replaced", summary.Replaced).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Dur("elapsed", time.Since(started)).
		Msg("sync finished")

	return outcomes, nil
}

// syncRow обрабатывает одну строку: проба существования, выбор ветки,
// построение и выполнение statement
func (s *Synchronizer) syncRow(
	ctx context.Context,
	builder *StatementBuilder,
	tableName string,
	columns []string,
	key string,
	row dataset.Row,
	policy ConflictPolicy,
	loadKeys func() ([]string, error),
) (Action, error) {
	exists, err := s.probe(ctx, tableName, key, row[key])
	if err != nil {
		return ActionFailed, fmt.Errorf("existence probe failed: %w", err)
	}

	if !exists {
		stmt := builder.Insert(tableName, columns, row)
		if _, err := s.gw.Execute(ctx, stmt); err != nil {
			return ActionFailed, fmt.Errorf("insert failed: %w", err)
		}
		s.log.Debug().Str("table", tableName).Stringer("id", row[key]).Msg("insert entry")
		return ActionInserted, nil
	}

	switch policy {
	case PolicyFail:
		// Намеренный no-op: без явного согласия не перезаписываем
		s.log.Info().Str("table", tableName).Stringer("id", row[key]).
			Msgf("duplicate entry for key %s, no update", key)
		return ActionSkipped, nil

	case PolicyReplace:
		// PostgreSQL диалект выражает replace через INSERT ... ON CONFLICT
		// и требует набор колонок первичного ключа
		var primaryKeys []string
		if !s.gw.Dialect().SupportsReplaceInto() {
			if primaryKeys, err = loadKeys(); err != nil {
				return ActionFailed, err
			}
		}
		stmt, err := builder.Replace(tableName, columns, primaryKeys, row)
		if err != nil {
			return ActionFailed, fmt.Errorf("failed to build replace statement: %w", err)
		}
		if _, err := s.gw.Execute(ctx, stmt); err != nil {
			return ActionFailed, fmt.Errorf("replace failed: %w", err)
		}
		s.log.Debug().Str("table", tableName).Stringer("id", row[key]).Msg("replace entry")
		return ActionReplaced, nil

	case PolicyUpdate:
		primaryKeys, err := loadKeys()
		if err != nil {
			return ActionFailed, err
		}
		if len(primaryKeys) == 0 {
			return ActionFailed, fmt.Errorf("failed to build update statement: %w", ErrNoPrimaryKey)
		}
		stmt, err := builder.Update(tableName, columns, primaryKeys, row)
		if err != nil {
			return ActionFailed, fmt.Errorf("failed to build update statement: %w", err)
		}
		if _, err := s.gw.Execute(ctx, stmt); err != nil {
			return ActionFailed, fmt.Errorf("update failed: %w", err)
		}
		s.log.Debug().Str("table", tableName).Stringer("id", row[key]).Msg("update entry")
		return ActionUpdated, nil
	}

	// Недостижимо: политика проверена на входе Sync
	return ActionFailed, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
}

// probe выполняет пробный запрос существования согласно ProbePolicy
func (s *Synchronizer) probe(ctx context.Context, tableName, column string, id dataset.Value) (bool, error) {
	switch s.opts.ProbePolicy {
	case ProbeRetry:
		var exists bool
		err := s.retryer.Do(ctx, func(ctx context.Context) error {
			var probeErr error
			exists, probeErr = s.gw.RowExists(ctx, tableName, column, id)
			return probeErr
		})
		return exists, err

	case ProbeAssumeAbsent:
		exists, err := s.gw.RowExists(ctx, tableName, column, id)
		if err != nil {
			s.log.Warn().Err(err).
				Str("table", tableName).
				Stringer("id", id).
				Msg("existence probe failed, assuming row is absent")
			return false, nil
		}
		return exists, nil

	default: // ProbeFail
		return s.gw.RowExists(ctx, tableName, column, id)
	}
}

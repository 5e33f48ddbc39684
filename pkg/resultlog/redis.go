// Package resultlog публикует результаты синхронизации в Redis
// для внешних оркестраторов и мониторинга.
package resultlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ruslano69/rowsync/pkg/sync"
)

// Config - настройки публикации результатов
type Config struct {
	// Address - адрес Redis (host:port)
	Address string `yaml:"address"`

	// Password - пароль Redis (пусто = без авторизации)
	Password string `yaml:"password,omitempty"`

	// DB - номер базы Redis
	DB int `yaml:"db,omitempty"`

	// TTL - время жизни state-ключа в секундах (0 = без истечения)
	TTL int `yaml:"ttl,omitempty"`
}

// SyncResult представляет результат синхронизации, публикуемый в Redis
// после завершения вызова Sync (успешного или с ошибкой).
//
// Redis-ключи:
//
//	SET  rowsync:table:<table>:state  <JSON>  EX <ttl>  — для GET-запросов оркестратора
//	PUB  rowsync:table:<table>                          — для event-driven маршрутизации
type SyncResult struct {
	Table           string    `json:"table"`
	Policy          string    `json:"policy"`
	Status          string    `json:"status"` // "success" | "failed"
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	DurationMs      int64     `json:"duration_ms"`
	Inserted        int       `json:"inserted"`
	Replaced        int       `json:"replaced"`
	Updated         int       `json:"updated"`
	Skipped         int       `json:"skipped"`
	Failed          int       `json:"failed"`
	DatasetChecksum string    `json:"dataset_checksum,omitempty"`
	Error           *string   `json:"error,omitempty"`
}

// NewSyncResult собирает SyncResult из сводки синхронизатора.
// execErr == nil означает успешное выполнение.
func NewSyncResult(table string, policy sync.ConflictPolicy, summary sync.Summary, startedAt, finishedAt time.Time, execErr error) SyncResult {
	result := SyncResult{
		Table:      table,
		Policy:     string(policy),
		Status:     "success",
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		DurationMs: finishedAt.Sub(startedAt).Milliseconds(),
		Inserted:   summary.Inserted,
		Replaced:   summary.Replaced,
		Updated:    summary.Updated,
		Skipped:    summary.Skipped,
		Failed:     summary.Failed,
	}

	if execErr != nil {
		result.Status = "failed"
		errStr := execErr.Error()
		result.Error = &errStr
	}

	return result
}

// RedisPublisher публикует результаты синхронизации в Redis
type RedisPublisher struct {
	client *redis.Client
	config Config
}

// NewRedisPublisher создает новый Redis publisher на основе конфигурации
func NewRedisPublisher(config Config) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.DB,
	})
	return &RedisPublisher{client: client, config: config}
}

// Publish публикует результат синхронизации:
//   - SET rowsync:table:<table>:state <JSON> EX <ttl>  → для опроса (polling)
//   - PUBLISH rowsync:table:<table> <JSON>             → для подписки (pub/sub)
//
// Вызывается независимо от результата выполнения (success или failed).
func (p *RedisPublisher) Publish(ctx context.Context, result SyncResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	stateKey := fmt.Sprintf("rowsync:table:%s:state", result.Table)
	eventChannel := fmt.Sprintf("rowsync:table:%s", result.Table)
	ttl := time.Duration(p.config.TTL) * time.Second

	// SET ключ с TTL — оркестратор может GET для получения последнего состояния
	if err := p.client.Set(ctx, stateKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}

	// PUBLISH событие — оркестратор может SUBSCRIBE для event-driven маршрутизации
	if err := p.client.Publish(ctx, eventChannel, payload).Err(); err != nil {
		return fmt.Errorf("redis PUBLISH failed: %w", err)
	}

	return nil
}

// Close закрывает соединение с Redis
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

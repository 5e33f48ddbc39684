package retry

import (
	"fmt"
	"time"
)

// BackoffStrategy определяет стратегию задержки между повторами
type BackoffStrategy string

const (
	// BackoffConstant - постоянная задержка
	BackoffConstant BackoffStrategy = "constant"
	// BackoffLinear - линейное увеличение задержки
	BackoffLinear BackoffStrategy = "linear"
	// BackoffExponential - экспоненциальное увеличение задержки
	BackoffExponential BackoffStrategy = "exponential"
)

// Config содержит конфигурацию для retry механизма
type Config struct {
	// Enabled - включить retry механизм
	Enabled bool

	// MaxAttempts - максимальное количество попыток (включая первую)
	// 0 = бесконечные попытки (не рекомендуется)
	MaxAttempts int

	// InitialDelay - начальная задержка перед первым retry
	InitialDelay time.Duration

	// MaxDelay - максимальная задержка между попытками
	MaxDelay time.Duration

	// BackoffStrategy - стратегия увеличения задержки
	BackoffStrategy BackoffStrategy

	// BackoffMultiplier - множитель для exponential backoff (обычно 2.0)
	BackoffMultiplier float64

	// Jitter - добавлять случайность к задержке (0.0 - 1.0)
	// Помогает избежать "thundering herd" проблемы
	Jitter float64

	// RetryableErrors - список ошибок, для которых нужен retry
	// Пустой список = retry для всех ошибок
	RetryableErrors []string

	// OnRetry - callback функция, вызываемая перед каждым retry
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts cannot be negative")
	}

	if c.InitialDelay < 0 {
		return fmt.Errorf("initial_delay cannot be negative")
	}

	if c.MaxDelay > 0 && c.MaxDelay < c.InitialDelay {
		return fmt.Errorf("max_delay cannot be less than initial_delay")
	}

	switch c.BackoffStrategy {
	case "", BackoffConstant, BackoffLinear, BackoffExponential:
	default:
		return fmt.Errorf("invalid backoff strategy: %s (supported: constant, linear, exponential)", c.BackoffStrategy)
	}

	if c.BackoffStrategy == BackoffExponential && c.BackoffMultiplier <= 1.0 {
		return fmt.Errorf("backoff_multiplier must be greater than 1.0 for exponential backoff")
	}

	if c.Jitter < 0 || c.Jitter > 1 {
		return fmt.Errorf("jitter must be between 0.0 and 1.0")
	}

	return nil
}

// DefaultConfig возвращает конфигурацию по умолчанию (3 попытки,
// exponential backoff от 100ms до 2s)
func DefaultConfig() Config {
	return Config{
		Enabled:           true,
		MaxAttempts:       3,
		InitialDelay:      100 * time.Millisecond,
		MaxDelay:          2 * time.Second,
		BackoffStrategy:   BackoffExponential,
		BackoffMultiplier: 2.0,
		Jitter:            0.1,
	}
}

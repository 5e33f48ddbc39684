package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Enabled:           true,
		MaxAttempts:       3,
		InitialDelay:      time.Millisecond,
		MaxDelay:          10 * time.Millisecond,
		BackoffStrategy:   BackoffConstant,
		BackoffMultiplier: 2.0,
	}
}

func TestRetryer_SucceedsFirstAttempt(t *testing.T) {
	r, err := NewRetryer(testConfig())
	require.NoError(t, err)

	calls := 0
	err = r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryer_RecoversAfterFailures(t *testing.T) {
	r, err := NewRetryer(testConfig())
	require.NoError(t, err)

	calls := 0
	err = r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryer_MaxAttemptsExceeded(t *testing.T) {
	r, err := NewRetryer(testConfig())
	require.NoError(t, err)

	calls := 0
	err = r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("connection refused")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "max retry attempts")
}

func TestRetryer_NonRetryableErrorStopsImmediately(t *testing.T) {
	cfg := testConfig()
	cfg.RetryableErrors = []string{"timeout", "connection refused"}

	r, err := NewRetryer(cfg)
	require.NoError(t, err)

	calls := 0
	err = r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("syntax error")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "non-retryable")
}

func TestRetryer_DisabledRunsOnce(t *testing.T) {
	r, err := NewRetryer(Config{Enabled: false})
	require.NoError(t, err)

	calls := 0
	sentinel := errors.New("boom")
	err = r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestRetryer_ContextCancellation(t *testing.T) {
	cfg := testConfig()
	cfg.InitialDelay = time.Second
	cfg.MaxDelay = time.Second

	r, err := NewRetryer(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err = r.Do(ctx, func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}

func TestRetryer_OnRetryCallback(t *testing.T) {
	cfg := testConfig()
	var attempts []int
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
	}

	r, err := NewRetryer(cfg)
	require.NoError(t, err)

	_ = r.Do(context.Background(), func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	// Callback вызывается перед каждым повтором, но не перед первой попыткой
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestCalculateDelay(t *testing.T) {
	tests := []struct {
		name     string
		strategy BackoffStrategy
		attempt  int
		want     time.Duration
	}{
		{"constant first", BackoffConstant, 1, 100 * time.Millisecond},
		{"constant third", BackoffConstant, 3, 100 * time.Millisecond},
		{"linear first", BackoffLinear, 1, 100 * time.Millisecond},
		{"linear third", BackoffLinear, 3, 300 * time.Millisecond},
		{"exponential first", BackoffExponential, 1, 100 * time.Millisecond},
		{"exponential second", BackoffExponential, 2, 200 * time.Millisecond},
		{"exponential capped", BackoffExponential, 10, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Retryer{config: Config{
				Enabled:           true,
				InitialDelay:      100 * time.Millisecond,
				MaxDelay:          2 * time.Second,
				BackoffStrategy:   tt.strategy,
				BackoffMultiplier: 2.0,
			}}
			assert.Equal(t, tt.want, r.calculateDelay(tt.attempt))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(c *Config) {}, false},
		{"disabled skips checks", func(c *Config) { c.Enabled = false; c.Jitter = 5 }, false},
		{"negative attempts", func(c *Config) { c.MaxAttempts = -1 }, true},
		{"negative delay", func(c *Config) { c.InitialDelay = -time.Second }, true},
		{"max below initial", func(c *Config) { c.MaxDelay = time.Millisecond }, true},
		{"unknown strategy", func(c *Config) { c.BackoffStrategy = "fibonacci" }, true},
		{"exponential multiplier too small", func(c *Config) { c.BackoffMultiplier = 1.0 }, true},
		{"jitter out of range", func(c *Config) { c.Jitter = 1.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	r := &Retryer{config: Config{RetryableErrors: []string{"timeout", "deadlock"}}}

	assert.True(t, r.isRetryableError(fmt.Errorf("query failed: timeout waiting for connection")))
	assert.True(t, r.isRetryableError(errors.New("deadlock detected")))
	assert.False(t, r.isRetryableError(errors.New("syntax error")))
	assert.False(t, r.isRetryableError(nil))

	anyError := &Retryer{config: Config{}}
	assert.True(t, anyError.isRetryableError(errors.New("whatever")))
}

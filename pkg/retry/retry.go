package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"igfollowers/pkg/config"
	errs "igfollowers/pkg/errors"
	"igfollowers/pkg/logger"
)

// Operation is a function that performs an operation that might need retrying
type Operation func(ctx context.Context) error

// Config holds retry configuration
type Config struct {
	// MaxAttempts is the total number of attempts; 1 disables retrying
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
	// JitterFactor randomizes each delay by up to this fraction (0.0 to 1.0)
	JitterFactor float64
	// RetryIf determines if an error should be retried
	RetryIf func(error) bool
	// OnRetry is called before each retry attempt
	OnRetry func(attempt int, err error, delay time.Duration)
	Logger  logger.Logger
}

// FromConfig builds a retry configuration from the application settings
func FromConfig(cfg config.RetryConfig, log logger.Logger) *Config {
	if log == nil {
		log = logger.NewNopLogger()
	}
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Config{
		MaxAttempts:  attempts,
		BaseDelay:    cfg.BaseDelay,
		MaxDelay:     cfg.MaxDelay,
		Multiplier:   cfg.Multiplier,
		JitterFactor: 0.1,
		RetryIf:      errs.IsRetryable,
		Logger:       log,
	}
}

// newBackOff builds the exponential schedule, capped to MaxAttempts-1 retries
func (c *Config) newBackOff(ctx context.Context) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.BaseDelay
	bo.MaxInterval = c.MaxDelay
	bo.Multiplier = c.Multiplier
	if bo.Multiplier < 1 {
		bo.Multiplier = backoff.DefaultMultiplier
	}
	bo.RandomizationFactor = c.JitterFactor
	bo.MaxElapsedTime = 0
	bo.Reset()

	retries := uint64(0)
	if c.MaxAttempts > 1 {
		retries = uint64(c.MaxAttempts - 1)
	}
	return backoff.WithContext(backoff.WithMaxRetries(bo, retries), ctx)
}

// Do executes op until it succeeds, fails with a non-retryable error,
// exhausts the attempts or ctx is done. The last error is returned unwrapped
// so its kind survives.
func Do(ctx context.Context, cfg *Config, op Operation) error {
	if cfg == nil {
		cfg = FromConfig(config.DefaultConfig().Retry, nil)
	}
	retryIf := cfg.RetryIf
	if retryIf == nil {
		retryIf = errs.IsRetryable
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	attempt := 0
	operation := func() error {
		attempt++
		err := op(ctx)
		if err != nil && !retryIf(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, delay time.Duration) {
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}
		log.WarnWithFields("Retrying operation", map[string]interface{}{
			"attempt":      attempt,
			"error":        err.Error(),
			"delay":        delay.Round(time.Millisecond).String(),
			"max_attempts": cfg.MaxAttempts,
		})
	}

	err := backoff.RetryNotify(operation, cfg.newBackOff(ctx), notify)
	if err == nil && attempt > 1 {
		log.DebugWithFields("Operation succeeded after retry", map[string]interface{}{
			"attempt": attempt,
		})
	}
	return err
}

// DoWithResult executes an operation that returns a result with retry logic
func DoWithResult[T any](ctx context.Context, cfg *Config, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := Do(ctx, cfg, func(ctx context.Context) error {
		var opErr error
		result, opErr = op(ctx)
		return opErr
	})
	return result, err
}

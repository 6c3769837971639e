// Package retry re-executes fallible store operations a bounded number
// of times. Unlike the usual try/catch wrappers around result envelopes,
// the policy here applies uniformly to every returned error, with the
// predicate deciding which classes are worth another attempt.
package retry

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rafflehub/raffle-api/internal/pkg/apperrors"
)

const (
	DefaultMaxRetries = 3
	DefaultDelay      = time.Second
)

// Policy controls how Do behaves. MaxRetries counts additional attempts
// after the first one, so a policy with MaxRetries=3 runs an always
// failing operation 4 times.
type Policy struct {
	MaxRetries int
	Delay      time.Duration
	Retryable  func(error) bool
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		Delay:      DefaultDelay,
		Retryable:  apperrors.IsTransient,
	}
}

// Do runs op until it succeeds, the retry budget runs out, the predicate
// rejects the error, or ctx is done. The delay between attempts honors
// ctx cancellation.
func Do[T any](ctx context.Context, policy Policy, name string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	retryable := policy.Retryable
	if retryable == nil {
		retryable = apperrors.IsTransient
	}

	remaining := policy.MaxRetries
	for {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		zap.L().Warn("operation failed",
			zap.String("operation", name),
			zap.Int("retries_remaining", remaining),
			zap.Error(err))

		if remaining <= 0 || !retryable(err) {
			return zero, err
		}

		zap.L().Info("retrying operation",
			zap.String("operation", name),
			zap.Int("retries_remaining", remaining))

		if policy.Delay > 0 {
			timer := time.NewTimer(policy.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}

		remaining--
	}
}

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafflehub/raffle-api/internal/pkg/apperrors"
)

func testPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		Delay:      time.Millisecond,
		Retryable:  apperrors.IsTransient,
	}
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	tests := []struct {
		name     string
		failures int
	}{
		{name: "succeeds first try", failures: 0},
		{name: "succeeds second try", failures: 1},
		{name: "succeeds on last try", failures: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			op := func(ctx context.Context) (string, error) {
				attempts++
				if attempts <= tt.failures {
					return "", apperrors.New(apperrors.KindTransient, "connection reset")
				}
				return "ok", nil
			}

			result, err := Do(context.Background(), testPolicy(), "op", op)

			require.NoError(t, err)
			assert.Equal(t, "ok", result)
			assert.Equal(t, tt.failures+1, attempts)
		})
	}
}

func TestDo_ExhaustsRetries(t *testing.T) {
	boom := apperrors.New(apperrors.KindTransient, "connection refused")

	attempts := 0
	op := func(ctx context.Context) (string, error) {
		attempts++
		return "", boom
	}

	result, err := Do(context.Background(), testPolicy(), "op", op)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, result)
	assert.Equal(t, DefaultMaxRetries+1, attempts)
}

func TestDo_DoesNotRetryNonRetryableErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "not found", err: apperrors.New(apperrors.KindNotFound, "raffle not found")},
		{name: "validation", err: apperrors.New(apperrors.KindValidation, "ticket price must be positive")},
		{name: "untagged", err: errors.New("constraint violation")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			op := func(ctx context.Context) (int, error) {
				attempts++
				return 0, tt.err
			}

			_, err := Do(context.Background(), testPolicy(), "op", op)

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 1, attempts)
		})
	}
}

func TestDo_NilPredicateDefaultsToTransient(t *testing.T) {
	policy := Policy{MaxRetries: 1, Delay: 0}

	attempts := 0
	op := func(ctx context.Context) (int, error) {
		attempts++
		return 0, apperrors.New(apperrors.KindTransient, "timeout")
	}

	_, err := Do(context.Background(), policy, "op", op)

	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDo_StopsWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	policy := testPolicy()
	policy.Delay = time.Minute

	op := func(ctx context.Context) (int, error) {
		cancel()
		return 0, apperrors.New(apperrors.KindTransient, "timeout")
	}

	start := time.Now()
	_, err := Do(ctx, policy, "op", op)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

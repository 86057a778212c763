package common

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithRetry(t *testing.T) {
	fast := RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	tests := []struct {
		errs      []error
		wantIs    error
		name      string
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "succeeds first time",
			errs:      []error{nil},
			wantCalls: 1,
		},
		{
			name:      "retries busy database",
			errs:      []error{fmt.Errorf("save: %w", ErrDatabaseBusy), nil},
			wantCalls: 2,
		},
		{
			name:      "does not retry permanent errors",
			errs:      []error{ErrNotFound},
			wantCalls: 1,
			wantErr:   true,
			wantIs:    ErrNotFound,
		},
		{
			name:      "explicitly non-retryable",
			errs:      []error{&RetryableError{Err: ErrDatabaseBusy, Retryable: false}},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "gives up after max attempts",
			errs:      []error{ErrDatabaseBusy, ErrDatabaseBusy, ErrDatabaseBusy},
			wantCalls: 3,
			wantErr:   true,
			wantIs:    ErrMaxRetries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				if calls >= len(tt.errs) {
					calls++
					return nil
				}
				err := tt.errs[calls]
				calls++
				return err
			}, fast)

			assert.Equal(t, tt.wantCalls, calls)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error { return ErrDatabaseBusy }, RetryOptions{MaxAttempts: 5, InitialDelay: time.Second})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", ErrDatabaseBusy)))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.False(t, IsRetryable(ErrInvalidConfig))

	optOut := &RetryableError{Err: ErrDatabaseBusy, Retryable: false}
	assert.False(t, IsRetryable(optOut), "explicit opt-out wins over a busy database")
	assert.False(t, IsRetryable(fmt.Errorf("save: %w", optOut)))
	assert.ErrorIs(t, optOut, ErrDatabaseBusy)
}

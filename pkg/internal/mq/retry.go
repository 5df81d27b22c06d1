package mq

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

type RetryPolicy struct {
	Attempts   int
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
}

var DefaultRetryPolicy = RetryPolicy{
	Attempts:   5,
	Initial:    time.Second,
	Max:        10 * time.Second,
	Multiplier: 2,
}

func (v RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(v.Initial),
		backoff.WithMultiplier(v.Multiplier),
		backoff.WithMaxInterval(v.Max),
		backoff.WithRandomizationFactor(0),
		backoff.WithMaxElapsedTime(0),
	)
	retries := uint64(max(v.Attempts-1, 0))
	return backoff.WithContext(backoff.WithMaxRetries(exponential, retries), ctx)
}

// Do runs fn until it succeeds, fails permanently, the attempts run out or
// ctx is done. The last error is returned.
func (v RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var last error
	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		last = fn(ctx)
		return last
	}, v.backOff(ctx), func(err error, next time.Duration) {
		log.Warn().Err(err).
			Int("attempt", attempt).
			Dur("backoff", next).
			Msg("Task failed, retrying...")
	})
	// RetryNotify unwraps permanent errors, the consumer still needs the marker.
	if err != nil && IsPermanent(last) {
		return last
	}
	return err
}

// Permanent marks err as not worth retrying or redelivering.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

func IsPermanent(err error) bool {
	var target *backoff.PermanentError
	return errors.As(err, &target)
}

package apierr

import (
	"context"
	"fmt"
	"math"
	"time"
)

// defaultMultiplier is the backoff growth factor applied when a Policy
// does not specify one.
const defaultMultiplier = 2

// Policy holds retry parameters for exponential backoff.
// A Policy is immutable once constructed; Do copies it before normalizing.
//
// Invalid values are normalized:
//   - MaxAttempts < 1 becomes 1 (single attempt, no retries)
//   - BaseDelay <= 0 becomes 1ms
//   - Multiplier < 1 becomes 2
//
// Multiplier == 1 is valid and yields a constant delay between attempts.
// MaxDelay == 0 leaves the backoff uncapped.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

// normalize ensures all Policy fields have valid values.
func (p *Policy) normalize() {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = time.Millisecond
	}
	if p.Multiplier < 1 {
		p.Multiplier = defaultMultiplier
	}
}

// DelayFor returns the wait before retry retryIndex (0-indexed: the wait
// before the second attempt is retryIndex 0). The delay grows as
// BaseDelay * Multiplier^retryIndex, capped at MaxDelay when set.
//
// DelayFor is pure so the backoff schedule can be tested without sleeping.
func DelayFor(retryIndex int, p Policy) time.Duration {
	p.normalize()
	d := time.Duration(float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(retryIndex)))
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Attempt records the outcome of a single invocation of the wrapped operation.
type Attempt struct {
	// Number is the 1-based attempt number.
	Number int

	// Err is the error returned by the operation, nil on success.
	Err error

	// Delay is the wait scheduled before the next attempt.
	// Zero when no further attempt follows (success, non-retryable
	// error, or retry budget exhausted).
	Delay time.Duration
}

// AttemptLog is the ordered record of every attempt made during one Do call.
// It is returned to the caller on success and on failure so tests and
// diagnostics can assert exact attempt counts and backoff schedules without
// measuring real time.
type AttemptLog []Attempt

// Delays returns the waits that were actually scheduled between attempts,
// in order. The final attempt never schedules a wait, so the result has at
// most len(log)-1 entries.
func (l AttemptLog) Delays() []time.Duration {
	var delays []time.Duration
	for _, a := range l {
		if a.Delay > 0 {
			delays = append(delays, a.Delay)
		}
	}
	return delays
}

// ExhaustedError reports that every attempt allowed by the policy failed
// with a retryable error. It carries the attempt count and wraps the last
// observed error, so errors.Is(err, ErrRateLimit) still matches.
type ExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}

// Do executes fn with exponential backoff retry, retrying only while
// shouldRetry returns true for the error. It returns the result of the
// last attempt together with the full AttemptLog.
//
// A success returns immediately with no delay. An error rejected by
// shouldRetry propagates immediately with no delay and no further
// attempts. When the policy's attempt budget runs out on a retryable
// error, Do returns an *ExhaustedError wrapping the last error.
//
// The wait between attempts is interruptible: if ctx is cancelled while
// waiting, Do stops retrying and returns ctx.Err(). Per-attempt timeouts
// are the responsibility of fn itself; Do imposes no overall deadline.
//
// Invalid Policy values are normalized (see Policy documentation).
func Do[T any](
	ctx context.Context,
	p Policy,
	fn func() (T, error),
	shouldRetry func(error) bool,
) (T, AttemptLog, error) {
	p.normalize()

	var zero T
	var log AttemptLog

	for attempt := 1; ; attempt++ {
		result, err := fn()
		if err == nil {
			log = append(log, Attempt{Number: attempt})
			return result, log, nil
		}

		if !shouldRetry(err) {
			log = append(log, Attempt{Number: attempt, Err: err})
			return zero, log, err
		}

		if attempt >= p.MaxAttempts {
			log = append(log, Attempt{Number: attempt, Err: err})
			return zero, log, &ExhaustedError{Attempts: attempt, LastErr: err}
		}

		// Retry i (0-indexed) follows attempt i+1.
		delay := DelayFor(attempt-1, p)
		log = append(log, Attempt{Number: attempt, Err: err, Delay: delay})

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return zero, log, ctx.Err()
		case <-timer.C:
		}
	}
}

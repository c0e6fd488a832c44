package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// PollInterval is how often WaitFor re-evaluates its condition.
var PollInterval = 100 * time.Millisecond

var errPending = errors.New("condition pending")

// Condition reports whether the awaited state has been reached. A non-nil
// error aborts the wait.
type Condition func(ctx context.Context) (bool, error)

// WaitFor polls cond until it holds, it fails, ctx is done or timeout
// elapses. An expired timeout yields ErrWaitTimeout.
func WaitFor(ctx context.Context, timeout time.Duration, cond Condition) error {
	backoff := retry.WithMaxDuration(timeout, retry.NewConstant(PollInterval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		ok, err := cond(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return retry.RetryableError(errPending)
		}
		return nil
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errPending):
		return fmt.Errorf("%w after %s", ErrWaitTimeout, timeout)
	default:
		return err
	}
}

// WaitEnabled waits until el reports itself enabled.
func WaitEnabled(ctx context.Context, el Element, timeout time.Duration) error {
	err := WaitFor(ctx, timeout, el.Enabled)
	if errors.Is(err, ErrWaitTimeout) {
		return fmt.Errorf("%w: %w", ErrDisabled, err)
	}
	return err
}

// WaitVisible waits until el is displayed.
func WaitVisible(ctx context.Context, el Element, timeout time.Duration) error {
	return WaitFor(ctx, timeout, el.Visible)
}

// WaitText waits until doc contains text, or until it no longer does when
// present is false.
func WaitText(ctx context.Context, doc Document, text string, present bool, timeout time.Duration) error {
	return WaitFor(ctx, timeout, func(ctx context.Context) (bool, error) {
		has, err := doc.HasText(ctx, text)
		if err != nil {
			return false, err
		}
		return has == present, nil
	})
}

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// Verdict is a judge's decision about a finished attempt.
type Verdict int

const (
	// VerdictDone ends the loop.
	VerdictDone Verdict = iota
	// VerdictRetryNow starts the next attempt immediately.
	VerdictRetryNow
	// VerdictRetryAfterDelay sleeps for the retry delay first.
	VerdictRetryAfterDelay
)

// AttemptFunc runs one replication attempt. retry is 0 for the first one.
type AttemptFunc func(ctx context.Context, retry int) (models.ReplicationStatus, error)

// Judge decides what follows an attempt.
type Judge func(status models.ReplicationStatus, err error) Verdict

// PushJudge accepts a push only once it is caught up: no error, nothing
// written and nothing rejected. Written documents trigger an immediate
// retry; errors and rejections wait for the delay.
func PushJudge(status models.ReplicationStatus, err error) Verdict {
	switch {
	case err != nil, len(status.Errors) > 0, models.Val(status.DocWriteFailures) > 0:
		return VerdictRetryAfterDelay
	case models.Val(status.DocsWritten) > 0:
		return VerdictRetryNow
	default:
		return VerdictDone
	}
}

// ForcedPushJudge accepts any attempt without an error.
func ForcedPushJudge(status models.ReplicationStatus, err error) Verdict {
	if err != nil || len(status.Errors) > 0 {
		return VerdictRetryAfterDelay
	}
	return VerdictDone
}

// PullJudge accepts any attempt without an error.
func PullJudge(status models.ReplicationStatus, err error) Verdict {
	return ForcedPushJudge(status, err)
}

// RetryResult is the outcome of a retry loop.
type RetryResult struct {
	// Status is the last attempt's status with Retries attached.
	Status models.ReplicationStatus
	// Retries is the number of attempts after the first.
	Retries int
	// Written is the number of documents written across all attempts.
	Written int
	// Cancelled is set when the loop stopped on a cancel request.
	Cancelled bool
}

// cancelSignal is the cooperative cancellation flag of one sync run.
type cancelSignal struct {
	flag atomic.Bool
	once sync.Once
	ch   chan struct{}
}

func newCancelSignal() *cancelSignal {
	return &cancelSignal{ch: make(chan struct{})}
}

func (c *cancelSignal) Cancel() {
	c.flag.Store(true)
	c.once.Do(func() { close(c.ch) })
}

func (c *cancelSignal) Cancelled() bool {
	return c.flag.Load()
}

func (c *cancelSignal) Done() <-chan struct{} {
	return c.ch
}

// RetryCoordinator repeats replication attempts with a fixed delay until a
// judge accepts one, a cancel is requested, or the retry limit is reached.
type RetryCoordinator struct {
	direction  models.Direction
	clock      clockwork.Clock
	delay      time.Duration
	maxRetries int
	signal     *cancelSignal
	progress   *Broadcaster
	logger     *logger.Logger
}

// Run loops over attempt. The cancel flag is checked before every attempt;
// a cancelled loop returns with Cancelled set and no error. A maxRetries of
// zero never gives up; otherwise the loop returns [ErrRetriesExhausted]
// together with the last status.
func (c *RetryCoordinator) Run(ctx context.Context, attempt AttemptFunc, judge Judge) (RetryResult, error) {
	var res RetryResult

	for {
		if c.signal.Cancelled() {
			res.Cancelled = true
			return res, nil
		}

		status, err := attempt(ctx, res.Retries)
		res.Written += models.Val(status.DocsWritten)
		if res.Retries > 0 {
			status.Retries = models.Ptr(res.Retries)
		}
		res.Status = status

		verdict := judge(status, err)
		if verdict == VerdictDone {
			return res, nil
		}

		reason := attemptFailure(status, err)
		if c.maxRetries > 0 && res.Retries >= c.maxRetries {
			c.logger.Error().Err(err).Str("direction", string(c.direction)).Int("retries", res.Retries).Msg("giving up")
			return res, fmt.Errorf("%w: %s after %d retries: %s", ErrRetriesExhausted, c.direction, res.Retries, reason)
		}

		res.Retries++
		msg := fmt.Sprintf("%s. Trying again: Retry %d.", reason, res.Retries)

		c.logger.Warn().
			Err(err).
			Str("direction", string(c.direction)).
			Int("retry", res.Retries).
			Msg(reason)
		c.progress.Message(c.direction, msg)

		switch c.direction {
		case models.DirectionPush:
			res.Status.PushError = msg
		case models.DirectionPull:
			res.Status.PullError = msg
		}

		if verdict == VerdictRetryAfterDelay {
			if err := c.sleep(ctx); err != nil {
				return res, err
			}
		}
	}
}

func (c *RetryCoordinator) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.signal.Done():
		return nil
	case <-c.clock.After(c.delay):
		return nil
	}
}

// attemptFailure describes why an attempt was not accepted.
func attemptFailure(status models.ReplicationStatus, err error) string {
	switch {
	case err != nil:
		return err.Error()
	case len(status.Errors) > 0:
		return fmt.Sprintf("%s: %s", ErrPartialWrite, strings.Join(status.Errors, "; "))
	case models.Val(status.DocWriteFailures) > 0:
		return fmt.Sprintf("%s: %d failures", ErrPartialWrite, models.Val(status.DocWriteFailures))
	default:
		return fmt.Sprintf("%d documents sent, checking for more", models.Val(status.DocsWritten))
	}
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type retryFixture struct {
	clock    *clockwork.FakeClock
	signal   *cancelSignal
	coord    *RetryCoordinator
	mu       sync.Mutex
	messages []string
}

func newRetryFixture(direction models.Direction, maxRetries int) *retryFixture {
	f := &retryFixture{clock: clockwork.NewFakeClock(), signal: newCancelSignal()}
	progress := NewBroadcaster(f.clock)
	progress.Subscribe(func(ev models.ProgressEvent) {
		if ev.Type == models.ProgressMessage {
			f.mu.Lock()
			f.messages = append(f.messages, ev.Message)
			f.mu.Unlock()
		}
	})
	f.coord = &RetryCoordinator{
		direction:  direction,
		clock:      f.clock,
		delay:      5 * time.Second,
		maxRetries: maxRetries,
		signal:     f.signal,
		progress:   progress,
		logger:     logger.Nop(),
	}
	return f
}

func written(n int) models.ReplicationStatus {
	return models.ReplicationStatus{DocsWritten: models.Ptr(n), DocWriteFailures: models.Ptr(0)}
}

// ── Judges ───────────────────────────────────────────────────────────────────

func TestJudges(t *testing.T) {
	failed := models.ReplicationStatus{Errors: []string{"a: forbidden"}}
	rejected := models.ReplicationStatus{DocsWritten: models.Ptr(0), DocWriteFailures: models.Ptr(2)}

	tests := []struct {
		name   string
		judge  Judge
		status models.ReplicationStatus
		err    error
		want   Verdict
	}{
		{name: "push caught up", judge: PushJudge, status: written(0), want: VerdictDone},
		{name: "push wrote documents", judge: PushJudge, status: written(3), want: VerdictRetryNow},
		{name: "push transport error", judge: PushJudge, err: ErrTransfer, want: VerdictRetryAfterDelay},
		{name: "push partial write", judge: PushJudge, status: failed, want: VerdictRetryAfterDelay},
		{name: "push rejected documents", judge: PushJudge, status: rejected, want: VerdictRetryAfterDelay},
		{name: "forced push wrote documents", judge: ForcedPushJudge, status: written(3), want: VerdictDone},
		{name: "forced push error", judge: ForcedPushJudge, err: ErrTransfer, want: VerdictRetryAfterDelay},
		{name: "pull wrote documents", judge: PullJudge, status: written(3), want: VerdictDone},
		{name: "pull with errors list", judge: PullJudge, status: failed, want: VerdictRetryAfterDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.judge(tt.status, tt.err))
		})
	}
}

// ── Run ──────────────────────────────────────────────────────────────────────

func TestRetryCoordinator_DoneOnFirstAttempt(t *testing.T) {
	f := newRetryFixture(models.DirectionPush, 0)

	res, err := f.coord.Run(context.Background(), func(context.Context, int) (models.ReplicationStatus, error) {
		return written(0), nil
	}, PushJudge)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Retries)
	assert.Nil(t, res.Status.Retries)
	assert.False(t, res.Cancelled)
	assert.Empty(t, f.messages)
}

func TestRetryCoordinator_PushNeverSucceedsWhileWriting(t *testing.T) {
	f := newRetryFixture(models.DirectionPush, 0)

	attempts := 0
	res, err := f.coord.Run(context.Background(), func(_ context.Context, retry int) (models.ReplicationStatus, error) {
		assert.Equal(t, attempts, retry)
		attempts++
		if attempts == 50 {
			f.signal.Cancel()
		}
		return written(1), nil
	}, PushJudge)

	require.NoError(t, err)
	assert.True(t, res.Cancelled, "the loop only ends through the cancel request")
	assert.Equal(t, 50, attempts)
	assert.Equal(t, 50, res.Written, "written documents accumulate across attempts")
}

func TestRetryCoordinator_MaxRetries(t *testing.T) {
	f := newRetryFixture(models.DirectionPush, 5)

	attempts := 0
	res, err := f.coord.Run(context.Background(), func(context.Context, int) (models.ReplicationStatus, error) {
		attempts++
		return written(1), nil
	}, PushJudge)

	require.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 6, attempts)
	assert.Equal(t, 5, res.Retries)
	assert.Equal(t, 6, res.Written)
	assert.Equal(t, 5, models.Val(res.Status.Retries))
}

func TestRetryCoordinator_SleepsBetweenFailedAttempts(t *testing.T) {
	f := newRetryFixture(models.DirectionPull, 0)

	var (
		mu       sync.Mutex
		attempts int
	)
	done := make(chan RetryResult, 1)
	go func() {
		res, err := f.coord.Run(context.Background(), func(context.Context, int) (models.ReplicationStatus, error) {
			mu.Lock()
			defer mu.Unlock()
			attempts++
			if attempts < 3 {
				return models.ReplicationStatus{}, errors.New("connection refused")
			}
			return written(4), nil
		}, PullJudge)
		assert.NoError(t, err)
		done <- res
	}()

	for i := 1; i <= 2; i++ {
		f.clock.BlockUntil(1)
		mu.Lock()
		assert.Equal(t, i, attempts, "next attempt waits for the delay")
		mu.Unlock()
		f.clock.Advance(5 * time.Second)
	}

	select {
	case res := <-done:
		assert.Equal(t, 2, res.Retries)
		assert.Equal(t, 2, models.Val(res.Status.Retries))
		assert.Equal(t, 4, models.Val(res.Status.DocsWritten))
	case <-time.After(time.Second):
		t.Fatal("retry loop did not finish")
	}

	assert.Equal(t, []string{
		"connection refused. Trying again: Retry 1.",
		"connection refused. Trying again: Retry 2.",
	}, f.messages)
}

func TestRetryCoordinator_RetryMessage(t *testing.T) {
	f := newRetryFixture(models.DirectionPush, 1)

	res, err := f.coord.Run(context.Background(), func(context.Context, int) (models.ReplicationStatus, error) {
		return written(2), nil
	}, PushJudge)

	require.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, []string{"2 documents sent, checking for more. Trying again: Retry 1."}, f.messages)
	assert.Equal(t, 1, res.Retries)
}

func TestRetryCoordinator_CancelDuringSleep(t *testing.T) {
	f := newRetryFixture(models.DirectionPush, 0)

	attempts := 0
	done := make(chan RetryResult, 1)
	go func() {
		res, err := f.coord.Run(context.Background(), func(context.Context, int) (models.ReplicationStatus, error) {
			attempts++
			return models.ReplicationStatus{}, ErrTransfer
		}, PushJudge)
		assert.NoError(t, err)
		done <- res
	}()

	f.clock.BlockUntil(1)
	f.signal.Cancel()

	select {
	case res := <-done:
		assert.True(t, res.Cancelled)
		assert.Equal(t, 1, attempts)
	case <-time.After(time.Second):
		t.Fatal("cancel did not wake the retry loop")
	}
}

func TestRetryCoordinator_ContextCancelDuringSleep(t *testing.T) {
	f := newRetryFixture(models.DirectionPull, 0)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := f.coord.Run(ctx, func(context.Context, int) (models.ReplicationStatus, error) {
			return models.ReplicationStatus{}, ErrTransfer
		}, PullJudge)
		errCh <- err
	}()

	f.clock.BlockUntil(1)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("context cancel did not wake the retry loop")
	}
}

func TestRetryCoordinator_CancelledBeforeFirstAttempt(t *testing.T) {
	f := newRetryFixture(models.DirectionPush, 0)
	f.signal.Cancel()

	res, err := f.coord.Run(context.Background(), func(context.Context, int) (models.ReplicationStatus, error) {
		t.Fatal("attempt must not run")
		return models.ReplicationStatus{}, nil
	}, PushJudge)

	require.NoError(t, err)
	assert.True(t, res.Cancelled)
}

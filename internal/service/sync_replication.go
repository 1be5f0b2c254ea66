package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// Batch sizes used when ReduceBatchSize is requested.
const (
	ReducedBatchSize        = 10
	ReducedWriteBatchSize   = 10
	ReducedChangesBatchSize = 1
)

// BatchSizes bounds how much of a replication is held in memory. Only one
// batch is in flight at a time.
type BatchSizes struct {
	// Batch is the number of changes transferred per round-trip.
	Batch int
	// Write is the number of documents committed per write.
	Write int
	// Changes is the number of feed entries read per request.
	Changes int
}

// SelectBatchSizes picks the batch sizes of one sync run. A first sync or a
// full pull uses the initial batch size; a reduced run shrinks every size.
func SelectBatchSizes(cfg config.ClientSync, firstSync bool, fullSync models.Direction, reduce bool) BatchSizes {
	sizes := BatchSizes{Batch: cfg.BatchSize, Write: cfg.WriteBatchSize, Changes: cfg.ChangesBatchSize}
	if reduce {
		sizes = BatchSizes{Batch: ReducedBatchSize, Write: ReducedWriteBatchSize, Changes: ReducedChangesBatchSize}
	}
	if firstSync || fullSync == models.DirectionPull {
		sizes.Batch = cfg.InitialBatchSize
	}
	return sizes
}

// ReplicationOptions configures one Replicate call.
type ReplicationOptions struct {
	Direction models.Direction
	// Since is the exclusive feed position to start from.
	Since models.Seq
	// DocIDs restricts the transfer to the listed documents.
	DocIDs []string
	// Selector restricts the source feed.
	Selector *models.Selector

	BatchSizes

	// RunningTotal is added to the written count carried by change events,
	// so retries show a growing total instead of restarting from zero.
	RunningTotal int

	// OnCheckpoint is called whenever the applied sequence advances.
	OnCheckpoint func(models.Seq)
}

type replicator struct {
	progress *Broadcaster
	logger   *logger.Logger
}

// NewReplicator returns the batched, checkpointed [Replicator].
func NewReplicator(progress *Broadcaster, logger *logger.Logger) Replicator {
	return &replicator{progress: progress, logger: logger.WithComponent("replication")}
}

// replicationRun is the state of one Replicate call.
type replicationRun struct {
	opts ReplicationOptions

	read     int
	written  int
	failures int
	pending  int
	errors   []string

	applied models.Seq
	// blocked is set after the first write failure; the applied sequence
	// stops there so the failed document is offered again next time.
	blocked bool
}

func (r *replicationRun) status() models.ReplicationStatus {
	st := models.ReplicationStatus{
		Direction:        r.opts.Direction,
		DocsRead:         models.Ptr(r.read),
		DocsWritten:      models.Ptr(r.written),
		DocWriteFailures: models.Ptr(r.failures),
		Pending:          models.Ptr(r.pending),
		LastSeq:          models.Ptr(r.applied),
		Errors:           slices.Clone(r.errors),
	}
	switch r.opts.Direction {
	case models.DirectionPush:
		st.Pushed = models.Ptr(r.written)
	case models.DirectionPull:
		st.Pulled = models.Ptr(r.written)
	}
	return st
}

// Replicate copies the changes of source after opts.Since into target.
//
// The feed is read ChangesBatchSize entries at a time and processed in
// batches of BatchSize: every batch is diffed against the target, the
// missing documents are read from the source and written WriteBatchSize at
// a time. Documents the target already holds at the same or a winning
// revision are skipped, so repeating a transfer writes nothing.
//
// Per-document write failures end up in the status Errors list and the
// returned error stays nil; callers must treat a non-empty list as a failed
// attempt. Transport failures return the partial status and an error
// wrapping [ErrTransfer].
func (r *replicator) Replicate(ctx context.Context, source, target DocumentStore, opts ReplicationOptions) (models.ReplicationStatus, error) {
	opts.BatchSizes = withDefaultSizes(opts.BatchSizes)
	run := &replicationRun{opts: opts, applied: opts.Since}

	var (
		queue    []models.Change
		feedSeq  = opts.Since
		feedDone bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return run.status(), fmt.Errorf("%w: %w", ErrTransfer, err)
		}

		for !feedDone && len(queue) < opts.Batch {
			resp, err := source.Changes(ctx, models.ChangesRequest{
				Since:    feedSeq,
				Limit:    opts.Changes,
				Selector: opts.Selector,
				DocIDs:   opts.DocIDs,
			})
			if err != nil {
				r.logger.Warn().Err(err).Str("direction", string(opts.Direction)).Msg("reading change feed failed")
				return run.status(), fmt.Errorf("%w: read changes: %w", ErrTransfer, err)
			}

			queue = append(queue, resp.Results...)
			run.pending = resp.Pending
			if len(resp.Results) < opts.Changes || resp.LastSeq <= feedSeq {
				feedDone = true
			}
			feedSeq = max(feedSeq, resp.LastSeq)

			if len(resp.Results) > 0 {
				r.publish(models.ProgressEvent{Type: models.ProgressPendingBatch, Count: len(queue)}, opts)
			}
		}

		if len(queue) == 0 {
			break
		}

		n := min(len(queue), opts.Batch)
		batch := queue[:n:n]
		queue = queue[n:]

		r.publish(models.ProgressEvent{Type: models.ProgressStartNextBatch, Count: len(batch)}, opts)
		if err := r.processBatch(ctx, source, target, batch, run); err != nil {
			return run.status(), err
		}
	}

	// Everything up to the end of the feed was seen; entries the filter left
	// out count as applied.
	if !run.blocked {
		r.advance(run, feedSeq)
	}

	st := run.status()
	r.logger.Debug().
		Str("direction", string(opts.Direction)).
		Int("docs_read", run.read).
		Int("docs_written", run.written).
		Int("doc_write_failures", run.failures).
		Int64("last_seq", int64(run.applied)).
		Msg("replication complete")

	return st, nil
}

func (r *replicator) processBatch(ctx context.Context, source, target DocumentStore, batch []models.Change, run *replicationRun) error {
	opts := run.opts

	transfer := make([]string, 0, len(batch))
	for _, c := range batch {
		if !models.IsDesignID(c.ID) {
			transfer = append(transfer, c.ID)
		}
	}

	failed := make(map[string]bool)
	if len(transfer) > 0 {
		r.publish(models.ProgressEvent{Type: models.ProgressDiffing, Count: len(transfer)}, opts)

		missing, err := r.revsDiff(ctx, target, batch)
		if err != nil {
			return err
		}

		if len(missing) > 0 {
			docs, err := source.BulkGet(ctx, missing)
			if err != nil {
				return fmt.Errorf("%w: read documents: %w", ErrTransfer, err)
			}
			run.read += len(docs)

			for chunk := range slices.Chunk(docs, opts.Write) {
				results, err := target.BulkDocs(ctx, chunk)
				if err != nil {
					return fmt.Errorf("%w: write documents: %w", ErrTransfer, err)
				}
				for _, res := range results {
					if res.OK() {
						run.written++
						continue
					}
					run.failures++
					failed[res.ID] = true
					run.errors = append(run.errors, fmt.Sprintf("%s: %s %s", res.ID, res.Error, res.Reason))
				}

				st := run.status()
				r.publish(models.ProgressEvent{
					Type:   models.ProgressChange,
					Count:  opts.RunningTotal + run.written,
					Status: &st,
				}, opts)
			}
		}
	}

	for _, c := range batch {
		if failed[c.ID] {
			run.blocked = true
		}
		if run.blocked {
			break
		}
		r.advance(run, c.Seq)
	}
	return nil
}

// revsDiff returns the ids of batch the target is missing or holds at a
// losing revision.
func (r *replicator) revsDiff(ctx context.Context, target DocumentStore, batch []models.Change) ([]string, error) {
	keys := make([]string, 0, len(batch))
	for _, c := range batch {
		if !models.IsDesignID(c.ID) {
			keys = append(keys, c.ID)
		}
	}

	resp, err := target.AllDocs(ctx, models.AllDocsRequest{Keys: keys})
	if err != nil {
		return nil, fmt.Errorf("%w: diff revisions: %w", ErrTransfer, err)
	}

	have := make(map[string]string, len(resp.Rows))
	for _, row := range resp.Rows {
		have[row.ID] = row.Value.Rev
	}

	missing := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, c := range batch {
		if models.IsDesignID(c.ID) || seen[c.ID] {
			continue
		}
		seen[c.ID] = true

		rev, ok := have[c.ID]
		if !ok || models.RevWins(c.Rev, rev) {
			missing = append(missing, c.ID)
		}
	}
	return missing, nil
}

func (r *replicator) advance(run *replicationRun, seq models.Seq) {
	if seq <= run.applied {
		return
	}
	run.applied = seq
	if run.opts.OnCheckpoint != nil {
		run.opts.OnCheckpoint(seq)
	}
	r.publish(models.ProgressEvent{Type: models.ProgressCheckpoint, Count: int(seq)}, run.opts)
}

func (r *replicator) publish(ev models.ProgressEvent, opts ReplicationOptions) {
	if r.progress == nil {
		return
	}
	ev.Direction = opts.Direction
	r.progress.Publish(ev)
}

func withDefaultSizes(s BatchSizes) BatchSizes {
	if s.Batch <= 0 {
		s.Batch = config.DefaultBatchSize
	}
	if s.Write <= 0 {
		s.Write = config.DefaultWriteBatchSize
	}
	if s.Changes <= 0 {
		s.Changes = config.DefaultChangesBatchSize
	}
	return s
}

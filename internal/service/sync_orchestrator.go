// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/looplab/fsm"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// Keys of the durable sync state.
const (
	PushCheckpointKey              = "sync-push-last_seq"
	PullCheckpointKey              = "sync-pull-last_seq"
	PreviousDeviceSyncLocationsKey = "previousDeviceSyncLocations"
)

// Progress messages shown to the user.
const (
	PushMessage         = "About to push any new data to the server."
	ForcedPushMessage   = "Device locations changed. Sending all local data to the server."
	ReprovisionMessage  = "Reloading device data for the new locations."
	PullMessage         = "Received data from remote server."
	AssignedPullMessage = "Downloading documents assigned to this device."
	ReportFailedMessage = "Could not send the sync report."
	IndexFailedMessage  = "Could not optimize the local database."
	OptimizingMessage   = "Optimizing the local database."
)

// Orchestrator states.
const (
	StateIdle                     = "idle"
	StateNegotiatingSession       = "negotiating_session"
	StatePushing                  = "pushing"
	StateDetectingLocationChange  = "detecting_location_change"
	StateForcedPushing            = "forced_pushing"
	StateReprovisioning           = "reprovisioning"
	StatePulling                  = "pulling"
	StatePullingAssignedDocuments = "pulling_assigned_documents"
	StateReporting                = "reporting"
	StateIndexOptimizing          = "index_optimizing"
	StateDone                     = "done"
	StateCancelled                = "cancelled"
	StateFailed                   = "failed"
)

const (
	eventStart        = "start"
	eventPush         = "push"
	eventDetect       = "detect"
	eventForcePush    = "force_push"
	eventReprovision  = "reprovision"
	eventPull         = "pull"
	eventPullAssigned = "pull_assigned"
	eventReport       = "report"
	eventOptimize     = "optimize"
	eventFinish       = "finish"
	eventCancel       = "cancel"
	eventFail         = "fail"
)

var activeStates = []string{
	StateNegotiatingSession,
	StatePushing,
	StateDetectingLocationChange,
	StateForcedPushing,
	StateReprovisioning,
	StatePulling,
	StatePullingAssignedDocuments,
	StateReporting,
	StateIndexOptimizing,
}

var syncEvents = fsm.Events{
	{Name: eventStart, Src: []string{StateIdle}, Dst: StateNegotiatingSession},
	{Name: eventPush, Src: []string{StateNegotiatingSession}, Dst: StatePushing},
	{Name: eventDetect, Src: []string{StateNegotiatingSession, StatePushing}, Dst: StateDetectingLocationChange},
	{Name: eventForcePush, Src: []string{StateDetectingLocationChange}, Dst: StateForcedPushing},
	{Name: eventReprovision, Src: []string{StateForcedPushing}, Dst: StateReprovisioning},
	{Name: eventPull, Src: []string{StateDetectingLocationChange, StateReprovisioning}, Dst: StatePulling},
	{Name: eventPullAssigned, Src: []string{StatePulling}, Dst: StatePullingAssignedDocuments},
	{Name: eventReport, Src: []string{StatePullingAssignedDocuments}, Dst: StateReporting},
	{Name: eventOptimize, Src: []string{StateReporting}, Dst: StateIndexOptimizing},
	{Name: eventFinish, Src: []string{StateReporting, StateIndexOptimizing}, Dst: StateDone},
	{Name: eventCancel, Src: activeStates, Dst: StateCancelled},
	{Name: eventFail, Src: activeStates, Dst: StateFailed},
}

// SyncOptions tunes one Sync call.
type SyncOptions struct {
	// FirstSync skips the initial push and records the device locations
	// without comparing them.
	FirstSync bool
	// FullSync ignores the checkpoint of the given direction.
	FullSync models.Direction
	// ReduceBatchSize shrinks every batch size for very slow links.
	ReduceBatchSize bool
}

// SyncDependencies are the collaborators of the sync service.
type SyncDependencies struct {
	Config     config.ClientConfig
	Local      store.LocalDocumentRepository
	Variables  store.VariablesRepository
	Registry   adapter.RegistryAdapter
	Negotiator SessionNegotiator
	Replicator Replicator
	Reporter   SyncReporter
	Indexer    IndexOptimizer
	Forms      []models.FormInfo
	Progress   *Broadcaster
	Clock      clockwork.Clock
	Logger     *logger.Logger
}

type syncService struct {
	cfg        config.ClientConfig
	local      store.LocalDocumentRepository
	variables  store.VariablesRepository
	registry   adapter.RegistryAdapter
	negotiator SessionNegotiator
	replicator Replicator
	reporter   SyncReporter
	indexer    IndexOptimizer
	forms      []models.FormInfo
	progress   *Broadcaster
	clock      clockwork.Clock
	logger     *logger.Logger

	running sync.Mutex
	signal  atomic.Pointer[cancelSignal]
}

// NewClientSyncService returns the sync orchestrator.
func NewClientSyncService(deps SyncDependencies) ClientSyncService {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Progress == nil {
		deps.Progress = NewBroadcaster(deps.Clock)
	}

	return &syncService{
		cfg:        deps.Config,
		local:      deps.Local,
		variables:  deps.Variables,
		registry:   deps.Registry,
		negotiator: deps.Negotiator,
		replicator: deps.Replicator,
		reporter:   deps.Reporter,
		indexer:    deps.Indexer,
		forms:      deps.Forms,
		progress:   deps.Progress,
		clock:      deps.Clock,
		logger:     deps.Logger.WithComponent("sync"),
	}
}

// syncRun is the per-call state of Sync. Nothing in it outlives the call.
type syncRun struct {
	opts    SyncOptions
	sizes   BatchSizes
	signal  *cancelSignal
	session Session
	status  models.ReplicationStatus

	pushed int
	pulled int

	started time.Time
	err     error
}

type phase func(ctx context.Context, run *syncRun) string

// Sync implements [ClientSyncService].
func (s *syncService) Sync(ctx context.Context, opts SyncOptions) (models.ReplicationStatus, error) {
	if !s.running.TryLock() {
		return models.ReplicationStatus{}, ErrSyncInProgress
	}
	defer s.running.Unlock()

	run := &syncRun{
		opts:    opts,
		sizes:   SelectBatchSizes(s.cfg.Sync, opts.FirstSync, opts.FullSync, opts.ReduceBatchSize),
		signal:  newCancelSignal(),
		started: s.clock.Now(),
	}
	run.status.FullSync = opts.FullSync
	run.status.SyncStartTime = run.started.UTC().Format(time.RFC3339Nano)

	s.signal.Store(run.signal)
	defer s.signal.Store(nil)

	s.logger.Info().
		Bool("first_sync", opts.FirstSync).
		Str("full_sync", string(opts.FullSync)).
		Bool("reduce_batch_size", opts.ReduceBatchSize).
		Msg("sync started")

	machine := s.newMachine(run)
	phases := map[string]phase{
		StateNegotiatingSession:       s.negotiate,
		StatePushing:                  s.push,
		StateDetectingLocationChange:  s.detectLocationChange,
		StateForcedPushing:            s.forcedPush,
		StateReprovisioning:           s.reprovision,
		StatePulling:                  s.pull,
		StatePullingAssignedDocuments: s.pullAssigned,
		StateReporting:                s.report,
		StateIndexOptimizing:          s.optimize,
	}

	// transitions are skipped on a cancelled context; cancellation is an
	// event of its own here
	fsmCtx := context.WithoutCancel(ctx)
	if err := machine.Event(fsmCtx, eventStart); err != nil {
		return run.status, fmt.Errorf("start sync: %w", err)
	}

	for {
		current := machine.Current()
		step, ok := phases[current]
		if !ok {
			break
		}

		event := step(ctx, run)
		if event != eventFail && event != eventCancel && run.signal.Cancelled() {
			event = eventCancel
		}

		if err := machine.Event(fsmCtx, event); err != nil {
			return run.status, fmt.Errorf("sync transition %s from %s: %w", event, current, err)
		}
	}

	run.status.Pushed = models.Ptr(run.pushed)
	run.status.Pulled = models.Ptr(run.pulled)

	switch machine.Current() {
	case StateFailed:
		s.logger.Error().Err(run.err).Msg("sync failed")
		return run.status, run.err
	case StateCancelled:
		s.logger.Info().Int("pushed", run.pushed).Int("pulled", run.pulled).Msg("sync cancelled")
		return run.status, nil
	default:
		s.logger.Info().Int("pushed", run.pushed).Int("pulled", run.pulled).Msg("sync complete")
		return run.status, nil
	}
}

// Cancel implements [ClientSyncService].
func (s *syncService) Cancel() {
	if sig := s.signal.Load(); sig != nil {
		sig.Cancel()
	}
}

// Subscribe implements [ClientSyncService].
func (s *syncService) Subscribe(fn func(models.ProgressEvent)) func() {
	return s.progress.Subscribe(fn)
}

func (s *syncService) newMachine(run *syncRun) *fsm.FSM {
	return fsm.NewFSM(StateIdle, syncEvents, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			s.logger.Debug().Str("from", e.Src).Str("to", e.Dst).Msg("sync state")
			s.progress.Publish(models.ProgressEvent{Type: models.ProgressState, State: e.Dst})
		},
		"enter_" + StateCancelled: func(_ context.Context, _ *fsm.Event) {
			run.status.Cancelled = true
			s.progress.Publish(models.ProgressEvent{
				Type:    models.ProgressCancelled,
				Message: ErrSyncCancelled.Error(),
				Status:  &run.status,
			})
		},
	})
}

func (s *syncService) retryCoordinator(direction models.Direction, run *syncRun) *RetryCoordinator {
	return &RetryCoordinator{
		direction:  direction,
		clock:      s.clock,
		delay:      s.cfg.Sync.RetryDelay,
		maxRetries: s.cfg.Sync.MaxRetries,
		signal:     run.signal,
		progress:   s.progress,
		logger:     s.logger,
	}
}

// ── Phases ──────────────────────────────────────────────────────────────────

func (s *syncService) negotiate(ctx context.Context, run *syncRun) string {
	dev := s.cfg.Device
	session, err := s.negotiator.Open(ctx, s.cfg.Adapter.ServerURL, dev.GroupID, dev.ID, dev.Token)
	if err != nil {
		run.err = err
		run.status.PushError = SessionUnavailableMessage
		s.progress.Message(models.DirectionPush, SessionUnavailableMessage)
		return eventFail
	}
	run.session = session

	if run.opts.FirstSync {
		return eventDetect
	}
	return eventPush
}

func (s *syncService) push(ctx context.Context, run *syncRun) string {
	s.progress.Message(models.DirectionPush, PushMessage)

	since := s.readSeq(ctx, PushCheckpointKey)
	if run.opts.FullSync == models.DirectionPush {
		since = 0
	}
	run.status.InitialPushLastSeq = models.Ptr(since)

	res, err := s.retryCoordinator(models.DirectionPush, run).Run(ctx, func(ctx context.Context, _ int) (models.ReplicationStatus, error) {
		st, err := s.replicator.Replicate(ctx, s.local, run.session.Remote, ReplicationOptions{
			Direction:    models.DirectionPush,
			Since:        since,
			BatchSizes:   run.sizes,
			RunningTotal: run.pushed,
		})
		run.pushed += models.Val(st.DocsWritten)

		// only a caught-up attempt marks local data as sent
		if err == nil && PushJudge(st, nil) == VerdictDone {
			seq := models.Val(st.LastSeq)
			s.writeSeq(ctx, PushCheckpointKey, seq)
			run.status.CurrentPushLastSeq = models.Ptr(seq)
		}
		return st, err
	}, PushJudge)

	return s.finishTransfer(ctx, run, res, err, func() { run.status.HadPushSuccess = true }, eventDetect)
}

func (s *syncService) detectLocationChange(ctx context.Context, run *syncRun) string {
	current := run.session.AssignedLocations
	if current == nil {
		current = []models.LocationConfig{}
	}

	var previous []models.LocationConfig
	err := s.variables.Get(ctx, PreviousDeviceSyncLocationsKey, &previous)
	switch {
	case run.opts.FirstSync:
		s.recordLocations(ctx, current)
		return eventPull
	case errors.Is(err, store.ErrVariableNotFound):
		s.logger.Warn().
			Int("current", len(current)).
			Msg("no previous device locations on record, recording current ones without a forced push")
		s.recordLocations(ctx, current)
		return eventPull
	case err != nil:
		s.logger.Warn().Err(err).Msg("previous device locations unreadable, skipping scope check")
		return eventPull
	}

	if !LocationsChanged(previous, current) {
		return eventPull
	}

	s.logger.Info().
		Int("previous", len(previous)).
		Int("current", len(current)).
		Msg("device locations changed")
	return eventForcePush
}

func (s *syncService) forcedPush(ctx context.Context, run *syncRun) string {
	s.progress.Message(models.DirectionPush, ForcedPushMessage)
	run.status.FullSync = models.DirectionPush

	res, err := s.retryCoordinator(models.DirectionPush, run).Run(ctx, func(ctx context.Context, _ int) (models.ReplicationStatus, error) {
		st, err := s.replicator.Replicate(ctx, s.local, run.session.Remote, ReplicationOptions{
			Direction:    models.DirectionPush,
			Since:        0,
			BatchSizes:   run.sizes,
			RunningTotal: run.pushed,
		})
		run.pushed += models.Val(st.DocsWritten)
		return st, err
	}, ForcedPushJudge)

	return s.finishTransfer(ctx, run, res, err, func() { run.status.HadPushSuccess = true }, eventReprovision)
}

// reprovision replaces the local store with the server snapshot of the new
// scope. Pushing first guarantees nothing local is lost.
func (s *syncService) reprovision(ctx context.Context, run *syncRun) string {
	s.progress.Message(models.DirectionPull, ReprovisionMessage)

	res, err := s.retryCoordinator(models.DirectionPull, run).Run(ctx, func(ctx context.Context, _ int) (models.ReplicationStatus, error) {
		return s.reinstall(ctx, run)
	}, PullJudge)
	if next, done := s.transferOutcome(ctx, run, res, err); done {
		return next
	}

	info, err := s.local.Info(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reading local update seq failed")
	} else {
		s.writeSeq(ctx, PushCheckpointKey, info.UpdateSeq)
		run.status.CurrentPushLastSeq = models.Ptr(info.UpdateSeq)
	}
	s.writeSeq(ctx, PullCheckpointKey, 0)
	s.recordLocations(ctx, run.session.AssignedLocations)

	return eventPull
}

func (s *syncService) reinstall(ctx context.Context, run *syncRun) (models.ReplicationStatus, error) {
	docs, err := s.registry.Snapshot(ctx, run.session.Credentials())
	if err != nil {
		return models.ReplicationStatus{}, fmt.Errorf("%w: fetch device snapshot: %w", ErrTransfer, err)
	}
	if err = s.local.Reset(ctx); err != nil {
		return models.ReplicationStatus{}, fmt.Errorf("reset local store: %w", err)
	}

	var st models.ReplicationStatus
	written, failures := 0, 0
	for chunk := range slices.Chunk(docs, max(run.sizes.Write, 1)) {
		results, err := s.local.BulkDocs(ctx, chunk)
		if err != nil {
			return st, fmt.Errorf("reinstall snapshot: %w", err)
		}
		for _, r := range results {
			if r.OK() {
				written++
				continue
			}
			failures++
			st.Errors = append(st.Errors, fmt.Sprintf("%s: %s %s", r.ID, r.Error, r.Reason))
		}
	}

	s.logger.Info().Int("documents", written).Int("failures", failures).Msg("device snapshot reinstalled")
	st.DocsRead = models.Ptr(len(docs))
	st.DocWriteFailures = models.Ptr(failures)
	return st, nil
}

func (s *syncService) pull(ctx context.Context, run *syncRun) string {
	if run.opts.FullSync == models.DirectionPull {
		s.writeSeq(ctx, PullCheckpointKey, 0)
	}
	selector := BuildSelector(s.forms, run.session.AssignedLocations, run.session.DeviceID, s.cfg.Sync.DisableDeviceUserFilteringByAssignment)
	s.progress.Message(models.DirectionPull, PullMessage)

	res, err := s.retryCoordinator(models.DirectionPull, run).Run(ctx, func(ctx context.Context, _ int) (models.ReplicationStatus, error) {
		since := s.readSeq(ctx, PullCheckpointKey)
		st, err := s.replicator.Replicate(ctx, run.session.Remote, s.local, ReplicationOptions{
			Direction:    models.DirectionPull,
			Since:        since,
			Selector:     &selector,
			BatchSizes:   run.sizes,
			RunningTotal: run.pulled,
			OnCheckpoint: func(seq models.Seq) { s.writeSeq(ctx, PullCheckpointKey, seq) },
		})
		run.pulled += models.Val(st.DocsWritten)

		if err == nil && PullJudge(st, nil) == VerdictDone {
			s.writeSeq(ctx, PullCheckpointKey, max(models.Val(st.LastSeq), since))
		}
		return st, err
	}, PullJudge)

	return s.finishTransfer(ctx, run, res, err, func() { run.status.HadPullSuccess = true }, eventPullAssigned)
}

func (s *syncService) pullAssigned(ctx context.Context, run *syncRun) string {
	res, err := s.retryCoordinator(models.DirectionPull, run).Run(ctx, func(ctx context.Context, _ int) (models.ReplicationStatus, error) {
		device, err := s.registry.GetDevice(ctx, run.session.Credentials())
		if err != nil {
			return models.ReplicationStatus{}, fmt.Errorf("%w: fetch device record: %w", ErrTransfer, err)
		}
		if len(device.AssignedFormResponseIDs) == 0 {
			return models.ReplicationStatus{}, nil
		}

		s.progress.Message(models.DirectionPull, AssignedPullMessage)
		st, err := s.replicator.Replicate(ctx, run.session.Remote, s.local, ReplicationOptions{
			Direction:    models.DirectionPull,
			DocIDs:       device.AssignedFormResponseIDs,
			BatchSizes:   run.sizes,
			RunningTotal: run.pulled,
		})
		run.pulled += models.Val(st.DocsWritten)
		return st, err
	}, PullJudge)

	return s.finishTransfer(ctx, run, res, err, func() {}, eventReport)
}

func (s *syncService) report(ctx context.Context, run *syncRun) string {
	end := s.clock.Now()
	run.status.Pushed = models.Ptr(run.pushed)
	run.status.Pulled = models.Ptr(run.pulled)
	run.status.SyncEndTime = end.UTC().Format(time.RFC3339Nano)
	run.status.SyncDurationMs = models.Ptr(end.Sub(run.started).Milliseconds())

	if s.reporter != nil {
		run.status = s.reporter.Build(ctx, run.status)
		if err := s.reporter.Send(ctx, run.status); err != nil {
			s.logger.Error().Err(err).Msg("sync report not delivered")
			s.progress.Message("", ReportFailedMessage)
		}
	}

	if run.opts.FirstSync || !s.cfg.Sync.IndexViewsOnlyOnFirstSync {
		return eventOptimize
	}
	return eventFinish
}

func (s *syncService) optimize(ctx context.Context, _ *syncRun) string {
	if s.indexer == nil {
		return eventFinish
	}

	s.progress.Message("", OptimizingMessage)
	if err := s.indexer.Optimize(ctx); err != nil {
		s.logger.Error().Err(err).Msg("index optimization failed")
		s.progress.Message("", IndexFailedMessage)
	}
	return eventFinish
}

// ── Helpers ─────────────────────────────────────────────────────────────────

// finishTransfer folds a retry loop's outcome into the run and picks the
// next event.
func (s *syncService) finishTransfer(ctx context.Context, run *syncRun, res RetryResult, err error, onSuccess func(), next string) string {
	if ev, done := s.transferOutcome(ctx, run, res, err); done {
		return ev
	}
	onSuccess()
	return next
}

func (s *syncService) transferOutcome(ctx context.Context, run *syncRun, res RetryResult, err error) (string, bool) {
	run.status = run.status.Merge(res.Status)
	run.status.Pushed = models.Ptr(run.pushed)
	run.status.Pulled = models.Ptr(run.pulled)

	switch {
	case res.Cancelled:
		return eventCancel, true
	case err == nil:
		return "", false
	case ctx.Err() != nil:
		return eventCancel, true
	default:
		run.err = err
		return eventFail, true
	}
}

func (s *syncService) readSeq(ctx context.Context, key string) models.Seq {
	var seq models.Seq
	if err := s.variables.Get(ctx, key, &seq); err != nil {
		if !errors.Is(err, store.ErrVariableNotFound) {
			s.logger.Warn().Err(err).Str("key", key).Msg("checkpoint unreadable, starting from zero")
		}
		return 0
	}
	return seq
}

func (s *syncService) writeSeq(ctx context.Context, key string, seq models.Seq) {
	if err := s.variables.Set(ctx, key, seq); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Int64("seq", int64(seq)).Msg("checkpoint not saved")
	}
}

func (s *syncService) recordLocations(ctx context.Context, locations []models.LocationConfig) {
	if locations == nil {
		locations = []models.LocationConfig{}
	}
	if err := s.variables.Set(ctx, PreviousDeviceSyncLocationsKey, locations); err != nil {
		s.logger.Warn().Err(err).Msg("device locations not recorded")
	}
}

package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
)

// minCompareLimit keeps paging moving: AllDocs pages start at the previous
// page's last key, so a page of one row could never get past it.
const minCompareLimit = 2

// ReducedCompareLimit is the id page size of a reduced compare.
const ReducedCompareLimit = 10

// CompareOptions configures one Compare call.
type CompareOptions struct {
	Direction models.Direction
	// Limit is the id page size. Zero uses the configured compare limit.
	Limit int
	// ReduceBatchSize pages ids by ReducedCompareLimit and replicates with
	// the reduced batch sizes, for devices short on memory.
	ReduceBatchSize bool
}

func collectedLocalMessage(n int) string {
	return fmt.Sprintf("Collected %d docs from the local database.", n)
}

func collectedRemoteMessage(n int) string {
	return fmt.Sprintf("Collected %d docs from the server.", n)
}

func docsToSyncMessage(n int) string {
	return fmt.Sprintf("There are %d docs to sync.", n)
}

// SyncCandidates returns the ids present in source but missing from target,
// sorted. Conflicting revisions of a shared id are not detected.
func SyncCandidates(source, target []string) []string {
	have := make(map[string]struct{}, len(target))
	for _, id := range target {
		have[id] = struct{}{}
	}

	out := make([]string, 0)
	seen := make(map[string]struct{}, len(source))
	for _, id := range source {
		if _, ok := have[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Compare implements [ClientSyncService]. It lists every local id and every
// remote id in the device scope, then replicates the ids the source side
// has and the target side lacks. Checkpoints are neither read nor written.
func (s *syncService) Compare(ctx context.Context, opts CompareOptions) (models.ReplicationStatus, error) {
	direction := opts.Direction
	if !direction.Valid() {
		return models.ReplicationStatus{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidDataProvided, direction)
	}
	if !s.running.TryLock() {
		return models.ReplicationStatus{}, ErrSyncInProgress
	}
	defer s.running.Unlock()

	compareLimit := opts.Limit
	if compareLimit <= 0 {
		compareLimit = s.cfg.Sync.CompareLimit
	}
	if opts.ReduceBatchSize {
		compareLimit = ReducedCompareLimit
	}
	compareLimit = max(compareLimit, minCompareLimit)

	started := s.clock.Now()
	log := s.logger.With().Str("direction", string(direction)).Logger()
	log.Info().Int("compare_limit", compareLimit).Bool("reduced", opts.ReduceBatchSize).Msg("compare started")

	dev := s.cfg.Device
	session, err := s.negotiator.Open(ctx, s.cfg.Adapter.ServerURL, dev.GroupID, dev.ID, dev.Token)
	if err != nil {
		s.progress.Message(direction, SessionUnavailableMessage)
		return models.ReplicationStatus{PushError: SessionUnavailableMessage}, err
	}

	localIDs, err := s.listLocalIDs(ctx, compareLimit)
	if err != nil {
		return models.ReplicationStatus{}, fmt.Errorf("%w: list local ids: %w", ErrTransfer, err)
	}
	s.progress.Message(direction, collectedLocalMessage(len(localIDs)))

	selector := BuildSelector(s.forms, session.AssignedLocations, session.DeviceID, s.cfg.Sync.DisableDeviceUserFilteringByAssignment)
	remoteIDs, err := listRemoteIDs(ctx, session.Remote, selector, compareLimit)
	if err != nil {
		return models.ReplicationStatus{}, fmt.Errorf("%w: list remote ids: %w", ErrTransfer, err)
	}
	s.progress.Message(direction, collectedRemoteMessage(len(remoteIDs)))

	var source, target DocumentStore = s.local, session.Remote
	candidates := SyncCandidates(localIDs, remoteIDs)
	if direction == models.DirectionPull {
		source, target = session.Remote, s.local
		candidates = SyncCandidates(remoteIDs, localIDs)
	}

	log.Info().
		Int("local", len(localIDs)).
		Int("remote", len(remoteIDs)).
		Int("candidates", len(candidates)).
		Msg("compare diff ready")
	s.progress.Message(direction, docsToSyncMessage(len(candidates)))

	status := models.ReplicationStatus{Direction: direction}
	if len(candidates) > 0 {
		status, err = s.replicator.Replicate(ctx, source, target, ReplicationOptions{
			Direction:  direction,
			DocIDs:     candidates,
			BatchSizes: SelectBatchSizes(s.cfg.Sync, false, "", opts.ReduceBatchSize),
		})
		if err != nil {
			return status, err
		}
	}

	end := s.clock.Now()
	status.Compare = models.CompareReport{
		StartTime:       started.UTC().Format(time.RFC3339Nano),
		EndTime:         end.UTC().Format(time.RFC3339Nano),
		Direction:       direction,
		LocalDocsCount:  models.Ptr(len(localIDs)),
		RemoteDocsCount: models.Ptr(len(remoteIDs)),
		IDsToSyncCount:  models.Ptr(len(candidates)),
		DurationMs:      models.Ptr(end.Sub(started).Milliseconds()),
	}

	if s.reporter != nil {
		status = s.reporter.Build(ctx, status)
		if err := s.reporter.Send(ctx, status); err != nil {
			log.Error().Err(err).Msg("compare report not delivered")
		}
	}
	if s.indexer != nil && !s.cfg.Sync.IndexViewsOnlyOnFirstSync {
		if err := s.indexer.Optimize(ctx); err != nil {
			log.Error().Err(err).Msg("index optimization failed")
		}
	}

	return status, nil
}

// listLocalIDs pages the local store by id. Design documents and the
// device's own initial profile are left out.
func (s *syncService) listLocalIDs(ctx context.Context, limit int) ([]string, error) {
	var (
		ids      []string
		startKey string
	)

	for {
		page, err := s.local.AllDocs(ctx, models.AllDocsRequest{StartKey: startKey, Limit: limit, IncludeDocs: true})
		if err != nil {
			return nil, err
		}

		rows := page.Rows
		if startKey != "" && len(rows) > 0 && rows[0].ID == startKey {
			rows = rows[1:]
		}
		if len(rows) == 0 {
			return ids, nil
		}

		for _, row := range rows {
			if models.IsDesignID(row.ID) || isInitialProfile(row.Doc) {
				continue
			}
			ids = append(ids, row.ID)
		}
		startKey = rows[len(rows)-1].ID
	}
}

// listRemoteIDs pages the remote documents matching selector.
func listRemoteIDs(ctx context.Context, remote DocumentStore, selector models.Selector, limit int) ([]string, error) {
	var (
		ids      []string
		bookmark string
	)

	for {
		page, err := remote.Find(ctx, models.FindRequest{
			Selector: selector,
			Fields:   []string{models.KeyID},
			Limit:    limit,
			Bookmark: bookmark,
		})
		if err != nil {
			return nil, err
		}
		if len(page.Docs) == 0 {
			return ids, nil
		}

		for _, doc := range page.Docs {
			ids = append(ids, doc.ID)
		}
		if page.Bookmark == bookmark || page.Bookmark == "" {
			return ids, nil
		}
		bookmark = page.Bookmark
	}
}

func isInitialProfile(doc *models.Document) bool {
	return doc != nil && doc.FormID() == models.UserProfileFormID && doc.HasEmptyLocation()
}

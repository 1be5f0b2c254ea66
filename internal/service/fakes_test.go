package service

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sort"
	"sync"

	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// memStore is an in-memory document store with the same replication
// semantics as the SQL repositories.
type memStore struct {
	mu   sync.Mutex
	docs map[string]models.Document
	seqs map[string]models.Seq
	seq  models.Seq

	writes map[string]int
	reject map[string]bool

	indexes  []string
	analyzed int
	resets   int

	// page sizes requested, per operation
	changesLimits []int
	pageLimits    []int
}

func newMemStore(docs ...models.Document) *memStore {
	s := &memStore{
		docs:   make(map[string]models.Document),
		seqs:   make(map[string]models.Seq),
		writes: make(map[string]int),
		reject: make(map[string]bool),
	}
	for _, d := range docs {
		s.store(d)
	}
	// seeding is not a replicated write
	clear(s.writes)
	return s
}

func (s *memStore) store(d models.Document) {
	s.seq++
	s.docs[d.ID] = d
	s.seqs[d.ID] = s.seq
	s.writes[d.ID]++
}

func (s *memStore) ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.docs))
	for id, d := range s.docs {
		if !d.Deleted {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (s *memStore) writeCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[id]
}

func (s *memStore) sortedByID(filter func(models.Document) bool) []models.Document {
	out := make([]models.Document, 0, len(s.docs))
	for _, d := range s.docs {
		if filter(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) Changes(_ context.Context, req models.ChangesRequest) (models.ChangesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changesLimits = append(s.changesLimits, req.Limit)

	var all []models.Change
	for id, d := range s.docs {
		seq := s.seqs[id]
		if seq <= req.Since {
			continue
		}
		if len(req.DocIDs) > 0 && !slices.Contains(req.DocIDs, id) {
			continue
		}
		if req.Selector != nil && !req.Selector.Matches(d) {
			continue
		}
		all = append(all, models.Change{Seq: seq, ID: id, Rev: d.Rev, Deleted: d.Deleted})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seq < all[j].Seq })

	resp := models.ChangesResponse{Results: all, LastSeq: max(s.seq, req.Since)}
	if req.Limit > 0 && len(all) >= req.Limit {
		resp.Results = all[:req.Limit]
		resp.LastSeq = resp.Results[len(resp.Results)-1].Seq
		resp.Pending = len(all) - req.Limit
	}
	if resp.Results == nil {
		resp.Results = []models.Change{}
	}
	return resp, nil
}

func (s *memStore) AllDocs(_ context.Context, req models.AllDocsRequest) (models.AllDocsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docs []models.Document
	if len(req.Keys) > 0 {
		docs = s.sortedByID(func(d models.Document) bool { return slices.Contains(req.Keys, d.ID) })
	} else {
		s.pageLimits = append(s.pageLimits, req.Limit)
		docs = s.sortedByID(func(d models.Document) bool { return !d.Deleted && d.ID >= req.StartKey })
		if req.Limit > 0 && len(docs) > req.Limit {
			docs = docs[:req.Limit]
		}
	}

	resp := models.AllDocsResponse{Rows: make([]models.AllDocsRow, 0, len(docs))}
	for i := range docs {
		row := models.AllDocsRow{ID: docs[i].ID, Key: docs[i].ID, Value: models.RevValue{Rev: docs[i].Rev, Deleted: docs[i].Deleted}}
		if req.IncludeDocs && !docs[i].Deleted {
			row.Doc = &docs[i]
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp, nil
}

func (s *memStore) Find(_ context.Context, req models.FindRequest) (models.FindResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageLimits = append(s.pageLimits, req.Limit)

	docs := s.sortedByID(func(d models.Document) bool {
		return !d.Deleted && d.ID > req.Bookmark && req.Selector.Matches(d)
	})
	if req.Limit > 0 && len(docs) > req.Limit {
		docs = docs[:req.Limit]
	}

	resp := models.FindResponse{Docs: docs, Bookmark: req.Bookmark}
	if len(docs) > 0 {
		resp.Bookmark = docs[len(docs)-1].ID
	}
	return resp, nil
}

func (s *memStore) BulkGet(_ context.Context, ids []string) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedByID(func(d models.Document) bool { return slices.Contains(ids, d.ID) }), nil
}

func (s *memStore) BulkDocs(_ context.Context, docs []models.Document) ([]models.BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]models.BulkResult, 0, len(docs))
	for _, d := range docs {
		if s.reject[d.ID] {
			results = append(results, models.BulkResult{ID: d.ID, Error: "forbidden", Reason: "rejected by validation"})
			continue
		}
		if cur, ok := s.docs[d.ID]; ok && !models.RevWins(d.Rev, cur.Rev) {
			results = append(results, models.BulkResult{ID: d.ID, Rev: d.Rev})
			continue
		}
		s.store(d)
		results = append(results, models.BulkResult{ID: d.ID, Rev: d.Rev})
	}
	return results, nil
}

func (s *memStore) Info(context.Context) (models.StoreInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var live int64
	for _, d := range s.docs {
		if !d.Deleted {
			live++
		}
	}
	return models.StoreInfo{DocCount: live, UpdateSeq: s.seq}, nil
}

func (s *memStore) CountBySelector(_ context.Context, sel models.Selector) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.sortedByID(func(d models.Document) bool { return !d.Deleted && sel.Matches(d) }))), nil
}

func (s *memStore) Put(_ context.Context, doc models.Document) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.docs[doc.ID]
	doc.Rev = models.NextRev(cur.Rev, "local")
	s.store(doc)
	return doc, nil
}

func (s *memStore) Reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.docs)
	clear(s.seqs)
	s.resets++
	return nil
}

func (s *memStore) EnsureIndex(_ context.Context, def models.IndexDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexes = append(s.indexes, def.Name)
	return nil
}

func (s *memStore) Analyze(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzed++
	return nil
}

var _ store.LocalDocumentRepository = (*memStore)(nil)

// flakyStore fails the failOn-th BulkGet call.
type flakyStore struct {
	DocumentStore
	calls  int
	failOn int
}

func (f *flakyStore) BulkGet(ctx context.Context, ids []string) ([]models.Document, error) {
	f.calls++
	if f.calls == f.failOn {
		return nil, errors.New("connection reset by peer")
	}
	return f.DocumentStore.BulkGet(ctx, ids)
}

// memVariables keeps JSON values in memory and remembers every write.
type memVariables struct {
	mu      sync.Mutex
	values  map[string][]byte
	history map[string][]string
	onSet   func(key string)
}

func newMemVariables() *memVariables {
	return &memVariables{values: make(map[string][]byte), history: make(map[string][]string)}
}

func (v *memVariables) Get(_ context.Context, key string, dst any) error {
	v.mu.Lock()
	raw, ok := v.values[key]
	v.mu.Unlock()
	if !ok {
		return store.ErrVariableNotFound
	}
	return json.Unmarshal(raw, dst)
}

func (v *memVariables) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if v.onSet != nil {
		v.onSet(key)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[key] = raw
	v.history[key] = append(v.history[key], string(raw))
	return nil
}

func (v *memVariables) seq(key string) (models.Seq, bool) {
	var seq models.Seq
	if err := v.Get(context.Background(), key, &seq); err != nil {
		return 0, false
	}
	return seq, true
}

func (v *memVariables) writes(key string) []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.history[key])
}

// staticCaps is a fixed DeviceCapabilities.
type staticCaps struct{}

func (staticCaps) StorageAvailable(context.Context) (int64, error) { return 1 << 30, nil }

func (staticCaps) Network() models.NetworkInfo {
	return models.NetworkInfo{EffectiveConnectionType: "3g", DownlinkMbps: models.Ptr(1.5)}
}

func (staticCaps) Device() models.DeviceInfo {
	return models.DeviceInfo{DeviceID: "dev-1", GroupID: "grp-1", AppVersion: "v1.0.0"}
}

func (staticCaps) UserAgent() string { return "fieldsync-test" }

// formDoc builds a form response document.
func formDoc(id, rev, formID, region string) models.Document {
	fields := map[string]any{"form": map[string]any{"id": formID}}
	if region != "" {
		fields["location"] = map[string]any{"region": region}
	} else {
		fields["location"] = map[string]any{}
	}
	return models.Document{ID: id, Rev: rev, Fields: fields}
}

func regionLoc(value string) models.LocationConfig {
	return models.LocationConfig{Value: []models.LocationNode{{Level: "region", Value: value}}}
}

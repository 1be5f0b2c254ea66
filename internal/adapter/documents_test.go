package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

func newTestDocumentStore(t *testing.T, handler http.HandlerFunc) RemoteDocumentStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := NewHTTPDocumentStore(srv.URL+"/db/session-token", time.Second, logger.Nop())
	require.NoError(t, err)
	return store
}

func TestChanges(t *testing.T) {
	store := newTestDocumentStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/db/session-token/_changes", r.URL.Path)

		var req models.ChangesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.Seq(4), req.Since)
		assert.Equal(t, 25, req.Limit)
		require.NotNil(t, req.Selector)
		assert.Len(t, req.Selector.Or, 1)

		_, _ = utils.WriteJSON(w, models.ChangesResponse{
			Results: []models.Change{{Seq: 5, ID: "a", Rev: "1-a"}},
			LastSeq: 5,
		}, http.StatusOK)
	})

	sel := models.Selector{Or: []models.Clause{{{Field: "form.id", Value: "f1"}}}}
	got, err := store.Changes(context.Background(), models.ChangesRequest{Since: 4, Limit: 25, Selector: &sel})
	require.NoError(t, err)
	assert.Equal(t, models.Seq(5), got.LastSeq)
	assert.Equal(t, "a", got.Results[0].ID)
}

func TestAllDocsAndFind(t *testing.T) {
	store := newTestDocumentStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/db/session-token/_all_docs":
			_, _ = utils.WriteJSON(w, models.AllDocsResponse{Rows: []models.AllDocsRow{
				{ID: "a", Key: "a", Value: models.RevValue{Rev: "2-a"}},
			}}, http.StatusOK)
		case "/db/session-token/_find":
			var req models.FindRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "bm", req.Bookmark)
			_, _ = utils.WriteJSON(w, models.FindResponse{Docs: []models.Document{{ID: "b"}}, Bookmark: "b"}, http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	all, err := store.AllDocs(context.Background(), models.AllDocsRequest{Keys: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, "2-a", all.Rows[0].Value.Rev)

	found, err := store.Find(context.Background(), models.FindRequest{Fields: []string{"_id"}, Limit: 10, Bookmark: "bm"})
	require.NoError(t, err)
	assert.Equal(t, "b", found.Bookmark)
	assert.Equal(t, "b", found.Docs[0].ID)
}

func TestBulkGet_SkipsMissing(t *testing.T) {
	store := newTestDocumentStore(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.BulkGetRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Docs, 2)

		_, _ = utils.WriteJSON(w, models.BulkGetResponse{Results: []models.BulkGetResult{
			{ID: "a", Docs: []models.BulkGetDoc{{OK: &models.Document{ID: "a", Rev: "1-a"}}}},
			{ID: "ghost", Docs: []models.BulkGetDoc{{Error: &models.BulkResult{ID: "ghost", Error: "not_found"}}}},
		}}, http.StatusOK)
	})

	docs, err := store.BulkGet(context.Background(), []string{"a", "ghost"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "1-a", docs[0].Rev)
}

func TestBulkDocs(t *testing.T) {
	store := newTestDocumentStore(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.BulkDocsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.NewEdits)
		require.Len(t, req.Docs, 2)

		_, _ = utils.WriteJSON(w, []models.BulkResult{
			{ID: "a", Rev: "1-a"},
			{ID: "b", Error: "forbidden", Reason: "read only"},
		}, http.StatusCreated)
	})

	res, err := store.BulkDocs(context.Background(), []models.Document{{ID: "a", Rev: "1-a"}, {ID: "b", Rev: "1-b"}})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.True(t, res[0].OK())
	assert.False(t, res[1].OK())
}

func TestInfo(t *testing.T) {
	store := newTestDocumentStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/db/session-token/", r.URL.Path)
		_, _ = utils.WriteJSON(w, models.StoreInfo{DocCount: 12, UpdateSeq: 40}, http.StatusOK)
	})

	info, err := store.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), info.DocCount)
	assert.Equal(t, models.Seq(40), info.UpdateSeq)
}

func TestDocumentStore_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusServiceUnavailable, ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			store := newTestDocumentStore(t, func(w http.ResponseWriter, r *http.Request) {
				utils.WriteError(w, tt.status, "error", "reason")
			})

			_, err := store.Changes(context.Background(), models.ChangesRequest{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewHTTPDocumentStore_InvalidURL(t *testing.T) {
	_, err := NewHTTPDocumentStore("", time.Second, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidURL)
}

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/mock"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// ---- Fakes: service layer ----

type fakeSessions struct {
	start func(groupID, deviceID, token string) (models.SessionResponse, error)
	parse func(token string) (models.SessionToken, error)
}

func (f *fakeSessions) StartSession(_ context.Context, groupID, deviceID, token string) (models.SessionResponse, error) {
	return f.start(groupID, deviceID, token)
}

func (f *fakeSessions) ParseSession(_ context.Context, token string) (models.SessionToken, error) {
	return f.parse(token)
}

type fakeDevices struct {
	registered []models.DeviceRegistration
	reports    []models.ReplicationStatus
	err        error
}

func (f *fakeDevices) Register(_ context.Context, groupID string, reg models.DeviceRegistration) (models.Device, error) {
	if f.err != nil {
		return models.Device{}, f.err
	}
	f.registered = append(f.registered, reg)
	return models.Device{ID: reg.ID, GroupID: groupID, SyncLocations: reg.SyncLocations, Token: "plain-token"}, nil
}

func (f *fakeDevices) UpdateAssignment(context.Context, string, string, models.DeviceRegistration) error {
	return f.err
}

func (f *fakeDevices) Get(_ context.Context, groupID, deviceID, _ string) (models.Device, error) {
	if f.err != nil {
		return models.Device{}, f.err
	}
	return models.Device{ID: deviceID, GroupID: groupID, Claimed: true}, nil
}

func (f *fakeDevices) DidSync(_ context.Context, _, _, _ string, report models.ReplicationStatus) error {
	if f.err != nil {
		return f.err
	}
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeDevices) Snapshot(context.Context, string, string, string) ([]models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.Document{{ID: "a", Rev: "1-a", Fields: map[string]any{"n": 1.0}}}, nil
}

type fakeDocuments struct {
	groups map[string]store.DocumentRepository
}

func (f *fakeDocuments) ForGroup(groupID string) store.DocumentRepository {
	return f.groups[groupID]
}

// ---- Helpers ----

// validSession accepts the token "good" as device dev-1 of group grp-1.
func validSession() *fakeSessions {
	return &fakeSessions{
		start: func(string, string, string) (models.SessionResponse, error) {
			return models.SessionResponse{SyncSessionURL: "http://srv/db/good", DeviceSyncLocations: []models.LocationConfig{}}, nil
		},
		parse: func(token string) (models.SessionToken, error) {
			if token != "good" {
				return models.SessionToken{}, service.ErrSessionExpired
			}
			st := models.SessionToken{GroupID: "grp-1"}
			st.Subject = "dev-1"
			return st, nil
		},
	}
}

type testServer struct {
	handler  *Handler
	router   http.Handler
	devices  *fakeDevices
	docs     *mock.MockDocumentRepository
	sessions *fakeSessions
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	ts := &testServer{
		devices:  &fakeDevices{},
		docs:     mock.NewMockDocumentRepository(ctrl),
		sessions: validSession(),
	}
	ts.handler = NewHandler(&service.Services{
		Sessions:  ts.sessions,
		Devices:   ts.devices,
		Documents: &fakeDocuments{groups: map[string]store.DocumentRepository{"grp-1": ts.docs}},
	}, "admin-key", models.NewAppBuildInfo("1.2.3", "2026-01-02", "abc123"), logger.Nop())
	ts.router = ts.handler.Init()
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// chiWithParam mounts next under /db/{param} so that chi.URLParam resolves.
func chiWithParam(param string, next http.Handler) http.Handler {
	router := chi.NewRouter()
	router.Handle("/db/{"+param+"}", next)
	return router
}

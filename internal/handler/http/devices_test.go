package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

func TestStartSession(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "ok", wantStatus: http.StatusOK},
		{name: "bad token", err: service.ErrInvalidDeviceToken, wantStatus: http.StatusUnauthorized},
		{name: "bad params", err: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "registry down", err: store.ErrExecutingQuery, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			var gotGroup, gotDevice, gotToken string
			ts.sessions.start = func(groupID, deviceID, token string) (models.SessionResponse, error) {
				gotGroup, gotDevice, gotToken = groupID, deviceID, token
				if tt.err != nil {
					return models.SessionResponse{}, tt.err
				}
				return models.SessionResponse{SyncSessionURL: "http://srv/db/xyz", DeviceSyncLocations: []models.LocationConfig{}}, nil
			}

			rec := ts.do(httptest.NewRequest(http.MethodGet, "/sync-session/start/grp-1/dev-1/tok", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, []string{"grp-1", "dev-1", "tok"}, []string{gotGroup, gotDevice, gotToken})
			if tt.err == nil {
				assert.JSONEq(t, `{"syncSessionUrl":"http://srv/db/xyz","deviceSyncLocations":[]}`, rec.Body.String())
			}
		})
	}
}

func TestGetDevice(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/devices/grp-1/dev-1/tok/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"_id":"dev-1"`)

	ts.devices.err = service.ErrInvalidDeviceToken
	rec = ts.do(httptest.NewRequest(http.MethodGet, "/devices/grp-1/dev-1/tok/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDidSync(t *testing.T) {
	ts := newTestServer(t)

	body := `{"direction":"pull","pushed":2,"pulled":5}`
	rec := ts.do(httptest.NewRequest(http.MethodPost, "/devices/grp-1/dev-1/tok/did-sync", strings.NewReader(body)))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, ts.devices.reports, 1)
	assert.Equal(t, 2, models.Val(ts.devices.reports[0].Pushed))
	assert.Equal(t, 5, models.Val(ts.devices.reports[0].Pulled))
}

func TestDidSync_InvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodPost, "/devices/grp-1/dev-1/tok/did-sync", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.devices.reports)
}

func TestSnapshot(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/devices/grp-1/dev-1/tok/snapshot", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"_id":"a","_rev":"1-a","n":1}]`, rec.Body.String())
}

// ---- admin ----

func adminRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer admin-key")
	return req
}

func TestRegisterDevice(t *testing.T) {
	ts := newTestServer(t)

	body := `{"_id":"dev-9","syncLocations":[{"value":[{"level":"region","value":"north"}]}]}`
	rec := ts.do(adminRequest(http.MethodPost, "/admin/groups/grp-1/devices", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"plain-token"`)
	require.Len(t, ts.devices.registered, 1)
	assert.Equal(t, "dev-9", ts.devices.registered[0].ID)
}

func TestRegisterDevice_Conflict(t *testing.T) {
	ts := newTestServer(t)
	ts.devices.err = store.ErrDeviceAlreadyExists

	rec := ts.do(adminRequest(http.MethodPost, "/admin/groups/grp-1/devices", `{"_id":"dev-1"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterDevice_InvalidLocations(t *testing.T) {
	ts := newTestServer(t)

	body := `{"_id":"dev-9","syncLocations":[{"value":[]}]}`
	rec := ts.do(adminRequest(http.MethodPost, "/admin/groups/grp-1/devices", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.devices.registered)
}

func TestUpdateAssignment(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(adminRequest(http.MethodPut, "/admin/groups/grp-1/devices/dev-1", `{"syncLocations":[]}`))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	ts.devices.err = store.ErrDeviceNotFound
	rec = ts.do(adminRequest(http.MethodPut, "/admin/groups/grp-1/devices/dev-1", `{"syncLocations":[]}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(adminRequest(http.MethodPut, "/admin/groups/grp-1/devices/dev-1", `{"assignedFormResponseIds":[""]}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

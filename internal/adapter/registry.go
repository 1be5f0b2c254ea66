package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

const (
	sessionStartPath = "/sync-session/start/{groupId}/{deviceId}/{deviceToken}"
	devicePath       = "/devices/{groupId}/{deviceId}/{deviceToken}"
	didSyncPath      = devicePath + "/did-sync"
	snapshotPath     = devicePath + "/snapshot"
)

type httpRegistryAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPRegistryAdapter constructs an HTTP implementation of
// [RegistryAdapter]. serverURL is normalised ("host:port" gets an http://
// scheme) and used as the base of every request.
//
// Returns an error wrapping [ErrInvalidURL] if serverURL is empty or cannot be
// parsed.
func NewHTTPRegistryAdapter(serverURL string, timeout time.Duration, logger *logger.Logger) (RegistryAdapter, error) {
	baseURL, err := normalizeBaseURL(serverURL)
	if err != nil {
		return nil, fmt.Errorf("%w: server url: %w", ErrInvalidURL, err)
	}

	return &httpRegistryAdapter{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// StartSession implements [RegistryAdapter]. It GETs
// /sync-session/start/{groupId}/{deviceId}/{deviceToken} and decodes the
// session URL and the device's current locations.
func (h *httpRegistryAdapter) StartSession(ctx context.Context, serverURL string, creds DeviceCredentials) (models.SessionResponse, error) {
	path := sessionStartPath
	if serverURL != "" {
		base, err := normalizeBaseURL(serverURL)
		if err != nil {
			return models.SessionResponse{}, fmt.Errorf("%w: server url: %w", ErrInvalidURL, err)
		}
		path = base + sessionStartPath
	}

	var session models.SessionResponse
	resp, err := h.deviceRequest(ctx, creds).
		SetResult(&session).
		Get(path)
	if err != nil {
		return models.SessionResponse{}, fmt.Errorf("start session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SessionResponse{}, err
	}
	if session.SyncSessionURL == "" {
		return models.SessionResponse{}, fmt.Errorf("%w: empty session url", ErrInvalidURL)
	}

	return session, nil
}

// GetDevice implements [RegistryAdapter].
func (h *httpRegistryAdapter) GetDevice(ctx context.Context, creds DeviceCredentials) (models.Device, error) {
	var device models.Device
	resp, err := h.deviceRequest(ctx, creds).
		SetResult(&device).
		Get(devicePath)
	if err != nil {
		return models.Device{}, fmt.Errorf("get device request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Device{}, err
	}

	return device, nil
}

// DidSync implements [RegistryAdapter].
func (h *httpRegistryAdapter) DidSync(ctx context.Context, creds DeviceCredentials, report models.ReplicationStatus) error {
	resp, err := h.deviceRequest(ctx, creds).
		SetBody(report).
		Post(didSyncPath)
	if err != nil {
		return fmt.Errorf("did-sync request: %w", err)
	}

	return mapHTTPError(resp)
}

// Snapshot implements [RegistryAdapter].
func (h *httpRegistryAdapter) Snapshot(ctx context.Context, creds DeviceCredentials) ([]models.Document, error) {
	var docs []models.Document
	resp, err := h.deviceRequest(ctx, creds).
		SetResult(&docs).
		Get(snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("snapshot request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return docs, nil
}

func (h *httpRegistryAdapter) deviceRequest(ctx context.Context, creds DeviceCredentials) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"groupId":     creds.GroupID,
			"deviceId":    creds.DeviceID,
			"deviceToken": creds.Token,
		})
}

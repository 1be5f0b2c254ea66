package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

type httpDocumentStore struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPDocumentStore binds a [RemoteDocumentStore] to sessionURL. Every
// request path is relative to it, so the store lives exactly as long as the
// session does.
func NewHTTPDocumentStore(sessionURL string, timeout time.Duration, logger *logger.Logger) (RemoteDocumentStore, error) {
	baseURL, err := normalizeBaseURL(sessionURL)
	if err != nil {
		return nil, fmt.Errorf("%w: session url: %w", ErrInvalidURL, err)
	}

	return &httpDocumentStore{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

// Changes implements [RemoteDocumentStore]. It POSTs to /_changes.
func (h *httpDocumentStore) Changes(ctx context.Context, req models.ChangesRequest) (models.ChangesResponse, error) {
	var out models.ChangesResponse
	if err := h.post(ctx, "/_changes", req, &out); err != nil {
		return models.ChangesResponse{}, fmt.Errorf("changes: %w", err)
	}
	return out, nil
}

// AllDocs implements [RemoteDocumentStore]. It POSTs to /_all_docs.
func (h *httpDocumentStore) AllDocs(ctx context.Context, req models.AllDocsRequest) (models.AllDocsResponse, error) {
	var out models.AllDocsResponse
	if err := h.post(ctx, "/_all_docs", req, &out); err != nil {
		return models.AllDocsResponse{}, fmt.Errorf("all docs: %w", err)
	}
	return out, nil
}

// Find implements [RemoteDocumentStore]. It POSTs to /_find.
func (h *httpDocumentStore) Find(ctx context.Context, req models.FindRequest) (models.FindResponse, error) {
	var out models.FindResponse
	if err := h.post(ctx, "/_find", req, &out); err != nil {
		return models.FindResponse{}, fmt.Errorf("find: %w", err)
	}
	return out, nil
}

// BulkGet implements [RemoteDocumentStore]. Ids the server cannot find are
// left out of the result.
func (h *httpDocumentStore) BulkGet(ctx context.Context, ids []string) ([]models.Document, error) {
	req := models.BulkGetRequest{Docs: make([]models.BulkGetRef, 0, len(ids))}
	for _, id := range ids {
		req.Docs = append(req.Docs, models.BulkGetRef{ID: id})
	}

	var out models.BulkGetResponse
	if err := h.post(ctx, "/_bulk_get", req, &out); err != nil {
		return nil, fmt.Errorf("bulk get: %w", err)
	}
	return out.Documents(), nil
}

// BulkDocs implements [RemoteDocumentStore]. Documents keep their revisions.
func (h *httpDocumentStore) BulkDocs(ctx context.Context, docs []models.Document) ([]models.BulkResult, error) {
	var out []models.BulkResult
	if err := h.post(ctx, "/_bulk_docs", models.BulkDocsRequest{Docs: docs}, &out); err != nil {
		return nil, fmt.Errorf("bulk docs: %w", err)
	}
	return out, nil
}

// Info implements [RemoteDocumentStore]. It GETs the session root.
func (h *httpDocumentStore) Info(ctx context.Context) (models.StoreInfo, error) {
	var info models.StoreInfo
	resp, err := h.request(ctx).SetResult(&info).Get("/")
	if err != nil {
		return models.StoreInfo{}, fmt.Errorf("info request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StoreInfo{}, fmt.Errorf("info: %w", err)
	}
	return info, nil
}

func (h *httpDocumentStore) post(ctx context.Context, path string, body, result any) error {
	resp, err := h.request(ctx).
		SetBody(body).
		SetResult(result).
		Post(path)
	if err != nil {
		h.logger.Debug().Err(err).Str("func", "*httpDocumentStore.post").Str("path", path).Msg("request failed")
		return fmt.Errorf("request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpDocumentStore) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

var (
	sessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldsync_sessions_started_total",
		Help: "Sync session requests by outcome",
	}, []string{"status"})

	syncReports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fieldsync_sync_reports_total",
		Help: "Post-sync reports received from devices",
	})

	documentsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldsync_documents_written_total",
		Help: "Documents offered to bulk writes by result",
	}, []string{"result"})

	documentsRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fieldsync_documents_read_total",
		Help: "Documents returned by bulk reads",
	})

	changesServed = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fieldsync_changes_page_size",
		Help:    "Entries per change feed page",
		Buckets: []float64{0, 1, 10, 25, 50, 100, 200, 500, 1000},
	})
)

type metricsWrapper struct{}

// NewMetricsWrapper returns a [DocumentStoreWrapper] counting replicated
// documents.
func NewMetricsWrapper() DocumentStoreWrapper {
	return metricsWrapper{}
}

func (metricsWrapper) Wrap(next store.DocumentRepository) store.DocumentRepository {
	return &meteredDocuments{DocumentRepository: next}
}

type meteredDocuments struct {
	store.DocumentRepository
}

func (m *meteredDocuments) Changes(ctx context.Context, req models.ChangesRequest) (models.ChangesResponse, error) {
	resp, err := m.DocumentRepository.Changes(ctx, req)
	if err == nil {
		changesServed.Observe(float64(len(resp.Results)))
	}
	return resp, err
}

func (m *meteredDocuments) BulkGet(ctx context.Context, ids []string) ([]models.Document, error) {
	docs, err := m.DocumentRepository.BulkGet(ctx, ids)
	documentsRead.Add(float64(len(docs)))
	return docs, err
}

func (m *meteredDocuments) BulkDocs(ctx context.Context, docs []models.Document) ([]models.BulkResult, error) {
	results, err := m.DocumentRepository.BulkDocs(ctx, docs)
	for _, r := range results {
		if r.OK() {
			documentsWritten.WithLabelValues("ok").Inc()
		} else {
			documentsWritten.WithLabelValues("rejected").Inc()
		}
	}
	return results, err
}

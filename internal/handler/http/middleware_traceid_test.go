package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
)

func newTraceHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

// ---- Таблица: заголовок ответа X-Trace-ID ----

func TestWithTraceID_TableTest(t *testing.T) {
	tests := []struct {
		name            string
		requestTraceID  string
		wantSameTraceID bool
		wantValidUUID   bool
	}{
		{name: "trace ID from request header is reused", requestTraceID: "my-custom-trace-id", wantSameTraceID: true},
		{name: "no trace ID in request, UUID generated", wantValidUUID: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctxTraceID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxTraceID = utils.GetTraceIDFromContext(r.Context())
				w.WriteHeader(http.StatusTeapot)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.requestTraceID != "" {
				req.Header.Set(traceIDHeader, tt.requestTraceID)
			}
			rr := httptest.NewRecorder()
			newTraceHandler().withTraceID(next).ServeHTTP(rr, req)

			responseTraceID := rr.Header().Get(traceIDHeader)
			require.NotEmpty(t, responseTraceID)
			assert.Equal(t, responseTraceID, ctxTraceID)
			assert.Equal(t, http.StatusTeapot, rr.Code)

			if tt.wantSameTraceID {
				assert.Equal(t, tt.requestTraceID, responseTraceID)
			}
			if tt.wantValidUUID {
				_, err := uuid.Parse(responseTraceID)
				assert.NoError(t, err)
			}
		})
	}
}

// ---- Concurrent requests: нет гонок ----

func TestWithTraceID_ConcurrentRequests(t *testing.T) {
	middleware := newTraceHandler().withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	const n = 50
	done := make(chan string, n)
	for range n {
		go func() {
			rr := httptest.NewRecorder()
			middleware.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
			done <- rr.Header().Get(traceIDHeader)
		}()
	}

	seen := make(map[string]struct{})
	for range n {
		seen[<-done] = struct{}{}
	}
	assert.Len(t, seen, n)
}

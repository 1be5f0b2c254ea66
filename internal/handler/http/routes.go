package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Get("/metrics", promhttp.Handler().ServeHTTP)
	router.Get("/version", h.getServerVersion)

	// device registry, authenticated by the device token in the path
	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/sync-session/start/{groupId}/{deviceId}/{deviceToken}", h.startSession)

		r.Route("/devices/{groupId}/{deviceId}/{deviceToken}", func(r chi.Router) {
			r.Get("/", h.getDevice)
			r.Post("/did-sync", h.didSync)
			r.Get("/snapshot", h.snapshot)
		})
	})

	if h.adminKey != "" {
		router.Group(func(r chi.Router) {
			r.Use(h.adminAuth)

			r.Post("/admin/groups/{groupId}/devices", h.registerDevice)
			r.Put("/admin/groups/{groupId}/devices/{deviceId}", h.updateAssignment)
		})
	}

	// document API bound to a sync session
	router.Route("/db/{sessionToken}", func(r chi.Router) {
		r.Use(h.session, withGZip)

		r.Get("/", h.storeInfo)
		r.Post("/_changes", h.changes)
		r.Post("/_all_docs", h.allDocs)
		r.Post("/_find", h.find)
		r.Post("/_bulk_get", h.bulkGet)
		r.Post("/_bulk_docs", h.bulkDocs)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

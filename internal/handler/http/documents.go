package http

import (
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

// maxPageSize caps the limit of change feed and listing requests.
const maxPageSize = 1000

// groupStore returns the document store of the session in the request
// context, writing an error response when there is none.
func (h *Handler) groupStore(w http.ResponseWriter, r *http.Request) (store.DocumentRepository, bool) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Err(ErrNoSession).Send()
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", ErrNoSession.Error())
		return nil, false
	}
	return h.services.Documents.ForGroup(session.GroupID), true
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)
	logger.FromRequest(r).Err(err).Str("func", fn).Int("status", status).Msg("document store request failed")
	utils.WriteError(w, status, errorCode(status), err.Error())
}

func decodeOrReject(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := utils.DecodeJSON(r, v); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return false
	}
	return true
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func (h *Handler) storeInfo(w http.ResponseWriter, r *http.Request) {
	docs, ok := h.groupStore(w, r)
	if !ok {
		return
	}

	info, err := docs.Info(r.Context())
	if err != nil {
		h.writeStoreError(w, r, "*Handler.storeInfo", err)
		return
	}
	utils.WriteJSON(w, info, http.StatusOK)
}

func (h *Handler) changes(w http.ResponseWriter, r *http.Request) {
	docs, ok := h.groupStore(w, r)
	if !ok {
		return
	}

	var req models.ChangesRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	req.Limit = clampLimit(req.Limit)

	resp, err := docs.Changes(r.Context(), req)
	if err != nil {
		h.writeStoreError(w, r, "*Handler.changes", err)
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) allDocs(w http.ResponseWriter, r *http.Request) {
	docs, ok := h.groupStore(w, r)
	if !ok {
		return
	}

	var req models.AllDocsRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	if len(req.Keys) == 0 {
		req.Limit = clampLimit(req.Limit)
	}

	resp, err := docs.AllDocs(r.Context(), req)
	if err != nil {
		h.writeStoreError(w, r, "*Handler.allDocs", err)
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) find(w http.ResponseWriter, r *http.Request) {
	docs, ok := h.groupStore(w, r)
	if !ok {
		return
	}

	var req models.FindRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	req.Limit = clampLimit(req.Limit)

	resp, err := docs.Find(r.Context(), req)
	if err != nil {
		h.writeStoreError(w, r, "*Handler.find", err)
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

// bulkGet answers every requested id, with a not_found entry for ids the
// store does not hold.
func (h *Handler) bulkGet(w http.ResponseWriter, r *http.Request) {
	docs, ok := h.groupStore(w, r)
	if !ok {
		return
	}

	var req models.BulkGetRequest
	if !decodeOrReject(w, r, &req) {
		return
	}

	ids := make([]string, 0, len(req.Docs))
	for _, ref := range req.Docs {
		ids = append(ids, ref.ID)
	}

	found, err := docs.BulkGet(r.Context(), ids)
	if err != nil {
		h.writeStoreError(w, r, "*Handler.bulkGet", err)
		return
	}

	byID := make(map[string]models.Document, len(found))
	for _, d := range found {
		byID[d.ID] = d
	}

	resp := models.BulkGetResponse{Results: make([]models.BulkGetResult, 0, len(ids))}
	for _, id := range ids {
		res := models.BulkGetResult{ID: id}
		if d, ok := byID[id]; ok {
			res.Docs = []models.BulkGetDoc{{OK: &d}}
		} else {
			res.Docs = []models.BulkGetDoc{{Error: &models.BulkResult{ID: id, Error: "not_found", Reason: "missing"}}}
		}
		resp.Results = append(resp.Results, res)
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) bulkDocs(w http.ResponseWriter, r *http.Request) {
	docs, ok := h.groupStore(w, r)
	if !ok {
		return
	}

	var req models.BulkDocsRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	if err := h.validator.Validate(r.Context(), req); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.bulkDocs").Msg("rejected documents")
		utils.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	results, err := docs.BulkDocs(r.Context(), req.Docs)
	if err != nil {
		h.writeStoreError(w, r, "*Handler.bulkDocs", err)
		return
	}
	utils.WriteJSON(w, results, http.StatusCreated)
}

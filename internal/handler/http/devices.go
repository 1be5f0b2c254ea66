package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

type deviceParams struct {
	groupID, deviceID, token string
}

func deviceParamsFrom(r *http.Request) deviceParams {
	return deviceParams{
		groupID:  chi.URLParam(r, "groupId"),
		deviceID: chi.URLParam(r, "deviceId"),
		token:    chi.URLParam(r, "deviceToken"),
	}
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	p := deviceParamsFrom(r)

	session, err := h.services.Sessions.StartSession(ctx, p.groupID, p.deviceID, p.token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
		case errors.Is(err, service.ErrInvalidDeviceToken):
			log.Err(err).Msg("device rejected")
			http.Error(w, "invalid device credentials", http.StatusUnauthorized)
		default:
			log.Err(err).Msg("unexpected error occurred during session start")
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		}
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) getDevice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	p := deviceParamsFrom(r)

	device, err := h.services.Devices.Get(r.Context(), p.groupID, p.deviceID, p.token)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDevice").Msg("error getting device")
		http.Error(w, "error getting device", statusFromError(err))
		return
	}

	utils.WriteJSON(w, device, http.StatusOK)
}

func (h *Handler) didSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	p := deviceParamsFrom(r)

	var report models.ReplicationStatus
	if err := utils.DecodeJSON(r, &report); err != nil {
		log.Err(err).Str("func", "*Handler.didSync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.Devices.DidSync(r.Context(), p.groupID, p.deviceID, p.token, report); err != nil {
		log.Err(err).Str("func", "*Handler.didSync").Msg("error saving sync report")
		http.Error(w, "error saving sync report", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	p := deviceParamsFrom(r)

	docs, err := h.services.Devices.Snapshot(r.Context(), p.groupID, p.deviceID, p.token)
	if err != nil {
		log.Err(err).Str("func", "*Handler.snapshot").Msg("error collecting snapshot")
		http.Error(w, "error collecting snapshot", statusFromError(err))
		return
	}

	utils.WriteJSON(w, docs, http.StatusOK)
}

// registerDevice answers with the device including its plain token. It is
// the only response that ever carries it.
func (h *Handler) registerDevice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var reg models.DeviceRegistration
	if err := utils.DecodeJSON(r, &reg); err != nil {
		log.Err(err).Str("func", "*Handler.registerDevice").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := h.validator.Validate(r.Context(), reg); err != nil {
		log.Err(err).Str("func", "*Handler.registerDevice").Msg("invalid registration")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	device, err := h.services.Devices.Register(r.Context(), chi.URLParam(r, "groupId"), reg)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDeviceAlreadyExists):
			log.Err(err).Msg("device already exists")
			http.Error(w, "device already exists", http.StatusConflict)
		default:
			log.Err(err).Str("func", "*Handler.registerDevice").Msg("error registering device")
			http.Error(w, "error registering device", statusFromError(err))
		}
		return
	}

	utils.WriteJSON(w, device, http.StatusCreated)
}

func (h *Handler) updateAssignment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var reg models.DeviceRegistration
	if err := utils.DecodeJSON(r, &reg); err != nil {
		log.Err(err).Str("func", "*Handler.updateAssignment").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := h.validator.Validate(r.Context(), reg); err != nil {
		log.Err(err).Str("func", "*Handler.updateAssignment").Msg("invalid registration")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.services.Devices.UpdateAssignment(r.Context(), chi.URLParam(r, "groupId"), chi.URLParam(r, "deviceId"), reg)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateAssignment").Msg("error updating assignment")
		http.Error(w, "error updating assignment", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/app"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// UserMessage translates a sync error into the sentence shown on the device.
// A nil error yields the completion message.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return app.MsgSyncCompleted

	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
		return app.MsgDeviceNotAuthorized

	case errors.Is(err, ErrSessionUnavailable):
		return app.MsgSessionUnavailable

	case errors.Is(err, ErrSyncInProgress):
		return app.MsgSyncInProgress

	case errors.Is(err, ErrSyncCancelled):
		return app.MsgSyncCancelled

	case errors.Is(err, ErrRetriesExhausted):
		return app.MsgRetriesExhausted

	case errors.Is(err, ErrInvalidIndexConfig), errors.Is(err, ErrInvalidFormsConfig), errors.Is(err, ErrInvalidDataProvided):
		return app.MsgInvalidConfiguration

	case errors.Is(err, store.ErrExecutingQuery),
		errors.Is(err, store.ErrBeginningTransaction),
		errors.Is(err, store.ErrCommitingTransaction),
		errors.Is(err, store.ErrScanningRows):
		return app.MsgLocalStorage
	}

	return app.MsgSyncFailed
}

// StatusMessage summarises a finished run for the device user.
func StatusMessage(st models.ReplicationStatus, err error) string {
	if err != nil {
		return UserMessage(err)
	}
	if st.Cancelled {
		return app.MsgSyncCancelled
	}
	if st.HasErrors() {
		return app.MsgSyncCompletedWithErrors
	}
	return app.MsgSyncCompleted
}

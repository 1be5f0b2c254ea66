package tui

import (
	"github.com/MKhiriev/go-field-sync/models"
)

type progressMsg models.ProgressEvent

type syncFinishedMsg struct {
	status models.ReplicationStatus
	err    error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}

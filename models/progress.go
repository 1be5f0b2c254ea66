package models

import "time"

// ProgressType classifies a progress event.
type ProgressType string

const (
	ProgressChange         ProgressType = "change"
	ProgressCheckpoint     ProgressType = "checkpoint"
	ProgressDiffing        ProgressType = "diffing"
	ProgressStartNextBatch ProgressType = "startNextBatch"
	ProgressPendingBatch   ProgressType = "pendingBatch"
	ProgressState          ProgressType = "state"
	ProgressMessage        ProgressType = "message"
	ProgressCancelled      ProgressType = "cancelled"
	ProgressIndex          ProgressType = "index"
)

// ProgressEvent is published to every progress subscriber. Events are
// observational; nothing in the sync flow depends on who receives them.
type ProgressEvent struct {
	Type      ProgressType       `json:"type"`
	Direction Direction          `json:"direction,omitempty"`
	State     string             `json:"state,omitempty"`
	Message   string             `json:"message,omitempty"`
	Count     int                `json:"count,omitempty"`
	Percent   int                `json:"percent,omitempty"`
	Status    *ReplicationStatus `json:"status,omitempty"`
	At        time.Time          `json:"at"`
}

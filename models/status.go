// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"maps"

	"dario.cat/mergo"
)

// ReplicationStatus accumulates the outcome of the sync phases into a single
// report. Every optional field is a pointer or an omittable value so that
// Merge can tell "unset" apart from "zero".
type ReplicationStatus struct {
	Direction Direction `json:"direction,omitempty"`
	FullSync  Direction `json:"fullSync,omitempty"`
	Message   string    `json:"message,omitempty"`

	Pushed           *int `json:"pushed,omitempty"`
	Pulled           *int `json:"pulled,omitempty"`
	DocsRead         *int `json:"docs_read,omitempty"`
	DocsWritten      *int `json:"docs_written,omitempty"`
	DocWriteFailures *int `json:"doc_write_failures,omitempty"`
	Pending          *int `json:"pending,omitempty"`

	LastSeq            *Seq `json:"last_seq,omitempty"`
	InitialPushLastSeq *Seq `json:"initialPushLastSeq,omitempty"`
	CurrentPushLastSeq *Seq `json:"currentPushLastSeq,omitempty"`

	Errors    []string `json:"errors,omitempty"`
	PushError string   `json:"pushError,omitempty"`
	PullError string   `json:"pullError,omitempty"`
	Retries   *int     `json:"retryCount,omitempty"`

	HadPushSuccess bool `json:"hadPushSuccess,omitempty"`
	HadPullSuccess bool `json:"hadPullSuccess,omitempty"`
	Cancelled      bool `json:"cancelled,omitempty"`

	SyncStartTime  string `json:"syncCouchdbServiceStartTime,omitempty"`
	SyncEndTime    string `json:"syncCouchdbServiceEndime,omitempty"`
	SyncDurationMs *int64 `json:"syncCouchdbServiceDuration,omitempty"`

	StorageAvailable     *int64           `json:"storageAvailable,omitempty"`
	DBDocCount           *int64           `json:"dbDocCount,omitempty"`
	DeviceInfo           DeviceInfo       `json:"deviceInfo,omitzero"`
	Network              NetworkInfo      `json:"network,omitzero"`
	UserAgent            string           `json:"userAgent,omitempty"`
	LocalDocsForLocation map[string]int64 `json:"localDocsForLocation,omitempty"`

	Compare CompareReport `json:"compare,omitzero"`
}

// DeviceInfo describes the app installation that ran a sync.
type DeviceInfo struct {
	DeviceID     string `json:"deviceId,omitempty"`
	GroupID      string `json:"groupId,omitempty"`
	AppVersion   string `json:"appVersion,omitempty"`
	BuildDate    string `json:"buildDate,omitempty"`
	BuildCommit  string `json:"buildCommit,omitempty"`
	Platform     string `json:"platform,omitempty"`
	IsPackaged   bool   `json:"isPackaged,omitempty"`
	StorageQuota *int64 `json:"storageQuota,omitempty"`
}

// NetworkInfo is a snapshot of the connection the sync ran over.
type NetworkInfo struct {
	EffectiveConnectionType string   `json:"effectiveConnectionType,omitempty"`
	DownlinkMbps            *float64 `json:"networkDownlinkSpeed,omitempty"`
	DownlinkMaxMbps         *float64 `json:"networkDownlinkMax,omitempty"`
}

// CompareReport holds the telemetry of a reconciliation run.
type CompareReport struct {
	StartTime       string    `json:"compareDocsStartTime,omitempty"`
	EndTime         string    `json:"compareDocsEndTime,omitempty"`
	Direction       Direction `json:"compareDocsDirection,omitempty"`
	LocalDocsCount  *int      `json:"localDocsCount,omitempty"`
	RemoteDocsCount *int      `json:"remoteDocsCount,omitempty"`
	IDsToSyncCount  *int      `json:"idsToSyncCount,omitempty"`
	DurationMs      *int64    `json:"compareSyncDuration,omitempty"`
}

// Merge returns s overlaid with later: every non-empty field of later wins.
// Pointer fields count as set when non-nil, so an explicit zero overrides an
// earlier count. Neither input is modified.
func (s ReplicationStatus) Merge(later ReplicationStatus) ReplicationStatus {
	out := s
	out.Errors = append([]string(nil), s.Errors...)
	out.LocalDocsForLocation = maps.Clone(s.LocalDocsForLocation)

	if err := mergo.Merge(&out, later, mergo.WithOverride, mergo.WithoutDereference); err != nil {
		return later
	}
	return out
}

// HasErrors reports whether the engine recorded per-document errors or the
// phase ended with an error message.
func (s ReplicationStatus) HasErrors() bool {
	return len(s.Errors) > 0 || s.PushError != "" || s.PullError != ""
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value for nil.
func Val[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

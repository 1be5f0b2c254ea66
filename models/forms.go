package models

// UserProfileFormID identifies the form whose responses describe device users.
const UserProfileFormID = "user-profile"

// Issue document constants used by the pull filter.
const (
	IssueType         = "issue"
	ClientAppContext  = "CLIENT"
	FieldType         = "type"
	FieldFormID       = "form.id"
	FieldAppContext   = "resolveOnAppContext"
	FieldSendToAll    = "sendToAllDevices"
	FieldSendToDevice = "sendToDeviceById"
)

// CouchdbSyncSettings describes how responses of a form move between devices
// and the server.
type CouchdbSyncSettings struct {
	Enabled          bool `json:"enabled" yaml:"enabled"`
	Push             bool `json:"push" yaml:"push"`
	Pull             bool `json:"pull" yaml:"pull"`
	FilterByLocation bool `json:"filterByLocation" yaml:"filterByLocation"`
}

// FormInfo is the per-form sync configuration shipped with the app.
type FormInfo struct {
	ID                  string              `json:"id" yaml:"id"`
	Title               string              `json:"title,omitempty" yaml:"title,omitempty"`
	CouchdbSyncSettings CouchdbSyncSettings `json:"couchdbSyncSettings" yaml:"couchdbSyncSettings"`
}

// PullEnabled reports whether responses of the form are pulled to devices.
func (f FormInfo) PullEnabled() bool {
	return f.CouchdbSyncSettings.Enabled && f.CouchdbSyncSettings.Pull
}

package models

// SyncSession is the scope of one sync run: a time-boxed remote endpoint and
// the locations the server currently assigns to the device.
type SyncSession struct {
	RemoteEndpoint    string
	DeviceID          string
	DeviceToken       string
	GroupID           string
	AssignedLocations []LocationConfig
}

// SessionResponse is the body returned by the session endpoint.
type SessionResponse struct {
	SyncSessionURL      string           `json:"syncSessionUrl"`
	DeviceSyncLocations []LocationConfig `json:"deviceSyncLocations"`
}

// Device is the registry record of a device.
type Device struct {
	ID                      string           `json:"_id"`
	GroupID                 string           `json:"groupId"`
	SyncLocations           []LocationConfig `json:"syncLocations"`
	AssignedFormResponseIDs []string         `json:"assignedFormResponseIds"`
	Token                   string           `json:"token,omitempty"`
	TokenHash               string           `json:"-"`
	Claimed                 bool             `json:"claimed"`
	LastSyncedAt            string           `json:"lastSyncedAt,omitempty"`
}

// DeviceRegistration is the admin request that creates a device.
type DeviceRegistration struct {
	ID                      string           `json:"_id,omitempty"`
	SyncLocations           []LocationConfig `json:"syncLocations"`
	AssignedFormResponseIDs []string         `json:"assignedFormResponseIds,omitempty"`
}

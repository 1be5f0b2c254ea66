package client

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/models"
)

// Effective connection types reported in the sync telemetry.
const (
	ConnectionWiFi     = "wifi"
	ConnectionEthernet = "ethernet"
	ConnectionCellular = "cellular"
	ConnectionNone     = "none"
	ConnectionUnknown  = "unknown"
)

// Host answers the device capability questions of the sync reporter for the
// machine the client runs on.
type Host struct {
	dataDir string
	device  config.ClientDevice
	build   models.AppBuildInfo

	// interfaces is swapped in tests.
	interfaces func() ([]net.Interface, error)
}

// NewHost returns the capabilities of this machine. Storage is measured on
// the filesystem holding the local database.
func NewHost(cfg config.ClientConfig, build models.AppBuildInfo) *Host {
	return &Host{
		dataDir:    DataDir(cfg.Storage.DB.DSN),
		device:     cfg.Device,
		build:      build,
		interfaces: net.Interfaces,
	}
}

// StorageAvailable returns the bytes free for an unprivileged user.
func (h *Host) StorageAvailable(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	free, _, err := diskUsage(h.dataDir)
	if err != nil {
		return 0, fmt.Errorf("storage available: %w", err)
	}
	return free, nil
}

// Network guesses the link type from the names of the active interfaces.
// Bandwidth is not measured.
func (h *Host) Network() models.NetworkInfo {
	ifaces, err := h.interfaces()
	if err != nil {
		return models.NetworkInfo{EffectiveConnectionType: ConnectionUnknown}
	}

	kind := ConnectionNone
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		switch k := classifyInterface(iface.Name); k {
		case ConnectionWiFi, ConnectionEthernet:
			return models.NetworkInfo{EffectiveConnectionType: k}
		default:
			if kind == ConnectionNone || kind == ConnectionUnknown {
				kind = k
			}
		}
	}
	return models.NetworkInfo{EffectiveConnectionType: kind}
}

func classifyInterface(name string) string {
	switch {
	case strings.HasPrefix(name, "wl"), strings.HasPrefix(name, "wifi"):
		return ConnectionWiFi
	case strings.HasPrefix(name, "en"), strings.HasPrefix(name, "eth"):
		return ConnectionEthernet
	case strings.HasPrefix(name, "ww"), strings.HasPrefix(name, "rmnet"), strings.HasPrefix(name, "ccmni"):
		return ConnectionCellular
	}
	return ConnectionUnknown
}

// Device describes this installation. StorageQuota is the size of the data
// filesystem when it can be read.
func (h *Host) Device() models.DeviceInfo {
	info := models.DeviceInfo{
		DeviceID:    h.device.ID,
		GroupID:     h.device.GroupID,
		AppVersion:  h.build.BuildVersion(),
		BuildDate:   h.build.BuildDate(),
		BuildCommit: h.build.BuildCommit(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		IsPackaged:  h.build.BuildVersion() != "" && h.build.BuildVersion() != "N/A",
	}
	if _, total, err := diskUsage(h.dataDir); err == nil {
		info.StorageQuota = &total
	}
	return info
}

func (h *Host) UserAgent() string {
	version := h.build.BuildVersion()
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("fieldsync-client/%s (%s; %s) %s", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
}

// DataDir returns the directory of the SQLite file named by dsn. Both plain
// paths and file: URIs are accepted.
func DataDir(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "."
	}
	return filepath.Dir(path)
}

package config

import (
	"fmt"
	"time"
)

// Server defaults.
const (
	DefaultHTTPAddress     = "localhost:8080"
	DefaultSessionDuration = time.Hour
)

// ServerApp holds the secrets used by the reference server.
type ServerApp struct {
	SessionSignKey  string
	SessionDuration time.Duration
	AdminKey        string
}

// ServerHTTP holds listener settings.
type ServerHTTP struct {
	HTTPAddress    string
	PublicURL      string
	RequestTimeout time.Duration
}

// ServerDB holds the PostgreSQL connection settings.
type ServerDB struct {
	DSN string
}

// ServerConfig is the reference server's configuration view.
type ServerConfig struct {
	App    ServerApp
	Server ServerHTTP
	DB     ServerDB
}

// GetServerConfig builds and validates the server config view from the merged
// structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := NewServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

// NewServerConfig maps cfg to the server view and fills defaults.
func NewServerConfig(cfg *StructuredConfig) *ServerConfig {
	address := cfg.Server.HTTPAddress
	if address == "" {
		address = DefaultHTTPAddress
	}
	publicURL := cfg.Server.PublicURL
	if publicURL == "" {
		publicURL = "http://" + address
	}

	return &ServerConfig{
		App: ServerApp{
			SessionSignKey:  cfg.App.SessionSignKey,
			SessionDuration: durationOrDefault(cfg.App.SessionDuration, DefaultSessionDuration),
			AdminKey:        cfg.App.AdminKey,
		},
		Server: ServerHTTP{
			HTTPAddress:    address,
			PublicURL:      publicURL,
			RequestTimeout: durationOrDefault(cfg.Server.RequestTimeout, DefaultRequestTimeout),
		},
		DB: ServerDB{DSN: cfg.Storage.DB.DSN},
	}
}

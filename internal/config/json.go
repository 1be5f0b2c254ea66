package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		SessionSignKey  string   `json:"session_sign_key"`
		SessionDuration Duration `json:"session_duration"`
		AdminKey        string   `json:"admin_key"`
	} `json:"app,omitempty"`

	Device struct {
		GroupID string `json:"group_id"`
		ID      string `json:"id"`
		Token   string `json:"token"`
	} `json:"device,omitempty"`

	Sync struct {
		BatchSize                              int      `json:"batch_size"`
		InitialBatchSize                       int      `json:"initial_batch_size"`
		WriteBatchSize                         int      `json:"write_batch_size"`
		ChangesBatchSize                       int      `json:"changes_batch_size"`
		CompareLimit                           int      `json:"compare_limit"`
		RetryDelay                             Duration `json:"retry_delay"`
		MaxRetries                             int      `json:"max_retries"`
		DisableDeviceUserFilteringByAssignment bool     `json:"disable_device_user_filtering_by_assignment"`
		IndexViewsOnlyOnFirstSync              bool     `json:"index_views_only_on_first_sync"`
		CalculateLocalDocsForLocation          bool     `json:"calculate_local_docs_for_location"`
		DoNotOptimize                          []string `json:"do_not_optimize"`
		FormsFile                              string   `json:"forms_file"`
		IndexFile                              string   `json:"index_file"`
	} `json:"sync,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		PublicURL      string   `json:"public_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		ServerURL      string   `json:"server_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SessionSignKey:  jsonCfg.App.SessionSignKey,
			SessionDuration: time.Duration(jsonCfg.App.SessionDuration),
			AdminKey:        jsonCfg.App.AdminKey,
		},
		Device: Device{
			GroupID: jsonCfg.Device.GroupID,
			ID:      jsonCfg.Device.ID,
			Token:   jsonCfg.Device.Token,
		},
		Sync: Sync{
			BatchSize:                              jsonCfg.Sync.BatchSize,
			InitialBatchSize:                       jsonCfg.Sync.InitialBatchSize,
			WriteBatchSize:                         jsonCfg.Sync.WriteBatchSize,
			ChangesBatchSize:                       jsonCfg.Sync.ChangesBatchSize,
			CompareLimit:                           jsonCfg.Sync.CompareLimit,
			RetryDelay:                             time.Duration(jsonCfg.Sync.RetryDelay),
			MaxRetries:                             jsonCfg.Sync.MaxRetries,
			DisableDeviceUserFilteringByAssignment: jsonCfg.Sync.DisableDeviceUserFilteringByAssignment,
			IndexViewsOnlyOnFirstSync:              jsonCfg.Sync.IndexViewsOnlyOnFirstSync,
			CalculateLocalDocsForLocation:          jsonCfg.Sync.CalculateLocalDocsForLocation,
			DoNotOptimize:                          jsonCfg.Sync.DoNotOptimize,
			FormsFile:                              jsonCfg.Sync.FormsFile,
			IndexFile:                              jsonCfg.Sync.IndexFile,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			PublicURL:      jsonCfg.Server.PublicURL,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			ServerURL:      jsonCfg.Adapter.ServerURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// stringList is a comma separated flag.Value.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}

// ParseFlags parses all configuration flags from os.Args.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-public-url externally reachable server URL
//	-s sync server URL used by the client
//	-d database DSN
//	-c/-config json file path with configs
//	-group group id
//	-device device id
//	-device-token device token
//	-batch-size, -initial-batch-size, -write-batch-size, -changes-batch-size
//	-compare-limit reconciliation page size
//	-retry-delay pause between failed attempts (e.g. "5s")
//	-max-retries retry cap, 0 retries forever
//	-forms forms sync settings file
//	-indexes index definition file
//	-do-not-optimize comma separated index names
//	-sync-interval daemon sync interval
//	-session-sign-key session token signing key
//	-session-duration session lifetime
//	-admin-key device registration key
//	-request-timeout request timeout (e.g., "30s", "1m")
//
// Positional arguments are returned in Args.
func ParseFlags() (*StructuredConfig, error) {
	return parseFlagSet(os.Args[1:], os.Stderr)
}

func parseFlagSet(args []string, output io.Writer) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("fieldsync", flag.ContinueOnError)
	fs.SetOutput(output)

	var serverAddress NetAddress
	var doNotOptimize stringList
	cfg := &StructuredConfig{}

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Server.PublicURL, "public-url", "", "Public server URL")
	fs.StringVar(&cfg.Adapter.ServerURL, "s", "", "Sync server URL")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	fs.StringVar(&cfg.Device.GroupID, "group", "", "Group id")
	fs.StringVar(&cfg.Device.ID, "device", "", "Device id")
	fs.StringVar(&cfg.Device.Token, "device-token", "", "Device token")

	fs.IntVar(&cfg.Sync.BatchSize, "batch-size", 0, "Documents per round-trip")
	fs.IntVar(&cfg.Sync.InitialBatchSize, "initial-batch-size", 0, "Documents per round-trip on first sync")
	fs.IntVar(&cfg.Sync.WriteBatchSize, "write-batch-size", 0, "Documents per write")
	fs.IntVar(&cfg.Sync.ChangesBatchSize, "changes-batch-size", 0, "Change feed entries per read")
	fs.IntVar(&cfg.Sync.CompareLimit, "compare-limit", 0, "Reconciliation page size")
	fs.DurationVar(&cfg.Sync.RetryDelay, "retry-delay", 0, "Pause between failed attempts (e.g., 5s)")
	fs.IntVar(&cfg.Sync.MaxRetries, "max-retries", 0, "Retry cap, 0 retries forever")
	fs.StringVar(&cfg.Sync.FormsFile, "forms", "", "Forms sync settings file")
	fs.StringVar(&cfg.Sync.IndexFile, "indexes", "", "Index definition file")
	fs.Var(&doNotOptimize, "do-not-optimize", "Comma separated index names to skip")
	fs.BoolVar(&cfg.Sync.IndexViewsOnlyOnFirstSync, "index-first-sync-only", false, "Optimize indexes only on first sync")
	fs.BoolVar(&cfg.Sync.DisableDeviceUserFilteringByAssignment, "disable-user-filtering", false, "Replicate user profiles to every device")
	fs.BoolVar(&cfg.Sync.CalculateLocalDocsForLocation, "local-docs-stats", false, "Report local document counts per form")
	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Background sync interval")

	fs.StringVar(&cfg.App.SessionSignKey, "session-sign-key", "", "Session token signing key")
	fs.DurationVar(&cfg.App.SessionDuration, "session-duration", 0, "Session lifetime (e.g., 1h)")
	fs.StringVar(&cfg.App.AdminKey, "admin-key", "", "Device registration key")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "client-timeout", 0, "Outbound request timeout (e.g., 30s)")

	err := fs.Parse(args)

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Sync.DoNotOptimize = doNotOptimize
	cfg.Args = fs.Args()

	return cfg, err
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// durationOrDefault returns d, or def when d is not positive.
func durationOrDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// intOrDefault returns v, or def when v is not positive.
func intOrDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

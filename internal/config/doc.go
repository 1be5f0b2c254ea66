// Package config provides configuration loading, merging, and validation
// facilities for the sync client and the reference server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetClientConfig] for the device client and
// [GetServerConfig] for the reference server. Both fill the sync defaults
// (batch 200, initial batch 1000, write batch 50, changes batch 25, compare
// limit 150, retry delay 5s) when a value is left unset.
package config

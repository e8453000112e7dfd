// Package config loads runtime configuration for the ProdHub client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the ProdHub server
//	-d string   path of the local cache database file
//	-i int      online status check interval (seconds)
//	-t int      per-collection pull timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be
// either strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:3000",
//	  "database_path": "prodhub.db",
//	  "online_check_interval": "3s",
//	  "pull_timeout": "5s"
//	}
//
// Note: This package does not read environment variables directly; use
// the JSON file or flags to configure values.
package config

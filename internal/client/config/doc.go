// Package config loads runtime configuration for the Sweet Shop CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-t int      request timeout (seconds)
//	-d string   path of the local database file
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "base_url": "http://127.0.0.1:8000/api",
//	  "request_timeout": "10s",
//	  "database_file": "sweetshop.db"
//	}
//
// Note: This package does not read environment variables; use the JSON file
// or flags to configure values.
package config

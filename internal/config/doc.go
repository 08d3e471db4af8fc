// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetStructuredConfig]. Secret-bearing fields are
// excluded from JSON serialization so that dumping the config (e.g. in a
// startup debug log) never echoes key material.
package config

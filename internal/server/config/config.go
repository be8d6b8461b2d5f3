// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the meetpoint server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseDSN: SQLite DSN (file:... with pragmas) or a postgres:// DSN.
//   - APIToken: static token required on guarded requests; empty disables
//     the guard.
//   - ImportFile: path to a line-separated display-name file; when set the
//     server imports it and exits instead of serving.
//   - ShutdownTimeout: grace period for draining HTTP connections.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings for
//     database backups.
type Config struct {
	EndpointAddr    string
	DatabaseDSN     string
	APIToken        string
	ImportFile      string
	ShutdownTimeout time.Duration
	S3RootUser      string
	S3RootPassword  string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = "127.0.0.1:9001"
	c.DatabaseDSN = "file:meetpoint.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	c.APIToken = ""
	c.ImportFile = ""
	c.ShutdownTimeout = 5 * time.Second
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "backups"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

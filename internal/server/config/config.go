// Package config handles configuration for the development server,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	BlobBackendDB = "db"
	BlobBackendS3 = "s3"
)

// Config holds runtime settings for the development server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - HostID: identity reported by the ID call; generated at startup when empty.
//   - DatabaseDriver / DatabaseDSN: "sqlite" (modernc) or "postgres" (pgx).
//   - BlobBackend: where staged content lives, "db" or "s3".
//   - SecretKey / TokenValidity: HS256 secret and lifetime of user tokens
//     (zero means tokens never expire).
//   - AdminToken: static token for the admin API; empty disables it.
//   - JobStepDelay: pause between job state transitions.
//   - S3*: object storage settings used when BlobBackend is "s3".
type Config struct {
	EndpointAddrGRPC string
	HostID           string
	DatabaseDriver   string
	DatabaseDSN      string
	BlobBackend      string
	SecretKey        string
	TokenValidity    time.Duration
	AdminToken       string
	JobStepDelay     time.Duration
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":5002"
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "powd.db"
	c.BlobBackend = BlobBackendDB
	c.SecretKey = "secretKey"
	c.TokenValidity = 0
	c.JobStepDelay = 500 * time.Millisecond
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "pow"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.DatabaseDriver))
	}
	switch c.BlobBackend {
	case BlobBackendDB, BlobBackendS3:
	default:
		errs = append(errs, fmt.Errorf("unknown blob backend %q", c.BlobBackend))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key must not be empty"))
	}
	if c.TokenValidity < 0 || c.JobStepDelay < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file (-c / -config) and finally from args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

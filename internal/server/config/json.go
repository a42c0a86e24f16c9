package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/powclient/internal/flagx"
	"github.com/dmitrijs2005/powclient/internal/timex"
)

// JsonConfig is the on-disk shape of the server config. Durations go through
// timex.Duration so both "1m" and integer nanoseconds are accepted. Absent
// keys leave the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC string          `json:"endpoint_addr_grpc"`
	HostID           string          `json:"host_id"`
	DatabaseDriver   string          `json:"database_driver"`
	DatabaseDSN      string          `json:"database_dsn"`
	BlobBackend      string          `json:"blob_backend"`
	SecretKey        string          `json:"secret_key"`
	TokenValidity    *timex.Duration `json:"token_validity"`
	AdminToken       string          `json:"admin_token"`
	JobStepDelay     *timex.Duration `json:"job_step_delay"`
	S3RootUser       string          `json:"s3_root_user"`
	S3RootPassword   string          `json:"s3_root_password"`
	S3Bucket         string          `json:"s3_bucket"`
	S3Region         string          `json:"s3_region"`
	S3BaseEndpoint   string          `json:"s3_base_endpoint"`
}

// parseJson overlays the file named by -c / -config in args onto config.
// Without the flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.HostID, c.HostID)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.BlobBackend, c.BlobBackend)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.AdminToken, c.AdminToken)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.TokenValidity != nil {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.JobStepDelay != nil {
		config.JobStepDelay = c.JobStepDelay.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

package config

import (
	"time"

	"github.com/mitchellh/go-homedir"
)

// DefaultFile is the config file looked up in the home directory when no
// explicit path is given.
const DefaultFile = "~/.powclient.json"

// Config holds runtime settings for the pow CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the storage service gRPC endpoint.
//   - Token / AdminToken: credentials attached to user and admin calls.
//   - Timeout: upper bound for a single command (0 disables it).
//   - WatchHistory: replay recorded log lines before live ones.
type Config struct {
	ServerEndpointAddr string
	Token              string
	AdminToken         string
	Timeout            time.Duration
	WatchHistory       bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:5002"
	c.Token = ""
	c.AdminToken = ""
	c.Timeout = 30 * time.Second
	c.WatchHistory = false
}

// DefaultPath expands DefaultFile. It returns "" when the home directory
// cannot be resolved.
func DefaultPath() string {
	p, err := homedir.Expand(DefaultFile)
	if err != nil {
		return ""
	}
	return p
}

// Load builds a Config from defaults, the JSON file at path and the POW_*
// environment variables, in that order. An empty path falls back to
// DefaultPath, which is allowed to be missing.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	optional := false
	if path == "" {
		path = DefaultPath()
		optional = true
	}
	if err := parseJson(cfg, path, optional); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	return cfg, nil
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/powclient/internal/timex"
	"github.com/mitchellh/go-homedir"
)

// JsonConfig is the on-disk shape of Config. Durations accept "30s" as well
// as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr,omitempty"`
	Token              string          `json:"token,omitempty"`
	AdminToken         string          `json:"admin_token,omitempty"`
	Timeout            *timex.Duration `json:"timeout,omitempty"`
	WatchHistory       *bool           `json:"watch_history,omitempty"`
}

// parseJson overlays cfg with the values present in the file at path.
// Absent keys keep their current value. A missing file is only an error when
// optional is false.
func parseJson(cfg *Config, path string, optional bool) error {
	if path == "" {
		return nil
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.Token != "" {
		cfg.Token = jc.Token
	}
	if jc.AdminToken != "" {
		cfg.AdminToken = jc.AdminToken
	}
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	if jc.WatchHistory != nil {
		cfg.WatchHistory = *jc.WatchHistory
	}
	return nil
}

// Save writes cfg to path (DefaultPath when empty) with owner-only
// permissions, since the file carries tokens.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}

	timeout := timex.Duration{Duration: c.Timeout}
	history := c.WatchHistory
	jc := JsonConfig{
		ServerEndpointAddr: c.ServerEndpointAddr,
		Token:              c.Token,
		AdminToken:         c.AdminToken,
		Timeout:            &timeout,
		WatchHistory:       &history,
	}

	data, err := json.MarshalIndent(jc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags are the command-line overrides shared by every CLI command.
type Flags struct {
	ConfigPath string

	addr       string
	token      string
	adminToken string
	timeout    time.Duration
	history    bool
}

// Bind registers the flags on fs (usually a cobra command's persistent set).
//
//	-c, --config string        path to a JSON config file
//	-a, --addr string          address:port of the storage service
//	    --token string         user auth token
//	    --admin-token string   admin auth token
//	-t, --timeout duration     command timeout
//	    --history              replay recorded logs when watching
func (f *Flags) Bind(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to config file (default "+DefaultFile+")")
	fs.StringVarP(&f.addr, "addr", "a", d.ServerEndpointAddr, "address and port of the storage service")
	fs.StringVar(&f.token, "token", "", "user auth token")
	fs.StringVar(&f.adminToken, "admin-token", "", "admin auth token")
	fs.DurationVarP(&f.timeout, "timeout", "t", d.Timeout, "command timeout (0 disables it)")
	fs.BoolVar(&f.history, "history", d.WatchHistory, "replay recorded log lines when watching")
}

// Apply overlays cfg with the flags the user actually set, so that flags take
// precedence over the file and the environment.
func (f *Flags) Apply(fs *pflag.FlagSet, cfg *Config) {
	if fs.Changed("addr") {
		cfg.ServerEndpointAddr = f.addr
	}
	if fs.Changed("token") {
		cfg.Token = f.token
	}
	if fs.Changed("admin-token") {
		cfg.AdminToken = f.adminToken
	}
	if fs.Changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if fs.Changed("history") {
		cfg.WatchHistory = f.history
	}
}

package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags_ApplyOnlyChanged(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{
			name:     "no flags keep loaded values",
			args:     nil,
			expected: &Config{ServerEndpointAddr: "file:1", Token: "file", Timeout: time.Second},
		},
		{
			name: "all flags",
			args: []string{"-a", "flag:2", "--token", "ft", "--admin-token", "fa", "-t", "5s", "--history"},
			expected: &Config{
				ServerEndpointAddr: "flag:2",
				Token:              "ft",
				AdminToken:         "fa",
				Timeout:            5 * time.Second,
				WatchHistory:       true,
			},
		},
		{
			name:     "config path is not a Config field",
			args:     []string{"-c", "/tmp/x.json"},
			expected: &Config{ServerEndpointAddr: "file:1", Token: "file", Timeout: time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			var f Flags
			f.Bind(fs)
			require.NoError(t, fs.Parse(tt.args))

			cfg := &Config{ServerEndpointAddr: "file:1", Token: "file", Timeout: time.Second}
			f.Apply(fs, cfg)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestFlags_ConfigPath(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var f Flags
	f.Bind(fs)
	require.NoError(t, fs.Parse([]string{"--config", "/etc/pow.json"}))
	assert.Equal(t, "/etc/pow.json", f.ConfigPath)
}

package config

import "github.com/spf13/viper"

const (
	EnvServerAddress = "POW_SERVERADDRESS"
	EnvToken         = "POW_TOKEN"
	EnvAdminToken    = "POW_ADMIN_TOKEN"
)

// newEnv binds the settings that may come from the environment. Empty
// variables count as unset.
func newEnv() *viper.Viper {
	v := viper.New()
	_ = v.BindEnv("server_endpoint_addr", EnvServerAddress)
	_ = v.BindEnv("token", EnvToken)
	_ = v.BindEnv("admin_token", EnvAdminToken)
	return v
}

func parseEnv(cfg *Config) {
	v := newEnv()
	if s := v.GetString("server_endpoint_addr"); s != "" {
		cfg.ServerEndpointAddr = s
	}
	if s := v.GetString("token"); s != "" {
		cfg.Token = s
	}
	if s := v.GetString("admin_token"); s != "" {
		cfg.AdminToken = s
	}
}

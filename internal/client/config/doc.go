// Package config loads runtime configuration for the pow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file: the -c/--config path, or ~/.powclient.json.
//  3. Environment: POW_SERVERADDRESS, POW_TOKEN, POW_ADMIN_TOKEN.
//  4. Command-line flags bound with (*Flags).Bind, applied last.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:5002",
//	  "token": "…",
//	  "admin_token": "…",
//	  "timeout": "30s",
//	  "watch_history": false
//	}
//
// Save writes the same schema back, which is how `pow token set` persists a
// token.
package config

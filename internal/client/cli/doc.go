// Package cli implements the `pow` command-line client.
//
// The command tree is built with cobra by NewRootCommand. Every command
// shares one App, which loads the configuration in the root's
// PersistentPreRunE and dials the service lazily, so commands such as
// `token set` and `version` work without a reachable server.
package cli

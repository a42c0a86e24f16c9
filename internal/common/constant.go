// Package common contains shared constants and sentinel errors used across
// the client and the development server.
package common

// Metadata keys carrying the user and admin tokens on gRPC calls.
const (
	TokenHeaderName      = "x-pow-auth"
	AdminTokenHeaderName = "x-pow-admin-auth"
)

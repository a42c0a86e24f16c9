package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/powclient/internal/flagx"
)

var knownFlags = []string{
	"-a", "-i", "-D", "-d", "-B", "-s", "-t", "-A", "-j",
	"-u", "-p", "-b", "-g", "-e",
}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     gRPC bind address (e.g., ":5002")
//	-i string     host id reported to clients
//	-D string     database driver: sqlite or postgres
//	-d string     database DSN
//	-B string     blob backend: db or s3
//	-s string     JWT HMAC secret key
//	-t duration   user token validity (0 = no expiry)
//	-A string     admin token
//	-j duration   delay between job state transitions
//	-u string     S3 root user
//	-p string     S3 root password
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Arguments it does not know (such as -c) are filtered out with
// flagx.FilterArgs first.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("powd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.HostID, "i", config.HostID, "host id")
	fs.StringVar(&config.DatabaseDriver, "D", config.DatabaseDriver, "database driver (sqlite|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.BlobBackend, "B", config.BlobBackend, "blob backend (db|s3)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenValidity, "t", config.TokenValidity, "user token validity")
	fs.StringVar(&config.AdminToken, "A", config.AdminToken, "admin token")
	fs.DurationVar(&config.JobStepDelay, "j", config.JobStepDelay, "job step delay")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	return fs.Parse(flagx.FilterArgs(args, knownFlags))
}

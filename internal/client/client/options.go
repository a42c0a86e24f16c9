package client

import (
	"time"

	"github.com/dmitrijs2005/powclient/internal/logging"
	"google.golang.org/grpc"
)

type Option func(*GRPCClient)

func WithLogger(l logging.Logger) Option {
	return func(c *GRPCClient) {
		c.logger = l
	}
}

// WithDialOptions appends options used when the connection is created, e.g.
// transport credentials or a custom dialer.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *GRPCClient) {
		c.dialOpts = append(c.dialOpts, opts...)
	}
}

func WithToken(token string) Option {
	return func(c *GRPCClient) {
		c.token.SetToken(token)
	}
}

func WithAdminToken(token string) Option {
	return func(c *GRPCClient) {
		c.adminToken.SetToken(token)
	}
}

type getOptions struct {
	timeout time.Duration
}

type GetOption func(*getOptions)

// WithTimeout bounds a retrieval. The deadline is handed to the transport
// through the call context.
func WithTimeout(d time.Duration) GetOption {
	return func(o *getOptions) {
		o.timeout = d
	}
}

type applyOptions struct {
	override bool
	noExec   bool
}

type ApplyOption func(*applyOptions)

// WithOverride replaces an existing storage configuration for the CID.
func WithOverride(v bool) ApplyOption {
	return func(o *applyOptions) {
		o.override = v
	}
}

// WithNoExec saves the configuration without starting a job.
func WithNoExec(v bool) ApplyOption {
	return func(o *applyOptions) {
		o.noExec = v
	}
}

type watchLogsOptions struct {
	history bool
	jobID   string
}

type WatchLogsOption func(*watchLogsOptions)

// WithHistory replays the log lines recorded before the subscription.
func WithHistory(v bool) WatchLogsOption {
	return func(o *watchLogsOptions) {
		o.history = v
	}
}

// WithJobID keeps only log lines produced by the given job.
func WithJobID(id string) WatchLogsOption {
	return func(o *watchLogsOptions) {
		o.jobID = id
	}
}

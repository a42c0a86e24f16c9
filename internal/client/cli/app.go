package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/powclient/internal/client/client"
	"github.com/dmitrijs2005/powclient/internal/client/config"
	"github.com/dmitrijs2005/powclient/internal/logging"
	"github.com/spf13/cobra"
)

// ClientFactory creates the service client for a loaded configuration.
type ClientFactory func(cfg *config.Config, logger logging.Logger) (client.Client, error)

func dialClient(cfg *config.Config, logger logging.Logger) (client.Client, error) {
	return client.NewGRPCClient(cfg.ServerEndpointAddr,
		client.WithLogger(logger),
		client.WithToken(cfg.Token),
		client.WithAdminToken(cfg.AdminToken),
	)
}

type App struct {
	flags   config.Flags
	verbose bool

	config    *config.Config
	logger    logging.Logger
	client    client.Client
	newClient ClientFactory
	in        io.Reader
}

type AppOption func(*App)

// WithClientFactory replaces how the App connects to the service.
func WithClientFactory(f ClientFactory) AppOption {
	return func(a *App) {
		a.newClient = f
	}
}

// WithInput sets where commands read from when a path is "-".
func WithInput(r io.Reader) AppOption {
	return func(a *App) {
		a.in = r
	}
}

func NewApp(opts ...AppOption) *App {
	a := &App{
		newClient: dialClient,
		in:        os.Stdin,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// setup loads the configuration and overlays the flags set on cmd.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.ConfigPath)
	if err != nil {
		return err
	}
	a.flags.Apply(cmd.Flags(), cfg)
	a.config = cfg

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = logging.NewSlogLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// connect returns the service client, dialing on first use.
func (a *App) connect() (client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	c, err := a.newClient(a.config, a.logger)
	if err != nil {
		return nil, err
	}
	a.client = c
	return c, nil
}

func (a *App) close() {
	if a.client == nil {
		return
	}
	if err := a.client.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing client", "error", err)
	}
	a.client = nil
}

// callContext bounds a single request by the configured timeout.
func (a *App) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config != nil && a.config.Timeout > 0 {
		return context.WithTimeout(ctx, a.config.Timeout)
	}
	return context.WithCancel(ctx)
}

package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the `pow` command tree around a.
func NewRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pow",
		Short:         "Client for the storage orchestration service",
		Long:          `Stage data, apply storage configurations and follow storage jobs and logs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	a.flags.Bind(root.PersistentFlags())
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newVersionCommand(),
		newIDCommand(a),
		newBuildInfoCommand(a),
		newStageCommand(a),
		newGetCommand(a),
		newApplyCommand(a),
		newJobCommand(a),
		newWatchCommand(a),
		newAdminCommand(a),
		newTokenCommand(a),
	)
	return root
}

// Execute runs the command tree with args and ctx; ctx is usually cancelled
// on SIGINT so that watch commands can stop cleanly.
func Execute(ctx context.Context, a *App, args []string) error {
	root := NewRootCommand(a)
	root.SetArgs(args)
	defer a.close()
	return root.ExecuteContext(ctx)
}

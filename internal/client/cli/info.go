package cli

import (
	"fmt"

	"github.com/dmitrijs2005/powclient/internal/buildinfo"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of this client",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

func newIDCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "id",
		Short: "Print the host id of the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect()
			if err != nil {
				return err
			}
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			id, err := c.HostID(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newBuildInfoCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "build-info",
		Short: "Print build information of the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect()
			if err != nil {
				return err
			}
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			info, err := c.BuildInfo(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "version:  %s\n", info.Version)
			fmt.Fprintf(w, "commit:   %s (%s)\n", info.GitCommit, info.GitBranch)
			fmt.Fprintf(w, "summary:  %s\n", info.GitSummary)
			fmt.Fprintf(w, "built:    %s\n", info.BuildDate)
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/powclient/internal/client/client"
	"github.com/dmitrijs2005/powclient/internal/client/models"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func printJob(w io.Writer, j models.StorageJob) {
	fmt.Fprintf(w, "%s\t%s\t%s", j.ID, j.Status, j.Cid)
	if !j.CreatedAt.IsZero() {
		fmt.Fprintf(w, "\tcreated %s", humanize.Time(j.CreatedAt))
	}
	if j.ErrorCause != "" {
		fmt.Fprintf(w, "\terror: %s", j.ErrorCause)
	}
	fmt.Fprintln(w)
}

func newApplyCommand(a *App) *cobra.Command {
	var override, noExec, follow bool

	cmd := &cobra.Command{
		Use:   "apply <cid>",
		Short: "Apply the storage configuration to a staged CID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect()
			if err != nil {
				return err
			}
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			jobID, err := c.ApplyStorageConfig(ctx, args[0], client.WithOverride(override), client.WithNoExec(noExec))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), jobID)

			if !follow || jobID == "" {
				return nil
			}
			return a.watchJobs(cmd, c, []string{jobID})
		},
	}
	cmd.Flags().BoolVar(&override, "override", false, "replace an existing configuration")
	cmd.Flags().BoolVar(&noExec, "no-exec", false, "save the configuration without starting a job")
	cmd.Flags().BoolVarP(&follow, "watch", "w", false, "follow the created job until it finishes")
	return cmd
}

func newJobCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "job <job-id>",
		Short: "Show the current state of a storage job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect()
			if err != nil {
				return err
			}
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			job, err := c.StorageJob(ctx, args[0])
			if err != nil {
				return err
			}
			printJob(cmd.OutOrStdout(), *job)
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/powclient/internal/client/client"
	"github.com/dmitrijs2005/powclient/internal/client/models"
	"github.com/dmitrijs2005/powclient/internal/client/watch"
	"github.com/spf13/cobra"
)

func newWatchCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow live updates",
	}
	cmd.AddCommand(newWatchJobsCommand(a), newWatchLogsCommand(a))
	return cmd
}

func newWatchJobsCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs <job-id>...",
		Short: "Print job updates until every job reaches a final status",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect()
			if err != nil {
				return err
			}
			return a.watchJobs(cmd, c, args)
		},
	}
}

func newWatchLogsCommand(a *App) *cobra.Command {
	var jobID string

	cmd := &cobra.Command{
		Use:   "logs <cid>",
		Short: "Print log lines for a CID until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			sub := c.WatchLogs(cmd.Context(), func(e models.LogEntry) {
				fmt.Fprintf(w, "%s [%s] %s\n", e.Time.Format("2006-01-02 15:04:05"), e.JobID, e.Message)
			}, args[0], client.WithHistory(a.config.WatchHistory), client.WithJobID(jobID))

			return wait(cmd.Context(), sub)
		},
	}
	cmd.Flags().StringVar(&jobID, "job-id", "", "only show lines of this job")
	return cmd
}

// watchJobs prints updates for ids and returns once all of them are final.
func (a *App) watchJobs(cmd *cobra.Command, c client.Client, ids []string) error {
	var mu sync.Mutex
	pending := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		pending[id] = struct{}{}
	}

	w := cmd.OutOrStdout()
	var sub *watch.Subscription
	ready := make(chan struct{})

	sub = c.WatchStorageJobs(cmd.Context(), func(j models.StorageJob) {
		printJob(w, j)
		if !j.Status.Final() {
			return
		}
		mu.Lock()
		delete(pending, j.ID)
		left := len(pending)
		mu.Unlock()
		if left == 0 {
			<-ready
			sub.Cancel()
		}
	}, ids...)
	close(ready)

	return wait(cmd.Context(), sub)
}

// wait blocks until sub ends or ctx is done. An interrupted watch is not an
// error.
func wait(ctx context.Context, sub *watch.Subscription) error {
	select {
	case <-sub.Done():
	case <-ctx.Done():
		sub.Cancel()
		<-sub.Done()
		return nil
	}
	if ctx.Err() != nil {
		return nil
	}
	return sub.Err()
}

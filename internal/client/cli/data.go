package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/powclient/internal/client/client"
	"github.com/dmitrijs2005/powclient/internal/filex"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n uint64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += uint64(n)
	return n, err
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n uint64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += uint64(n)
	return n, err
}

func newStageCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stage <path|->",
		Short: "Stage a file (or stdin) and print its CID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = a.in
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			c, err := a.connect()
			if err != nil {
				return err
			}
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			cr := &countingReader{r: r}
			cid, err := c.StageReader(ctx, cr)
			if err != nil {
				return fmt.Errorf("stage: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cid)
			fmt.Fprintf(cmd.ErrOrStderr(), "staged %s\n", humanize.Bytes(cr.n))
			return nil
		},
	}
}

func newGetCommand(a *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "get <cid>",
		Short: "Retrieve the data stored under a CID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect()
			if err != nil {
				return err
			}

			toFile := out != "" && out != "-"

			w := cmd.OutOrStdout()
			var f *filex.AtomicFile
			if toFile {
				f, err = filex.CreateAtomic(out)
				if err != nil {
					return err
				}
				defer f.Abort()
				w = f
			}

			cw := &countingWriter{w: w}
			if err := c.GetTo(cmd.Context(), args[0], cw, client.WithTimeout(a.config.Timeout)); err != nil {
				return fmt.Errorf("get %s: %w", args[0], err)
			}
			if toFile {
				if err := f.Commit(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s to %s\n", humanize.Bytes(cw.n), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to file instead of stdout")
	return cmd
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newTokenCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage stored auth tokens",
	}
	cmd.AddCommand(newTokenSetCommand(a))
	return cmd
}

func newTokenSetCommand(a *App) *cobra.Command {
	var admin bool

	cmd := &cobra.Command{
		Use:   "set [token]",
		Short: "Store a token in the config file (read from the terminal when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				var err error
				token, err = GetSecret(a.in, cmd.ErrOrStderr(), "Token: ")
				if err != nil {
					return err
				}
			}
			if token == "" {
				return errors.New("empty token")
			}

			if admin {
				a.config.AdminToken = token
			} else {
				a.config.Token = token
			}
			if err := a.config.Save(a.flags.ConfigPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "token saved")
			return nil
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "store as the admin token")
	return cmd
}

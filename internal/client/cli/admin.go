package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAdminCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands (require an admin token)",
	}
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}
	users.AddCommand(newUsersCreateCommand(a), newUsersListCommand(a))
	cmd.AddCommand(users)
	return cmd
}

func newUsersCreateCommand(a *App) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user and print its id and token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect()
			if err != nil {
				return err
			}
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			u, err := c.CreateUser(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", u.ID, u.Token)

			if !save {
				return nil
			}
			a.config.Token = u.Token
			return a.config.Save(a.flags.ConfigPath)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "store the new token in the config file")
	return cmd
}

func newUsersListCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect()
			if err != nil {
				return err
			}
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			users, err := c.ListUsers(ctx)
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintln(cmd.OutOrStdout(), u.ID)
			}
			return nil
		},
	}
}

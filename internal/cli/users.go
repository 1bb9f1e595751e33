package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/martijn/userservice/internal/core/domain"
	"github.com/spf13/cobra"
)

func newUsersCommand(a *app) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users in the configured storage",
	}

	usersAddCmd := &cobra.Command{
		Use:   "add <name> <age>",
		Short: "Add a new user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate, err := parseNewUser(args[0], args[1])
			if err != nil {
				return err
			}

			services, err := initServices(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer services.Close()

			user, err := services.UserService.CreateUser(cmd.Context(), candidate)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			return printJSON(cmd, user)
		},
	}

	usersGetCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseUserID(args[0])
			if err != nil {
				return err
			}

			services, err := initServices(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer services.Close()

			user, err := services.UserService.GetUser(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}
			if user == nil {
				return fmt.Errorf("user not found: %d", id)
			}

			return printJSON(cmd, user)
		},
	}

	usersListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := initServices(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer services.Close()

			users, err := services.UserService.ListUsers(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tAGE")
			for _, user := range users {
				fmt.Fprintf(w, "%d\t%s\t%d\n", user.ID, user.Name, user.Age)
			}
			return w.Flush()
		},
	}

	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersListCmd)

	return usersCmd
}

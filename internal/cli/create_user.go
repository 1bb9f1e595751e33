package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/martijn/userservice/internal/core/domain"
	"github.com/martijn/userservice/internal/core/service"
	"github.com/martijn/userservice/internal/infrastructure/memory"
	"github.com/spf13/cobra"
)

func newCreateUserCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create-user <name> <age>",
		Short: "Create a user in a throwaway in-memory store and print it",
		Args:  cobra.ExactArgs(2),
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate, err := parseNewUser(args[0], args[1])
			if err != nil {
				return err
			}

			user, err := service.NewCreateUser(memory.NewUserRepository()).Run(cmd.Context(), candidate)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			return printJSON(cmd, user)
		},
	}
}

func parseNewUser(name, age string) (domain.NewUser, error) {
	parsed, err := strconv.ParseUint(age, 10, 32)
	if err != nil {
		return domain.NewUser{}, fmt.Errorf("invalid age %q: %w", age, err)
	}

	return domain.NewUser{
		Name: name,
		Age:  uint32(parsed),
	}, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

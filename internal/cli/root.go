package cli

import (
	"fmt"

	"github.com/martijn/userservice/pkg/config"
	"github.com/martijn/userservice/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// skipConfigAnnotation marks commands that run without loading configuration
const skipConfigAnnotation = "skip-config"

// app carries what the root command loads to its subcommands.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "userservice",
		Short: "User management service",
		Long: `userservice manages user records.

It provides:
- A REST API under /api/v1/users
- Pluggable storage: memory, sqlite, postgres, mysql or redis
- Commands to create and inspect users from the shell`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (YAML); environment variables override it")

	rootCmd.AddCommand(newCreateUserCommand(a))
	rootCmd.AddCommand(newUsersCommand(a))
	rootCmd.AddCommand(newServerCommand(a))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	// Skip config loading for commands that don't need it
	if cmd.Name() == "help" || cmd.Annotations[skipConfigAnnotation] == "true" {
		a.log = zap.NewNop()
		return nil
	}

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.log = log
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/cli"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/common"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/config"
)

var version = "dev"

// app carries state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	cfgFile string
}

func newApp() *app {
	return &app{v: viper.New()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "allocate",
		Short: "🎯 Candidate to opportunity matching engine",
		Long: `allocate scores every candidate against every open opportunity,
keeps each candidate's best matches and ranks them for placement review.

Results can be browsed in the terminal, exported to CSV or pushed to Google Sheets.`,
		PersistentPreRunE: a.initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/allocate/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("db", "", "SQLite database path (overrides database.path)")
	flags.String("backend", "", "storage backend (sqlite, redis, memory)")

	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("database.path", flags.Lookup("db"))
	_ = a.v.BindPFlag("storage.backend", flags.Lookup("backend"))

	root.AddCommand(
		runCmd(a),
		matchesCmd(a),
		analyticsCmd(a),
		exportCmd(a),
		importCmd(a),
		seedCmd(a),
		resetCmd(a),
		menuCmd(a),
		migrateCmd(a),
		authCmd(a),
		versionCmd(),
	)

	return root
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := newRootCmd(newApp()).ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(userMessage(err)))
		os.Exit(1)
	}
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	config.SetDefaults(a.v)
	config.ConfigureEnv(a.v)

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		a.v.AddConfigPath(filepath.Join(home, ".config", "allocate"))
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := common.SetupLogger(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "allocate %s\n", version)
			return err
		},
	}
}

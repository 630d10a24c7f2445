package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/doITmagic/phpgen/internal/config"
	"github.com/doITmagic/phpgen/internal/logger"
	"github.com/doITmagic/phpgen/internal/tools"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// app holds what every command needs once flags and config are read.
type app struct {
	cfg    *config.Config
	fs     afero.Fs
	source *tools.Source
}

func main() {
	// Use a context that cancels on OS signals for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd(afero.NewOsFs()).ExecuteContext(ctx); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func rootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}

	root := &cobra.Command{
		Use:           "phpgen",
		Short:         "Generate PHP classes from blueprints and existing sources",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().String("config", "phpgen.yaml", "path to the config file")
	logger.AddFlags(root)

	root.AddCommand(
		renderCmd(a),
		bodyCmd(a),
		typesCmd(a),
		proxyCmd(a),
		watchCmd(a),
		mcpCmd(a),
	)
	return root
}

// setup loads the config, then lets logging flags win over it.
func (a *app) setup(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, logJSON, logSource, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return err
	}
	if level == "" {
		level = cfg.Logging.Level
	}
	if !cmd.Flags().Changed("log-json") {
		logJSON = cfg.Logging.Format == "json"
	}
	logger.SetupLogger(level, logJSON, logSource)

	a.source = tools.NewSource(a.fs, cfg.Reflection, logger.GetDefault())
	return nil
}

// emit writes out to path, or to the command's stdout when path is empty.
func (a *app) emit(cmd *cobra.Command, path, out string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	if err := afero.WriteFile(a.fs, path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("Wrote file", "path", path)
	return nil
}

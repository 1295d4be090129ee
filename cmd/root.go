// Package cmd wires the command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"libris/internal/config"
	"libris/internal/library/application"
	"libris/internal/library/infrastructure"
	"libris/internal/log"
	"libris/internal/trace"
	"libris/internal/ui/menu"
)

var (
	cfg           config.Config
	configPath    string
	libraryPath   string
	traceShutdown func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "libris",
	Short: "Manage a library catalog from the terminal",
	Long: `Libris keeps a catalog of library records in a JSON file and lets you
add, issue, return and search them, either through subcommands or through
the interactive terminal view started by running libris with no arguments.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initApp,
	PersistentPostRunE: teardownApp,
	RunE:               runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&libraryPath, "library", "", "catalog file (overrides config)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if libraryPath != "" {
		cfg.LibraryPath = libraryPath
	}

	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	if err := log.Init(log.Options{
		File:    cfg.Logging.File,
		Level:   level,
		Console: cfg.Logging.Console,
	}); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	shutdown, err := trace.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	traceShutdown = shutdown

	log.Info(log.CatCLI, "starting", "command", cmd.Name(), "library", cfg.LibraryPath)
	return nil
}

func teardownApp(cmd *cobra.Command, _ []string) error {
	if traceShutdown != nil {
		if err := traceShutdown(cmd.Context()); err != nil {
			log.ErrorErr(log.CatCLI, "trace shutdown failed", err)
		}
	}
	return log.Close()
}

// openStore opens the configured catalog and wraps it in the application
// service shared by every subcommand.
func openStore() (*infrastructure.JSONStore, *application.Service, error) {
	store, err := infrastructure.New(cfg.LibraryPath, infrastructure.WithLogger(log.Logger()))
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog %s: %w", cfg.LibraryPath, err)
	}
	return store, application.NewService(store), nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	store, svc, err := openStore()
	if err != nil {
		return err
	}

	var opts []menu.Option
	if cfg.AutoRefresh {
		watcher, err := infrastructure.NewWatcher(store.Path(), cfg.AutoRefreshDebounce)
		if err != nil {
			log.ErrorErr(log.CatCLI, "auto refresh unavailable", err)
		} else {
			defer watcher.Close()
			opts = append(opts, menu.WithWatcher(watcher))
		}
	}

	program := tea.NewProgram(
		menu.New(svc, cfg, opts...),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = program.Run()
	return err
}

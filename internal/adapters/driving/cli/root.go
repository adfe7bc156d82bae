// Package cli provides the estatemap command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/estatemap/internal/core/ports/driving"
	"github.com/custodia-labs/estatemap/internal/logger"
)

// version is overridden at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Options are the global flags the composition root needs to build services.
type Options struct {
	// ConfigDir overrides the configuration directory. Empty means the default.
	ConfigDir string

	// Demo selects the built-in demo catalogue instead of the configured backend.
	Demo bool
}

// Services are the driving ports the commands use.
type Services struct {
	Projects driving.ProjectService
	Catalog  driving.CatalogService
	Settings driving.SettingsService
	Viewport driving.ViewportFitter
	Explorer driving.Explorer

	// Close releases backend resources. Optional.
	Close func() error
}

// ServiceFactory builds the services once flags are parsed.
type ServiceFactory func(opts Options) (*Services, error)

var (
	verbose   bool
	configDir string
	demo      bool

	factory ServiceFactory

	projectService  driving.ProjectService
	catalogService  driving.CatalogService
	settingsService driving.SettingsService
	viewportFitter  driving.ViewportFitter
	explorer        driving.Explorer
	closeServices   func() error
)

var rootCmd = &cobra.Command{
	Use:   "estatemap",
	Short: "Search and map registered real-estate projects",
	Long: `estatemap searches the Karnataka RERA project register by keyword and
shows the matching projects on a map.

Queries such as "villas in Whitefield" or "projects by Prestige" are matched
against project, promoter and locality names. Only approved projects with
no land under litigation are returned.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.estatemap)")
	rootCmd.PersistentFlags().BoolVar(&demo, "demo", false, "use the built-in demo catalogue")
}

// SetServiceFactory registers the function that builds services.
// It is called once before any command runs.
func SetServiceFactory(f ServiceFactory) {
	factory = f
}

// Execute runs the root command and releases services afterwards.
// SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if cerr := teardown(); err == nil {
		err = cerr
	}
	return err
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if factory == nil {
		return nil
	}

	svc, err := factory(Options{ConfigDir: configDir, Demo: demo})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	setServices(svc)
	return nil
}

func teardown() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

func setServices(svc *Services) {
	projectService = svc.Projects
	catalogService = svc.Catalog
	settingsService = svc.Settings
	viewportFitter = svc.Viewport
	explorer = svc.Explorer
	closeServices = svc.Close
}

var (
	errNoProjectService  = errors.New("project service not configured")
	errNoCatalogService  = errors.New("catalogue service not configured")
	errNoSettingsService = errors.New("settings service not configured")
	errNoExplorer        = errors.New("explorer not configured")
)

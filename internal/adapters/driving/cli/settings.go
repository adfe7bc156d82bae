package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/estatemap/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the search backend, map defaults and HTTP server.

Use subcommands to change a single key or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by its config key, for example:

  estatemap settings set backend.mode remote
  estatemap settings set backend.url https://estatemap.example.com
  estatemap settings set map.padding 0.02

Run 'estatemap settings keys' to list every key.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to choose the search backend step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Backend]")
	cmd.Printf("  Mode: %s\n", settings.Backend.Mode.Description())
	if settings.Backend.Mode == domain.BackendRemote {
		cmd.Printf("  URL: %s\n", settings.Backend.URL)
		cmd.Printf("  Timeout: %s\n", settings.Backend.Timeout)
		if settings.Backend.RatePerSecond > 0 {
			cmd.Printf("  Rate: %g requests/s\n", settings.Backend.RatePerSecond)
		} else {
			cmd.Printf("  Rate: unlimited\n")
		}
	} else {
		dir := settings.DataDir
		if dir == "" {
			dir = "(default)"
		}
		cmd.Printf("  Data dir: %s\n", dir)
	}
	cmd.Println()

	cmd.Println("[Map]")
	cmd.Printf("  Centre: %s\n", domain.LatLng{Lat: settings.Map.CenterLat, Lon: settings.Map.CenterLon})
	cmd.Printf("  Zoom: %d\n", settings.Map.Zoom)
	cmd.Printf("  Padding: %g°\n", settings.Map.Padding)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if settings.Server.RequestsPerMinute > 0 {
		cmd.Printf("  Rate limit: %d requests/min per IP\n", settings.Server.RequestsPerMinute)
	} else {
		cmd.Printf("  Rate limit: off\n")
	}
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'estatemap settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("estatemap Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Backend
	cmd.Println("Step 1: Select Search Backend")
	cmd.Println("-----------------------------")
	modes := []domain.BackendMode{domain.BackendLocal, domain.BackendRemote}
	current := 1
	for i, mode := range modes {
		cmd.Printf("  %d. %s\n", i+1, mode.Description())
		if mode == settings.Backend.Mode {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.Backend.Mode = modes[parseChoice(readLine(reader), len(modes), current)-1]
	cmd.Println()

	// Step 2: Backend details
	if settings.Backend.Mode == domain.BackendRemote {
		cmd.Println("Step 2: Remote API")
		cmd.Println("------------------")
		cmd.Printf("Enter API URL [%s]: ", settings.Backend.URL)
		if v := readLine(reader); v != "" {
			settings.Backend.URL = v
		}
		cmd.Printf("Enter requests per second, 0 for unlimited [%g]: ", settings.Backend.RatePerSecond)
		if v := readLine(reader); v != "" {
			rate, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: rate %q", domain.ErrInvalidInput, v)
			}
			settings.Backend.RatePerSecond = rate
		}
	} else {
		cmd.Println("Step 2: Local Catalogue")
		cmd.Println("-----------------------")
		cmd.Printf("Enter data directory [%s]: ", orDefault(settings.DataDir))
		if v := readLine(reader); v != "" {
			settings.DataDir = v
		}
		cmd.Println("Load the register with 'estatemap import projects.csv'.")
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("All settings are valid and saved.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func orDefault(s string) string {
	if s == "" {
		return "default"
	}
	return s
}

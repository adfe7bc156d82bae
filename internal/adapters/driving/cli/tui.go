package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui"
)

var errNotTerminal = errors.New("the TUI needs an interactive terminal; use 'estatemap search' instead")

// isTerminal reports whether stdin and stdout are attached to a terminal.
// Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// runApp runs the program until the user quits. Replaced in tests.
var runApp = func(ctx context.Context, app *tui.App) error {
	return app.WithContext(ctx).Run()
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for estatemap.

Type a query such as "villas in Whitefield" and press Enter. Matching
projects are listed on the left and drawn on the map on the right; the map
re-frames itself around every new result set. Select a project to load its
registration details.

Controls:
  Tab      - Use the example query shown
  Enter    - Search / Show details
  ↑/k, ↓/j - Move through projects
  /, n     - New search
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if explorer == nil {
		return errNoExplorer
	}
	if !isTerminal() {
		return errNotTerminal
	}

	app, err := tui.NewApp(tui.NewPorts(explorer))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Quitting cancels searches and detail fetches still in flight so
	// teardown does not wait for them.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := runApp(ctx, app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

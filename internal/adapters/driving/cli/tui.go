package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the vault in a terminal UI",
	Long: `Browse groups and credentials in an interactive terminal UI.

Passwords stay masked until revealed. Use "passman menu" or
"passman serve" to make changes.

Controls:
  ↑/k, ↓/j - Move
  Enter    - Open group
  Space    - Show or hide the password
  r        - Reload
  Esc      - Back
  ?        - Help
  q        - Quit`,
	Annotations: needsVault(),
	RunE:        runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the app around the configured vault.
func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	vault, err := requireVault()
	if err != nil {
		return nil, err
	}
	app, err := tui.NewApp(tui.NewPorts(vault))
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app.WithContext(cmd.Context()), nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// Package cli provides the cobra command tree for passman.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driving"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/logger"
)

// version is set at build time.
var version = "dev"

// annotationNeedsVault marks commands that read or write the store.
const annotationNeedsVault = "passman/needs-vault"

// Services used by commands. Set by Configure or directly in tests.
var (
	vaultService    driving.VaultService
	settingsService driving.SettingsService
)

// Global flags.
var (
	verbose   bool
	configDir string
	backend   string
)

// GlobalOptions carries the persistent flags to the wiring functions.
type GlobalOptions struct {
	ConfigDir string
	Backend   string
	Verbose   bool
}

// Wiring builds services on demand. Settings is called before every
// command; Vault only for commands that touch the store.
type Wiring struct {
	Settings func(opts GlobalOptions) (driving.SettingsService, error)
	Vault    func(ctx context.Context, settings *domain.AppSettings) (driving.VaultService, func() error, error)
}

var (
	wiring     *Wiring
	closeVault func() error
)

var rootCmd = &cobra.Command{
	Use:   "passman",
	Short: "Personal password manager",
	Long: `passman keeps site logins in named, security-levelled groups.

Run "passman menu" for the numbered text menu, "passman serve" for the
browser front end or "passman tui" for the terminal browser.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if closeVault == nil {
			return nil
		}
		err := closeVault()
		closeVault = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Config directory (default ~/.passman)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "",
		"Store backend: memory, sqlite, bolt, mongo or datastore")
}

// Configure installs the wiring used to build services.
func Configure(w *Wiring) {
	wiring = w
}

// SetVersion sets the reported version.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setupServices builds whatever the command needs that is not already set.
func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if settingsService == nil && wiring != nil && wiring.Settings != nil {
		s, err := wiring.Settings(GlobalOptions{ConfigDir: configDir, Backend: backend, Verbose: verbose})
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		settingsService = s
	}

	if cmd.Annotations[annotationNeedsVault] != "true" || vaultService != nil {
		return nil
	}
	if wiring == nil || wiring.Vault == nil || settingsService == nil {
		return nil
	}

	settings, err := currentSettings()
	if err != nil {
		return err
	}
	if settings.Log.Verbose {
		logger.SetVerbose(true)
	}

	v, closer, err := wiring.Vault(cmd.Context(), settings)
	if err != nil {
		return err
	}
	vaultService, closeVault = v, closer
	return nil
}

// currentSettings returns settings with the --backend flag applied.
func currentSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if backend != "" {
		b := domain.StoreBackend(backend)
		if !b.IsValid() {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedBackend, backend)
		}
		settings.Store.Backend = b
	}
	return settings, nil
}

// requireVault returns the vault or an error when none is configured.
func requireVault() (driving.VaultService, error) {
	if vaultService == nil {
		return nil, errors.New("vault service not configured")
	}
	return vaultService, nil
}

func needsVault() map[string]string {
	return map[string]string{annotationNeedsVault: "true"}
}

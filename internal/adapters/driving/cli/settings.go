package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change passman settings.

Settings are stored in ~/.passman/config.toml. Any key can be overridden by
an environment variable, e.g. PASSMAN_STORE_BACKEND for store.backend.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := currentSettings()
	if err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Store.Backend.Description())
	switch {
	case settings.Store.Backend.IsLocal():
		path := settings.Store.Path
		if path == "" {
			path = "~/.passman/data"
		}
		cmd.Printf("  Path: %s\n", path)
	case settings.Store.MongoURI != "" || settings.Store.DatastoreProject != "":
		if settings.Store.MongoURI != "" {
			cmd.Printf("  Mongo URI: %s\n", maskURI(settings.Store.MongoURI))
			cmd.Printf("  Mongo database: %s\n", settings.Store.MongoDatabase)
		}
		if settings.Store.DatastoreProject != "" {
			cmd.Printf("  Datastore project: %s\n", settings.Store.DatastoreProject)
		}
	}
	status := "configured"
	if !settings.Store.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Web]")
	cmd.Printf("  Address: %s\n", settings.Web.Addr)
	cmd.Printf("  Rate limit: %g req/s (burst %d)\n", settings.Web.RateLimit, settings.Web.Burst)
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Format: %s\n", settings.Log.Format)
	cmd.Printf("  Verbose: %t\n", settings.Log.Verbose)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

// maskURI shows the scheme and hides the rest, which may carry a password.
func maskURI(uri string) string {
	if len(uri) <= 12 {
		return "****"
	}
	return uri[:10] + "..."
}

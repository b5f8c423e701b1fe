package driving

import "github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its dotted key (e.g. "store.backend").
	Set(key, value string) error

	// Validate checks the current settings can open a store.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Keys lists the settable keys in display order.
	Keys() []string
}

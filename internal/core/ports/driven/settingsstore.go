package driven

import "github.com/coursechat-labs/coursechat-cli/internal/core/domain"

// SettingsStore persists application configuration.
// Backed by a TOML file in the coursechat config directory.
type SettingsStore interface {
	// Load reads the settings, applying defaults for missing values.
	// A missing file yields the defaults, not an error.
	Load() (domain.Settings, error)

	// Save writes the settings.
	Save(settings domain.Settings) error
}

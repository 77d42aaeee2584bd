package configs

import (
	"fmt"
	"os"

	kerrors "github.com/Storrado98/gastosapp/internal/errors"
	"github.com/Storrado98/gastosapp/internal/ledger"
)

// DefaultCalendarDays is the projection window used when none is configured.
const DefaultCalendarDays = 30

// maxCalendarDays matches the longest window the ledger projects.
const maxCalendarDays = ledger.MaxProjectionDays

type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Calendar CalendarConfig `toml:"calendar"`
	Export   ExportConfig   `toml:"export"`
}

type StorageConfig struct {
	// Path overrides the directory holding vault slots.
	Path string `toml:"path,omitempty"`
}

type CalendarConfig struct {
	Days       int  `toml:"days"`
	CarryPrior bool `toml:"carry_prior"`
}

type ExportConfig struct {
	// Directory is where export files go when no output path is given.
	Directory string `toml:"directory,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{Days: DefaultCalendarDays},
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Calendar.Days <= 0 {
		return fmt.Errorf("%w: calendar.days must be positive, got %d", kerrors.ErrInvalidConfig, c.Calendar.Days)
	}
	if c.Calendar.Days > maxCalendarDays {
		return fmt.Errorf("%w: calendar.days must be at most %d, got %d", kerrors.ErrInvalidConfig, maxCalendarDays, c.Calendar.Days)
	}
	return nil
}

// LoadConfig reads path, filling unset values from Default. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("%w: failed to load %s: %v", kerrors.ErrInvalidConfig, path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig validates config and writes it to path.
func SaveConfig(path string, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

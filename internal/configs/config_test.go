package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/Storrado98/gastosapp/internal/errors"
)

func TestConfig(t *testing.T) {
	t.Run("MissingFileYieldsDefaults", testMissingFileYieldsDefaults)
	t.Run("SaveAndLoad", testSaveAndLoadConfig)
	t.Run("PartialFileKeepsDefaults", testPartialFileKeepsDefaults)
	t.Run("RejectsNonPositiveDays", testRejectsNonPositiveDays)
	t.Run("RejectsMalformedFile", testRejectsMalformedFile)
}

func testMissingFileYieldsDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Calendar.Days != DefaultCalendarDays {
		t.Errorf("Expected %d calendar days, got %d", DefaultCalendarDays, config.Calendar.Days)
	}
	if config.Calendar.CarryPrior {
		t.Error("Expected carry_prior to default to false")
	}
}

func testSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gastosapp", "config.toml")

	config := Default()
	config.Storage.Path = "/srv/vaults"
	config.Calendar.Days = 90
	config.Calendar.CarryPrior = true
	config.Export.Directory = "/srv/exports"

	if err := SaveConfig(path, config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *loaded != *config {
		t.Errorf("Expected %+v, got %+v", *config, *loaded)
	}
}

func testPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[calendar]\ncarry_prior = true\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Calendar.Days != DefaultCalendarDays {
		t.Errorf("Expected %d calendar days, got %d", DefaultCalendarDays, config.Calendar.Days)
	}
	if !config.Calendar.CarryPrior {
		t.Error("Expected carry_prior to be true")
	}
}

func testRejectsNonPositiveDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[calendar]\ndays = 0\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}

	config := Default()
	config.Calendar.Days = -1
	if err := SaveConfig(filepath.Join(t.TempDir(), "config.toml"), config); !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Errorf("Expected SaveConfig to reject negative days, got %v", err)
	}
}

func testRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[calendar\ndays = ten\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
}

package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Storrado98/gastosapp/internal/utils"
)

// DataDirEnv overrides the directory holding vault slots and the audit log.
const DataDirEnv = "GASTOS_DATA_DIR"

// Settings holds the resolved locations gastosapp works with.
type Settings struct {
	// DataPath holds the vault slots and audit.jsonl.
	DataPath string
	// ConfigPath holds config.toml.
	ConfigPath string
	// Username is the OS user, the fallback vault user id.
	Username string
}

// GastosSettings is set by InitSettings. Tests replace it directly.
var GastosSettings *Settings

// InitSettings resolves GastosSettings from the environment. It is a no-op
// once settings are set.
func InitSettings() error {
	if GastosSettings != nil {
		return nil
	}
	settings, err := DefaultSettings()
	if err != nil {
		return err
	}
	GastosSettings = settings
	return nil
}

// DefaultSettings resolves settings from the environment:
// GASTOS_DATA_DIR, else $XDG_DATA_HOME/gastosapp, else
// ~/.local/share/gastosapp for data, and os.UserConfigDir()/gastosapp for
// the config file.
func DefaultSettings() (*Settings, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	dataPath := os.Getenv(DataDirEnv)
	if dataPath == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("error getting home directory: %w", err)
			}
			dataDir = filepath.Join(homeDir, ".local", "share")
		}
		dataPath = filepath.Join(dataDir, "gastosapp")
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = ""
	}

	return &Settings{
		DataPath:   dataPath,
		ConfigPath: filepath.Join(configDir, "gastosapp"),
		Username:   username,
	}, nil
}

// ConfigFile returns the path of config.toml.
func (s *Settings) ConfigFile() string {
	return filepath.Join(s.ConfigPath, "config.toml")
}

// AuditLogFile returns the path of the audit log.
func (s *Settings) AuditLogFile() string {
	return filepath.Join(s.DataPath, "audit.jsonl")
}

// StoragePath returns where vault slots live: GASTOS_DATA_DIR when set,
// then the configured storage path, then DataPath.
func (s *Settings) StoragePath(cfg *Config) (string, error) {
	if os.Getenv(DataDirEnv) != "" || cfg == nil || cfg.Storage.Path == "" {
		return s.DataPath, nil
	}
	return utils.ExpandHome(cfg.Storage.Path)
}

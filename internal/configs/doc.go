// Package configs resolves where gastosapp keeps its data and loads the
// optional user configuration file.
//
// # Settings
//
// GastosSettings holds the resolved paths:
//   - DataPath: vault slots and audit.jsonl. GASTOS_DATA_DIR, else
//     $XDG_DATA_HOME/gastosapp, else ~/.local/share/gastosapp.
//   - ConfigPath: directory of config.toml under os.UserConfigDir().
//
// Call InitSettings() before reading GastosSettings.
//
// # Configuration File
//
// config.toml is optional; a missing file means defaults:
//
//	[storage]
//	path = "~/vaults"
//
//	[calendar]
//	days = 30
//	carry_prior = false
//
//	[export]
//	directory = "~/Documents"
//
// Unknown keys and non-positive calendar days are rejected with
// errors.ErrInvalidConfig.
package configs

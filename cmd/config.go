package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/Storrado98/gastosapp/internal/configs"
	logger "github.com/Storrado98/gastosapp/internal/logging"
	"github.com/Storrado98/gastosapp/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configVerbose bool
	configDebug   bool
	ConfigLogger  logger.Logger

	configInitForce bool
	configInitDays  int
	configShowJSON  bool

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage gastosapp configuration",
		Long: `Provides commands for the optional config.toml file.

Examples:
  # Write a config file with the defaults
  gastos config init

  # Show the effective configuration and paths
  gastos config show`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ConfigLogger = logger.Logger{
				Verbose: configVerbose,
				Debug:   configDebug,
			}
			ConfigLogger.Debugf("Initializing config command with verbose=%t, debug=%t", configVerbose, configDebug)
			if err := configs.InitSettings(); err != nil {
				return ConfigLogger.ErrorfAndReturn("failed to resolve settings: %w", err)
			}
			return nil
		},
	}
)

func init() {
	ConfigCmd.PersistentFlags().BoolVarP(&configVerbose, "verbose", "v", false, "enable verbose output")
	ConfigCmd.PersistentFlags().BoolVarP(&configDebug, "debug", "d", false, "enable debug output")

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	configInitCmd.Flags().IntVar(&configInitDays, "days", configs.DefaultCalendarDays, "default calendar window in days")
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// GetConfigCmd returns the ConfigCmd for mounting on the root command.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// ResetConfigState resets all config command global variables to their default values for testing.
func ResetConfigState() {
	configVerbose = false
	configDebug = false
	configInitForce = false
	configInitDays = configs.DefaultCalendarDays
	configShowJSON = false
	resetCobraFlagState(ConfigCmd)
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write config.toml with default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config init command")
		path := configs.GastosSettings.ConfigFile()

		if _, err := os.Stat(path); err == nil && !configInitForce {
			fmt.Println(ui.Warning.Sprint("⚠") + " " + ui.Path.Sprint(path) + " already exists\n" +
				ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--force") + " to overwrite it")
			return nil
		}

		config := configs.Default()
		config.Calendar.Days = configInitDays
		if err := configs.SaveConfig(path, config); err != nil {
			if msg := failureMessage(err); msg != "" {
				fmt.Println(msg)
				return nil
			}
			return ConfigLogger.ErrorfAndReturn("failed to write config: %w", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Wrote " + ui.Path.Sprint(path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")
		settings := configs.GastosSettings

		config, err := configs.LoadConfig(settings.ConfigFile())
		if err != nil {
			if msg := failureMessage(err); msg != "" {
				fmt.Println(msg)
				return nil
			}
			return ConfigLogger.ErrorfAndReturn("failed to load config: %w", err)
		}
		storage, err := settings.StoragePath(config)
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("failed to resolve storage path: %w", err)
		}

		if configShowJSON {
			out := map[string]any{
				"config_file": settings.ConfigFile(),
				"storage":     storage,
				"audit_log":   settings.AuditLogFile(),
				"calendar": map[string]any{
					"days":        config.Calendar.Days,
					"carry_prior": config.Calendar.CarryPrior,
				},
				"export_directory": config.Export.Directory,
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("failed to encode config: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return ConfigLogger.ErrorfAndReturn("failed to encode config: %w", err)
		}

		fmt.Println(ui.Info.Sprint("Config file:") + " " + ui.Path.Sprint(settings.ConfigFile()))
		fmt.Println(ui.Info.Sprint("Vault storage:") + " " + ui.Path.Sprint(storage))
		fmt.Println(ui.Info.Sprint("Audit log:") + " " + ui.Path.Sprint(settings.AuditLogFile()))
		fmt.Println()
		fmt.Print(buf.String())
		return nil
	},
}

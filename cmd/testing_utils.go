// Package cmd contains testing utilities shared between CLI tests.
// This file provides common functions for setting up an isolated data
// directory and capturing command output.
package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Storrado98/gastosapp/internal/configs"
	logger "github.com/Storrado98/gastosapp/internal/logging"
	"github.com/spf13/cobra"
)

// setupTestEnvironment points settings at temporary directories and
// returns the data directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	originalSettings := configs.GastosSettings
	t.Cleanup(func() {
		configs.GastosSettings = originalSettings
		ResetGlobalState()
		ResetConfigState()
	})

	configs.GastosSettings = &configs.Settings{
		DataPath:   filepath.Join(tempDir, "data"),
		ConfigPath: filepath.Join(tempDir, "config"),
		Username:   "testuser",
	}

	t.Setenv(configs.DataDirEnv, "")
	t.Setenv(PINEnv, "")
	t.Setenv("NO_COLOR", "1")

	return configs.GastosSettings.DataPath
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		stdoutChan <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// createTestCLI creates a fresh root command wired to the real command
// groups, with args set and stdin fed from stdin when non-nil.
func createTestCLI(args []string, stdin io.Reader) *cobra.Command {
	ResetGlobalState()
	ResetConfigState()
	Logger = logger.Logger{}

	rootCmd := &cobra.Command{
		Use:           "gastos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(VaultCmd)
	rootCmd.AddCommand(ConfigCmd)

	if stdin != nil {
		rootCmd.SetIn(stdin)
	}
	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI executes args and returns the captured output.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	output, err := captureOutput(func() error {
		return createTestCLI(args, nil).Execute()
	})
	if err != nil {
		t.Fatalf("gastos %v failed: %v\nOutput: %s", args, err, output)
	}
	return output
}

// Package utils provides shared utility functions for gastosapp.
//
// This package contains general-purpose helpers used by the CLI and the
// workflows. Functions are organized into logical groups:
//
// # Filesystem Utilities
//
//   - ExpandHome: resolves a leading "~" in configured paths
//   - WritePrivateFile: writes export files readable only by their owner
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//   - SanitizeFileComponent: normalizes a user id for use in file names
//
// # String Utilities
//
//   - IsValidPIN: checks the four-digit PIN format
//
// # I/O and Terminal Utilities
//
//   - ReadLine: reads a PIN piped on stdin
//   - ReadPassphrase: prompts for a PIN without echoing it
//   - IsTerminal: checks if stdin is a terminal
package utils

// Package logger provides levelled logging for gastosapp commands and the
// vault core.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with semantic prefixes and colors.
//
// # Verbosity Levels
//
//   - --verbose: Shows info messages
//   - --debug: Shows info and debug messages
//
// Warnings and errors are always written, to stderr unless Logger.Out is
// set.
//
// # Log Methods
//
//	Logger.Infof()          // Shown with --verbose or --debug
//	Logger.Debugf()         // Shown only with --debug
//	Logger.Warnf()          // Always shown
//	Logger.Errorf()         // Always shown
//	Logger.ErrorfAndReturn() // Logs with --debug, returns the formatted error
//
// The zero Logger is quiet apart from warnings and errors, so core packages
// can embed one without any setup. Never log PINs, keys or decrypted
// amounts, and never log which unlock check failed.
package logger

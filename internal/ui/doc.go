// Package ui provides semantic text formatting for CLI output.
//
// Formatters render with colour when the terminal supports it. When
// NO_COLOR is set or the terminal is not colour capable, text decorations
// are used instead:
//
//	ui.Code.Sprint("gastos vault unlock")  // `gastos vault unlock`
//	ui.Highlight.Sprint("alice")           // 'alice'
//	ui.Muted.Sprint("no movements")        // (no movements)
//	ui.Amount(balance, "ARS")              // -150.75 ARS
package ui

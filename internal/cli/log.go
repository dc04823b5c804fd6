// Package cli implements the sitesnap command-line interface.
//
// sitesnap is a single-purpose tool: it fetches snapshots from every
// configured external service and writes them into a static output tree.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Configuration
//
// Non-secret settings come from an optional sitesnap.toml file (see
// --config). Credentials come from flags, the environment, or a .env file
// in the working directory, in that order of precedence.
//
// # Logging
//
// The --verbose (-v) flag enables debug-level logging. The logger is
// attached to the command context and flows through to every source job.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

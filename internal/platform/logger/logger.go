package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger writing to stdout; hosts (Lambda,
// container runtimes) collect stdout lines as-is.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

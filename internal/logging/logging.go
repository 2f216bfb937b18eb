// Package logging builds the application logger. The terminal UI owns
// stdout, so logs go to a file under XDG_STATE_HOME/libris instead.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileName = "libris.log"

// New returns a logger writing JSON lines at the given level. "off" (or an
// unopenable log file) yields a no-op logger; the app never fails to start
// over logging.
func New(level string) *zap.Logger {
	if level == "off" {
		return zap.NewNop()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	dir := logDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return zap.NewNop()
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zap.NewNop()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(f),
		lvl,
	)
	return zap.New(core)
}

func logDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "libris")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "libris")
}

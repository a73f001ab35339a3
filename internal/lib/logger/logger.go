package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// SetupLogger builds the root slog logger for the given environment.
// Local runs log human-readable text to stdout; dev and prod log JSON to
// stdout and a file under logPath.
func SetupLogger(env, logPath string) *slog.Logger {
	switch env {
	case envDev:
		return slog.New(slog.NewJSONHandler(
			logWriter(logPath, "agentsfood-dev.log"),
			&slog.HandlerOptions{Level: slog.LevelDebug},
		))
	case envProd:
		return slog.New(slog.NewJSONHandler(
			logWriter(logPath, "agentsfood.log"),
			&slog.HandlerOptions{Level: slog.LevelInfo},
		))
	default:
		return slog.New(slog.NewTextHandler(
			os.Stdout,
			&slog.HandlerOptions{Level: slog.LevelDebug},
		))
	}
}

func logWriter(logPath, name string) io.Writer {
	file, err := os.OpenFile(filepath.Join(logPath, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, file)
}

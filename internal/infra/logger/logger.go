package logger

import (
	"log/slog"
	"os"
)

// New возвращает JSON-логгер с полем service в каждой записи.
// В dev включается debug-уровень.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", "otchet", "env", env)
}

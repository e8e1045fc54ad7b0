package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestLevelByEnv(t *testing.T) {
	ctx := context.Background()

	if !New("dev").Enabled(ctx, slog.LevelDebug) {
		t.Error("в dev должен работать debug")
	}
	if New("prod").Enabled(ctx, slog.LevelDebug) {
		t.Error("в prod debug должен быть выключен")
	}
	if !New("prod").Enabled(ctx, slog.LevelInfo) {
		t.Error("info должен работать всегда")
	}
}

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vantorrr/otchet/internal/ai"
	"github.com/Vantorrr/otchet/internal/bot"
	"github.com/Vantorrr/otchet/internal/config"
	"github.com/Vantorrr/otchet/internal/dialog"
	httpx "github.com/Vantorrr/otchet/internal/infra/http"
	"github.com/Vantorrr/otchet/internal/infra/logger"
	"github.com/Vantorrr/otchet/internal/offices"
	"github.com/Vantorrr/otchet/internal/sheets"
	"github.com/Vantorrr/otchet/internal/slides"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error("bad timezone", "tz", cfg.App.Timezone, "err", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheetsClient, err := sheets.NewClient(ctx, cfg.Google.CredentialsPath, cfg.Google.SpreadsheetID, log)
	if err != nil {
		log.Error("sheets init failed", "err", err)
		return
	}
	log.Info("spreadsheet ready", "id", cfg.Google.SpreadsheetID)

	theme := slides.Theme{
		Primary: cfg.Slides.PrimaryColor,
		Text:    cfg.Slides.TextColor,
		Muted:   cfg.Slides.MutedColor,
		CardBG:  cfg.Slides.CardBGColor,
		Font:    cfg.Slides.Font,
	}
	slidesService, err := slides.NewService(ctx, cfg.Google.CredentialsPath, cfg.Google.DriveFolderID, theme, log)
	if err != nil {
		log.Error("slides init failed", "err", err)
		return
	}

	aiProvider := ai.New(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, log)
	dialogs := dialog.NewRepo()
	officeRegistry := offices.New(cfg.Offices)

	b, err := bot.New(cfg, loc, sheetsClient, dialogs, aiProvider, slidesService, officeRegistry, log)
	if err != nil {
		log.Error("bot init failed", "err", err)
		return
	}

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	b.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}

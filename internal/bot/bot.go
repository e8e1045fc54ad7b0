// Package bot — телеграм-слой: команды, диалоги отчётов, сводки и напоминания.
package bot

import (
	"context"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/Vantorrr/otchet/internal/ai"
	"github.com/Vantorrr/otchet/internal/config"
	"github.com/Vantorrr/otchet/internal/dialog"
	"github.com/Vantorrr/otchet/internal/infra/metrics"
	"github.com/Vantorrr/otchet/internal/offices"
	"github.com/Vantorrr/otchet/internal/sheets"
	"github.com/Vantorrr/otchet/internal/slides"
)

type Bot struct {
	tg      *tele.Bot
	log     *slog.Logger
	cfg     config.Config
	loc     *time.Location
	sheets  *sheets.Client
	dialogs *dialog.Repo
	ai      *ai.Provider
	slides  *slides.Service
	offices *offices.Registry

	baseCtx context.Context
}

func New(
	cfg config.Config,
	loc *time.Location,
	sheetsClient *sheets.Client,
	dialogs *dialog.Repo,
	aiProvider *ai.Provider,
	slidesService *slides.Service,
	officeRegistry *offices.Registry,
	log *slog.Logger,
) (*Bot, error) {
	tg, err := tele.NewBot(tele.Settings{
		Token:     cfg.Telegram.Token,
		Poller:    &tele.LongPoller{Timeout: 10 * time.Second},
		ParseMode: tele.ModeHTML,
	})
	if err != nil {
		return nil, err
	}

	b := &Bot{
		tg:      tg,
		log:     log,
		cfg:     cfg,
		loc:     loc,
		sheets:  sheetsClient,
		dialogs: dialogs,
		ai:      aiProvider,
		slides:  slidesService,
		offices: officeRegistry,
	}
	b.route()
	return b, nil
}

// Run запускает long polling и воркер напоминаний, блокируется до отмены контекста.
func (b *Bot) Run(ctx context.Context) {
	b.baseCtx = ctx
	go b.remindersWorker(ctx)

	go func() {
		<-ctx.Done()
		b.tg.Stop()
	}()

	b.log.Info("bot started", "username", b.tg.Me.Username)
	b.tg.Start()
	b.log.Info("bot stopped")
}

// send отвечает в тот же чат и тему; ошибка отправки логируется, не роняет обработчик.
func (b *Bot) send(c tele.Context, what any, opts ...any) error {
	if err := c.Send(what, opts...); err != nil {
		metrics.ExternalErrors.WithLabelValues("telegram").Inc()
		b.log.Error("send failed", "chat_id", c.Chat().ID, "error", err)
	}
	return nil
}

// sendTo шлёт сообщение в произвольный чат и тему (сводки, напоминания).
func (b *Bot) sendTo(chatID int64, topicID int, text string, markup *tele.ReplyMarkup) error {
	opts := &tele.SendOptions{
		ThreadID:  topicID,
		ParseMode: tele.ModeHTML,
	}
	if markup != nil {
		opts.ReplyMarkup = markup
	}
	_, err := b.tg.Send(&tele.Chat{ID: chatID}, text, opts)
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("telegram").Inc()
		b.log.Error("send failed", "chat_id", chatID, "topic_id", topicID, "error", err)
	}
	return err
}

// ctx — контекст для вызовов таблицы и внешних API из обработчиков.
func (b *Bot) ctx(_ tele.Context) context.Context {
	if b.baseCtx != nil {
		return b.baseCtx
	}
	return context.Background()
}

// dialogKey адресует диалог текущего пользователя в текущей теме.
func dialogKey(c tele.Context) dialog.Key {
	return dialog.Key{
		ChatID:  c.Chat().ID,
		TopicID: c.Message().ThreadID,
		UserID:  c.Sender().ID,
	}
}

// topicID безопасно достаёт тему из апдейта (0 вне форумов).
func topicID(c tele.Context) int {
	if m := c.Message(); m != nil {
		return m.ThreadID
	}
	return 0
}

package bot

import (
	"context"
	"time"

	"github.com/Vantorrr/otchet/internal/config"
	"github.com/Vantorrr/otchet/internal/infra/metrics"
	"github.com/Vantorrr/otchet/internal/timeutil"
)

// Напоминания и вечерняя публикация сводки. Минутный тикер сверяет
// текущее время с расписанием; каждое событие срабатывает не чаще
// раза в день.

const (
	reminderMorning = "morning"
	reminderEvening = "evening"
	reminderSummary = "summary"
)

func (b *Bot) remindersWorker(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	// дата последнего срабатывания по каждому событию
	fired := map[string]string{}

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			b.remindersTick(now.In(b.loc), fired)
		}
	}
}

func (b *Bot) remindersTick(now time.Time, fired map[string]string) {
	minute := now.Hour()*60 + now.Minute()
	today := now.Format(timeutil.DayLayout)

	if b.cfg.Reminders.QuietHours != "" {
		from, to, err := config.ParseQuietHours(b.cfg.Reminders.QuietHours)
		if err == nil && config.InQuietHours(minute, from, to) {
			return
		}
	}

	due := func(kind, hhmm string) bool {
		h, m, err := config.ParseHHMM(hhmm)
		if err != nil {
			return false
		}
		if minute != h*60+m || fired[kind] == today {
			return false
		}
		fired[kind] = today
		return true
	}

	if due(reminderMorning, b.cfg.Reminders.Morning) {
		b.sendReminders(reminderMorning, "🌅 Доброе утро! Пора сдать утренний отчёт: /morning")
	}
	if due(reminderEvening, b.cfg.Reminders.Evening) {
		b.sendReminders(reminderEvening, "🌇 Рабочий день подходит к концу. Сдайте вечерний отчёт: /evening")
	}
	if due(reminderSummary, b.cfg.Reminders.Summary) {
		b.PublishSummary(today)
	}
}

// sendReminders рассылает текст во все привязанные темы менеджеров.
// Достаточно зарегистрированного группового чата: тема сводок для
// напоминаний не нужна.
func (b *Bot) sendReminders(kind, text string) {
	ctx := b.baseCtx
	chatID, err := b.sheets.GroupChat(ctx)
	if err != nil || chatID == 0 {
		if err != nil {
			b.log.Error("reminder chat lookup failed", "error", err)
		}
		return
	}
	bindings, err := b.sheets.Bindings(ctx)
	if err != nil {
		b.log.Error("reminder bindings failed", "error", err)
		return
	}
	for topic, manager := range bindings {
		if err := b.sendTo(chatID, topic, text, reportKeyboard()); err != nil {
			b.log.Error("reminder send failed", "manager", manager, "topic_id", topic, "error", err)
			continue
		}
		metrics.RemindersSent.WithLabelValues(kind).Inc()
	}
	b.log.Info("reminders sent", "kind", kind, "topics", len(bindings))
}

package bot

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	tele "gopkg.in/telebot.v3"

	"github.com/Vantorrr/otchet/internal/ai"
	"github.com/Vantorrr/otchet/internal/dialog"
	"github.com/Vantorrr/otchet/internal/domain/reports"
	"github.com/Vantorrr/otchet/internal/infra/metrics"
	"github.com/Vantorrr/otchet/internal/slides"
	"github.com/Vantorrr/otchet/internal/timeutil"
)

// Telegram режет сообщения на 4096 символах; оставляем запас на разметку.
const maxMessageLen = 4000

type period struct {
	start  string
	end    string
	label  string
	office string // пусто = все офисы
}

func (b *Bot) todayRange() period {
	d := timeutil.Today(b.loc)
	return period{start: d, end: d, label: "сегодня (" + d + ")"}
}

func (b *Bot) periodRange(kind string) period {
	now := time.Now().In(b.loc)
	switch kind {
	case cbSummaryWeek, cbPresentationWeek:
		s, e := timeutil.WeekRange(now)
		return period{start: s, end: e, label: "неделю " + s + " — " + e}
	case cbSummaryMonth, cbPresentationMonth:
		s, e := timeutil.MonthRange(now)
		return period{start: s, end: e, label: "месяц " + s + " — " + e}
	case cbSummaryQuarter, cbPresentationQuarter:
		s, e := timeutil.QuarterRange(now)
		return period{start: s, end: e, label: "квартал " + s + " — " + e}
	}
	return b.todayRange()
}

// parseSummaryArgs разбирает аргументы /summary: необязательная дата,
// затем необязательное название офиса. Токен с цифрами считается датой.
func parseSummaryArgs(payload string) (dateArg, office string) {
	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return "", ""
	}
	if strings.ContainsAny(fields[0], "0123456789") {
		return fields[0], strings.Join(fields[1:], " ")
	}
	return "", strings.Join(fields, " ")
}

// handleSummary — /summary [ГГГГ-ММ-ДД] [офис]. Кривая дата или
// неизвестный офис отклоняются сразу, к таблице бот при этом не ходит.
func (b *Bot) handleSummary(c tele.Context) error {
	dateArg, office := parseSummaryArgs(c.Message().Payload)
	p := b.todayRange()
	if dateArg != "" {
		date, err := timeutil.ParseDate(dateArg)
		if err != nil {
			return b.send(c, "Не понимаю дату «"+dateArg+"». Формат: /summary 2025-01-15")
		}
		p = period{start: date, end: date, label: date}
	}
	if office != "" {
		if !slices.Contains(b.offices.All(), office) {
			return b.send(c, "Неизвестный офис «"+office+"». Доступны: "+strings.Join(b.offices.All(), ", "))
		}
		p.office = office
		p.label += ", офис «" + office + "»"
	}
	return b.sendSummaryForRange(c, p)
}

// handleSummaryRange — /summary_range <начало> <конец>.
func (b *Bot) handleSummaryRange(c tele.Context) error {
	args := strings.Fields(c.Message().Payload)
	if len(args) != 2 {
		return b.send(c, "Нужны две даты: /summary_range 2025-01-01 2025-01-31")
	}
	start, err := timeutil.ParseDate(args[0])
	if err != nil {
		return b.send(c, "Не понимаю дату «"+args[0]+"». Формат: ГГГГ-ММ-ДД")
	}
	end, err := timeutil.ParseDate(args[1])
	if err != nil {
		return b.send(c, "Не понимаю дату «"+args[1]+"». Формат: ГГГГ-ММ-ДД")
	}
	if end < start {
		return b.send(c, "Дата конца раньше даты начала.")
	}
	return b.sendSummaryForRange(c, period{start: start, end: end, label: start + " — " + end})
}

func (b *Bot) sendSummaryForRange(c tele.Context, p period) error {
	rows, err := b.sheets.ReportsInRange(b.ctx(c), p.start, p.end)
	if err != nil {
		b.log.Error("summary fetch failed", "start", p.start, "end", p.end, "error", err)
		return b.send(c, "Не удалось прочитать отчёты из таблицы. Попробуйте позже.")
	}
	rows = reports.FilterOffice(rows, p.office)
	text := BuildSummaryText(rows, p.label)
	metrics.SummariesBuilt.Inc()

	sumChat, sumTopic, err := b.sheets.SummaryTopic(b.ctx(c))
	if err != nil {
		sumChat, sumTopic = 0, 0
	}
	if chatID, topic, redirect := summaryDestination(c.Chat().Type, c.Chat().ID, topicID(c), sumChat, sumTopic); redirect {
		for _, chunk := range splitMessage(text, maxMessageLen) {
			if err := b.sendTo(chatID, topic, chunk, nil); err != nil {
				return b.send(c, "Не удалось опубликовать сводку в теме сводок.")
			}
		}
		return b.send(c, "📊 Сводка опубликована в теме сводок.")
	}

	for _, chunk := range splitMessage(text, maxMessageLen) {
		if err := b.send(c, chunk); err != nil {
			return err
		}
	}
	return nil
}

// summaryDestination решает, перенаправлять ли сводку в настроенную тему.
// Перенаправление работает только из супергрупп; вызов из самой темы
// сводок отвечает на месте, без дубля.
func summaryDestination(chatType tele.ChatType, curChat int64, curTopic int, sumChat int64, sumTopic int) (int64, int, bool) {
	if sumChat == 0 || chatType != tele.ChatSuperGroup {
		return 0, 0, false
	}
	if curChat == sumChat && curTopic == sumTopic {
		return 0, 0, false
	}
	return sumChat, sumTopic, true
}

// PublishSummary шлёт сводку за день в настроенную тему сводок.
// Если тема не настроена, молча выходит.
func (b *Bot) PublishSummary(date string) {
	ctx := b.baseCtx
	chatID, topic, err := b.sheets.SummaryTopic(ctx)
	if err != nil {
		b.log.Error("summary topic lookup failed", "error", err)
		return
	}
	if chatID == 0 {
		return
	}
	rows, err := b.sheets.ReportsByDate(ctx, date)
	if err != nil {
		b.log.Error("summary fetch failed", "date", date, "error", err)
		return
	}
	text := BuildSummaryText(rows, date)
	metrics.SummariesBuilt.Inc()
	for _, chunk := range splitMessage(text, maxMessageLen) {
		if err := b.sendTo(chatID, topic, chunk, nil); err != nil {
			return
		}
	}
}

// BuildSummaryText собирает HTML-сводку: команда сверху, затем менеджеры
// по алфавиту. Пустой период — сводка с нулями и пометкой, не ошибка.
func BuildSummaryText(rows []reports.Report, periodLabel string) string {
	byManager := reports.AggregateByManager(rows)
	team := reports.TeamTotals(byManager)

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 <b>Сводка за %s</b>\n\n", periodLabel)

	sb.WriteString(totalsBlock(team))
	if len(byManager) == 0 {
		sb.WriteString("\nНет данных за выбранный период.")
		return sb.String()
	}

	for _, t := range reports.SortedManagers(byManager) {
		sb.WriteString("\n")
		sb.WriteString(totalsBlock(*t))
	}
	return sb.String()
}

func totalsBlock(t reports.ManagerTotals) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b>\n", t.Name)
	fmt.Fprintf(&sb, "Перезвоны: %d / %d (%s)\n",
		t.CallsFact, t.CallsPlan, slides.FormatPercent(t.CallsPercent(), t.CallsPlan > 0))
	fmt.Fprintf(&sb, "Заявки: %d / %d шт (%s)\n",
		t.LeadsUnitsFact, t.LeadsUnitsPlan, slides.FormatPercent(t.LeadsUnitsPercent(), t.LeadsUnitsPlan > 0))
	fmt.Fprintf(&sb, "Объём: %s / %s (%s)\n",
		slides.FormatMillions(t.LeadsVolumeFact), slides.FormatMillions(t.LeadsVolumePlan),
		slides.FormatPercent(t.LeadsVolumePercent(), t.LeadsVolumePlan > 0))
	fmt.Fprintf(&sb, "Одобрено: %s · Выдано: %s\n",
		slides.FormatMillions(t.ApprovedVolume), slides.FormatMillions(t.IssuedVolume))
	fmt.Fprintf(&sb, "Новые звонки: %d / %d\n", t.NewCalls, t.NewCallsPlan)
	return sb.String()
}

// splitMessage режет длинный текст по границам строк, чтобы каждый кусок
// влезал в лимит Telegram. Сверхдлинная строка режется жёстко.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var chunks []string
	var cur strings.Builder
	for _, line := range strings.Split(text, "\n") {
		for len(line) > limit {
			if cur.Len() > 0 {
				chunks = append(chunks, strings.TrimRight(cur.String(), "\n"))
				cur.Reset()
			}
			// рез только по границе руны, иначе Telegram отвергнет битый UTF-8
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if cur.Len() > 0 && cur.Len()+len(line)+1 > limit {
			chunks = append(chunks, strings.TrimRight(cur.String(), "\n"))
			cur.Reset()
		}
		cur.WriteString(line)
		cur.WriteString("\n")
	}
	if s := strings.TrimRight(cur.String(), "\n"); s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}

// startAskAI переводит диалог в режим вопроса аналитику.
func (b *Bot) startAskAI(c tele.Context) error {
	if b.ai == nil {
		return b.send(c, ai.Unavailable)
	}
	if err := b.dialogs.Set(b.ctx(c), dialogKey(c), dialog.StateAskAI, dialog.Payload{}); err != nil {
		return b.send(c, "Не получилось. Попробуйте ещё раз.")
	}
	return b.send(c, "🤖 Задайте вопрос по показателям команды одним сообщением.", backKeyboard())
}

func (b *Bot) finishAskAI(c tele.Context, question string) error {
	_ = b.dialogs.Reset(b.ctx(c), dialogKey(c))

	s, e := timeutil.WeekRange(time.Now().In(b.loc))
	rows, err := b.sheets.ReportsInRange(b.ctx(c), s, e)
	if err != nil {
		b.log.Error("ask ai fetch failed", "error", err)
		return b.send(c, "Не удалось прочитать отчёты из таблицы. Попробуйте позже.")
	}
	team := reports.TeamTotals(reports.AggregateByManager(rows))

	answer, err := b.ai.Answer(b.ctx(c), question, team)
	if err != nil {
		b.log.Error("ask ai failed", "error", err)
		return b.send(c, "ИИ сейчас недоступен. Попробуйте позже.")
	}
	return b.send(c, answer)
}

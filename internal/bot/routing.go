package bot

import (
	"strings"

	tele "gopkg.in/telebot.v3"
)

func (b *Bot) route() {
	b.tg.Handle("/start", b.handleStart)
	b.tg.Handle("/help", b.handleHelp)
	b.tg.Handle("/menu", b.handleMenu)

	b.tg.Handle("/morning", b.handleMorning)
	b.tg.Handle("/evening", b.handleEvening)

	b.tg.Handle("/summary", b.handleSummary)
	b.tg.Handle("/summary_range", b.handleSummaryRange)
	b.tg.Handle("/export", b.handleExport)
	b.tg.Handle("/slides_range", b.handleSlidesRange)

	b.tg.Handle("/bind_manager", b.handleBindManager)
	b.tg.Handle("/set_summary_topic", b.handleSetSummaryTopic)

	b.tg.Handle(tele.OnText, b.handleText)
	b.tg.Handle(tele.OnCallback, b.handleCallback)

	// менеджер прислал фото/документ вместо числа — диалог подскажет
	b.tg.Handle(tele.OnPhoto, b.handleNonText)
	b.tg.Handle(tele.OnDocument, b.handleNonText)
	b.tg.Handle(tele.OnVoice, b.handleNonText)
	b.tg.Handle(tele.OnVideo, b.handleNonText)
	b.tg.Handle(tele.OnSticker, b.handleNonText)
}

func (b *Bot) handleStart(c tele.Context) error {
	// групповой чат запоминается: туда уходят напоминания и сводки
	if ch := c.Chat(); ch != nil && (ch.Type == tele.ChatGroup || ch.Type == tele.ChatSuperGroup) {
		if err := b.sheets.SetGroupChat(b.ctx(c), ch.ID); err != nil {
			b.log.Error("group chat register failed", "chat_id", ch.ID, "error", err)
		}
	}
	return b.send(c,
		"Привет! Я собираю утренние и вечерние отчёты менеджеров и строю сводки.\n\n"+
			"Команды: /morning, /evening, /summary, /menu, /help.",
		mainMenuKeyboard())
}

func (b *Bot) handleHelp(c tele.Context) error {
	return b.send(c,
		"<b>Команды</b>\n"+
			"/morning — утренний отчёт (план на день)\n"+
			"/evening — вечерний отчёт (факт за день)\n"+
			"/summary [ГГГГ-ММ-ДД] [офис] — сводка за день, опционально по офису\n"+
			"/summary_range 2025-01-01 2025-01-31 — сводка за период\n"+
			"/export [ГГГГ-ММ-ДД ГГГГ-ММ-ДД] — выгрузка отчётов в Excel\n"+
			"/slides_range 2025-01-01 2025-01-31 — презентация за период\n"+
			"/bind_manager Имя — привязать тему к менеджеру\n"+
			"/set_summary_topic — публиковать сводки в эту тему\n"+
			"/menu — меню с кнопками")
}

// handleMenu показывает меню по контексту: в теме менеджера — только
// отчётные кнопки, в остальных — полное меню.
func (b *Bot) handleMenu(c tele.Context) error {
	if manager, err := b.managerForTopic(c); err == nil && manager != "" {
		return b.send(c, "Тема менеджера: "+manager+". Что сдаём?", reportKeyboard())
	}
	return b.send(c, "Что делаем?", mainMenuKeyboard())
}

func (b *Bot) handleCallback(c tele.Context) error {
	data := strings.TrimPrefix(strings.TrimSpace(c.Callback().Data), "\f")
	defer func() {
		_ = c.Respond(&tele.CallbackResponse{})
	}()

	switch data {
	case cbMorningReport:
		return b.handleMorning(c)
	case cbEveningReport:
		return b.handleEvening(c)
	case cbSummaryToday:
		return b.sendSummaryForRange(c, b.todayRange())
	case cbSummaryWeek, cbSummaryMonth, cbSummaryQuarter:
		return b.sendSummaryForRange(c, b.periodRange(data))
	case cbPresentationWeek, cbPresentationMonth, cbPresentationQuarter:
		return b.sendPresentation(c, b.periodRange(data))
	case cbAskAI:
		return b.startAskAI(c)
	case cbSetupTopic:
		return b.handleSetSummaryTopic(c)
	case cbAdminBack:
		return b.handleMenu(c)
	default:
		b.log.Warn("unknown callback", "data", data)
		return nil
	}
}

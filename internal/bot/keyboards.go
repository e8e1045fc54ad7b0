package bot

import tele "gopkg.in/telebot.v3"

// данные callback-кнопок
const (
	cbMorningReport = "morning_report"
	cbEveningReport = "evening_report"

	cbSummaryToday   = "summary_today"
	cbSummaryWeek    = "summary_week"
	cbSummaryMonth   = "summary_month"
	cbSummaryQuarter = "summary_quarter"

	cbPresentationWeek    = "presentation_week"
	cbPresentationMonth   = "presentation_month"
	cbPresentationQuarter = "presentation_quarter"

	cbAskAI      = "ask_ai"
	cbSetupTopic = "setup_topic"
	cbAdminBack  = "admin_back"
)

func btn(text, data string) tele.InlineButton {
	return tele.InlineButton{Text: text, Data: data}
}

func mainMenuKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{btn("🌅 Утренний отчёт", cbMorningReport), btn("🌇 Вечерний отчёт", cbEveningReport)},
		{btn("📊 Сводка за сегодня", cbSummaryToday)},
		{btn("📅 Неделя", cbSummaryWeek), btn("🗓 Месяц", cbSummaryMonth), btn("📈 Квартал", cbSummaryQuarter)},
		{btn("🖼 Презентация: неделя", cbPresentationWeek)},
		{btn("🖼 Месяц", cbPresentationMonth), btn("🖼 Квартал", cbPresentationQuarter)},
		{btn("🤖 Спросить ИИ", cbAskAI)},
		{btn("⚙️ Настроить тему сводок", cbSetupTopic)},
	}}
}

func reportKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{btn("🌅 Утренний отчёт", cbMorningReport), btn("🌇 Вечерний отчёт", cbEveningReport)},
	}}
}

func backKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{btn("⬅️ Назад", cbAdminBack)},
	}}
}

package bot

import (
	"slices"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/Vantorrr/otchet/internal/dialog"
	"github.com/Vantorrr/otchet/internal/domain/reports"
	"github.com/Vantorrr/otchet/internal/timeutil"
)

// Отчётные диалоги. Каждый вопрос — одно состояние; ответы копятся в
// payload и пишутся в таблицу одним вызовом после последнего вопроса.

func (b *Bot) handleMorning(c tele.Context) error {
	manager, err := b.managerForTopic(c)
	if err != nil {
		return b.send(c, "Не удалось прочитать привязки тем. Попробуйте позже.")
	}
	if manager == "" {
		return b.send(c, "Эта тема не привязана к менеджеру. Сначала выполните /bind_manager Имя.")
	}

	key := dialogKey(c)
	if err := b.dialogs.Set(b.ctx(c), key, dialog.StateMorningCallsPlanned, dialog.Payload{
		"manager": manager,
	}); err != nil {
		return b.send(c, "Не получилось начать отчёт. Попробуйте ещё раз.")
	}
	return b.send(c, "🌅 Утренний отчёт для "+manager+".\n\nСколько перезвонов запланировано на сегодня?")
}

func (b *Bot) handleEvening(c tele.Context) error {
	manager, err := b.managerForTopic(c)
	if err != nil {
		return b.send(c, "Не удалось прочитать привязки тем. Попробуйте позже.")
	}
	if manager == "" {
		return b.send(c, "Эта тема не привязана к менеджеру. Сначала выполните /bind_manager Имя.")
	}

	key := dialogKey(c)
	if err := b.dialogs.Set(b.ctx(c), key, dialog.StateEveningCallsSuccess, dialog.Payload{
		"manager": manager,
	}); err != nil {
		return b.send(c, "Не получилось начать отчёт. Попробуйте ещё раз.")
	}
	return b.send(c, "🌇 Вечерний отчёт для "+manager+".\n\nСколько было успешных перезвонов?")
}

// handleText — шаг активного диалога; вне диалога текст игнорируется.
func (b *Bot) handleText(c tele.Context) error {
	key := dialogKey(c)
	item, err := b.dialogs.Get(b.ctx(c), key)
	if err != nil || item.State == dialog.StateIdle {
		return nil
	}

	text := strings.TrimSpace(c.Text())

	if item.State == dialog.StateAskAI {
		return b.finishAskAI(c, text)
	}

	next, prompt, done := b.advanceReport(c, item, text)
	if prompt != "" && !done {
		if next != "" {
			_ = b.dialogs.Set(b.ctx(c), key, next, item.Payload)
		}
		return b.send(c, prompt)
	}
	return nil
}

// handleNonText — менеджер прислал фото/файл посреди диалога.
func (b *Bot) handleNonText(c tele.Context) error {
	item, err := b.dialogs.Get(b.ctx(c), dialogKey(c))
	if err != nil || item.State == dialog.StateIdle {
		return nil
	}
	return b.send(c, "Нужно число, а не вложение. Введите значение цифрами.")
}

// advanceReport обрабатывает ответ на текущий вопрос. Возвращает следующее
// состояние, текст следующего вопроса и признак завершения диалога.
func (b *Bot) advanceReport(c tele.Context, item *dialog.Item, text string) (dialog.State, string, bool) {
	key := item.Key

	askInt := func(field string, next dialog.State, prompt string) (dialog.State, string, bool) {
		n, err := strconv.Atoi(text)
		if err != nil || n < 0 {
			return "", "Нужно целое неотрицательное число. Попробуйте ещё раз.", false
		}
		item.Payload[field] = n
		return next, prompt, false
	}
	askFloat := func(field string, next dialog.State, prompt string) (dialog.State, string, bool) {
		f, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
		if err != nil || f < 0 {
			return "", "Нужно число (можно с запятой), например 12,5. Попробуйте ещё раз.", false
		}
		item.Payload[field] = f
		return next, prompt, false
	}

	switch item.State {
	case dialog.StateMorningCallsPlanned:
		return askInt("calls_planned", dialog.StateMorningLeadsUnits,
			"Сколько заявок планируете завести (шт)?")
	case dialog.StateMorningLeadsUnits:
		return askInt("leads_units", dialog.StateMorningLeadsVolume,
			"На какой объём (млн)?")
	case dialog.StateMorningLeadsVolume:
		return askFloat("leads_volume", dialog.StateMorningNewCallsPlanned,
			"Сколько новых звонков запланировано?")
	case dialog.StateMorningNewCallsPlanned:
		n, err := strconv.Atoi(text)
		if err != nil || n < 0 {
			return "", "Нужно целое неотрицательное число. Попробуйте ещё раз.", false
		}
		item.Payload["new_calls_planned"] = n
		b.saveMorning(c, key, item.Payload)
		return "", "", true

	case dialog.StateEveningCallsSuccess:
		return askInt("calls_success", dialog.StateEveningLeadsUnits,
			"Сколько заявок заведено (шт)?")
	case dialog.StateEveningLeadsUnits:
		return askInt("ev_leads_units", dialog.StateEveningLeadsVolume,
			"На какой объём (млн)?")
	case dialog.StateEveningLeadsVolume:
		return askFloat("ev_leads_volume", dialog.StateEveningApprovedVolume,
			"Сколько одобрено (млн)?")
	case dialog.StateEveningApprovedVolume:
		return askFloat("approved_volume", dialog.StateEveningIssuedVolume,
			"Сколько выдано (млн)?")
	case dialog.StateEveningIssuedVolume:
		return askFloat("issued_volume", dialog.StateEveningNewCalls,
			"Сколько новых звонков сделано?")
	case dialog.StateEveningNewCalls:
		n, err := strconv.Atoi(text)
		if err != nil || n < 0 {
			return "", "Нужно целое неотрицательное число. Попробуйте ещё раз.", false
		}
		item.Payload["ev_new_calls"] = n
		b.saveEvening(c, key, item.Payload)
		return "", "", true
	}
	return "", "", false
}

func (b *Bot) saveMorning(c tele.Context, key dialog.Key, p dialog.Payload) {
	manager, _ := dialog.GetString(p, "manager")
	calls, _ := dialog.GetInt(p, "calls_planned")
	units, _ := dialog.GetInt(p, "leads_units")
	volume, _ := dialog.GetFloat(p, "leads_volume")
	newCalls, _ := dialog.GetInt(p, "new_calls_planned")

	morning := &reports.MorningData{
		CallsPlanned:       calls,
		LeadsUnitsPlanned:  units,
		LeadsVolumePlanned: volume,
		NewCallsPlanned:    newCalls,
	}
	date := timeutil.Today(b.loc)
	office := b.offices.ByChat(key.ChatID)

	_ = b.dialogs.Reset(b.ctx(c), key)
	if err := b.sheets.UpsertReport(b.ctx(c), date, manager, office, morning, nil); err != nil {
		b.log.Error("morning report save failed", "manager", manager, "error", err)
		_ = b.send(c, "Не удалось сохранить отчёт в таблицу. Попробуйте позже.")
		return
	}
	_ = b.send(c, "✅ Утренний отчёт сохранён. Хорошего дня, "+manager+"!")
}

func (b *Bot) saveEvening(c tele.Context, key dialog.Key, p dialog.Payload) {
	manager, _ := dialog.GetString(p, "manager")
	calls, _ := dialog.GetInt(p, "calls_success")
	units, _ := dialog.GetInt(p, "ev_leads_units")
	volume, _ := dialog.GetFloat(p, "ev_leads_volume")
	approved, _ := dialog.GetFloat(p, "approved_volume")
	issued, _ := dialog.GetFloat(p, "issued_volume")
	newCalls, _ := dialog.GetInt(p, "ev_new_calls")

	evening := &reports.EveningData{
		CallsSuccess:   calls,
		LeadsUnits:     units,
		LeadsVolume:    volume,
		ApprovedVolume: approved,
		IssuedVolume:   issued,
		NewCalls:       newCalls,
	}
	date := timeutil.Today(b.loc)
	office := b.offices.ByChat(key.ChatID)

	_ = b.dialogs.Reset(b.ctx(c), key)
	if err := b.sheets.UpsertReport(b.ctx(c), date, manager, office, nil, evening); err != nil {
		b.log.Error("evening report save failed", "manager", manager, "error", err)
		_ = b.send(c, "Не удалось сохранить отчёт в таблицу. Попробуйте позже.")
		return
	}
	_ = b.send(c, "✅ Вечерний отчёт сохранён. Спасибо, "+manager+"!")
}

// managerForTopic находит менеджера по привязке текущей темы.
func (b *Bot) managerForTopic(c tele.Context) (string, error) {
	return b.sheets.ManagerByTopic(b.ctx(c), topicID(c))
}

// inForumTopic отличает сообщение из темы форума от обычного чата.
// Привязки с темой 0 недопустимы: такая запись перехватывала бы весь
// трафик чата вне тем.
func inForumTopic(topic int) bool {
	return topic > 0
}

func (b *Bot) handleBindManager(c tele.Context) error {
	if !inForumTopic(topicID(c)) {
		return b.send(c, "Команда работает только внутри темы форума. Откройте тему менеджера и повторите.")
	}
	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return b.send(c, "Укажите имя: /bind_manager Анна")
	}
	if len(b.cfg.Managers) > 0 && !slices.Contains(b.cfg.Managers, name) {
		return b.send(c, "Неизвестный менеджер «"+name+"». Доступны: "+strings.Join(b.cfg.Managers, ", "))
	}
	if err := b.sheets.SetManagerBinding(b.ctx(c), topicID(c), name); err != nil {
		b.log.Error("bind manager failed", "manager", name, "error", err)
		return b.send(c, "Не удалось сохранить привязку. Попробуйте позже.")
	}
	return b.send(c, "✅ Тема привязана к менеджеру: "+name)
}

func (b *Bot) handleSetSummaryTopic(c tele.Context) error {
	if !inForumTopic(topicID(c)) {
		return b.send(c, "Команда работает только внутри темы форума. Откройте тему для сводок и повторите.")
	}
	if err := b.sheets.SetSummaryTopic(b.ctx(c), c.Chat().ID, topicID(c)); err != nil {
		b.log.Error("set summary topic failed", "error", err)
		return b.send(c, "Не удалось сохранить настройку. Попробуйте позже.")
	}
	return b.send(c, "✅ Сводки будут публиковаться в этой теме.")
}

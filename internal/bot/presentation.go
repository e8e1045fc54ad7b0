package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/Vantorrr/otchet/internal/domain/reports"
	"github.com/Vantorrr/otchet/internal/slides"
	"github.com/Vantorrr/otchet/internal/timeutil"
)

// handleSlidesRange — /slides_range <начало> <конец>.
func (b *Bot) handleSlidesRange(c tele.Context) error {
	args := strings.Fields(c.Message().Payload)
	if len(args) != 2 {
		return b.send(c, "Нужны две даты: /slides_range 2025-01-01 2025-01-31")
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
	return b.sendPresentation(c, period{start: start, end: end, label: start + " — " + end})
}

func (b *Bot) sendPresentation(c tele.Context, p period) error {
	if b.slides == nil {
		return b.send(c, "Презентации не настроены.")
	}
	_ = b.send(c, "⏳ Собираю презентацию за "+p.label+"…")

	rows, err := b.sheets.ReportsInRange(b.ctx(c), p.start, p.end)
	if err != nil {
		b.log.Error("presentation fetch failed", "error", err)
		return b.send(c, "Не удалось прочитать отчёты из таблицы. Попробуйте позже.")
	}
	if len(rows) == 0 {
		return b.send(c, "Нет данных за выбранный период, презентацию строить не из чего.")
	}

	// прошлый период той же длины для сравнения; его отсутствие не мешает
	var prevRows []reports.Report
	if ps, pe, err := timeutil.PrevRange(p.start, p.end); err == nil {
		prevRows, err = b.sheets.ReportsInRange(b.ctx(c), ps, pe)
		if err != nil {
			b.log.Warn("prev period fetch failed", "error", err)
			prevRows = nil
		}
	}

	deck := b.buildDeck(c, rows, prevRows, p)
	id, url, err := b.slides.Create(b.ctx(c), deck)
	if err != nil {
		b.log.Error("presentation create failed", "error", err)
		return b.send(c, "Не удалось создать презентацию. Попробуйте позже.")
	}
	_ = b.send(c, "🖼 Презентация готова:\n"+url)

	// PDF-копия тем же сообщением в чат; без неё ссылка всё равно ушла
	pdf, err := b.slides.ExportPDF(b.ctx(c), id)
	if err != nil {
		b.log.Warn("pdf export failed", "presentation_id", id, "error", err)
		return nil
	}
	defer pdf.Close()
	return b.send(c, &tele.Document{
		File:     tele.FromReader(pdf),
		FileName: "presentation_" + p.start + "_" + p.end + ".pdf",
	})
}

// teamCards собирает карточки командного слайда; по объёмам без плана
// подставляется сравнение с прошлым периодом.
func teamCards(team, prev reports.ManagerTotals) []slides.MetricCard {
	prevNote := func(v float64) string {
		if v == 0 {
			return ""
		}
		return "пред. период: " + slides.FormatMillions(v)
	}
	return []slides.MetricCard{
		{
			Label: "Перезвоны",
			Value: slides.PlanFact(slides.FormatInt(team.CallsFact), slides.FormatInt(team.CallsPlan)),
			Sub:   slides.FormatPercent(team.CallsPercent(), team.CallsPlan > 0),
		},
		{
			Label: "Заявки, шт",
			Value: slides.PlanFact(slides.FormatInt(team.LeadsUnitsFact), slides.FormatInt(team.LeadsUnitsPlan)),
			Sub:   slides.FormatPercent(team.LeadsUnitsPercent(), team.LeadsUnitsPlan > 0),
		},
		{
			Label: "Объём заявок",
			Value: slides.PlanFact(slides.FormatMillions(team.LeadsVolumeFact), slides.FormatMillions(team.LeadsVolumePlan)),
			Sub:   slides.FormatPercent(team.LeadsVolumePercent(), team.LeadsVolumePlan > 0),
		},
		{Label: "Одобрено", Value: slides.FormatMillions(team.ApprovedVolume), Sub: prevNote(prev.ApprovedVolume)},
		{Label: "Выдано", Value: slides.FormatMillions(team.IssuedVolume), Sub: prevNote(prev.IssuedVolume)},
		{
			Label: "Новые звонки",
			Value: slides.PlanFact(slides.FormatInt(team.NewCalls), slides.FormatInt(team.NewCallsPlan)),
		},
	}
}

// dailyLines — строки слайда динамики, день за днём.
func dailyLines(points []reports.DailyPoint) []string {
	var out []string
	for _, pt := range points {
		out = append(out, fmt.Sprintf("%s — перезвоны %d, заявки %d шт, объём %s",
			pt.Date, pt.CallsFact, pt.LeadsUnitsFact, slides.FormatMillions(pt.LeadsVolumeFact)))
	}
	return out
}

// слайд динамики рисуется только для периодов до месяца: на квартале
// девяносто строк не читаются
const maxDailyLines = 31

// buildDeck превращает отчёты периода в содержимое презентации.
// Комментарии ИИ необязательны: их отсутствие не мешает сборке.
func (b *Bot) buildDeck(c tele.Context, rows, prevRows []reports.Report, p period) slides.Deck {
	byManager := reports.AggregateByManager(rows)
	team := reports.TeamTotals(byManager)
	prevTeam := reports.TeamTotals(reports.AggregateByManager(prevRows))

	deck := slides.Deck{
		Title:     "Итоги отдела продаж",
		Subtitle:  "Период: " + p.label,
		TeamCards: teamCards(team, prevTeam),
	}
	if points := reports.DailySeries(rows, p.start, p.end); len(points) > 0 && len(points) <= maxDailyLines {
		deck.DailyLines = dailyLines(points)
	}

	for _, t := range reports.SortedManagers(byManager) {
		ms := slides.ManagerSlide{
			Name: t.Name,
			Lines: []string{
				"Перезвоны: " + slides.FormatInt(t.CallsFact) + " / " + slides.FormatInt(t.CallsPlan) +
					" (" + slides.FormatPercent(t.CallsPercent(), t.CallsPlan > 0) + ")",
				"Заявки: " + slides.FormatInt(t.LeadsUnitsFact) + " / " + slides.FormatInt(t.LeadsUnitsPlan) + " шт" +
					" (" + slides.FormatPercent(t.LeadsUnitsPercent(), t.LeadsUnitsPlan > 0) + ")",
				"Объём: " + slides.FormatMillions(t.LeadsVolumeFact) + " / " + slides.FormatMillions(t.LeadsVolumePlan) +
					" (" + slides.FormatPercent(t.LeadsVolumePercent(), t.LeadsVolumePlan > 0) + ")",
				"Одобрено: " + slides.FormatMillions(t.ApprovedVolume),
				"Выдано: " + slides.FormatMillions(t.IssuedVolume),
				"Новые звонки: " + slides.FormatInt(t.NewCalls) + " / " + slides.FormatInt(t.NewCallsPlan),
			},
		}
		if b.ai != nil {
			if comment, err := b.ai.ManagerComment(b.ctx(c), p.label, *t); err == nil {
				ms.Comment = comment
			} else {
				b.log.Warn("manager comment failed", "manager", t.Name, "error", err)
			}
		}
		deck.ManagerSlides = append(deck.ManagerSlides, ms)
	}

	if b.ai != nil {
		if comment, err := b.ai.TeamComment(b.ctx(c), p.label, team); err == nil {
			deck.AIComment = comment
		} else {
			b.log.Warn("team comment failed", "error", err)
		}
	}
	return deck
}

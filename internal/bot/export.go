package bot

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	tele "gopkg.in/telebot.v3"

	"github.com/Vantorrr/otchet/internal/domain/reports"
	"github.com/Vantorrr/otchet/internal/timeutil"
)

// handleExport — /export [начало конец], по умолчанию текущий месяц.
// Файл уходит ответом в тот же чат.
func (b *Bot) handleExport(c tele.Context) error {
	args := strings.Fields(c.Message().Payload)
	var p period
	switch len(args) {
	case 0:
		s, e := timeutil.MonthRange(time.Now().In(b.loc))
		p = period{start: s, end: e, label: s + " — " + e}
	case 2:
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
		p = period{start: start, end: end, label: start + " — " + end}
	default:
		return b.send(c, "Формат: /export или /export 2025-01-01 2025-01-31")
	}

	rows, err := b.sheets.ReportsInRange(b.ctx(c), p.start, p.end)
	if err != nil {
		b.log.Error("export fetch failed", "error", err)
		return b.send(c, "Не удалось прочитать отчёты из таблицы. Попробуйте позже.")
	}
	if len(rows) == 0 {
		return b.send(c, "Нет данных за выбранный период.")
	}

	buf, err := buildExportWorkbook(rows)
	if err != nil {
		b.log.Error("export build failed", "error", err)
		return b.send(c, "Не удалось собрать файл выгрузки.")
	}

	name := fmt.Sprintf("reports_%s_%s.xlsx", p.start, p.end)
	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(buf.Bytes())),
		FileName: name,
	}
	return b.send(c, doc)
}

// buildExportWorkbook — лист «Отчёты»: строка на отчёт, русские заголовки.
func buildExportWorkbook(rows []reports.Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Отчёты"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Дата", "Менеджер", "Офис",
		"План перезвонов", "План заявок, шт", "План объёма, млн", "План новых звонков",
		"Успешные перезвоны", "Заявки, шт", "Объём заявок, млн",
		"Одобрено, млн", "Выдано, млн", "Новые звонки",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rowNum, r := range rows {
		values := []any{
			r.Date, r.Manager, r.Office,
			r.Morning.CallsPlanned, r.Morning.LeadsUnitsPlanned, r.Morning.LeadsVolumePlanned, r.Morning.NewCallsPlanned,
			r.Evening.CallsSuccess, r.Evening.LeadsUnits, r.Evening.LeadsVolume,
			r.Evening.ApprovedVolume, r.Evening.IssuedVolume, r.Evening.NewCalls,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

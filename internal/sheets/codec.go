package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Vantorrr/otchet/internal/domain/reports"
)

// Листы таблицы и их заголовки. Порядок колонок Reports фиксирован:
// по нему же строки разбираются обратно.
const (
	ReportsSheet  = "Reports"
	BindingsSheet = "Bindings"
	ConfigSheet   = "Config"
)

var (
	ReportHeaders = []string{
		"date",
		"manager",
		"office",
		"morning_calls_planned",
		"morning_leads_planned_units",
		"morning_leads_planned_volume",
		"morning_new_calls_planned",
		"evening_calls_success",
		"evening_leads_units",
		"evening_leads_volume",
		"evening_approved_volume",
		"evening_issued_volume",
		"evening_new_calls",
	}
	BindingHeaders = []string{"topic_id", "manager"}
	ConfigHeaders  = []string{"key", "value"}
)

// ключи листа Config
const (
	keySummaryTopic = "summary_topic_id"
	keyGroupChat    = "group_chat_id"
)

func cellString(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func cellInt(v any) int {
	s := cellString(v)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Sheets может отдать целое как "12.0"
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return int(f)
	}
	return 0
}

func cellFloat(v any) float64 {
	s := cellString(v)
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return f
	}
	return 0
}

// normalizeCellDate приводит дату из ячейки к YYYY-MM-DD.
// Помимо текстовых форматов понимает серийные номера Sheets
// (дни от 1899-12-30). Нераспознанное значение — пустая строка.
func normalizeCellDate(v any) string {
	s := cellString(v)
	if s == "" {
		return ""
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && n > 40000 {
		epoch := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
		return epoch.AddDate(0, 0, int(n)).Format("2006-01-02")
	}
	layouts := []string{
		"2006-01-02", "02.01.2006", "2006/01/02", "02/01/2006",
		"2006-01-02 15:04:05", "02.01.2006 15:04:05",
		"02.01.06", "02-01-2006", "2006.01.02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// rowToReport разбирает строку листа Reports. Неполные строки добиваются
// пустыми ячейками, лишние колонки игнорируются.
func rowToReport(row []any) (reports.Report, bool) {
	get := func(i int) any {
		if i < len(row) {
			return row[i]
		}
		return nil
	}
	date := normalizeCellDate(get(0))
	manager := cellString(get(1))
	if date == "" || manager == "" {
		return reports.Report{}, false
	}
	return reports.Report{
		Date:    date,
		Manager: manager,
		Office:  cellString(get(2)),
		Morning: reports.MorningData{
			CallsPlanned:       cellInt(get(3)),
			LeadsUnitsPlanned:  cellInt(get(4)),
			LeadsVolumePlanned: cellFloat(get(5)),
			NewCallsPlanned:    cellInt(get(6)),
		},
		Evening: reports.EveningData{
			CallsSuccess:   cellInt(get(7)),
			LeadsUnits:     cellInt(get(8)),
			LeadsVolume:    cellFloat(get(9)),
			ApprovedVolume: cellFloat(get(10)),
			IssuedVolume:   cellFloat(get(11)),
			NewCalls:       cellInt(get(12)),
		},
	}, true
}

func reportToRow(r reports.Report) []any {
	return []any{
		r.Date,
		r.Manager,
		r.Office,
		r.Morning.CallsPlanned,
		r.Morning.LeadsUnitsPlanned,
		r.Morning.LeadsVolumePlanned,
		r.Morning.NewCallsPlanned,
		r.Evening.CallsSuccess,
		r.Evening.LeadsUnits,
		r.Evening.LeadsVolume,
		r.Evening.ApprovedVolume,
		r.Evening.IssuedVolume,
		r.Evening.NewCalls,
	}
}

// findReportRow ищет строку по (дата, менеджер) среди строк данных
// (без заголовка). Возвращает индекс в rows или -1.
func findReportRow(rows [][]any, date, manager string) int {
	for i, row := range rows {
		r, ok := rowToReport(row)
		if !ok {
			continue
		}
		if r.Date == date && r.Manager == manager {
			return i
		}
	}
	return -1
}

// mergeReport накладывает новые половины отчёта на существующую строку.
// nil-половина не трогает сохранённые значения, офис перезаписывается
// только непустым.
func mergeReport(existing reports.Report, date, manager, office string, morning *reports.MorningData, evening *reports.EveningData) reports.Report {
	out := existing
	out.Date = date
	out.Manager = manager
	if office != "" {
		out.Office = office
	}
	if morning != nil {
		out.Morning = *morning
	}
	if evening != nil {
		out.Evening = *evening
	}
	return out
}

// findBindingRow ищет привязку темы среди строк данных листа Bindings.
func findBindingRow(rows [][]any, topicID int) int {
	want := strconv.Itoa(topicID)
	for i, row := range rows {
		if len(row) > 0 && cellString(row[0]) == want {
			return i
		}
	}
	return -1
}

// findConfigRow ищет ключ среди строк данных листа Config.
func findConfigRow(rows [][]any, key string) int {
	for i, row := range rows {
		if len(row) > 0 && cellString(row[0]) == key {
			return i
		}
	}
	return -1
}

// groupChatFromConfig возвращает зарегистрированный групповой чат или 0.
// Для напоминаний достаточно одного /start: тема сводок не обязательна.
func groupChatFromConfig(rows [][]any) int64 {
	idx := findConfigRow(rows, keyGroupChat)
	if idx < 0 || len(rows[idx]) < 2 {
		return 0
	}
	id, err := strconv.ParseInt(cellString(rows[idx][1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// summaryTopicFromConfig возвращает (чат, тема) для публикации сводок.
// Здесь нужны оба ключа: без чата тема бессмысленна.
func summaryTopicFromConfig(rows [][]any) (int64, int) {
	chatID := groupChatFromConfig(rows)
	idx := findConfigRow(rows, keySummaryTopic)
	if chatID == 0 || idx < 0 || len(rows[idx]) < 2 {
		return 0, 0
	}
	topic, err := strconv.Atoi(cellString(rows[idx][1]))
	if err != nil {
		return 0, 0
	}
	return chatID, topic
}

// columnName переводит количество колонок в буквенную границу диапазона (1 -> A, 13 -> M).
func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}

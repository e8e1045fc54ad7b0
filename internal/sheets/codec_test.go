package sheets

import (
	"testing"

	"github.com/Vantorrr/otchet/internal/domain/reports"
)

func TestRowToReportRoundTrip(t *testing.T) {
	r := reports.Report{
		Date: "2025-01-15", Manager: "Анна", Office: "Офис 4",
		Morning: reports.MorningData{CallsPlanned: 10, LeadsUnitsPlanned: 2, LeadsVolumePlanned: 2.5, NewCallsPlanned: 5},
		Evening: reports.EveningData{CallsSuccess: 8, LeadsUnits: 1, LeadsVolume: 1.5, ApprovedVolume: 0.5, IssuedVolume: 0.2, NewCalls: 4},
	}
	got, ok := rowToReport(reportToRow(r))
	if !ok {
		t.Fatal("строка не разобралась")
	}
	if got != r {
		t.Errorf("получено %+v, ожидалось %+v", got, r)
	}
}

func TestRowToReportTolerant(t *testing.T) {
	// короткая строка: только утренняя половина
	r, ok := rowToReport([]any{"2025-01-15", "Анна", "Офис 4", "10", "2", "2,5"})
	if !ok {
		t.Fatal("короткая строка должна разбираться")
	}
	if r.Morning.CallsPlanned != 10 || r.Morning.LeadsVolumePlanned != 2.5 {
		t.Errorf("утро: %+v", r.Morning)
	}
	if r.Evening != (reports.EveningData{}) {
		t.Errorf("вечер должен быть нулевым: %+v", r.Evening)
	}

	// дата в русском формате и целое как "8.0"
	r, ok = rowToReport([]any{"15.01.2025", "Анна", "", "", "", "", "", "8.0"})
	if !ok || r.Date != "2025-01-15" || r.Evening.CallsSuccess != 8 {
		t.Errorf("разбор: ok=%v, %+v", ok, r)
	}

	// мусорные строки пропускаются
	for _, row := range [][]any{
		{},
		{"2025-01-15"},              // нет менеджера
		{"не дата", "Анна"},         // кривая дата
		{"", "Анна", "Офис 4"},      // пустая дата
	} {
		if _, ok := rowToReport(row); ok {
			t.Errorf("строка %v не должна разбираться", row)
		}
	}
}

func TestNormalizeCellDateSerial(t *testing.T) {
	// 45672 дня от 1899-12-30 = 2025-01-15
	if got := normalizeCellDate("45672"); got != "2025-01-15" {
		t.Errorf("серийная дата: %q", got)
	}
}

func TestFindReportRow(t *testing.T) {
	rows := [][]any{
		reportToRow(reports.Report{Date: "2025-01-14", Manager: "Анна"}),
		reportToRow(reports.Report{Date: "2025-01-15", Manager: "Анна"}),
		reportToRow(reports.Report{Date: "2025-01-15", Manager: "Борис"}),
	}
	if got := findReportRow(rows, "2025-01-15", "Анна"); got != 1 {
		t.Errorf("индекс: %d", got)
	}
	if got := findReportRow(rows, "2025-01-16", "Анна"); got != -1 {
		t.Errorf("отсутствующая строка: %d", got)
	}
}

func TestMergeReportKeepsOtherHalf(t *testing.T) {
	existing := reports.Report{
		Date: "2025-01-15", Manager: "Анна", Office: "Офис 4",
		Morning: reports.MorningData{CallsPlanned: 10, LeadsVolumePlanned: 2.0},
	}
	evening := &reports.EveningData{CallsSuccess: 8, LeadsVolume: 1.5}

	got := mergeReport(existing, "2025-01-15", "Анна", "", nil, evening)
	if got.Morning.CallsPlanned != 10 || got.Morning.LeadsVolumePlanned != 2.0 {
		t.Errorf("утро затёрто: %+v", got.Morning)
	}
	if got.Evening.CallsSuccess != 8 {
		t.Errorf("вечер не записан: %+v", got.Evening)
	}
	if got.Office != "Офис 4" {
		t.Errorf("пустой офис не должен затирать сохранённый: %q", got.Office)
	}

	// повторная утренняя запись перезаписывает утро целиком
	morning := &reports.MorningData{CallsPlanned: 12}
	got = mergeReport(got, "2025-01-15", "Анна", "Руководительская", morning, nil)
	if got.Morning.CallsPlanned != 12 || got.Morning.LeadsVolumePlanned != 0 {
		t.Errorf("утро после перезаписи: %+v", got.Morning)
	}
	if got.Evening.CallsSuccess != 8 {
		t.Errorf("вечер затёрт: %+v", got.Evening)
	}
	if got.Office != "Руководительская" {
		t.Errorf("офис: %q", got.Office)
	}
}

func TestFindBindingRowLastWriteWins(t *testing.T) {
	rows := [][]any{
		{"101", "Анна"},
		{"102", "Борис"},
	}
	idx := findBindingRow(rows, 101)
	if idx != 0 {
		t.Fatalf("индекс привязки: %d", idx)
	}
	// перепривязка пишет в ту же строку: старое значение исчезает
	rows[idx] = []any{"101", "Вера"}
	if got := cellString(rows[findBindingRow(rows, 101)][1]); got != "Вера" {
		t.Errorf("после перепривязки: %q", got)
	}
	if findBindingRow(rows, 999) != -1 {
		t.Error("отсутствующая тема должна давать -1")
	}
}

func TestFindConfigRow(t *testing.T) {
	rows := [][]any{
		{"summary_topic_id", "42"},
		{"group_chat_id", "-100123"},
	}
	if findConfigRow(rows, "group_chat_id") != 1 {
		t.Error("ключ group_chat_id не найден")
	}
	if findConfigRow(rows, "nope") != -1 {
		t.Error("отсутствующий ключ должен давать -1")
	}
}

func TestGroupChatWithoutSummaryTopic(t *testing.T) {
	// только /start в группе, /set_summary_topic не выполнялся:
	// чат для напоминаний есть, темы сводок нет
	rows := [][]any{
		{"group_chat_id", "-100123"},
	}
	if got := groupChatFromConfig(rows); got != -100123 {
		t.Errorf("групповой чат: %d", got)
	}
	if chat, topic := summaryTopicFromConfig(rows); chat != 0 || topic != 0 {
		t.Errorf("тема сводок без ключа не должна находиться: (%d, %d)", chat, topic)
	}
}

func TestSummaryTopicFromConfig(t *testing.T) {
	rows := [][]any{
		{"summary_topic_id", "42"},
		{"group_chat_id", "-100123"},
	}
	chat, topic := summaryTopicFromConfig(rows)
	if chat != -100123 || topic != 42 {
		t.Errorf("тема сводок: (%d, %d)", chat, topic)
	}

	// тема без чата бессмысленна
	if chat, topic := summaryTopicFromConfig([][]any{{"summary_topic_id", "42"}}); chat != 0 || topic != 0 {
		t.Errorf("тема без чата: (%d, %d)", chat, topic)
	}
	// мусорные значения
	if got := groupChatFromConfig([][]any{{"group_chat_id", "не число"}}); got != 0 {
		t.Errorf("кривой chat_id: %d", got)
	}
	if got := groupChatFromConfig(nil); got != 0 {
		t.Errorf("пустой конфиг: %d", got)
	}
}

func TestColumnName(t *testing.T) {
	cases := map[int]string{1: "A", 2: "B", 13: "M", 26: "Z", 27: "AA", 52: "AZ"}
	for n, want := range cases {
		if got := columnName(n); got != want {
			t.Errorf("columnName(%d) = %q, ожидалось %q", n, got, want)
		}
	}
}

package bot

import (
	"strings"
	"testing"
	"unicode/utf8"

	tele "gopkg.in/telebot.v3"

	"github.com/Vantorrr/otchet/internal/domain/reports"
)

func TestBuildSummaryTextTwoManagers(t *testing.T) {
	rows := []reports.Report{
		{
			Date: "2025-01-15", Manager: "Анна", Office: "Офис 4",
			Morning: reports.MorningData{CallsPlanned: 10, LeadsUnitsPlanned: 4, LeadsVolumePlanned: 2.0, NewCallsPlanned: 5},
			Evening: reports.EveningData{CallsSuccess: 5, LeadsUnits: 2, LeadsVolume: 1.0, ApprovedVolume: 0.5, IssuedVolume: 0.2, NewCalls: 4},
		},
		{
			Date: "2025-01-15", Manager: "Борис",
			Evening: reports.EveningData{CallsSuccess: 3, LeadsUnits: 1, LeadsVolume: 0.5},
		},
	}
	text := BuildSummaryText(rows, "2025-01-15")

	if !strings.Contains(text, "Сводка за 2025-01-15") {
		t.Error("нет заголовка периода")
	}
	// команда идёт первой
	if !strings.Contains(text, "<b>Команда</b>") {
		t.Error("нет блока команды")
	}
	if strings.Index(text, "Команда") > strings.Index(text, "Анна") {
		t.Error("команда должна идти перед менеджерами")
	}
	// у Анны выполнение 50%
	if !strings.Contains(text, "Перезвоны: 5 / 10 (50%)") {
		t.Errorf("блок Анны:\n%s", text)
	}
	// у Бориса плана нет: проценты — прочерк
	borisBlock := text[strings.Index(text, "<b>Борис</b>"):]
	if !strings.Contains(borisBlock, "Перезвоны: 3 / 0 (—)") {
		t.Errorf("блок Бориса:\n%s", borisBlock)
	}
	// менеджеры по алфавиту
	if strings.Index(text, "Анна") > strings.Index(text, "Борис") {
		t.Error("менеджеры должны идти по алфавиту")
	}
}

func TestBuildSummaryTextEmpty(t *testing.T) {
	text := BuildSummaryText(nil, "2025-01-15")
	if !strings.Contains(text, "Нет данных") {
		t.Errorf("пустой период должен давать пометку, получено:\n%s", text)
	}
	// сводка всё равно содержит нулевую строку команды
	if !strings.Contains(text, "<b>Команда</b>") {
		t.Error("нет нулевого блока команды")
	}
	if !strings.Contains(text, "Перезвоны: 0 / 0 (—)") {
		t.Errorf("нулевые показатели должны рисоваться с прочерком:\n%s", text)
	}
}

func TestSplitMessageShort(t *testing.T) {
	chunks := splitMessage("короткий текст", 4000)
	if len(chunks) != 1 || chunks[0] != "короткий текст" {
		t.Errorf("короткий текст не должен резаться: %v", chunks)
	}
}

func TestSplitMessageOnLineBoundaries(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString("строка с достаточно длинным содержимым номер такой-то\n")
	}
	text := sb.String()

	chunks := splitMessage(text, 1000)
	if len(chunks) < 2 {
		t.Fatalf("длинный текст должен резаться, кусков: %d", len(chunks))
	}
	for i, ch := range chunks {
		if len(ch) > 1000 {
			t.Errorf("кусок %d длиннее лимита: %d", i, len(ch))
		}
		if strings.HasPrefix(ch, "трока") {
			t.Errorf("кусок %d начинается с обрезанной строки", i)
		}
	}
	// ничего не потерялось
	joined := strings.Join(chunks, "\n") + "\n"
	if joined != text {
		t.Error("куски не собираются обратно в исходный текст")
	}
}

func TestSplitMessageOversizedLine(t *testing.T) {
	line := strings.Repeat("a", 2500)
	chunks := splitMessage(line, 1000)
	if len(chunks) != 3 {
		t.Fatalf("ожидалось 3 куска, получено %d", len(chunks))
	}
	for i, ch := range chunks {
		if len(ch) > 1000 {
			t.Errorf("кусок %d длиннее лимита: %d", i, len(ch))
		}
	}
}

func TestSplitMessageKeepsRunesIntact(t *testing.T) {
	// кириллица по два байта: нечётный лимит попадает в середину руны
	line := strings.Repeat("я", 1500)
	chunks := splitMessage(line, 999)
	if len(chunks) < 2 {
		t.Fatalf("длинная строка должна резаться, кусков: %d", len(chunks))
	}
	var total string
	for i, ch := range chunks {
		if !utf8.ValidString(ch) {
			t.Errorf("кусок %d содержит битый UTF-8", i)
		}
		if len(ch) > 999 {
			t.Errorf("кусок %d длиннее лимита: %d", i, len(ch))
		}
		total += ch
	}
	if total != line {
		t.Error("куски не собираются обратно в исходную строку")
	}
}

func TestParseSummaryArgs(t *testing.T) {
	cases := []struct {
		in           string
		date, office string
	}{
		{"", "", ""},
		{"2025-01-15", "2025-01-15", ""},
		{"2025-01-15 Офис 4", "2025-01-15", "Офис 4"},
		{"Офис 4", "", "Офис 4"},
		{"Руководительская", "", "Руководительская"},
		{"2025-13-40", "2025-13-40", ""}, // кривая дата уходит в проверку даты
	}
	for _, tc := range cases {
		date, office := parseSummaryArgs(tc.in)
		if date != tc.date || office != tc.office {
			t.Errorf("parseSummaryArgs(%q) = (%q, %q), ожидалось (%q, %q)",
				tc.in, date, office, tc.date, tc.office)
		}
	}
}

func TestInForumTopic(t *testing.T) {
	// сообщение вне темы форума имеет нулевой thread id
	if inForumTopic(0) {
		t.Error("нулевая тема не должна считаться темой форума")
	}
	if inForumTopic(-1) {
		t.Error("отрицательная тема не должна считаться темой форума")
	}
	if !inForumTopic(42) {
		t.Error("настоящая тема должна проходить")
	}
}

func TestSummaryDestination(t *testing.T) {
	const (
		sumChat  = int64(-100123)
		sumTopic = 42
	)
	cases := []struct {
		name     string
		chatType tele.ChatType
		curChat  int64
		curTopic int
		sumChat  int64
		redirect bool
	}{
		{"супергруппа, другая тема", tele.ChatSuperGroup, -100123, 7, sumChat, true},
		{"супергруппа, другой чат", tele.ChatSuperGroup, -100999, 0, sumChat, true},
		{"сама тема сводок", tele.ChatSuperGroup, -100123, 42, sumChat, false},
		{"личный чат", tele.ChatPrivate, 555, 0, sumChat, false},
		{"обычная группа", tele.ChatGroup, -100123, 0, sumChat, false},
		{"тема не настроена", tele.ChatSuperGroup, -100123, 7, 0, false},
	}
	for _, tc := range cases {
		chat, topic, redirect := summaryDestination(tc.chatType, tc.curChat, tc.curTopic, tc.sumChat, sumTopic)
		if redirect != tc.redirect {
			t.Errorf("%s: redirect = %v", tc.name, redirect)
			continue
		}
		if redirect && (chat != sumChat || topic != sumTopic) {
			t.Errorf("%s: направление (%d, %d)", tc.name, chat, topic)
		}
	}
}

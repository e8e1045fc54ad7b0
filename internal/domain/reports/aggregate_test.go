package reports

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// два менеджера, у каждого по два дня
func fixtureRows() []Report {
	return []Report{
		{
			Date: "2025-01-13", Manager: "Анна", Office: "Офис 4",
			Morning: MorningData{CallsPlanned: 10, LeadsUnitsPlanned: 2, LeadsVolumePlanned: 2.0, NewCallsPlanned: 5},
			Evening: EveningData{CallsSuccess: 8, LeadsUnits: 1, LeadsVolume: 1.5, ApprovedVolume: 0.5, IssuedVolume: 0.2, NewCalls: 4},
		},
		{
			Date: "2025-01-14", Manager: "Анна", Office: "Офис 4",
			Morning: MorningData{CallsPlanned: 10, LeadsUnitsPlanned: 2, LeadsVolumePlanned: 2.0, NewCallsPlanned: 5},
			Evening: EveningData{CallsSuccess: 12, LeadsUnits: 3, LeadsVolume: 2.5, ApprovedVolume: 1.0, IssuedVolume: 0.8, NewCalls: 6},
		},
		{
			Date: "2025-01-13", Manager: "Борис", Office: "Руководительская",
			Morning: MorningData{CallsPlanned: 0, LeadsUnitsPlanned: 0, LeadsVolumePlanned: 0, NewCallsPlanned: 0},
			Evening: EveningData{CallsSuccess: 5, LeadsUnits: 2, LeadsVolume: 1.0, ApprovedVolume: 0.3, IssuedVolume: 0.1, NewCalls: 2},
		},
	}
}

func TestAggregateByManager(t *testing.T) {
	totals := AggregateByManager(fixtureRows())
	if len(totals) != 2 {
		t.Fatalf("ожидалось 2 менеджера, получено %d", len(totals))
	}

	anna := totals["Анна"]
	if anna == nil {
		t.Fatal("нет агрегата для Анны")
	}
	if anna.CallsPlan != 20 || anna.CallsFact != 20 {
		t.Errorf("перезвоны Анны: план %d, факт %d", anna.CallsPlan, anna.CallsFact)
	}
	if !almostEqual(anna.CallsPercent(), 100) {
		t.Errorf("процент перезвонов Анны: %v", anna.CallsPercent())
	}
	if anna.LeadsUnitsPlan != 4 || anna.LeadsUnitsFact != 4 {
		t.Errorf("заявки Анны: план %d, факт %d", anna.LeadsUnitsPlan, anna.LeadsUnitsFact)
	}
	if !almostEqual(anna.LeadsVolumeFact, 4.0) || !almostEqual(anna.LeadsVolumePercent(), 100) {
		t.Errorf("объём Анны: %v (%v%%)", anna.LeadsVolumeFact, anna.LeadsVolumePercent())
	}

	boris := totals["Борис"]
	if boris == nil {
		t.Fatal("нет агрегата для Бориса")
	}
	// план нулевой: процент не определён и считается нулём
	if boris.CallsPercent() != 0 || boris.LeadsVolumePercent() != 0 {
		t.Errorf("проценты Бориса при нулевом плане: %v, %v", boris.CallsPercent(), boris.LeadsVolumePercent())
	}
	if boris.CallsFact != 5 {
		t.Errorf("факт перезвонов Бориса: %d", boris.CallsFact)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	totals := AggregateByManager(nil)
	if totals == nil || len(totals) != 0 {
		t.Fatalf("пустой вход должен давать пустую карту, получено %v", totals)
	}
	team := TeamTotals(totals)
	if team.CallsPlan != 0 || team.CallsFact != 0 || team.LeadsVolumeFact != 0 {
		t.Errorf("команда по пустому входу должна быть нулевой: %+v", team)
	}
}

func TestAggregateSkipsEmptyManager(t *testing.T) {
	rows := []Report{{Date: "2025-01-13", Manager: ""}}
	if got := AggregateByManager(rows); len(got) != 0 {
		t.Errorf("строка без менеджера должна пропускаться: %v", got)
	}
}

func TestTeamTotals(t *testing.T) {
	team := TeamTotals(AggregateByManager(fixtureRows()))
	if team.Name != "Команда" {
		t.Errorf("имя команды: %q", team.Name)
	}
	if team.CallsPlan != 20 || team.CallsFact != 25 {
		t.Errorf("перезвоны команды: план %d, факт %d", team.CallsPlan, team.CallsFact)
	}
	if !almostEqual(team.LeadsVolumeFact, 5.0) {
		t.Errorf("объём команды: %v", team.LeadsVolumeFact)
	}
	if !almostEqual(team.CallsPercent(), 125) {
		t.Errorf("процент команды: %v", team.CallsPercent())
	}
}

func TestSortedManagers(t *testing.T) {
	sorted := SortedManagers(AggregateByManager(fixtureRows()))
	if len(sorted) != 2 || sorted[0].Name != "Анна" || sorted[1].Name != "Борис" {
		names := make([]string, len(sorted))
		for i, s := range sorted {
			names[i] = s.Name
		}
		t.Errorf("порядок менеджеров: %v", names)
	}
}

func TestFilterOffice(t *testing.T) {
	rows := fixtureRows()
	got := FilterOffice(rows, "Офис 4")
	if len(got) != 2 {
		t.Errorf("фильтр по офису: %d строк", len(got))
	}
	if len(FilterOffice(rows, "")) != len(rows) {
		t.Error("пустой фильтр должен пропускать всё")
	}
}

func TestDailySeries(t *testing.T) {
	points := DailySeries(fixtureRows(), "2025-01-13", "2025-01-15")
	if len(points) != 3 {
		t.Fatalf("ожидалось 3 дня, получено %d", len(points))
	}
	if points[0].CallsFact != 13 { // 8 + 5
		t.Errorf("факт за 13-е: %d", points[0].CallsFact)
	}
	if points[2].CallsFact != 0 || points[2].Date != "2025-01-15" {
		t.Errorf("пустой день: %+v", points[2])
	}

	if DailySeries(nil, "2025-01-15", "2025-01-13") != nil {
		t.Error("перевёрнутый диапазон должен давать nil")
	}
}

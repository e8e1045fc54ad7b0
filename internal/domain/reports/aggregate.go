package reports

import (
	"sort"
	"time"
)

// AggregateByManager сворачивает строки в суммы план/факт по каждому менеджеру.
// Пустой вход даёт пустую карту, не ошибку.
func AggregateByManager(rows []Report) map[string]*ManagerTotals {
	totals := make(map[string]*ManagerTotals)
	for _, r := range rows {
		if r.Manager == "" {
			continue
		}
		t, ok := totals[r.Manager]
		if !ok {
			t = &ManagerTotals{Name: r.Manager}
			totals[r.Manager] = t
		}
		t.CallsPlan += r.Morning.CallsPlanned
		t.LeadsUnitsPlan += r.Morning.LeadsUnitsPlanned
		t.LeadsVolumePlan += r.Morning.LeadsVolumePlanned
		t.NewCallsPlan += r.Morning.NewCallsPlanned

		t.CallsFact += r.Evening.CallsSuccess
		t.LeadsUnitsFact += r.Evening.LeadsUnits
		t.LeadsVolumeFact += r.Evening.LeadsVolume
		t.ApprovedVolume += r.Evening.ApprovedVolume
		t.IssuedVolume += r.Evening.IssuedVolume
		t.NewCalls += r.Evening.NewCalls
	}
	return totals
}

// TeamTotals складывает агрегаты всех менеджеров в одну строку команды.
func TeamTotals(byManager map[string]*ManagerTotals) ManagerTotals {
	var team ManagerTotals
	team.Name = "Команда"
	for _, t := range byManager {
		team.CallsPlan += t.CallsPlan
		team.CallsFact += t.CallsFact
		team.LeadsUnitsPlan += t.LeadsUnitsPlan
		team.LeadsUnitsFact += t.LeadsUnitsFact
		team.LeadsVolumePlan += t.LeadsVolumePlan
		team.LeadsVolumeFact += t.LeadsVolumeFact
		team.ApprovedVolume += t.ApprovedVolume
		team.IssuedVolume += t.IssuedVolume
		team.NewCallsPlan += t.NewCallsPlan
		team.NewCalls += t.NewCalls
	}
	return team
}

// SortedManagers возвращает агрегаты в алфавитном порядке имён — для
// стабильного вывода в сводках и на слайдах.
func SortedManagers(byManager map[string]*ManagerTotals) []*ManagerTotals {
	out := make([]*ManagerTotals, 0, len(byManager))
	for _, t := range byManager {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FilterOffice оставляет строки одного офиса. Пустой фильтр пропускает всё.
func FilterOffice(rows []Report, office string) []Report {
	if office == "" {
		return rows
	}
	out := rows[:0:0]
	for _, r := range rows {
		if r.Office == office {
			out = append(out, r)
		}
	}
	return out
}

// DailySeries раскладывает строки по дням [start; end] включительно.
// Дни без отчётов присутствуют с нулями, чтобы графики не рвались.
func DailySeries(rows []Report, start, end string) []DailyPoint {
	const layout = "2006-01-02"
	s, err := time.Parse(layout, start)
	if err != nil {
		return nil
	}
	e, err := time.Parse(layout, end)
	if err != nil || e.Before(s) {
		return nil
	}

	byDay := make(map[string]*DailyPoint)
	for _, r := range rows {
		if r.Date < start || r.Date > end {
			continue
		}
		p, ok := byDay[r.Date]
		if !ok {
			p = &DailyPoint{Date: r.Date}
			byDay[r.Date] = p
		}
		p.CallsFact += r.Evening.CallsSuccess
		p.NewCalls += r.Evening.NewCalls
		p.LeadsUnitsFact += r.Evening.LeadsUnits
		p.LeadsVolumePlan += r.Morning.LeadsVolumePlanned
		p.LeadsVolumeFact += r.Evening.LeadsVolume
		p.ApprovedVolume += r.Evening.ApprovedVolume
		p.IssuedVolume += r.Evening.IssuedVolume
	}

	var out []DailyPoint
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		key := d.Format(layout)
		if p, ok := byDay[key]; ok {
			out = append(out, *p)
		} else {
			out = append(out, DailyPoint{Date: key})
		}
	}
	return out
}

package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// dateLayouts — форматы, которые встречаются в таблице и в пользовательском вводе.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2006/01/02",
	"02/01/2006",
	"2006.01.02",
	"02-01-2006",
	"02.01.06",
}

// юникодные тире, которые пользователи копируют вместо дефиса
var dashReplacer = strings.NewReplacer("–", "-", "—", "-", "−", "-", "‒", "-", "―", "-")

// ParseDate разбирает дату в одном из поддерживаемых форматов и
// нормализует её к YYYY-MM-DD. Непустая строка, которая не разобралась, — ошибка.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(dashReplacer.Replace(s))
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "", fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DayLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}

// Today возвращает сегодняшнюю дату YYYY-MM-DD в заданной зоне.
func Today(loc *time.Location) string {
	return time.Now().In(loc).Format(DayLayout)
}

// WeekRange возвращает [понедельник; воскресенье] недели, в которую попадает now.
func WeekRange(now time.Time) (string, string) {
	wd := int(now.Weekday())
	if wd == 0 {
		wd = 7 // воскресенье
	}
	start := now.AddDate(0, 0, -(wd - 1))
	end := start.AddDate(0, 0, 6)
	return start.Format(DayLayout), end.Format(DayLayout)
}

// MonthRange возвращает первый и последний день месяца, в который попадает now.
func MonthRange(now time.Time) (string, string) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1)
	return start.Format(DayLayout), end.Format(DayLayout)
}

// QuarterRange возвращает первый и последний день квартала, в который попадает now.
func QuarterRange(now time.Time) (string, string) {
	q := (int(now.Month()) - 1) / 3
	start := time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 3, -1)
	return start.Format(DayLayout), end.Format(DayLayout)
}

// PrevRange возвращает предыдущий период той же длины, заканчивающийся за день до start.
func PrevRange(start, end string) (string, string, error) {
	s, err := time.Parse(DayLayout, start)
	if err != nil {
		return "", "", err
	}
	e, err := time.Parse(DayLayout, end)
	if err != nil {
		return "", "", err
	}
	days := int(e.Sub(s).Hours()/24) + 1
	prevEnd := s.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(days - 1))
	return prevStart.Format(DayLayout), prevEnd.Format(DayLayout), nil
}

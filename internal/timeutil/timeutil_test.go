package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-01-15", "2025-01-15", false},
		{"15.01.2025", "2025-01-15", false},
		{"2025/01/15", "2025-01-15", false},
		{"15/01/2025", "2025-01-15", false},
		{"15.01.25", "2025-01-15", false},
		{"2025.01.15", "2025-01-15", false},
		{"  2025-01-15  ", "2025-01-15", false},
		{"2025—01—15", "2025-01-15", false}, // длинное тире из копипасты
		{"2025-01-15 10:30", "2025-01-15", false},
		{"", "", true},
		{"вчера", "", true},
		{"2025-13-40", "", true},
		{"15-2025-01", "", true},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q): ожидалась ошибка, получено %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %q, ожидалось %q", tc.in, got, tc.want)
		}
	}
}

func TestWeekRange(t *testing.T) {
	cases := []struct {
		now        string
		start, end string
	}{
		{"2025-01-15", "2025-01-13", "2025-01-19"}, // среда
		{"2025-01-13", "2025-01-13", "2025-01-19"}, // понедельник
		{"2025-01-19", "2025-01-13", "2025-01-19"}, // воскресенье
	}
	for _, tc := range cases {
		now, _ := time.Parse(DayLayout, tc.now)
		s, e := WeekRange(now)
		if s != tc.start || e != tc.end {
			t.Errorf("WeekRange(%s) = (%s, %s), ожидалось (%s, %s)", tc.now, s, e, tc.start, tc.end)
		}
	}
}

func TestMonthRange(t *testing.T) {
	now, _ := time.Parse(DayLayout, "2025-02-10")
	s, e := MonthRange(now)
	if s != "2025-02-01" || e != "2025-02-28" {
		t.Errorf("MonthRange = (%s, %s)", s, e)
	}
}

func TestQuarterRange(t *testing.T) {
	cases := []struct {
		now        string
		start, end string
	}{
		{"2025-02-10", "2025-01-01", "2025-03-31"},
		{"2025-05-01", "2025-04-01", "2025-06-30"},
		{"2025-12-31", "2025-10-01", "2025-12-31"},
	}
	for _, tc := range cases {
		now, _ := time.Parse(DayLayout, tc.now)
		s, e := QuarterRange(now)
		if s != tc.start || e != tc.end {
			t.Errorf("QuarterRange(%s) = (%s, %s), ожидалось (%s, %s)", tc.now, s, e, tc.start, tc.end)
		}
	}
}

func TestPrevRange(t *testing.T) {
	s, e, err := PrevRange("2025-01-13", "2025-01-19")
	if err != nil {
		t.Fatal(err)
	}
	if s != "2025-01-06" || e != "2025-01-12" {
		t.Errorf("PrevRange = (%s, %s)", s, e)
	}

	if _, _, err := PrevRange("кривая", "2025-01-19"); err == nil {
		t.Error("ожидалась ошибка на кривой дате")
	}
}

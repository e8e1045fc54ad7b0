package slides

import (
	"fmt"
	"strconv"
	"strings"
)

// Русское форматирование чисел для слайдов и сводок:
// узкий пробел между разрядами, запятая как десятичный разделитель.

const thinSpace = " "

// FormatInt — 12345 -> "12 345".
func FormatInt(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, thinSpace)
	if neg {
		out = "-" + out
	}
	return out
}

// FormatMillions — 12.5 -> "12,5 млн". Целые значения без дробной части.
func FormatMillions(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	s = strings.ReplaceAll(s, ".", ",")
	return s + " млн"
}

// FormatPercent — 87.3 -> "87%". Неопределённый процент (нулевой план)
// рисуется прочерком.
func FormatPercent(v float64, defined bool) string {
	if !defined {
		return "—"
	}
	return fmt.Sprintf("%.0f%%", v)
}

// PlanFact — "факт / план" одной строкой для карточек метрик.
func PlanFact(fact, plan string) string {
	return fact + " / " + plan
}

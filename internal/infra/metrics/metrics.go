package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otchet_reports_saved_total",
		Help: "Сохранённые отчёты по типу (morning/evening).",
	}, []string{"kind"})

	SummariesBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "otchet_summaries_built_total",
		Help: "Построенные сводки.",
	})

	DecksBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "otchet_decks_built_total",
		Help: "Собранные презентации.",
	})

	RemindersSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otchet_reminders_sent_total",
		Help: "Отправленные напоминания по типу.",
	}, []string{"kind"})

	ExternalErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otchet_external_errors_total",
		Help: "Ошибки внешних API по бэкенду (sheets/slides/drive/openai/telegram).",
	}, []string{"backend"})
)

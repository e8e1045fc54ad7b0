package dialog

type State string

const (
	StateIdle State = "idle"

	// Утренний отчёт
	StateMorningCallsPlanned    State = "morning_calls_planned"
	StateMorningLeadsUnits      State = "morning_leads_units"
	StateMorningLeadsVolume     State = "morning_leads_volume"
	StateMorningNewCallsPlanned State = "morning_new_calls_planned"

	// Вечерний отчёт
	StateEveningCallsSuccess   State = "evening_calls_success"
	StateEveningLeadsUnits     State = "evening_leads_units"
	StateEveningLeadsVolume    State = "evening_leads_volume"
	StateEveningApprovedVolume State = "evening_approved_volume"
	StateEveningIssuedVolume   State = "evening_issued_volume"
	StateEveningNewCalls       State = "evening_new_calls"

	// Вопрос аналитику
	StateAskAI State = "ask_ai"
)

type Payload map[string]any

// Key адресует диалог: один менеджер в одной теме одного чата.
type Key struct {
	ChatID  int64
	TopicID int
	UserID  int64
}

type Item struct {
	Key     Key
	State   State
	Payload Payload
}

// GetString — безопасное чтение строки из payload.
func GetString(p Payload, key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetFloat — безопасное чтение дробного числа из payload.
func GetFloat(p Payload, key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// GetInt — безопасное чтение числа из payload.
func GetInt(p Payload, key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

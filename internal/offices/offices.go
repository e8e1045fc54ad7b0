// Package offices сопоставляет чаты Telegram офисам компании.
package offices

// Unknown подставляется для чатов, которых нет в конфигурации.
const Unknown = "Unknown"

type Registry struct {
	byChat map[int64]string
}

func New(byChat map[int64]string) *Registry {
	if byChat == nil {
		byChat = map[int64]string{}
	}
	return &Registry{byChat: byChat}
}

// ByChat возвращает название офиса для чата.
func (r *Registry) ByChat(chatID int64) string {
	if name, ok := r.byChat[chatID]; ok {
		return name
	}
	return Unknown
}

// All возвращает список всех офисов без дублей, порядок не определён.
func (r *Registry) All() []string {
	seen := make(map[string]struct{}, len(r.byChat))
	out := make([]string, 0, len(r.byChat))
	for _, name := range r.byChat {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

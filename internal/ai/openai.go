// Package ai генерирует короткие комментарии к показателям через OpenAI-совместимый API.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vantorrr/otchet/internal/domain/reports"
	"github.com/Vantorrr/otchet/internal/infra/metrics"
)

const systemPrompt = "Ты — аналитик отдела продаж. Пиши кратко, по-русски, " +
	"без воды: 2-4 предложения, только выводы по цифрам и одна рекомендация."

// Provider оборачивает клиент OpenAI. Нулевой (nil) провайдер допустим:
// все методы в этом случае возвращают заглушку, бот продолжает работать
// без ИИ-комментариев.
type Provider struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

// New возвращает nil, если ключ не задан — ИИ-функции просто выключены.
func New(apiKey, baseURL, model string, log *slog.Logger) *Provider {
	if apiKey == "" {
		log.Info("openai key is not set, ai commentary disabled")
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Provider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log,
	}
}

// Unavailable — текст для пользователя, когда ИИ выключен или недоступен.
const Unavailable = "ИИ-комментарий недоступен: не настроен ключ OpenAI."

func (p *Provider) complete(ctx context.Context, prompt string) (string, error) {
	if p == nil {
		return Unavailable, nil
	}
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
		MaxTokens:   400,
	})
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("openai").Inc()
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: пустой ответ")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// TeamComment — комментарий к командным итогам периода.
func (p *Provider) TeamComment(ctx context.Context, periodLabel string, team reports.ManagerTotals) (string, error) {
	prompt := fmt.Sprintf(
		"Итоги команды за %s.\n"+
			"Перезвоны: план %d, факт %d.\n"+
			"Заявки: план %d шт, факт %d шт.\n"+
			"Объём заявок: план %.2f млн, факт %.2f млн.\n"+
			"Одобрено: %.2f млн. Выдано: %.2f млн.\n"+
			"Новые звонки: план %d, факт %d.\n"+
			"Прокомментируй динамику и дай одну рекомендацию.",
		periodLabel,
		team.CallsPlan, team.CallsFact,
		team.LeadsUnitsPlan, team.LeadsUnitsFact,
		team.LeadsVolumePlan, team.LeadsVolumeFact,
		team.ApprovedVolume, team.IssuedVolume,
		team.NewCallsPlan, team.NewCalls,
	)
	return p.complete(ctx, prompt)
}

// ManagerComment — комментарий к показателям одного менеджера.
func (p *Provider) ManagerComment(ctx context.Context, periodLabel string, t reports.ManagerTotals) (string, error) {
	prompt := fmt.Sprintf(
		"Показатели менеджера %s за %s.\n"+
			"Перезвоны: план %d, факт %d (%.0f%%).\n"+
			"Заявки: план %d шт, факт %d шт (%.0f%%).\n"+
			"Объём: план %.2f млн, факт %.2f млн (%.0f%%).\n"+
			"Одобрено %.2f млн, выдано %.2f млн.\n"+
			"Оцени результат в 2-3 предложениях.",
		t.Name, periodLabel,
		t.CallsPlan, t.CallsFact, t.CallsPercent(),
		t.LeadsUnitsPlan, t.LeadsUnitsFact, t.LeadsUnitsPercent(),
		t.LeadsVolumePlan, t.LeadsVolumeFact, t.LeadsVolumePercent(),
		t.ApprovedVolume, t.IssuedVolume,
	)
	return p.complete(ctx, prompt)
}

// Answer — свободный вопрос пользователя с контекстом цифр команды.
func (p *Provider) Answer(ctx context.Context, question string, team reports.ManagerTotals) (string, error) {
	prompt := fmt.Sprintf(
		"Контекст, итоги команды: перезвоны %d/%d, заявки %d/%d шт, "+
			"объём %.2f/%.2f млн, одобрено %.2f млн, выдано %.2f млн.\n"+
			"Вопрос: %s",
		team.CallsFact, team.CallsPlan,
		team.LeadsUnitsFact, team.LeadsUnitsPlan,
		team.LeadsVolumeFact, team.LeadsVolumePlan,
		team.ApprovedVolume, team.IssuedVolume,
		question,
	)
	return p.complete(ctx, prompt)
}

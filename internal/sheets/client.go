// Package sheets работает с Google-таблицей — единственным хранилищем
// бота: отчёты, привязки тем и сервисные настройки.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/Vantorrr/otchet/internal/domain/reports"
	"github.com/Vantorrr/otchet/internal/infra/metrics"
)

type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	log           *slog.Logger
}

// NewClient строит клиент по файлу сервисного аккаунта и сразу
// доводит таблицу до рабочего вида: создаёт недостающие листы и заголовки.
func NewClient(ctx context.Context, credentialsPath, spreadsheetID string, log *slog.Logger) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	c := &Client{svc: svc, spreadsheetID: spreadsheetID, log: log}
	if err := c.ensureWorksheets(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) ensureWorksheets(ctx context.Context) error {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("sheets").Inc()
		return fmt.Errorf("открытие таблицы %s: %w", c.spreadsheetID, err)
	}
	existing := make(map[string]bool)
	for _, s := range ss.Sheets {
		existing[s.Properties.Title] = true
	}

	var add []*sheetsapi.Request
	for _, title := range []string{ReportsSheet, BindingsSheet, ConfigSheet} {
		if !existing[title] {
			add = append(add, &sheetsapi.Request{
				AddSheet: &sheetsapi.AddSheetRequest{
					Properties: &sheetsapi.SheetProperties{Title: title},
				},
			})
		}
	}
	if len(add) > 0 {
		_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
			Requests: add,
		}).Context(ctx).Do()
		if err != nil {
			metrics.ExternalErrors.WithLabelValues("sheets").Inc()
			return fmt.Errorf("создание листов: %w", err)
		}
		c.log.Info("created missing worksheets", "count", len(add))
	}

	for title, headers := range map[string][]string{
		ReportsSheet:  ReportHeaders,
		BindingsSheet: BindingHeaders,
		ConfigSheet:   ConfigHeaders,
	} {
		if err := c.ensureHeaders(ctx, title, headers); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) ensureHeaders(ctx context.Context, sheet string, headers []string) error {
	rng := fmt.Sprintf("%s!A1:%s1", sheet, columnName(len(headers)))
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("sheets").Inc()
		return fmt.Errorf("чтение заголовков %s: %w", sheet, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &sheetsapi.ValueRange{
		Values: [][]any{row},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("sheets").Inc()
		return fmt.Errorf("запись заголовков %s: %w", sheet, err)
	}
	return nil
}

// dataRows читает все строки листа без заголовка.
func (c *Client) dataRows(ctx context.Context, sheet string, cols int) ([][]any, error) {
	rng := fmt.Sprintf("%s!A2:%s", sheet, columnName(cols))
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("sheets").Inc()
		return nil, fmt.Errorf("чтение %s: %w", sheet, err)
	}
	return resp.Values, nil
}

func (c *Client) updateRow(ctx context.Context, sheet string, rowIndex int, values []any) error {
	// rowIndex — индекс среди строк данных; первая строка листа занята заголовком.
	n := rowIndex + 2
	rng := fmt.Sprintf("%s!A%d:%s%d", sheet, n, columnName(len(values)), n)
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &sheetsapi.ValueRange{
		Values: [][]any{values},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("sheets").Inc()
		return fmt.Errorf("обновление %s строка %d: %w", sheet, n, err)
	}
	return nil
}

func (c *Client) appendRow(ctx context.Context, sheet string, values []any) error {
	rng := fmt.Sprintf("%s!A:%s", sheet, columnName(len(values)))
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, &sheetsapi.ValueRange{
		Values: [][]any{values},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("sheets").Inc()
		return fmt.Errorf("добавление в %s: %w", sheet, err)
	}
	return nil
}

// UpsertReport пишет половину отчёта за (date, manager). Существующая
// строка дополняется, вторая половина дня при этом не затирается.
func (c *Client) UpsertReport(ctx context.Context, date, manager, office string, morning *reports.MorningData, evening *reports.EveningData) error {
	rows, err := c.dataRows(ctx, ReportsSheet, len(ReportHeaders))
	if err != nil {
		return err
	}
	idx := findReportRow(rows, date, manager)

	var existing reports.Report
	if idx >= 0 {
		existing, _ = rowToReport(rows[idx])
	}
	merged := mergeReport(existing, date, manager, office, morning, evening)

	if idx >= 0 {
		if err := c.updateRow(ctx, ReportsSheet, idx, reportToRow(merged)); err != nil {
			return err
		}
	} else {
		if err := c.appendRow(ctx, ReportsSheet, reportToRow(merged)); err != nil {
			return err
		}
	}

	kind := "morning"
	if evening != nil {
		kind = "evening"
	}
	metrics.ReportsSaved.WithLabelValues(kind).Inc()
	c.log.Info("report saved", "date", date, "manager", manager, "kind", kind)
	return nil
}

// ReportsByDate возвращает все отчёты за день.
func (c *Client) ReportsByDate(ctx context.Context, date string) ([]reports.Report, error) {
	return c.ReportsInRange(ctx, date, date)
}

// ReportsInRange возвращает отчёты за период [start; end] включительно.
func (c *Client) ReportsInRange(ctx context.Context, start, end string) ([]reports.Report, error) {
	rows, err := c.dataRows(ctx, ReportsSheet, len(ReportHeaders))
	if err != nil {
		return nil, err
	}
	var out []reports.Report
	for _, row := range rows {
		r, ok := rowToReport(row)
		if !ok {
			continue
		}
		if r.Date >= start && r.Date <= end {
			out = append(out, r)
		}
	}
	return out, nil
}

// SetManagerBinding привязывает тему к менеджеру. Повторная привязка
// той же темы перезаписывает старую: действует последняя.
func (c *Client) SetManagerBinding(ctx context.Context, topicID int, manager string) error {
	rows, err := c.dataRows(ctx, BindingsSheet, len(BindingHeaders))
	if err != nil {
		return err
	}
	values := []any{strconv.Itoa(topicID), manager}
	if idx := findBindingRow(rows, topicID); idx >= 0 {
		return c.updateRow(ctx, BindingsSheet, idx, values)
	}
	return c.appendRow(ctx, BindingsSheet, values)
}

// ManagerByTopic возвращает менеджера, привязанного к теме, либо "".
func (c *Client) ManagerByTopic(ctx context.Context, topicID int) (string, error) {
	rows, err := c.dataRows(ctx, BindingsSheet, len(BindingHeaders))
	if err != nil {
		return "", err
	}
	idx := findBindingRow(rows, topicID)
	if idx < 0 || len(rows[idx]) < 2 {
		return "", nil
	}
	return cellString(rows[idx][1]), nil
}

// Bindings возвращает все привязки тема -> менеджер.
func (c *Client) Bindings(ctx context.Context) (map[int]string, error) {
	rows, err := c.dataRows(ctx, BindingsSheet, len(BindingHeaders))
	if err != nil {
		return nil, err
	}
	out := make(map[int]string)
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		id, err := strconv.Atoi(cellString(row[0]))
		if err != nil {
			continue
		}
		out[id] = cellString(row[1])
	}
	return out, nil
}

func (c *Client) setConfigValue(ctx context.Context, key, value string) error {
	rows, err := c.dataRows(ctx, ConfigSheet, len(ConfigHeaders))
	if err != nil {
		return err
	}
	values := []any{key, value}
	if idx := findConfigRow(rows, key); idx >= 0 {
		return c.updateRow(ctx, ConfigSheet, idx, values)
	}
	return c.appendRow(ctx, ConfigSheet, values)
}

// SetGroupChat запоминает рабочий групповой чат (напоминания, сводки).
func (c *Client) SetGroupChat(ctx context.Context, chatID int64) error {
	return c.setConfigValue(ctx, keyGroupChat, strconv.FormatInt(chatID, 10))
}

// GroupChat возвращает зарегистрированный групповой чат; 0, если /start
// в группе ещё не выполнялся.
func (c *Client) GroupChat(ctx context.Context) (int64, error) {
	rows, err := c.dataRows(ctx, ConfigSheet, len(ConfigHeaders))
	if err != nil {
		return 0, err
	}
	return groupChatFromConfig(rows), nil
}

// SetSummaryTopic запоминает тему для публикации сводок и чат, в котором она живёт.
func (c *Client) SetSummaryTopic(ctx context.Context, chatID int64, topicID int) error {
	if err := c.setConfigValue(ctx, keySummaryTopic, strconv.Itoa(topicID)); err != nil {
		return err
	}
	return c.setConfigValue(ctx, keyGroupChat, strconv.FormatInt(chatID, 10))
}

// SummaryTopic возвращает (chatID, topicID) темы сводок; (0, 0) если не настроена.
func (c *Client) SummaryTopic(ctx context.Context) (int64, int, error) {
	rows, err := c.dataRows(ctx, ConfigSheet, len(ConfigHeaders))
	if err != nil {
		return 0, 0, err
	}
	chatID, topicID := summaryTopicFromConfig(rows)
	return chatID, topicID, nil
}

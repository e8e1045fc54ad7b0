package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	}

	Telegram struct {
		Token string
	}

	Google struct {
		CredentialsPath string
		SpreadsheetID   string
		DriveFolderID   string
	}

	OpenAI struct {
		APIKey  string
		BaseURL string
		Model   string
	}

	Reminders struct {
		Morning    string // HH:MM
		Evening    string // HH:MM
		Summary    string // HH:MM, публикация дневной сводки
		QuietHours string // HH:MM-HH:MM, пусто = без тихих часов
	}

	Slides struct {
		PrimaryColor string
		TextColor    string
		MutedColor   string
		CardBGColor  string
		Font         string
	}

	Managers []string
	Offices  map[int64]string

	HTTP struct {
		Addr string
	}

	Metrics struct {
		Enabled bool
	}
}

func Load() (Config, error) {
	// .env рядом с бинарником — удобно для локального запуска, отсутствие не ошибка
	_ = gotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DEFAULT_TIMEZONE", "Europe/Moscow")
	v.SetDefault("MORNING_REMINDER", "09:30")
	v.SetDefault("EVENING_REMINDER", "17:30")
	v.SetDefault("SUMMARY_TIME", "20:00")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("SLIDES_PRIMARY_COLOR", "#CC0000")
	v.SetDefault("SLIDES_TEXT_COLOR", "#1A1A1A")
	v.SetDefault("SLIDES_MUTED_COLOR", "#666666")
	v.SetDefault("SLIDES_CARD_BG_COLOR", "#F5F5F5")
	v.SetDefault("SLIDES_FONT", "Arial")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("APP_ENV", "prod")

	var c Config
	c.App.Env = v.GetString("APP_ENV")
	c.App.Timezone = v.GetString("DEFAULT_TIMEZONE")
	c.Telegram.Token = v.GetString("BOT_TOKEN")
	c.Google.CredentialsPath = v.GetString("GOOGLE_APPLICATION_CREDENTIALS")
	c.Google.SpreadsheetID = v.GetString("SPREADSHEET_ID")
	c.Google.DriveFolderID = v.GetString("DRIVE_FOLDER_ID")
	c.OpenAI.APIKey = v.GetString("OPENAI_API_KEY")
	c.OpenAI.BaseURL = v.GetString("OPENAI_BASE_URL")
	c.OpenAI.Model = v.GetString("OPENAI_MODEL")
	c.Reminders.Morning = v.GetString("MORNING_REMINDER")
	c.Reminders.Evening = v.GetString("EVENING_REMINDER")
	c.Reminders.Summary = v.GetString("SUMMARY_TIME")
	c.Reminders.QuietHours = v.GetString("QUIET_HOURS")
	c.Slides.PrimaryColor = v.GetString("SLIDES_PRIMARY_COLOR")
	c.Slides.TextColor = v.GetString("SLIDES_TEXT_COLOR")
	c.Slides.MutedColor = v.GetString("SLIDES_MUTED_COLOR")
	c.Slides.CardBGColor = v.GetString("SLIDES_CARD_BG_COLOR")
	c.Slides.Font = v.GetString("SLIDES_FONT")
	c.Managers = splitList(v.GetString("MANAGERS"))
	c.HTTP.Addr = v.GetString("HTTP_ADDR")
	c.Metrics.Enabled = v.GetBool("METRICS_ENABLED")

	offices, err := ParseOffices(v.GetString("OFFICES"))
	if err != nil {
		return c, fmt.Errorf("OFFICES: %w", err)
	}
	c.Offices = offices

	if c.Telegram.Token == "" {
		return c, fmt.Errorf("BOT_TOKEN is required")
	}
	if c.Google.CredentialsPath == "" {
		return c, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS is required")
	}
	if c.Google.SpreadsheetID == "" {
		return c, fmt.Errorf("SPREADSHEET_ID is required")
	}
	if _, _, err := ParseHHMM(c.Reminders.Morning); err != nil {
		return c, fmt.Errorf("MORNING_REMINDER: %w", err)
	}
	if _, _, err := ParseHHMM(c.Reminders.Evening); err != nil {
		return c, fmt.Errorf("EVENING_REMINDER: %w", err)
	}
	if _, _, err := ParseHHMM(c.Reminders.Summary); err != nil {
		return c, fmt.Errorf("SUMMARY_TIME: %w", err)
	}
	if c.Reminders.QuietHours != "" {
		if _, _, err := ParseQuietHours(c.Reminders.QuietHours); err != nil {
			return c, fmt.Errorf("QUIET_HOURS: %w", err)
		}
	}
	return c, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseOffices разбирает строку вида "-1002511898620=Офис 4,-1003164833460=Руководительская".
func ParseOffices(s string) (map[int64]string, error) {
	offices := make(map[int64]string)
	if strings.TrimSpace(s) == "" {
		return offices, nil
	}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, name, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad pair %q, want chat_id=name", pair)
		}
		chatID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad chat_id in %q: %w", pair, err)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("empty office name in %q", pair)
		}
		offices[chatID] = name
	}
	return offices, nil
}

// ParseHHMM разбирает "09:30" в часы и минуты.
func ParseHHMM(s string) (int, int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("bad time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("bad hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("bad minute in %q", s)
	}
	return h, m, nil
}

// ParseQuietHours разбирает "22:00-08:00" в минуты от полуночи (от, до).
// Интервал может переходить через полночь.
func ParseQuietHours(s string) (int, int, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return 0, 0, fmt.Errorf("bad interval %q, want HH:MM-HH:MM", s)
	}
	fh, fm, err := ParseHHMM(from)
	if err != nil {
		return 0, 0, err
	}
	th, tm, err := ParseHHMM(to)
	if err != nil {
		return 0, 0, err
	}
	return fh*60 + fm, th*60 + tm, nil
}

// InQuietHours сообщает, попадает ли время (минуты от полуночи) в тихий интервал.
func InQuietHours(minuteOfDay, from, to int) bool {
	if from == to {
		return false
	}
	if from < to {
		return minuteOfDay >= from && minuteOfDay < to
	}
	// интервал через полночь
	return minuteOfDay >= from || minuteOfDay < to
}

// Package slides собирает презентации с итогами периода в Google Slides.
package slides

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	slidesapi "google.golang.org/api/slides/v1"

	"github.com/Vantorrr/otchet/internal/infra/metrics"
)

// Theme — цвета и шрифт презентации, приходят из конфигурации.
type Theme struct {
	Primary string // hex, #RRGGBB
	Text    string
	Muted   string
	CardBG  string
	Font    string
}

type Service struct {
	slides   *slidesapi.Service
	drive    *drive.Service
	folderID string // пусто = не перемещать
	theme    Theme
	log      *slog.Logger
}

func NewService(ctx context.Context, credentialsPath, folderID string, theme Theme, log *slog.Logger) (*Service, error) {
	opts := []option.ClientOption{
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(slidesapi.PresentationsScope, drive.DriveScope),
	}
	sl, err := slidesapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("slides service: %w", err)
	}
	dr, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &Service{slides: sl, drive: dr, folderID: folderID, theme: theme, log: log}, nil
}

// Create создаёт презентацию, наполняет её слайдами и при настроенной
// папке переносит туда. Возвращает ID и ссылку для просмотра.
func (s *Service) Create(ctx context.Context, deck Deck) (string, string, error) {
	pres, err := s.slides.Presentations.Create(&slidesapi.Presentation{
		Title: deck.Title,
	}).Context(ctx).Do()
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("slides").Inc()
		return "", "", fmt.Errorf("создание презентации: %w", err)
	}

	reqs := buildRequests(pres, deck, s.theme)
	if len(reqs) > 0 {
		_, err = s.slides.Presentations.BatchUpdate(pres.PresentationId, &slidesapi.BatchUpdatePresentationRequest{
			Requests: reqs,
		}).Context(ctx).Do()
		if err != nil {
			metrics.ExternalErrors.WithLabelValues("slides").Inc()
			return "", "", fmt.Errorf("наполнение презентации: %w", err)
		}
	}

	if s.folderID != "" {
		if err := s.moveToFolder(ctx, pres.PresentationId); err != nil {
			// презентация уже собрана, перенос не критичен
			s.log.Warn("failed to move presentation to folder", "error", err)
		}
	}

	metrics.DecksBuilt.Inc()
	url := "https://docs.google.com/presentation/d/" + pres.PresentationId + "/edit"
	s.log.Info("presentation created", "id", pres.PresentationId, "slides", len(deck.ManagerSlides)+3)
	return pres.PresentationId, url, nil
}

func (s *Service) moveToFolder(ctx context.Context, fileID string) error {
	f, err := s.drive.Files.Get(fileID).Fields("parents").Context(ctx).Do()
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("drive").Inc()
		return fmt.Errorf("чтение родителей файла: %w", err)
	}
	prev := ""
	for i, p := range f.Parents {
		if i > 0 {
			prev += ","
		}
		prev += p
	}
	_, err = s.drive.Files.Update(fileID, nil).
		AddParents(s.folderID).
		RemoveParents(prev).
		Fields("id", "parents").
		Context(ctx).Do()
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("drive").Inc()
		return fmt.Errorf("перенос в папку: %w", err)
	}
	return nil
}

// ExportPDF выгружает презентацию в PDF. Закрыть reader — обязанность вызывающего.
func (s *Service) ExportPDF(ctx context.Context, presentationID string) (io.ReadCloser, error) {
	resp, err := s.drive.Files.Export(presentationID, "application/pdf").Context(ctx).Download()
	if err != nil {
		metrics.ExternalErrors.WithLabelValues("drive").Inc()
		return nil, fmt.Errorf("экспорт в pdf: %w", err)
	}
	return resp.Body, nil
}

// parseHexColor — "#CC0000" -> RgbColor в долях 0..1. Битый цвет даёт чёрный.
func parseHexColor(hex string) *slidesapi.RgbColor {
	if len(hex) == 7 && hex[0] == '#' {
		r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
		g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
		b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
		if err1 == nil && err2 == nil && err3 == nil {
			return &slidesapi.RgbColor{
				Red:   float64(r) / 255,
				Green: float64(g) / 255,
				Blue:  float64(b) / 255,
			}
		}
	}
	return &slidesapi.RgbColor{}
}

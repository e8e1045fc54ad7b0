package slides

import (
	"fmt"

	slidesapi "google.golang.org/api/slides/v1"
)

// Deck — содержимое презентации, подготовленное ботом: заголовок,
// карточки командных метрик, слайды менеджеров и комментарий аналитика.
type Deck struct {
	Title    string
	Subtitle string

	TeamCards     []MetricCard
	DailyLines    []string // динамика по дням; пусто = слайд не рисуется
	ManagerSlides []ManagerSlide
	AIComment     string
}

// MetricCard — одна карточка на командном слайде.
type MetricCard struct {
	Label string
	Value string
	Sub   string // процент выполнения или пояснение, может быть пустым
}

// ManagerSlide — слайд одного менеджера: строки показателей и комментарий.
type ManagerSlide struct {
	Name    string
	Lines   []string
	Comment string
}

// Размеры стандартного слайда 16:9 в пунктах.
const (
	pageW = 720.0
	pageH = 405.0
)

type requestBuilder struct {
	theme Theme
	reqs  []*slidesapi.Request
	seq   int
}

func (rb *requestBuilder) nextID(prefix string) string {
	rb.seq++
	return fmt.Sprintf("%s_%d", prefix, rb.seq)
}

func (rb *requestBuilder) add(r *slidesapi.Request) {
	rb.reqs = append(rb.reqs, r)
}

func (rb *requestBuilder) newSlide() string {
	id := rb.nextID("slide")
	rb.add(&slidesapi.Request{
		CreateSlide: &slidesapi.CreateSlideRequest{
			ObjectId: id,
			SlideLayoutReference: &slidesapi.LayoutReference{
				PredefinedLayout: "BLANK",
			},
		},
	})
	return id
}

func frame(x, y, w, h float64) (*slidesapi.Size, *slidesapi.AffineTransform) {
	size := &slidesapi.Size{
		Width:  &slidesapi.Dimension{Magnitude: w, Unit: "PT"},
		Height: &slidesapi.Dimension{Magnitude: h, Unit: "PT"},
	}
	tr := &slidesapi.AffineTransform{
		ScaleX:     1,
		ScaleY:     1,
		TranslateX: x,
		TranslateY: y,
		Unit:       "PT",
	}
	return size, tr
}

func (rb *requestBuilder) shape(slideID, shapeType string, x, y, w, h float64) string {
	id := rb.nextID("shape")
	size, tr := frame(x, y, w, h)
	rb.add(&slidesapi.Request{
		CreateShape: &slidesapi.CreateShapeRequest{
			ObjectId:  id,
			ShapeType: shapeType,
			ElementProperties: &slidesapi.PageElementProperties{
				PageObjectId: slideID,
				Size:         size,
				Transform:    tr,
			},
		},
	})
	return id
}

func (rb *requestBuilder) fill(shapeID, hexColor string) {
	rb.add(&slidesapi.Request{
		UpdateShapeProperties: &slidesapi.UpdateShapePropertiesRequest{
			ObjectId: shapeID,
			Fields:   "shapeBackgroundFill.solidFill.color,outline.propertyState",
			ShapeProperties: &slidesapi.ShapeProperties{
				ShapeBackgroundFill: &slidesapi.ShapeBackgroundFill{
					SolidFill: &slidesapi.SolidFill{
						Color: &slidesapi.OpaqueColor{RgbColor: parseHexColor(hexColor)},
					},
				},
				Outline: &slidesapi.Outline{PropertyState: "NOT_RENDERED"},
			},
		},
	})
}

type textStyle struct {
	size  float64
	bold  bool
	color string
	align string // пусто = не трогать
}

func (rb *requestBuilder) text(slideID string, x, y, w, h float64, content string, st textStyle) string {
	id := rb.shape(slideID, "TEXT_BOX", x, y, w, h)
	if content == "" {
		return id
	}
	rb.add(&slidesapi.Request{
		InsertText: &slidesapi.InsertTextRequest{
			ObjectId: id,
			Text:     content,
		},
	})
	rb.add(&slidesapi.Request{
		UpdateTextStyle: &slidesapi.UpdateTextStyleRequest{
			ObjectId: id,
			Fields:   "fontSize,bold,fontFamily,foregroundColor",
			Style: &slidesapi.TextStyle{
				FontSize:   &slidesapi.Dimension{Magnitude: st.size, Unit: "PT"},
				Bold:       st.bold,
				FontFamily: rb.theme.Font,
				ForegroundColor: &slidesapi.OptionalColor{
					OpaqueColor: &slidesapi.OpaqueColor{RgbColor: parseHexColor(st.color)},
				},
			},
			TextRange: &slidesapi.Range{Type: "ALL"},
		},
	})
	if st.align != "" {
		rb.add(&slidesapi.Request{
			UpdateParagraphStyle: &slidesapi.UpdateParagraphStyleRequest{
				ObjectId: id,
				Fields:   "alignment",
				Style:    &slidesapi.ParagraphStyle{Alignment: st.align},
				TextRange: &slidesapi.Range{Type: "ALL"},
			},
		})
	}
	return id
}

// buildRequests превращает Deck в batchUpdate-запросы. Слайд, который
// Slides создаёт по умолчанию, удаляется — колода строится с нуля.
func buildRequests(pres *slidesapi.Presentation, deck Deck, theme Theme) []*slidesapi.Request {
	rb := &requestBuilder{theme: theme}

	for _, s := range pres.Slides {
		rb.add(&slidesapi.Request{
			DeleteObject: &slidesapi.DeleteObjectRequest{ObjectId: s.ObjectId},
		})
	}

	rb.titleSlide(deck)
	rb.teamSlide(deck)
	if len(deck.DailyLines) > 0 {
		rb.dailySlide(deck.DailyLines)
	}
	for _, m := range deck.ManagerSlides {
		rb.managerSlide(m)
	}
	if deck.AIComment != "" {
		rb.commentSlide(deck.AIComment)
	}
	return rb.reqs
}

func (rb *requestBuilder) titleSlide(deck Deck) {
	slideID := rb.newSlide()

	bar := rb.shape(slideID, "RECTANGLE", 0, 168, pageW, 6)
	rb.fill(bar, rb.theme.Primary)

	rb.text(slideID, 60, 100, pageW-120, 60, deck.Title, textStyle{
		size: 36, bold: true, color: rb.theme.Text, align: "CENTER",
	})
	rb.text(slideID, 60, 190, pageW-120, 40, deck.Subtitle, textStyle{
		size: 18, color: rb.theme.Muted, align: "CENTER",
	})
}

func (rb *requestBuilder) teamSlide(deck Deck) {
	slideID := rb.newSlide()
	rb.text(slideID, 40, 24, pageW-80, 36, "Итоги команды", textStyle{
		size: 24, bold: true, color: rb.theme.Text,
	})

	// сетка 3x2
	const (
		cardW  = 200.0
		cardH  = 120.0
		gapX   = 20.0
		gapY   = 24.0
		startX = 40.0
		startY = 80.0
	)
	for i, card := range deck.TeamCards {
		if i >= 6 {
			break
		}
		col := float64(i % 3)
		row := float64(i / 3)
		x := startX + col*(cardW+gapX)
		y := startY + row*(cardH+gapY)

		bg := rb.shape(slideID, "RECTANGLE", x, y, cardW, cardH)
		rb.fill(bg, rb.theme.CardBG)

		rb.text(slideID, x+12, y+10, cardW-24, 24, card.Label, textStyle{
			size: 12, color: rb.theme.Muted,
		})
		rb.text(slideID, x+12, y+38, cardW-24, 40, card.Value, textStyle{
			size: 22, bold: true, color: rb.theme.Text,
		})
		if card.Sub != "" {
			rb.text(slideID, x+12, y+84, cardW-24, 24, card.Sub, textStyle{
				size: 13, bold: true, color: rb.theme.Primary,
			})
		}
	}
}

func (rb *requestBuilder) dailySlide(lines []string) {
	slideID := rb.newSlide()
	rb.text(slideID, 40, 24, pageW-80, 36, "Динамика по дням", textStyle{
		size: 24, bold: true, color: rb.theme.Text,
	})

	body := ""
	for _, line := range lines {
		body += line + "\n"
	}
	rb.text(slideID, 40, 80, pageW-80, 300, body, textStyle{
		size: 11, color: rb.theme.Text,
	})
}

func (rb *requestBuilder) managerSlide(m ManagerSlide) {
	slideID := rb.newSlide()
	rb.text(slideID, 40, 24, pageW-80, 36, m.Name, textStyle{
		size: 24, bold: true, color: rb.theme.Text,
	})

	body := ""
	for _, line := range m.Lines {
		body += line + "\n"
	}
	rb.text(slideID, 40, 80, 400, 260, body, textStyle{
		size: 15, color: rb.theme.Text,
	})

	if m.Comment != "" {
		bg := rb.shape(slideID, "RECTANGLE", 460, 80, 220, 260)
		rb.fill(bg, rb.theme.CardBG)
		rb.text(slideID, 472, 92, 196, 236, m.Comment, textStyle{
			size: 12, color: rb.theme.Muted,
		})
	}
}

func (rb *requestBuilder) commentSlide(comment string) {
	slideID := rb.newSlide()
	rb.text(slideID, 40, 24, pageW-80, 36, "Комментарий аналитика", textStyle{
		size: 24, bold: true, color: rb.theme.Text,
	})
	rb.text(slideID, 40, 80, pageW-80, 280, comment, textStyle{
		size: 15, color: rb.theme.Text,
	})
}

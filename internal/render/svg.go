package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"go.uber.org/zap"

	"nova-suite/internal/models"
)

// Renderer materializes slide records into standalone SVG markup. The output
// is a pure projection of the data records; it can be thrown away and
// rebuilt at any time.
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Slide renders one slide to SVG. Elements are painted in z-index order
// (slide order breaking ties). A malformed element is logged and skipped;
// it never aborts the rest of the slide.
func (r *Renderer) Slide(slide *models.Slide) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g">`,
		models.SlideWidth, models.SlideHeight)
	b.WriteString("\n")

	background := slide.BackgroundColor
	if background == "" {
		background = "#ffffff"
	}
	fmt.Fprintf(&b, `  <rect width="%g" height="%g" fill="%s"/>`,
		models.SlideWidth, models.SlideHeight, html.EscapeString(background))
	b.WriteString("\n")

	ordered := make([]*models.Element, len(slide.Elements))
	copy(ordered, slide.Elements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ZIndex < ordered[j].ZIndex
	})

	for _, element := range ordered {
		markup, err := r.Element(element)
		if err != nil {
			r.logger.Warn("skipping element during render",
				zap.Int64("slide", slide.ID),
				zap.Int64("element", element.ID),
				zap.Error(err))
			continue
		}
		b.WriteString("  " + markup + "\n")
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// Element renders one element to an SVG fragment
func (r *Renderer) Element(e *models.Element) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}

	opacity := float64(e.Opacity) / 100
	switch e.Kind {
	case models.KindText:
		return fmt.Sprintf(
			`<text x="%g" y="%g" fill="%s" opacity="%g" font-size="16">%s</text>`,
			e.X, e.Y+16, html.EscapeString(e.Color), opacity, html.EscapeString(stripMarkup(e.Content))), nil
	case models.KindRect:
		return fmt.Sprintf(
			`<rect x="%g" y="%g" width="%g" height="%g" rx="4" fill="%s" opacity="%g"/>`,
			e.X, e.Y, e.Width, e.Height, html.EscapeString(e.Color), opacity), nil
	case models.KindCircle:
		return fmt.Sprintf(
			`<ellipse cx="%g" cy="%g" rx="%g" ry="%g" fill="%s" opacity="%g"/>`,
			e.X+e.Width/2, e.Y+e.Height/2, e.Width/2, e.Height/2,
			html.EscapeString(e.Color), opacity), nil
	case models.KindPolygon:
		points := make([]string, 0, len(e.Points))
		for _, p := range e.Points {
			points = append(points, fmt.Sprintf("%g,%g", p.X, p.Y))
		}
		return fmt.Sprintf(
			`<polygon points="%s" fill="%s" opacity="%g"/>`,
			strings.Join(points, " "), html.EscapeString(e.Color), opacity), nil
	case models.KindFreeform:
		return fmt.Sprintf(
			`<path d="%s" fill="none" stroke="%s" stroke-width="2" opacity="%g"/>`,
			html.EscapeString(e.PathData), html.EscapeString(e.Color), opacity), nil
	default:
		return "", fmt.Errorf("unknown element kind %q", e.Kind)
	}
}

// stripMarkup reduces opaque rich-text markup to its plain text
func stripMarkup(content string) string {
	var b strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(b.String())
}

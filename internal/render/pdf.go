package render

import (
	"bytes"
	"regexp"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"nova-suite/internal/models"
)

// A4 landscape is 297×210mm; the 960×540 canvas is scaled to fit the width
const pdfScale = 297.0 / models.SlideWidth

var pathNumbers = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// PDF renders the whole deck, one page per slide. Element failures follow
// the same skip-and-log rule as the SVG renderer.
func (r *Renderer) PDF(p *models.Presentation) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(p.Title, true)

	for _, slide := range p.Slides {
		pdf.AddPage()
		red, green, blue := parseHexColor(slide.BackgroundColor)
		pdf.SetFillColor(red, green, blue)
		pdf.Rect(0, 0, models.SlideWidth*pdfScale, models.SlideHeight*pdfScale, "F")

		for _, element := range slide.Elements {
			if err := element.Validate(); err != nil {
				r.logger.Warn("skipping element during pdf export",
					zap.Int64("slide", slide.ID),
					zap.Int64("element", element.ID),
					zap.Error(err))
				continue
			}
			r.pdfElement(pdf, element)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) pdfElement(pdf *gofpdf.Fpdf, e *models.Element) {
	red, green, blue := parseHexColor(e.Color)
	pdf.SetFillColor(red, green, blue)
	pdf.SetDrawColor(red, green, blue)
	pdf.SetAlpha(float64(e.Opacity)/100, "Normal")
	defer pdf.SetAlpha(1, "Normal")

	switch e.Kind {
	case models.KindText:
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(red, green, blue)
		pdf.Text(e.X*pdfScale, (e.Y+16)*pdfScale, stripMarkup(e.Content))
	case models.KindRect:
		pdf.Rect(e.X*pdfScale, e.Y*pdfScale, e.Width*pdfScale, e.Height*pdfScale, "F")
	case models.KindCircle:
		pdf.Ellipse((e.X+e.Width/2)*pdfScale, (e.Y+e.Height/2)*pdfScale,
			e.Width/2*pdfScale, e.Height/2*pdfScale, 0, "F")
	case models.KindPolygon:
		points := make([]gofpdf.PointType, 0, len(e.Points))
		for _, p := range e.Points {
			points = append(points, gofpdf.PointType{X: p.X * pdfScale, Y: p.Y * pdfScale})
		}
		pdf.Polygon(points, "F")
	case models.KindFreeform:
		// Approximate the path by a polyline through its coordinate pairs
		coords := pathNumbers.FindAllString(e.PathData, -1)
		pdf.SetLineWidth(0.5)
		for i := 3; i < len(coords); i += 2 {
			x1, _ := strconv.ParseFloat(coords[i-3], 64)
			y1, _ := strconv.ParseFloat(coords[i-2], 64)
			x2, _ := strconv.ParseFloat(coords[i-1], 64)
			y2, _ := strconv.ParseFloat(coords[i], 64)
			pdf.Line(x1*pdfScale, y1*pdfScale, x2*pdfScale, y2*pdfScale)
		}
	}
}

// parseHexColor decodes #rrggbb, defaulting to black on malformed input
func parseHexColor(color string) (int, int, int) {
	if len(color) != 7 || color[0] != '#' {
		return 0, 0, 0
	}
	red, err1 := strconv.ParseInt(color[1:3], 16, 0)
	green, err2 := strconv.ParseInt(color[3:5], 16, 0)
	blue, err3 := strconv.ParseInt(color[5:7], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0
	}
	return int(red), int(green), int(blue)
}

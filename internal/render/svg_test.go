package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nova-suite/internal/models"
)

func newTestRenderer() *Renderer {
	return NewRenderer(zap.NewNop())
}

func TestRenderer_Slide_EmitsBackgroundAndViewBox(t *testing.T) {
	r := newTestRenderer()
	slide := models.NewSlide(models.LayoutBlank)
	slide.BackgroundColor = "#fafafa"

	svg := r.Slide(slide)

	assert.Contains(t, svg, `viewBox="0 0 960 540"`)
	assert.Contains(t, svg, `fill="#fafafa"`)
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
}

func TestRenderer_Slide_PaintsInZIndexOrder(t *testing.T) {
	r := newTestRenderer()
	slide := models.NewSlide(models.LayoutBlank)
	slide.AddElement(&models.Element{
		ID: 1, Kind: models.KindRect, Width: 100, Height: 50,
		Color: "#top", Opacity: 100, ZIndex: 5,
	})
	slide.AddElement(&models.Element{
		ID: 2, Kind: models.KindRect, Width: 100, Height: 50,
		Color: "#bottom", Opacity: 100, ZIndex: 1,
	})

	svg := r.Slide(slide)

	// Lower z-index paints first so higher stacks on top
	assert.Less(t, strings.Index(svg, "#bottom"), strings.Index(svg, "#top"))
}

func TestRenderer_Slide_SkipsMalformedElements(t *testing.T) {
	r := newTestRenderer()
	slide := models.NewSlide(models.LayoutBlank)
	slide.AddElement(&models.Element{
		ID: 1, Kind: models.KindPolygon, Width: 100, Height: 100,
		Points: []models.Point{{X: 0, Y: 0}}, Opacity: 100,
	})
	slide.AddElement(&models.Element{
		ID: 2, Kind: models.KindRect, Width: 100, Height: 50,
		Color: "#2563eb", Opacity: 100,
	})

	svg := r.Slide(slide)

	assert.NotContains(t, svg, "<polygon")
	assert.Contains(t, svg, "<rect")
}

func TestRenderer_Element_Text_StripsMarkupAndEscapes(t *testing.T) {
	r := newTestRenderer()
	element := &models.Element{
		ID: 1, Kind: models.KindText, X: 10, Y: 20,
		Width: 200, Height: 50, Color: "#111111", Opacity: 100,
		Content: "<b>5 &lt; 7</b>",
	}

	markup, err := r.Element(element)

	require.NoError(t, err)
	assert.Contains(t, markup, ">5 &lt; 7</text>")
	assert.NotContains(t, markup, "<b>")
}

func TestRenderer_Element_CircleUsesCenterAndRadii(t *testing.T) {
	r := newTestRenderer()
	element := &models.Element{
		ID: 1, Kind: models.KindCircle, X: 100, Y: 100,
		Width: 100, Height: 100, Color: "#2563eb", Opacity: 50,
	}

	markup, err := r.Element(element)

	require.NoError(t, err)
	assert.Contains(t, markup, `cx="150"`)
	assert.Contains(t, markup, `cy="150"`)
	assert.Contains(t, markup, `rx="50"`)
	assert.Contains(t, markup, `opacity="0.5"`)
}

func TestRenderer_Element_Polygon(t *testing.T) {
	r := newTestRenderer()
	element := &models.Element{
		ID: 1, Kind: models.KindPolygon, Width: 100, Height: 100,
		Color: "#2563eb", Opacity: 100,
		Points: []models.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 25, Y: 50}},
	}

	markup, err := r.Element(element)

	require.NoError(t, err)
	assert.Contains(t, markup, `points="0,0 50,0 25,50"`)
}

func TestRenderer_Element_FreeformPath(t *testing.T) {
	r := newTestRenderer()
	element := &models.Element{
		ID: 1, Kind: models.KindFreeform, Width: 100, Height: 100,
		Color: "#2563eb", Opacity: 100, PathData: "M 0 0 L 50 50",
	}

	markup, err := r.Element(element)

	require.NoError(t, err)
	assert.Contains(t, markup, `d="M 0 0 L 50 50"`)
	assert.Contains(t, markup, `fill="none"`)
}

func TestRenderer_Element_UnknownKind(t *testing.T) {
	r := newTestRenderer()

	_, err := r.Element(&models.Element{ID: 1, Kind: "sticker", Width: 10, Height: 10})

	assert.Error(t, err)
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "hello world", stripMarkup("<p>hello <b>world</b></p>"))
	assert.Equal(t, "a < b", stripMarkup("a &lt; b"))
	assert.Equal(t, "plain", stripMarkup("plain"))
}

package models

import (
	"fmt"
	"math"
	"time"
)

// Slide canvas bounds in logical pixels (16:9 deck)
const (
	SlideWidth  = 960.0
	SlideHeight = 540.0
)

// Element sizing defaults and limits
const (
	MinElementSize      = 50.0
	DefaultWidth        = 100.0
	DefaultHeight       = 50.0
	DefaultCircleHeight = 100.0
	DefaultColor        = "#2563eb"
	DefaultOpacity      = 100
	PasteOffset         = 20.0
)

// ElementKind tags the element variant
type ElementKind string

const (
	KindText     ElementKind = "text"
	KindRect     ElementKind = "shape"
	KindCircle   ElementKind = "circle"
	KindPolygon  ElementKind = "polygon"
	KindFreeform ElementKind = "freeform"
)

// Point is a slide-local coordinate pair
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Element is a single positioned visual primitive on a slide.
// Kind decides which of the variant fields are meaningful: Content for
// text, Points for polygon, PathData for freeform.
type Element struct {
	ID       int64       `json:"id"`
	Kind     ElementKind `json:"type"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Color    string      `json:"color"`
	Opacity  int         `json:"opacity"`
	ZIndex   int         `json:"zIndex"`
	Content  string      `json:"content,omitempty"`
	Points   []Point     `json:"points,omitempty"`
	PathData string      `json:"pathData,omitempty"`
}

// Geometry is the positional state of an element
type Geometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Corner identifies which resize handle is active
type Corner string

const (
	CornerNW Corner = "nw"
	CornerNE Corner = "ne"
	CornerSW Corner = "sw"
	CornerSE Corner = "se"
)

// Grid holds snap-to-grid settings
type Grid struct {
	Enabled bool    `json:"enabled"`
	Size    float64 `json:"size"`
}

// NewElement creates an element of the given kind with deterministic defaults.
// The id is the creation timestamp in milliseconds; uniqueness within a slide
// is enforced by Slide.AddElement.
func NewElement(kind ElementKind, x, y float64) *Element {
	height := DefaultHeight
	if kind == KindCircle {
		height = DefaultCircleHeight
	}
	return &Element{
		ID:      time.Now().UnixMilli(),
		Kind:    kind,
		X:       x,
		Y:       y,
		Width:   DefaultWidth,
		Height:  height,
		Color:   DefaultColor,
		Opacity: DefaultOpacity,
		ZIndex:  1,
	}
}

// Validate reports whether the element record is renderable
func (e *Element) Validate() error {
	switch e.Kind {
	case KindText, KindRect, KindCircle:
	case KindPolygon:
		if len(e.Points) < 3 {
			return fmt.Errorf("polygon element %d has %d points, need at least 3", e.ID, len(e.Points))
		}
	case KindFreeform:
		if e.PathData == "" {
			return fmt.Errorf("freeform element %d has no path data", e.ID)
		}
	default:
		return fmt.Errorf("element %d has unknown kind %q", e.ID, e.Kind)
	}
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Errorf("element %d has non-positive size %gx%g", e.ID, e.Width, e.Height)
	}
	return nil
}

// Geometry returns the element's current geometry
func (e *Element) Geometry() Geometry {
	return Geometry{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// SetGeometry applies a geometry to the element record
func (e *Element) SetGeometry(g Geometry) {
	e.X = g.X
	e.Y = g.Y
	e.Width = g.Width
	e.Height = g.Height
}

// MoveTo positions the element at the target coordinates, snapping to the
// grid first when enabled and then clamping so the bounding box stays fully
// inside the slide
func (e *Element) MoveTo(x, y float64, grid Grid) {
	if grid.Enabled && grid.Size > 0 {
		x = Snap(x, grid.Size)
		y = Snap(y, grid.Size)
	}
	e.X = clamp(x, 0, SlideWidth-e.Width)
	e.Y = clamp(y, 0, SlideHeight-e.Height)
}

// Snap rounds v to the nearest multiple of size
func Snap(v, size float64) float64 {
	return math.Round(v/size) * size
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		// Element wider/taller than the slide, pin to origin
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ResizeGeometry recomputes a geometry from the gesture-start geometry, the
// active corner handle and the cumulative pointer displacement. The corner
// opposite the handle stays pinned and width/height never drop below
// MinElementSize.
func ResizeGeometry(start Geometry, corner Corner, dx, dy float64) Geometry {
	g := start
	switch corner {
	case CornerNW, CornerSW:
		g.Width = math.Max(MinElementSize, start.Width-dx)
		g.X = start.X + start.Width - g.Width
	case CornerNE, CornerSE:
		g.Width = math.Max(MinElementSize, start.Width+dx)
	}
	switch corner {
	case CornerNW, CornerNE:
		g.Height = math.Max(MinElementSize, start.Height-dy)
		g.Y = start.Y + start.Height - g.Height
	case CornerSW, CornerSE:
		g.Height = math.Max(MinElementSize, start.Height+dy)
	}
	return g
}

// Clone returns a deep copy of the element
func (e *Element) Clone() *Element {
	clone := *e
	if e.Points != nil {
		clone.Points = make([]Point, len(e.Points))
		copy(clone.Points, e.Points)
	}
	return &clone
}

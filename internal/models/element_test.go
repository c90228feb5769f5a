package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewElement_Defaults(t *testing.T) {
	element := NewElement(KindRect, 10, 20)

	assert.Equal(t, KindRect, element.Kind)
	assert.Equal(t, 10.0, element.X)
	assert.Equal(t, 20.0, element.Y)
	assert.Equal(t, DefaultWidth, element.Width)
	assert.Equal(t, DefaultHeight, element.Height)
	assert.Equal(t, DefaultColor, element.Color)
	assert.Equal(t, DefaultOpacity, element.Opacity)
	assert.Equal(t, 1, element.ZIndex)
}

func TestNewElement_CircleGetsSquareBox(t *testing.T) {
	circle := NewElement(KindCircle, 0, 0)

	assert.Equal(t, DefaultWidth, circle.Width)
	assert.Equal(t, DefaultCircleHeight, circle.Height)
}

func TestElement_Validate(t *testing.T) {
	tests := []struct {
		name    string
		element *Element
		wantErr bool
	}{
		{"text", &Element{ID: 1, Kind: KindText, Width: 100, Height: 50}, false},
		{"rect", &Element{ID: 2, Kind: KindRect, Width: 100, Height: 50}, false},
		{"polygon with three points", &Element{ID: 3, Kind: KindPolygon, Width: 100, Height: 50, Points: []Point{{0, 0}, {50, 0}, {25, 50}}}, false},
		{"polygon with too few points", &Element{ID: 4, Kind: KindPolygon, Width: 100, Height: 50, Points: []Point{{0, 0}, {50, 0}}}, true},
		{"freeform without path", &Element{ID: 5, Kind: KindFreeform, Width: 100, Height: 50}, true},
		{"unknown kind", &Element{ID: 6, Kind: "sticker", Width: 100, Height: 50}, true},
		{"zero width", &Element{ID: 7, Kind: KindRect, Width: 0, Height: 50}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.element.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestElement_MoveTo_ClampsToSlideBounds(t *testing.T) {
	element := NewElement(KindRect, 0, 0)
	grid := Grid{}

	element.MoveTo(-50, -50, grid)
	assert.Equal(t, 0.0, element.X)
	assert.Equal(t, 0.0, element.Y)

	element.MoveTo(10000, 10000, grid)
	assert.Equal(t, SlideWidth-element.Width, element.X)
	assert.Equal(t, SlideHeight-element.Height, element.Y)
}

func TestElement_MoveTo_SnapsBeforeClamping(t *testing.T) {
	element := NewElement(KindRect, 0, 0)
	grid := Grid{Enabled: true, Size: 20}

	// 30 rounds up to 40, 29 rounds down to 20
	element.MoveTo(30, 29, grid)
	assert.Equal(t, 40.0, element.X)
	assert.Equal(t, 20.0, element.Y)
}

func TestElement_MoveTo_DisabledGridDoesNotSnap(t *testing.T) {
	element := NewElement(KindRect, 0, 0)

	element.MoveTo(33, 47, Grid{Enabled: false, Size: 20})

	assert.Equal(t, 33.0, element.X)
	assert.Equal(t, 47.0, element.Y)
}

func TestSnap_RoundsToNearestMultiple(t *testing.T) {
	assert.Equal(t, 40.0, Snap(30, 20))
	assert.Equal(t, 20.0, Snap(29.9, 20))
	assert.Equal(t, 0.0, Snap(9, 20))
	assert.Equal(t, -20.0, Snap(-15, 20))
}

func TestResizeGeometry_FloorAppliesToEveryCorner(t *testing.T) {
	start := Geometry{X: 100, Y: 100, Width: 120, Height: 80}

	// Pointer displacement pointing inward for each handle, far enough to
	// invert the box
	inward := map[Corner][2]float64{
		CornerNW: {500, 500},
		CornerNE: {-500, 500},
		CornerSW: {500, -500},
		CornerSE: {-500, -500},
	}

	for corner, d := range inward {
		t.Run(string(corner), func(t *testing.T) {
			g := ResizeGeometry(start, corner, d[0], d[1])
			assert.Equal(t, MinElementSize, g.Width)
			assert.Equal(t, MinElementSize, g.Height)
		})
	}
}

func TestResizeGeometry_SEGrowsFromPinnedOrigin(t *testing.T) {
	start := Geometry{X: 100, Y: 100, Width: 120, Height: 80}

	g := ResizeGeometry(start, CornerSE, 40, 30)

	assert.Equal(t, 100.0, g.X)
	assert.Equal(t, 100.0, g.Y)
	assert.Equal(t, 160.0, g.Width)
	assert.Equal(t, 110.0, g.Height)
}

func TestResizeGeometry_NWPinsOppositeCorner(t *testing.T) {
	start := Geometry{X: 100, Y: 100, Width: 120, Height: 80}

	g := ResizeGeometry(start, CornerNW, 40, 20)

	// The south-east corner stays at (220, 180)
	assert.Equal(t, 220.0, g.X+g.Width)
	assert.Equal(t, 180.0, g.Y+g.Height)
	assert.Equal(t, 80.0, g.Width)
	assert.Equal(t, 60.0, g.Height)
}

func TestResizeGeometry_NWShrinkBelowMinimumPinsCorner(t *testing.T) {
	start := Geometry{X: 100, Y: 100, Width: 120, Height: 80}

	// Dragging the nw handle past the se corner
	g := ResizeGeometry(start, CornerNW, 300, 300)

	assert.Equal(t, MinElementSize, g.Width)
	assert.Equal(t, MinElementSize, g.Height)
	assert.Equal(t, 220.0-MinElementSize, g.X)
	assert.Equal(t, 180.0-MinElementSize, g.Y)
}

func TestElement_Clone_DeepCopiesPoints(t *testing.T) {
	original := &Element{
		ID:     1,
		Kind:   KindPolygon,
		Width:  100,
		Height: 100,
		Points: []Point{{0, 0}, {50, 0}, {25, 50}},
	}

	clone := original.Clone()
	require.Len(t, clone.Points, 3)
	clone.Points[0].X = 99

	assert.Equal(t, 0.0, original.Points[0].X)
}

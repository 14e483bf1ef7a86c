package canvas

import (
	"testing"

	"draftboard/internal/document"
	"draftboard/pkg/geometry"
)

func shapeAt(id string, x, y, w, h float64) document.Element {
	el := document.NewShape(document.ShapeRectangle, geometry.NewRect(x, y, w, h))
	el.ID = document.ID(id)
	return el
}

func TestHandleAt(t *testing.T) {
	bounds := geometry.NewRect(100, 100, 200, 150)

	tests := []struct {
		name   string
		point  geometry.Point2D
		radius float64
		want   ResizeHandle
	}{
		{"exact top-left", geometry.NewPoint2D(100, 100), 8, HandleTopLeft},
		{"near top-left", geometry.NewPoint2D(106, 94), 8, HandleTopLeft},
		{"exact bottom-right", geometry.NewPoint2D(300, 250), 8, HandleBottomRight},
		{"top edge midpoint", geometry.NewPoint2D(200, 100), 8, HandleTop},
		{"right edge midpoint", geometry.NewPoint2D(300, 175), 8, HandleRight},
		{"bottom edge midpoint", geometry.NewPoint2D(200, 250), 8, HandleBottom},
		{"left edge midpoint", geometry.NewPoint2D(100, 175), 8, HandleLeft},
		{"interior misses", geometry.NewPoint2D(200, 175), 8, HandleNone},
		{"outside radius", geometry.NewPoint2D(100, 120), 8, HandleNone},
		{"larger radius catches", geometry.NewPoint2D(100, 115), 16, HandleTopLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandleAt(bounds, tt.point, tt.radius); got != tt.want {
				t.Errorf("HandleAt(%v, r=%v) = %v, want %v", tt.point, tt.radius, got, tt.want)
			}
		})
	}
}

func TestHandlePositions(t *testing.T) {
	bounds := geometry.NewRect(0, 0, 100, 60)
	want := map[ResizeHandle]geometry.Point2D{
		HandleTopLeft:     {X: 0, Y: 0},
		HandleTop:         {X: 50, Y: 0},
		HandleTopRight:    {X: 100, Y: 0},
		HandleRight:       {X: 100, Y: 30},
		HandleBottomRight: {X: 100, Y: 60},
		HandleBottom:      {X: 50, Y: 60},
		HandleBottomLeft:  {X: 0, Y: 60},
		HandleLeft:        {X: 0, Y: 30},
	}
	for h, p := range want {
		if got := h.Position(bounds); got != p {
			t.Errorf("%v.Position = %v, want %v", h, got, p)
		}
	}
}

func TestElementAtTopmostWins(t *testing.T) {
	// Later slice index is higher z-order.
	elements := []document.Element{
		shapeAt("back", 0, 0, 100, 100),
		shapeAt("front", 50, 50, 100, 100),
	}

	id, ok := ElementAt(elements, geometry.NewPoint2D(75, 75))
	if !ok || id != "front" {
		t.Errorf("overlap hit = %q, %v; want front", id, ok)
	}

	id, ok = ElementAt(elements, geometry.NewPoint2D(10, 10))
	if !ok || id != "back" {
		t.Errorf("back-only hit = %q, %v; want back", id, ok)
	}

	if _, ok := ElementAt(elements, geometry.NewPoint2D(500, 500)); ok {
		t.Error("empty space should miss")
	}
}

func TestElementsIn(t *testing.T) {
	elements := []document.Element{
		shapeAt("a", 10, 10, 50, 50),
		shapeAt("b", 150, 150, 40, 40),
		shapeAt("c", 500, 500, 50, 50),
	}

	// Partial overlap counts; containment is not required.
	ids := ElementsIn(elements, geometry.NewRect(0, 0, 200, 200))
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("ElementsIn = %v, want [a b]", ids)
	}

	// A dragged-up-and-left marquee arrives denormalized.
	ids = ElementsIn(elements, geometry.RectFromPoints(
		geometry.NewPoint2D(200, 200), geometry.NewPoint2D(0, 0)))
	if len(ids) != 2 {
		t.Errorf("denormalized marquee = %v, want two hits", ids)
	}

	if got := ElementsIn(elements, geometry.NewRect(300, 300, 10, 10)); len(got) != 0 {
		t.Errorf("empty region = %v, want none", got)
	}
}

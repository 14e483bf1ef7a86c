package canvas

import (
	"math"
	"testing"

	"draftboard/pkg/geometry"
)

func gridView(spacing float64) ViewConfig {
	return ViewConfig{Zoom: 1, GridSpacing: spacing, SnapToGrid: true, SnapToGuides: true}
}

func TestSnapMovedRectToGrid(t *testing.T) {
	// Element dragged to (123,157) with spacing 10 lands on (120,160).
	view := gridView(10)
	r := geometry.NewRect(123, 157, 50, 50)

	snapped, lines := SnapMovedRect(r, view, nil)
	if snapped.X != 120 || snapped.Y != 160 {
		t.Errorf("snapped origin = (%v,%v), want (120,160)", snapped.X, snapped.Y)
	}
	if snapped.Width != 50 || snapped.Height != 50 {
		t.Errorf("move snap changed size: %v", snapped)
	}
	if len(lines) != 2 {
		t.Errorf("snap lines = %v, want one per axis", lines)
	}
	for _, l := range lines {
		if l.Kind != SnapGrid {
			t.Errorf("line kind = %v, want grid", l.Kind)
		}
	}
}

func TestSnapMovedRectClosestEdgeWins(t *testing.T) {
	// Width 45 on a 10 grid: left edge at 123 needs -3, right edge at
	// 168 needs +2. The right edge wins and drags the rect with it.
	view := gridView(10)
	r := geometry.NewRect(123, 0, 45, 40)

	snapped, _ := SnapMovedRect(r, view, nil)
	if snapped.X != 125 {
		t.Errorf("snapped X = %v, want 125 (right edge to 170)", snapped.X)
	}
}

func TestGuideTakesPrecedenceOverGrid(t *testing.T) {
	view := gridView(10)
	guides := []Guide{{Vertical: true, Position: 123}}

	// The grid would pull X to 120, but a guide sits at 117 within the
	// threshold of the left edge at 118.
	p, lines := SnapPoint(geometry.NewPoint2D(118, 5), view, []Guide{{Vertical: true, Position: 117}})
	if p.X != 117 {
		t.Errorf("snapped X = %v, want guide at 117", p.X)
	}
	if lines[0].Kind != SnapGuide {
		t.Errorf("line kind = %v, want guide", lines[0].Kind)
	}

	snapped, lines2 := SnapMovedRect(geometry.NewRect(118, 0, 50, 50), view, guides)
	if snapped.X != 123 {
		t.Errorf("snapped X = %v, want guide at 123", snapped.X)
	}
	_ = lines2
}

func TestGuideThresholdScalesWithZoom(t *testing.T) {
	guides := []Guide{{Vertical: true, Position: 100}}

	// At zoom 1 the threshold is 8 document units: 106 snaps.
	view := ViewConfig{Zoom: 1, SnapToGuides: true}
	p, _ := SnapPoint(geometry.NewPoint2D(106, 0), view, guides)
	if p.X != 100 {
		t.Errorf("zoom 1: snapped X = %v, want 100", p.X)
	}

	// At zoom 2 the threshold halves to 4 document units: 106 is out of
	// reach, 103 is not.
	view.Zoom = 2
	p, _ = SnapPoint(geometry.NewPoint2D(106, 0), view, guides)
	if p.X != 106 {
		t.Errorf("zoom 2: snapped X = %v, want unchanged 106", p.X)
	}
	p, _ = SnapPoint(geometry.NewPoint2D(103, 0), view, guides)
	if p.X != 100 {
		t.Errorf("zoom 2 near: snapped X = %v, want 100", p.X)
	}
}

func TestSnapDisabled(t *testing.T) {
	view := ViewConfig{Zoom: 1, GridSpacing: 10}
	guides := []Guide{{Vertical: true, Position: 120}}

	p, lines := SnapPoint(geometry.NewPoint2D(123, 157), view, guides)
	if p.X != 123 || p.Y != 157 || lines != nil {
		t.Errorf("snapping disabled but point moved: %v %v", p, lines)
	}
}

func TestHorizontalGuideSnapsY(t *testing.T) {
	view := ViewConfig{Zoom: 1, SnapToGuides: true}
	guides := []Guide{{Vertical: false, Position: 200}}

	p, lines := SnapPoint(geometry.NewPoint2D(50, 195), view, guides)
	if p.Y != 200 || p.X != 50 {
		t.Errorf("snapped = %v, want Y 200 only", p)
	}
	if len(lines) != 1 || lines[0].Vertical {
		t.Errorf("lines = %v, want one horizontal", lines)
	}
}

func TestSnapResizedRectClampsMinSize(t *testing.T) {
	view := gridView(20)
	// Both vertical edges round to the same grid line; the clamp keeps
	// the rect from collapsing.
	r := geometry.NewRect(18, 0, 4, 50)
	snapped, _ := SnapResizedRect(r, view, nil)
	if snapped.Width < MinElementSize {
		t.Errorf("width %v below minimum", snapped.Width)
	}
	// Height edges 0 and 50 both sit on grid lines already.
	if snapped.Height != 50 {
		t.Errorf("height = %v, want 50", snapped.Height)
	}
}

func TestSnapResizedRectEdgesIndependent(t *testing.T) {
	view := gridView(10)
	r := geometry.NewRect(3, 4, 51, 43)

	snapped, _ := SnapResizedRect(r, view, nil)
	if snapped.X != 0 || snapped.Y != 0 {
		t.Errorf("origin = (%v,%v), want (0,0)", snapped.X, snapped.Y)
	}
	if math.Abs(snapped.Width-50) > 1e-9 || math.Abs(snapped.Height-50) > 1e-9 {
		t.Errorf("size = (%v,%v), want (50,50)", snapped.Width, snapped.Height)
	}
}

package canvas

import (
	"math"

	"draftboard/pkg/geometry"
)

// SnapThreshold is the guide attraction distance in device units. It is
// divided by the zoom factor before comparison so perceived sensitivity
// stays constant at any zoom level.
const SnapThreshold = 8.0

// SnapLineKind distinguishes what a position snapped to.
type SnapLineKind int

const (
	SnapGrid SnapLineKind = iota
	SnapGuide
)

// SnapLine is one active snap alignment, reported so the overlay can
// render feedback while a gesture is in progress.
type SnapLine struct {
	Kind     SnapLineKind
	Vertical bool
	Position float64 // document-space X (vertical) or Y (horizontal)
}

// axisSnap is one candidate snap on a single axis.
type axisSnap struct {
	value float64
	delta float64
	line  SnapLine
}

// snapAxis finds the snap target for a single coordinate. vertical is
// true when snapping an X coordinate (against vertical lines). Guides
// within the threshold win over the grid: a guide is explicit user
// intent.
func snapAxis(value float64, vertical bool, view ViewConfig, guides []Guide) (axisSnap, bool) {
	threshold := SnapThreshold / view.Zoom

	if view.SnapToGuides {
		best := axisSnap{}
		found := false
		for _, g := range guides {
			if g.Vertical != vertical {
				continue
			}
			d := g.Position - value
			if math.Abs(d) <= threshold && (!found || math.Abs(d) < math.Abs(best.delta)) {
				best = axisSnap{
					value: g.Position,
					delta: d,
					line:  SnapLine{Kind: SnapGuide, Vertical: vertical, Position: g.Position},
				}
				found = true
			}
		}
		if found {
			return best, true
		}
	}

	if view.SnapToGrid && view.GridSpacing > 0 {
		rounded := math.Round(value/view.GridSpacing) * view.GridSpacing
		return axisSnap{
			value: rounded,
			delta: rounded - value,
			line:  SnapLine{Kind: SnapGrid, Vertical: vertical, Position: rounded},
		}, true
	}

	return axisSnap{}, false
}

// SnapPoint adjusts a document-space point onto the grid and guides per
// the view settings, returning the snapped point and the active snap
// lines. With both snap flags off the point is returned unchanged.
func SnapPoint(p geometry.Point2D, view ViewConfig, guides []Guide) (geometry.Point2D, []SnapLine) {
	var lines []SnapLine
	if s, ok := snapAxis(p.X, true, view, guides); ok {
		p.X = s.value
		lines = append(lines, s.line)
	}
	if s, ok := snapAxis(p.Y, false, view, guides); ok {
		p.Y = s.value
		lines = append(lines, s.line)
	}
	return p, lines
}

// SnapMovedRect snaps a rectangle that is being translated: on each
// axis the edge with the smallest correction wins and the whole rect is
// shifted by that correction, so the size is preserved.
func SnapMovedRect(r geometry.Rect, view ViewConfig, guides []Guide) (geometry.Rect, []SnapLine) {
	var lines []SnapLine

	if s, ok := bestEdgeSnap([]float64{r.X, r.Right()}, true, view, guides); ok {
		r.X += s.delta
		lines = append(lines, s.line)
	}
	if s, ok := bestEdgeSnap([]float64{r.Y, r.Bottom()}, false, view, guides); ok {
		r.Y += s.delta
		lines = append(lines, s.line)
	}
	return r, lines
}

// bestEdgeSnap snaps each candidate edge coordinate and keeps the one
// needing the smallest correction, preferring guide snaps over grid
// snaps regardless of distance.
func bestEdgeSnap(edges []float64, vertical bool, view ViewConfig, guides []Guide) (axisSnap, bool) {
	var best axisSnap
	found := false
	for _, e := range edges {
		s, ok := snapAxis(e, vertical, view, guides)
		if !ok {
			continue
		}
		if !found {
			best, found = s, true
			continue
		}
		if s.line.Kind == SnapGuide && best.line.Kind == SnapGrid {
			best = s
			continue
		}
		if s.line.Kind == best.line.Kind && math.Abs(s.delta) < math.Abs(best.delta) {
			best = s
		}
	}
	return best, found
}

// SnapResizedRect snaps each edge of a rectangle independently, for use
// while resizing. Width and height are clamped to MinElementSize after
// snapping so a snap can never collapse the rectangle.
func SnapResizedRect(r geometry.Rect, view ViewConfig, guides []Guide) (geometry.Rect, []SnapLine) {
	var lines []SnapLine
	left, right := r.X, r.Right()
	top, bottom := r.Y, r.Bottom()

	if s, ok := snapAxis(left, true, view, guides); ok {
		left = s.value
		lines = append(lines, s.line)
	}
	if s, ok := snapAxis(right, true, view, guides); ok {
		right = s.value
		lines = append(lines, s.line)
	}
	if s, ok := snapAxis(top, false, view, guides); ok {
		top = s.value
		lines = append(lines, s.line)
	}
	if s, ok := snapAxis(bottom, false, view, guides); ok {
		bottom = s.value
		lines = append(lines, s.line)
	}

	return geometry.Rect{
		X:      left,
		Y:      top,
		Width:  math.Max(right-left, MinElementSize),
		Height: math.Max(bottom-top, MinElementSize),
	}, lines
}

package canvas

import (
	"math"

	"draftboard/internal/document"
	"draftboard/pkg/geometry"
)

// HandleHitRadius is the handle hit distance in device units at zoom 1.
// It is deliberately twice the rendered handle size so that a click that
// lands visually on a handle always starts a resize, even with some
// residual pointer error. Scaled by inverse zoom before use, like the
// snap threshold.
const HandleHitRadius = 16.0

// ResizeHandle identifies one of the eight fixed points on a selection's
// bounding box.
type ResizeHandle int

const (
	HandleNone ResizeHandle = iota
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// String returns the handle name.
func (h ResizeHandle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTop:
		return "top"
	case HandleTopRight:
		return "top-right"
	case HandleRight:
		return "right"
	case HandleBottomRight:
		return "bottom-right"
	case HandleBottom:
		return "bottom"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleLeft:
		return "left"
	default:
		return "none"
	}
}

// Position returns the handle's location on the given bounds.
func (h ResizeHandle) Position(bounds geometry.Rect) geometry.Point2D {
	cx := bounds.X + bounds.Width/2
	cy := bounds.Y + bounds.Height/2
	switch h {
	case HandleTopLeft:
		return geometry.Point2D{X: bounds.X, Y: bounds.Y}
	case HandleTop:
		return geometry.Point2D{X: cx, Y: bounds.Y}
	case HandleTopRight:
		return geometry.Point2D{X: bounds.Right(), Y: bounds.Y}
	case HandleRight:
		return geometry.Point2D{X: bounds.Right(), Y: cy}
	case HandleBottomRight:
		return geometry.Point2D{X: bounds.Right(), Y: bounds.Bottom()}
	case HandleBottom:
		return geometry.Point2D{X: cx, Y: bounds.Bottom()}
	case HandleBottomLeft:
		return geometry.Point2D{X: bounds.X, Y: bounds.Bottom()}
	case HandleLeft:
		return geometry.Point2D{X: bounds.X, Y: cy}
	default:
		return geometry.Point2D{}
	}
}

// handles lists all eight resize handles in hit-test order.
var handles = []ResizeHandle{
	HandleTopLeft, HandleTop, HandleTopRight, HandleRight,
	HandleBottomRight, HandleBottom, HandleBottomLeft, HandleLeft,
}

// AllHandles returns the eight resize handles, for rendering.
func AllHandles() []ResizeHandle {
	return handles
}

// HandleAt returns the resize handle of bounds within radius of the
// document-space point, or HandleNone. Distance is per-axis (a square
// hit zone), matching how handles are drawn.
func HandleAt(bounds geometry.Rect, p geometry.Point2D, radius float64) ResizeHandle {
	for _, h := range handles {
		hp := h.Position(bounds)
		if math.Abs(p.X-hp.X) <= radius && math.Abs(p.Y-hp.Y) <= radius {
			return h
		}
	}
	return HandleNone
}

// ElementAt returns the topmost element whose bounds contain the
// document-space point. Elements are scanned back-to-front, so a later
// (higher z-order) element wins ties.
func ElementAt(elements []document.Element, p geometry.Point2D) (document.ID, bool) {
	for i := len(elements) - 1; i >= 0; i-- {
		if elements[i].Bounds.Contains(p) {
			return elements[i].ID, true
		}
	}
	return "", false
}

// ElementsIn returns the ids of every element whose bounds intersect the
// document-space rectangle, in z-order. Used for marquee selection.
func ElementsIn(elements []document.Element, r geometry.Rect) []document.ID {
	r = r.Normalized()
	var ids []document.ID
	for _, el := range elements {
		if el.Bounds.Intersects(r) {
			ids = append(ids, el.ID)
		}
	}
	return ids
}

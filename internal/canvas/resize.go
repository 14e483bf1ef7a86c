package canvas

import (
	"draftboard/pkg/geometry"
)

// MinElementSize is the smallest width or height a resize or creation
// may produce, in document units. Resizing past it clamps instead of
// flipping the rectangle, so the gesture stays continuable.
const MinElementSize = 10.0

// ComputeResizedBounds returns the bounds that result from dragging the
// given handle of original by (dx, dy) in document units. Corner handles
// adjust two dimensions, edge handles one. Pure function, independent of
// element kind.
func ComputeResizedBounds(original geometry.Rect, handle ResizeHandle, dx, dy float64) geometry.Rect {
	r := original

	switch handle {
	case HandleTopLeft:
		r.X += dx
		r.Y += dy
		r.Width -= dx
		r.Height -= dy
	case HandleTop:
		r.Y += dy
		r.Height -= dy
	case HandleTopRight:
		r.Y += dy
		r.Width += dx
		r.Height -= dy
	case HandleRight:
		r.Width += dx
	case HandleBottomRight:
		r.Width += dx
		r.Height += dy
	case HandleBottom:
		r.Height += dy
	case HandleBottomLeft:
		r.X += dx
		r.Width -= dx
		r.Height += dy
	case HandleLeft:
		r.X += dx
		r.Width -= dx
	case HandleNone:
		return original
	}

	if r.Width < MinElementSize {
		r.Width = MinElementSize
	}
	if r.Height < MinElementSize {
		r.Height = MinElementSize
	}
	return r
}

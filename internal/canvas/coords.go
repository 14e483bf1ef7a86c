package canvas

import (
	"draftboard/pkg/geometry"
)

// ViewConfig describes how the document is currently presented: zoom
// factor, pan offset, and the fixed ruler margin, plus the grid and snap
// settings the engine consults. The host owns it; the engine only reads.
//
// Zoom must be positive and GridSpacing must be positive when grid snap
// is enabled; both are preconditions of the calling application.
type ViewConfig struct {
	Zoom   float64
	PanX   float64
	PanY   float64
	Margin float64 // ruler size in device units, applied on both axes

	GridSpacing  float64
	SnapToGrid   bool
	SnapToGuides bool
}

// DefaultView returns the view used for a freshly opened document.
func DefaultView() ViewConfig {
	return ViewConfig{
		Zoom:         1.0,
		Margin:       20,
		GridSpacing:  20,
		SnapToGrid:   true,
		SnapToGuides: true,
	}
}

// ToDocument converts a device-coordinate point (raw widget position) to
// document coordinates.
//
//	docX = (deviceX - margin - panX) / zoom
func (v ViewConfig) ToDocument(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: (p.X - v.Margin - v.PanX) / v.Zoom,
		Y: (p.Y - v.Margin - v.PanY) / v.Zoom,
	}
}

// ToDevice converts a document-coordinate point back to device
// coordinates. It is the exact algebraic inverse of ToDocument.
func (v ViewConfig) ToDevice(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: p.X*v.Zoom + v.Margin + v.PanX,
		Y: p.Y*v.Zoom + v.Margin + v.PanY,
	}
}

// DocumentRectToDevice converts a document-space rectangle to device
// space.
func (v ViewConfig) DocumentRectToDevice(r geometry.Rect) geometry.Rect {
	tl := v.ToDevice(r.TopLeft())
	br := v.ToDevice(r.BottomRight())
	return geometry.RectFromPoints(tl, br)
}

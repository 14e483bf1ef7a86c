package canvas

import (
	"draftboard/internal/document"
	"draftboard/pkg/geometry"
)

// Tool represents the current interaction tool. It determines what a
// pointer-down gesture becomes.
type Tool int

const (
	ToolSelect Tool = iota
	ToolRectangle
	ToolEllipse
	ToolLine
	ToolArrow
	ToolPolygon
	ToolText
	ToolImage
	ToolPan
)

// String returns the tool name.
func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolRectangle:
		return "rectangle"
	case ToolEllipse:
		return "ellipse"
	case ToolLine:
		return "line"
	case ToolArrow:
		return "arrow"
	case ToolPolygon:
		return "polygon"
	case ToolText:
		return "text"
	case ToolImage:
		return "image"
	case ToolPan:
		return "pan"
	default:
		return "unknown"
	}
}

// Cursor returns the cursor name a UI should show for the tool.
func (t Tool) Cursor() string {
	switch t {
	case ToolSelect:
		return "default"
	case ToolText:
		return "text"
	case ToolPan:
		return "grab"
	case ToolRectangle, ToolEllipse, ToolLine, ToolArrow, ToolPolygon, ToolImage:
		return "crosshair"
	default:
		return "default"
	}
}

// IsCreation returns true for tools that create a new element by
// dragging out its bounds.
func (t Tool) IsCreation() bool {
	switch t {
	case ToolRectangle, ToolEllipse, ToolLine, ToolArrow, ToolPolygon, ToolText, ToolImage:
		return true
	case ToolSelect, ToolPan:
		return false
	default:
		return false
	}
}

// CreateElement builds the element a creation gesture produces from its
// anchor and release points in document coordinates. Area tools
// normalize the dragged rectangle; line and arrow keep the dragged
// orientation through their bounds. Returns false for non-creation
// tools.
func (t Tool) CreateElement(anchor, current geometry.Point2D) (document.Element, bool) {
	bounds := geometry.RectFromPoints(anchor, current)
	if bounds.Width < MinElementSize {
		bounds.Width = MinElementSize
	}
	if bounds.Height < MinElementSize {
		bounds.Height = MinElementSize
	}

	switch t {
	case ToolRectangle:
		return document.NewShape(document.ShapeRectangle, bounds), true
	case ToolEllipse:
		return document.NewShape(document.ShapeEllipse, bounds), true
	case ToolLine:
		return document.NewShape(document.ShapeLine, bounds), true
	case ToolArrow:
		return document.NewShape(document.ShapeArrow, bounds), true
	case ToolPolygon:
		return document.NewShape(document.ShapePolygon, bounds), true
	case ToolText:
		return document.NewText(bounds, "Text"), true
	case ToolImage:
		return document.NewImage(bounds), true
	case ToolSelect, ToolPan:
		return document.Element{}, false
	default:
		return document.Element{}, false
	}
}

// Package document provides the page and element model for draftboard documents.
package document

import (
	"fmt"
	"sync/atomic"

	"draftboard/pkg/geometry"
)

// ID identifies a single element within a document.
type ID string

var idCounter atomic.Uint64

// NewID returns a fresh element identifier.
func NewID() ID {
	return ID(fmt.Sprintf("el-%06d", idCounter.Add(1)))
}

// Kind is the element kind tag. Every switch over Kind must list all
// constants so that adding a kind is a compile-visible checklist.
type Kind int

const (
	KindShape Kind = iota
	KindText
	KindImage
	KindFrame
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// ShapeKind distinguishes the geometric shapes. Only meaningful when the
// element Kind is KindShape.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeEllipse
	ShapeLine
	ShapeArrow
	ShapePolygon
)

// String returns the shape kind name.
func (s ShapeKind) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeEllipse:
		return "ellipse"
	case ShapeLine:
		return "line"
	case ShapeArrow:
		return "arrow"
	case ShapePolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Element is one record on a page. Z-order is the element's index within
// its page slice: later elements draw (and hit-test) on top.
type Element struct {
	ID     ID            `json:"id"`
	Kind   Kind          `json:"kind"`
	Shape  ShapeKind     `json:"shape,omitempty"`
	Bounds geometry.Rect `json:"bounds"`

	// Kind-specific payloads.
	Text      string `json:"text,omitempty"`       // KindText
	ImagePath string `json:"image_path,omitempty"` // KindImage
	Children  []ID   `json:"children,omitempty"`   // KindFrame
}

// NewShape creates a shape element with the given bounds.
func NewShape(shape ShapeKind, bounds geometry.Rect) Element {
	return Element{ID: NewID(), Kind: KindShape, Shape: shape, Bounds: bounds}
}

// NewText creates a text element with placeholder content.
func NewText(bounds geometry.Rect, text string) Element {
	return Element{ID: NewID(), Kind: KindText, Bounds: bounds, Text: text}
}

// NewImage creates an image element with no source assigned yet.
func NewImage(bounds geometry.Rect) Element {
	return Element{ID: NewID(), Kind: KindImage, Bounds: bounds}
}

// NewFrame creates a frame grouping the given children.
func NewFrame(bounds geometry.Rect, children []ID) Element {
	return Element{ID: NewID(), Kind: KindFrame, Bounds: bounds, Children: children}
}

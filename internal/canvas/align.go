package canvas

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"draftboard/pkg/geometry"
)

// Alignment identifies an edge or center to align selected elements on.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignTop
	AlignBottom
	AlignCenterH
	AlignCenterV
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignTop:
		return "top"
	case AlignBottom:
		return "bottom"
	case AlignCenterH:
		return "center-horizontal"
	case AlignCenterV:
		return "center-vertical"
	default:
		return "unknown"
	}
}

// AlignRects returns the input bounds aligned on the requested edge or
// center. Horizontal centering averages the element centers; edge
// alignment uses the extreme edge across the set.
func AlignRects(kind Alignment, rects []geometry.Rect) []geometry.Rect {
	if len(rects) == 0 {
		return nil
	}

	out := make([]geometry.Rect, len(rects))
	copy(out, rects)

	coords := make([]float64, len(rects))
	switch kind {
	case AlignLeft:
		for i, r := range rects {
			coords[i] = r.X
		}
		minX := floats.Min(coords)
		for i := range out {
			out[i].X = minX
		}
	case AlignRight:
		for i, r := range rects {
			coords[i] = r.Right()
		}
		maxRight := floats.Max(coords)
		for i := range out {
			out[i].X = maxRight - out[i].Width
		}
	case AlignTop:
		for i, r := range rects {
			coords[i] = r.Y
		}
		minY := floats.Min(coords)
		for i := range out {
			out[i].Y = minY
		}
	case AlignBottom:
		for i, r := range rects {
			coords[i] = r.Bottom()
		}
		maxBottom := floats.Max(coords)
		for i := range out {
			out[i].Y = maxBottom - out[i].Height
		}
	case AlignCenterH:
		for i, r := range rects {
			coords[i] = r.Center().X
		}
		cx := floats.Sum(coords) / float64(len(coords))
		for i := range out {
			out[i].X = cx - out[i].Width/2
		}
	case AlignCenterV:
		for i, r := range rects {
			coords[i] = r.Center().Y
		}
		cy := floats.Sum(coords) / float64(len(coords))
		for i := range out {
			out[i].Y = cy - out[i].Height/2
		}
	}
	return out
}

// DistributeRects spaces the bounds evenly between the two extremes on
// one axis. The first and last elements (by position) stay put; the rest
// are spread so the gaps between neighbors are equal. Needs at least
// three rects to do anything.
func DistributeRects(vertical bool, rects []geometry.Rect) []geometry.Rect {
	out := make([]geometry.Rect, len(rects))
	copy(out, rects)
	if len(rects) < 3 {
		return out
	}

	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if vertical {
			return rects[order[a]].Y < rects[order[b]].Y
		}
		return rects[order[a]].X < rects[order[b]].X
	})

	sizes := make([]float64, len(rects))
	for i, r := range rects {
		if vertical {
			sizes[i] = r.Height
		} else {
			sizes[i] = r.Width
		}
	}

	first, last := rects[order[0]], rects[order[len(order)-1]]
	var span, total float64
	if vertical {
		span = last.Bottom() - first.Y
	} else {
		span = last.Right() - first.X
	}
	total = floats.Sum(sizes)
	gap := (span - total) / float64(len(rects)-1)

	var pos float64
	if vertical {
		pos = first.Y
	} else {
		pos = first.X
	}
	for _, idx := range order {
		if vertical {
			out[idx].Y = pos
			pos += out[idx].Height + gap
		} else {
			out[idx].X = pos
			pos += out[idx].Width + gap
		}
	}
	return out
}

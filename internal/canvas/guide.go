package canvas

import "math"

// Guide is an infinite horizontal or vertical line at a document
// coordinate. Vertical guides sit at an X position, horizontal guides at
// a Y position.
type Guide struct {
	Vertical bool    `json:"vertical"`
	Position float64 `json:"position"`
}

// Guides is an ordered guide collection.
type Guides struct {
	guides []Guide
}

// Add appends a guide.
func (g *Guides) Add(guide Guide) {
	g.guides = append(g.guides, guide)
}

// List returns the guides. The returned slice is a copy.
func (g *Guides) List() []Guide {
	out := make([]Guide, len(g.guides))
	copy(out, g.guides)
	return out
}

// Len returns the number of guides.
func (g *Guides) Len() int {
	return len(g.guides)
}

// Clear removes all guides.
func (g *Guides) Clear() {
	g.guides = g.guides[:0]
}

// Near returns the index of the first guide with the given orientation
// within tolerance of pos, or -1.
func (g *Guides) Near(vertical bool, pos, tolerance float64) int {
	for i, guide := range g.guides {
		if guide.Vertical == vertical && math.Abs(guide.Position-pos) <= tolerance {
			return i
		}
	}
	return -1
}

// RemoveNear deletes the first guide with the given orientation within
// tolerance of pos. Returns true if a guide was removed.
func (g *Guides) RemoveNear(vertical bool, pos, tolerance float64) bool {
	i := g.Near(vertical, pos, tolerance)
	if i < 0 {
		return false
	}
	g.guides = append(g.guides[:i], g.guides[i+1:]...)
	return true
}

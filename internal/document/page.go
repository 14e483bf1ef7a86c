package document

import (
	"draftboard/pkg/geometry"
)

// Page holds an ordered set of elements. Slice order is z-order:
// index 0 is the back of the page.
type Page struct {
	Name     string        `json:"name,omitempty"`
	Size     geometry.Size `json:"size"`
	Elements []Element     `json:"elements"`
}

// NewPage creates an empty page of the given size.
func NewPage(size geometry.Size) *Page {
	return &Page{Size: size}
}

// ElementByID returns the element with the given id, if present.
func (p *Page) ElementByID(id ID) (Element, bool) {
	for _, el := range p.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// indexOf returns the z-index of the element, or -1.
func (p *Page) indexOf(id ID) int {
	for i, el := range p.Elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}

// Add appends an element at the top of the z-order and returns its id.
func (p *Page) Add(el Element) ID {
	p.Elements = append(p.Elements, el)
	return el.ID
}

// Remove deletes the element with the given id. Returns false if the id
// is not on the page.
func (p *Page) Remove(id ID) bool {
	i := p.indexOf(id)
	if i < 0 {
		return false
	}
	p.Elements = append(p.Elements[:i], p.Elements[i+1:]...)
	return true
}

// SetBounds replaces the bounds of the element with the given id.
// Returns false if the id is not on the page.
func (p *Page) SetBounds(id ID, bounds geometry.Rect) bool {
	i := p.indexOf(id)
	if i < 0 {
		return false
	}
	p.Elements[i].Bounds = bounds
	return true
}

// Translate moves the element with the given id by (dx, dy).
func (p *Page) Translate(id ID, dx, dy float64) bool {
	i := p.indexOf(id)
	if i < 0 {
		return false
	}
	p.Elements[i].Bounds = p.Elements[i].Bounds.Translate(dx, dy)
	return true
}

// BringToFront moves the element to the top of the z-order.
func (p *Page) BringToFront(id ID) bool {
	i := p.indexOf(id)
	if i < 0 {
		return false
	}
	el := p.Elements[i]
	p.Elements = append(p.Elements[:i], p.Elements[i+1:]...)
	p.Elements = append(p.Elements, el)
	return true
}

// SendToBack moves the element to the bottom of the z-order.
func (p *Page) SendToBack(id ID) bool {
	i := p.indexOf(id)
	if i < 0 {
		return false
	}
	el := p.Elements[i]
	p.Elements = append(p.Elements[:i], p.Elements[i+1:]...)
	p.Elements = append([]Element{el}, p.Elements...)
	return true
}

// Restack reorders the elements to match the given id order. Ids not on
// the page are skipped; elements absent from the order keep their
// relative position at the top.
func (p *Page) Restack(order []ID) {
	byID := make(map[ID]int, len(p.Elements))
	for i, el := range p.Elements {
		byID[el.ID] = i
	}
	out := make([]Element, 0, len(p.Elements))
	taken := make(map[ID]struct{}, len(order))
	for _, id := range order {
		if i, ok := byID[id]; ok {
			out = append(out, p.Elements[i])
			taken[id] = struct{}{}
		}
	}
	for _, el := range p.Elements {
		if _, ok := taken[el.ID]; !ok {
			out = append(out, el)
		}
	}
	p.Elements = out
}

// SetText replaces the text payload of a text element.
func (p *Page) SetText(id ID, text string) bool {
	i := p.indexOf(id)
	if i < 0 || p.Elements[i].Kind != KindText {
		return false
	}
	p.Elements[i].Text = text
	return true
}

// SetImagePath assigns the image source of an image element.
func (p *Page) SetImagePath(id ID, path string) bool {
	i := p.indexOf(id)
	if i < 0 || p.Elements[i].Kind != KindImage {
		return false
	}
	p.Elements[i].ImagePath = path
	return true
}

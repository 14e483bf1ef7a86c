package canvas

import (
	"draftboard/internal/document"
	"draftboard/pkg/geometry"
)

// Selection is the ordered set of selected element ids. It is a pure
// state container: it never triggers redraws and never touches the
// document. Ids may go stale when elements are deleted; Prune drops
// them, and consumers treat unknown ids as absent rather than fatal.
type Selection struct {
	ids []document.ID
}

// Select replaces the selection with the single given id.
func (s *Selection) Select(id document.ID) {
	s.ids = s.ids[:0]
	s.ids = append(s.ids, id)
}

// Add appends the id to the selection if not already present.
func (s *Selection) Add(id document.ID) {
	if s.Contains(id) {
		return
	}
	s.ids = append(s.ids, id)
}

// Remove deletes the id from the selection.
func (s *Selection) Remove(id document.ID) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

// Toggle adds the id if absent, removes it if present.
func (s *Selection) Toggle(id document.ID) {
	if s.Contains(id) {
		s.Remove(id)
	} else {
		s.Add(id)
	}
}

// Clear empties the selection. Clearing an empty selection is a no-op.
func (s *Selection) Clear() {
	s.ids = s.ids[:0]
}

// Contains returns true if the id is selected.
func (s *Selection) Contains(id document.ID) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// IDs returns the selected ids in selection order. The returned slice is
// a copy.
func (s *Selection) IDs() []document.ID {
	out := make([]document.ID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IsEmpty returns true if nothing is selected.
func (s *Selection) IsEmpty() bool {
	return len(s.ids) == 0
}

// Replace sets the selection to exactly the given ids, preserving order.
func (s *Selection) Replace(ids []document.ID) {
	s.ids = s.ids[:0]
	for _, id := range ids {
		s.Add(id)
	}
}

// Prune drops ids that no longer reference an element in the snapshot.
func (s *Selection) Prune(elements []document.Element) {
	live := make(map[document.ID]bool, len(elements))
	for _, el := range elements {
		live[el.ID] = true
	}
	kept := s.ids[:0]
	for _, id := range s.ids {
		if live[id] {
			kept = append(kept, id)
		}
	}
	s.ids = kept
}

// BoundingBox returns the union of the selected elements' bounds, or
// false if no selected id references a live element.
func (s *Selection) BoundingBox(elements []document.Element) (geometry.Rect, bool) {
	var box geometry.Rect
	found := false
	for _, el := range elements {
		if !s.Contains(el.ID) {
			continue
		}
		if !found {
			box = el.Bounds
			found = true
		} else {
			box = box.Union(el.Bounds)
		}
	}
	return box, found
}

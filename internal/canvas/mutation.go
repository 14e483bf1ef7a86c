package canvas

import (
	"errors"
	"fmt"

	"draftboard/internal/document"
	"draftboard/pkg/geometry"
)

// ErrStaleElement reports that a mutation's target element is no longer
// present in the document. It is recovered by aborting the gesture; it
// never reaches the user.
var ErrStaleElement = errors.New("canvas: element no longer exists")

// MutationKind identifies the document change a completed gesture or
// command requests.
type MutationKind int

const (
	MutationMove MutationKind = iota
	MutationResize
	MutationCreate
	MutationDelete
	MutationSetBounds
)

// String returns the mutation kind name.
func (k MutationKind) String() string {
	switch k {
	case MutationMove:
		return "move"
	case MutationResize:
		return "resize"
	case MutationCreate:
		return "create"
	case MutationDelete:
		return "delete"
	case MutationSetBounds:
		return "set-bounds"
	default:
		return "unknown"
	}
}

// Mutation is one logical document change. The engine emits exactly one
// per completed gesture (or per keyboard command), so undo granularity
// matches one user-visible action.
type Mutation struct {
	Kind    MutationKind
	Targets []document.ID

	DX, DY  float64                       // MutationMove
	Bounds  geometry.Rect                 // MutationResize (single target)
	ByID    map[document.ID]geometry.Rect // MutationSetBounds (align/distribute)
	Element *document.Element             // MutationCreate
}

// Label returns a short human-readable description, used as the undo
// entry title.
func (m Mutation) Label() string {
	switch m.Kind {
	case MutationMove:
		return fmt.Sprintf("Move %d element(s)", len(m.Targets))
	case MutationResize:
		return "Resize element"
	case MutationCreate:
		if m.Element != nil {
			return "Create " + m.Element.Kind.String()
		}
		return "Create element"
	case MutationDelete:
		return fmt.Sprintf("Delete %d element(s)", len(m.Targets))
	case MutationSetBounds:
		return fmt.Sprintf("Arrange %d element(s)", len(m.ByID))
	default:
		return "Edit"
	}
}

// ApplyMutation applies a mutation to the page. Stale ids in multi-target
// mutations are skipped silently; a resize whose single target vanished
// returns ErrStaleElement so the caller can abort the gesture.
func ApplyMutation(p *document.Page, m Mutation) error {
	switch m.Kind {
	case MutationMove:
		for _, id := range m.Targets {
			p.Translate(id, m.DX, m.DY)
		}
	case MutationResize:
		if len(m.Targets) != 1 {
			return fmt.Errorf("resize mutation needs one target, got %d", len(m.Targets))
		}
		if !p.SetBounds(m.Targets[0], m.Bounds) {
			return ErrStaleElement
		}
	case MutationCreate:
		if m.Element == nil {
			return errors.New("create mutation without element")
		}
		p.Add(*m.Element)
	case MutationDelete:
		for _, id := range m.Targets {
			p.Remove(id)
		}
	case MutationSetBounds:
		for id, bounds := range m.ByID {
			p.SetBounds(id, bounds)
		}
	default:
		return fmt.Errorf("unknown mutation kind %d", m.Kind)
	}
	return nil
}

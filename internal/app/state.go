// Package app provides application lifecycle management, state, and events.
package app

import (
	"fmt"
	"sort"
	"sync"

	"draftboard/internal/canvas"
	"draftboard/internal/document"
	"draftboard/internal/history"
	"draftboard/pkg/geometry"
)

// Zoom limits for the canvas view.
const (
	MinZoom = 0.1
	MaxZoom = 8.0
)

// EventType identifies different application events.
type EventType int

const (
	EventDocumentLoaded EventType = iota
	EventDocumentSaved
	EventModified
	EventSelectionChanged
	EventCanvasChanged
	EventViewChanged
	EventToolChanged
	EventHistoryChanged
	EventBeginEdit
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the open document, the view, the
// canvas interactor, and undo history. It implements canvas.Host so the
// interaction engine can read the document and view without owning them.
type State struct {
	mu sync.RWMutex

	DocumentPath string
	Modified     bool

	doc    *document.Document
	view   canvas.ViewConfig
	guides canvas.Guides

	interactor *canvas.Interactor
	undo       *history.Stack

	listeners map[EventType][]EventListener
}

// NewState creates application state with a fresh untitled document.
func NewState() *State {
	s := &State{
		doc:       document.New("Untitled"),
		view:      canvas.DefaultView(),
		undo:      history.NewStack(history.DefaultLimit),
		listeners: make(map[EventType][]EventListener),
	}
	s.interactor = canvas.NewInteractor(s)
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Elements returns the elements of the active page in z-order.
func (s *State) Elements() []document.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ActivePage().Elements
}

// View returns the current view configuration.
func (s *State) View() canvas.ViewConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Guides returns the alignment guides of the document.
func (s *State) Guides() []canvas.Guide {
	return s.guides.List()
}

// Interactor returns the canvas interaction engine.
func (s *State) Interactor() *canvas.Interactor {
	return s.interactor
}

// Document returns the open document.
func (s *State) Document() *document.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// SetModified marks the document as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// HandleCanvasEvent feeds one input event to the interactor and acts on
// the resulting effects: mutations are committed to the document with
// undo support, and the appropriate events are emitted for the UI.
func (s *State) HandleCanvasEvent(ev canvas.Event) {
	s.ApplyEffects(s.interactor.HandleEvent(ev))
}

// ApplyEffects carries out the effects an interactor call produced.
func (s *State) ApplyEffects(fx canvas.Effects) {
	if fx.Mutation != nil {
		if err := s.Commit(*fx.Mutation); err != nil {
			// The gesture target vanished; nothing was changed.
			fx.Mutation = nil
		}
	}
	if fx.SelectionChanged {
		s.Emit(EventSelectionChanged, s.interactor.Selection().IDs())
	}
	if fx.ToolChanged {
		s.Emit(EventToolChanged, s.interactor.Tool())
	}
	if fx.BeginEdit != nil {
		s.Emit(EventBeginEdit, *fx.BeginEdit)
	}
	if fx.Redraw || fx.Mutation != nil {
		s.Emit(EventCanvasChanged, nil)
	}
}

// Commit applies one mutation to the active page as a single undo step.
func (s *State) Commit(m canvas.Mutation) error {
	s.mu.Lock()
	page := s.doc.ActivePage()
	cmd, err := mutationCommand(page, m)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	err = s.undo.Do(cmd)
	if err == nil {
		s.doc.Touch()
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.SetModified(true)
	s.Emit(EventHistoryChanged, nil)
	return nil
}

// mutationCommand builds the undoable command for a mutation, capturing
// whatever prior state its revert needs. The caller holds the lock.
func mutationCommand(page *document.Page, m canvas.Mutation) (history.Command, error) {
	label := m.Label()

	switch m.Kind {
	case canvas.MutationMove:
		targets := append([]document.ID(nil), m.Targets...)
		dx, dy := m.DX, m.DY
		return history.Func{
			Name: label,
			DoFn: func() error {
				for _, id := range targets {
					page.Translate(id, dx, dy)
				}
				return nil
			},
			UndoFn: func() error {
				for _, id := range targets {
					page.Translate(id, -dx, -dy)
				}
				return nil
			},
		}, nil

	case canvas.MutationResize:
		if len(m.Targets) != 1 {
			return nil, fmt.Errorf("resize needs one target, got %d", len(m.Targets))
		}
		id := m.Targets[0]
		prev, ok := page.ElementByID(id)
		if !ok {
			return nil, canvas.ErrStaleElement
		}
		prior, next := prev.Bounds, m.Bounds
		return history.Func{
			Name:   label,
			DoFn:   func() error { page.SetBounds(id, next); return nil },
			UndoFn: func() error { page.SetBounds(id, prior); return nil },
		}, nil

	case canvas.MutationCreate:
		if m.Element == nil {
			return nil, fmt.Errorf("create mutation without element")
		}
		el := *m.Element
		return history.Func{
			Name:   label,
			DoFn:   func() error { page.Add(el); return nil },
			UndoFn: func() error { page.Remove(el.ID); return nil },
		}, nil

	case canvas.MutationDelete:
		// Capture deleted elements with their z-indices so revert can
		// put them back where they were.
		type slot struct {
			index int
			el    document.Element
		}
		var slots []slot
		for _, id := range m.Targets {
			for i, el := range page.Elements {
				if el.ID == id {
					slots = append(slots, slot{index: i, el: el})
					break
				}
			}
		}
		sort.Slice(slots, func(a, b int) bool { return slots[a].index < slots[b].index })
		return history.Func{
			Name: label,
			DoFn: func() error {
				for _, sl := range slots {
					page.Remove(sl.el.ID)
				}
				return nil
			},
			UndoFn: func() error {
				for _, sl := range slots {
					i := sl.index
					if i > len(page.Elements) {
						i = len(page.Elements)
					}
					page.Elements = append(page.Elements[:i],
						append([]document.Element{sl.el}, page.Elements[i:]...)...)
				}
				return nil
			},
		}, nil

	case canvas.MutationSetBounds:
		prior := make(map[document.ID]geometry.Rect, len(m.ByID))
		for id := range m.ByID {
			if el, ok := page.ElementByID(id); ok {
				prior[id] = el.Bounds
			}
		}
		next := m.ByID
		return history.Func{
			Name: label,
			DoFn: func() error {
				for id, b := range next {
					page.SetBounds(id, b)
				}
				return nil
			},
			UndoFn: func() error {
				for id, b := range prior {
					page.SetBounds(id, b)
				}
				return nil
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown mutation kind %v", m.Kind)
	}
}

// Undo reverts the last committed change.
func (s *State) Undo() {
	s.mu.Lock()
	ok, err := s.undo.Undo()
	s.mu.Unlock()
	if err != nil || !ok {
		return
	}
	s.interactor.Selection().Prune(s.Elements())
	s.SetModified(true)
	s.Emit(EventHistoryChanged, nil)
	s.Emit(EventCanvasChanged, nil)
}

// Redo re-applies the last undone change.
func (s *State) Redo() {
	s.mu.Lock()
	ok, err := s.undo.Redo()
	s.mu.Unlock()
	if err != nil || !ok {
		return
	}
	s.SetModified(true)
	s.Emit(EventHistoryChanged, nil)
	s.Emit(EventCanvasChanged, nil)
}

// History exposes the undo stack for menu state (labels, enablement).
func (s *State) History() *history.Stack {
	return s.undo
}

// SetZoom sets the zoom factor, clamped to the supported range.
func (s *State) SetZoom(zoom float64) {
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	s.mu.Lock()
	s.view.Zoom = zoom
	s.mu.Unlock()
	s.Emit(EventViewChanged, nil)
	s.Emit(EventCanvasChanged, nil)
}

// ZoomBy multiplies the current zoom by factor.
func (s *State) ZoomBy(factor float64) {
	s.SetZoom(s.View().Zoom * factor)
}

// PanBy shifts the view by (dx, dy) device units.
func (s *State) PanBy(dx, dy float64) {
	s.mu.Lock()
	s.view.PanX += dx
	s.view.PanY += dy
	s.mu.Unlock()
	s.Emit(EventViewChanged, nil)
	s.Emit(EventCanvasChanged, nil)
}

// SetSnapToGrid toggles grid snapping.
func (s *State) SetSnapToGrid(on bool) {
	s.mu.Lock()
	s.view.SnapToGrid = on
	s.mu.Unlock()
	s.Emit(EventViewChanged, nil)
}

// SetSnapToGuides toggles guide snapping.
func (s *State) SetSnapToGuides(on bool) {
	s.mu.Lock()
	s.view.SnapToGuides = on
	s.mu.Unlock()
	s.Emit(EventViewChanged, nil)
}

// SetGridSpacing sets the snap grid spacing in document units.
func (s *State) SetGridSpacing(spacing float64) {
	if spacing <= 0 {
		return
	}
	s.mu.Lock()
	s.view.GridSpacing = spacing
	s.mu.Unlock()
	s.Emit(EventViewChanged, nil)
	s.Emit(EventCanvasChanged, nil)
}

// AddGuide adds an alignment guide and redraws.
func (s *State) AddGuide(vertical bool, position float64) {
	s.guides.Add(canvas.Guide{Vertical: vertical, Position: position})
	s.Emit(EventCanvasChanged, nil)
}

// RemoveGuideNear removes the guide closest to position within
// tolerance, if any.
func (s *State) RemoveGuideNear(vertical bool, position, tolerance float64) bool {
	removed := s.guides.RemoveNear(vertical, position, tolerance)
	if removed {
		s.Emit(EventCanvasChanged, nil)
	}
	return removed
}

// ClearGuides removes all guides.
func (s *State) ClearGuides() {
	s.guides.Clear()
	s.Emit(EventCanvasChanged, nil)
}

// NewDocument replaces the open document with a fresh untitled one.
func (s *State) NewDocument() {
	s.mu.Lock()
	s.doc = document.New("Untitled")
	s.DocumentPath = ""
	s.Modified = false
	s.view = canvas.DefaultView()
	s.undo.Clear()
	s.mu.Unlock()

	s.interactor.Selection().Clear()
	s.guides.Clear()
	s.Emit(EventDocumentLoaded, s.doc)
	s.Emit(EventCanvasChanged, nil)
}

// LoadDocument opens a document from a project file.
func (s *State) LoadDocument(path string) error {
	doc, err := document.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.doc = doc
	s.DocumentPath = path
	s.Modified = false
	s.undo.Clear()
	s.mu.Unlock()

	s.interactor.Selection().Clear()
	s.Emit(EventDocumentLoaded, doc)
	s.Emit(EventCanvasChanged, nil)
	return nil
}

// SaveDocument writes the document to the given path.
func (s *State) SaveDocument(path string) error {
	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()

	if err := doc.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.DocumentPath = path
	s.mu.Unlock()
	s.SetModified(false)
	s.Emit(EventDocumentSaved, path)
	return nil
}

// EditElementText replaces the text of a text element as an undoable
// step. No-op if the id is stale or the element is not text.
func (s *State) EditElementText(id document.ID, text string) {
	s.mu.Lock()
	page := s.doc.ActivePage()
	prev, ok := page.ElementByID(id)
	if !ok || prev.Kind != document.KindText || prev.Text == text {
		s.mu.Unlock()
		return
	}
	prior := prev.Text
	err := s.undo.Do(history.Func{
		Name:   "Edit text",
		DoFn:   func() error { page.SetText(id, text); return nil },
		UndoFn: func() error { page.SetText(id, prior); return nil },
	})
	if err == nil {
		s.doc.Touch()
	}
	s.mu.Unlock()
	s.SetModified(true)
	s.Emit(EventHistoryChanged, nil)
	s.Emit(EventCanvasChanged, nil)
}

// SetElementImage assigns the image source of an image element as an
// undoable step.
func (s *State) SetElementImage(id document.ID, path string) {
	s.mu.Lock()
	page := s.doc.ActivePage()
	prev, ok := page.ElementByID(id)
	if !ok || prev.Kind != document.KindImage || prev.ImagePath == path {
		s.mu.Unlock()
		return
	}
	prior := prev.ImagePath
	err := s.undo.Do(history.Func{
		Name:   "Set image",
		DoFn:   func() error { page.SetImagePath(id, path); return nil },
		UndoFn: func() error { page.SetImagePath(id, prior); return nil },
	})
	if err == nil {
		s.doc.Touch()
	}
	s.mu.Unlock()
	s.SetModified(true)
	s.Emit(EventHistoryChanged, nil)
	s.Emit(EventCanvasChanged, nil)
}

// BringToFront raises the selected elements to the top of the z-order as
// an undoable step.
func (s *State) BringToFront() {
	s.reorder("Bring to front", func(page *document.Page, id document.ID) bool {
		return page.BringToFront(id)
	})
}

// SendToBack lowers the selected elements to the bottom of the z-order as
// an undoable step.
func (s *State) SendToBack() {
	s.reorder("Send to back", func(page *document.Page, id document.ID) bool {
		return page.SendToBack(id)
	})
}

func (s *State) reorder(label string, op func(*document.Page, document.ID) bool) {
	ids := s.interactor.Selection().IDs()
	if len(ids) == 0 {
		return
	}
	s.mu.Lock()
	page := s.doc.ActivePage()
	prior := stackOrder(page)
	changed := false
	for _, id := range ids {
		if op(page, id) {
			changed = true
		}
	}
	after := stackOrder(page)
	if !changed || idOrderEqual(prior, after) {
		s.mu.Unlock()
		return
	}
	// The op already ran; record the before/after orders so undo and redo
	// restore them wholesale.
	s.undo.Push(history.Func{
		Name:   label,
		DoFn:   func() error { page.Restack(after); return nil },
		UndoFn: func() error { page.Restack(prior); return nil },
	})
	s.doc.Touch()
	s.mu.Unlock()
	s.SetModified(true)
	s.Emit(EventHistoryChanged, nil)
	s.Emit(EventCanvasChanged, nil)
}

func stackOrder(page *document.Page) []document.ID {
	order := make([]document.ID, len(page.Elements))
	for i, el := range page.Elements {
		order[i] = el.ID
	}
	return order
}

func idOrderEqual(a, b []document.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

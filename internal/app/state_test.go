package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftboard/internal/canvas"
	"draftboard/internal/document"
	"draftboard/pkg/geometry"
)

func addShape(t *testing.T, s *State, id string, x, y, w, h float64) {
	t.Helper()
	el := document.NewShape(document.ShapeRectangle, geometry.NewRect(x, y, w, h))
	el.ID = document.ID(id)
	require.NoError(t, s.Commit(canvas.Mutation{Kind: canvas.MutationCreate, Element: &el}))
}

func pointer(phase canvas.Phase, x, y float64) canvas.PointerEvent {
	return canvas.PointerEvent{
		Phase:     phase,
		Pos:       geometry.NewPoint2D(x, y),
		Timestamp: time.Now(),
	}
}

func flatView(s *State) {
	// Strip margin and snapping so test coordinates read directly.
	s.SetSnapToGrid(false)
	s.SetSnapToGuides(false)
	s.mu.Lock()
	s.view.Margin = 0
	s.mu.Unlock()
}

func TestDragGestureCommitsAndUndoes(t *testing.T) {
	s := NewState()
	flatView(s)
	addShape(t, s, "a", 100, 100, 50, 50)

	s.HandleCanvasEvent(pointer(canvas.PhasePress, 120, 120))
	s.HandleCanvasEvent(pointer(canvas.PhaseMove, 170, 140))
	s.HandleCanvasEvent(pointer(canvas.PhaseRelease, 170, 140))

	el, ok := s.Document().ActivePage().ElementByID("a")
	require.True(t, ok)
	assert.Equal(t, geometry.NewRect(150, 120, 50, 50), el.Bounds)
	assert.True(t, s.Modified)

	s.Undo()
	el, _ = s.Document().ActivePage().ElementByID("a")
	assert.Equal(t, geometry.NewRect(100, 100, 50, 50), el.Bounds)

	s.Redo()
	el, _ = s.Document().ActivePage().ElementByID("a")
	assert.Equal(t, geometry.NewRect(150, 120, 50, 50), el.Bounds)
}

func TestDeleteUndoRestoresZOrder(t *testing.T) {
	s := NewState()
	addShape(t, s, "back", 0, 0, 10, 10)
	addShape(t, s, "mid", 0, 0, 10, 10)
	addShape(t, s, "front", 0, 0, 10, 10)

	require.NoError(t, s.Commit(canvas.Mutation{
		Kind:    canvas.MutationDelete,
		Targets: []document.ID{"mid"},
	}))
	page := s.Document().ActivePage()
	require.Len(t, page.Elements, 2)

	s.Undo()
	page = s.Document().ActivePage()
	require.Len(t, page.Elements, 3)
	assert.Equal(t, document.ID("back"), page.Elements[0].ID)
	assert.Equal(t, document.ID("mid"), page.Elements[1].ID)
	assert.Equal(t, document.ID("front"), page.Elements[2].ID)
}

func TestUndoPrunesStaleSelection(t *testing.T) {
	s := NewState()
	addShape(t, s, "a", 0, 0, 10, 10)
	s.Interactor().Selection().Select("a")

	// Undo the creation; the selection must not keep pointing at it.
	s.Undo()
	assert.True(t, s.Interactor().Selection().IsEmpty())
}

func TestZoomClamped(t *testing.T) {
	s := NewState()
	s.SetZoom(100)
	assert.Equal(t, MaxZoom, s.View().Zoom)
	s.SetZoom(0.0001)
	assert.Equal(t, MinZoom, s.View().Zoom)
	s.SetZoom(2)
	s.ZoomBy(2)
	assert.Equal(t, 4.0, s.View().Zoom)
}

func TestEventListeners(t *testing.T) {
	s := NewState()
	var got []EventType
	s.On(EventModified, func(interface{}) { got = append(got, EventModified) })
	s.On(EventHistoryChanged, func(interface{}) { got = append(got, EventHistoryChanged) })

	addShape(t, s, "a", 0, 0, 10, 10)
	assert.Contains(t, got, EventModified)
	assert.Contains(t, got, EventHistoryChanged)
}

func TestSaveAndLoadDocument(t *testing.T) {
	s := NewState()
	addShape(t, s, "a", 5, 6, 20, 20)

	path := filepath.Join(t.TempDir(), "doc.draftboard")
	require.NoError(t, s.SaveDocument(path))
	assert.False(t, s.Modified)

	s2 := NewState()
	require.NoError(t, s2.LoadDocument(path))
	el, ok := s2.Document().ActivePage().ElementByID("a")
	require.True(t, ok)
	assert.Equal(t, geometry.NewRect(5, 6, 20, 20), el.Bounds)
	assert.False(t, s2.History().CanUndo())
}

func TestReorderSelection(t *testing.T) {
	s := NewState()
	addShape(t, s, "a", 0, 0, 10, 10)
	addShape(t, s, "b", 0, 0, 10, 10)
	s.Interactor().Selection().Select("a")

	s.BringToFront()
	page := s.Document().ActivePage()
	assert.Equal(t, document.ID("a"), page.Elements[1].ID)

	s.SendToBack()
	page = s.Document().ActivePage()
	assert.Equal(t, document.ID("a"), page.Elements[0].ID)
}

func TestReorderUndoRestoresOrder(t *testing.T) {
	s := NewState()
	addShape(t, s, "back", 0, 0, 10, 10)
	addShape(t, s, "mid", 0, 0, 10, 10)
	addShape(t, s, "front", 0, 0, 10, 10)
	s.Interactor().Selection().Select("back")

	s.BringToFront()
	page := s.Document().ActivePage()
	require.Equal(t, document.ID("back"), page.Elements[2].ID)
	assert.Equal(t, "Bring to front", s.History().UndoLabel())

	s.Undo()
	page = s.Document().ActivePage()
	assert.Equal(t, document.ID("back"), page.Elements[0].ID)
	assert.Equal(t, document.ID("mid"), page.Elements[1].ID)
	assert.Equal(t, document.ID("front"), page.Elements[2].ID)

	s.Redo()
	page = s.Document().ActivePage()
	assert.Equal(t, document.ID("back"), page.Elements[2].ID)

	// Lowering the element already at the bottom records nothing.
	s.Interactor().Selection().Select("mid")
	s.SendToBack()
	assert.Equal(t, "Bring to front", s.History().UndoLabel())
}

func TestStaleResizeCommitFails(t *testing.T) {
	s := NewState()
	err := s.Commit(canvas.Mutation{
		Kind:    canvas.MutationResize,
		Targets: []document.ID{"ghost"},
		Bounds:  geometry.NewRect(0, 0, 10, 10),
	})
	assert.ErrorIs(t, err, canvas.ErrStaleElement)
	assert.False(t, s.History().CanUndo())
}

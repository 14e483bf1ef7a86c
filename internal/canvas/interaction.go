package canvas

import (
	"draftboard/internal/document"
	"draftboard/pkg/geometry"
)

// clickDragThreshold is the device-unit distance a pointer must travel
// before a press turns into a drag. Below it, release is a plain click
// and no mutation is committed.
const clickDragThreshold = 3.0

// nudgeStep is how far arrow keys move the selection, in document units.
// Shift multiplies it by ten.
const nudgeStep = 1.0

// Host gives the interactor read access to the state it reacts to. The
// interactor never mutates the document directly; it emits Mutations and
// the host applies them.
type Host interface {
	Elements() []document.Element
	View() ViewConfig
	Guides() []Guide
}

// EditRequest asks the host to open an in-place editor for an element,
// typically after a double click.
type EditRequest struct {
	ID   document.ID
	Kind document.Kind
}

// Effects describes everything a single event caused. Zero value means
// the event was absorbed with nothing to do.
type Effects struct {
	Redraw           bool
	SelectionChanged bool
	ToolChanged      bool
	Mutation         *Mutation
	BeginEdit        *EditRequest
}

// GestureKind is the interactor's current gesture state.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureDragging
	GestureResizing
	GestureMarquee
	GestureCreating
)

// String returns the gesture name.
func (g GestureKind) String() string {
	switch g {
	case GestureNone:
		return "none"
	case GestureDragging:
		return "dragging"
	case GestureResizing:
		return "resizing"
	case GestureMarquee:
		return "marquee"
	case GestureCreating:
		return "creating"
	default:
		return "unknown"
	}
}

// gesture holds everything a pointer gesture accumulates between press
// and release. One mutation is built from it at release time.
type gesture struct {
	kind        GestureKind
	pressDevice geometry.Point2D
	anchor      geometry.Point2D // document units
	current     geometry.Point2D // document units
	moved       bool

	// dragging
	dragIDs []document.ID
	dx, dy  float64
	baseSel []document.ID // marquee: selection at press (shift-marquee extends it)

	// resizing
	target   document.ID
	handle   ResizeHandle
	original geometry.Rect
}

// Interactor is the single owner of gesture and selection state. Feed it
// events through HandleEvent; everything else is read-only accessors for
// the rendering layer.
type Interactor struct {
	host      Host
	sel       Selection
	tool      Tool
	g         gesture
	clicks    clickTracker
	preview   map[document.ID]geometry.Rect
	snapLines []SnapLine
}

// NewInteractor returns an interactor in the Idle state with the Select
// tool active.
func NewInteractor(host Host) *Interactor {
	return &Interactor{
		host:    host,
		tool:    ToolSelect,
		preview: map[document.ID]geometry.Rect{},
	}
}

// Selection exposes the live selection. Callers may read it freely;
// mutations should go through events or the explicit commands below so
// the interactor stays consistent.
func (it *Interactor) Selection() *Selection {
	return &it.sel
}

// Tool returns the active tool.
func (it *Interactor) Tool() Tool {
	return it.tool
}

// SetTool switches the active tool, cancelling any gesture in flight.
func (it *Interactor) SetTool(tool Tool) Effects {
	var fx Effects
	if tool == it.tool {
		return fx
	}
	if it.g.kind != GestureNone {
		it.cancelGesture()
		fx.Redraw = true
	}
	it.tool = tool
	fx.ToolChanged = true
	return fx
}

// State reports the current gesture state.
func (it *Interactor) State() GestureKind {
	return it.g.kind
}

// PreviewBounds returns the live bounds of an element while a drag or
// resize is in flight, so the overlay can draw the element where the
// pointer has it rather than where the document still has it.
func (it *Interactor) PreviewBounds(id document.ID) (geometry.Rect, bool) {
	r, ok := it.preview[id]
	return r, ok
}

// Marquee returns the rubber-band rectangle in document units while a
// marquee or creation gesture is in flight.
func (it *Interactor) Marquee() (geometry.Rect, bool) {
	if it.g.kind != GestureMarquee && it.g.kind != GestureCreating {
		return geometry.Rect{}, false
	}
	return geometry.RectFromPoints(it.g.anchor, it.g.current), true
}

// SnapLines returns the snap indicator lines for the gesture in flight.
func (it *Interactor) SnapLines() []SnapLine {
	return it.snapLines
}

// HandleEvent is the single entry point for input. It advances the
// gesture state machine and returns the effects the host must act on.
func (it *Interactor) HandleEvent(ev Event) Effects {
	switch e := ev.(type) {
	case PointerEvent:
		switch e.Phase {
		case PhasePress:
			return it.pointerDown(e)
		case PhaseMove:
			return it.pointerMove(e)
		case PhaseRelease:
			return it.pointerUp(e)
		}
	case KeyEvent:
		return it.keyDown(e)
	}
	return Effects{}
}

func (it *Interactor) pointerDown(e PointerEvent) Effects {
	var fx Effects
	view := it.host.View()
	docPos := view.ToDocument(e.Pos)
	count := it.clicks.record(e.Pos, e.Timestamp)

	it.g = gesture{
		kind:        GestureNone,
		pressDevice: e.Pos,
		anchor:      docPos,
		current:     docPos,
	}

	if it.tool.IsCreation() {
		snapped, _ := SnapPoint(docPos, view, it.host.Guides())
		it.g.kind = GestureCreating
		it.g.anchor = snapped
		it.g.current = snapped
		fx.Redraw = true
		return fx
	}
	if it.tool != ToolSelect {
		// Pan and future tools are handled by the host.
		return fx
	}

	elements := it.host.Elements()

	// Resize handles win over everything underneath them. Every selected
	// element's handles are live; the first hit in selection order wins.
	radius := HandleHitRadius / view.Zoom
	for _, id := range it.sel.IDs() {
		el, ok := elementByID(elements, id)
		if !ok {
			continue
		}
		if h := HandleAt(el.Bounds, docPos, radius); h != HandleNone {
			it.g.kind = GestureResizing
			it.g.target = id
			it.g.handle = h
			it.g.original = el.Bounds
			it.preview[id] = el.Bounds
			fx.Redraw = true
			return fx
		}
	}

	hit, ok := ElementAt(elements, docPos)
	if !ok {
		// Empty canvas: start a marquee. Shift keeps the current
		// selection as the base to extend; otherwise it clears.
		it.g.kind = GestureMarquee
		if e.Modifiers.HasShift() {
			it.g.baseSel = it.sel.IDs()
		} else if !it.sel.IsEmpty() {
			it.sel.Clear()
			fx.SelectionChanged = true
		}
		fx.Redraw = true
		return fx
	}

	if count == 2 {
		el, _ := elementByID(elements, hit)
		if !it.sel.Contains(hit) {
			it.sel.Select(hit)
			fx.SelectionChanged = true
		}
		it.clicks.reset()
		fx.BeginEdit = &EditRequest{ID: hit, Kind: el.Kind}
		fx.Redraw = true
		return fx
	}

	switch {
	case e.Modifiers.HasShift():
		it.sel.Add(hit)
		fx.SelectionChanged = true
	case e.Modifiers.HasCtrl() || e.Modifiers.HasMeta():
		it.sel.Toggle(hit)
		fx.SelectionChanged = true
	case !it.sel.Contains(hit):
		it.sel.Select(hit)
		fx.SelectionChanged = true
	}
	// Pressing an already-selected element keeps the whole selection so
	// a multi-element drag can start from any member.

	if it.sel.Contains(hit) {
		it.g.kind = GestureDragging
		it.g.dragIDs = it.sel.IDs()
		for _, id := range it.g.dragIDs {
			if el, ok := elementByID(elements, id); ok {
				it.preview[id] = el.Bounds
			}
		}
	}
	fx.Redraw = true
	return fx
}

func (it *Interactor) pointerMove(e PointerEvent) Effects {
	var fx Effects
	if it.g.kind == GestureNone {
		return fx
	}

	view := it.host.View()
	docPos := view.ToDocument(e.Pos)
	it.g.current = docPos
	if !it.g.moved {
		it.g.moved = e.Pos.Distance(it.g.pressDevice) > clickDragThreshold
	}

	switch it.g.kind {
	case GestureDragging:
		it.updateDragPreview(view)
	case GestureResizing:
		it.updateResizePreview(view)
	case GestureMarquee:
		if it.updateMarqueeSelection() {
			fx.SelectionChanged = true
		}
	case GestureCreating:
		snapped, lines := SnapPoint(docPos, view, it.host.Guides())
		it.g.current = snapped
		it.snapLines = lines
	}
	fx.Redraw = true
	return fx
}

func (it *Interactor) updateDragPreview(view ViewConfig) {
	elements := it.host.Elements()
	dx := it.g.current.X - it.g.anchor.X
	dy := it.g.current.Y - it.g.anchor.Y

	// Snap the moved bounding box of the whole selection, then apply the
	// corrected delta to every member so relative layout is preserved.
	var bbox geometry.Rect
	first := true
	for _, id := range it.g.dragIDs {
		el, ok := elementByID(elements, id)
		if !ok {
			continue
		}
		if first {
			bbox = el.Bounds
			first = false
		} else {
			bbox = bbox.Union(el.Bounds)
		}
	}
	if first {
		return // every target vanished
	}

	proposed := bbox.Translate(dx, dy)
	snapped, lines := SnapMovedRect(proposed, view, it.host.Guides())
	dx += snapped.X - proposed.X
	dy += snapped.Y - proposed.Y
	it.g.dx, it.g.dy = dx, dy
	it.snapLines = lines

	for _, id := range it.g.dragIDs {
		if el, ok := elementByID(elements, id); ok {
			it.preview[id] = el.Bounds.Translate(dx, dy)
		}
	}
}

func (it *Interactor) updateResizePreview(view ViewConfig) {
	dx := it.g.current.X - it.g.anchor.X
	dy := it.g.current.Y - it.g.anchor.Y
	bounds := ComputeResizedBounds(it.g.original, it.g.handle, dx, dy)
	snapped, lines := SnapResizedRect(bounds, view, it.host.Guides())
	it.preview[it.g.target] = snapped
	it.snapLines = lines
}

func (it *Interactor) updateMarqueeSelection() bool {
	band := geometry.RectFromPoints(it.g.anchor, it.g.current)
	ids := ElementsIn(it.host.Elements(), band)
	merged := mergeIDs(it.g.baseSel, ids)
	if idsEqual(it.sel.IDs(), merged) {
		return false
	}
	it.sel.Replace(merged)
	return true
}

func (it *Interactor) pointerUp(e PointerEvent) Effects {
	var fx Effects
	if it.g.kind == GestureNone {
		return fx
	}

	view := it.host.View()
	it.g.current = view.ToDocument(e.Pos)
	if !it.g.moved {
		it.g.moved = e.Pos.Distance(it.g.pressDevice) > clickDragThreshold
	}

	switch it.g.kind {
	case GestureDragging:
		if it.g.moved {
			// Recompute from the release position so a press/release pair
			// with no intervening move still commits the right delta.
			it.updateDragPreview(view)
			targets := it.liveTargets(it.g.dragIDs)
			if len(targets) > 0 && (it.g.dx != 0 || it.g.dy != 0) {
				fx.Mutation = &Mutation{
					Kind:    MutationMove,
					Targets: targets,
					DX:      it.g.dx,
					DY:      it.g.dy,
				}
			}
		}
	case GestureResizing:
		if it.g.moved {
			if _, ok := elementByID(it.host.Elements(), it.g.target); ok {
				it.updateResizePreview(view)
				bounds := it.preview[it.g.target]
				fx.Mutation = &Mutation{
					Kind:    MutationResize,
					Targets: []document.ID{it.g.target},
					Bounds:  bounds,
				}
			}
			// A vanished target aborts the gesture with no mutation.
		}
	case GestureMarquee:
		// Selection was updated live; nothing to commit.
	case GestureCreating:
		// A sub-threshold press with a creation tool is a stray click, not
		// a request for a minimum-size element.
		if it.g.moved {
			snapped, _ := SnapPoint(it.g.current, view, it.host.Guides())
			it.g.current = snapped
			if el, ok := it.tool.CreateElement(it.g.anchor, it.g.current); ok {
				fx.Mutation = &Mutation{Kind: MutationCreate, Element: &el}
				it.sel.Select(el.ID)
				fx.SelectionChanged = true
				it.tool = ToolSelect
				fx.ToolChanged = true
			}
		}
	}

	it.clearGesture()
	fx.Redraw = true
	return fx
}

func (it *Interactor) keyDown(e KeyEvent) Effects {
	var fx Effects
	switch e.Key {
	case KeyEscape:
		if it.g.kind != GestureNone {
			it.cancelGesture()
		} else if !it.sel.IsEmpty() {
			it.sel.Clear()
			fx.SelectionChanged = true
		}
		fx.Redraw = true
	case KeyDelete:
		if it.sel.IsEmpty() {
			return fx
		}
		fx.Mutation = &Mutation{Kind: MutationDelete, Targets: it.sel.IDs()}
		it.sel.Clear()
		fx.SelectionChanged = true
		fx.Redraw = true
	case KeyLeft, KeyRight, KeyUp, KeyDown:
		if it.sel.IsEmpty() || it.g.kind != GestureNone {
			return fx
		}
		step := nudgeStep
		if e.Modifiers.HasShift() {
			step *= 10
		}
		var dx, dy float64
		switch e.Key {
		case KeyLeft:
			dx = -step
		case KeyRight:
			dx = step
		case KeyUp:
			dy = -step
		case KeyDown:
			dy = step
		}
		fx.Mutation = &Mutation{
			Kind:    MutationMove,
			Targets: it.sel.IDs(),
			DX:      dx,
			DY:      dy,
		}
		fx.Redraw = true
	case KeyA:
		if e.Modifiers.HasCtrl() || e.Modifiers.HasMeta() {
			return it.SelectAll()
		}
	}
	return fx
}

// SelectAll selects every element on the page.
func (it *Interactor) SelectAll() Effects {
	elements := it.host.Elements()
	ids := make([]document.ID, len(elements))
	for i, el := range elements {
		ids[i] = el.ID
	}
	if idsEqual(it.sel.IDs(), ids) {
		return Effects{}
	}
	it.sel.Replace(ids)
	return Effects{SelectionChanged: true, Redraw: true}
}

// AlignSelection aligns the selected elements and emits one mutation for
// the whole operation.
func (it *Interactor) AlignSelection(kind Alignment) Effects {
	ids, rects := it.selectedBounds()
	if len(ids) < 2 {
		return Effects{}
	}
	aligned := AlignRects(kind, rects)
	return it.arrangeMutation(ids, rects, aligned)
}

// DistributeSelection spaces the selected elements evenly on one axis.
func (it *Interactor) DistributeSelection(vertical bool) Effects {
	ids, rects := it.selectedBounds()
	if len(ids) < 3 {
		return Effects{}
	}
	spread := DistributeRects(vertical, rects)
	return it.arrangeMutation(ids, rects, spread)
}

func (it *Interactor) arrangeMutation(ids []document.ID, before, after []geometry.Rect) Effects {
	byID := make(map[document.ID]geometry.Rect, len(ids))
	changed := false
	for i, id := range ids {
		byID[id] = after[i]
		if after[i] != before[i] {
			changed = true
		}
	}
	if !changed {
		return Effects{}
	}
	return Effects{
		Redraw:   true,
		Mutation: &Mutation{Kind: MutationSetBounds, Targets: ids, ByID: byID},
	}
}

func (it *Interactor) selectedBounds() ([]document.ID, []geometry.Rect) {
	elements := it.host.Elements()
	var ids []document.ID
	var rects []geometry.Rect
	for _, id := range it.sel.IDs() {
		if el, ok := elementByID(elements, id); ok {
			ids = append(ids, id)
			rects = append(rects, el.Bounds)
		}
	}
	return ids, rects
}

// liveTargets filters ids down to elements that still exist, so a
// gesture whose targets were deleted mid-flight aborts quietly.
func (it *Interactor) liveTargets(ids []document.ID) []document.ID {
	elements := it.host.Elements()
	var out []document.ID
	for _, id := range ids {
		if _, ok := elementByID(elements, id); ok {
			out = append(out, id)
		}
	}
	return out
}

func (it *Interactor) cancelGesture() {
	it.clearGesture()
	it.clicks.reset()
}

func (it *Interactor) clearGesture() {
	it.g = gesture{}
	it.snapLines = nil
	for id := range it.preview {
		delete(it.preview, id)
	}
}

func elementByID(elements []document.Element, id document.ID) (document.Element, bool) {
	for _, el := range elements {
		if el.ID == id {
			return el, true
		}
	}
	return document.Element{}, false
}

func mergeIDs(base, extra []document.ID) []document.ID {
	out := make([]document.ID, 0, len(base)+len(extra))
	seen := make(map[document.ID]struct{}, len(base)+len(extra))
	for _, id := range base {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	for _, id := range extra {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func idsEqual(a, b []document.ID) bool {
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

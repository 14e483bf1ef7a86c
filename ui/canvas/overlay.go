package canvas

import (
	"image"
	"image/color"

	"draftboard/internal/app"
	"draftboard/internal/canvas"
)

// renderedHandleSize is the drawn size of a resize handle in device
// units. The engine's hit radius is twice this.
const renderedHandleSize = 8

var (
	colorSelection = color.RGBA{0, 116, 217, 255}
	colorHandle    = color.RGBA{255, 255, 255, 255}
	colorGuide     = color.RGBA{0, 180, 190, 255}
	colorSnapGrid  = color.RGBA{160, 160, 255, 255}
	colorSnapGuide = color.RGBA{255, 80, 180, 255}
	colorMarquee   = color.RGBA{0, 116, 217, 180}
)

// drawSelection outlines every selected element with its eight resize
// handles. Gesture previews override the committed bounds so feedback
// follows the pointer.
func drawSelection(out *image.RGBA, state *app.State, view canvas.ViewConfig) {
	it := state.Interactor()
	sel := it.Selection()
	if sel.IsEmpty() {
		return
	}

	for _, el := range state.Elements() {
		if !sel.Contains(el.ID) {
			continue
		}
		bounds := el.Bounds
		if pv, ok := it.PreviewBounds(el.ID); ok {
			bounds = pv
		}
		dev := view.DocumentRectToDevice(bounds)
		strokeRectF(out, dev, colorSelection)

		for _, h := range canvas.AllHandles() {
			dp := view.ToDevice(h.Position(bounds))
			half := renderedHandleSize / 2
			fillRect(out, int(dp.X)-half, int(dp.Y)-half,
				renderedHandleSize, renderedHandleSize, colorHandle)
			strokeRect(out, int(dp.X)-half, int(dp.Y)-half,
				renderedHandleSize, renderedHandleSize, colorSelection)
		}
	}
}

// drawGuides renders the alignment guides as dashed lines across the
// whole viewport.
func drawGuides(out *image.RGBA, guides []canvas.Guide, view canvas.ViewConfig, w, h int) {
	for _, g := range guides {
		if g.Vertical {
			x := int(g.Position*view.Zoom + view.Margin + view.PanX)
			dashedVLine(out, x, 0, h, colorGuide)
		} else {
			y := int(g.Position*view.Zoom + view.Margin + view.PanY)
			dashedHLine(out, 0, w, y, colorGuide)
		}
	}
}

// drawSnapLines highlights the grid lines or guides a gesture is
// currently snapped to.
func drawSnapLines(out *image.RGBA, lines []canvas.SnapLine, view canvas.ViewConfig, w, h int) {
	for _, l := range lines {
		col := colorSnapGrid
		if l.Kind == canvas.SnapGuide {
			col = colorSnapGuide
		}
		if l.Vertical {
			x := int(l.Position*view.Zoom + view.Margin + view.PanX)
			vLine(out, x, 0, h, col)
		} else {
			y := int(l.Position*view.Zoom + view.Margin + view.PanY)
			hLine(out, 0, w, y, col)
		}
	}
}

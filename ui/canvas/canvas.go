// Package canvas provides the document canvas widget: rendering, input
// routing to the interaction engine, and pan/zoom handling.
package canvas

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"draftboard/internal/app"
	"draftboard/internal/canvas"
	"draftboard/pkg/geometry"
)

const zoomStep = 1.25

// DocumentCanvas displays the active page and feeds pointer input to the
// interaction engine. All editing behavior lives in the engine; this
// widget only translates toolkit events and renders.
type DocumentCanvas struct {
	widget.BaseWidget

	state  *app.State
	raster *fynecanvas.Raster

	// Pan gesture state (pan tool or middle button, handled here
	// because panning moves the view, not the document).
	panning bool
	lastPan fyne.Position
}

// New creates the canvas widget bound to the application state.
func New(state *app.State) *DocumentCanvas {
	dc := &DocumentCanvas{state: state}
	dc.raster = fynecanvas.NewRaster(dc.draw)
	dc.raster.ScaleMode = fynecanvas.ImageScalePixels
	dc.raster.SetMinSize(fyne.NewSize(400, 300))
	dc.ExtendBaseWidget(dc)

	state.On(app.EventCanvasChanged, func(interface{}) {
		dc.Refresh()
	})
	return dc
}

// CreateRenderer returns the widget renderer.
func (dc *DocumentCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dc.raster)
}

// draw renders the page into an RGBA image of the widget size.
func (dc *DocumentCanvas) draw(w, h int) image.Image {
	return renderPage(dc.state, w, h)
}

func modifiers(m fyne.KeyModifier) canvas.Modifier {
	var out canvas.Modifier
	if m&fyne.KeyModifierShift != 0 {
		out |= canvas.ModShift
	}
	if m&fyne.KeyModifierControl != 0 {
		out |= canvas.ModCtrl
	}
	if m&fyne.KeyModifierAlt != 0 {
		out |= canvas.ModAlt
	}
	if m&fyne.KeyModifierSuper != 0 {
		out |= canvas.ModMeta
	}
	return out
}

func devicePoint(pos fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(pos.X), float64(pos.Y))
}

// MouseDown starts a gesture, or a view pan for the pan tool and the
// middle button.
func (dc *DocumentCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonTertiary ||
		dc.state.Interactor().Tool() == canvas.ToolPan {
		dc.panning = true
		dc.lastPan = ev.Position
		return
	}
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	dc.state.HandleCanvasEvent(canvas.PointerEvent{
		Phase:     canvas.PhasePress,
		Pos:       devicePoint(ev.Position),
		Modifiers: modifiers(ev.Modifier),
		Timestamp: time.Now(),
	})
}

// MouseUp ends the gesture or pan.
func (dc *DocumentCanvas) MouseUp(ev *desktop.MouseEvent) {
	if dc.panning {
		dc.panning = false
		return
	}
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	dc.state.HandleCanvasEvent(canvas.PointerEvent{
		Phase:     canvas.PhaseRelease,
		Pos:       devicePoint(ev.Position),
		Modifiers: modifiers(ev.Modifier),
		Timestamp: time.Now(),
	})
}

// MouseMoved forwards moves while a gesture or pan is active.
func (dc *DocumentCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if dc.panning {
		dx := float64(ev.Position.X - dc.lastPan.X)
		dy := float64(ev.Position.Y - dc.lastPan.Y)
		dc.lastPan = ev.Position
		dc.state.PanBy(dx, dy)
		return
	}
	dc.state.HandleCanvasEvent(canvas.PointerEvent{
		Phase:     canvas.PhaseMove,
		Pos:       devicePoint(ev.Position),
		Modifiers: modifiers(ev.Modifier),
		Timestamp: time.Now(),
	})
}

// MouseIn implements desktop.Hoverable.
func (dc *DocumentCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable.
func (dc *DocumentCanvas) MouseOut() {}

// Scrolled zooms on plain wheel and pans on shift-wheel.
func (dc *DocumentCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		dc.state.ZoomBy(zoomStep)
	} else if ev.Scrolled.DY < 0 {
		dc.state.ZoomBy(1 / zoomStep)
	}
}

// Cursor reflects the active tool.
func (dc *DocumentCanvas) Cursor() desktop.Cursor {
	switch dc.state.Interactor().Tool().Cursor() {
	case "crosshair":
		return desktop.CrosshairCursor
	case "text":
		return desktop.TextCursor
	case "grab":
		return desktop.PointerCursor
	default:
		return desktop.DefaultCursor
	}
}

// TypedKey routes command keys to the engine.
func (dc *DocumentCanvas) TypedKey(ev *fyne.KeyEvent) {
	key, ok := mapKey(ev.Name)
	if !ok {
		return
	}
	dc.state.HandleCanvasEvent(canvas.KeyEvent{Key: key})
}

func mapKey(name fyne.KeyName) (canvas.Key, bool) {
	switch name {
	case fyne.KeyEscape:
		return canvas.KeyEscape, true
	case fyne.KeyDelete, fyne.KeyBackspace:
		return canvas.KeyDelete, true
	case fyne.KeyLeft:
		return canvas.KeyLeft, true
	case fyne.KeyRight:
		return canvas.KeyRight, true
	case fyne.KeyUp:
		return canvas.KeyUp, true
	case fyne.KeyDown:
		return canvas.KeyDown, true
	case fyne.KeyA:
		return canvas.KeyA, true
	default:
		return 0, false
	}
}

package canvas

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"math"
	"os"
	"strconv"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"draftboard/internal/app"
	"draftboard/internal/canvas"
	"draftboard/internal/document"
	"draftboard/pkg/geometry"
)

var (
	colorBackdrop  = color.RGBA{58, 58, 62, 255}
	colorPage      = color.RGBA{255, 255, 255, 255}
	colorPageEdge  = color.RGBA{120, 120, 124, 255}
	colorGrid      = color.RGBA{232, 232, 236, 255}
	colorRuler     = color.RGBA{240, 240, 242, 255}
	colorRulerTick = color.RGBA{130, 130, 134, 255}
	colorElement   = color.RGBA{40, 40, 44, 255}
	colorElemFill  = color.RGBA{228, 236, 248, 255}
)

// renderPage draws the backdrop, rulers, page, elements, and all
// interaction feedback into a fresh RGBA image.
func renderPage(state *app.State, w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	view := state.View()
	it := state.Interactor()

	fillRect(out, 0, 0, w, h, colorBackdrop)

	page := state.Document().ActivePage()
	pageDev := view.DocumentRectToDevice(geometry.NewRect(0, 0, page.Size.Width, page.Size.Height))
	fillRectF(out, pageDev, colorPage)
	strokeRectF(out, pageDev, colorPageEdge)

	drawGrid(out, view, pageDev)
	drawRulers(out, view, w, h)

	for _, el := range page.Elements {
		bounds := el.Bounds
		if pv, ok := it.PreviewBounds(el.ID); ok {
			bounds = pv
		}
		drawElement(out, el, view.DocumentRectToDevice(bounds))
	}

	drawGuides(out, state.Guides(), view, w, h)
	drawSnapLines(out, it.SnapLines(), view, w, h)
	drawSelection(out, state, view)

	if band, ok := it.Marquee(); ok {
		dashedRectF(out, view.DocumentRectToDevice(band), colorMarquee)
	}
	return out
}

func drawGrid(out *image.RGBA, view canvas.ViewConfig, pageDev geometry.Rect) {
	if view.GridSpacing <= 0 {
		return
	}
	step := view.GridSpacing * view.Zoom
	if step < 4 {
		return // too dense to be useful
	}
	for x := pageDev.X; x <= pageDev.Right(); x += step {
		vLine(out, int(x), int(pageDev.Y), int(pageDev.Bottom()), colorGrid)
	}
	for y := pageDev.Y; y <= pageDev.Bottom(); y += step {
		hLine(out, int(pageDev.X), int(pageDev.Right()), int(y), colorGrid)
	}
}

// drawRulers paints the fixed margin strips with document-unit ticks.
func drawRulers(out *image.RGBA, view canvas.ViewConfig, w, h int) {
	m := int(view.Margin)
	if m <= 0 {
		return
	}
	fillRect(out, 0, 0, w, m, colorRuler)
	fillRect(out, 0, 0, m, h, colorRuler)
	hLine(out, 0, w, m-1, colorRulerTick)
	vLine(out, m-1, 0, h, colorRulerTick)

	// Tick every 50 document units, labeled every 100.
	const tick = 50.0
	start := view.ToDocument(geometry.NewPoint2D(view.Margin, view.Margin))
	end := view.ToDocument(geometry.NewPoint2D(float64(w), float64(h)))

	for v := math.Floor(start.X/tick) * tick; v <= end.X; v += tick {
		x := int(v*view.Zoom + view.Margin + view.PanX)
		if x < m {
			continue
		}
		vLine(out, x, m-5, m, colorRulerTick)
		if math.Mod(v, 100) == 0 {
			drawLabel(out, x+2, m-4, strconv.Itoa(int(v)), colorRulerTick)
		}
	}
	for v := math.Floor(start.Y/tick) * tick; v <= end.Y; v += tick {
		y := int(v*view.Zoom + view.Margin + view.PanY)
		if y < m {
			continue
		}
		hLine(out, m-5, m, y, colorRulerTick)
		if math.Mod(v, 100) == 0 {
			drawLabel(out, 2, y-2, strconv.Itoa(int(v)), colorRulerTick)
		}
	}
}

func drawElement(out *image.RGBA, el document.Element, dev geometry.Rect) {
	switch el.Kind {
	case document.KindShape:
		drawShape(out, el.Shape, dev)
	case document.KindText:
		fillRectF(out, dev, colorPage)
		drawText(out, dev, el.Text)
	case document.KindImage:
		drawImage(out, dev, el.ImagePath)
	case document.KindFrame:
		dashedRectF(out, dev, colorPageEdge)
	}
}

func drawShape(out *image.RGBA, shape document.ShapeKind, dev geometry.Rect) {
	switch shape {
	case document.ShapeRectangle:
		fillRectF(out, dev, colorElemFill)
		strokeRectF(out, dev, colorElement)
	case document.ShapeEllipse:
		drawEllipse(out, dev, colorElemFill, colorElement)
	case document.ShapeLine:
		drawLine(out, int(dev.X), int(dev.Y), int(dev.Right()), int(dev.Bottom()), colorElement)
	case document.ShapeArrow:
		drawArrow(out, dev)
	case document.ShapePolygon:
		drawPolygon(out, dev)
	}
}

// drawText renders the element text with the built-in bitmap face,
// clipped to the element bounds.
func drawText(out *image.RGBA, dev geometry.Rect, text string) {
	clip := out.SubImage(image.Rect(
		int(dev.X), int(dev.Y), int(dev.Right()), int(dev.Bottom()),
	)).(*image.RGBA)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  clip,
		Src:  image.NewUniform(colorElement),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(dev.X) + 3),
			Y: fixed.I(int(dev.Y) + face.Ascent + 2),
		},
	}
	d.DrawString(text)
	strokeRectF(out, dev, colorPageEdge)
}

var (
	imageCacheMu sync.Mutex
	imageCache   = map[string]image.Image{}
)

func loadImage(path string) image.Image {
	imageCacheMu.Lock()
	defer imageCacheMu.Unlock()
	if img, ok := imageCache[path]; ok {
		return img
	}
	f, err := os.Open(path)
	if err != nil {
		log.Printf("open image %s: %v", path, err)
		imageCache[path] = nil
		return nil
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		log.Printf("decode image %s: %v", path, err)
		img = nil
	}
	imageCache[path] = img
	return img
}

func drawImage(out *image.RGBA, dev geometry.Rect, path string) {
	target := image.Rect(int(dev.X), int(dev.Y), int(dev.Right()), int(dev.Bottom()))
	src := loadImage(path)
	if src == nil {
		// Placeholder: crossed box.
		fillRectF(out, dev, colorElemFill)
		strokeRectF(out, dev, colorElement)
		drawLine(out, target.Min.X, target.Min.Y, target.Max.X, target.Max.Y, colorElement)
		drawLine(out, target.Min.X, target.Max.Y, target.Max.X, target.Min.Y, colorElement)
		return
	}
	xdraw.ApproxBiLinear.Scale(out, target, src, src.Bounds(), xdraw.Over, nil)
	strokeRectF(out, dev, colorPageEdge)
}

// Pixel primitives.

func setPixel(out *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(out.Bounds()) {
		out.SetRGBA(x, y, c)
	}
}

func fillRect(out *image.RGBA, x, y, w, h int, c color.RGBA) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			setPixel(out, xx, yy, c)
		}
	}
}

func fillRectF(out *image.RGBA, r geometry.Rect, c color.RGBA) {
	fillRect(out, int(r.X), int(r.Y), int(r.Width), int(r.Height), c)
}

func strokeRect(out *image.RGBA, x, y, w, h int, c color.RGBA) {
	hLine(out, x, x+w, y, c)
	hLine(out, x, x+w, y+h-1, c)
	vLine(out, x, y, y+h, c)
	vLine(out, x+w-1, y, y+h, c)
}

func strokeRectF(out *image.RGBA, r geometry.Rect, c color.RGBA) {
	strokeRect(out, int(r.X), int(r.Y), int(r.Width), int(r.Height), c)
}

func hLine(out *image.RGBA, x1, x2, y int, c color.RGBA) {
	for x := x1; x < x2; x++ {
		setPixel(out, x, y, c)
	}
}

func vLine(out *image.RGBA, x, y1, y2 int, c color.RGBA) {
	for y := y1; y < y2; y++ {
		setPixel(out, x, y, c)
	}
}

func dashedHLine(out *image.RGBA, x1, x2, y int, c color.RGBA) {
	for x := x1; x < x2; x++ {
		if (x/4)%2 == 0 {
			setPixel(out, x, y, c)
		}
	}
}

func dashedVLine(out *image.RGBA, x, y1, y2 int, c color.RGBA) {
	for y := y1; y < y2; y++ {
		if (y/4)%2 == 0 {
			setPixel(out, x, y, c)
		}
	}
}

func dashedRectF(out *image.RGBA, r geometry.Rect, c color.RGBA) {
	x1, y1 := int(r.X), int(r.Y)
	x2, y2 := int(r.Right()), int(r.Bottom())
	dashedHLine(out, x1, x2, y1, c)
	dashedHLine(out, x1, x2, y2-1, c)
	dashedVLine(out, x1, y1, y2, c)
	dashedVLine(out, x2-1, y1, y2, c)
}

// drawLine draws with Bresenham's algorithm.
func drawLine(out *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	for {
		setPixel(out, x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func drawArrow(out *image.RGBA, dev geometry.Rect) {
	x1, y1 := int(dev.X), int(dev.Y)
	x2, y2 := int(dev.Right()), int(dev.Bottom())
	drawLine(out, x1, y1, x2, y2, colorElement)

	// Arrow head: two short strokes back along the shaft.
	angle := math.Atan2(float64(y2-y1), float64(x2-x1))
	const headLen = 10.0
	for _, da := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
		hx := x2 + int(headLen*math.Cos(angle+da))
		hy := y2 + int(headLen*math.Sin(angle+da))
		drawLine(out, x2, y2, hx, hy, colorElement)
	}
}

// drawPolygon renders a hexagon inscribed in the bounds.
func drawPolygon(out *image.RGBA, dev geometry.Rect) {
	cx, cy := dev.Center().X, dev.Center().Y
	rx, ry := dev.Width/2, dev.Height/2
	var pts [6][2]int
	for i := 0; i < 6; i++ {
		a := float64(i)*math.Pi/3 - math.Pi/2
		pts[i] = [2]int{int(cx + rx*math.Cos(a)), int(cy + ry*math.Sin(a))}
	}
	for i := 0; i < 6; i++ {
		j := (i + 1) % 6
		drawLine(out, pts[i][0], pts[i][1], pts[j][0], pts[j][1], colorElement)
	}
}

// drawEllipse scans the bounding box and classifies each pixel against
// the ellipse equation, filling inside and outlining the rim.
func drawEllipse(out *image.RGBA, dev geometry.Rect, fill, stroke color.RGBA) {
	cx, cy := dev.Center().X, dev.Center().Y
	rx, ry := dev.Width/2, dev.Height/2
	if rx <= 0 || ry <= 0 {
		return
	}
	for y := int(dev.Y); y <= int(dev.Bottom()); y++ {
		for x := int(dev.X); x <= int(dev.Right()); x++ {
			nx := (float64(x) - cx) / rx
			ny := (float64(y) - cy) / ry
			d := nx*nx + ny*ny
			if d <= 1 {
				c := fill
				if d > 0.92 {
					c = stroke
				}
				setPixel(out, x, y, c)
			}
		}
	}
}

func drawLabel(out *image.RGBA, x, y int, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

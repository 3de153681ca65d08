package ui

import (
	"image"
	"image/color"

	"KolamStudio/internal/engine"
	"KolamStudio/internal/geom"
	"KolamStudio/internal/tool"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/draw"
)

// BoardWidget shows the engine's frame and forwards mouse input to the
// tool controller. Repaints are driven by the engine's OnChange hook.
type BoardWidget struct {
	widget.BaseWidget
	ctl    *tool.Controller
	canvas *engine.Canvas
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(ctl *tool.Controller) *BoardWidget {
	b := &BoardWidget{ctl: ctl, canvas: ctl.Canvas()}
	b.ExtendBaseWidget(b)
	return b
}

// toCanvas maps a widget position to canvas pixels.
func (b *BoardWidget) toCanvas(pos fyne.Position) geom.Point {
	size := b.Size()
	w, h := b.canvas.Size()
	return tool.Viewport{
		DisplayW: float64(size.Width),
		DisplayH: float64(size.Height),
		BackingW: float64(w),
		BackingH: float64(h),
	}.ToCanvas(float64(pos.X), float64(pos.Y))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.ctl.PointerDown(b.toCanvas(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.ctl.PointerUp(b.toCanvas(e.Position))
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.ctl.PointerMove(b.toCanvas(e.Position))
}

func (b *BoardWidget) DragEnd() {
	b.ctl.PointerCancel()
}

func (b *BoardWidget) MouseOut() {
	b.ctl.PointerLeave()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.raster = canvas.NewRaster(r.draw)
	r.raster.ScaleMode = canvas.ImageScaleSmooth
	return r
}

type boardWidgetRenderer struct {
	board  *BoardWidget
	raster *canvas.Raster
}

// draw returns the current frame at the raster's pixel size.
func (r *boardWidgetRenderer) draw(w, h int) image.Image {
	frame := r.board.canvas.Frame()
	if frame == nil || w <= 0 || h <= 0 {
		return image.NewUniform(color.White)
	}
	if b := frame.Bounds(); b.Dx() == w && b.Dy() == h {
		return frame
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), frame, frame.Bounds(), draw.Src, nil)
	return dst
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *boardWidgetRenderer) Refresh() {
	r.raster.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 200)
}

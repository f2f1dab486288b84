package ui

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/simplepaint/simplepaint/internal/raster"
	"github.com/simplepaint/simplepaint/internal/state"
)

// Board is the display surface: the backing raster drawn 1:1 with the
// preview of the shape being dragged on top of it.
type Board struct {
	widget.BaseWidget
	raster     *raster.Canvas
	controller *state.Controller
	preview    *state.Shape
	lastDrag   state.Point

	// rasterGen counts raster refreshes; the renderer re-uploads the
	// image only when it moves.
	rasterGen int
}

var _ fyne.Widget = (*Board)(nil)
var _ fyne.Draggable = (*Board)(nil)
var _ desktop.Mouseable = (*Board)(nil)
var _ desktop.Cursorable = (*Board)(nil)
var _ state.Display = (*Board)(nil)

func NewBoard(r *raster.Canvas, brush state.Brush) *Board {
	b := &Board{raster: r}
	b.controller = state.NewController(r, b, r.Background(), brush)
	b.ExtendBaseWidget(b)
	return b
}

func (b *Board) Controller() *state.Controller { return b.controller }

func (b *Board) Raster() *raster.Canvas { return b.raster }

func (b *Board) ShowPreview(s state.Shape) {
	b.preview = &s
	b.BaseWidget.Refresh()
}

func (b *Board) ClearPreview() {
	b.preview = nil
	b.BaseWidget.Refresh()
}

// Refresh redraws the raster image and the overlay. Preview changes skip
// the image and only touch the overlay.
func (b *Board) Refresh() {
	b.rasterGen++
	b.BaseWidget.Refresh()
}

// Preview returns the shape currently shown over the raster, if any.
func (b *Board) Preview() (state.Shape, bool) {
	if b.preview == nil {
		return state.Shape{}, false
	}
	return *b.preview, true
}

func toPoint(p fyne.Position) state.Point {
	return state.Pt(int(math.Floor(float64(p.X))), int(math.Floor(float64(p.Y))))
}

func (b *Board) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.lastDrag = toPoint(e.Position)
	b.controller.PointerDown(b.lastDrag)
}

func (b *Board) Dragged(e *fyne.DragEvent) {
	b.lastDrag = toPoint(e.Position)
	b.controller.PointerMove(b.lastDrag)
}

func (b *Board) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.controller.PointerUp(toPoint(e.Position))
}

// DragEnd finishes the gesture when the driver reports the end of a drag
// without a matching MouseUp.
func (b *Board) DragEnd() {
	if b.controller.Active() {
		b.controller.PointerUp(b.lastDrag)
	}
}

func (b *Board) MouseIn(*desktop.MouseEvent)    {}
func (b *Board) MouseOut()                      {}
func (b *Board) MouseMoved(*desktop.MouseEvent) {}

func (b *Board) Cursor() desktop.Cursor { return desktop.CrosshairCursor }

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{
		board:  b,
		image:  canvas.NewImageFromImage(b.raster.Image()),
		line:   canvas.NewLine(color.Black),
		rect:   canvas.NewRectangle(color.Transparent),
		circle: canvas.NewCircle(color.Transparent),
		gen:    b.rasterGen,
	}
	r.image.FillMode = canvas.ImageFillStretch
	r.image.ScaleMode = canvas.ImageScalePixels
	r.hidePreview()
	return r
}

type boardRenderer struct {
	board  *Board
	image  *canvas.Image
	line   *canvas.Line
	rect   *canvas.Rectangle
	circle *canvas.Circle

	gen            int
	imageRefreshes int
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.image, r.line, r.rect, r.circle}
}

func (r *boardRenderer) MinSize() fyne.Size {
	size := r.board.raster.Bounds().Size()
	return fyne.NewSize(float32(size.X), float32(size.Y))
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.image.Resize(size)
}

func (r *boardRenderer) Refresh() {
	// Open replaces the raster's buffer, so rebind before redrawing.
	img := r.board.raster.Image()
	if r.gen != r.board.rasterGen || r.image.Image != img {
		r.gen = r.board.rasterGen
		r.image.Image = img
		r.image.Refresh()
		r.imageRefreshes++
	}

	r.hidePreview()
	if s, ok := r.board.Preview(); ok {
		r.showPreview(s)
	}
}

func (r *boardRenderer) hidePreview() {
	r.line.Hide()
	r.rect.Hide()
	r.circle.Hide()
}

func (r *boardRenderer) showPreview(s state.Shape) {
	width := float32(s.Width)
	switch s.Kind {
	case state.KindLine, state.KindSegment:
		r.line.StrokeColor = s.Color
		r.line.StrokeWidth = width
		r.line.Position1 = fyne.NewPos(float32(s.From.X), float32(s.From.Y))
		r.line.Position2 = fyne.NewPos(float32(s.To.X), float32(s.To.Y))
		r.line.Show()
		r.line.Refresh()
	case state.KindRectangle:
		bounds := s.Bounds()
		r.rect.FillColor = color.Transparent
		r.rect.StrokeColor = s.Color
		r.rect.StrokeWidth = width
		r.rect.Move(fyne.NewPos(float32(bounds.Min.X), float32(bounds.Min.Y)))
		r.rect.Resize(fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy())))
		r.rect.Show()
		r.rect.Refresh()
	case state.KindCircle:
		radius := float32(s.Radius())
		cx, cy := float32(s.From.X), float32(s.From.Y)
		r.circle.FillColor = color.Transparent
		r.circle.StrokeColor = s.Color
		r.circle.StrokeWidth = width
		r.circle.Position1 = fyne.NewPos(cx-radius, cy-radius)
		r.circle.Position2 = fyne.NewPos(cx+radius, cy+radius)
		r.circle.Show()
		r.circle.Refresh()
	}
}

func (r *boardRenderer) Destroy() {}

package ui

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/simplepaint/simplepaint/internal/config"
	"github.com/simplepaint/simplepaint/internal/raster"
	"github.com/simplepaint/simplepaint/internal/state"
)

type memWriter struct {
	bytes.Buffer
	uri    fyne.URI
	closed bool
}

func (w *memWriter) Close() error { w.closed = true; return nil }
func (w *memWriter) URI() fyne.URI { return w.uri }

type memReader struct {
	io.Reader
	uri    fyne.URI
	closed bool
}

func (r *memReader) Close() error { r.closed = true; return nil }
func (r *memReader) URI() fyne.URI { return r.uri }

func uri(t *testing.T, name string) fyne.URI {
	t.Helper()
	return storage.NewFileURI(filepath.Join(t.TempDir(), name))
}

func newTestPainter(t *testing.T) (*Painter, fyne.App) {
	t.Helper()
	a := test.NewTempApp(t)
	w := test.NewWindow(widget.NewLabel(""))
	t.Cleanup(w.Close)
	p := NewPainter(a.Preferences(), w)
	w.SetContent(p.Content())
	return p, a
}

func paintSomething(p *Painter) {
	ctl := p.Board().Controller()
	ctl.SetTool(state.ToolCircle)
	ctl.PointerDown(state.Pt(400, 300))
	ctl.PointerUp(state.Pt(450, 300))
}

func TestPainterUsesSettings(t *testing.T) {
	p, _ := newTestPainter(t)
	if got := p.raster.Bounds(); got != image.Rect(0, 0, 800, 600) {
		t.Errorf("canvas = %v, want 800x600", got)
	}
	if got := p.Board().Controller().Brush().Size; got != 10 {
		t.Errorf("brush size = %d, want 10", got)
	}
}

func TestSaveToPNG(t *testing.T) {
	p, _ := newTestPainter(t)
	paintSomething(p)

	w := &memWriter{uri: uri(t, "drawing.png")}
	if err := p.saveTo(w); err != nil {
		t.Fatal(err)
	}
	if !w.closed {
		t.Error("writer not closed")
	}
	img, name, err := raster.Decode(&w.Buffer)
	if err != nil {
		t.Fatal(err)
	}
	if name != "png" || img.Bounds() != p.raster.Bounds() {
		t.Errorf("saved %s %v", name, img.Bounds())
	}
}

func TestSaveToPDF(t *testing.T) {
	p, _ := newTestPainter(t)
	w := &memWriter{uri: uri(t, "drawing.PDF")}
	if err := p.saveTo(w); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(w.Bytes(), []byte("%PDF-")) {
		t.Error("pdf export did not produce a PDF")
	}
}

func TestSaveToUnknownExtension(t *testing.T) {
	p, _ := newTestPainter(t)
	w := &memWriter{uri: uri(t, "drawing.psd")}
	err := p.saveTo(w)
	if !errors.Is(err, raster.ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
	if !w.closed {
		t.Error("writer not closed on error")
	}
}

func TestFailedSaveRemovesTarget(t *testing.T) {
	p, _ := newTestPainter(t)
	path := filepath.Join(t.TempDir(), "notes.psd")
	if err := os.WriteFile(path, []byte("precious user data"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := storage.Writer(storage.NewFileURI(path))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.saveTo(w); !errors.Is(err, raster.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("truncated target left behind: stat err = %v", err)
	}
}

func TestSaveToFile(t *testing.T) {
	p, _ := newTestPainter(t)
	paintSomething(p)
	path := filepath.Join(t.TempDir(), "drawing.png")

	w, err := storage.Writer(storage.NewFileURI(path))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.saveTo(w); err != nil {
		t.Fatal(err)
	}
	c := raster.New(800, 600, color.White)
	if err := c.Load(path); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(c.Image().Pix, p.raster.Image().Pix) {
		t.Error("saved file does not match the canvas")
	}
}

func TestDirtyTracksUnsavedChanges(t *testing.T) {
	p, _ := newTestPainter(t)
	if p.Dirty() {
		t.Fatal("new canvas is dirty")
	}

	paintSomething(p)
	if !p.Dirty() {
		t.Error("commit did not mark the canvas dirty")
	}
	if got := p.window.Title(); got != config.Title+" *" {
		t.Errorf("title = %q, want unsaved marker", got)
	}

	if err := p.saveTo(&memWriter{uri: uri(t, "drawing.png")}); err != nil {
		t.Fatal(err)
	}
	if p.Dirty() {
		t.Error("save did not clear the dirty flag")
	}
	if got := p.window.Title(); got != config.Title {
		t.Errorf("title = %q after save, want %q", got, config.Title)
	}

	p.Clear()
	if !p.Dirty() {
		t.Error("clear did not mark the canvas dirty")
	}

	if err := p.saveTo(&memWriter{uri: uri(t, "drawing.psd")}); err == nil {
		t.Fatal("saving .psd succeeded")
	}
	if !p.Dirty() {
		t.Error("failed save cleared the dirty flag")
	}
}

func TestOpenFromReplacesCanvas(t *testing.T) {
	p, _ := newTestPainter(t)

	src := image.NewRGBA(image.Rect(0, 0, 80, 60))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i+2], src.Pix[i+3] = 255, 255
	}
	var buf bytes.Buffer
	if err := raster.Encode(&buf, src, raster.PNG); err != nil {
		t.Fatal(err)
	}

	r := &memReader{Reader: &buf, uri: uri(t, "blue.png")}
	if err := p.openFrom(r); err != nil {
		t.Fatal(err)
	}
	if !r.closed {
		t.Error("reader not closed")
	}
	if got := p.raster.Bounds(); got != image.Rect(0, 0, 800, 600) {
		t.Errorf("canvas = %v after open, want fixed size", got)
	}
	if got := p.raster.At(400, 300); got.B < 250 || got.R > 5 {
		t.Errorf("pixel = %v, want blue", got)
	}

	shown, ok := test.WidgetRenderer(p.Board()).Objects()[0].(*canvas.Image)
	if !ok {
		t.Fatal("first board object is not the raster image")
	}
	if shown.Image != p.raster.Image() {
		t.Error("board still displays the buffer replaced by open")
	}
	if p.Dirty() {
		t.Error("freshly opened canvas is dirty")
	}
}

func TestOpenFromCorruptKeepsCanvas(t *testing.T) {
	p, _ := newTestPainter(t)
	paintSomething(p)
	before := p.raster.Snapshot()

	r := &memReader{Reader: strings.NewReader("GIF89a garbage"), uri: uri(t, "bad.gif")}
	err := p.openFrom(r)
	if !errors.Is(err, raster.ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
	if !bytes.Equal(p.raster.Image().Pix, before.Pix) {
		t.Error("failed open changed the canvas")
	}
}

func TestClear(t *testing.T) {
	p, _ := newTestPainter(t)
	paintSomething(p)
	p.Clear()

	blank := raster.New(800, 600, color.White)
	if !bytes.Equal(p.raster.Image().Pix, blank.Image().Pix) {
		t.Error("clear left pixels behind")
	}
}

func TestClearDuringShapeGesture(t *testing.T) {
	p, _ := newTestPainter(t)
	b := p.Board()
	b.Controller().SetTool(state.ToolRectangle)
	b.MouseDown(press(10, 10))
	b.Dragged(drag(100, 100))

	p.Clear()
	b.MouseUp(press(100, 100))

	if _, ok := b.Preview(); ok {
		t.Error("preview survived clear")
	}
	blank := raster.New(800, 600, color.White)
	if !bytes.Equal(p.raster.Image().Pix, blank.Image().Pix) {
		t.Error("gesture interrupted by clear still committed")
	}
}

func TestBrushSettingsPersist(t *testing.T) {
	p, a := newTestPainter(t)
	p.SetBrushSize(15)
	p.SetColor(color.NRGBA{R: 255, A: 255})

	brush := p.Board().Controller().Brush()
	if brush.Size != 15 {
		t.Errorf("size = %d, want 15", brush.Size)
	}
	if p.slider.Value != 15 {
		t.Errorf("slider = %v, want 15", p.slider.Value)
	}
	s := config.Load(a.Preferences())
	if s.BrushSize != 15 || config.PackRGB(s.BrushColor) != 0xff0000 {
		t.Errorf("stored brush = %#06x/%d", config.PackRGB(s.BrushColor), s.BrushSize)
	}

	p.SetBrushSize(0)
	if got := p.Board().Controller().Brush().Size; got != 15 {
		t.Errorf("invalid size applied: %d", got)
	}
}

func TestSetToolUpdatesStatus(t *testing.T) {
	p, _ := newTestPainter(t)
	p.SetTool(state.ToolCircle)
	if p.Board().Controller().Tool() != state.ToolCircle {
		t.Error("tool not applied")
	}
	if !strings.Contains(p.status.Text, "Circle") {
		t.Errorf("status = %q", p.status.Text)
	}
}

func TestMainMenu(t *testing.T) {
	p, _ := newTestPainter(t)
	m := p.MainMenu()
	var labels []string
	for _, menu := range m.Items {
		labels = append(labels, menu.Label)
	}
	if strings.Join(labels, ",") != "File,Brush Size,Color" {
		t.Errorf("menus = %v", labels)
	}

	sizes := m.Items[1].Items
	sizes[2].Action()
	if got := p.Board().Controller().Brush().Size; got != 15 {
		t.Errorf("Large Brush set size %d, want 15", got)
	}
	sizes[0].Action()
	if got := p.Board().Controller().Brush().Size; got != 5 {
		t.Errorf("Small Brush set size %d, want 5", got)
	}
}

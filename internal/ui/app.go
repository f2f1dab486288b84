package ui

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/simplepaint/simplepaint/internal/config"
	"github.com/simplepaint/simplepaint/internal/export"
	"github.com/simplepaint/simplepaint/internal/raster"
	"github.com/simplepaint/simplepaint/internal/state"
)

func RunApp() {
	a := app.NewWithID(config.AppID)
	w := a.NewWindow(config.Title)

	p := NewPainter(a.Preferences(), w)
	w.SetContent(p.Content())
	w.SetMainMenu(p.MainMenu())
	p.addShortcuts()
	w.SetFixedSize(true)
	w.ShowAndRun()
}

// Painter ties the board, its raster and the window chrome together and
// implements the menu and toolbar actions.
type Painter struct {
	prefs    fyne.Preferences
	window   fyne.Window
	settings config.Settings

	raster *raster.Canvas
	board  *Board
	status *widget.Label
	slider *widget.Slider

	// dirty is set by every commit and cleared by save and open.
	dirty bool
}

func NewPainter(prefs fyne.Preferences, w fyne.Window) *Painter {
	s := config.Load(prefs)
	r := raster.New(s.Width, s.Height, s.Background)
	p := &Painter{
		prefs:    prefs,
		window:   w,
		settings: s,
		raster:   r,
		board:    NewBoard(r, state.Brush{Color: s.BrushColor, Size: s.BrushSize}),
		status:   widget.NewLabel("Ready"),
	}
	p.board.Controller().OnCommit = func(state.Shape) { p.setDirty(true) }
	p.updateStatus()
	return p
}

// Dirty reports whether the canvas changed since it was last saved or opened.
func (p *Painter) Dirty() bool { return p.dirty }

func (p *Painter) setDirty(dirty bool) {
	if p.dirty == dirty {
		return
	}
	p.dirty = dirty
	title := config.Title
	if dirty {
		title += " *"
	}
	p.window.SetTitle(title)
}

func (p *Painter) Board() *Board { return p.board }

func (p *Painter) Content() fyne.CanvasObject {
	toolbar := NewToolbar(p)
	return container.NewBorder(toolbar, p.status, nil, nil, container.NewCenter(p.board))
}

func (p *Painter) addShortcuts() {
	c := p.window.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { p.Save() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { p.Open() })
}

func (p *Painter) SetStatus(text string) {
	p.status.SetText(text)
}

func (p *Painter) updateStatus() {
	brush := p.board.Controller().Brush()
	p.SetStatus(fmt.Sprintf("Tool: %s  Size: %dpx", p.board.Controller().Tool(), brush.Size))
}

func (p *Painter) SetTool(t state.Tool) {
	p.board.Controller().SetTool(t)
	p.updateStatus()
}

func (p *Painter) SetColor(c color.Color) {
	ctl := p.board.Controller()
	ctl.SetColor(c)
	config.Store(p.prefs, c, ctl.Brush().Size)
}

func (p *Painter) SetBrushSize(size int) {
	ctl := p.board.Controller()
	if err := ctl.SetSize(size); err != nil {
		log.Printf("[UI] %v", err)
		return
	}
	if p.slider != nil && int(p.slider.Value) != size {
		p.slider.SetValue(float64(size))
	}
	config.Store(p.prefs, ctl.Brush().Color, size)
	p.updateStatus()
}

func (p *Painter) ChooseColor() {
	picker := dialog.NewColorPicker("Choose Color", "Brush color", func(c color.Color) {
		p.SetColor(c)
	}, p.window)
	picker.Advanced = true
	picker.Show()
}

// Clear resets the raster to the background colour.
func (p *Painter) Clear() {
	p.board.Controller().Cancel()
	p.raster.Clear()
	p.board.Refresh()
	p.setDirty(true)
	log.Println("[UI] canvas cleared")
	p.SetStatus("Canvas cleared")
}

func (p *Painter) Save() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			p.showError(err)
			return
		}
		if w == nil {
			return
		}
		if err := p.saveTo(w); err != nil {
			p.showError(err)
			return
		}
		p.SetStatus("Saved " + w.URI().Name())
	}, p.window)
	d.SetFileName("untitled.png")
	exts := append(raster.Extensions(), ".pdf")
	d.SetFilter(storage.NewExtensionFileFilter(exts))
	d.Show()
}

func (p *Painter) Open() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			p.showError(err)
			return
		}
		if r == nil {
			return
		}
		if err := p.openFrom(r); err != nil {
			p.showError(err)
			return
		}
		p.SetStatus("Opened " + r.URI().Name())
	}, p.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}))
	d.Show()
}

// saveTo writes the canvas to w and closes it. The dialog has already
// created or truncated the target, so a failed save removes it rather than
// leaving an empty or partial file behind.
func (p *Painter) saveTo(w fyne.URIWriteCloser) error {
	err := p.writeCanvas(w)
	if cerr := w.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("save %s: %w", w.URI().Name(), cerr)
	}
	if err != nil {
		if derr := storage.Delete(w.URI()); derr != nil {
			log.Printf("[UI] could not remove %s after failed save: %v", w.URI(), derr)
		}
		return err
	}
	p.setDirty(false)
	return nil
}

func (p *Painter) writeCanvas(w fyne.URIWriteCloser) error {
	name := w.URI().Name()
	if strings.EqualFold(w.URI().Extension(), ".pdf") {
		if err := export.WritePDF(w, p.raster.Image()); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		log.Printf("[UI] exported %s", w.URI())
		return nil
	}
	f, err := raster.FormatFromPath(name)
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := p.raster.SaveTo(w, f); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	log.Printf("[UI] saved %s as %s", w.URI(), f)
	return nil
}

func (p *Painter) openFrom(r fyne.URIReadCloser) error {
	defer r.Close()
	p.board.Controller().Cancel()
	if err := p.raster.LoadFrom(r); err != nil {
		return fmt.Errorf("open %s: %w", r.URI().Name(), err)
	}
	p.board.Refresh()
	p.setDirty(false)
	log.Printf("[UI] opened %s", r.URI())
	return nil
}

func (p *Painter) showError(err error) {
	log.Printf("[UI] %v", err)
	p.SetStatus("Error: " + err.Error())
	dialog.ShowError(err, p.window)
}

// Package raster holds the backing pixel buffer of the drawing and the
// codecs used to save it and load images into it.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/simplepaint/simplepaint/internal/state"
)

// Canvas is a fixed-size RGBA buffer.
type Canvas struct {
	img        *image.RGBA
	background color.Color
}

var _ state.Raster = (*Canvas)(nil)

func New(width, height int, background color.Color) *Canvas {
	c := &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
	}
	c.Clear()
	return c
}

func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Image returns the live buffer. It is replaced, not reused, by Replace.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Background() color.Color { return c.background }

func (c *Canvas) At(x, y int) color.RGBA { return c.img.RGBAAt(x, y) }

// Draw strokes s onto the buffer.
func (c *Canvas) Draw(s state.Shape) {
	dc := gg.NewContextForRGBA(c.img)
	dc.SetColor(s.Color)
	dc.SetLineWidth(float64(s.Width))
	if s.RoundCaps() {
		dc.SetLineCapRound()
	} else {
		dc.SetLineCapButt()
	}
	dc.SetLineJoinRound()

	switch s.Kind {
	case state.KindSegment, state.KindLine:
		dc.DrawLine(float64(s.From.X), float64(s.From.Y), float64(s.To.X), float64(s.To.Y))
	case state.KindRectangle:
		r := s.Bounds()
		dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	case state.KindCircle:
		dc.DrawCircle(float64(s.From.X), float64(s.From.Y), s.Radius())
	default:
		log.Printf("[RASTER] ignoring unknown shape kind %d", s.Kind)
		return
	}
	dc.Stroke()
}

// Clear paints every pixel with the background colour.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
}

// Replace rescales src to the canvas dimensions and swaps it in as the new buffer.
func (c *Canvas) Replace(src image.Image) {
	b := c.img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(c.background), image.Point{}, draw.Src)
	if src.Bounds().Size() == b.Size() {
		draw.Draw(dst, b, src, src.Bounds().Min, draw.Over)
	} else {
		xdraw.CatmullRom.Scale(dst, b, src, src.Bounds(), xdraw.Over, nil)
	}
	c.img = dst
}

// Snapshot returns a copy of the buffer.
func (c *Canvas) Snapshot() *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}

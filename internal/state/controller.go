package state

import (
	"fmt"
	"image/color"
	"log"
)

// Raster is the authoritative pixel buffer that committed shapes are drawn into.
type Raster interface {
	Draw(s Shape)
}

// Display is the on-screen surface. Previews live only on the display;
// Refresh redraws it from the raster.
type Display interface {
	ShowPreview(s Shape)
	ClearPreview()
	Refresh()
}

// Controller turns pointer events into raster commits and display previews.
// It is not safe for concurrent use; every call is expected on the UI thread.
type Controller struct {
	raster     Raster
	display    Display
	background color.Color

	tool    Tool
	brush   Brush
	session *Session

	// OnCommit, if set, is called after each shape reaches the raster.
	OnCommit func(s Shape)
}

func NewController(r Raster, d Display, background color.Color, brush Brush) *Controller {
	return &Controller{
		raster:     r,
		display:    d,
		background: background,
		tool:       ToolBrush,
		brush:      brush,
	}
}

func (c *Controller) Tool() Tool { return c.tool }

// SetTool changes the mode for the next gesture. A gesture already in
// progress keeps the tool it started with.
func (c *Controller) SetTool(t Tool) {
	c.tool = t
}

func (c *Controller) Brush() Brush { return c.brush }

func (c *Controller) SetColor(col color.Color) {
	c.brush.Color = col
}

func (c *Controller) SetSize(size int) error {
	if size < 1 {
		return fmt.Errorf("set size %d: %w", size, ErrInvalidSize)
	}
	c.brush.Size = size
	return nil
}

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool { return c.session != nil }

func (c *Controller) PointerDown(p Point) {
	if c.session != nil {
		c.Cancel()
	}
	c.session = newSession(c.tool, c.brush, p)
	log.Printf("[PAINT] gesture %s started: %s at (%d,%d)", c.session.ID, c.tool, p.X, p.Y)
}

func (c *Controller) PointerMove(p Point) {
	s := c.session
	if s == nil {
		return
	}
	switch s.Tool {
	case ToolBrush, ToolEraser:
		seg := Shape{
			Kind:  KindSegment,
			From:  s.Last,
			To:    p,
			Color: s.Brush.Color,
			Width: s.Brush.Size,
		}
		if s.Tool == ToolEraser {
			seg.Color = c.background
		}
		c.commit(seg)
		s.Last = p
	default:
		if s.Preview != nil {
			c.display.ClearPreview()
		}
		shape := s.shapeTo(p)
		s.Preview = &shape
		s.Last = p
		c.display.ShowPreview(shape)
	}
}

func (c *Controller) PointerUp(p Point) {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil
	if s.Tool.IsShape() {
		shape := s.shapeTo(p)
		c.display.ClearPreview()
		c.commit(shape)
		log.Printf("[PAINT] gesture %s committed %s (%d,%d)-(%d,%d)",
			s.ID, shape.Kind, shape.From.X, shape.From.Y, shape.To.X, shape.To.Y)
		return
	}
	log.Printf("[PAINT] gesture %s finished", s.ID)
}

// Cancel drops the gesture in progress without committing its preview.
func (c *Controller) Cancel() {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil
	if s.Preview != nil {
		c.display.ClearPreview()
	}
	log.Printf("[PAINT] gesture %s cancelled", s.ID)
}

func (c *Controller) commit(s Shape) {
	c.raster.Draw(s)
	c.display.Refresh()
	if c.OnCommit != nil {
		c.OnCommit(s)
	}
}

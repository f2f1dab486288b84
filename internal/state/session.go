package state

import (
	"github.com/google/uuid"
)

// Session is the state of one gesture, from pointer-down to pointer-up.
// Tool and Brush are captured at pointer-down and rule the whole gesture.
type Session struct {
	ID      string
	Tool    Tool
	Brush   Brush
	Anchor  Point
	Last    Point
	Preview *Shape
}

func newSession(tool Tool, brush Brush, at Point) *Session {
	return &Session{
		ID:     uuid.NewString(),
		Tool:   tool,
		Brush:  brush,
		Anchor: at,
		Last:   at,
	}
}

// shapeTo builds the shape the gesture would commit if released at p.
func (s *Session) shapeTo(p Point) Shape {
	return Shape{
		Kind:  shapeFor(s.Tool),
		From:  s.Anchor,
		To:    p,
		Color: s.Brush.Color,
		Width: s.Brush.Size,
	}
}

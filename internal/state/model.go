package state

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// ErrInvalidSize is returned when a brush size below one pixel is requested.
var ErrInvalidSize = errors.New("brush size must be at least 1px")

// Point is a position on the canvas in pixel coordinates.
type Point struct{ X, Y int }

func Pt(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) image() image.Point { return image.Pt(p.X, p.Y) }

// Tool is the active drawing mode.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolRectangle
	ToolCircle
	ToolLine
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolBrush, ToolEraser, ToolRectangle, ToolCircle, ToolLine}

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "Brush"
	case ToolEraser:
		return "Eraser"
	case ToolRectangle:
		return "Rectangle"
	case ToolCircle:
		return "Circle"
	case ToolLine:
		return "Line"
	}
	return "Unknown"
}

// IsShape reports whether the tool previews a shape and commits it on release.
func (t Tool) IsShape() bool {
	return t == ToolRectangle || t == ToolCircle || t == ToolLine
}

// Brush is the colour and width applied to strokes and shape outlines.
type Brush struct {
	Color color.Color
	Size  int
}

type ShapeKind int

const (
	// KindSegment is one piece of a freehand stroke.
	KindSegment ShapeKind = iota
	KindRectangle
	KindCircle
	KindLine
)

func (k ShapeKind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	case KindLine:
		return "line"
	}
	return "unknown"
}

// Shape is one primitive ready to be previewed or committed.
// For circles From is the centre and To lies on the circumference.
type Shape struct {
	Kind  ShapeKind
	From  Point
	To    Point
	Color color.Color
	Width int
}

// Radius is the distance between From and To.
func (s Shape) Radius() float64 {
	return math.Hypot(float64(s.To.X-s.From.X), float64(s.To.Y-s.From.Y))
}

// Bounds returns the rectangle spanned by From and To with Min <= Max.
func (s Shape) Bounds() image.Rectangle {
	return image.Rectangle{Min: s.From.image(), Max: s.To.image()}.Canon()
}

// RoundCaps reports whether the primitive is stroked with round line caps.
func (s Shape) RoundCaps() bool {
	return s.Kind == KindSegment
}

func shapeFor(t Tool) ShapeKind {
	switch t {
	case ToolRectangle:
		return KindRectangle
	case ToolCircle:
		return KindCircle
	case ToolLine:
		return KindLine
	}
	return KindSegment
}

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/simplepaint/simplepaint/internal/state"
)

var toolIcons = map[state.Tool]fyne.Resource{
	state.ToolBrush:     theme.DocumentCreateIcon(),
	state.ToolEraser:    theme.DeleteIcon(),
	state.ToolRectangle: theme.CheckButtonIcon(),
	state.ToolCircle:    theme.RadioButtonIcon(),
	state.ToolLine:      theme.ContentRemoveIcon(),
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewToolbar builds the tool buttons, the colour palette and the size slider.
func NewToolbar(p *Painter) fyne.CanvasObject {
	tb := widget.NewToolbar()
	for _, t := range state.Tools {
		tool := t
		tb.Append(widget.NewToolbarAction(toolIcons[tool], func() { p.SetTool(tool) }))
	}

	// --- Color Palette ---
	colorBox := container.NewHBox()
	for _, c := range p.settings.Palette {
		colorBox.Add(newColorSwatch(c, p.SetColor))
	}
	colorBox.Add(widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), p.ChooseColor))

	// --- Brush Size Slider ---
	p.slider = widget.NewSlider(1, float64(p.settings.MaxBrushSize))
	p.slider.Step = 1
	p.slider.SetValue(float64(p.board.Controller().Brush().Size))
	p.slider.OnChanged = func(val float64) {
		p.SetBrushSize(int(val))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), p.slider)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}

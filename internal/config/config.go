package config

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
)

const (
	AppID = "io.github.simplepaint"
	Title = "Simple Paint"

	keyBrushColor = "brush.color"
	keyBrushSize  = "brush.size"
)

// BrushSize is a named entry of the Brush Size menu.
type BrushSize struct {
	Label string
	Size  int
}

type Settings struct {
	Width, Height int
	Background    color.Color
	BrushColor    color.Color
	BrushSize     int
	BrushSizes    []BrushSize
	Palette       []color.Color
	MaxBrushSize  int
}

func Defaults() Settings {
	return Settings{
		Width:      800,
		Height:     600,
		Background: color.White,
		BrushColor: color.Black,
		BrushSize:  10,
		BrushSizes: []BrushSize{
			{Label: "Small Brush (5px)", Size: 5},
			{Label: "Medium Brush (10px)", Size: 10},
			{Label: "Large Brush (15px)", Size: 15},
		},
		Palette: []color.Color{
			color.Black,
			color.NRGBA{R: 255, A: 255},
			color.NRGBA{G: 255, A: 255},
			color.NRGBA{B: 255, A: 255},
			color.NRGBA{R: 255, G: 255, A: 255},
			color.White,
		},
		MaxBrushSize: 50,
	}
}

// Load returns the defaults with the brush choice saved by a previous run.
func Load(prefs fyne.Preferences) Settings {
	s := Defaults()
	if size := prefs.IntWithFallback(keyBrushSize, s.BrushSize); size >= 1 && size <= s.MaxBrushSize {
		s.BrushSize = size
	} else {
		log.Printf("[CONFIG] ignoring stored brush size %d", size)
	}
	if rgb := prefs.IntWithFallback(keyBrushColor, -1); rgb >= 0 && rgb <= 0xffffff {
		s.BrushColor = UnpackRGB(rgb)
	} else if rgb != -1 {
		log.Printf("[CONFIG] ignoring stored brush color %#x", rgb)
	}
	return s
}

// Store persists the brush choice for the next run.
func Store(prefs fyne.Preferences, c color.Color, size int) {
	prefs.SetInt(keyBrushColor, PackRGB(c))
	prefs.SetInt(keyBrushSize, size)
}

// PackRGB drops alpha and packs c as 0xRRGGBB.
func PackRGB(c color.Color) int {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R)<<16 | int(n.G)<<8 | int(n.B)
}

func UnpackRGB(v int) color.Color {
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

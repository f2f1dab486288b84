package ui

import (
	"fyne.io/fyne/v2"
)

// MainMenu builds the window menu. fyne appends Quit to the first menu.
func (p *Painter) MainMenu() *fyne.MainMenu {
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", p.Open),
		fyne.NewMenuItem("Save…", p.Save),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Canvas", p.Clear),
	)

	sizes := make([]*fyne.MenuItem, 0, len(p.settings.BrushSizes))
	for _, bs := range p.settings.BrushSizes {
		size := bs.Size
		sizes = append(sizes, fyne.NewMenuItem(bs.Label, func() { p.SetBrushSize(size) }))
	}

	return fyne.NewMainMenu(
		file,
		fyne.NewMenu("Brush Size", sizes...),
		fyne.NewMenu("Color", fyne.NewMenuItem("Choose Color…", p.ChooseColor)),
	)
}

package raster

import (
	"fmt"
	"io"
	"log"
	"os"
)

// SaveTo encodes the whole canvas to w.
func (c *Canvas) SaveTo(w io.Writer, f Format) error {
	return Encode(w, c.img, f)
}

// LoadFrom decodes r and replaces the canvas with the rescaled image.
// On error the canvas is left as it was.
func (c *Canvas) LoadFrom(r io.Reader) error {
	img, name, err := Decode(r)
	if err != nil {
		return err
	}
	log.Printf("[RASTER] decoded %s image %dx%d", name, img.Bounds().Dx(), img.Bounds().Dy())
	c.Replace(img)
	return nil
}

// Save writes the canvas to path in the format chosen by its extension.
func (c *Canvas) Save(path string) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save %s: %w", path, cerr)
		}
	}()
	if err := c.SaveTo(file, f); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	log.Printf("[RASTER] saved %s as %s", path, f)
	return nil
}

// Load opens path and replaces the canvas with its contents.
func (c *Canvas) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	defer file.Close()
	if err := c.LoadFrom(file); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

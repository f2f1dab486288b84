package raster

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrDecode            = errors.New("cannot decode image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

const jpegQuality = 95

var extensions = map[string]Format{
	"":      PNG,
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
}

// Extensions lists the file extensions Encode can produce.
func Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}
}

// FormatFromPath picks the encoding from the file extension. A path without
// an extension is saved as PNG.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
	}
	return f, nil
}

func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case GIF:
		err = gif.Encode(w, img, nil)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("encode %q: %w", f, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// Decode reads any registered image format. Failures wrap ErrDecode.
func Decode(r io.Reader) (image.Image, string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, name, nil
}

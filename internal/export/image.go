// Package export writes rendered frames and the posed model to disk formats.
package export

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
)

// Format is an output image encoding.
type Format string

const (
	WebP Format = "webp"
	PNG  Format = "png"
	TGA  Format = "tga"
)

// Formats lists the supported image encodings.
var Formats = []Format{WebP, PNG, TGA}

// ParseFormat accepts a format name or file extension, with or without dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Errorf("unsupported image format %q", s)
}

// FormatFor picks the format from a file name's extension.
func FormatFor(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case WebP:
		return "image/webp"
	case PNG:
		return "image/png"
	case TGA:
		return "image/x-tga"
	}
	return "application/octet-stream"
}

// EncodeImage writes img to w in format f.
func EncodeImage(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case PNG:
		err = png.Encode(w, img)
	case TGA:
		err = tga.Encode(w, img)
	default:
		return errors.Errorf("unsupported image format %q", f)
	}
	return errors.Wrapf(err, "%s encode", f)
}

// WriteImage saves img to path, creating parent directories. The format
// follows the extension.
func WriteImage(path string, img image.Image) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WithStack(err)
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := EncodeImage(out, img, f); err != nil {
		out.Close()
		return err
	}
	return errors.WithStack(out.Close())
}

// Package texture loads the backdrop images composited behind rendered
// frames.
package texture

import (
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
)

// LoadTexture reads a PNG, TGA or JPEG file and returns an NRGBA image.
func LoadTexture(path string) (*image.NRGBA, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode := decoder(ext)
	if decode == nil {
		return nil, errors.Errorf("texture: unknown extension: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "texture: read %s", path)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "texture: decode %s", path)
	}

	return toNRGBA(img), nil
}

// decoder picks the codec by extension. The tga package registers with an
// empty magic string, so format sniffing would hand it every file.
func decoder(ext string) func(io.Reader) (image.Image, error) {
	switch ext {
	case ".png":
		return png.Decode
	case ".tga":
		return tga.Decode
	case ".jpg", ".jpeg":
		return jpeg.Decode
	}
	return nil
}

func supported(ext string) bool {
	return decoder(ext) != nil
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

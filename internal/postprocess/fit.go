package postprocess

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// CropAndCenter crops to the bounding box of non-transparent pixels, then
// scales the subject to fillRatio of a width×height canvas and centers it.
// Uncovered pixels stay transparent.
func CropAndCenter(img *image.NRGBA, width, height int, fillRatio float64) *image.NRGBA {
	cropped := cropAlpha(img)
	return scaleAndCenter(cropped, width, height, fillRatio)
}

// Flatten composites img over an opaque background color.
func Flatten(img *image.NRGBA, bg color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for i := range out.Pix {
		switch i % 4 {
		case 0:
			out.Pix[i] = bg.R
		case 1:
			out.Pix[i] = bg.G
		case 2:
			out.Pix[i] = bg.B
		default:
			out.Pix[i] = 255
		}
	}
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}

// Underlay stretches backdrop to img's size and composites img over it.
func Underlay(img *image.NRGBA, backdrop image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	draw.ApproxBiLinear.Scale(out, b, backdrop, backdrop.Bounds(), draw.Src, nil)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}

// Bounds returns the bounding box of non-transparent pixels, or an empty
// rectangle if there are none.
func Bounds(img *image.NRGBA) image.Rectangle {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.Pix[y*img.Stride+x*4+3] > 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

func cropAlpha(img *image.NRGBA) *image.NRGBA {
	r := Bounds(img)
	if r.Empty() {
		return img
	}

	cropW, cropH := r.Dx(), r.Dy()
	cropped := image.NewNRGBA(image.Rect(0, 0, cropW, cropH))
	for y := 0; y < cropH; y++ {
		srcOff := (r.Min.Y+y)*img.Stride + r.Min.X*4
		dstOff := y * cropped.Stride
		copy(cropped.Pix[dstOff:dstOff+cropW*4], img.Pix[srcOff:srcOff+cropW*4])
	}
	return cropped
}

func scaleAndCenter(img *image.NRGBA, width, height int, fillRatio float64) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 {
		return canvas
	}

	// Scale to fit within fillRatio of canvas
	scaleF := math.Min(float64(width)*fillRatio/float64(srcW), float64(height)*fillRatio/float64(srcH))
	newW := max(int(float64(srcW)*scaleF+0.5), 1)
	newH := max(int(float64(srcH)*scaleF+0.5), 1)

	offX := (width - newW) / 2
	offY := (height - newH) / 2
	dst := image.Rect(offX, offY, offX+newW, offY+newH)
	draw.CatmullRom.Scale(canvas, dst, img, b, draw.Src, nil)
	return canvas
}

package converter

import (
	"image"
	"image/color"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// FlattenToRGB converts img to a 3-channel RGB image.
//
// The conversion is lossy on purpose: palette and grayscale images are
// expanded, and the alpha channel is dropped without compositing onto a
// background, so a fully transparent pixel keeps whatever color it stores.
// The encoder is only ever given opaque RGB data.
func FlattenToRGB(img image.Image) *webp.RGBImage {
	src := imaging.Clone(img)
	b := src.Bounds()
	dst := webp.NewRGBImage(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[(y-b.Min.Y)*src.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			i := (x - b.Min.X) * 4
			dst.Set(x, y, color.NRGBA{R: row[i], G: row[i+1], B: row[i+2], A: 0xff})
		}
	}
	return dst
}

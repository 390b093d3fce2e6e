package converter

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// EXIF orientation values, see the TIFF 6.0 Orientation tag.
const (
	orientationNormal     = 1
	orientationFlipH      = 2
	orientationRotate180  = 3
	orientationFlipV      = 4
	orientationTranspose  = 5
	orientationRotate270  = 6
	orientationTransverse = 7
	orientationRotate90   = 8
)

// readOrientation returns the EXIF orientation of r, or orientationNormal
// when there is no EXIF block or the tag is missing.
func readOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return orientationNormal
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return orientationNormal
	}
	o, err := tag.Int(0)
	if err != nil || o < orientationNormal || o > orientationRotate90 {
		return orientationNormal
	}
	return o
}

// applyOrientation transforms img so that it displays upright.
// WebP output carries no EXIF, so the rotation has to be baked into the pixels.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case orientationFlipH:
		return imaging.FlipH(img)
	case orientationRotate180:
		return imaging.Rotate180(img)
	case orientationFlipV:
		return imaging.FlipV(img)
	case orientationTranspose:
		return imaging.Transpose(img)
	case orientationRotate270:
		return imaging.Rotate270(img)
	case orientationTransverse:
		return imaging.Transverse(img)
	case orientationRotate90:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

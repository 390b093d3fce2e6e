package converter

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ImagingDecoder decodes JPEG and PNG files with the imaging package.
// JPEG files are rotated according to their EXIF orientation tag.
type ImagingDecoder struct{}

// NewImagingDecoder creates a new ImagingDecoder instance.
func NewImagingDecoder() *ImagingDecoder {
	return &ImagingDecoder{}
}

// Decode opens path and returns the decoded image. The file handle is
// closed before Decode returns.
func (d *ImagingDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".jpg" && ext != ".jpeg" {
		return img, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind for exif: %w", err)
	}
	return applyOrientation(img, readOrientation(f)), nil
}

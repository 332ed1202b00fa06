package io

import (
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/qrnoize/pkg/errors"
	"github.com/matzehuels/qrnoize/pkg/raster"
)

// Extensions accepted for batch processing. Matching is case-sensitive.
var Extensions = []string{".jpg", ".jpeg"}

// Accepted reports whether path has one of the accepted extensions.
func Accepted(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadImage decodes an image from r into a new grayscale raster.
// ReadImage does not close r.
func ReadImage(r io.Reader) (*raster.Raster, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode image")
	}
	return raster.FromImage(img), nil
}

// ImportImage reads the image file at path into a new grayscale raster.
//
// A missing or unreadable file yields ErrCodeIO; a file that is not a
// decodable image yields ErrCodeInvalidInput.
func ImportImage(path string) (*raster.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	r, err := ReadImage(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "import %s", path)
	}
	return r, nil
}

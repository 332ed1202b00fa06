package io

import (
	"io"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/qrnoize/pkg/errors"
	"github.com/matzehuels/qrnoize/pkg/raster"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 95

// WriteImage encodes r as a JPEG of the given quality to w.
func WriteImage(w io.Writer, r *raster.Raster, quality int) error {
	if err := imaging.Encode(w, r.Gray(), imaging.JPEG, imaging.JPEGQuality(clampQuality(quality))); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode image")
	}
	return nil
}

// ExportImage writes r to path. The format follows the extension; JPEG
// outputs use the given quality.
func ExportImage(path string, r *raster.Raster, quality int) error {
	if err := imaging.Save(r.Gray(), path, imaging.JPEGQuality(clampQuality(quality))); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

func clampQuality(q int) int {
	if q <= 0 {
		return DefaultQuality
	}
	return min(q, 100)
}

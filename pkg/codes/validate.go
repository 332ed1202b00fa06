package codes

import (
	"context"
	"encoding/json"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/aztec"
	"github.com/makiuchi-d/gozxing/datamatrix"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/matzehuels/qrnoize/pkg/errors"
	qio "github.com/matzehuels/qrnoize/pkg/io"
)

// ReportFile is the name of the report Validate writes.
const ReportFile = "validation.json"

// Unknown is recorded for images that could not be decoded.
const Unknown = "unknown"

var decodeHints = map[gozxing.DecodeHintType]interface{}{
	gozxing.DecodeHintType_TRY_HARDER: true,
}

type reader struct {
	sym       Symbology
	newReader func() gozxing.Reader
}

var readers = []reader{
	{QRCode, func() gozxing.Reader { return qrcode.NewQRCodeReader() }},
	{DataMatrix, func() gozxing.Reader { return datamatrix.NewDataMatrixReader() }},
	{AztecCode, func() gozxing.Reader { return aztec.NewAztecReader() }},
}

// Decode looks for a QR, Data Matrix or Aztec code in img and returns its
// text and symbology. ok is false when none is found.
func Decode(img image.Image) (text string, sym Symbology, ok bool) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", "", false
	}
	for _, r := range readers {
		res, err := r.newReader().Decode(bmp, decodeHints)
		if err == nil {
			return res.GetText(), r.sym, true
		}
	}
	return "", "", false
}

// Report is the outcome of validating one directory.
type Report struct {
	Dir     string
	Results map[string]string // file name to decoded text or Unknown
	Skipped []string          // files that are not .jpg/.jpeg images
}

// Decoded counts the images whose code was read.
func (r *Report) Decoded() int {
	n := 0
	for _, v := range r.Results {
		if v != Unknown {
			n++
		}
	}
	return n
}

// Files returns the validated file names in sorted order.
func (r *Report) Files() []string {
	names := make([]string, 0, len(r.Results))
	for n := range r.Results {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate decodes every .jpg/.jpeg file directly inside dir. Other entries
// are listed in Report.Skipped with a warning; a previous report is ignored.
// Images that cannot be read are recorded as Unknown.
func Validate(ctx context.Context, dir string, logger *log.Logger) (*Report, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", dir)
	}

	rep := &Report{Dir: dir, Results: make(map[string]string)}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		name := e.Name()
		if name == ReportFile {
			continue
		}
		if e.IsDir() || !qio.Accepted(name) {
			logger.Warn("Not an image", "file", name)
			rep.Skipped = append(rep.Skipped, name)
			continue
		}

		r, err := qio.ImportImage(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("Unreadable image", "file", name, "err", err)
			rep.Results[name] = Unknown
			continue
		}
		text, sym, ok := Decode(r.Gray())
		if !ok {
			logger.Debug("No code found", "file", name)
			rep.Results[name] = Unknown
			continue
		}
		logger.Debug("Decoded", "file", name, "symbology", sym)
		rep.Results[name] = text
	}
	return rep, nil
}

// Write stores the results as JSON in dir/validation.json and returns the
// path written.
func (r *Report) Write() (string, error) {
	data, err := json.Marshal(r.Results)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode report")
	}
	path := filepath.Join(r.Dir, ReportFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return path, nil
}

package codes

import (
	"image"
	"image/color"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/aztec"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/qr"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/qrnoize/pkg/errors"
	"github.com/matzehuels/qrnoize/pkg/raster"
)

// Symbology names a 2D code type as written in job files.
type Symbology string

// Known symbologies. MaxiCode is recognized in job files but cannot be
// encoded.
const (
	QRCode     Symbology = "qrcode"
	AztecCode  Symbology = "azteccode"
	DataMatrix Symbology = "datamatrix"
	MaxiCode   Symbology = "maxicode"
)

func (s Symbology) String() string { return string(s) }

// Supported lists the symbologies Encode can render.
var Supported = []Symbology{QRCode, AztecCode, DataMatrix}

// ParseSymbology converts a name to a Symbology. Unknown names yield
// ErrCodeInvalidOptions; maxicode yields ErrCodeUnsupportedFormat.
func ParseSymbology(name string) (Symbology, error) {
	switch s := Symbology(strings.TrimSpace(name)); s {
	case QRCode, AztecCode, DataMatrix:
		return s, nil
	case MaxiCode:
		return s, errors.New(errors.ErrCodeUnsupportedFormat, "maxicode cannot be encoded")
	default:
		return s, errors.New(errors.ErrCodeInvalidOptions, "unknown symbology %q (want qrcode, azteccode or datamatrix)", name)
	}
}

// Default encoding settings.
const (
	DefaultSize      = 256
	DefaultQuietZone = 4
	DefaultLevel     = "M"
	DefaultECPercent = 33
)

// EncodeOptions controls how a code is rendered.
type EncodeOptions struct {
	Size      int    // target pixel size of the code, before the quiet zone
	QuietZone int    // white border in modules
	Level     string // qrcode error correction: L, M, Q or H
	ECPercent int    // azteccode minimum error correction percentage
	Layers    int    // azteccode layers; 0 picks the smallest that fits
}

func (o *EncodeOptions) setDefaults() {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.QuietZone <= 0 {
		o.QuietZone = DefaultQuietZone
	}
	if o.Level == "" {
		o.Level = DefaultLevel
	}
	if o.ECPercent <= 0 {
		o.ECPercent = DefaultECPercent
	}
}

func qrLevel(s string) (qr.ErrorCorrectionLevel, error) {
	switch strings.ToUpper(s) {
	case "L":
		return qr.L, nil
	case "M":
		return qr.M, nil
	case "Q":
		return qr.Q, nil
	case "H":
		return qr.H, nil
	}
	return qr.M, errors.New(errors.ErrCodeInvalidOptions, "eclevel must be L, M, Q or H, got %q", s)
}

// Encode renders data as sym. Modules are scaled by a whole factor so the
// code is about opts.Size pixels across, then surrounded by a quiet zone.
func Encode(sym Symbology, data string, opts EncodeOptions) (*raster.Raster, error) {
	opts.setDefaults()

	var (
		bc  barcode.Barcode
		err error
	)
	switch sym {
	case QRCode:
		lvl, lerr := qrLevel(opts.Level)
		if lerr != nil {
			return nil, lerr
		}
		bc, err = qr.Encode(data, lvl, qr.Auto)
	case AztecCode:
		bc, err = aztec.Encode([]byte(data), opts.ECPercent, opts.Layers)
	case DataMatrix:
		bc, err = datamatrix.Encode(data)
	default:
		_, perr := ParseSymbology(string(sym))
		return nil, perr
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode %s %q", sym, data)
	}

	b := bc.Bounds()
	w, h := b.Dx(), b.Dy()
	f := max(1, opts.Size/max(w, h))
	scaled, err := barcode.Scale(bc, w*f, h*f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "scale %s", sym)
	}

	q := opts.QuietZone * f
	canvas := imaging.New(w*f+2*q, h*f+2*q, color.White)
	canvas = imaging.Paste(canvas, scaled, image.Pt(q, q))
	return raster.FromImage(canvas), nil
}

// ParseSymbologies converts a list of names, rejecting duplicates.
func ParseSymbologies(names []string) ([]Symbology, error) {
	seen := make(map[Symbology]bool, len(names))
	out := make([]Symbology, 0, len(names))
	for _, n := range names {
		s, err := ParseSymbology(n)
		if err != nil {
			return nil, err
		}
		if seen[s] {
			return nil, errors.New(errors.ErrCodeInvalidOptions, "symbology %s listed twice", s)
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}

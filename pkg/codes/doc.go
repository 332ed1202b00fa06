// Package codes produces and checks the 2D codes that qrnoize distorts.
//
// [Encode] renders a QR, Aztec or Data Matrix code as a grayscale raster with
// a white quiet zone. [GenerateRandom] writes a batch of codes with random
// alphanumeric payloads, and [GenerateJobs] writes codes listed in a job file:
//
//	qrcode:2:eclevel=H
//	first payload
//	second payload
//	azteccode:1:None
//	third payload
//
// A header names the symbology, the number of payload lines that follow and
// optional key=value settings ("None" for none). Keys are size, quiet,
// eclevel (qrcode) and ecpercent and layers (azteccode).
//
// [Validate] decodes every .jpg/.jpeg file in a directory and records the
// text of each, or "unknown", in a validation.json report next to them. It is
// meant to run over the output of a distortion batch to see which images are
// still readable.
package codes

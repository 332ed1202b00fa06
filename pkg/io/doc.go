// Package io reads and writes grayscale rasters as image files.
//
// # Import
//
// Use [ImportImage] to read a raster from a file path, or [ReadImage] to
// decode one from any io.Reader. Color inputs are converted to 8-bit
// grayscale; EXIF orientation is applied before conversion.
//
//	r, err := io.ImportImage("scan.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// Use [ExportImage] to write a raster to a file, or [WriteImage] to encode
// it as JPEG to any io.Writer. The output format of [ExportImage] follows
// the path's extension.
//
// # Extensions
//
// Batch processing only accepts ".jpg" and ".jpeg", compared
// case-sensitively. [Accepted] reports whether a path qualifies.
//
// # Compose
//
// [Compose] pastes a code image onto a blank white canvas and reports the
// pasted region as a normalized bounding box, producing labelled samples
// for detector training.
package io

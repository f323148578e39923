// Package pdfextract reads the text layer of a PDF and returns one raw
// block per line, in reading order.
//
// Parsing is delegated to github.com/ledongthuc/pdf. Glyphs reported by the
// library are merged into word runs, split into columns, then grouped into
// lines by the layout package:
//
//	ex := pdfextract.New(logger)
//	result, err := ex.Extract(ctx, "cours.pdf")
//	if errors.Is(err, pdfextract.ErrNoText) {
//	    // scanned document, nothing to reflow
//	}
//
// Errors wrap one of the package sentinels so callers can tell a non-PDF
// input from an encrypted file or an image-only document.
package pdfextract

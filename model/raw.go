package model

// RawBlock is one line of text as extracted from a PDF page, before reflow
type RawBlock struct {
	// Page is the 0-based page index
	Page int

	BBox BBox

	// FontSize is the average font size of the line in points
	FontSize float64

	Text string

	// Styles lists the emphasized rune ranges of Text in order. Plain text
	// has no range.
	Styles []StyleRange
}

// PageSize holds the dimensions of one page in points
type PageSize struct {
	Width  float64
	Height float64
}

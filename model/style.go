package model

import "strings"

// Style is a set of typographic emphasis flags carried by a run of text
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic
)

// StyleNone is plain text
const StyleNone Style = 0

// Has reports whether all flags of f are set
func (s Style) Has(f Style) bool {
	return s&f == f
}

// String returns a string representation of the style
func (s Style) String() string {
	if s == StyleNone {
		return "regular"
	}
	var parts []string
	if s.Has(StyleBold) {
		parts = append(parts, "bold")
	}
	if s.Has(StyleItalic) {
		parts = append(parts, "italic")
	}
	return strings.Join(parts, "+")
}

// StyleRange applies a style to the runes [Start, End) of a text
type StyleRange struct {
	Start int
	End   int
	Style Style
}

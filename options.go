package dyspositif

import (
	"slices"

	"github.com/tsawler/dyspositif/htmlbuild"
	"github.com/tsawler/dyspositif/model"
)

// convertOptions holds the settings collected by the fluent API.
type convertOptions struct {
	conversion model.ConversionOptions

	// Page selection (1-indexed)
	pages    []int
	password string

	// Running header and footer removal, in points from the page edge
	headerMargin float64
	footerMargin float64

	palette      htmlbuild.Palette
	typography   htmlbuild.Typography
	noPageBreaks bool
}

// defaultOptions returns the default options: no annotation.
func defaultOptions() convertOptions {
	return convertOptions{
		palette:    htmlbuild.DefaultPalette(),
		typography: htmlbuild.DefaultTypography(),
	}
}

// clone creates a deep copy of convertOptions.
func (o convertOptions) clone() convertOptions {
	n := o
	n.pages = slices.Clone(o.pages)
	n.palette = htmlbuild.Palette{
		Syllables:  slices.Clone(o.palette.Syllables),
		Mute:       o.palette.Mute,
		Positional: slices.Clone(o.palette.Positional),
		Multicolor: slices.Clone(o.palette.Multicolor),
	}
	return n
}

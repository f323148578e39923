package text

import (
	"math"
	"strings"

	"github.com/tsawler/dyspositif/model"
)

// TextFragment represents a positioned piece of text on a page
type TextFragment struct {
	Text     string
	X, Y     float64 // Left edge and baseline, PDF coordinates (Y grows upward)
	Width    float64
	Height   float64
	FontName string
	FontSize float64
	Style    model.Style
}

// Right returns the right edge X coordinate
func (f TextFragment) Right() float64 {
	return f.X + f.Width
}

// IsSpace returns true if the fragment holds only whitespace
func (f TextFragment) IsSpace() bool {
	return strings.TrimSpace(f.Text) == ""
}

// FontStyle derives the emphasis of a font from its PostScript name.
// A subset prefix such as "ABCDEF+" is ignored.
func FontStyle(fontName string) model.Style {
	name := fontName
	if i := strings.IndexByte(name, '+'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ToLower(name)

	var s model.Style
	for _, w := range []string{"bold", "black", "heavy", "demi"} {
		if strings.Contains(name, w) {
			s |= model.StyleBold
			break
		}
	}
	if strings.Contains(name, "italic") || strings.Contains(name, "oblique") {
		s |= model.StyleItalic
	}
	return s
}

// Glyph merging tolerances, as fractions of the font size
const (
	// baselineTolerance is the Y difference allowed for glyphs on one baseline
	baselineTolerance = 0.3

	// glyphGapTolerance is the largest horizontal gap that still joins two
	// glyphs into one run. Wider gaps are word spaces.
	glyphGapTolerance = 0.15
)

// MergeGlyphs joins per-glyph fragments into word-level runs.
//
// Glyphs are kept in stream order. A run ends at an explicit space glyph,
// at a baseline change, at a font size or style change, or at a horizontal
// gap wider than a fraction of the font size. Space glyphs are dropped; the line
// detector re-inserts spaces from the gaps between runs.
func MergeGlyphs(glyphs []TextFragment) []TextFragment {
	if len(glyphs) == 0 {
		return nil
	}

	runs := make([]TextFragment, 0, len(glyphs)/4+1)
	var current *TextFragment
	var sb strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		current.Text = sb.String()
		runs = append(runs, *current)
		current = nil
		sb.Reset()
	}

	for _, g := range glyphs {
		if g.IsSpace() {
			flush()
			continue
		}

		if current != nil && continuesRun(*current, g) {
			sb.WriteString(g.Text)
			if g.Right() > current.Right() {
				current.Width = g.Right() - current.X
			}
			if g.Height > current.Height {
				current.Height = g.Height
			}
			continue
		}

		flush()
		run := g
		current = &run
		sb.WriteString(g.Text)
	}
	flush()

	return runs
}

// continuesRun reports whether glyph g extends run
func continuesRun(run, g TextFragment) bool {
	size := run.FontSize
	if size <= 0 {
		size = run.Height
	}
	if size <= 0 {
		size = 10
	}

	if math.Abs(g.Y-run.Y) > size*baselineTolerance {
		return false
	}
	if math.Abs(g.FontSize-run.FontSize) > 0.5 || g.Style != run.Style {
		return false
	}

	gap := g.X - run.Right()
	// Glyphs that move backwards are a new run (new column or overprint)
	if gap < -size*0.5 {
		return false
	}
	return gap <= size*glyphGapTolerance
}

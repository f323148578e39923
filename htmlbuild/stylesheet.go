package htmlbuild

import (
	"errors"
	"fmt"
	"strings"
)

// Typography holds the base text settings of the page
type Typography struct {
	// FontFamily is a CSS font stack. Only locally installed fonts are
	// used; the stylesheet imports nothing.
	FontFamily string `yaml:"font_family"`

	// FontSize in pixels
	FontSize float64 `yaml:"font_size"`

	// LineHeight as a multiple of the font size
	LineHeight float64 `yaml:"line_height"`

	// LetterSpacing and WordSpacing in em
	LetterSpacing float64 `yaml:"letter_spacing"`
	WordSpacing   float64 `yaml:"word_spacing"`

	// MaxWidth of the text column in characters
	MaxWidth int `yaml:"max_width"`
}

// DefaultTypography returns spacious settings suited to dyslexic readers
func DefaultTypography() Typography {
	return Typography{
		FontFamily:    "OpenDyslexic, Arial, Verdana, sans-serif",
		FontSize:      18,
		LineHeight:    1.8,
		LetterSpacing: 0.05,
		WordSpacing:   0.2,
		MaxWidth:      70,
	}
}

// Validate checks the typography settings
func (t Typography) Validate() error {
	var errs []error
	if strings.TrimSpace(t.FontFamily) == "" {
		errs = append(errs, errors.New("typography.font_family: must not be empty"))
	}
	if strings.ContainsAny(t.FontFamily, "{};<>") {
		errs = append(errs, fmt.Errorf("typography.font_family: invalid characters in %q", t.FontFamily))
	}
	if t.FontSize < 8 || t.FontSize > 72 {
		errs = append(errs, fmt.Errorf("typography.font_size: %g outside 8..72", t.FontSize))
	}
	if t.LineHeight < 1 || t.LineHeight > 4 {
		errs = append(errs, fmt.Errorf("typography.line_height: %g outside 1..4", t.LineHeight))
	}
	if t.LetterSpacing < 0 || t.LetterSpacing > 1 {
		errs = append(errs, fmt.Errorf("typography.letter_spacing: %g outside 0..1", t.LetterSpacing))
	}
	if t.WordSpacing < 0 || t.WordSpacing > 2 {
		errs = append(errs, fmt.Errorf("typography.word_spacing: %g outside 0..2", t.WordSpacing))
	}
	if t.MaxWidth < 20 || t.MaxWidth > 200 {
		errs = append(errs, fmt.Errorf("typography.max_width: %d outside 20..200", t.MaxWidth))
	}
	return errors.Join(errs...)
}

// Stylesheet renders the companion CSS for a palette. The palette must be
// normalized.
func Stylesheet(p Palette, t Typography) string {
	var buf strings.Builder

	buf.WriteString(buildBaseCSS(t))
	buf.WriteString(buildSyllableCSS(p))
	buf.WriteString(buildNumberCSS("num-pos", p.Positional))
	buf.WriteString(buildNumberCSS("num-multi", p.Multicolor))

	return buf.String()
}

func buildBaseCSS(t Typography) string {
	return fmt.Sprintf(`/* Base typography */
body {
  font-family: %s;
  font-size: %gpx;
  line-height: %g;
  letter-spacing: %gem;
  word-spacing: %gem;
  max-width: %dch;
  margin: 1.5rem auto;
  padding: 0 1rem;
  background: #faf9f4;
  color: #222222;
}
h1 { font-size: 2.2em; margin: 2.5rem 0 1.5rem; }
h2 { font-size: 1.6em; margin: 2.5rem 0 1rem; }
h3 { font-size: 1.3em; margin: 2rem 0 0.8rem; }
h4, h5, h6 { font-size: 1.1em; margin: 1.5rem 0 0.6rem; }
p { margin: 1rem 0; }
ul { margin: 1rem 0; padding-left: 1.4rem; }
li { margin: 0.5rem 0; }
.page-break {
  border-top: 2px solid #bbbbbb;
  margin: 3rem 0 1rem;
  padding-top: 0.5rem;
  text-align: center;
  color: #888888;
  font-size: 0.9em;
}
`, t.FontFamily, t.FontSize, t.LineHeight, t.LetterSpacing, t.WordSpacing, t.MaxWidth)
}

func buildSyllableCSS(p Palette) string {
	var buf strings.Builder

	buf.WriteString("\n/* Syllables and mute letters */\n")
	for i, c := range p.Syllables {
		buf.WriteString(fmt.Sprintf(".syl-%d { color: %s; }\n", i, c))
	}
	// .mute comes last so it wins over the syllable color
	buf.WriteString(fmt.Sprintf(".mute, .syl-0.mute, .syl-1.mute { color: %s; }\n", p.Mute))

	return buf.String()
}

func buildNumberCSS(prefix string, colors []string) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("\n/* Digits: %s */\n", prefix))
	for i, c := range colors {
		buf.WriteString(fmt.Sprintf(".%s-%d { color: %s; font-weight: 600; }\n", prefix, i, c))
	}

	return buf.String()
}

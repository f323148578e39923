package htmlbuild

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/tsawler/dyspositif/number"
)

// ErrInvalidColor is returned for a color that is neither hex nor a CSS name
var ErrInvalidColor = errors.New("invalid color")

// MinSyllableDistance is the smallest Lab distance allowed between the two
// syllable colors
const MinSyllableDistance = 0.1

// Palette holds the annotation colors. Entries are CSS hex colors or CSS
// color names.
type Palette struct {
	Syllables  []string `yaml:"syllables"`
	Mute       string   `yaml:"mute"`
	Positional []string `yaml:"positional"`
	Multicolor []string `yaml:"multicolor"`
}

// DefaultPalette returns the standard colors: crimson and dodger blue
// syllables, light grey mute letters, blue/red/green place values and a
// rainbow cycle for multicolor digits.
func DefaultPalette() Palette {
	return Palette{
		Syllables:  []string{hexOf(colornames.Crimson), hexOf(colornames.Dodgerblue)},
		Mute:       "#c8c8c8",
		Positional: []string{hexOf(colornames.Blue), hexOf(colornames.Red), hexOf(colornames.Lime)},
		Multicolor: []string{
			hexOf(colornames.Blue),
			hexOf(colornames.Red),
			hexOf(colornames.Lime),
			hexOf(colornames.Yellow),
			"#ff7f00",
			hexOf(colornames.Indigo),
			hexOf(colornames.Darkviolet),
		},
	}
}

func hexOf(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// ParseColor converts a hex color (#rgb or #rrggbb) or a CSS color name to
// lowercase #rrggbb
func ParseColor(s string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidColor)
	}

	if strings.HasPrefix(v, "#") {
		c, err := colorful.Hex(v)
		if err != nil || (len(v) != 4 && len(v) != 7) {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return c.Hex(), nil
	}

	if named, ok := colornames.Map[v]; ok {
		return hexOf(named), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// Normalize validates every color and returns the palette in canonical
// #rrggbb form. Errors name the offending field.
func (p Palette) Normalize() (Palette, error) {
	var out Palette
	var err error

	if out.Syllables, err = normalizeList("syllables", p.Syllables, 2); err != nil {
		return Palette{}, err
	}
	if d, _ := Distance(out.Syllables[0], out.Syllables[1]); d < MinSyllableDistance {
		return Palette{}, fmt.Errorf("palette.syllables: %s and %s are not distinguishable", out.Syllables[0], out.Syllables[1])
	}
	if out.Mute, err = ParseColor(p.Mute); err != nil {
		return Palette{}, fmt.Errorf("palette.mute: %w", err)
	}
	if out.Positional, err = normalizeList("positional", p.Positional, number.PositionalClasses); err != nil {
		return Palette{}, err
	}
	if out.Multicolor, err = normalizeList("multicolor", p.Multicolor, number.MulticolorClasses); err != nil {
		return Palette{}, err
	}
	return out, nil
}

// Validate reports the first invalid color
func (p Palette) Validate() error {
	_, err := p.Normalize()
	return err
}

func normalizeList(field string, colors []string, want int) ([]string, error) {
	if len(colors) != want {
		return nil, fmt.Errorf("palette.%s: expected %d colors, got %d", field, want, len(colors))
	}
	out := make([]string, len(colors))
	for i, c := range colors {
		hex, err := ParseColor(c)
		if err != nil {
			return nil, fmt.Errorf("palette.%s[%d]: %w", field, i, err)
		}
		out[i] = hex
	}
	return out, nil
}

// Distance returns the perceptual distance (CIE76 in Lab space) between
// two colors, or an error if either is invalid
func Distance(a, b string) (float64, error) {
	ha, err := ParseColor(a)
	if err != nil {
		return 0, err
	}
	hb, err := ParseColor(b)
	if err != nil {
		return 0, err
	}
	ca, _ := colorful.Hex(ha)
	cb, _ := colorful.Hex(hb)
	return ca.DistanceLab(cb), nil
}

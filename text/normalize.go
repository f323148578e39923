package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// Bullet is the canonical list bullet
	Bullet = '•'

	// CheckboxEmpty is the canonical empty checkbox
	CheckboxEmpty = '☐'

	// CheckboxChecked is the canonical checked checkbox
	CheckboxChecked = '☑'
)

// privateUseGlyphs maps symbol-font private-use code points (Wingdings,
// ZapfDingbats) to canonical checkboxes
var privateUseGlyphs = map[rune]rune{
	'\uf06f': CheckboxEmpty,
	'\uf0a8': CheckboxEmpty,
	'\uf0a3': CheckboxEmpty,
	'\uf0a4': CheckboxEmpty,
	'\uf0a5': CheckboxEmpty,
	'\uf0a6': CheckboxEmpty,
	'\uf0a7': CheckboxEmpty,
	'\uf0a9': CheckboxEmpty,
	'\uf0aa': CheckboxEmpty,
	'\uf0ab': CheckboxEmpty,
	'\uf0ac': CheckboxEmpty,
	'\uf0ad': CheckboxEmpty,
	'\uf0ae': CheckboxEmpty,
	'\uf0af': CheckboxEmpty,
	'\uf0b0': CheckboxEmpty,
	'\uf0b1': CheckboxEmpty,
	'\uf0b2': CheckboxEmpty,
	'\uf0b3': CheckboxEmpty,
	'\uf0b4': CheckboxEmpty,
	'\uf0a2': CheckboxChecked,
	'\uf0b5': CheckboxChecked,
}

var bulletVariants = map[rune]bool{
	'•': true, '◦': true, '∙': true, '‣': true, '▪': true,
	'▫': true, '■': true, '□': true, '○': true,
}

var emptyCheckboxVariants = map[rune]bool{
	'☐': true, '❏': true,
}

var checkedCheckboxVariants = map[rune]bool{
	'☒': true, '✔': true, '✓': true, '✅': true, '❎': true, '☑': true,
}

// NormalizeGlyph maps one rune to its canonical form
func NormalizeGlyph(r rune) rune {
	if mapped, ok := privateUseGlyphs[r]; ok {
		return mapped
	}
	switch {
	case bulletVariants[r]:
		return Bullet
	case emptyCheckboxVariants[r]:
		return CheckboxEmpty
	case checkedCheckboxVariants[r]:
		return CheckboxChecked
	}
	return r
}

// foldCompatibility reports whether r should be folded with NFKC.
// Covers mathematical alphanumerics (𝑓, 𝑥) and Latin ligatures (ﬁ, ﬂ).
func foldCompatibility(r rune) bool {
	return (r >= 0x1D400 && r <= 0x1D7FF) || (r >= 0xFB00 && r <= 0xFB06)
}

// Normalize cleans extracted text: NFC composition, glyph mapping,
// compatibility folding of math letters and ligatures, hyphenation removal
// and whitespace collapsing. The result is trimmed.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = norm.NFC.String(s)
	s = removeLineHyphenation(s)

	var sb strings.Builder
	sb.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) && !isNoBreakSpace(r) {
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		if foldCompatibility(r) {
			sb.WriteString(norm.NFKC.String(string(r)))
			continue
		}
		sb.WriteRune(NormalizeGlyph(r))
	}

	return sb.String()
}

// isNoBreakSpace reports whether r is a no-break space. These separate
// thousands in French numbers and are preserved.
func isNoBreakSpace(r rune) bool {
	return r == '\u00A0' || r == '\u202F'
}

// removeLineHyphenation drops a hyphen followed by a line break, joining
// the two halves of the word
func removeLineHyphenation(s string) string {
	if !strings.Contains(s, "-\n") && !strings.Contains(s, "- \n") {
		return s
	}
	var sb strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '-' {
			j := i + 1
			for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t') {
				j++
			}
			if j < len(runes) && runes[j] == '\n' {
				j++
				for j < len(runes) && unicode.IsSpace(runes[j]) {
					j++
				}
				i = j - 1
				continue
			}
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}

// JoinLines joins two lines of one paragraph. A trailing hyphen between two
// letters is treated as a line-break hyphenation and removed.
func JoinLines(prev, next string) string {
	prev = strings.TrimRight(prev, " ")
	next = strings.TrimLeft(next, " ")
	if prev == "" {
		return next
	}
	if next == "" {
		return prev
	}

	p := []rune(prev)
	n := []rune(next)
	if len(p) >= 2 && p[len(p)-1] == '-' && unicode.IsLetter(p[len(p)-2]) && unicode.IsLower(n[0]) {
		return string(p[:len(p)-1]) + next
	}
	return prev + " " + next
}

package text

import (
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/dyspositif/model"
)

// Tokenize splits s into word, number, punctuation and whitespace tokens.
//
// Words are runs of letters (combining marks included). Apostrophes and
// hyphens are punctuation, so "l'arbre" gives the words "l" and "arbre".
// Numbers match [+-]?\d+([.,\u00A0\u202F]\d+)*, and a single space also
// separates thousands ("1 234"). A sign only counts when it does not follow
// a letter or digit. Every other rune is one punctuation token. The
// concatenated token texts always equal s.
func Tokenize(s string) []model.Token {
	runes := []rune(s)
	tokens := make([]model.Token, 0, len(runes)/3+1)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			tokens = append(tokens, model.NewWhitespace(string(runes[i:j])))
			i = j

		case isWordRune(r):
			j := i + 1
			for j < len(runes) && isWordRune(runes[j]) {
				j++
			}
			tokens = append(tokens, model.NewWord(string(runes[i:j])))
			i = j

		case unicode.IsDigit(r) || isSignedNumberStart(runes, i):
			j := scanNumber(runes, i)
			tokens = append(tokens, model.NewNumber(string(runes[i:j])))
			i = j

		default:
			tokens = append(tokens, model.NewPunctuation(string(r)))
			i++
		}
	}

	return tokens
}

// ApplyStyles sets the style of every token whose first rune falls inside
// one of ranges. Ranges are rune offsets into the concatenated token texts
// and must be sorted by Start.
func ApplyStyles(tokens []model.Token, ranges []model.StyleRange) {
	if len(ranges) == 0 {
		return
	}

	pos, r := 0, 0
	for i := range tokens {
		for r < len(ranges) && ranges[r].End <= pos {
			r++
		}
		if r == len(ranges) {
			return
		}
		if pos >= ranges[r].Start {
			tokens[i].Style = ranges[r].Style
		}
		pos += utf8.RuneCountInString(tokens[i].Text)
	}
}

// isWordRune reports whether r can appear inside a word
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r)
}

// isSignedNumberStart reports whether runes[i] is a sign that starts a number
func isSignedNumberStart(runes []rune, i int) bool {
	if runes[i] != '+' && runes[i] != '-' {
		return false
	}
	if i+1 >= len(runes) || !unicode.IsDigit(runes[i+1]) {
		return false
	}
	if i > 0 && (isWordRune(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
		return false
	}
	return true
}

// scanNumber returns the end index of the number starting at i. An ASCII
// space joins digit groups only in the integer part, after a group of at
// most three digits and before a group of exactly three ("1 234 567").
func scanNumber(runes []rune, i int) int {
	j := i
	if runes[j] == '+' || runes[j] == '-' {
		j++
	}
	j, group := scanDigits(runes, j)

	integer := true
	for j+1 < len(runes) && unicode.IsDigit(runes[j+1]) {
		switch sep := runes[j]; {
		case sep == ' ':
			if !integer || group > 3 || !isThousandsGroup(runes, j+1) {
				return j
			}
		case isNumberSeparator(sep):
			if !isNoBreakSpace(sep) {
				integer = false
			}
		default:
			return j
		}
		j, group = scanDigits(runes, j+1)
	}
	return j
}

// scanDigits returns the end of the digit run starting at i and its length
func scanDigits(runes []rune, i int) (int, int) {
	j := i
	for j < len(runes) && unicode.IsDigit(runes[j]) {
		j++
	}
	return j, j - i
}

// isThousandsGroup reports whether exactly three digits start at i
func isThousandsGroup(runes []rune, i int) bool {
	end, n := scanDigits(runes, i)
	return n == 3 && (end == len(runes) || !unicode.IsDigit(runes[end]))
}

// isNumberSeparator reports whether r may separate digit groups in a number
func isNumberSeparator(r rune) bool {
	return r == '.' || r == ',' || isNoBreakSpace(r)
}

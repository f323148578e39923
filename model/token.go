package model

import "sort"

// TokenKind identifies the lexical class of a token
type TokenKind int

const (
	TokenWord TokenKind = iota
	TokenNumber
	TokenPunctuation
	TokenWhitespace
)

// String returns a string representation of the token kind
func (k TokenKind) String() string {
	switch k {
	case TokenWord:
		return "word"
	case TokenNumber:
		return "number"
	case TokenPunctuation:
		return "punctuation"
	case TokenWhitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// Syllable is one span of a segmented word
type Syllable struct {
	Text string

	// Start is the rune offset of the syllable within its word
	Start int

	// Silent marks a trailing span made only of mute letters. It keeps the
	// color parity of the syllable before it.
	Silent bool
}

// MuteMask is a sorted set of rune indices marked silent within a word
type MuteMask []int

// NewMuteMask builds a mask from indices, sorting and removing duplicates
func NewMuteMask(indices ...int) MuteMask {
	if len(indices) == 0 {
		return nil
	}
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)

	mask := sorted[:1]
	for _, idx := range sorted[1:] {
		if idx != mask[len(mask)-1] {
			mask = append(mask, idx)
		}
	}
	return MuteMask(mask)
}

// Has reports whether rune index i is mute
func (m MuteMask) Has(i int) bool {
	n := sort.SearchInts(m, i)
	return n < len(m) && m[n] == i
}

// NumberPolicy selects how the digits of a number are colored
type NumberPolicy int

const (
	NumberPolicyNone NumberPolicy = iota
	NumberPolicyPositional
	NumberPolicyMulticolor
)

// String returns a string representation of the policy
func (p NumberPolicy) String() string {
	switch p {
	case NumberPolicyPositional:
		return "positional"
	case NumberPolicyMulticolor:
		return "multicolor"
	default:
		return "none"
	}
}

// Uncolored marks a rune of a number that receives no color class
const Uncolored = -1

// DigitColors maps each rune of a number token to a color class index.
// Signs and separators hold Uncolored.
type DigitColors struct {
	Policy  NumberPolicy
	Classes []int
}

// Token is one lexical unit of a block. Only the annotation fields that
// match Kind are ever set.
type Token struct {
	Kind  TokenKind
	Text  string
	Style Style

	// Word annotations
	Syllables []Syllable
	Mute      MuteMask

	// Number annotation
	Digits *DigitColors
}

// NewWord creates a word token
func NewWord(text string) Token {
	return Token{Kind: TokenWord, Text: text}
}

// NewNumber creates a number token
func NewNumber(text string) Token {
	return Token{Kind: TokenNumber, Text: text}
}

// NewPunctuation creates a punctuation token
func NewPunctuation(text string) Token {
	return Token{Kind: TokenPunctuation, Text: text}
}

// NewWhitespace creates a whitespace token
func NewWhitespace(text string) Token {
	return Token{Kind: TokenWhitespace, Text: text}
}

// IsAnnotated returns true if any annotation is attached
func (t *Token) IsAnnotated() bool {
	return len(t.Syllables) > 0 || len(t.Mute) > 0 || t.Digits != nil
}

package syllable

import "unicode"

// frenchVowels lists the vowels of the French alphabet, lowercase
var frenchVowels = map[rune]bool{
	'a': true, 'e': true, 'i': true, 'o': true, 'u': true, 'y': true,
	'à': true, 'â': true, 'ä': true,
	'é': true, 'è': true, 'ê': true, 'ë': true,
	'î': true, 'ï': true,
	'ô': true, 'ö': true,
	'ù': true, 'û': true, 'ü': true,
	'ÿ': true, 'œ': true, 'æ': true,
}

// frenchConsonants lists the consonants of the French alphabet, lowercase
var frenchConsonants = map[rune]bool{
	'b': true, 'c': true, 'd': true, 'f': true, 'g': true, 'h': true,
	'j': true, 'k': true, 'l': true, 'm': true, 'n': true, 'p': true,
	'q': true, 'r': true, 's': true, 't': true, 'v': true, 'w': true,
	'x': true, 'z': true, 'ç': true,
}

// digraphs are consonant pairs read as one sound
var digraphs = map[string]bool{
	"ch": true,
	"ph": true,
	"th": true,
	"gn": true,
	"rh": true,
}

// obstruents may open a syllable when followed by a liquid (l, r)
var obstruents = map[string]bool{
	"b": true, "c": true, "d": true, "f": true, "g": true, "k": true,
	"p": true, "t": true, "v": true,
	"ch": true, "ph": true, "th": true,
}

// hiatusVowels start a new nucleus when they follow another vowel
var hiatusVowels = map[rune]bool{
	'é': true, 'è': true, 'ê': true, 'ë': true, 'ï': true,
}

func isVowel(r rune) bool {
	return frenchVowels[r]
}

func isFrenchLetter(r rune) bool {
	return frenchVowels[r] || frenchConsonants[r]
}

// isMark reports whether r is a combining mark that belongs to the
// preceding letter
func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func isLiquid(s string) bool {
	return s == "l" || s == "r"
}

// lowerRunes lowercases rune by rune so indices stay aligned with the
// original word
func lowerRunes(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}

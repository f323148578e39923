package mute

import (
	"unicode"

	"github.com/tsawler/dyspositif/nlp"
)

// negations mark a preceding ne, written in full or elided
var negations = set("ne", "n", "n'", "n’")

func at(sentence []Word, i int) (Word, bool) {
	if i < 0 || i >= len(sentence) {
		return Word{}, false
	}
	return sentence[i], true
}

func hasPOS(w Word, tags ...nlp.POS) bool {
	for _, t := range tags {
		if w.POS == t {
			return true
		}
	}
	return false
}

func isNumber(w Word) bool {
	if w.POS == nlp.Numeral {
		return true
	}
	if w.Text == "" {
		return false
	}
	for _, r := range w.Text {
		if !unicode.IsDigit(r) && r != ',' && r != '.' {
			return false
		}
	}
	return true
}

// isPronoun reports whether tous at sentence[i] stands as a pronoun, in
// which case its s is pronounced
func isPronoun(sentence []Word, i int) bool {
	w := sentence[i]
	if w.POS == nlp.Pronoun {
		return true
	}

	// Bienvenue à tous
	if prev, ok := at(sentence, i-1); ok && (prev.POS == nlp.Adposition || lowerText(prev) == "à") {
		return true
	}

	next, ok := at(sentence, i+1)
	if !ok {
		// Ils sont tous.
		return true
	}

	// Tous sont venus, ils sont tous venus, ils sont tous heureux
	if hasPOS(next, nlp.Verb, nlp.Auxiliary, nlp.Adjective) {
		return true
	}

	// Ils sont tous là, ils partent tous ensemble, ils sont tous à l'école
	prev, ok := at(sentence, i-1)
	return ok && hasPOS(prev, nlp.Verb, nlp.Auxiliary) &&
		hasPOS(next, nlp.Adverb, nlp.Adposition, nlp.Conjunction)
}

// plusIsMute reports whether the s of plus at sentence[i] is silent
func plusIsMute(sentence []Word, i int) bool {
	prev, hasPrev := at(sentence, i-1)
	next, hasNext := at(sentence, i+1)

	if hasPrev && hasNext {
		// sept plus huit
		if isNumber(prev) && isNumber(next) {
			return false
		}
		// toi plus moi, pain plus beurre
		if hasPOS(prev, nlp.Noun, nlp.ProperNoun, nlp.Pronoun) &&
			hasPOS(next, nlp.Noun, nlp.ProperNoun, nlp.Pronoun, nlp.Adjective) {
			return false
		}
	}

	// de plus en plus
	if next2, ok := at(sentence, i+2); ok && hasPrev && hasNext {
		if lowerText(prev) == "de" && lowerText(next) == "en" && lowerText(next2) == "plus" {
			return false
		}
	}

	// en plus
	if hasPrev && lowerText(prev) == "en" {
		return false
	}

	for offset := 1; offset <= 3; offset++ {
		w, ok := at(sentence, i-offset)
		if !ok {
			break
		}
		if negations[lowerText(w)] {
			return true
		}
	}

	if hasNext {
		if hasPOS(next, nlp.Adjective, nlp.Adverb) || isNumber(next) {
			return true
		}
		// plus de 10 km
		if hasPOS(next, nlp.Determiner, nlp.Adposition) {
			if next2, ok := at(sentence, i+2); ok && (hasPOS(next2, nlp.Noun, nlp.Numeral) || isNumber(next2)) {
				return true
			}
		}
	}

	// another plus in the sentence marks a correlative (plus ... plus)
	for j, w := range sentence {
		if j != i && lowerText(w) == "plus" {
			return true
		}
	}
	return false
}

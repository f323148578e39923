package mute

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/dyspositif/model"
	"github.com/tsawler/dyspositif/nlp"
)

// Word is a word with its linguistic features. POS and Lemma are empty when
// no analysis is available.
type Word struct {
	Text  string
	Lemma string
	POS   nlp.POS
}

// FromAnalysis converts a model analysis into a Word
func FromAnalysis(a nlp.Analysis) Word {
	return Word{Text: a.Text, Lemma: a.Lemma, POS: a.POS}
}

// Detector applies the mute-letter rules. It holds no state and is safe for
// concurrent use.
type Detector struct{}

// New creates a detector
func New() *Detector {
	return &Detector{}
}

// DetectWord returns the mute letters of a word taken out of context
func (d *Detector) DetectWord(w Word) model.MuteMask {
	return d.Detect([]Word{w}, 0)
}

// Detect returns the mute letters of sentence[i]. sentence holds the words
// and numbers of one sentence, without punctuation, and gives the context
// for tous and plus.
func (d *Detector) Detect(sentence []Word, i int) model.MuteMask {
	if i < 0 || i >= len(sentence) {
		return nil
	}
	w := sentence[i]
	if w.Text == "" {
		return nil
	}

	lr := lowerRunes(w.Text)
	lw := string(lr)
	n := len(lr)

	if suffix, ok := specialWords[lw]; ok {
		if !strings.HasSuffix(lw, suffix) {
			return nil
		}
		return lastRunes(n, len([]rune(suffix)))
	}

	var positions []int
	if lr[0] == 'h' && !initialH[lw] {
		positions = append(positions, 0)
	}

	if strings.HasSuffix(lw, "ent") {
		aient := strings.HasSuffix(lw, "aient") && lw != "aient"
		switch {
		case aient:
			return model.NewMuteMask(append(positions, lastRunes(n, 3)...)...)
		case w.POS == nlp.Verb:
			return model.NewMuteMask(append(positions, lastRunes(n, 2)...)...)
		}
	}

	analyzed := w.POS != ""

	if lw == "tous" && analyzed {
		if !isPronoun(sentence, i) {
			positions = append(positions, n-1)
		}
		return model.NewMuteMask(positions...)
	}

	if lw == "plus" {
		if plusIsMute(sentence, i) {
			positions = append(positions, n-1)
		}
		return model.NewMuteMask(positions...)
	}

	if strings.HasSuffix(lw, "s") && n > 1 {
		if !finalS[lw] && !lemmaEndsInS(w.Lemma) {
			positions = append(positions, n-1)
			positions = finalLetter(lr[:n-1], positions)
		}
		return model.NewMuteMask(positions...)
	}

	return model.NewMuteMask(finalLetter(lr, positions)...)
}

// finalLetter applies the final consonant and final e rules to base, the
// word or its stem without a plural s
func finalLetter(base []rune, positions []int) []int {
	if len(base) == 0 {
		return positions
	}
	b := string(base)
	last := len(base) - 1

	mute := false
	switch base[last] {
	case 'd':
		mute = !finalD[b]
	case 'b':
		mute = !finalB[b]
	case 'e':
		if len(base) >= 2 {
			switch base[last-1] {
			case 'i', 'é', 'u':
				mute = !strings.HasSuffix(b, "gue") && !strings.HasSuffix(b, "que")
			}
		}
	case 'g':
		mute = !finalG[b]
	case 'p':
		mute = !finalP[b]
	case 't':
		mute = !finalT[b] && !strings.HasSuffix(b, "et")
	case 'x':
		mute = !finalX[b]
	}

	if mute {
		positions = append(positions, last)
	}
	return positions
}

// lemmaEndsInS catches invariant nouns (souris, bras) whose s belongs to
// the word itself
func lemmaEndsInS(lemma string) bool {
	if lemma == "" {
		return false
	}
	return strings.HasSuffix(string(lowerRunes(lemma)), "s")
}

// lastRunes returns the indices of the last k runes of an n-rune word
func lastRunes(n, k int) []int {
	if k > n {
		k = n
	}
	out := make([]int, 0, k)
	for i := n - k; i < n; i++ {
		out = append(out, i)
	}
	return out
}

// lowerRunes lowercases with French rules. When that changes the number of
// runes, it lowercases rune by rune so indices stay aligned.
func lowerRunes(s string) []rune {
	orig := []rune(s)
	lower := []rune(cases.Lower(language.French).String(s))
	if len(lower) == len(orig) {
		return lower
	}
	for i, r := range orig {
		orig[i] = unicode.ToLower(r)
	}
	return orig
}

// lowerText returns the lowercase text of a word
func lowerText(w Word) string {
	return string(lowerRunes(w.Text))
}

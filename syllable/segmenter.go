package syllable

import (
	"github.com/tsawler/dyspositif/model"
)

// Result is the segmentation of one word
type Result struct {
	Syllables []model.Syllable

	// Fallback is set when the word contains letters outside the French
	// alphabet and was cut by vowel/consonant alternation only
	Fallback bool
}

// Texts returns the syllable strings in order
func (r Result) Texts() []string {
	out := make([]string, len(r.Syllables))
	for i, s := range r.Syllables {
		out[i] = s.Text
	}
	return out
}

// Segmenter splits words into syllables. It holds no state and is safe for
// concurrent use.
type Segmenter struct{}

// New creates a segmenter
func New() *Segmenter {
	return &Segmenter{}
}

// unit is a run of runes treated as one letter, such as "ch" or "qu"
type unit struct {
	start, end int
	text       string
	vowel      bool
}

// Segment splits word into syllables. mute holds the rune indices of the
// word's silent letters and may be nil; a trailing silent run without a
// vowel becomes its own Silent syllable.
func (s *Segmenter) Segment(word string, mute model.MuteMask) Result {
	runes := []rune(word)
	if len(runes) == 0 {
		return Result{}
	}

	lower := lowerRunes(runes)
	fallback := !frenchOnly(lower)

	var units []unit
	if fallback {
		units = singleUnits(lower)
	} else {
		units = frenchUnits(lower)
	}

	var cuts []int
	if len(runes) > 1 {
		nuclei := findNuclei(units, lower, !fallback)
		cuts = boundaries(units, nuclei, !fallback)
	}

	cuts = splitSilentTail(cuts, lower, mute)

	return Result{
		Syllables: buildSyllables(runes, cuts, mute),
		Fallback:  fallback,
	}
}

// Split is a convenience wrapper returning syllable strings only
func (s *Segmenter) Split(word string) []string {
	return s.Segment(word, nil).Texts()
}

func frenchOnly(lower []rune) bool {
	for _, r := range lower {
		if !isFrenchLetter(r) && !isMark(r) {
			return false
		}
	}
	return true
}

// frenchUnits groups runes into letter units, keeping digraphs whole
func frenchUnits(lower []rune) []unit {
	n := len(lower)
	units := make([]unit, 0, n)

	for i := 0; i < n; {
		size := 1
		if i+1 < n {
			pair := string(lower[i : i+2])
			switch {
			case digraphs[pair]:
				size = 2
			case pair == "qu":
				size = 2
			case pair == "gu" && i+2 < n && softensGu(lower[i+2]):
				size = 2
			}
		}

		end := i + size
		for end < n && isMark(lower[end]) {
			end++
		}

		units = append(units, unit{
			start: i,
			end:   end,
			text:  string(lower[i:end]),
			vowel: size == 1 && isVowel(lower[i]),
		})
		i = end
	}
	return units
}

// softensGu reports whether the vowel after "gu" makes the u silent
func softensGu(r rune) bool {
	switch r {
	case 'e', 'i', 'y', 'é', 'è', 'ê':
		return true
	}
	return false
}

// singleUnits treats every rune as its own unit
func singleUnits(lower []rune) []unit {
	units := make([]unit, 0, len(lower))
	for i := 0; i < len(lower); i++ {
		end := i + 1
		for end < len(lower) && isMark(lower[end]) {
			end++
		}
		units = append(units, unit{
			start: i,
			end:   end,
			text:  string(lower[i:end]),
			vowel: isVowel(lower[i]),
		})
		i = end - 1
	}
	return units
}

// nucleus spans unit indices [first, last]
type nucleus struct {
	first, last int
}

// findNuclei groups consecutive vowel units into nuclei. With hiatus set,
// French vowel runs are split before y+vowel, before an accented vowel that
// follows another vowel, and after é unless an e follows.
func findNuclei(units []unit, lower []rune, hiatus bool) []nucleus {
	var nuclei []nucleus

	for i := 0; i < len(units); i++ {
		if !units[i].vowel {
			continue
		}

		first := i
		for i+1 < len(units) && units[i+1].vowel {
			if hiatus && breaksBefore(units, lower, i+1) {
				break
			}
			i++
		}
		nuclei = append(nuclei, nucleus{first: first, last: i})
	}
	return nuclei
}

// breaksBefore reports whether vowel unit k starts a new nucleus
func breaksBefore(units []unit, lower []rune, k int) bool {
	prev := lower[units[k-1].start]
	cur := lower[units[k].start]

	if cur == 'y' && k+1 < len(units) && units[k+1].vowel {
		return true
	}
	if hiatusVowels[cur] {
		return true
	}
	if prev == 'é' && cur != 'e' {
		return true
	}
	return false
}

// boundaries returns the rune offsets where a new syllable starts
func boundaries(units []unit, nuclei []nucleus, onsets bool) []int {
	var cuts []int

	for i := 1; i < len(nuclei); i++ {
		gapStart := nuclei[i-1].last + 1
		gapEnd := nuclei[i].first
		consonants := units[gapStart:gapEnd]

		var split int
		switch {
		case len(consonants) == 0:
			split = gapEnd
		case len(consonants) == 1:
			split = gapStart
		case onsets && isOnset(consonants[len(consonants)-2], consonants[len(consonants)-1]):
			split = gapEnd - 2
		default:
			split = gapEnd - 1
		}

		cuts = append(cuts, units[split].start)
	}
	return cuts
}

// isOnset reports whether two consonant units can open a syllable together
func isOnset(a, b unit) bool {
	return obstruents[a.text] && isLiquid(b.text)
}

// splitSilentTail adds a cut before a trailing run of mute letters that
// holds no vowel, so it renders as its own silent syllable
func splitSilentTail(cuts []int, lower []rune, mute model.MuteMask) []int {
	if len(mute) == 0 {
		return cuts
	}

	n := len(lower)
	tail := n
	for tail > 0 && mute.Has(tail-1) {
		tail--
	}
	if tail == n || tail == 0 {
		return cuts
	}

	for _, r := range lower[tail:] {
		if isVowel(r) {
			return cuts
		}
	}

	// The remaining syllable must keep its vowel
	lastStart := 0
	if len(cuts) > 0 {
		lastStart = cuts[len(cuts)-1]
	}
	if tail <= lastStart {
		return cuts
	}
	hasVowel := false
	for _, r := range lower[lastStart:tail] {
		if isVowel(r) {
			hasVowel = true
			break
		}
	}
	if !hasVowel {
		return cuts
	}

	return append(cuts, tail)
}

// buildSyllables cuts runes at the given offsets
func buildSyllables(runes []rune, cuts []int, mute model.MuteMask) []model.Syllable {
	syllables := make([]model.Syllable, 0, len(cuts)+1)

	start := 0
	for _, cut := range cuts {
		if cut <= start || cut >= len(runes) {
			continue
		}
		syllables = append(syllables, model.Syllable{Text: string(runes[start:cut]), Start: start})
		start = cut
	}
	syllables = append(syllables, model.Syllable{Text: string(runes[start:]), Start: start})

	if len(syllables) > 1 && allMute(mute, start, len(runes)) {
		syllables[len(syllables)-1].Silent = true
	}
	return syllables
}

func allMute(mute model.MuteMask, from, to int) bool {
	if len(mute) == 0 {
		return false
	}
	for i := from; i < to; i++ {
		if !mute.Has(i) {
			return false
		}
	}
	return true
}

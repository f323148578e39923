package nlp

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/dyspositif/internal/yamlutil"
)

//go:embed data/lexicon.yaml
var lexiconData []byte

// entry is one lexicon record
type entry struct {
	Lemma string `yaml:"lemma"`
	POS   POS    `yaml:"pos"`
}

// lexiconFile mirrors data/lexicon.yaml
type lexiconFile struct {
	Closed    map[POS][]string `yaml:"closed"`
	Invariant []string         `yaml:"invariant"`
	Forms     map[string]entry `yaml:"forms"`
}

// subjectPronouns precede a conjugated verb
var subjectPronouns = map[string]bool{
	"je": true, "j": true, "tu": true, "il": true, "elle": true, "on": true,
	"nous": true, "vous": true, "ils": true, "elles": true, "qui": true,
}

// adjectiveSuffixes mark open-class adjectives
var adjectiveSuffixes = []string{
	"euse", "euses", "eux", "ique", "iques", "able", "ables", "ible", "ibles",
	"if", "ifs", "ive", "ives", "elle", "elles",
}

// LexiconModel tags French words from an embedded lexicon and suffix rules.
// It is deterministic and safe for concurrent use.
type LexiconModel struct {
	words map[string]entry
}

// LoadLexicon builds the built-in lexicon model. Its signature matches the
// loader expected by NewHolder.
func LoadLexicon() (Model, error) {
	return NewLexiconModel(lexiconData)
}

// NewLexiconModel parses a lexicon document
func NewLexiconModel(data []byte) (*LexiconModel, error) {
	var file lexiconFile
	if err := yamlutil.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	m := &LexiconModel{words: make(map[string]entry)}

	for _, w := range file.Invariant {
		m.words[w] = entry{Lemma: w, POS: Noun}
	}
	for pos, words := range file.Closed {
		if !pos.IsValid() {
			return nil, fmt.Errorf("parse lexicon: unknown tag %q", pos)
		}
		for _, w := range words {
			m.words[w] = entry{Lemma: w, POS: pos}
		}
	}
	for w, e := range file.Forms {
		if !e.POS.IsValid() {
			return nil, fmt.Errorf("parse lexicon: %s: unknown tag %q", w, e.POS)
		}
		if e.Lemma == "" {
			e.Lemma = w
		}
		m.words[w] = e
	}

	return m, nil
}

// Size returns the number of lexicon entries
func (m *LexiconModel) Size() int {
	return len(m.words)
}

// Analyze tags each word, using the previous word as context
func (m *LexiconModel) Analyze(ctx context.Context, words []string) ([]Analysis, error) {
	lower := cases.Lower(language.French)

	out := make([]Analysis, len(words))
	prev := Analysis{}
	for i, w := range words {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		lw := lower.String(w)
		a := m.analyzeWord(w, lw, prev, i == 0)
		out[i] = a
		prev = Analysis{Text: lw, Lemma: a.Lemma, POS: a.POS}
	}
	return out, nil
}

// analyzeWord tags a single word. w is the original text, lw its lowercase
// form; prev is the analysis of the preceding word.
func (m *LexiconModel) analyzeWord(w, lw string, prev Analysis, first bool) Analysis {
	if e, ok := m.words[lw]; ok {
		return Analysis{Text: w, Lemma: e.Lemma, POS: e.POS}
	}

	if isNumeric(lw) {
		return Analysis{Text: w, Lemma: lw, POS: Numeral}
	}

	r, _ := utf8.DecodeRuneInString(w)
	if unicode.IsUpper(r) && !first {
		return Analysis{Text: w, Lemma: singular(lw), POS: ProperNoun}
	}

	afterDeterminer := prev.POS == Determiner || prev.POS == Adposition
	afterSubject := subjectPronouns[prev.Text]

	switch {
	case strings.HasSuffix(lw, "ement") && len(lw) > 6 && !afterDeterminer:
		return Analysis{Text: w, Lemma: lw, POS: Adverb}

	case strings.HasSuffix(lw, "aient") && len(lw) > 5:
		return Analysis{Text: w, Lemma: verbLemma(lw, "aient"), POS: Verb}

	case strings.HasSuffix(lw, "ent") && !strings.HasSuffix(lw, "ment") && len(lw) > 4 && !afterDeterminer:
		return Analysis{Text: w, Lemma: verbLemma(lw, "ent"), POS: Verb}

	case strings.HasSuffix(lw, "ais") && afterSubject, strings.HasSuffix(lw, "ait") && afterSubject:
		return Analysis{Text: w, Lemma: verbLemma(lw, lw[len(lw)-3:]), POS: Verb}

	case strings.HasSuffix(lw, "ons") && afterSubject:
		return Analysis{Text: w, Lemma: verbLemma(lw, "ons"), POS: Verb}

	case strings.HasSuffix(lw, "ez") && len(lw) > 3 && !afterDeterminer:
		return Analysis{Text: w, Lemma: verbLemma(lw, "ez"), POS: Verb}

	case strings.HasSuffix(lw, "es") && afterSubject:
		return Analysis{Text: w, Lemma: verbLemma(lw, "es"), POS: Verb}

	case strings.HasSuffix(lw, "e") && afterSubject:
		return Analysis{Text: w, Lemma: verbLemma(lw, "e"), POS: Verb}

	case (strings.HasSuffix(lw, "er") || strings.HasSuffix(lw, "ir")) && len(lw) > 3 && !afterDeterminer:
		return Analysis{Text: w, Lemma: lw, POS: Verb}

	case isParticiple(lw):
		if prev.POS == Auxiliary {
			return Analysis{Text: w, Lemma: participleLemma(lw), POS: Verb}
		}
		return Analysis{Text: w, Lemma: strings.TrimRight(lw, "es"), POS: Adjective}
	}

	for _, suffix := range adjectiveSuffixes {
		if strings.HasSuffix(lw, suffix) && len(lw) > len(suffix)+2 {
			return Analysis{Text: w, Lemma: singular(lw), POS: Adjective}
		}
	}

	return Analysis{Text: w, Lemma: singular(lw), POS: Noun}
}

// verbLemma rebuilds a first-group infinitive from a conjugated form
func verbLemma(lw, ending string) string {
	stem := strings.TrimSuffix(lw, ending)
	// mangeons, mangeaient: the e only softens the g
	if strings.HasSuffix(stem, "ge") && (ending == "ons" || ending == "aient" || ending == "ais" || ending == "ait") {
		stem = strings.TrimSuffix(stem, "e")
	}
	if stem == "" {
		return lw
	}
	return stem + "er"
}

func isParticiple(lw string) bool {
	for _, suffix := range []string{"é", "ée", "és", "ées"} {
		if strings.HasSuffix(lw, suffix) && utf8.RuneCountInString(lw) > len([]rune(suffix))+1 {
			return true
		}
	}
	return false
}

func participleLemma(lw string) string {
	stem := strings.TrimRight(lw, "es")
	stem = strings.TrimSuffix(stem, "é")
	return stem + "er"
}

// singular strips a regular plural ending
func singular(lw string) string {
	switch {
	case strings.HasSuffix(lw, "eaux"):
		return strings.TrimSuffix(lw, "x")
	case strings.HasSuffix(lw, "aux") && len(lw) > 4:
		return strings.TrimSuffix(lw, "aux") + "al"
	case strings.HasSuffix(lw, "s") && len(lw) > 2 && !strings.HasSuffix(lw, "ss"):
		return strings.TrimSuffix(lw, "s")
	}
	return lw
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

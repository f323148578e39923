package mute

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/dyspositif/model"
	"github.com/tsawler/dyspositif/nlp"
)

func mask(indices ...int) model.MuteMask {
	return model.NewMuteMask(indices...)
}

func TestDetectWord(t *testing.T) {
	tests := []struct {
		name string
		word Word
		want model.MuteMask
	}{
		{"plural noun", Word{"chats", "chat", nlp.Noun}, mask(3, 4)},
		{"determiner", Word{"Les", "le", nlp.Determiner}, nil},
		{"invariant noun", Word{"souris", "souris", nlp.Noun}, nil},
		{"invariant bras", Word{"bras", "bras", nlp.Noun}, nil},
		{"verb ent", Word{"mangent", "manger", nlp.Verb}, mask(5, 6)},
		{"noun ent", Word{"moment", "moment", nlp.Noun}, mask(5)},
		{"aient verb", Word{"chantaient", "chanter", nlp.Verb}, mask(7, 8, 9)},
		{"aient without tag", Word{Text: "chantaient"}, mask(7, 8, 9)},
		{"verb es", Word{"chantes", "chanter", nlp.Verb}, mask(6)},
		{"final e after i", Word{"amie", "amie", nlp.Noun}, mask(3)},
		{"final es after i", Word{"amies", "amie", nlp.Noun}, mask(3, 4)},
		{"final gue", Word{"langue", "langue", nlp.Noun}, nil},
		{"final que", Word{"banque", "banque", nlp.Noun}, nil},
		{"final d", Word{"chaud", "chaud", nlp.Adjective}, mask(4)},
		{"exception d", Word{"sud", "sud", nlp.Noun}, nil},
		{"final t", Word{"petit", "petit", nlp.Adjective}, mask(4)},
		{"final et", Word{"jouet", "jouet", nlp.Noun}, nil},
		{"exception t", Word{"sept", "sept", nlp.Numeral}, nil},
		{"final x", Word{"prix", "prix", nlp.Noun}, mask(3)},
		{"exception x", Word{"six", "six", nlp.Numeral}, nil},
		{"final p", Word{"loup", "loup", nlp.Noun}, mask(3)},
		{"exception p", Word{"stop", "stop", nlp.Noun}, nil},
		{"final g", Word{"long", "long", nlp.Adjective}, mask(3)},
		{"exception g", Word{"parking", "parking", nlp.Noun}, nil},
		{"final b", Word{"plomb", "plomb", nlp.Noun}, mask(4)},
		{"exception b", Word{"club", "club", nlp.Noun}, nil},
		{"plural with final d", Word{"pieds", "pied", nlp.Noun}, mask(4)},
		{"plural with final t", Word{"chants", "chant", nlp.Noun}, mask(4, 5)},
		{"exception s", Word{"virus", "virus", nlp.Noun}, nil},
		{"initial h", Word{"homme", "homme", nlp.Noun}, mask(0)},
		{"initial h and plural", Word{"habits", "habit", nlp.Noun}, mask(0, 4, 5)},
		{"initial h exception", Word{"hui", "hui", nlp.Adverb}, nil},
		{"uppercase", Word{"CHATS", "chat", nlp.Noun}, mask(3, 4)},
		{"single s", Word{"s", "s", nlp.Pronoun}, nil},
		{"empty", Word{}, nil},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.DetectWord(tt.word)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectWord(%q) = %v, want %v", tt.word.Text, got, tt.want)
			}
		})
	}
}

func TestDetectWord_SpecialWords(t *testing.T) {
	tests := []struct {
		word string
		want model.MuteMask
	}{
		{"croc", mask(3)},
		{"crocs", mask(3, 4)},
		{"clef", mask(3)},
		{"clefs", mask(3, 4)},
		{"cerf", mask(3)},
		{"Cerfs", mask(3, 4)},
		{"bœufs", mask(3, 4)},
		{"oeufs", mask(3, 4)},
		{"bœuf", nil},
		{"œuf", nil},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got := d.DetectWord(Word{Text: tt.word, Lemma: tt.word, POS: nlp.Noun})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectWord(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

// sentence builds context words from "text/POS" pairs
func sentence(pairs ...string) []Word {
	out := make([]Word, len(pairs))
	for i, p := range pairs {
		text, pos, _ := strings.Cut(p, "/")
		out[i] = Word{Text: text, Lemma: strings.ToLower(text), POS: nlp.POS(pos)}
	}
	return out
}

func TestDetect_Tous(t *testing.T) {
	tests := []struct {
		name     string
		sentence []Word
		index    int
		mute     bool
	}{
		{"before determiner", sentence("tous/ADJ", "les/DET", "jours/NOUN"), 0, true},
		{"after preposition", sentence("Bienvenue/NOUN", "à/ADP", "tous/ADJ"), 2, false},
		{"sentence start before verb", sentence("Tous/ADJ", "sont/AUX", "venus/VERB"), 0, false},
		{"pronoun tag", sentence("ils/PRON", "tous/PRON", "les/DET"), 1, false},
		{"before participle", sentence("ils/PRON", "sont/AUX", "tous/ADJ", "venus/VERB"), 2, false},
		{"before adjective", sentence("ils/PRON", "sont/AUX", "tous/ADJ", "heureux/ADJ"), 2, false},
		{"sentence end", sentence("ils/PRON", "sont/AUX", "tous/ADJ"), 2, false},
		{"determiner in middle", sentence("je/PRON", "vois/VERB", "tous/ADJ", "les/DET", "enfants/NOUN"), 2, true},
		{"adverb after copula", sentence("Ils/PRON", "sont/AUX", "tous/ADJ", "là/ADV"), 2, false},
		{"adverb after verb", sentence("ils/PRON", "partent/VERB", "tous/ADJ", "ensemble/ADV"), 2, false},
		{"preposition after copula", sentence("ils/PRON", "sont/AUX", "tous/ADJ", "à/ADP", "l/DET", "école/NOUN"), 2, false},
		{"adverb without verb", sentence("pour/ADP", "tous/ADJ", "ici/ADV"), 1, false},
		{"verb then determiner", sentence("il/PRON", "mange/VERB", "tous/ADJ", "les/DET", "jours/NOUN"), 2, true},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.sentence, tt.index)
			want := model.MuteMask(nil)
			if tt.mute {
				want = mask(3)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Detect(tous) = %v, want %v", got, want)
			}
		})
	}
}

func TestDetect_TousWithoutAnalysis(t *testing.T) {
	got := New().DetectWord(Word{Text: "tous"})
	if !reflect.DeepEqual(got, mask(3)) {
		t.Errorf("DetectWord(tous) = %v, want [3]", got)
	}
}

func TestDetect_Plus(t *testing.T) {
	tests := []struct {
		name     string
		sentence []Word
		index    int
		mute     bool
	}{
		{"negation", sentence("je/PRON", "ne/PART", "mange/VERB", "plus/ADV"), 3, true},
		{"elided negation", sentence("il/PRON", "n/PART", "a/AUX", "plus/ADV", "faim/NOUN"), 3, true},
		{"before adjective", sentence("il/PRON", "est/AUX", "plus/ADV", "grand/ADJ"), 2, true},
		{"before adverb", sentence("plus/ADV", "vite/ADV"), 0, true},
		{"before number", sentence("plus/ADV", "10/NUM"), 0, true},
		{"plus de noun", sentence("plus/ADV", "de/ADP", "pain/NOUN"), 0, true},
		{"addition", sentence("sept/NUM", "plus/ADV", "huit/NUM"), 1, false},
		{"digit addition", sentence("2/NUM", "plus/ADV", "3/NUM"), 1, false},
		{"coordination", sentence("toi/PRON", "plus/ADV", "moi/PRON"), 1, false},
		{"en plus", sentence("en/ADP", "plus/ADV"), 1, false},
		{"de plus en plus first", sentence("de/ADP", "plus/ADV", "en/ADP", "plus/ADV"), 1, false},
		{"de plus en plus second", sentence("de/ADP", "plus/ADV", "en/ADP", "plus/ADV"), 3, false},
		{"correlative", sentence("plus/ADV", "il/PRON", "mange/VERB", "plus/ADV", "il/PRON", "grossit/VERB"), 0, true},
		{"alone", sentence("plus/ADV"), 0, false},
		{"negation too far", sentence("ne/PART", "a/X", "b/X", "c/X", "plus/ADV"), 4, false},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.sentence, tt.index)
			want := model.MuteMask(nil)
			if tt.mute {
				want = mask(3)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Detect(plus) = %v, want %v", got, want)
			}
		})
	}
}

func TestDetect_OutOfRange(t *testing.T) {
	d := New()
	s := sentence("chat/NOUN")
	if got := d.Detect(s, 1); got != nil {
		t.Errorf("Detect out of range = %v, want nil", got)
	}
	if got := d.Detect(s, -1); got != nil {
		t.Errorf("Detect negative index = %v, want nil", got)
	}
}

func TestDetect_IndicesWithinWord(t *testing.T) {
	d := New()
	words := []string{"chats", "mangent", "habits", "Œufs", "été", "hôpitaux", "scientifiques"}
	for _, w := range words {
		n := len([]rune(w))
		for _, idx := range d.DetectWord(Word{Text: w, POS: nlp.Noun}) {
			if idx < 0 || idx >= n {
				t.Errorf("DetectWord(%q) index %d outside word", w, idx)
			}
		}
	}
}

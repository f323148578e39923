package syllable

import (
	"strings"
	"testing"

	"github.com/tsawler/dyspositif/model"
)

func TestSegment_Words(t *testing.T) {
	tests := []struct {
		word string
		want []string
	}{
		{"table", []string{"ta", "ble"}},
		{"partir", []string{"par", "tir"}},
		{"souris", []string{"sou", "ris"}},
		{"mangent", []string{"man", "gent"}},
		{"chocolat", []string{"cho", "co", "lat"}},
		{"montagne", []string{"mon", "ta", "gne"}},
		{"photographe", []string{"pho", "to", "gra", "phe"}},
		{"quatre", []string{"qua", "tre"}},
		{"guitare", []string{"gui", "ta", "re"}},
		{"astre", []string{"as", "tre"}},
		{"crayon", []string{"cra", "yon"}},
		{"poème", []string{"po", "è", "me"}},
		{"naïf", []string{"na", "ïf"}},
		{"réalité", []string{"ré", "a", "li", "té"}},
		{"fée", []string{"fée"}},
		{"oiseau", []string{"oi", "seau"}},
		{"belle", []string{"bel", "le"}},
		{"Chats", []string{"Chats"}},
		{"Les", []string{"Les"}},
	}

	seg := New()
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got := seg.Split(tt.word)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Split(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestSegment_ShortAndVowelless(t *testing.T) {
	seg := New()

	for _, word := range []string{"a", "y", "l", "pff", "Mlle"} {
		res := seg.Segment(word, nil)
		if len(res.Syllables) != 1 || res.Syllables[0].Text != word {
			t.Errorf("Segment(%q) = %v, want whole word", word, res.Texts())
		}
	}

	if res := seg.Segment("", nil); len(res.Syllables) != 0 {
		t.Errorf("Segment(\"\") = %v, want no syllables", res.Texts())
	}
}

func TestSegment_SilentTail(t *testing.T) {
	seg := New()

	res := seg.Segment("chats", model.NewMuteMask(3, 4))
	if len(res.Syllables) != 2 {
		t.Fatalf("expected 2 syllables, got %v", res.Texts())
	}
	if res.Syllables[0].Text != "cha" || res.Syllables[0].Silent {
		t.Errorf("first syllable = %+v, want audible \"cha\"", res.Syllables[0])
	}
	if res.Syllables[1].Text != "ts" || !res.Syllables[1].Silent {
		t.Errorf("second syllable = %+v, want silent \"ts\"", res.Syllables[1])
	}
	if res.Syllables[1].Start != 3 {
		t.Errorf("silent syllable starts at %d, want 3", res.Syllables[1].Start)
	}

	res = seg.Segment("mangent", model.NewMuteMask(5, 6))
	if got := strings.Join(res.Texts(), "|"); got != "man|ge|nt" {
		t.Errorf("mangent = %s, want man|ge|nt", got)
	}

	// A mute run holding a vowel stays inside its syllable
	res = seg.Segment("amie", model.NewMuteMask(3))
	if got := strings.Join(res.Texts(), "|"); got != "a|mie" {
		t.Errorf("amie = %s, want a|mie", got)
	}
	for _, s := range res.Syllables {
		if s.Silent {
			t.Errorf("amie: unexpected silent syllable %q", s.Text)
		}
	}

	// Mute letters that are not at the end do not split
	res = seg.Segment("homme", model.NewMuteMask(0))
	if got := strings.Join(res.Texts(), "|"); got != "hom|me" {
		t.Errorf("homme = %s, want hom|me", got)
	}
}

func TestSegment_Fallback(t *testing.T) {
	seg := New()

	res := seg.Segment("mañana", nil)
	if !res.Fallback {
		t.Error("expected fallback for ñ")
	}
	if got := strings.Join(res.Texts(), "|"); got != "ma|ña|na" {
		t.Errorf("mañana = %s, want ma|ña|na", got)
	}

	res = seg.Segment("maison", nil)
	if res.Fallback {
		t.Error("unexpected fallback for a French word")
	}
}

func TestSegment_Starts(t *testing.T) {
	res := New().Segment("chocolat", nil)

	offset := 0
	for _, s := range res.Syllables {
		if s.Start != offset {
			t.Errorf("syllable %q starts at %d, want %d", s.Text, s.Start, offset)
		}
		offset += len([]rune(s.Text))
	}
}

func TestSegment_RoundTrip(t *testing.T) {
	words := []string{
		"anticonstitutionnellement", "extraordinaire", "aujourd", "Œuvre",
		"cœur", "ÉCOLE", "hôpital", "aïeul", "Noël", "qu", "gué", "rhume",
		"Strasbourg", "abbaye", "pays", "squelette", "chrysanthème",
		"xylophone", "zzz", "ß", "Ångström", "København", "naïveté",
		"été",
	}

	seg := New()
	for _, word := range words {
		for _, mask := range []model.MuteMask{nil, model.NewMuteMask(len([]rune(word)) - 1), model.NewMuteMask(0)} {
			res := seg.Segment(word, mask)

			var b strings.Builder
			for _, s := range res.Syllables {
				if s.Text == "" {
					t.Errorf("Segment(%q) produced an empty syllable", word)
				}
				b.WriteString(s.Text)
			}
			if b.String() != word {
				t.Errorf("round trip of %q with mask %v: got %q", word, mask, b.String())
			}
		}
	}
}

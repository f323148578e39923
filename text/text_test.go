package text

import (
	"strings"
	"testing"

	"github.com/tsawler/dyspositif/model"
)

// makeGlyph creates a single-glyph fragment for merge tests
func makeGlyph(txt string, x, y, width, fontSize float64) TextFragment {
	return TextFragment{
		Text:     txt,
		X:        x,
		Y:        y,
		Width:    width,
		Height:   fontSize,
		FontSize: fontSize,
	}
}

func TestMergeGlyphs_Empty(t *testing.T) {
	if runs := MergeGlyphs(nil); runs != nil {
		t.Errorf("MergeGlyphs(nil) = %v, want nil", runs)
	}
}

func TestMergeGlyphs_WordsSplitOnGap(t *testing.T) {
	glyphs := []TextFragment{
		makeGlyph("L", 100, 700, 6, 12),
		makeGlyph("e", 106, 700, 6, 12),
		makeGlyph("s", 112, 700, 6, 12),
		// word gap of 4pt (> 0.15 * 12)
		makeGlyph("c", 122, 700, 6, 12),
		makeGlyph("h", 128, 700, 6, 12),
	}

	runs := MergeGlyphs(glyphs)
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].Text != "Les" || runs[1].Text != "ch" {
		t.Errorf("runs = %q, %q, want %q, %q", runs[0].Text, runs[1].Text, "Les", "ch")
	}
	if runs[0].Width != 18 {
		t.Errorf("run width = %v, want 18", runs[0].Width)
	}
}

func TestMergeGlyphs_SpaceGlyphEndsRun(t *testing.T) {
	glyphs := []TextFragment{
		makeGlyph("a", 100, 700, 6, 12),
		makeGlyph(" ", 106, 700, 3, 12),
		makeGlyph("b", 109, 700, 6, 12),
	}

	runs := MergeGlyphs(glyphs)
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
}

func TestMergeGlyphs_BaselineChange(t *testing.T) {
	glyphs := []TextFragment{
		makeGlyph("a", 100, 700, 6, 12),
		makeGlyph("b", 106, 680, 6, 12),
	}

	if runs := MergeGlyphs(glyphs); len(runs) != 2 {
		t.Errorf("Expected 2 runs for two baselines, got %d", len(runs))
	}
}

func TestMergeGlyphs_StyleChange(t *testing.T) {
	bold := makeGlyph("b", 106, 700, 6, 12)
	bold.Style = model.StyleBold
	glyphs := []TextFragment{makeGlyph("a", 100, 700, 6, 12), bold}

	runs := MergeGlyphs(glyphs)
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs for two styles, got %d", len(runs))
	}
	if runs[1].Style != model.StyleBold {
		t.Errorf("second run style = %v, want bold", runs[1].Style)
	}
}

func TestFontStyle(t *testing.T) {
	tests := []struct {
		font string
		want model.Style
	}{
		{"Helvetica", model.StyleNone},
		{"Helvetica-Bold", model.StyleBold},
		{"Times-Italic", model.StyleItalic},
		{"Helvetica-BoldOblique", model.StyleBold | model.StyleItalic},
		{"ABCDEF+Arial-BlackItalic", model.StyleBold | model.StyleItalic},
		{"Georgia-Demibold", model.StyleBold},
		{"BOLDXY+Arial", model.StyleNone},
		{"", model.StyleNone},
	}

	for _, tt := range tests {
		t.Run(tt.font, func(t *testing.T) {
			if got := FontStyle(tt.font); got != tt.want {
				t.Errorf("FontStyle(%q) = %v, want %v", tt.font, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"decomposed accent", "e\u0301te\u0301", "\u00e9t\u00e9"},
		{"collapse whitespace", "  Les   chats\n\tdorment  ", "Les chats dorment"},
		{"line hyphenation", "exem-\n  ple", "exemple"},
		{"bullet variant", "▪ item", "• item"},
		{"private use checkbox", "\uf06f case", "☐ case"},
		{"checked variant", "✓ fait", "☑ fait"},
		{"math italic", "𝑓(𝑥)", "f(x)"},
		{"ligature", "ﬁn", "fin"},
		{"keeps no-break space", "1\u00a0000", "1\u00a0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestJoinLines(t *testing.T) {
	tests := []struct {
		prev, next, want string
	}{
		{"Les chats", "mangent", "Les chats mangent"},
		{"exem-", "ple", "exemple"},
		{"Jean-", "Pierre", "Jean- Pierre"},
		{"", "seul", "seul"},
		{"seul ", "", "seul"},
	}

	for _, tt := range tests {
		if got := JoinLines(tt.prev, tt.next); got != tt.want {
			t.Errorf("JoinLines(%q, %q) = %q, want %q", tt.prev, tt.next, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Les chats mangent 123 souris.")

	want := []struct {
		kind model.TokenKind
		text string
	}{
		{model.TokenWord, "Les"},
		{model.TokenWhitespace, " "},
		{model.TokenWord, "chats"},
		{model.TokenWhitespace, " "},
		{model.TokenWord, "mangent"},
		{model.TokenWhitespace, " "},
		{model.TokenNumber, "123"},
		{model.TokenWhitespace, " "},
		{model.TokenWord, "souris"},
		{model.TokenPunctuation, "."},
	}

	if len(tokens) != len(want) {
		t.Fatalf("Expected %d tokens, got %d: %+v", len(want), len(tokens), tokens)
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind || tokens[i].Text != w.text {
			t.Errorf("token %d = %v %q, want %v %q", i, tokens[i].Kind, tokens[i].Text, w.kind, w.text)
		}
	}
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"3,14", []string{"3,14"}},
		{"-12", []string{"-12"}},
		{"1\u00a0000\u00a0000", []string{"1\u00a0000\u00a0000"}},
		{"2020-2021", []string{"2020", "-", "2021"}},
		{"fin 12.", []string{"fin", " ", "12", "."}},
		{"A4", []string{"A", "4"}},
		{"1 234", []string{"1 234"}},
		{"les 12 345 678 élèves", []string{"les", " ", "12 345 678", " ", "élèves"}},
		{"-1 000,5", []string{"-1 000,5"}},
		{"1 2", []string{"1", " ", "2"}},
		{"1 2345", []string{"1", " ", "2345"}},
		{"2024 123", []string{"2024", " ", "123"}},
		{"3,5 123", []string{"3,5", " ", "123"}},
		{"1  234", []string{"1", "  ", "234"}},
		{"365 jours", []string{"365", " ", "jours"}},
	}

	for _, tt := range tests {
		tokens := Tokenize(tt.input)
		var got []string
		for _, tok := range tokens {
			got = append(got, tok.Text)
		}
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTokenize_Elision(t *testing.T) {
	tokens := Tokenize("l'arbre")
	if len(tokens) != 3 {
		t.Fatalf("Expected 3 tokens, got %d", len(tokens))
	}
	if tokens[0].Kind != model.TokenWord || tokens[1].Kind != model.TokenPunctuation || tokens[2].Kind != model.TokenWord {
		t.Errorf("unexpected kinds: %v %v %v", tokens[0].Kind, tokens[1].Kind, tokens[2].Kind)
	}
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"Aujourd'hui, il fait -3,5 °C !",
		"« Bonjour » dit-il... 1 000 €",
		"Œufs, cœurs — et naïveté.",
	}

	for _, input := range inputs {
		var sb strings.Builder
		for _, tok := range Tokenize(input) {
			sb.WriteString(tok.Text)
		}
		if sb.String() != input {
			t.Errorf("round trip of %q gave %q", input, sb.String())
		}
	}
}

func TestApplyStyles(t *testing.T) {
	tokens := Tokenize("Les chats dorment bien.")
	ApplyStyles(tokens, []model.StyleRange{
		{Start: 4, End: 9, Style: model.StyleBold},
		{Start: 18, End: 23, Style: model.StyleItalic},
	})

	want := map[string]model.Style{
		"Les":     model.StyleNone,
		"chats":   model.StyleBold,
		"dorment": model.StyleNone,
		"bien":    model.StyleItalic,
		".":       model.StyleItalic,
	}
	for _, tok := range tokens {
		if tok.Kind == model.TokenWhitespace {
			if tok.Style != model.StyleNone {
				t.Errorf("whitespace %q styled %v", tok.Text, tok.Style)
			}
			continue
		}
		if tok.Style != want[tok.Text] {
			t.Errorf("%q style = %v, want %v", tok.Text, tok.Style, want[tok.Text])
		}
	}
}

func TestApplyStyles_NoRanges(t *testing.T) {
	tokens := Tokenize("Un mot")
	ApplyStyles(tokens, nil)
	for _, tok := range tokens {
		if tok.Style != model.StyleNone {
			t.Errorf("%q style = %v, want regular", tok.Text, tok.Style)
		}
	}
}

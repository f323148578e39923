package layout

import (
	"testing"

	"github.com/tsawler/dyspositif/text"
)

// run creates a word run with its baseline at y
func run(x, y, width, size float64, txt string) text.TextFragment {
	return text.TextFragment{
		X:        x,
		Y:        y,
		Width:    width,
		Height:   size,
		Text:     txt,
		FontSize: size,
	}
}

// twoColumnPage builds ten lines in each of two columns separated by a
// 32 point gutter
func twoColumnPage() []text.TextFragment {
	var runs []text.TextFragment
	for i := 0; i < 10; i++ {
		y := 700 - float64(i)*14
		runs = append(runs, run(72, y, 218, 12, "gauche"))
		runs = append(runs, run(322, y, 218, 12, "droite"))
	}
	return runs
}

func TestColumnSplitter_Empty(t *testing.T) {
	if cols := NewColumnSplitter().Split(nil); len(cols) != 0 {
		t.Errorf("expected no columns, got %d", len(cols))
	}
}

func TestColumnSplitter_SingleColumn(t *testing.T) {
	runs := []text.TextFragment{
		run(72, 700, 450, 16, "Le titre du document"),
		run(72, 680, 200, 12, "Premier"),
		run(280, 680, 240, 12, "paragraphe"),
		run(72, 665, 450, 12, "Deuxième ligne."),
	}

	cols := NewColumnSplitter().Split(runs)

	if len(cols) != 1 {
		t.Fatalf("expected 1 column, got %d", len(cols))
	}
	if len(cols[0]) != 4 {
		t.Errorf("expected 4 runs, got %d", len(cols[0]))
	}
}

func TestColumnSplitter_TwoColumns(t *testing.T) {
	cols := NewColumnSplitter().Split(twoColumnPage())

	if len(cols) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(cols))
	}
	for i, want := range []string{"gauche", "droite"} {
		if len(cols[i]) != 10 {
			t.Errorf("column %d: expected 10 runs, got %d", i, len(cols[i]))
		}
		for _, r := range cols[i] {
			if r.Text != want {
				t.Errorf("column %d holds %q", i, r.Text)
				break
			}
		}
	}
}

func TestColumnSplitter_SpanningTitleKeepsGutter(t *testing.T) {
	runs := append(twoColumnPage(), run(72, 740, 468, 18, "Un titre sur deux colonnes"))

	cols := NewColumnSplitter().Split(runs)

	if len(cols) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(cols))
	}
	if got := len(cols[0]) + len(cols[1]); got != len(runs) {
		t.Errorf("runs lost: %d of %d", got, len(runs))
	}
}

func TestColumnSplitter_NarrowGutter(t *testing.T) {
	runs := []text.TextFragment{
		run(72, 700, 200, 12, "Mot"),
		run(282, 700, 200, 12, "suivant"),
		run(72, 686, 200, 12, "Mot"),
		run(282, 686, 200, 12, "suivant"),
	}

	if cols := NewColumnSplitter().Split(runs); len(cols) != 1 {
		t.Errorf("a 10 point gap is a word space, got %d columns", len(cols))
	}
}

func TestColumnSplitter_NarrowColumnFolded(t *testing.T) {
	runs := twoColumnPage()
	runs = append(runs, run(560, 700, 20, 8, "*"))

	cols := NewColumnSplitter().Split(runs)

	if len(cols) != 2 {
		t.Fatalf("expected the margin note to join a column, got %d columns", len(cols))
	}
	if len(cols[1]) != 11 {
		t.Errorf("expected 11 runs in the right column, got %d", len(cols[1]))
	}
}

func TestColumnSplitter_MaxColumns(t *testing.T) {
	config := DefaultColumnConfig()
	config.MaxColumns = 1

	if cols := NewColumnSplitterWithConfig(config).Split(twoColumnPage()); len(cols) != 1 {
		t.Errorf("MaxColumns=1 should disable splitting, got %d columns", len(cols))
	}
	if NewColumnSplitterWithConfig(config).Config().MaxColumns != 1 {
		t.Error("config not applied")
	}
}

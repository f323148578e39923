package layout

import (
	"math"
	"sort"

	"github.com/tsawler/dyspositif/text"
)

// maxHistogramBins bounds the coverage histogram for pages with absurd
// coordinates
const maxHistogramBins = 20000

// ColumnConfig holds the thresholds used to find column gutters
type ColumnConfig struct {
	// MinGutter is the narrowest vertical strip of whitespace that separates
	// two columns, in points
	// Default: 18
	MinGutter float64

	// MinColumnWidth is the narrowest column kept on its own. Narrower
	// columns, such as margin notes, join their neighbour.
	// Default: 60
	MinColumnWidth float64

	// MaxCrossing is the fraction of runs allowed to cross a gutter, so a
	// title spanning both columns does not hide the gutter
	// Default: 0.05
	MaxCrossing float64

	// MaxColumns is the largest number of columns per page
	// Default: 3
	MaxColumns int
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		MinGutter:      18,
		MinColumnWidth: 60,
		MaxCrossing:    0.05,
		MaxColumns:     3,
	}
}

// ColumnSplitter splits the runs of a page into columns so each column can
// be read top to bottom before the next one
type ColumnSplitter struct {
	config ColumnConfig
}

// NewColumnSplitter creates a column splitter with default configuration
func NewColumnSplitter() *ColumnSplitter {
	return &ColumnSplitter{config: DefaultColumnConfig()}
}

// NewColumnSplitterWithConfig creates a column splitter with custom configuration
func NewColumnSplitterWithConfig(config ColumnConfig) *ColumnSplitter {
	return &ColumnSplitter{config: config}
}

// Config returns the configuration in use
func (s *ColumnSplitter) Config() ColumnConfig {
	return s.config
}

// gutter is a vertical strip of whitespace, in page coordinates
type gutter struct {
	left, right float64
}

func (g gutter) center() float64 { return (g.left + g.right) / 2 }
func (g gutter) width() float64  { return g.right - g.left }

// Split returns the runs of each column, left to right. A page without a
// gutter is a single column. Every run ends up in exactly one column.
func (s *ColumnSplitter) Split(runs []text.TextFragment) [][]text.TextFragment {
	if len(runs) == 0 {
		return nil
	}

	gutters := s.findGutters(runs)
	columns := make([][]text.TextFragment, len(gutters)+1)
	for _, r := range runs {
		mid := r.X + r.Width/2
		idx := sort.Search(len(gutters), func(i int) bool {
			return mid < gutters[i].center()
		})
		columns[idx] = append(columns[idx], r)
	}

	return s.foldNarrow(columns)
}

// findGutters scans a one-point coverage histogram of the runs for wide,
// almost empty strips between text
func (s *ColumnSplitter) findGutters(runs []text.TextFragment) []gutter {
	if s.config.MaxColumns < 2 {
		return nil
	}

	left, right := math.Inf(1), math.Inf(-1)
	for _, r := range runs {
		left = math.Min(left, r.X)
		right = math.Max(right, r.Right())
	}
	bins := int(math.Ceil(right - left))
	if bins <= 0 || bins > maxHistogramBins {
		return nil
	}

	coverage := make([]int, bins)
	for _, r := range runs {
		from := int(math.Floor(r.X - left))
		to := int(math.Ceil(r.Right() - left))
		for b := max(from, 0); b < min(to, bins); b++ {
			coverage[b]++
		}
	}

	allowed := int(s.config.MaxCrossing * float64(len(runs)))
	var found []gutter
	for b := 0; b < bins; {
		if coverage[b] > allowed {
			b++
			continue
		}
		start := b
		for b < bins && coverage[b] <= allowed {
			b++
		}
		// strips touching the text edges are margins, not gutters
		if start == 0 || b == bins {
			continue
		}
		g := gutter{left: left + float64(start), right: left + float64(b)}
		if g.width() >= s.config.MinGutter {
			found = append(found, g)
		}
	}

	if len(found) > s.config.MaxColumns-1 {
		sort.SliceStable(found, func(i, j int) bool {
			return found[i].width() > found[j].width()
		})
		found = found[:s.config.MaxColumns-1]
		sort.Slice(found, func(i, j int) bool {
			return found[i].left < found[j].left
		})
	}
	return found
}

// foldNarrow merges columns narrower than MinColumnWidth into their left
// neighbour, or the right one for the first column, and drops empty ones
func (s *ColumnSplitter) foldNarrow(columns [][]text.TextFragment) [][]text.TextFragment {
	var out [][]text.TextFragment
	var pending []text.TextFragment

	for _, col := range columns {
		if len(col) == 0 {
			continue
		}
		col = append(pending, col...)
		pending = nil

		if columnWidth(col) < s.config.MinColumnWidth {
			if len(out) > 0 {
				out[len(out)-1] = append(out[len(out)-1], col...)
			} else {
				pending = col
			}
			continue
		}
		out = append(out, col)
	}

	if len(pending) > 0 {
		out = append(out, pending)
	}
	return out
}

// columnWidth is the horizontal extent of runs
func columnWidth(runs []text.TextFragment) float64 {
	left, right := math.Inf(1), math.Inf(-1)
	for _, r := range runs {
		left = math.Min(left, r.X)
		right = math.Max(right, r.Right())
	}
	return right - left
}

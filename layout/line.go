package layout

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/dyspositif/model"
	"github.com/tsawler/dyspositif/text"
)

// LineConfig holds the thresholds used to rebuild lines from word runs.
// Distances are fractions of the font size so they scale with the text.
type LineConfig struct {
	// BaselineTolerance is the largest baseline difference between runs of
	// one line. Superscripts such as "1er" stay within it.
	// Default: 0.4
	BaselineTolerance float64

	// SpaceRatio is the horizontal gap above which a space separates two
	// runs
	// Default: 0.12
	SpaceRatio float64

	// OverprintRatio is the largest offset between two identical runs
	// printed twice to simulate bold; the copy is dropped
	// Default: 0.2
	OverprintRatio float64

	// MinWidth is the narrowest line kept, in points
	// Default: 1
	MinWidth float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BaselineTolerance: 0.4,
		SpaceRatio:        0.12,
		OverprintRatio:    0.2,
		MinWidth:          1.0,
	}
}

// LineGrouper rebuilds the lines of one column
type LineGrouper struct {
	config LineConfig
}

// NewLineGrouper creates a line grouper with default configuration
func NewLineGrouper() *LineGrouper {
	return &LineGrouper{config: DefaultLineConfig()}
}

// NewLineGrouperWithConfig creates a line grouper with custom configuration
func NewLineGrouperWithConfig(config LineConfig) *LineGrouper {
	return &LineGrouper{config: config}
}

// Config returns the configuration in use
func (g *LineGrouper) Config() LineConfig {
	return g.config
}

// lineRuns is a line under construction
type lineRuns struct {
	baseline float64
	size     float64
	runs     []text.TextFragment
}

// Group returns the lines of runs as raw blocks of page, top to bottom.
// Runs are word-level fragments of a single column.
func (g *LineGrouper) Group(page int, runs []text.TextFragment) []model.RawBlock {
	if len(runs) == 0 {
		return nil
	}

	sorted := append([]text.TextFragment(nil), runs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y > sorted[j].Y
	})

	var lines []*lineRuns
	for _, run := range sorted {
		if run.IsSpace() {
			continue
		}
		size := fontSize(run)
		if n := len(lines); n > 0 {
			cur := lines[n-1]
			if math.Abs(cur.baseline-run.Y) <= g.config.BaselineTolerance*math.Max(size, cur.size) {
				cur.runs = append(cur.runs, run)
				cur.size = math.Max(cur.size, size)
				continue
			}
		}
		lines = append(lines, &lineRuns{baseline: run.Y, size: size, runs: []text.TextFragment{run}})
	}

	blocks := make([]model.RawBlock, 0, len(lines))
	for _, l := range lines {
		if raw, ok := g.build(page, l); ok {
			blocks = append(blocks, raw)
		}
	}
	return blocks
}

// build orders a line left to right and joins its runs
func (g *LineGrouper) build(page int, l *lineRuns) (model.RawBlock, bool) {
	sort.SliceStable(l.runs, func(i, j int) bool {
		return l.runs[i].X < l.runs[j].X
	})
	runs := g.dropOverprints(l.runs)

	var sb strings.Builder
	var styles []model.StyleRange
	offset := 0
	bbox := runBBox(runs[0])
	weighted, weight := 0.0, 0.0
	for i, run := range runs {
		if i > 0 {
			gap := run.X - runs[i-1].Right()
			if gap > g.config.SpaceRatio*fontSize(run) && sb.Len() > 0 {
				sb.WriteByte(' ')
				offset++
			}
			bbox = bbox.Union(runBBox(run))
		}
		t := strings.TrimSpace(run.Text)
		sb.WriteString(t)

		n := utf8.RuneCountInString(t)
		styles = appendStyle(styles, model.StyleRange{Start: offset, End: offset + n, Style: run.Style})
		offset += n
		weighted += fontSize(run) * float64(n)
		weight += float64(n)
	}

	line := sb.String()
	if line == "" || bbox.Width < g.config.MinWidth {
		return model.RawBlock{}, false
	}
	return model.RawBlock{
		Page:     page,
		BBox:     bbox,
		FontSize: weighted / weight,
		Text:     line,
		Styles:   styles,
	}, true
}

// appendStyle adds r to the sorted ranges, merging it with the previous
// range when both share a style and only a space separates them
func appendStyle(ranges []model.StyleRange, r model.StyleRange) []model.StyleRange {
	if r.Style == model.StyleNone || r.End <= r.Start {
		return ranges
	}
	if n := len(ranges); n > 0 && ranges[n-1].Style == r.Style && r.Start-ranges[n-1].End <= 1 {
		ranges[n-1].End = r.End
		return ranges
	}
	return append(ranges, r)
}

// dropOverprints removes runs repeated at almost the same position and
// marks the run kept as bold. runs must be sorted by X.
func (g *LineGrouper) dropOverprints(runs []text.TextFragment) []text.TextFragment {
	kept := runs[:1:1]
	for _, run := range runs[1:] {
		prev := kept[len(kept)-1]
		limit := g.config.OverprintRatio * fontSize(run)
		if run.Text == prev.Text && math.Abs(run.X-prev.X) <= limit && math.Abs(run.Y-prev.Y) <= limit {
			kept[len(kept)-1].Style |= model.StyleBold
			continue
		}
		kept = append(kept, run)
	}
	return kept
}

// fontSize returns the size used to scale tolerances for f
func fontSize(f text.TextFragment) float64 {
	switch {
	case f.FontSize > 0:
		return f.FontSize
	case f.Height > 0:
		return f.Height
	default:
		return 10
	}
}

// runBBox returns the box of a run, from its baseline up
func runBBox(f text.TextFragment) model.BBox {
	height := f.Height
	if height <= 0 {
		height = fontSize(f)
	}
	return model.NewBBox(f.X, f.Y, f.Width, height)
}

package layout

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/dyspositif/model"
	"github.com/tsawler/dyspositif/text"
)

// bulletPattern matches list item markers at the start of a line
var bulletPattern = regexp.MustCompile(`^([•\-\*☐☑✓])\s+`)

// ReflowConfig holds the reflow thresholds. They are calibrated for body
// text between 9 and 14 points and can be tuned per document.
type ReflowConfig struct {
	// SpacingRatio merges a line into the current paragraph when its gap is
	// at most SpacingRatio times the page's median line gap
	// Default: 1.5
	SpacingRatio float64

	// MaxGapRatio caps the merge threshold at this fraction of the page's
	// typical line height
	// Default: 1.5
	MaxGapRatio float64

	// GapRatio is the merge threshold, as a fraction of the page's typical
	// line height, used when the page has no usable line gap statistics
	// Default: 0.5
	GapRatio float64

	// HeadingRatio is the minimum ratio of font size to modal body size for
	// a heading
	// Default: 1.15
	HeadingRatio float64

	// ToleranceBand is the distance in points around the modal size inside
	// which text is always body text
	// Default: 1.0
	ToleranceBand float64

	// MaxHeadingRunes is the longest text that can still be a heading
	// Default: 120
	MaxHeadingRunes int

	// HeadingLevelRatios maps font size ratios to heading levels. Index 0 is
	// h1. Headings below every ratio get the next level (at most h6).
	// Default: 1.8, 1.5, 1.3
	HeadingLevelRatios []float64

	// HeaderMargin drops lines whose top is within this distance of the top
	// of the page. Zero disables the filter.
	HeaderMargin float64

	// FooterMargin drops lines whose bottom is within this distance of the
	// bottom of the page. Zero disables the filter.
	FooterMargin float64

	// IndentUnit is the number of points per em of indentation
	// Default: 12
	IndentUnit float64

	// MinIndent is the smallest indentation (in em) that is kept
	// Default: 0.5
	MinIndent float64
}

// DefaultReflowConfig returns sensible default configuration
func DefaultReflowConfig() ReflowConfig {
	return ReflowConfig{
		SpacingRatio:       1.5,
		MaxGapRatio:        1.5,
		GapRatio:           0.5,
		HeadingRatio:       1.15,
		ToleranceBand:      1.0,
		MaxHeadingRunes:    120,
		HeadingLevelRatios: []float64{1.8, 1.5, 1.3},
		IndentUnit:         12.0,
		MinIndent:          0.5,
	}
}

// Assembler groups raw line blocks into a reflowed document
type Assembler struct {
	config ReflowConfig
}

// NewAssembler creates an assembler with default configuration
func NewAssembler() *Assembler {
	return &Assembler{
		config: DefaultReflowConfig(),
	}
}

// NewAssemblerWithConfig creates an assembler with custom configuration
func NewAssemblerWithConfig(config ReflowConfig) *Assembler {
	return &Assembler{
		config: config,
	}
}

// Config returns the configuration in use
func (a *Assembler) Config() ReflowConfig {
	return a.config
}

// pageStats holds the per-page measurements reflow decisions are relative to
type pageStats struct {
	bodySize   float64
	lineHeight float64
	medianGap  float64
}

// pendingBlock accumulates the lines of the block being built
type pendingBlock struct {
	kind   model.BlockKind
	level  int
	page   int
	lines  []model.RawBlock
	firstX float64
}

// Assemble reflows blocks into a document. Block order is preserved; no
// block is reordered or deduplicated. pages may be shorter than the number
// of pages referenced, in which case margin filters are skipped for the
// missing pages.
func (a *Assembler) Assemble(source string, blocks []model.RawBlock, pages []model.PageSize) *model.Document {
	doc := model.NewDocument(source)
	doc.PageCount = len(pages)

	blocks = a.filterMargins(blocks, pages)
	stats := a.computePageStats(blocks)

	var current *pendingBlock
	flush := func() {
		if current == nil {
			return
		}
		if block, ok := a.buildBlock(current, stats[current.page]); ok {
			doc.AddBlock(block)
		}
		current = nil
	}

	for i, raw := range blocks {
		st := stats[raw.Page]
		kind, level := a.classify(raw, st)

		if current != nil && i > 0 && a.continues(current, blocks[i-1], raw, kind, st) {
			current.lines = append(current.lines, raw)
			continue
		}

		flush()
		current = &pendingBlock{
			kind:   kind,
			level:  level,
			page:   raw.Page,
			lines:  []model.RawBlock{raw},
			firstX: raw.BBox.X,
		}
	}
	flush()

	doc.Title = documentTitle(doc)
	return doc
}

// filterMargins drops lines inside the configured header and footer margins
func (a *Assembler) filterMargins(blocks []model.RawBlock, pages []model.PageSize) []model.RawBlock {
	if a.config.HeaderMargin <= 0 && a.config.FooterMargin <= 0 {
		return blocks
	}

	kept := make([]model.RawBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Page >= 0 && b.Page < len(pages) {
			height := pages[b.Page].Height
			if a.config.HeaderMargin > 0 && b.BBox.Top() > height-a.config.HeaderMargin {
				continue
			}
			if a.config.FooterMargin > 0 && b.BBox.Bottom() < a.config.FooterMargin {
				continue
			}
		}
		kept = append(kept, b)
	}
	return kept
}

// computePageStats measures modal font size, typical line height and median
// line gap for every page
func (a *Assembler) computePageStats(blocks []model.RawBlock) map[int]pageStats {
	byPage := make(map[int][]model.RawBlock)
	for _, b := range blocks {
		byPage[b.Page] = append(byPage[b.Page], b)
	}

	stats := make(map[int]pageStats, len(byPage))
	for page, lines := range byPage {
		body := detectBodyFontSize(lines)

		var heights, gaps []float64
		for i, l := range lines {
			if math.Abs(l.FontSize-body) > a.config.ToleranceBand {
				continue
			}
			heights = append(heights, l.BBox.Height)
			if i > 0 && math.Abs(lines[i-1].FontSize-body) <= a.config.ToleranceBand {
				if gap := lines[i-1].BBox.Bottom() - l.BBox.Top(); gap > 0 {
					gaps = append(gaps, gap)
				}
			}
		}

		lineHeight := median(heights)
		if lineHeight <= 0 {
			lineHeight = body
		}
		stats[page] = pageStats{
			bodySize:   body,
			lineHeight: lineHeight,
			medianGap:  median(gaps),
		}
	}

	return stats
}

// detectBodyFontSize determines the most common (body) font size. Sizes are
// bucketed by half points and weighted by text length; ties go to the
// smaller size.
func detectBodyFontSize(lines []model.RawBlock) float64 {
	if len(lines) == 0 {
		return 12.0
	}

	const tolerance = 0.5
	fontCounts := make(map[int]int)
	for _, l := range lines {
		bucket := int(math.Round(l.FontSize / tolerance))
		fontCounts[bucket] += utf8.RuneCountInString(l.Text)
	}

	buckets := make([]int, 0, len(fontCounts))
	for b := range fontCounts {
		buckets = append(buckets, b)
	}
	sort.Ints(buckets)

	best := buckets[0]
	for _, b := range buckets[1:] {
		if fontCounts[b] > fontCounts[best] {
			best = b
		}
	}

	return float64(best) * tolerance
}

// classify returns the block kind and heading level for a single line
func (a *Assembler) classify(raw model.RawBlock, st pageStats) (model.BlockKind, int) {
	trimmed := text.Normalize(raw.Text)
	if bulletPattern.MatchString(trimmed) {
		return model.BlockListItem, 0
	}
	if a.isHeadingSize(raw.FontSize, st.bodySize) && utf8.RuneCountInString(trimmed) <= a.config.MaxHeadingRunes {
		return model.BlockHeading, a.headingLevel(raw.FontSize, st.bodySize)
	}
	return model.BlockParagraph, 0
}

// isHeadingSize reports whether size is clearly above the body size. Sizes
// inside the tolerance band are body text.
func (a *Assembler) isHeadingSize(size, body float64) bool {
	if body <= 0 {
		return false
	}
	if size-body <= a.config.ToleranceBand {
		return false
	}
	return size >= body*a.config.HeadingRatio
}

// headingLevel determines the heading level from the font size ratio
func (a *Assembler) headingLevel(size, body float64) int {
	ratio := size / body
	for i, r := range a.config.HeadingLevelRatios {
		if ratio >= r {
			return i + 1
		}
	}
	level := len(a.config.HeadingLevelRatios) + 1
	if level > 6 {
		level = 6
	}
	return level
}

// continues reports whether raw belongs to the block being built
func (a *Assembler) continues(cur *pendingBlock, prev, raw model.RawBlock, kind model.BlockKind, st pageStats) bool {
	if raw.Page != cur.page || kind == model.BlockListItem {
		return false
	}

	threshold := a.mergeThreshold(st)
	if cur.kind == model.BlockHeading && st.bodySize > 0 {
		// Larger type has proportionally larger leading
		threshold *= prev.FontSize / st.bodySize
	}

	gap := prev.BBox.Bottom() - raw.BBox.Top()
	if gap > threshold || gap < -st.lineHeight*0.5 {
		return false
	}

	switch cur.kind {
	case model.BlockHeading:
		return kind == model.BlockHeading && math.Abs(raw.FontSize-prev.FontSize) <= a.config.ToleranceBand
	case model.BlockListItem:
		// Continuation lines of a list item hang at or right of the bullet
		return kind == model.BlockParagraph && raw.BBox.X >= cur.firstX-1
	default:
		return kind == model.BlockParagraph && math.Abs(raw.FontSize-prev.FontSize) <= a.config.ToleranceBand
	}
}

// mergeThreshold is the largest vertical gap that keeps two lines together
func (a *Assembler) mergeThreshold(st pageStats) float64 {
	if st.medianGap > 0 {
		threshold := st.medianGap * a.config.SpacingRatio
		if limit := st.lineHeight * a.config.MaxGapRatio; a.config.MaxGapRatio > 0 && threshold > limit {
			threshold = limit
		}
		return threshold
	}
	return st.lineHeight * a.config.GapRatio
}

// joinStyles appends the style ranges of line l, which ends the joined
// text of total runes. Ranges of earlier lines are clipped where a
// hyphenation was removed.
func joinStyles(styles []model.StyleRange, l model.RawBlock, total int) []model.StyleRange {
	trimmed := strings.TrimLeft(l.Text, " ")
	lead := utf8.RuneCountInString(l.Text) - utf8.RuneCountInString(trimmed)
	start := total - utf8.RuneCountInString(trimmed)

	for i := range styles {
		styles[i].End = min(styles[i].End, start)
	}
	for _, r := range l.Styles {
		r.Start = max(r.Start-lead, 0) + start
		r.End = min(r.End-lead+start, total)
		if r.End > r.Start {
			styles = append(styles, r)
		}
	}
	return styles
}

// buildBlock joins, normalizes and tokenizes the lines of a pending block
func (a *Assembler) buildBlock(p *pendingBlock, st pageStats) (model.Block, bool) {
	joined := ""
	var styles []model.StyleRange
	bbox := model.BBox{}
	totalSize := 0.0
	for _, l := range p.lines {
		joined = text.JoinLines(joined, l.Text)
		styles = joinStyles(styles, l, utf8.RuneCountInString(joined))
		bbox = bbox.Union(l.BBox)
		totalSize += l.FontSize
	}

	normalized := text.Normalize(joined)
	if normalized == "" {
		return model.Block{}, false
	}
	tokens := text.Tokenize(normalized)
	if normalized == joined {
		text.ApplyStyles(tokens, styles)
	}

	block := model.Block{
		Kind:     p.kind,
		Level:    p.level,
		Page:     p.page,
		FontSize: totalSize / float64(len(p.lines)),
		BBox:     bbox,
		Tokens:   tokens,
	}
	if p.kind == model.BlockParagraph {
		block.Indent = a.firstLineIndent(p.lines)
	}
	return block, true
}

// firstLineIndent measures how far the first line starts right of the
// following lines, in em rounded to half an em
func (a *Assembler) firstLineIndent(lines []model.RawBlock) float64 {
	if len(lines) < 2 || a.config.IndentUnit <= 0 {
		return 0
	}

	rest := lines[1].BBox.X
	for _, l := range lines[2:] {
		if l.BBox.X < rest {
			rest = l.BBox.X
		}
	}

	em := (lines[0].BBox.X - rest) / a.config.IndentUnit
	em = math.Round(em*2) / 2
	if em < a.config.MinIndent {
		return 0
	}
	return em
}

// documentTitle uses the first heading, falling back to the source name
func documentTitle(doc *model.Document) string {
	for i := range doc.Blocks {
		if doc.Blocks[i].IsHeading() {
			return doc.Blocks[i].Text()
		}
	}
	return doc.Source
}

// median returns the median of values, or 0 for an empty slice
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

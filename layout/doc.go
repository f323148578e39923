// Package layout turns positioned text into a reflowed document.
//
// The pipeline inside this package runs in two steps.
//
// # Line Detection
//
// A page's word runs are split into columns with [ColumnSplitter] and
// grouped into lines with [LineGrouper]:
//
//	for _, col := range layout.NewColumnSplitter().Split(runs) {
//	    blocks = append(blocks, layout.NewLineGrouper().Group(page, col)...)
//	}
//
// Columns are found as wide vertical strips that almost no run covers.
//
// # Reflow
//
// The [Assembler] groups raw line blocks into headings, paragraphs and list
// items and tokenizes their text:
//
//	doc := layout.NewAssembler().Assemble("source.pdf", blocks, pages)
//
// Two heuristics drive reflow. A vertical gap smaller than a fraction of the
// page's typical line height merges a line into the current paragraph. A
// font size clearly larger than the page's modal body size promotes a line
// to a heading; sizes inside a tolerance band around the modal size are
// always body text.
//
// # Configuration
//
// Every threshold is exposed in [ReflowConfig]:
//
//	config := layout.DefaultReflowConfig()
//	config.GapRatio = 1.0
//	assembler := layout.NewAssemblerWithConfig(config)
package layout

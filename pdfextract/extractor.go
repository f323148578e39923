package pdfextract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/dyspositif/layout"
	"github.com/tsawler/dyspositif/model"
	"github.com/tsawler/dyspositif/text"
)

// Default page size (A4 portrait) used when a page has no usable MediaBox
const (
	defaultPageWidth  = 595.0
	defaultPageHeight = 842.0
)

// headerScanLimit is how far into the file the %PDF- marker is searched
const headerScanLimit = 1024

// Config holds extraction settings
type Config struct {
	// Password opens encrypted documents. Empty means no password.
	Password string

	// Pages selects pages to extract (1-indexed). Empty means all pages.
	Pages []int

	Columns layout.ColumnConfig
	Lines   layout.LineConfig
}

// DefaultConfig returns the default extraction configuration
func DefaultConfig() Config {
	return Config{
		Columns: layout.DefaultColumnConfig(),
		Lines:   layout.DefaultLineConfig(),
	}
}

// Result is the output of a successful extraction
type Result struct {
	// Blocks are text lines in reading order
	Blocks []model.RawBlock

	// Pages holds the size of every page of the document, indexed by page
	Pages []model.PageSize

	// Warnings lists pages that could not be read
	Warnings []string
}

// Extractor reads positioned text from PDF files
type Extractor struct {
	config  Config
	columns *layout.ColumnSplitter
	lines   *layout.LineGrouper
	logger  *slog.Logger
}

// New creates an extractor with default configuration
func New(logger *slog.Logger) *Extractor {
	return NewWithConfig(DefaultConfig(), logger)
}

// NewWithConfig creates an extractor with custom configuration
func NewWithConfig(config Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		config:  config,
		columns: layout.NewColumnSplitterWithConfig(config.Columns),
		lines:   layout.NewLineGrouperWithConfig(config.Lines),
		logger:  logger,
	}
}

// Extract reads the PDF at path and returns its text lines
func (e *Extractor) Extract(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := checkHeader(f); err != nil {
		return nil, err
	}

	r, err := e.openReader(f, info.Size())
	if err != nil {
		return nil, err
	}

	return e.extractPages(ctx, r)
}

// checkHeader verifies the %PDF- marker near the start of the file
func checkHeader(f io.ReaderAt) error {
	buf := make([]byte, headerScanLimit)
	n, err := f.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	if !bytes.Contains(buf[:n], []byte("%PDF-")) {
		return ErrNotPDF
	}
	return nil
}

// openReader opens the document, recovering from parser panics
func (e *Extractor) openReader(f io.ReaderAt, size int64) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r = nil
			err = fmt.Errorf("%w: %v", ErrMalformed, rec)
		}
	}()

	password := e.config.Password
	r, err = pdf.NewReaderEncrypted(f, size, func() string {
		// Offer the configured password once, then give up
		pw := password
		password = ""
		return pw
	})
	if err == nil {
		return r, nil
	}

	switch {
	case errors.Is(err, pdf.ErrInvalidPassword):
		return nil, fmt.Errorf("%w: password missing or invalid", ErrEncrypted)
	case hasEncryptEntry(f, size):
		// The parser only handles RC4 and AES-128 security handlers
		return nil, fmt.Errorf("%w: unsupported encryption: %s", ErrEncrypted, parserDetail(err))
	default:
		return nil, fmt.Errorf("%w: %s", ErrMalformed, parserDetail(err))
	}
}

// trailerScanLimit is how much of the end of the file is searched for the
// trailer's /Encrypt entry
const trailerScanLimit = 64 << 10

// hasEncryptEntry reports whether the trailer, or the cross-reference stream
// dictionary that replaces it, holds an /Encrypt entry
func hasEncryptEntry(f io.ReaderAt, size int64) bool {
	n := int64(trailerScanLimit)
	if size < n {
		n = size
	}
	if n <= 0 {
		return false
	}
	buf := make([]byte, n)
	read, err := f.ReadAt(buf, size-n)
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	return bytes.Contains(buf[:read], []byte("/Encrypt"))
}

// parserDetail strips the prefixes the parser puts on its own errors so
// they do not repeat the sentinel text
func parserDetail(err error) string {
	msg := err.Error()
	for _, prefix := range []string{"malformed PDF file: ", "malformed PDF: ", "unsupported PDF: "} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return msg
}

// extractPages runs glyph extraction and line detection for each selected page
func (e *Extractor) extractPages(ctx context.Context, r *pdf.Reader) (*Result, error) {
	numPages := r.NumPage()
	selected, err := resolvePages(e.config.Pages, numPages)
	if err != nil {
		return nil, err
	}

	result := &Result{Pages: make([]model.PageSize, numPages)}
	for i := range result.Pages {
		result.Pages[i] = model.PageSize{Width: defaultPageWidth, Height: defaultPageHeight}
	}

	for _, index := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := r.Page(index + 1)
		if page.V.IsNull() {
			continue
		}

		width, height := mediaBox(page.V)
		result.Pages[index] = model.PageSize{Width: width, Height: height}

		glyphs, err := pageGlyphs(page)
		if err != nil {
			e.logger.Warn("skipping unreadable page", "page", index+1, "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("page %d: %v", index+1, err))
			continue
		}

		blocks := e.pageBlocks(index, glyphs)
		e.logger.Debug("page extracted", "page", index+1, "glyphs", len(glyphs), "lines", len(blocks))
		result.Blocks = append(result.Blocks, blocks...)
	}

	if len(result.Blocks) == 0 {
		return nil, ErrNoText
	}
	return result, nil
}

// pageBlocks turns the glyphs of one page into line blocks in reading order
func (e *Extractor) pageBlocks(index int, glyphs []text.TextFragment) []model.RawBlock {
	// Runs are normalized before grouping so style offsets match the line text
	merged := text.MergeGlyphs(glyphs)
	runs := merged[:0]
	for _, run := range merged {
		run.Text = text.Normalize(run.Text)
		if run.Text != "" {
			runs = append(runs, run)
		}
	}

	var blocks []model.RawBlock
	for _, col := range e.columns.Split(runs) {
		for _, raw := range e.lines.Group(index, col) {
			if normalized := text.Normalize(raw.Text); normalized != raw.Text {
				raw.Text = normalized
				raw.Styles = nil
			}
			if raw.Text == "" {
				continue
			}
			blocks = append(blocks, raw)
		}
	}
	return blocks
}

// pageGlyphs reads the positioned glyphs of a page. The parser panics on
// some malformed content streams; that is reported as an error.
func pageGlyphs(page pdf.Page) (glyphs []text.TextFragment, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			glyphs = nil
			err = fmt.Errorf("%w: %v", ErrMalformed, rec)
		}
	}()

	content := page.Content()
	glyphs = make([]text.TextFragment, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		glyphs = append(glyphs, glyphFragment(t))
	}
	return glyphs, nil
}

// glyphFragment converts a library glyph to a fragment
func glyphFragment(t pdf.Text) text.TextFragment {
	return text.TextFragment{
		Text:     t.S,
		X:        t.X,
		Y:        t.Y,
		Width:    t.W,
		Height:   t.FontSize,
		FontName: t.Font,
		FontSize: t.FontSize,
		Style:    text.FontStyle(t.Font),
	}
}

// mediaBox returns the page size, following inherited MediaBox entries
func mediaBox(v pdf.Value) (float64, float64) {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			width := box.Index(2).Float64() - box.Index(0).Float64()
			height := box.Index(3).Float64() - box.Index(1).Float64()
			if width > 0 && height > 0 {
				return width, height
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}

// resolvePages converts 1-indexed page numbers into sorted, unique 0-based
// indices. An empty selection means every page.
func resolvePages(pages []int, numPages int) ([]int, error) {
	if len(pages) == 0 {
		all := make([]int, numPages)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	seen := make(map[int]bool, len(pages))
	indices := make([]int, 0, len(pages))
	for _, p := range pages {
		if p < 1 || p > numPages {
			return nil, fmt.Errorf("%w: %d (document has %d pages)", ErrPageRange, p, numPages)
		}
		if !seen[p] {
			seen[p] = true
			indices = append(indices, p-1)
		}
	}
	sort.Ints(indices)
	return indices, nil
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tsawler/dyspositif/annotate"
	"github.com/tsawler/dyspositif/htmlbuild"
	"github.com/tsawler/dyspositif/internal/fileutil"
	"github.com/tsawler/dyspositif/layout"
	"github.com/tsawler/dyspositif/model"
	"github.com/tsawler/dyspositif/nlp"
	"github.com/tsawler/dyspositif/pdfextract"
)

// HTMLFileName is the name of the generated page inside the output directory
const HTMLFileName = "index.html"

// Extractor reads positioned text lines from an input file
type Extractor interface {
	Extract(ctx context.Context, path string) (*pdfextract.Result, error)
}

// Compile-time interface implementation check.
var _ Extractor = (*pdfextract.Extractor)(nil)

// Request describes one conversion
type Request struct {
	// Input is the path of the PDF to convert
	Input string

	// OutputDir receives index.html and its stylesheet. It is created if
	// missing.
	OutputDir string

	Options model.ConversionOptions
}

// Result describes a completed conversion
type Result struct {
	HTMLPath string
	CSSPath  string

	// Warnings lists non-fatal problems from every stage
	Warnings []string

	// Transitions is the ordered list of states the run entered, starting at
	// Idle
	Transitions []State

	Stats annotate.Stats

	// Options are the normalized options the run used
	Options model.ConversionOptions
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPalette sets the colors of the generated stylesheet
func WithPalette(palette htmlbuild.Palette) Option {
	return func(p *Pipeline) {
		p.palette = palette
	}
}

// WithTypography sets the base typography of the generated stylesheet
func WithTypography(t htmlbuild.Typography) Option {
	return func(p *Pipeline) {
		p.typography = t
	}
}

// WithReflowConfig sets the thresholds used to rebuild paragraphs
func WithReflowConfig(config layout.ReflowConfig) Option {
	return func(p *Pipeline) {
		p.assembler = layout.NewAssemblerWithConfig(config)
	}
}

// WithHTMLOptions sets the HTML builder options
func WithHTMLOptions(opts htmlbuild.Options) Option {
	return func(p *Pipeline) {
		p.htmlOptions = opts
	}
}

// Pipeline runs conversions. A Pipeline is reusable: every Run starts again
// at Idle. Runs on the same Pipeline are serialized.
type Pipeline struct {
	extractor   Extractor
	models      *nlp.Holder
	assembler   *layout.Assembler
	palette     htmlbuild.Palette
	typography  htmlbuild.Typography
	htmlOptions htmlbuild.Options
	logger      *slog.Logger

	// set by New
	annotator  *annotate.Annotator
	builder    *htmlbuild.Builder
	stylesheet string

	runMu sync.Mutex
	mu    sync.RWMutex
	state State
}

// New creates a pipeline. models supplies the language model for mute
// letters and may be nil when mute letters are never requested. The
// palette and typography are validated here.
func New(extractor Extractor, models *nlp.Holder, opts ...Option) (*Pipeline, error) {
	if extractor == nil {
		return nil, fmt.Errorf("%w: nil extractor", ErrInvalidRequest)
	}

	p := &Pipeline{
		extractor:   extractor,
		models:      models,
		assembler:   layout.NewAssembler(),
		palette:     htmlbuild.DefaultPalette(),
		typography:  htmlbuild.DefaultTypography(),
		htmlOptions: htmlbuild.DefaultOptions(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	palette, err := p.palette.Normalize()
	if err != nil {
		return nil, err
	}
	p.palette = palette
	if err := p.typography.Validate(); err != nil {
		return nil, err
	}
	if p.htmlOptions.StylesheetHref == "" {
		p.htmlOptions.StylesheetHref = htmlbuild.DefaultStylesheetName
	}
	if err := fileutil.ValidateName(p.htmlOptions.StylesheetHref); err != nil {
		return nil, fmt.Errorf("stylesheet %q: %w", p.htmlOptions.StylesheetHref, err)
	}

	p.annotator = annotate.New(models, p.logger)
	p.builder = htmlbuild.NewWithOptions(p.htmlOptions)
	p.stylesheet = htmlbuild.Stylesheet(p.palette, p.typography)
	return p, nil
}

// State returns the state of the current or last run
func (p *Pipeline) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Stylesheet returns the CSS written next to every page
func (p *Pipeline) Stylesheet() string {
	return p.stylesheet
}

// run holds the state of one conversion
type run struct {
	p      *Pipeline
	req    Request
	opts   model.ConversionOptions
	logger *slog.Logger
	result *Result

	extracted *pdfextract.Result
	doc       *model.Document
}

// Run converts req.Input into req.OutputDir. Options are normalized once
// here. On failure the returned error is a *StageError and no output file
// is left behind.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	opts := req.Options.Normalize()
	r := &run{
		p:      p,
		req:    req,
		opts:   opts,
		logger: p.logger.With("run_id", uuid.NewString()),
		result: &Result{Options: opts},
	}
	p.setState(StateIdle)
	r.result.Transitions = append(r.result.Transitions, StateIdle)

	start := time.Now()
	r.logger.Info("conversion started",
		"input", req.Input,
		"output", req.OutputDir,
		"options", opts.String())

	if err := r.validate(); err != nil {
		return nil, r.fail(StateIdle, err)
	}

	stages := []struct {
		state State
		fn    func(context.Context) error
	}{
		{StateExtracting, r.extract},
		{StateReflowing, r.reflow},
		{StateAnnotating, r.annotate},
		{StateRendering, r.render},
	}

	current := StateIdle
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, r.fail(current, err)
		}
		r.enter(stage.state)
		current = stage.state
		if err := stage.fn(ctx); err != nil {
			return nil, r.fail(current, err)
		}
	}
	r.enter(current.next())

	r.logger.Info("conversion finished",
		"html", r.result.HTMLPath,
		"blocks", r.doc.BlockCount(),
		"words", r.result.Stats.Words,
		"warnings", len(r.result.Warnings),
		"duration", time.Since(start))

	return r.result, nil
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// enter records a transition
func (r *run) enter(s State) {
	r.p.setState(s)
	r.result.Transitions = append(r.result.Transitions, s)
	r.logger.Debug("state entered", "state", s.String())
}

// fail moves the run to Failed and wraps err with the failing state
func (r *run) fail(s State, err error) error {
	r.enter(StateFailed)
	r.logger.Error("conversion failed", "state", s.String(), "error", err)
	return &StageError{State: s, Err: err}
}

func (r *run) validate() error {
	switch {
	case r.req.Input == "":
		return fmt.Errorf("%w: input path is empty", ErrInvalidRequest)
	case r.req.OutputDir == "":
		return fmt.Errorf("%w: output directory is empty", ErrInvalidRequest)
	}
	return nil
}

func (r *run) extract(ctx context.Context) error {
	res, err := r.p.extractor.Extract(ctx, r.req.Input)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	if res == nil || len(res.Blocks) == 0 {
		return fmt.Errorf("%w: %w", ErrExtraction, pdfextract.ErrNoText)
	}

	r.extracted = res
	r.result.Warnings = append(r.result.Warnings, res.Warnings...)
	r.logger.Debug("text extracted", "lines", len(res.Blocks), "pages", len(res.Pages))
	return nil
}

func (r *run) reflow(_ context.Context) error {
	source := filepath.Base(r.req.Input)
	doc := r.p.assembler.Assemble(source, r.extracted.Blocks, r.extracted.Pages)
	if doc.BlockCount() == 0 {
		return fmt.Errorf("%w: %w", ErrExtraction, pdfextract.ErrNoText)
	}

	r.doc = doc
	r.logger.Debug("document reflowed", "blocks", doc.BlockCount(), "title", doc.Title)
	return nil
}

func (r *run) annotate(ctx context.Context) error {
	stats, err := r.p.annotator.Annotate(ctx, r.doc, r.opts)
	if err != nil {
		return err
	}

	r.result.Stats = stats
	r.result.Warnings = append(r.result.Warnings, stats.Warnings...)
	return nil
}

func (r *run) render(_ context.Context) error {
	page, err := r.p.builder.Build(r.doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	paths, err := fileutil.WriteAtomic(r.req.OutputDir,
		fileutil.File{Name: HTMLFileName, Content: page},
		fileutil.File{Name: r.p.htmlOptions.StylesheetHref, Content: []byte(r.p.stylesheet)},
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	r.result.HTMLPath = paths[0]
	r.result.CSSPath = paths[1]
	return nil
}

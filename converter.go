package dyspositif

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/tsawler/dyspositif/htmlbuild"
	"github.com/tsawler/dyspositif/layout"
	"github.com/tsawler/dyspositif/model"
	"github.com/tsawler/dyspositif/nlp"
	"github.com/tsawler/dyspositif/pdfextract"
	"github.com/tsawler/dyspositif/pipeline"
)

// ErrInvalidOption reports an invalid value given to a chain method
var ErrInvalidOption = errors.New("invalid option")

// Converter configures the conversion of one PDF. Every method returns a
// modified copy.
type Converter struct {
	filename string
	options  convertOptions
	logger   *slog.Logger
	model    nlp.Model

	// first invalid option
	err error
}

func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		options:  c.options.clone(),
		logger:   c.logger,
		model:    c.model,
		err:      c.err,
	}
}

// Syllables colors syllables alternately.
func (c *Converter) Syllables() *Converter {
	n := c.clone()
	n.options.conversion.Syllables = true
	return n
}

// MuteLetters greys out letters that are not pronounced.
func (c *Converter) MuteLetters() *Converter {
	n := c.clone()
	n.options.conversion.MuteLetters = true
	return n
}

// NumbersPosition colors digits by place value.
func (c *Converter) NumbersPosition() *Converter {
	n := c.clone()
	n.options.conversion.NumbersPosition = true
	return n
}

// NumbersMulticolor gives each digit its own color, overriding NumbersPosition.
func (c *Converter) NumbersMulticolor() *Converter {
	n := c.clone()
	n.options.conversion.NumbersMulticolor = true
	return n
}

// WithOptions replaces every annotation setting at once.
func (c *Converter) WithOptions(opts model.ConversionOptions) *Converter {
	n := c.clone()
	n.options.conversion = opts
	return n
}

// Pages restricts the conversion to the given pages (1-indexed).
func (c *Converter) Pages(pages ...int) *Converter {
	n := c.clone()
	for _, p := range pages {
		if p < 1 && n.err == nil {
			n.err = fmt.Errorf("%w: page numbers start at 1, got %d", ErrInvalidOption, p)
		}
	}
	n.options.pages = append([]int(nil), pages...)
	return n
}

// Password sets the password of an encrypted PDF.
func (c *Converter) Password(password string) *Converter {
	n := c.clone()
	n.options.password = password
	return n
}

// ExcludeHeaders drops text within points of the top of every page.
func (c *Converter) ExcludeHeaders(points float64) *Converter {
	n := c.clone()
	if points < 0 && n.err == nil {
		n.err = fmt.Errorf("%w: negative header margin %g", ErrInvalidOption, points)
	}
	n.options.headerMargin = points
	return n
}

// ExcludeFooters drops text within points of the bottom of every page.
func (c *Converter) ExcludeFooters(points float64) *Converter {
	n := c.clone()
	if points < 0 && n.err == nil {
		n.err = fmt.Errorf("%w: negative footer margin %g", ErrInvalidOption, points)
	}
	n.options.footerMargin = points
	return n
}

// Palette sets the annotation colors.
func (c *Converter) Palette(p htmlbuild.Palette) *Converter {
	n := c.clone()
	n.options.palette = p
	n.options = n.options.clone()
	return n
}

// Typography sets the base text settings.
func (c *Converter) Typography(t htmlbuild.Typography) *Converter {
	n := c.clone()
	n.options.typography = t
	return n
}

// WithoutPageBreaks omits the separators between source pages.
func (c *Converter) WithoutPageBreaks() *Converter {
	n := c.clone()
	n.options.noPageBreaks = true
	return n
}

// Logger sets the logger for the conversion.
func (c *Converter) Logger(logger *slog.Logger) *Converter {
	n := c.clone()
	n.logger = logger
	return n
}

// Model replaces the built-in lexicon.
func (c *Converter) Model(m nlp.Model) *Converter {
	n := c.clone()
	n.model = m
	return n
}

// Convert writes index.html and its stylesheet into dir.
func (c *Converter) Convert(ctx context.Context, dir string) (*pipeline.Result, error) {
	if c.err != nil {
		return nil, c.err
	}

	models := defaultModels
	if c.model != nil {
		models = nlp.Static(c.model)
	}

	html := htmlbuild.DefaultOptions()
	html.PageBreaks = !c.options.noPageBreaks

	p, err := pipeline.New(c.extractor(), models,
		pipeline.WithLogger(c.logger),
		pipeline.WithPalette(c.options.palette),
		pipeline.WithTypography(c.options.typography),
		pipeline.WithReflowConfig(c.reflowConfig()),
		pipeline.WithHTMLOptions(html),
	)
	if err != nil {
		return nil, err
	}

	return p.Run(ctx, pipeline.Request{
		Input:     c.filename,
		OutputDir: dir,
		Options:   c.options.conversion,
	})
}

// Text returns the reflowed text, one blank line between blocks.
func (c *Converter) Text(ctx context.Context) (string, []string, error) {
	doc, warnings, err := c.Document(ctx)
	if err != nil {
		return "", warnings, err
	}
	return doc.Text(), warnings, nil
}

// Document returns the reflowed document, unannotated.
func (c *Converter) Document(ctx context.Context) (*model.Document, []string, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	res, err := c.extractor().Extract(ctx, c.filename)
	if err != nil {
		return nil, nil, err
	}

	doc := layout.NewAssemblerWithConfig(c.reflowConfig()).Assemble(filepath.Base(c.filename), res.Blocks, res.Pages)
	return doc, res.Warnings, nil
}

func (c *Converter) extractor() *pdfextract.Extractor {
	cfg := pdfextract.DefaultConfig()
	cfg.Password = c.options.password
	cfg.Pages = append([]int(nil), c.options.pages...)
	return pdfextract.NewWithConfig(cfg, c.logger)
}

func (c *Converter) reflowConfig() layout.ReflowConfig {
	rc := layout.DefaultReflowConfig()
	rc.HeaderMargin = c.options.headerMargin
	rc.FooterMargin = c.options.footerMargin
	return rc
}

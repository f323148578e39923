// Package config loads conversion settings from YAML files.
//
// A missing or zero value selects the default, so a config file only needs
// the settings it changes:
//
//	options:
//	  syllables: true
//	  mute_letters: true
//	palette:
//	  mute: "#aaaaaa"
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/tsawler/dyspositif/htmlbuild"
	"github.com/tsawler/dyspositif/internal/fileutil"
	"github.com/tsawler/dyspositif/internal/yamlutil"
	"github.com/tsawler/dyspositif/layout"
	"github.com/tsawler/dyspositif/model"
	"github.com/tsawler/dyspositif/pdfextract"
	"github.com/tsawler/dyspositif/pipeline"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrEmptyPath      = errors.New("config path cannot be empty")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidConfig  = errors.New("invalid config")
)

// ValidationError lists every invalid field of a config
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = "config: " + err.Error()
	}
	return strings.Join(msgs, "\n")
}

func (e *ValidationError) Unwrap() []error {
	return e.Errs
}

// Is reports ErrInvalidConfig
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Config holds all configuration for a conversion
type Config struct {
	Options    Options              `yaml:"options"`
	Palette    htmlbuild.Palette    `yaml:"palette"`
	Typography htmlbuild.Typography `yaml:"typography"`
	Reflow     Reflow               `yaml:"reflow"`
	PDF        PDF                  `yaml:"pdf"`
	Output     Output               `yaml:"output"`
}

// Options selects the annotations
type Options struct {
	Syllables         bool `yaml:"syllables"`
	MuteLetters       bool `yaml:"mute_letters"`
	NumbersPosition   bool `yaml:"numbers_position"`
	NumbersMulticolor bool `yaml:"numbers_multicolor"`
}

// Reflow tunes paragraph and heading detection
type Reflow struct {
	SpacingRatio float64 `yaml:"spacing_ratio"`
	HeadingRatio float64 `yaml:"heading_ratio"`
	IndentUnit   float64 `yaml:"indent_unit"`

	// HeaderMargin and FooterMargin drop running headers and footers, in
	// points from the page edge
	HeaderMargin float64 `yaml:"header_margin"`
	FooterMargin float64 `yaml:"footer_margin"`
}

// PDF holds input options
type PDF struct {
	Password string `yaml:"password"`

	// Pages lists the 1-indexed pages to convert. Empty means all pages.
	Pages []int `yaml:"pages"`
}

// Output holds output options
type Output struct {
	Dir        string `yaml:"dir"`
	Stylesheet string `yaml:"stylesheet"`

	// PageBreaks inserts page separators. Default: true
	PageBreaks *bool `yaml:"page_breaks"`
}

// Default returns the default configuration: no annotation, the standard
// palette and typography.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates a config file
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates YAML config data. Unknown fields are
// rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills every zero value with its default
func (c *Config) applyDefaults() {
	palette := htmlbuild.DefaultPalette()
	if len(c.Palette.Syllables) == 0 {
		c.Palette.Syllables = palette.Syllables
	}
	if c.Palette.Mute == "" {
		c.Palette.Mute = palette.Mute
	}
	if len(c.Palette.Positional) == 0 {
		c.Palette.Positional = palette.Positional
	}
	if len(c.Palette.Multicolor) == 0 {
		c.Palette.Multicolor = palette.Multicolor
	}

	typo := htmlbuild.DefaultTypography()
	if c.Typography.FontFamily == "" {
		c.Typography.FontFamily = typo.FontFamily
	}
	setDefault(&c.Typography.FontSize, typo.FontSize)
	setDefault(&c.Typography.LineHeight, typo.LineHeight)
	setDefault(&c.Typography.LetterSpacing, typo.LetterSpacing)
	setDefault(&c.Typography.WordSpacing, typo.WordSpacing)
	if c.Typography.MaxWidth == 0 {
		c.Typography.MaxWidth = typo.MaxWidth
	}

	reflow := layout.DefaultReflowConfig()
	setDefault(&c.Reflow.SpacingRatio, reflow.SpacingRatio)
	setDefault(&c.Reflow.HeadingRatio, reflow.HeadingRatio)
	setDefault(&c.Reflow.IndentUnit, reflow.IndentUnit)

	if c.Output.Stylesheet == "" {
		c.Output.Stylesheet = htmlbuild.DefaultStylesheetName
	}
	if c.Output.PageBreaks == nil {
		enabled := true
		c.Output.PageBreaks = &enabled
	}
}

func setDefault(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

// Validate checks every field. Each error names its field.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Palette.Normalize(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Typography.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Reflow.SpacingRatio < 0 {
		errs = append(errs, fmt.Errorf("reflow.spacing_ratio: must be positive, got %g", c.Reflow.SpacingRatio))
	}
	if c.Reflow.HeadingRatio != 0 && c.Reflow.HeadingRatio <= 1 {
		errs = append(errs, fmt.Errorf("reflow.heading_ratio: must be greater than 1, got %g", c.Reflow.HeadingRatio))
	}
	if c.Reflow.IndentUnit < 0 {
		errs = append(errs, fmt.Errorf("reflow.indent_unit: must be positive, got %g", c.Reflow.IndentUnit))
	}
	if c.Reflow.HeaderMargin < 0 {
		errs = append(errs, fmt.Errorf("reflow.header_margin: must not be negative, got %g", c.Reflow.HeaderMargin))
	}
	if c.Reflow.FooterMargin < 0 {
		errs = append(errs, fmt.Errorf("reflow.footer_margin: must not be negative, got %g", c.Reflow.FooterMargin))
	}

	for i, p := range c.PDF.Pages {
		if p < 1 {
			errs = append(errs, fmt.Errorf("pdf.pages[%d]: page numbers start at 1, got %d", i, p))
		}
	}

	if c.Output.Stylesheet != "" {
		if err := fileutil.ValidateName(c.Output.Stylesheet); err != nil {
			errs = append(errs, fmt.Errorf("output.stylesheet: %w", err))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errs: errs}
	}
	return nil
}

// ConversionOptions returns the selected annotations
func (c *Config) ConversionOptions() model.ConversionOptions {
	return model.ConversionOptions{
		Syllables:         c.Options.Syllables,
		MuteLetters:       c.Options.MuteLetters,
		NumbersPosition:   c.Options.NumbersPosition,
		NumbersMulticolor: c.Options.NumbersMulticolor,
	}
}

// ReflowConfig returns the layout thresholds with the configured overrides
func (c *Config) ReflowConfig() layout.ReflowConfig {
	rc := layout.DefaultReflowConfig()
	if c.Reflow.SpacingRatio > 0 {
		rc.SpacingRatio = c.Reflow.SpacingRatio
	}
	if c.Reflow.HeadingRatio > 0 {
		rc.HeadingRatio = c.Reflow.HeadingRatio
	}
	if c.Reflow.IndentUnit > 0 {
		rc.IndentUnit = c.Reflow.IndentUnit
	}
	rc.HeaderMargin = c.Reflow.HeaderMargin
	rc.FooterMargin = c.Reflow.FooterMargin
	return rc
}

// ExtractorConfig returns the PDF extraction settings
func (c *Config) ExtractorConfig() pdfextract.Config {
	ec := pdfextract.DefaultConfig()
	ec.Password = c.PDF.Password
	ec.Pages = slices.Clone(c.PDF.Pages)
	return ec
}

// PipelineOptions returns the pipeline options matching the config
func (c *Config) PipelineOptions() []pipeline.Option {
	html := htmlbuild.DefaultOptions()
	if c.Output.Stylesheet != "" {
		html.StylesheetHref = c.Output.Stylesheet
	}
	if c.Output.PageBreaks != nil {
		html.PageBreaks = *c.Output.PageBreaks
	}

	return []pipeline.Option{
		pipeline.WithPalette(c.Palette),
		pipeline.WithTypography(c.Typography),
		pipeline.WithReflowConfig(c.ReflowConfig()),
		pipeline.WithHTMLOptions(html),
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/dyspositif/config"
	"github.com/tsawler/dyspositif/internal/fileutil"
	"github.com/tsawler/dyspositif/nlp"
	"github.com/tsawler/dyspositif/pdfextract"
	"github.com/tsawler/dyspositif/pipeline"
)

func newConvertCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input.pdf>",
		Short: "Convert one PDF into an HTML page",
		Long: `Convert writes index.html and its stylesheet into the output directory.

Examples:
  dyspositif convert cours.pdf -o cours --syllables --mute-letters
  DYSPOSITIF_NUMBERS_POSITION=true dyspositif convert maths.pdf -o maths`,
		Args: exactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(v)
			if err != nil {
				return err
			}
			if cfg.Output.Dir == "" {
				return fmt.Errorf("%w: output directory required (-o)", ErrUsage)
			}

			conv := newConverter(cfg, newLogger(cmd.ErrOrStderr(), v.GetBool("verbose")))
			conv.force = v.GetBool("force")
			res, err := conv.convert(cmd.Context(), args[0], cfg.Output.Dir)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), args[0], res)
			return nil
		},
	}

	addConversionFlags(cmd.Flags())
	return cmd
}

// exactArgs is cobra.ExactArgs with usage errors
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return nil
	}
}

// converter runs pipelines sharing one language model
type converter struct {
	cfg    *config.Config
	models *nlp.Holder
	logger *slog.Logger

	// force overwrites pages left by an earlier conversion
	force bool
}

func newConverter(cfg *config.Config, logger *slog.Logger) *converter {
	return &converter{
		cfg:    cfg,
		models: nlp.NewHolder(nlp.LoadLexicon),
		logger: logger,
	}
}

// convert runs one conversion. Every call builds its own pipeline, so calls
// may run concurrently.
func (c *converter) convert(ctx context.Context, input, outputDir string) (*pipeline.Result, error) {
	if target := filepath.Join(outputDir, pipeline.HTMLFileName); !c.force && fileutil.FileExists(target) {
		return nil, fmt.Errorf("%w: %s (use --force to overwrite)", ErrOutputExists, target)
	}

	ext := pdfextract.NewWithConfig(c.cfg.ExtractorConfig(), c.logger)
	opts := append(c.cfg.PipelineOptions(), pipeline.WithLogger(c.logger))

	p, err := pipeline.New(ext, c.models, opts...)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, pipeline.Request{
		Input:     input,
		OutputDir: outputDir,
		Options:   c.cfg.ConversionOptions(),
	})
}

func printResult(w io.Writer, input string, res *pipeline.Result) {
	fmt.Fprintf(w, "%s -> %s\n", input, res.HTMLPath)
	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
}

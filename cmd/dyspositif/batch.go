package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func newBatchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <a.pdf> [b.pdf ...]",
		Short: "Convert several PDFs concurrently",
		Long: `Batch converts every input into <output>/<name>/index.html, where name is the
input file name without its extension. A failed input does not stop the
others; the exit code reflects the first failure.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: at least one input required", ErrUsage)
			}
			return nil
		},
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

			jobs := v.GetInt("jobs")
			if jobs < 1 {
				return fmt.Errorf("%w: --jobs must be at least 1, got %d", ErrUsage, jobs)
			}

			targets, err := batchTargets(cfg.Output.Dir, args)
			if err != nil {
				return err
			}

			conv := newConverter(cfg, newLogger(cmd.ErrOrStderr(), v.GetBool("verbose")))
			conv.force = v.GetBool("force")
			out := cmd.OutOrStdout()

			var (
				mu       sync.Mutex
				failures = make([]error, len(args))
				g        errgroup.Group
			)
			g.SetLimit(jobs)
			for i, input := range args {
				i, input := i, input
				g.Go(func() error {
					res, err := conv.convert(cmd.Context(), input, targets[i])
					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						failures[i] = fmt.Errorf("%s: %w", input, err)
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", input, err)
						return nil
					}
					printResult(out, input, res)
					return nil
				})
			}
			_ = g.Wait()

			return errors.Join(failures...)
		},
	}

	addConversionFlags(cmd.Flags())
	cmd.Flags().IntP("jobs", "j", runtime.GOMAXPROCS(0), "number of concurrent conversions")
	return cmd
}

// batchTargets returns the output directory of every input. Inputs that
// would share a directory are rejected.
func batchTargets(outputDir string, inputs []string) ([]string, error) {
	targets := make([]string, len(inputs))
	owners := make(map[string]string, len(inputs))
	for i, input := range inputs {
		base := filepath.Base(input)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if name == "" || name == "." {
			return nil, fmt.Errorf("%w: cannot derive an output name from %q", ErrUsage, input)
		}
		if prev, ok := owners[name]; ok {
			return nil, fmt.Errorf("%w: %q and %q would both write to %s", ErrUsage, prev, input, name)
		}
		owners[name] = input
		targets[i] = filepath.Join(outputDir, name)
	}
	return targets, nil
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tsawler/dyspositif/config"
)

// envPrefix prefixes the environment variables read by viper, such as
// DYSPOSITIF_SYLLABLES or DYSPOSITIF_OUTPUT
const envPrefix = "DYSPOSITIF"

// newRootCmd builds the command tree. Each call gets its own viper
// instance so commands can be executed repeatedly in tests.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "dyspositif",
		Short: "Convert French PDFs into HTML adapted for dyslexic readers",
		Long: `dyspositif extracts the text of a PDF, rebuilds its paragraphs and headings,
and writes a reflowable HTML page with a companion stylesheet.

Annotations are opt-in: alternate syllable colors, greyed mute letters, and
digits colored by place value or one color per digit.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "YAML config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	root.AddCommand(newConvertCmd(v), newBatchCmd(v), newConfigCmd(v))
	return root
}

// addConversionFlags registers the flags shared by convert and batch
func addConversionFlags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", "", "output directory")
	fs.Bool("syllables", false, "color syllables alternately")
	fs.Bool("mute-letters", false, "grey out mute letters")
	fs.Bool("numbers-position", false, "color digits by place value")
	fs.Bool("numbers-multicolor", false, "give each digit its own color (overrides --numbers-position)")
	fs.String("password", "", "password of an encrypted PDF")
	fs.String("pages", "", "pages to convert, e.g. 1,3,5-7")
	fs.Bool("force", false, "overwrite an existing index.html")
}

// bindFlags binds the flags of the invoked command to v
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	return v.BindPFlags(cmd.InheritedFlags())
}

// newLogger returns a text logger on w; verbose enables debug records
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadSettings reads the config file, then applies environment variables
// and flags on top of it
func loadSettings(v *viper.Viper) (*config.Config, error) {
	cfg := config.Default()
	if path := v.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	bools := map[string]*bool{
		"syllables":          &cfg.Options.Syllables,
		"mute-letters":       &cfg.Options.MuteLetters,
		"numbers-position":   &cfg.Options.NumbersPosition,
		"numbers-multicolor": &cfg.Options.NumbersMulticolor,
	}
	for key, dst := range bools {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}

	if v.IsSet("output") {
		cfg.Output.Dir = v.GetString("output")
	}
	if v.IsSet("password") {
		cfg.PDF.Password = v.GetString("password")
	}
	if v.IsSet("pages") {
		pages, err := parsePages(v.GetString("pages"))
		if err != nil {
			return nil, err
		}
		cfg.PDF.Pages = pages
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

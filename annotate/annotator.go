// Package annotate attaches syllables, mute letters and digit colors to the
// tokens of a reflowed document.
package annotate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tsawler/dyspositif/model"
	"github.com/tsawler/dyspositif/mute"
	"github.com/tsawler/dyspositif/nlp"
	"github.com/tsawler/dyspositif/number"
	"github.com/tsawler/dyspositif/syllable"
)

// Stats summarizes one annotation pass
type Stats struct {
	Words     int
	Numbers   int
	Syllables int
	MuteWords int

	// Fallbacks counts words segmented by vowel/consonant alternation only
	Fallbacks int

	// Warnings lists non-fatal problems, such as a missing language model
	// when mute letters were not requested
	Warnings []string
}

// Annotator dispatches the tokens of a document to the annotators selected
// by the conversion options
type Annotator struct {
	models    *nlp.Holder
	segmenter *syllable.Segmenter
	detector  *mute.Detector
	splitter  *nlp.SentenceSplitter
	logger    *slog.Logger
}

// New creates an annotator. models supplies the language model; it is only
// required when mute letters are requested.
func New(models *nlp.Holder, logger *slog.Logger) *Annotator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Annotator{
		models:    models,
		segmenter: syllable.New(),
		detector:  mute.New(),
		splitter:  nlp.NewSentenceSplitter(),
		logger:    logger,
	}
}

// Annotate enriches doc in place. Token text is never modified. opts must
// already be normalized.
func (a *Annotator) Annotate(ctx context.Context, doc *model.Document, opts model.ConversionOptions) (Stats, error) {
	var stats Stats
	if !opts.Any() {
		return stats, nil
	}

	var lm nlp.Model
	if a.models != nil {
		var err error
		lm, err = a.models.Get()
		if err != nil {
			if opts.MuteLetters {
				return stats, err
			}
			a.logger.Warn("language model unavailable", "error", err)
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("%v: mute-letter annotation skipped", err))
		}
	} else if opts.MuteLetters {
		return stats, nlp.ErrModelUnavailable
	}
	if lex, ok := lm.(*nlp.LexiconModel); ok {
		a.logger.Debug("language model ready", "lexicon_entries", lex.Size())
	}

	if opts.MuteLetters {
		if err := a.annotateMute(ctx, doc, lm, &stats); err != nil {
			return stats, err
		}
	}

	policy := opts.NumberPolicy()
	doc.EachToken(func(_ *model.Block, tok *model.Token) {
		switch tok.Kind {
		case model.TokenWord:
			stats.Words++
			if opts.Syllables {
				res := a.segmenter.Segment(tok.Text, tok.Mute)
				tok.Syllables = res.Syllables
				stats.Syllables += len(res.Syllables)
				if res.Fallback {
					stats.Fallbacks++
				}
			}
		case model.TokenNumber:
			stats.Numbers++
			if policy != model.NumberPolicyNone {
				tok.Digits = number.Colorize(tok.Text, policy)
			}
		}
	})

	a.logger.Debug("document annotated",
		"words", stats.Words,
		"numbers", stats.Numbers,
		"mute_words", stats.MuteWords,
		"fallbacks", stats.Fallbacks,
		"options", opts.String())

	return stats, nil
}

// annotateMute runs the language model once over every word of the
// document, then applies the mute-letter rules sentence by sentence
func (a *Annotator) annotateMute(ctx context.Context, doc *model.Document, lm nlp.Model, stats *Stats) error {
	var words []string
	doc.EachToken(func(_ *model.Block, tok *model.Token) {
		if tok.Kind == model.TokenWord {
			words = append(words, tok.Text)
		}
	})
	if len(words) == 0 {
		return nil
	}

	analyses, err := lm.Analyze(ctx, words)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	if len(analyses) != len(words) {
		return fmt.Errorf("analyze: got %d analyses for %d words", len(analyses), len(words))
	}

	next := 0
	for bi := range doc.Blocks {
		block := &doc.Blocks[bi]
		for _, sentence := range a.sentences(block) {
			sent := make([]mute.Word, len(sentence))
			for j, ti := range sentence {
				tok := &block.Tokens[ti]
				if tok.Kind == model.TokenNumber {
					sent[j] = mute.Word{Text: tok.Text, Lemma: tok.Text, POS: nlp.Numeral}
					continue
				}
				an := analyses[next]
				next++
				sent[j] = mute.Word{Text: tok.Text, Lemma: an.Lemma, POS: an.POS}
			}

			for j, ti := range sentence {
				tok := &block.Tokens[ti]
				if tok.Kind != model.TokenWord {
					continue
				}
				tok.Mute = a.detector.Detect(sent, j)
				if len(tok.Mute) > 0 {
					stats.MuteWords++
				}
			}
		}
	}
	return nil
}

// sentences groups the word and number tokens of a block by sentence and
// returns their token indices
func (a *Annotator) sentences(block *model.Block) [][]int {
	spans := a.splitter.Split(block.Text())

	var out [][]int
	var current []int
	span := 0
	offset := 0
	for i, tok := range block.Tokens {
		for span < len(spans)-1 && offset >= spans[span].End {
			if len(current) > 0 {
				out = append(out, current)
				current = nil
			}
			span++
		}
		if tok.Kind == model.TokenWord || tok.Kind == model.TokenNumber {
			current = append(current, i)
		}
		offset += len(tok.Text)
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

package nlp

import (
	"context"
	"errors"
	"sync"
)

// ErrModelUnavailable is returned when the language model cannot be loaded
var ErrModelUnavailable = errors.New("language model unavailable")

// POS is a universal part-of-speech tag
type POS string

// Part-of-speech tags
const (
	Noun        POS = "NOUN"
	ProperNoun  POS = "PROPN"
	Verb        POS = "VERB"
	Auxiliary   POS = "AUX"
	Adjective   POS = "ADJ"
	Adverb      POS = "ADV"
	Pronoun     POS = "PRON"
	Determiner  POS = "DET"
	Adposition  POS = "ADP"
	Conjunction POS = "CCONJ"
	Numeral     POS = "NUM"
	Particle    POS = "PART"
	Other       POS = "X"
)

// IsValid reports whether p is one of the known tags
func (p POS) IsValid() bool {
	switch p {
	case Noun, ProperNoun, Verb, Auxiliary, Adjective, Adverb, Pronoun,
		Determiner, Adposition, Conjunction, Numeral, Particle, Other:
		return true
	}
	return false
}

// Analysis holds the features of one word
type Analysis struct {
	Text  string
	Lemma string
	POS   POS
}

// Model analyzes a sequence of words. The result has one entry per input
// word, in the same order. Words are given in document order so a model
// may use neighbouring words as context.
type Model interface {
	Analyze(ctx context.Context, words []string) ([]Analysis, error)
}

// Holder owns a lazily loaded model. The loader runs at most once; its
// result, model or error, is returned to every caller.
type Holder struct {
	loader func() (Model, error)

	once  sync.Once
	model Model
	err   error
}

// NewHolder creates a holder that loads its model with loader on first use
func NewHolder(loader func() (Model, error)) *Holder {
	return &Holder{loader: loader}
}

// Static returns a holder around an already loaded model
func Static(m Model) *Holder {
	return NewHolder(func() (Model, error) { return m, nil })
}

// Get returns the model, loading it if needed
func (h *Holder) Get() (Model, error) {
	h.once.Do(func() {
		if h.loader == nil {
			h.err = ErrModelUnavailable
			return
		}
		m, err := h.loader()
		switch {
		case err != nil:
			h.err = errors.Join(ErrModelUnavailable, err)
		case m == nil:
			h.err = ErrModelUnavailable
		default:
			h.model = m
		}
	})
	return h.model, h.err
}

// serialized guards a model that is not safe for concurrent use
type serialized struct {
	mu    sync.Mutex
	model Model
}

// Serialized wraps m so that calls to Analyze never overlap
func Serialized(m Model) Model {
	return &serialized{model: m}
}

func (s *serialized) Analyze(ctx context.Context, words []string) ([]Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Analyze(ctx, words)
}

// Package nlp provides the word-level linguistic features used by the
// annotators: a lemma and a part-of-speech tag for every word.
//
// Model is the boundary. The built-in LexiconModel tags French text from an
// embedded lexicon of closed-class words and irregular forms, with suffix
// heuristics for open-class words. Any other tagger can be plugged in by
// implementing Model.
//
// Models are shared through a Holder, which loads the model once on first
// use:
//
//	holder := nlp.NewHolder(nlp.LoadLexicon)
//	m, err := holder.Get()
//	if err != nil {
//	    // errors.Is(err, nlp.ErrModelUnavailable)
//	}
//	analyses, err := m.Analyze(ctx, []string{"Les", "chats", "mangent"})
//
// SentenceSplitter cuts running text into sentences, which bounds the
// context used by mute-letter rules.
package nlp

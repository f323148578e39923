package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/data"
)

// frenchTraining is the neurosnap training set for French
const frenchTraining = "data/french.json"

// Span is a sentence as byte offsets [Start, End) into the split text
type Span struct {
	Start int
	End   int
}

// SentenceSplitter cuts text into sentences
type SentenceSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSentenceSplitter creates a splitter trained on French. When the
// training data cannot be loaded it falls back to punctuation rules.
func NewSentenceSplitter() *SentenceSplitter {
	b, err := data.Asset(frenchTraining)
	if err != nil {
		return &SentenceSplitter{}
	}
	training, err := sentences.LoadTraining(b)
	if err != nil {
		return &SentenceSplitter{}
	}
	return &SentenceSplitter{tokenizer: sentences.NewSentenceTokenizer(training)}
}

// Trained reports whether the splitter uses the trained tokenizer
func (s *SentenceSplitter) Trained() bool {
	return s.tokenizer != nil
}

// Split returns the sentences of text, covering it end to end
func (s *SentenceSplitter) Split(text string) []Span {
	if text == "" {
		return nil
	}

	var spans []Span
	if s.tokenizer != nil {
		spans = s.trainedSpans(text)
	}
	if len(spans) == 0 {
		spans = punctuationSpans(text)
	}
	return spans
}

// trainedSpans converts tokenizer output into contiguous spans
func (s *SentenceSplitter) trainedSpans(text string) []Span {
	var spans []Span
	start := 0
	for _, sent := range s.tokenizer.Tokenize(text) {
		end := sent.End
		if end <= start || end > len(text) {
			continue
		}
		spans = append(spans, Span{Start: start, End: end})
		start = end
	}
	if start < len(text) {
		if len(spans) > 0 && strings.TrimSpace(text[start:]) == "" {
			spans[len(spans)-1].End = len(text)
		} else {
			spans = append(spans, Span{Start: start, End: len(text)})
		}
	}
	return spans
}

// punctuationSpans splits after . ! ? or … followed by whitespace and an
// uppercase letter, skipping common French abbreviations
func punctuationSpans(text string) []Span {
	var spans []Span
	start := 0
	for i, r := range text {
		if !isSentenceEnd(text, i, r) {
			continue
		}
		end := i + utf8.RuneLen(r)
		spans = append(spans, Span{Start: start, End: end})
		start = end
	}
	if start < len(text) {
		if len(spans) > 0 && strings.TrimSpace(text[start:]) == "" {
			spans[len(spans)-1].End = len(text)
		} else {
			spans = append(spans, Span{Start: start, End: len(text)})
		}
	}
	return spans
}

// isSentenceEnd checks if the rune r at byte offset i ends a sentence
func isSentenceEnd(text string, i int, r rune) bool {
	if r != '.' && r != '!' && r != '?' && r != '…' {
		return false
	}

	if r == '.' && isAbbreviation(text, i) {
		return false
	}

	rest := text[i+utf8.RuneLen(r):]
	if rest == "" {
		return false
	}

	next, size := utf8.DecodeRuneInString(rest)
	if !unicode.IsSpace(next) {
		return false
	}

	// Sentence end if followed by a capital letter, a quote or a dash
	following := strings.TrimLeftFunc(rest[size:], unicode.IsSpace)
	first, _ := utf8.DecodeRuneInString(following)
	return unicode.IsUpper(first) || first == '«' || first == '"' || first == '—' || unicode.IsDigit(first)
}

// frenchAbbreviations end with a period that does not close a sentence
var frenchAbbreviations = map[string]bool{
	"m": true, "mm": true, "mme": true, "mmes": true, "mlle": true,
	"dr": true, "pr": true, "me": true, "st": true, "ste": true,
	"etc": true, "cf": true, "ex": true, "p": true, "pp": true,
	"env": true, "av": true, "apr": true, "vol": true, "chap": true,
	"fig": true, "n°": true, "no": true, "tél": true, "art": true,
}

// isAbbreviation checks if the period at byte offset i follows an abbreviation
func isAbbreviation(text string, i int) bool {
	start := i
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !unicode.IsLetter(r) && r != '°' {
			break
		}
		start -= size
	}
	if start >= i {
		return false
	}
	return frenchAbbreviations[strings.ToLower(text[start:i])]
}

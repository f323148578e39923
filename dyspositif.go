// Package dyspositif converts French PDF documents into reflowable HTML
// adapted for readers with dyslexia and dyscalculia.
//
// Basic usage:
//
//	res, err := dyspositif.Open("cours.pdf").
//	    Syllables().
//	    MuteLetters().
//	    Convert(ctx, "out")
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println("written to", res.HTMLPath)
//
// Every annotation is opt-in, so with no option the output is the reflowed
// text without any annotation markup. For finer control use the pipeline
// package directly.
package dyspositif

import "github.com/tsawler/dyspositif/nlp"

// defaultModels is the built-in French lexicon, loaded on first use and
// shared by every Converter.
var defaultModels = nlp.NewHolder(nlp.LoadLexicon)

// Open returns a Converter for filename. The file is read by Convert,
// Text or Document.
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// Must panics if err is non-nil and returns val otherwise.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

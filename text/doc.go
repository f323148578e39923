// Package text provides the text primitives shared by extraction and reflow.
//
// # Fragments
//
// A [TextFragment] is a positioned run of text on a page. PDF readers often
// report one fragment per glyph; [MergeGlyphs] joins glyphs that sit on the
// same baseline into word-level runs:
//
//	runs := text.MergeGlyphs(glyphs)
//
// # Normalization
//
// [Normalize] cleans up extracted text before it is tokenized:
//
//   - NFC composition (é as one rune)
//   - private-use checkbox glyphs mapped to ☐ and ☑
//   - bullet variants mapped to •
//   - mathematical letters and ligatures folded with NFKC
//   - runs of whitespace collapsed to a single space
//
// [JoinLines] joins two lines of the same paragraph, removing an end-of-line
// hyphenation.
//
// # Tokenization
//
// [Tokenize] splits a paragraph into [model.Token] values: words, numbers,
// punctuation and whitespace. Concatenating the token texts always gives
// back the input.
package text

// Package model provides the intermediate representation shared by every
// stage of a conversion.
//
// A [Document] is built once per conversion from the extracted PDF, is
// enriched in place by the annotators and is consumed once by the HTML
// builder:
//
//	doc := model.NewDocument("rapport.pdf")
//	doc.AddBlock(model.Block{Kind: model.BlockParagraph, Tokens: tokens})
//
// # Tokens
//
// Each [Block] holds an ordered list of [Token] values. A token is a tagged
// variant: its [TokenKind] decides which annotation fields are meaningful.
//
//   - [TokenWord] may carry [Syllable] spans and a [MuteMask]
//   - [TokenNumber] may carry [DigitColors]
//   - [TokenPunctuation] and [TokenWhitespace] carry no annotation
//
// Annotators never change Token.Text; they only attach annotations.
//
// # Options
//
// [ConversionOptions] is a value object. Call [ConversionOptions.Normalize]
// once at pipeline entry to apply the multicolor precedence rule.
package model

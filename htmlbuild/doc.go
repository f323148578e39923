// Package htmlbuild renders an annotated document as an HTML page and its
// companion stylesheet.
//
// The page is built as a golang.org/x/net/html node tree and rendered in
// one pass. Annotations become span elements with class names only; every
// color lives in the stylesheet, so the page stays readable as plain text
// when style.css is missing.
//
// Class names:
//
//	syl-0, syl-1     alternating syllables of a word
//	syl-N mute       a silent trailing syllable
//	mute             a silent letter inside a syllable or word
//	num-pos-K        digit at place value K (0 units, 1 tens, 2 hundreds)
//	num-multi-K      digit K of the seven-color cycle
//	page-break       separator between source pages
package htmlbuild

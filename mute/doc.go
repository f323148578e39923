// Package mute finds the letters of a French word that are written but not
// pronounced.
//
// Rules are lexical and driven by part of speech. They run in a fixed
// order and the first rule that decides a suffix wins, so a verb ending is
// never also treated as a plural:
//
//  1. special words (croc, clef, cerf, bœufs...)
//  2. initial h (the word then continues through the other rules)
//  3. -ent and -aient verb endings
//  4. tous, unless used as a pronoun
//  5. plus, in negations and comparatives
//  6. terminal s, unless the lemma itself ends in s
//  7. final d, b, g, p, t, x and e after i, é or u
//
// The result is a model.MuteMask of rune indices into the original word.
package mute

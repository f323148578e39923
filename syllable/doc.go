// Package syllable splits French words into written syllables.
//
// Segmentation works on letter units: consonant digraphs such as "ch" or
// "qu" count as one consonant and are never split. Vowel runs form the
// nucleus of a syllable, and the consonants between two nuclei are shared
// with the open-syllable preference of French ("ta-ble", "par-tir").
//
//	seg := syllable.New()
//	res := seg.Segment("chats", model.NewMuteMask(3, 4))
//	// res.Syllables: "cha", "ts" (silent)
//
// The concatenation of the returned syllables always equals the input word.
// Words containing letters outside the French alphabet are cut with a plain
// vowel/consonant alternation and reported with Fallback set.
package syllable

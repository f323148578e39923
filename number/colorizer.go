// Package number assigns color classes to the digits of numbers.
//
// Two policies exist. Positional colors a digit by its place value within
// its run of digits (units, tens, hundreds, then again), so "1 234" reads as
// thousands/hundreds/tens/units. Multicolor gives each digit of a run the
// next color of a seven-color cycle. Signs and separators stay uncolored.
package number

import (
	"unicode"

	"github.com/tsawler/dyspositif/model"
)

const (
	// PositionalClasses is the number of place-value classes
	PositionalClasses = 3

	// MulticolorClasses is the length of the multicolor cycle
	MulticolorClasses = 7
)

// Colorize returns the class of every rune of text under policy. It
// returns nil for NumberPolicyNone.
func Colorize(text string, policy model.NumberPolicy) *model.DigitColors {
	if policy == model.NumberPolicyNone {
		return nil
	}

	runes := []rune(text)
	classes := make([]int, len(runes))
	for i := range classes {
		classes[i] = model.Uncolored
	}

	for start := 0; start < len(runes); {
		if !unicode.IsDigit(runes[start]) {
			start++
			continue
		}
		end := start
		for end < len(runes) && unicode.IsDigit(runes[end]) {
			end++
		}

		for i := start; i < end; i++ {
			switch policy {
			case model.NumberPolicyPositional:
				classes[i] = (end - 1 - i) % PositionalClasses
			case model.NumberPolicyMulticolor:
				classes[i] = (i - start) % MulticolorClasses
			}
		}
		start = end
	}

	return &model.DigitColors{Policy: policy, Classes: classes}
}

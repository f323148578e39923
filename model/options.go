package model

import "strings"

// ConversionOptions selects which annotations a conversion applies.
//
// NumbersPosition and NumbersMulticolor are mutually exclusive. When both
// are set, NumbersMulticolor wins; Normalize applies that rule.
type ConversionOptions struct {
	Syllables         bool `yaml:"syllables"`
	MuteLetters       bool `yaml:"mute_letters"`
	NumbersPosition   bool `yaml:"numbers_position"`
	NumbersMulticolor bool `yaml:"numbers_multicolor"`
}

// Normalize returns a copy with the multicolor precedence rule applied
func (o ConversionOptions) Normalize() ConversionOptions {
	if o.NumbersMulticolor {
		o.NumbersPosition = false
	}
	return o
}

// NumberPolicy returns the digit coloring policy the options select
func (o ConversionOptions) NumberPolicy() NumberPolicy {
	switch {
	case o.NumbersMulticolor:
		return NumberPolicyMulticolor
	case o.NumbersPosition:
		return NumberPolicyPositional
	default:
		return NumberPolicyNone
	}
}

// Any returns true if at least one annotation is enabled
func (o ConversionOptions) Any() bool {
	return o.Syllables || o.MuteLetters || o.NumbersPosition || o.NumbersMulticolor
}

// String lists the enabled options, or "none"
func (o ConversionOptions) String() string {
	var parts []string
	if o.Syllables {
		parts = append(parts, "syllables")
	}
	if o.MuteLetters {
		parts = append(parts, "mute_letters")
	}
	if o.NumbersPosition {
		parts = append(parts, "numbers_position")
	}
	if o.NumbersMulticolor {
		parts = append(parts, "numbers_multicolor")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

package aozora

import "unicode"

// property is a code point's vertical-orientation class, derived from
// UTR#50 (https://unicode.org/reports/tr50/) with a handful of
// application-specific overrides. The table is an approximation: UTR#50
// itself lists orientation per code point, not per range, but the
// ranges below cover the scripts this engine actually sees.
type property int

const (
	propR  property = iota // rotate: set horizontally, as in the original text
	propTr                  // transitional-rotate: rotates unless isolated
	propTu                  // transitional-upright: upright unless part of a rotated run
	propU                   // upright: always set upright in vertical text
)

// trOverrides and tuOverrides hold the small set of punctuation code points that need an
// explicit override rather than falling out of the range table below.
var trOverrides = map[rune]bool{
	0x2010: true, // HYPHEN
	0x2011: true, // NON-BREAKING HYPHEN
	0x2012: true, // FIGURE DASH
	0x2013: true, // EN DASH
	0x2014: true, // EM DASH
	0x2025: true, // TWO DOT LEADER
}

var tuOverrides = map[rune]bool{
	'%':    true,
	0x2030: true, // PER MILLE SIGN
	0x00B0: true, // DEGREE SIGN
	0x2032: true, // PRIME
	0x2033: true, // DOUBLE PRIME
	0x2103: true, // DEGREE CELSIUS
}

// upright code points: CJK scripts and the punctuation conventionally
// drawn upright in Japanese vertical text.
func isUprightRange(r rune) bool {
	switch {
	case unicode.Is(unicode.Han, r):
		return true
	case unicode.Is(unicode.Hiragana, r):
		return true
	case unicode.Is(unicode.Katakana, r):
		return true
	case unicode.Is(unicode.Hangul, r):
		return true
	case r >= 0x3000 && r <= 0x303F: // CJK symbols and punctuation
		return true
	case r >= 0xFF01 && r <= 0xFF60: // fullwidth forms
		return true
	case r >= 0xFFE0 && r <= 0xFFE6: // fullwidth signs
		return true
	case r >= 0x3008 && r <= 0x3011: // CJK brackets
		return true
	}
	return false
}

// getProperty classifies a single code point. \n is classified R, same
// as the original implementation: it never reaches the state machine
// through the R branch because callers special-case it, and treating
// it as R rather than U keeps it out of the Tu/U closing branch too.
func getProperty(r rune) property {
	if trOverrides[r] {
		return propTr
	}
	if tuOverrides[r] {
		return propTu
	}
	if isUprightRange(r) {
		return propU
	}
	return propR
}

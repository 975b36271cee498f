/*
Package linebreak implements the greedy line-breaking algorithm: given a
shaped run and a write cursor, decide how many glyphs fit on the current
line, honoring Japanese kinsoku-shori (forbidden line-boundary
characters). No Knuth–Plass optimization is attempted; every line is
filled as far as it will go before kinsoku nudges the boundary by at
most one glyph.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package linebreak

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tategumi/engine/glyphing"
)

func tracer() tracing.Trace {
	return gtrace.Select("tategumi.linebreak")
}

// KinsokuChecker reports a font's forbidden line-boundary glyphs.
// *github.com/npillmayer/tategumi/core/font.Font satisfies this.
type KinsokuChecker interface {
	IsForbiddenFirst(glyphID uint32) bool
	IsForbiddenLast(glyphID uint32) bool
}

// LineState drives the paragraph-flow state machine (component H). The
// breaker itself only ever returns SoftLineBreak, HardLineBreak or
// EndOfString; the remaining states (ContinueLine, NewLine, EndOfColumn,
// TooShortLine) are produced by the flow layer around it.
type LineState int

const (
	ContinueLine LineState = iota
	NewLine
	SoftLineBreak
	HardLineBreak
	EndOfColumn
	EndOfString
	TooShortLine
)

func (s LineState) String() string {
	switch s {
	case ContinueLine:
		return "continue-line"
	case NewLine:
		return "new-line"
	case SoftLineBreak:
		return "soft-line-break"
	case HardLineBreak:
		return "hard-line-break"
	case EndOfColumn:
		return "end-of-column"
	case EndOfString:
		return "end-of-string"
	case TooShortLine:
		return "too-short-line"
	}
	return "undefined"
}

// MaxAdvance converts a line rect's progression extent (in device
// points) into the 26.6 fixed-point budget the breaker compares glyph
// advances against.
func MaxAdvance(rectExtent float64, fontSize float64) int32 {
	return int32(rectExtent * 64.0 / fontSize)
}

// Break decides how many of run's glyphs starting at written fit within
// maxAdvance (in 26.6 units), applying kinsoku adjustment to the
// boundary. It returns the glyph count to consume and the resulting
// LineState.
//
// A glyph id of 0 marks a hard line break (as produced by shaping '\n'):
// scanning stops there, the glyph is consumed but never painted.
func Break(run glyphing.ShapedRun, written int, maxAdvance int32, f KinsokuChecker) (num int, state LineState) {
	glyphLength := run.Len() - written
	if glyphLength <= 0 {
		return 0, EndOfString
	}

	state = SoftLineBreak
	var total int32
	for num = 0; num < glyphLength; num++ {
		g := written + num
		if run.GlyphID[g] == 0 {
			state = HardLineBreak
			break
		}
		advance := run.Advance[g]
		if advance < 0 {
			advance = -advance
		}
		tmp := total + advance
		if tmp > maxAdvance {
			break
		}
		total = tmp
	}

	if state == SoftLineBreak && num > 1 {
		num = kinsokuAdjust(run, written, num, glyphLength, f)
	}

	if num == 0 {
		if glyphLength == 0 {
			return 0, EndOfString
		}
		tracer().Debugf("linebreak: zero-width line at written=%d, state=%v", written, state)
		return 0, state
	}

	return num, state
}

// kinsokuAdjust pushes a forbidden-last glyph (an opening bracket) down
// to the next line, or pulls a forbidden-first glyph (closing
// punctuation) up onto this line, allowing a one-glyph overflow.
func kinsokuAdjust(run glyphing.ShapedRun, written, num, glyphLength int, f KinsokuChecker) int {
	last := run.GlyphID[written+num-1]
	if f.IsForbiddenLast(last) {
		return num - 1
	}
	if num < glyphLength && f.IsForbiddenFirst(run.GlyphID[written+num]) {
		return num + 1
	}
	return num
}

// DataLength returns the byte span [cluster[written], cluster[written+num])
// a Break result covers, for slicing the original text or carrying ruby
// splits. When state is HardLineBreak, the consumed terminator glyph is
// included in the span.
func DataLength(run glyphing.ShapedRun, written, num int, state LineState) int {
	start := run.Cluster[written]
	end := written + num
	if state == HardLineBreak {
		end++
	}
	if end >= len(run.Cluster) {
		end = len(run.Cluster) - 1
	}
	return run.Cluster[end] - start
}

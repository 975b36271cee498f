/*
Package paint draws one shaped line at a time onto a backend/sink.Surface:
glyph placement along a column's vertical axis, rotated placement for
horizontal-in-vertical runs, ruby overlay (including carrying a ruby
split across a line boundary) and emphasis-dot overlay.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package paint

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tategumi/aozora"
	"github.com/npillmayer/tategumi/backend/sink"
	"github.com/npillmayer/tategumi/core/font"
	"github.com/npillmayer/tategumi/core/geom"
	"github.com/npillmayer/tategumi/engine/glyphing"
	"github.com/npillmayer/tategumi/engine/glyphing/harfbuzz"
	"github.com/npillmayer/tategumi/engine/linebreak"
)

func tracer() tracing.Trace {
	return gtrace.Select("tategumi.paint")
}

// emphasisLiteral is the single dot drawn once per emphasized base
// character (傍点, "sideline dots").
const emphasisLiteral = "丶"

// RubyCursor walks a document's ruby spans in byte-offset order as
// lines are painted, carrying a ruby split across a line boundary.
type RubyCursor struct {
	spans   []aozora.RubySpan
	idx     int
	inRuby  bool
	pending string
	rectPt  geom.Point
}

// NewRubyCursor starts a cursor over spans, in ascending Range order.
func NewRubyCursor(spans []aozora.RubySpan) *RubyCursor {
	return &RubyCursor{spans: spans}
}

func (c *RubyCursor) current() (aozora.RubySpan, bool) {
	if c.idx >= len(c.spans) {
		return aozora.RubySpan{}, false
	}
	return c.spans[c.idx], true
}

func (c *RubyCursor) text(span aozora.RubySpan) string {
	if c.pending != "" {
		return c.pending
	}
	return span.Text
}

// EmphasisCursor walks a document's emphasis spans in byte-offset
// order, independent of RubyCursor.
type EmphasisCursor struct {
	spans []aozora.EmphasisSpan
	idx   int
}

// NewEmphasisCursor starts a cursor over spans, in ascending Range order.
func NewEmphasisCursor(spans []aozora.EmphasisSpan) *EmphasisCursor {
	return &EmphasisCursor{spans: spans}
}

func (c *EmphasisCursor) current() (aozora.EmphasisSpan, bool) {
	if c.idx >= len(c.spans) {
		return aozora.EmphasisSpan{}, false
	}
	return c.spans[c.idx], true
}

// LineResult reports what PaintLine consumed and where the write
// cursor left off, for the paragraph-flow loop to act on.
type LineResult struct {
	NumGlyphs  int
	State      linebreak.LineState
	DataLength int
	Delta      geom.Point
}

// lineOrigin places the first glyph's baseline: centered in the line
// rect for a true-vertical run, flush to the line rect's trailing edge
// (ready for quarter-turn rotation) for a horizontal-in-vertical run.
func lineOrigin(rect geom.Rect, size float64, vertical bool) geom.Point {
	if vertical {
		return geom.Point{X: rect.End.X - geom.PT(size/2), Y: rect.Start.Y}
	}
	return geom.Point{X: rect.End.X, Y: rect.Start.Y}
}

// PaintLine breaks and paints one line starting at written, within
// rect. text is the byte slice that was shaped into run (so run's
// cluster offsets index it directly); documentOffset is text's
// absolute byte offset within the parsed document, used to compare
// against ruby/emphasis spans (whose ranges are absolute).
func PaintLine(
	surf sink.Surface,
	bodyFont *font.Font,
	rubyFont *font.Font,
	vertical bool,
	rect geom.Rect,
	text []byte,
	run glyphing.ShapedRun,
	written int,
	documentOffset int,
	rubies *RubyCursor,
	ems *EmphasisCursor,
) (LineResult, error) {
	if written >= run.Len() {
		return LineResult{State: linebreak.EndOfString}, nil
	}
	maxAdvance := linebreak.MaxAdvance(float64(rect.Height()), bodyFont.Size)
	num, state := linebreak.Break(run, written, maxAdvance, bodyFont)
	if num == 0 {
		return LineResult{State: state}, nil
	}
	dataLength := linebreak.DataLength(run, written, num, state)
	tmpDataOffset := documentOffset + run.Cluster[written] + dataLength

	origin := lineOrigin(rect, bodyFont.Size, vertical)
	previous := origin

	var rubyRect geom.Rect
	for i := 0; i < num; i++ {
		g := written + i
		absCluster := documentOffset + run.Cluster[g]
		glyphText := string(text[run.Cluster[g]:run.Cluster[g+1]])

		if span, ok := rubies.current(); ok && span.Range.Start < tmpDataOffset && rubies.inRuby {
			if span.Range.End <= absCluster {
				rubyRect.End = geom.Point{X: rect.End.X + geom.PT(rubyFont.Size), Y: origin.Y}
				if _, err := printRuby(surf, rubyFont, rubyRect, rubies.text(span), 0); err != nil {
					return LineResult{}, err
				}
				rubies.idx++
				rubies.inRuby = false
				rubies.pending = ""
			}
		}
		if span, ok := rubies.current(); ok && span.Range.Start < tmpDataOffset && !rubies.inRuby {
			if span.Range.Start <= absCluster {
				rubyRect.Start = geom.Point{X: rect.End.X, Y: origin.Y}
				rubies.inRuby = true
			}
		}

		for {
			em, ok := ems.current()
			if !ok || em.Range.End > absCluster {
				break
			}
			ems.idx++
		}

		advPt := float64(run.Advance[g]) * bodyFont.Size / 64.0
		if em, ok := ems.current(); ok && em.Range.Start <= absCluster && absCluster < em.Range.End {
			emRect := geom.NewRect(geom.Point{X: rect.End.X, Y: origin.Y}, geom.PT(rubyFont.Size), geom.PT(advPt))
			if _, err := printRuby(surf, rubyFont, emRect, emphasisLiteral, 0); err != nil {
				return LineResult{}, err
			}
		}

		if err := surf.DrawGlyph(sink.Glyph{
			Text: glyphText, X: float64(origin.X), Y: float64(origin.Y),
			FontFamily: bodyFont.Family, FontSize: bodyFont.Size,
			Rotate: !vertical, RotateOriginDelta: bodyFont.HorizontalOriginY,
		}); err != nil {
			return LineResult{}, err
		}

		if vertical {
			origin.Y -= geom.PT(advPt)
		} else {
			origin.Y += geom.PT(advPt)
		}
	}

	if rubies.inRuby {
		if err := carryRubySplit(surf, rubyFont, rect, origin, tmpDataOffset, rubies); err != nil {
			return LineResult{}, err
		}
	}

	delta := geom.Point{X: origin.X - previous.X, Y: origin.Y - previous.Y}
	tracer().Debugf("paint: line wrote %d glyphs, state=%v", num, state)
	return LineResult{NumGlyphs: num, State: state, DataLength: dataLength, Delta: delta}, nil
}

// carryRubySplit handles a ruby span that starts within this line but
// extends past it: the drawn prefix is proportional to the bytes
// already consumed, and the remainder is carried to the next line.
func carryRubySplit(surf sink.Surface, rubyFont *font.Font, rect geom.Rect, origin geom.Point, tmpDataOffset int, rubies *RubyCursor) error {
	span, ok := rubies.current()
	if !ok {
		return nil
	}
	text := rubies.text(span)
	dev := tmpDataOffset != span.Range.End
	ratio := 0.0
	length := span.Range.Len()
	if dev && length > 0 {
		left := span.Range.End - tmpDataOffset
		ratio = float64(left) / float64(length)
	}
	rubyRect := geom.Rect{
		Start: geom.Point{X: rect.End.X, Y: origin.Y},
		End:   geom.Point{X: rect.End.X + geom.PT(rubyFont.Size), Y: origin.Y},
	}
	drawn, err := printRuby(surf, rubyFont, rubyRect, text, ratio)
	if err != nil {
		return err
	}
	if dev {
		if drawn < len(text) {
			rubies.pending = text[drawn:]
		}
	} else {
		rubies.idx++
		rubies.inRuby = false
		rubies.pending = ""
	}
	return nil
}

// printRuby shapes text as a short top-to-bottom "ja" run and paints it
// centered (overflow) or padded (underflow) to fill rect's progression
// extent. The shaping buffer's script is not set to Katakana; only the
// direction and language are passed to the shaper. It returns the
// number of bytes of text actually drawn, used by carryRubySplit to
// trim the carried remainder.
//
// ratio > 0 truncates the shaped run to its leading (1-ratio) fraction
// before drawing, as carryRubySplit does for the part of a ruby that
// ends a line while its base continues onto the next one.
func printRuby(surf sink.Surface, rubyFont *font.Font, rect geom.Rect, text string, ratio float64) (int, error) {
	sentinel := append([]byte(text), 0)
	run, err := harfbuzz.Shape(sentinel, glyphing.TopToBottom, "ja", rubyFont.ShapingFace)
	if err != nil {
		return 0, err
	}
	wholeLength := run.Len()
	length := wholeLength
	if ratio > 0 && wholeLength > 1 {
		length = int(float64(wholeLength) * (1.0 - ratio))
	}

	maxAdvance := linebreak.MaxAdvance(float64(rect.Height()), rubyFont.Size)
	var total int32
	num := 0
	for ; num < length; num++ {
		if run.GlyphID[num] == 0 {
			break
		}
		total += -run.Advance[num]
	}
	if num == 0 {
		return 0, nil
	}

	dataLength := run.Cluster[num]
	if wholeLength == num {
		dataLength = len(text)
	}

	origin := geom.Point{X: rect.End.X - geom.PT(rubyFont.Size/2), Y: rect.Start.Y}
	pad := 0.0
	if total > maxAdvance {
		origin.Y += geom.PT(float64(maxAdvance-total) * rubyFont.Size / (64.0 * 2.0))
		if origin.Y < 0 {
			origin.Y = 0
		}
	} else {
		pad = float64(maxAdvance-total) * rubyFont.Size / (64.0 * float64(num*2))
		origin.Y += geom.PT(pad)
		pad *= 2
	}

	for i := 0; i < num; i++ {
		glyphText := text[run.Cluster[i]:run.Cluster[i+1]]
		if err := surf.DrawGlyph(sink.Glyph{
			Text: glyphText, X: float64(origin.X), Y: float64(origin.Y),
			FontFamily: rubyFont.Family, FontSize: rubyFont.Size,
		}); err != nil {
			return 0, err
		}
		step := float64(-run.Advance[i]) * rubyFont.Size / 64.0
		origin.Y += geom.PT(step + pad)
	}
	return dataLength, nil
}

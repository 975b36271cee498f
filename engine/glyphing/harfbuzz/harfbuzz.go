/*
Package harfbuzz uses HarfBuzz to convert text to sequences of glyphs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"unicode/utf8"

	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tategumi/core"
	"github.com/npillmayer/tategumi/engine/glyphing"
)

// tracer traces with key 'tategumi.glyphing'.
func tracer() tracing.Trace {
	return gtrace.Select("tategumi.glyphing")
}

func direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// Shape calls the HarfBuzz shaper on textWithSentinel, which must carry
// a trailing sentinel code point (the caller drops it from the parent
// document but needs it present here to learn the true end-of-text
// cluster). lang is a BCP-47-ish tag such as "ja" or "en". Only the
// direction and language are set on the shaping buffer; its script is
// left unset.
func Shape(textWithSentinel []byte, direction glyphing.Direction, lang string, shapingFace *hb.Font) (glyphing.ShapedRun, error) {
	if shapingFace == nil {
		return glyphing.ShapedRun{}, core.Error(core.EINVALID, "shaper: nil shaping face")
	}
	offsets := runeByteOffsets(textWithSentinel)
	runes := make([]rune, 0, len(offsets)-1)
	for _, off := range offsets[:len(offsets)-1] {
		r, _ := utf8.DecodeRune(textWithSentinel[off:])
		runes = append(runes, r)
	}

	buf := hb.NewBuffer()
	buf.Props = hb.SegmentProperties{
		Direction: direction4HB(direction),
		Language:  hblang.NewLanguage(lang),
	}
	buf.AddRunes(runes, 0, len(runes))
	buf.Shape(shapingFace, nil)

	full := len(buf.Info)
	if full == 0 {
		return glyphing.ShapedRun{Cluster: []int{0}}, nil
	}
	n := full - 1 // drop the sentinel's own glyph
	run := glyphing.ShapedRun{
		GlyphID: make([]uint32, n),
		Cluster: make([]int, n+1),
		Advance: make([]int32, n),
	}
	vertical := direction.Vertical()
	for i := 0; i < n; i++ {
		info := buf.Info[i]
		pos := buf.Pos[i]
		run.GlyphID[i] = uint32(info.Glyph)
		run.Cluster[i] = offsets[info.Cluster]
		if vertical {
			run.Advance[i] = int32(pos.YAdvance)
		} else {
			run.Advance[i] = int32(pos.XAdvance)
		}
	}
	run.Cluster[n] = offsets[buf.Info[n].Cluster]
	tracer().Debugf("shaped %d glyphs (%s, %s), end cluster at byte %d", n, direction, lang, run.Cluster[n])
	return run, nil
}

// runeByteOffsets maps each rune index in b (plus one sentinel past the
// end) to its byte offset.
func runeByteOffsets(b []byte) []int {
	offsets := make([]int, 0, len(b)+1)
	for i := 0; i < len(b); {
		offsets = append(offsets, i)
		_, sz := utf8.DecodeRune(b[i:])
		i += sz
	}
	offsets = append(offsets, len(b))
	return offsets
}

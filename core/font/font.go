/*
Package font opens a typeface and hands out the two independent face
handles the rest of the engine needs: one for HarfBuzz shaping, one
for render-side metrics. The two must stay independent because neither
library's face type is safe to share mutable state with the other.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"bytes"
	"encoding/binary"
	"os"
	"sort"
	"sync"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tategumi/core"
	"github.com/npillmayer/tategumi/core/font/locate"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

func tracer() tracing.Trace {
	return gtrace.Select("tategumi.font")
}

// Orientation is the writing mode a Font was opened for.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// the kinsoku literals shaped to derive forbidden glyph ids. Matches
// the character sets an Aozora-conformant renderer forbids at a line
// boundary: closing punctuation must not start a line, opening
// punctuation must not end one.
const (
	forbiddenFirstLiteral = "。、」』)）"
	forbiddenLastLiteral  = "「『(（"
)

// Font is a typeface opened at a given size and orientation, exposing
// two independent handles over the same font bytes: ShapingFace for
// HarfBuzz and RenderFace for render-side metrics.
type Font struct {
	Family string
	Size   float64
	Orient Orientation

	raw []byte

	ShapingFace *hb.Font
	RenderFace  *sfnt.Font

	// HorizontalOriginY aligns rotated Latin glyphs on the Japanese
	// baseline. Only meaningful when Orient == Horizontal.
	HorizontalOriginY float64

	forbiddenOnce  sync.Once
	forbiddenFirst []uint32
	forbiddenLast  []uint32
}

// New resolves family via the font-config collaborator, reads the
// font file once, and opens independent shaping and render handles
// over it.
func New(family string, size float64, orient Orientation) (*Font, error) {
	match, err := locate.Resolve(family)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(match.Path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file: %s", match.Path)
	}
	return newFromBytes(family, raw, size, orient)
}

func newFromBytes(family string, raw []byte, size float64, orient Orientation) (*Font, error) {
	hbFace, err := hbtt.Parse(bytes.NewReader(raw), true)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "shaping face cannot be parsed: %s", family)
	}
	shapingFace := hb.NewFont(hbFace)
	shapingFace.Ptem = size

	renderFace, err := sfnt.Parse(raw)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "render face cannot be parsed: %s", family)
	}

	f := &Font{
		Family:      family,
		Size:        size,
		Orient:      orient,
		raw:         raw,
		ShapingFace: shapingFace,
		RenderFace:  renderFace,
	}
	if orient == Horizontal {
		if y, err := horizontalOriginY(renderFace, size); err == nil {
			f.HorizontalOriginY = y
		} else {
			tracer().Infof("cannot determine horizontal origin for %s: %v", family, err)
		}
	}
	tracer().Infof("font %s loaded at %.2fpt, orient=%v", family, size, orient)
	return f, nil
}

// horizontalOriginY estimates the vertical midpoint of glyph 'M', used
// to align rotated Latin runs on the Japanese baseline.
func horizontalOriginY(sf *sfnt.Font, size float64) (float64, error) {
	var buf sfnt.Buffer
	idx, err := sf.GlyphIndex(&buf, 'M')
	if err != nil {
		return 0, err
	}
	if idx == 0 {
		return 0, core.Error(core.EMISSING, "font has no glyph for 'M'")
	}
	unitsPerEm := fixed.I(int(sf.UnitsPerEm()))
	bounds, _, err := sf.GlyphBounds(&buf, idx, unitsPerEm, xfont.HintingNone)
	if err != nil {
		return 0, err
	}
	mid := (bounds.Min.Y + bounds.Max.Y) / 2
	return float64(mid) / 64.0 / float64(sf.UnitsPerEm()) * size, nil
}

// IsForbiddenFirst reports whether glyphID must not open a line.
func (f *Font) IsForbiddenFirst(glyphID uint32) bool {
	f.ensureForbiddenSets()
	return sortedContains(f.forbiddenFirst, glyphID)
}

// IsForbiddenLast reports whether glyphID must not close a line.
func (f *Font) IsForbiddenLast(glyphID uint32) bool {
	f.ensureForbiddenSets()
	return sortedContains(f.forbiddenLast, glyphID)
}

func (f *Font) ensureForbiddenSets() {
	f.forbiddenOnce.Do(func() {
		f.forbiddenFirst = shapeGlyphIDs(f.ShapingFace, forbiddenFirstLiteral)
		f.forbiddenLast = shapeGlyphIDs(f.ShapingFace, forbiddenLastLiteral)
		tracer().Debugf("%s: %d forbidden-first, %d forbidden-last glyphs",
			f.Family, len(f.forbiddenFirst), len(f.forbiddenLast))
	})
}

// shapeGlyphIDs shapes literal under Katakana script, top-to-bottom
// direction and Japanese language, exactly as the forbidden glyph sets
// must be computed: by comparing glyph ids under this font's shaper,
// not by comparing code points.
func shapeGlyphIDs(shapingFace *hb.Font, literal string) []uint32 {
	buf := hb.NewBuffer()
	buf.Props = hb.SegmentProperties{
		Direction: hb.TopToBottom,
		Script:    katakanaScript,
		Language:  japaneseLanguage,
	}
	runes := []rune(literal)
	buf.AddRunes(runes, 0, len(runes))
	buf.Shape(shapingFace, nil)
	ids := make([]uint32, len(buf.Info))
	for i, info := range buf.Info {
		ids[i] = uint32(info.Glyph)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedContains(sorted []uint32, id uint32) bool {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= id })
	return i < len(sorted) && sorted[i] == id
}

var (
	katakanaScript   = iso15924Script("Kana")
	japaneseLanguage = hblang.NewLanguage("ja")
)

// iso15924Script converts a 4-letter ISO 15924 script tag (as used by
// golang.org/x/text/language.Script) to a HarfBuzz script tag.
func iso15924Script(tag string) hblang.Script {
	b := []byte(tag)
	b[0] = byte(unicode.ToLower(rune(b[0])))
	return hblang.Script(binary.BigEndian.Uint32(b))
}

// Bytes returns the raw font file data Font was opened from, for
// callers (such as an output backend) that need to embed the font
// itself rather than just shape or measure with it.
func (f *Font) Bytes() []byte {
	return f.raw
}

// Close releases both face handles in deterministic order: the
// shaping face first, then the render face.
func (f *Font) Close() {
	f.ShapingFace = nil
	f.RenderFace = nil
}

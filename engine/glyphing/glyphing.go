/*
Package glyphing defines the shaper adapter's input/output contract:
a writing Direction and the ShapedRun a shaper produces from a run of
UTF-8 text. The actual HarfBuzz-backed implementation lives in the
harfbuzz subpackage; this package stays free of any particular
shaper's types so paragraph flow and line breaking don't need to know
which shaper produced a ShapedRun.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

// Direction is the axis and sense glyphs advance along.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "ltr"
	case RightToLeft:
		return "rtl"
	case TopToBottom:
		return "ttb"
	case BottomToTop:
		return "btt"
	}
	return "direction(?)"
}

// Vertical reports whether d advances along the page's vertical axis.
func (d Direction) Vertical() bool {
	return d == TopToBottom || d == BottomToTop
}

// ShapedRun is the output of shaping a run of text: parallel glyph_id,
// cluster and advance arrays. Cluster carries one extra trailing
// sentinel entry (Cluster[len(GlyphID)]), the byte offset one past the
// last glyph's source text, so callers can compute a glyph's source
// byte span as Cluster[i+1]-Cluster[i] without a bounds check.
//
// Advance is the primary-axis advance in 26.6 fixed-point units, as
// returned by the shaper; callers normalize to device units by
// multiplying by size/64 at paint time.
type ShapedRun struct {
	GlyphID []uint32
	Cluster []int
	Advance []int32
}

// Len is the number of glyphs in the run.
func (r ShapedRun) Len() int {
	return len(r.GlyphID)
}

// ClusterEnd returns the byte offset one past glyph i's source bytes.
func (r ShapedRun) ClusterEnd(i int) int {
	return r.Cluster[i+1]
}

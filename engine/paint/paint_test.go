package paint_test

import (
	"bytes"
	"testing"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tategumi/aozora"
	"github.com/npillmayer/tategumi/backend/sink"
	fontpkg "github.com/npillmayer/tategumi/core/font"
	"github.com/npillmayer/tategumi/core/geom"
	"github.com/npillmayer/tategumi/engine/glyphing"
	"github.com/npillmayer/tategumi/engine/glyphing/harfbuzz"
	"github.com/npillmayer/tategumi/engine/linebreak"
	"github.com/npillmayer/tategumi/engine/paint"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

type fakeSurface struct {
	glyphs []sink.Glyph
}

func (f *fakeSurface) NewPage(w, h float64) error                  { return nil }
func (f *fakeSurface) RegisterFont(family string, raw []byte) error { return nil }
func (f *fakeSurface) DrawGlyph(g sink.Glyph) error                 { f.glyphs = append(f.glyphs, g); return nil }
func (f *fakeSurface) FinishPage() error                            { return nil }
func (f *fakeSurface) Close() error                                 { return nil }

// goRegularFont builds a *font.Font whose exported fields are enough
// to drive shaping and kinsoku lookups, without going through
// font.New's font-config resolution (which a hermetic test can't rely
// on) or core/font's unexported constructor.
func goRegularFont(t *testing.T, size float64) *fontpkg.Font {
	t.Helper()
	face, err := hbtt.Parse(bytes.NewReader(goregular.TTF), true)
	require.NoError(t, err)
	shapingFace := hb.NewFont(face)
	shapingFace.Ptem = size
	return &fontpkg.Font{Family: "Go Regular", Size: size, ShapingFace: shapingFace}
}

func TestPaintLineEndOfStringWhenNoGlyphsRemain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.paint")
	defer teardown()
	surf := &fakeSurface{}
	run := glyphing.ShapedRun{GlyphID: []uint32{}, Cluster: []int{0}, Advance: []int32{}}
	rubies := paint.NewRubyCursor(nil)
	ems := paint.NewEmphasisCursor(nil)
	rect := geom.NewRect(geom.Point{X: 0, Y: 0}, 20, 100)

	result, err := paint.PaintLine(surf, nil, nil, true, rect, []byte{}, run, 0, 0, rubies, ems)
	require.NoError(t, err)
	require.Equal(t, linebreak.EndOfString, result.State)
	require.Equal(t, 0, result.NumGlyphs)
	require.Empty(t, surf.glyphs)
}

func TestPaintLineDrawsEveryGlyphAndAdvancesDownward(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.paint")
	defer teardown()
	body := goRegularFont(t, 12)
	ruby := goRegularFont(t, 6)
	surf := &fakeSurface{}

	text := []byte("AB\x00")
	run, err := harfbuzz.Shape(text, glyphing.TopToBottom, "en", body.ShapingFace)
	require.NoError(t, err)

	rect := geom.NewRect(geom.Point{X: 0, Y: 0}, 20, 1000)
	rubies := paint.NewRubyCursor(nil)
	ems := paint.NewEmphasisCursor(nil)

	result, err := paint.PaintLine(surf, body, ruby, true, rect, text, run, 0, 0, rubies, ems)
	require.NoError(t, err)
	require.Equal(t, 2, result.NumGlyphs)
	require.Len(t, surf.glyphs, 2)
	require.Greater(t, result.Delta.Y, geom.PT(0), "vertical line should advance down the column")
}

func TestPaintLineOverlaysRubyWithinOneLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.paint")
	defer teardown()
	body := goRegularFont(t, 12)
	ruby := goRegularFont(t, 6)
	surf := &fakeSurface{}

	text := []byte("ABC\x00")
	run, err := harfbuzz.Shape(text, glyphing.TopToBottom, "en", body.ShapingFace)
	require.NoError(t, err)

	rect := geom.NewRect(geom.Point{X: 0, Y: 0}, 20, 1000)
	rubies := paint.NewRubyCursor([]aozora.RubySpan{{Range: aozora.Range{Start: 0, End: 2}, Text: "xy"}})
	ems := paint.NewEmphasisCursor(nil)

	result, err := paint.PaintLine(surf, body, ruby, true, rect, text, run, 0, 0, rubies, ems)
	require.NoError(t, err)
	require.Equal(t, 3, result.NumGlyphs)
	// 3 body glyphs plus at least 1 ruby glyph drawn for "xy".
	require.Greater(t, len(surf.glyphs), 3)
}

func TestRubyCursorConstructs(t *testing.T) {
	spans := []aozora.RubySpan{{Range: aozora.Range{Start: 0, End: 3}, Text: "かな"}}
	c := paint.NewRubyCursor(spans)
	require.NotNil(t, c)
}

func TestEmphasisCursorConstructs(t *testing.T) {
	spans := []aozora.EmphasisSpan{{Range: aozora.Range{Start: 0, End: 3}}}
	c := paint.NewEmphasisCursor(spans)
	require.NotNil(t, c)
}

package linebreak_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tategumi/engine/glyphing"
	"github.com/npillmayer/tategumi/engine/linebreak"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	first map[uint32]bool
	last  map[uint32]bool
}

func (f fakeChecker) IsForbiddenFirst(id uint32) bool { return f.first[id] }
func (f fakeChecker) IsForbiddenLast(id uint32) bool  { return f.last[id] }

var noKinsoku = fakeChecker{}

func runOf(ids []uint32, advances []int32) glyphing.ShapedRun {
	cluster := make([]int, len(ids)+1)
	for i := range ids {
		cluster[i] = i * 3 // arbitrary byte stride
	}
	cluster[len(ids)] = len(ids) * 3
	return glyphing.ShapedRun{GlyphID: ids, Cluster: cluster, Advance: advances}
}

func TestBreakFillsLineGreedily(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.linebreak")
	defer teardown()
	//
	run := runOf([]uint32{1, 2, 3, 4}, []int32{64, 64, 64, 64})
	num, state := linebreak.Break(run, 0, 192, noKinsoku)
	require.Equal(t, linebreak.SoftLineBreak, state)
	require.Equal(t, 3, num)
}

func TestBreakStopsAtHardBreakGlyph(t *testing.T) {
	run := runOf([]uint32{1, 0, 3}, []int32{64, 0, 64})
	num, state := linebreak.Break(run, 0, 1000, noKinsoku)
	require.Equal(t, linebreak.HardLineBreak, state)
	require.Equal(t, 1, num)
}

func TestBreakHardBreakAtCursorAdvancesPastIt(t *testing.T) {
	run := runOf([]uint32{0, 2, 3}, []int32{0, 64, 64})
	num, state := linebreak.Break(run, 0, 1000, noKinsoku)
	require.Equal(t, linebreak.HardLineBreak, state)
	require.Equal(t, 0, num)
}

func TestBreakEndOfStringWhenNoGlyphsRemain(t *testing.T) {
	run := runOf([]uint32{1, 2}, []int32{64, 64})
	num, state := linebreak.Break(run, 2, 1000, noKinsoku)
	require.Equal(t, linebreak.EndOfString, state)
	require.Equal(t, 0, num)
}

func TestBreakKinsokuPushesForbiddenOpenerDown(t *testing.T) {
	// glyph 5 is an opening bracket that must not end a line.
	run := runOf([]uint32{1, 2, 5, 6}, []int32{64, 64, 64, 64})
	checker := fakeChecker{last: map[uint32]bool{5: true}}
	num, state := linebreak.Break(run, 0, 192, checker)
	require.Equal(t, linebreak.SoftLineBreak, state)
	require.Equal(t, 2, num, "opening bracket glyph 5 must be pushed to next line")
}

func TestBreakKinsokuPullsForbiddenClosingPunctuationUp(t *testing.T) {
	// glyph 9 (closing punctuation) would start the next line; pull it up.
	run := runOf([]uint32{1, 2, 3, 9}, []int32{64, 64, 64, 64})
	checker := fakeChecker{first: map[uint32]bool{9: true}}
	num, state := linebreak.Break(run, 0, 192, checker)
	require.Equal(t, linebreak.SoftLineBreak, state)
	require.Equal(t, 4, num, "closing punctuation glyph 9 must be pulled onto this line")
}

func TestBreakKinsokuNotAppliedWhenOnlyOneGlyphFits(t *testing.T) {
	run := runOf([]uint32{1, 2}, []int32{190, 64})
	checker := fakeChecker{last: map[uint32]bool{1: true}}
	num, state := linebreak.Break(run, 0, 192, checker)
	require.Equal(t, linebreak.SoftLineBreak, state)
	require.Equal(t, 1, num, "kinsoku only applies when num > 1")
}

func TestBreakNegativeAdvanceIsAbsoluteValued(t *testing.T) {
	run := runOf([]uint32{1, 2}, []int32{-64, -64})
	num, state := linebreak.Break(run, 0, 100, noKinsoku)
	require.Equal(t, linebreak.SoftLineBreak, state)
	require.Equal(t, 1, num)
}

func TestDataLengthCoversConsumedGlyphs(t *testing.T) {
	run := runOf([]uint32{1, 2, 3}, []int32{64, 64, 64})
	length := linebreak.DataLength(run, 0, 2, linebreak.SoftLineBreak)
	require.Equal(t, 6, length)
}

func TestMaxAdvanceConvertsPointsTo26_6Units(t *testing.T) {
	got := linebreak.MaxAdvance(120, 10)
	require.Equal(t, int32(768), got)
}

package harfbuzz_test

import (
	"bytes"
	"testing"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tategumi/engine/glyphing"
	"github.com/npillmayer/tategumi/engine/glyphing/harfbuzz"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func loadShapingFace(t *testing.T) *hb.Font {
	t.Helper()
	face, err := hbtt.Parse(bytes.NewReader(goregular.TTF), true)
	require.NoError(t, err)
	return hb.NewFont(face)
}

func TestShapeProducesParallelArrays(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.glyphing")
	defer teardown()
	//
	face := loadShapingFace(t)
	text := []byte("Hello\x00")
	run, err := harfbuzz.Shape(text, glyphing.LeftToRight, "en", face)
	require.NoError(t, err)
	require.Equal(t, run.Len()+1, len(run.Cluster))
	require.Len(t, run.Advance, run.Len())
	require.Equal(t, len("Hello"), run.Cluster[run.Len()])
}

func TestShapeClusterNonDecreasing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.glyphing")
	defer teardown()
	//
	face := loadShapingFace(t)
	text := []byte("abc\x00")
	run, err := harfbuzz.Shape(text, glyphing.LeftToRight, "en", face)
	require.NoError(t, err)
	for i := 1; i < len(run.Cluster); i++ {
		require.GreaterOrEqual(t, run.Cluster[i], run.Cluster[i-1])
	}
}

func TestShapeNilFaceIsError(t *testing.T) {
	_, err := harfbuzz.Shape([]byte("x\x00"), glyphing.LeftToRight, "en", nil)
	require.Error(t, err)
}

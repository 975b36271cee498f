package pdfsink_test

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tategumi/backend/sink"
	"github.com/npillmayer/tategumi/backend/sink/pdfsink"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestPdfsinkProducesNonEmptyDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.output")
	defer teardown()
	var buf bytes.Buffer
	s := pdfsink.New(&buf)

	require.NoError(t, s.RegisterFont("Go Regular", goregular.TTF))
	require.NoError(t, s.NewPage(400, 600))
	require.NoError(t, s.DrawGlyph(sink.Glyph{Text: "本", X: 380, Y: 40, FontFamily: "Go Regular", FontSize: 12}))
	require.NoError(t, s.FinishPage())
	require.NoError(t, s.Close())

	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	require.Greater(t, buf.Len(), 0)
}

func TestPdfsinkRotatedGlyphDrawsWithoutError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.output")
	defer teardown()
	var buf bytes.Buffer
	s := pdfsink.New(&buf)
	require.NoError(t, s.RegisterFont("Go Regular", goregular.TTF))
	require.NoError(t, s.NewPage(400, 600))
	require.NoError(t, s.DrawGlyph(sink.Glyph{
		Text: "A", X: 100, Y: 100, FontFamily: "Go Regular", FontSize: 12,
		Rotate: true, RotateOriginDelta: 3,
	}))
	require.NoError(t, s.FinishPage())
	require.NoError(t, s.Close())
	require.Greater(t, buf.Len(), 0)
}

func TestPdfsinkRegisterFontIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.output")
	defer teardown()
	var buf bytes.Buffer
	s := pdfsink.New(&buf)
	require.NoError(t, s.RegisterFont("Go Regular", goregular.TTF))
	require.NoError(t, s.RegisterFont("Go Regular", goregular.TTF))
}

package aozora

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestParsePlainText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.aozora")
	defer teardown()
	//
	doc, err := Parse("吾輩は猫である。", nil)
	require.NoError(t, err)
	require.Equal(t, "吾輩は猫である。", string(doc.Parent))
	require.Len(t, doc.Runs, 1)
	require.Equal(t, Vertical, doc.Runs[0].Progression)
	require.Equal(t, Range{0, len(doc.Parent)}, doc.Runs[0].Range)
}

func TestParseExplicitRubyBase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.aozora")
	defer teardown()
	//
	doc, err := Parse("｜東京《とうきょう》", nil)
	require.NoError(t, err)
	require.Equal(t, "東京", string(doc.Parent))
	require.Len(t, doc.Rubies, 1)
	require.Equal(t, "とうきょう", doc.Rubies[0].Text)
	require.Equal(t, Range{0, len("東京")}, doc.Rubies[0].Range)
}

func TestParseImplicitRubyBaseBacktracksHan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.aozora")
	defer teardown()
	//
	doc, err := Parse("日本語《にほんご》", nil)
	require.NoError(t, err)
	require.Equal(t, "日本語", string(doc.Parent))
	require.Len(t, doc.Rubies, 1)
	require.Equal(t, Range{0, len("日本語")}, doc.Rubies[0].Range)
}

func TestParseImplicitRubyBaseStopsAtNonHan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.aozora")
	defer teardown()
	//
	doc, err := Parse("あ東京《とうきょう》", nil)
	require.NoError(t, err)
	require.Equal(t, "あ東京", string(doc.Parent))
	// base should be just 東京, not the preceding hiragana あ.
	wantStart := len("あ")
	require.Equal(t, Range{wantStart, len(doc.Parent)}, doc.Rubies[0].Range)
}

func TestParseEmphasisTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.aozora")
	defer teardown()
	//
	doc, err := Parse("これは大事［＃「大事」に傍点］です", nil)
	require.NoError(t, err)
	require.Equal(t, "これは大事です", string(doc.Parent))
	require.Len(t, doc.Emphases, 1)
	end := len("これは大事")
	start := end - len("大事")
	require.Equal(t, Range{start, end}, doc.Emphases[0].Range)
}

func TestParseUnknownTagLogsAndDrops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.aozora")
	defer teardown()
	//
	var errLog strings.Builder
	doc, err := Parse("本文［＃改ページ］続き", &errLog)
	require.NoError(t, err)
	require.Equal(t, "本文続き", string(doc.Parent))
	require.Empty(t, doc.Emphases)
	require.Contains(t, errLog.String(), "改ページ")
}

func TestParseLatinRunBecomesHorizontal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.aozora")
	defer teardown()
	//
	doc, err := Parse("和文ABC和文", nil)
	require.NoError(t, err)
	require.Len(t, doc.Runs, 3)
	require.Equal(t, Vertical, doc.Runs[0].Progression)
	require.Equal(t, Horizontal, doc.Runs[1].Progression)
	require.Equal(t, "ABC", string(doc.Parent[doc.Runs[1].Range.Start:doc.Runs[1].Range.End]))
	require.Equal(t, Vertical, doc.Runs[2].Progression)
}

func TestParseTwoDigitsBecomeTateChuYoko(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.aozora")
	defer teardown()
	//
	doc, err := Parse("第21章", nil)
	require.NoError(t, err)
	var found bool
	for _, run := range doc.Runs {
		if run.Progression == TateChuYoko {
			found = true
			require.Equal(t, "21", string(doc.Parent[run.Range.Start:run.Range.End]))
		}
	}
	require.True(t, found, "expected a TateChuYoko run for the two digits")
}

func TestParseSingleDigitStaysVertical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.aozora")
	defer teardown()
	//
	doc, err := Parse("第1章", nil)
	require.NoError(t, err)
	for _, run := range doc.Runs {
		require.NotEqual(t, TateChuYoko, run.Progression)
		require.NotEqual(t, Horizontal, run.Progression)
	}
}

func TestParseLigatures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.aozora")
	defer teardown()
	//
	doc, err := Parse("なに!!それ!?", nil)
	require.NoError(t, err)
	require.Contains(t, string(doc.Parent), "‼")
	require.Contains(t, string(doc.Parent), "⁉")
}

func TestParseHTMLTagContentsIgnored(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.aozora")
	defer teardown()
	//
	doc, err := Parse("前<b>強調</b>後", nil)
	require.NoError(t, err)
	require.Equal(t, "前強調後", string(doc.Parent))
}

func TestRunsCoverParentEndToEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.aozora")
	defer teardown()
	//
	doc, err := Parse("和文ABC和文DEF和文", nil)
	require.NoError(t, err)
	require.NotEmpty(t, doc.Runs)
	require.Equal(t, 0, doc.Runs[0].Range.Start)
	for i := 1; i < len(doc.Runs); i++ {
		require.Equal(t, doc.Runs[i-1].Range.End, doc.Runs[i].Range.Start, "runs must be contiguous")
	}
	require.Equal(t, len(doc.Parent), doc.Runs[len(doc.Runs)-1].Range.End)
}

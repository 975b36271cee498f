/*
Package flow drives the paragraph-flow state machine: it walks a parsed
document's progression runs, shapes each, and repeatedly asks the line
breaker and line painter to fill lines, columns and pages until the
whole document is placed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package flow

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tategumi/aozora"
	"github.com/npillmayer/tategumi/backend/sink"
	"github.com/npillmayer/tategumi/core"
	"github.com/npillmayer/tategumi/core/font"
	"github.com/npillmayer/tategumi/core/geom"
	"github.com/npillmayer/tategumi/engine/glyphing"
	"github.com/npillmayer/tategumi/engine/glyphing/harfbuzz"
	"github.com/npillmayer/tategumi/engine/kihon"
	"github.com/npillmayer/tategumi/engine/linebreak"
	"github.com/npillmayer/tategumi/engine/paint"
)

func tracer() tracing.Trace {
	return gtrace.Select("tategumi.flow")
}

// Fonts bundles the three faces paragraph flow needs: the body fonts
// for vertical (and tate-chū-yoko) and horizontal-in-vertical runs, and
// the small overlay font used for both ruby glosses and emphasis dots
// (the emphasis dot is painted as a one-glyph ruby in the same font).
type Fonts struct {
	Vertical   *font.Font
	Horizontal *font.Font
	Ruby       *font.Font
}

// Spec bundles the page geometry flow needs to build and advance pages.
type Spec struct {
	PageWidth, PageHeight                            geom.PT
	MarginLeft, MarginTop, MarginRight, MarginBottom geom.PT
	ColumnGap                                        geom.PT
	LineGap                                          geom.PT
	Columns                                          int
}

// Runner owns the mutable layout state (current page, current column
// cursor) across an entire document's flow. The ruby/emphasis cursors
// are created afresh by each Run call.
type Runner struct {
	Surf  sink.Surface
	Fonts Fonts
	Spec  Spec

	page *kihon.Page
	grid *kihon.KihonHanmen
}

func (r *Runner) newPage() error {
	p := kihon.NewPage(r.Spec.PageWidth, r.Spec.PageHeight,
		r.Spec.MarginLeft, r.Spec.MarginTop, r.Spec.MarginRight, r.Spec.MarginBottom)
	grid, err := kihon.New(p.Inner, r.Spec.ColumnGap, r.Spec.Columns)
	if err != nil {
		return err
	}
	r.page = &p
	r.grid = grid
	return r.Surf.NewPage(float64(p.Outer.Width()), float64(p.Outer.Height()))
}

// Run flows doc's parsed content across columns and pages, in document
// order, calling Surf.FinishPage between pages and Surf.Close once the
// whole document is placed.
func (r *Runner) Run(doc *aozora.ParsedDocument) error {
	if r.page == nil {
		if err := r.newPage(); err != nil {
			return err
		}
	}
	runs := coalesce(doc.Runs)
	rubies := paint.NewRubyCursor(doc.Rubies)
	ems := paint.NewEmphasisCursor(doc.Emphases)

	for _, run := range runs {
		if err := r.runOne(doc, run, rubies, ems); err != nil {
			return err
		}
	}
	if err := r.Surf.FinishPage(); err != nil {
		return err
	}
	return r.Surf.Close()
}

// coalesce merges adjacent runs sharing a Progression, per the flow
// contract: progression kind changes are the only run boundaries that
// matter to shaping.
func coalesce(runs []aozora.ProgressionRun) []aozora.ProgressionRun {
	if len(runs) == 0 {
		return nil
	}
	out := make([]aozora.ProgressionRun, 0, len(runs))
	out = append(out, runs[0])
	for _, run := range runs[1:] {
		last := &out[len(out)-1]
		if last.Progression == run.Progression {
			last.Range.End = run.Range.End
			continue
		}
		out = append(out, run)
	}
	return out
}

func (r *Runner) runOne(doc *aozora.ParsedDocument, run aozora.ProgressionRun, rubies *paint.RubyCursor, ems *paint.EmphasisCursor) error {
	vertical := run.Progression != aozora.Horizontal
	bodyFont := r.Fonts.Vertical
	direction, lang := glyphing.TopToBottom, "ja"
	if !vertical {
		bodyFont = r.Fonts.Horizontal
		direction, lang = glyphing.LeftToRight, "en"
	}
	if bodyFont == nil {
		return core.Error(core.EINTERNAL, "flow: no font configured for progression %v", run.Progression)
	}

	text := doc.Parent[run.Range.Start:run.Range.End]
	sentineled := append(append([]byte{}, text...), 0)
	shaped, err := harfbuzz.Shape(sentineled, direction, lang, bodyFont.ShapingFace)
	if err != nil {
		return err
	}
	if shaped.Len() == 0 {
		return nil
	}

	lineThickness := geom.PT(bodyFont.Size)
	if lineThickness >= r.grid.Current().Width() {
		tracer().Errorf("flow: column too narrow for %.1fpt font, aborting run", bodyFont.Size)
		return nil
	}

	written := 0
	var perpendicular geom.PT
	column := r.grid.Current()
	lineRect := lineRectFor(column, perpendicular, lineThickness)
	state := linebreak.NewLine
	if !fits(lineRect, column) {
		state = linebreak.EndOfColumn
	}

	for {
		switch state {
		case linebreak.EndOfString, linebreak.TooShortLine:
			return nil

		case linebreak.EndOfColumn:
			next, wrapped := r.grid.Advance()
			if wrapped {
				if err := r.Surf.FinishPage(); err != nil {
					return err
				}
				if err := r.newPage(); err != nil {
					return err
				}
				next = r.grid.Current()
			}
			column = next
			perpendicular = 0
			lineRect = lineRectFor(column, perpendicular, lineThickness)
			state = linebreak.NewLine

		case linebreak.SoftLineBreak:
			if written >= shaped.Len() {
				return nil
			}
			fallthrough

		case linebreak.HardLineBreak:
			perpendicular += lineThickness + r.Spec.LineGap
			lineRect = lineRectFor(column, perpendicular, lineThickness)
			if fits(lineRect, column) {
				state = linebreak.NewLine
			} else {
				state = linebreak.EndOfColumn
			}

		case linebreak.NewLine:
			result, err := paint.PaintLine(r.Surf, bodyFont, r.Fonts.Ruby, vertical, lineRect,
				text, shaped, written, run.Range.Start, rubies, ems)
			if err != nil {
				return err
			}
			written += result.NumGlyphs
			if result.State == linebreak.HardLineBreak {
				written++
			}
			state = result.State
		}
	}
}

// lineRectFor slices a line's rect out of column: a lineThickness-wide
// strip, offset by perpendicular from the column's trailing edge. Lines
// stack from the column's right edge leftward, as vertical Japanese
// writing runs right-to-left across columns.
func lineRectFor(column geom.Rect, perpendicular, lineThickness geom.PT) geom.Rect {
	return geom.Rect{
		Start: geom.Point{X: column.End.X - perpendicular - lineThickness, Y: column.Start.Y},
		End:   geom.Point{X: column.End.X - perpendicular, Y: column.End.Y},
	}
}

func fits(lineRect, column geom.Rect) bool {
	return lineRect.Start.X >= column.Start.X
}

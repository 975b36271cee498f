/*
Package pdfsink implements backend/sink.Surface as a single multi-page
PDF document streamed to an io.Writer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pdfsink

import (
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tategumi/backend/sink"
	"github.com/npillmayer/tategumi/core"
)

func tracer() tracing.Trace {
	return gtrace.Select("tategumi.output")
}

// Surface streams a multi-page PDF document to w. FinishPage performs
// fpdf's implicit page-close (the next NewPage call starts the actual
// new page); Close streams the finished document to w.
type Surface struct {
	w        io.Writer
	pdf      *fpdf.Fpdf
	fonts    map[string]bool
	pageOpen bool
}

// New creates a pdfsink.Surface that streams its finished document to w
// on Close.
func New(w io.Writer) *Surface {
	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetAutoPageBreak(false, 0)
	return &Surface{w: w, pdf: pdf, fonts: make(map[string]bool)}
}

// NewPage starts a page of the given size, in points, closing the
// previous one (if any) first via fpdf's own page bookkeeping.
func (s *Surface) NewPage(width, height float64) error {
	s.pdf.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	s.pageOpen = true
	tracer().Debugf("pdfsink: new page %.1fx%.1f", width, height)
	return s.pdf.Error()
}

// RegisterFont embeds raw as a UTF-8 TrueType font under family. Safe
// to call more than once for the same family.
func (s *Surface) RegisterFont(family string, raw []byte) error {
	if s.fonts[family] {
		return nil
	}
	s.pdf.AddUTF8FontFromBytes(family, "", raw)
	if err := s.pdf.Error(); err != nil {
		return core.WrapError(err, core.EINTERNAL, "pdfsink: cannot register font %s", family)
	}
	s.fonts[family] = true
	return nil
}

// DrawGlyph paints one glyph's cluster text at its computed origin,
// rotating the text 90° when the glyph belongs to a horizontal-in-vertical
// run.
func (s *Surface) DrawGlyph(g sink.Glyph) error {
	s.pdf.SetFont(g.FontFamily, "", g.FontSize)
	if g.Rotate {
		s.pdf.TransformBegin()
		s.pdf.TransformRotate(-90, g.X, g.Y-g.RotateOriginDelta)
		s.pdf.Text(g.X, g.Y-g.RotateOriginDelta, g.Text)
		s.pdf.TransformEnd()
	} else {
		s.pdf.Text(g.X, g.Y, g.Text)
	}
	return s.pdf.Error()
}

// FinishPage is a no-op beyond tracing: fpdf closes a page implicitly
// when the next AddPageFormat call is made, or when Close flattens the
// document.
func (s *Surface) FinishPage() error {
	tracer().Debugf("pdfsink: finish page")
	s.pageOpen = false
	return nil
}

// Close streams the finished document to the Surface's writer.
func (s *Surface) Close() error {
	if err := s.pdf.Output(s.w); err != nil {
		return core.WrapError(err, core.EINTERNAL, "pdfsink: cannot write document")
	}
	return nil
}

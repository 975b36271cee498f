/*
Command tategumi reads Aozora-Bunko-style annotated plain text from
stdin and typesets it as vertical Japanese text, writing a PDF to
stdout or, in -svgpath mode, one SVG file per page plus an info.json
manifest to a directory.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/tategumi/aozora"
	"github.com/npillmayer/tategumi/backend/sink"
	"github.com/npillmayer/tategumi/backend/sink/pdfsink"
	"github.com/npillmayer/tategumi/backend/sink/svgsink"
	"github.com/npillmayer/tategumi/cmdline"
	"github.com/npillmayer/tategumi/core"
	"github.com/npillmayer/tategumi/core/font"
	"github.com/npillmayer/tategumi/core/geom"
	"github.com/npillmayer/tategumi/engine/flow"
)

func tracer() tracing.Trace {
	return gtrace.Select("tategumi")
}

func main() {
	setupTracing()
	opt := cmdline.Parse(os.Args[1:])

	raw, err := readStdin()
	if err != nil {
		tracer().Errorf("reading stdin: %v", err)
		os.Exit(-1)
	}

	errLog, closeErrLog, err := openErrorLog()
	if err != nil {
		tracer().Errorf("opening error.txt: %v", err)
		os.Exit(-1)
	}
	defer closeErrLog()

	doc, err := aozora.Parse(raw, errLog)
	if err != nil {
		tracer().Errorf("parsing markup: %v", err)
		os.Exit(-1)
	}

	fonts, err := loadFonts(opt)
	if err != nil {
		tracer().Errorf("loading fonts: %v", err)
		os.Exit(-1)
	}

	surf, err := openSurface(opt)
	if err != nil {
		tracer().Errorf("opening output surface: %v", err)
		os.Exit(-1)
	}
	if err := registerFonts(surf, fonts); err != nil {
		tracer().Errorf("registering fonts: %v", err)
		os.Exit(-1)
	}

	runner := &flow.Runner{
		Surf:  surf,
		Fonts: fonts,
		Spec:  specFor(opt),
	}
	// Run flushes the final page and closes surf itself.
	if err := runner.Run(doc); err != nil {
		tracer().Errorf("flowing document: %v", err)
		os.Exit(-1)
	}
}

func setupTracing() {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.tategumi":  "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintln(os.Stderr, "error configuring tracing")
		os.Exit(-1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// readStdin reads raw UTF-8 to EOF and strips a single trailing
// newline, matching the original tool's null-terminated stdin read.
func readStdin() (string, error) {
	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return "", err
	}
	s := string(data)
	if len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	return s, nil
}

// openErrorLog opens error.txt for appending malformed-markup reports,
// in the current working directory, truncating any prior run's log.
func openErrorLog() (io.Writer, func(), error) {
	f, err := os.Create("error.txt")
	if err != nil {
		return nil, func() {}, core.WrapError(err, core.EMISSING, "cannot create error.txt")
	}
	return f, func() { f.Close() }, nil
}

func loadFonts(opt cmdline.Options) (flow.Fonts, error) {
	vFont, err := font.New(opt.FontFace, opt.FontSize, font.Vertical)
	if err != nil {
		return flow.Fonts{}, err
	}
	hFont, err := font.New(opt.FontFace, opt.FontSize, font.Horizontal)
	if err != nil {
		return flow.Fonts{}, err
	}
	rubyFont, err := font.New(opt.RubyFontFace, opt.FontSize*opt.RubySize, font.Vertical)
	if err != nil {
		return flow.Fonts{}, err
	}
	return flow.Fonts{Vertical: vFont, Horizontal: hFont, Ruby: rubyFont}, nil
}

// registerFonts hands each distinct font's raw bytes to surf, so the
// backend can embed (PDF) or reference (SVG) it before any glyph
// referring to it is drawn. The vertical and horizontal faces share
// one family name, so at most two distinct families are registered
// (one when the ruby face is the body face).
func registerFonts(surf sink.Surface, fonts flow.Fonts) error {
	for _, f := range []*font.Font{fonts.Vertical, fonts.Horizontal, fonts.Ruby} {
		if f == nil {
			continue
		}
		if err := surf.RegisterFont(f.Family, f.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// openSurface picks the PDF-to-stdout or SVG-directory backend,
// depending on whether -svgpath was given.
func openSurface(opt cmdline.Options) (sink.Surface, error) {
	if opt.SVGPath != "" {
		return svgsink.New(opt.SVGPath)
	}
	return pdfsink.New(os.Stdout), nil
}

func specFor(opt cmdline.Options) flow.Spec {
	return flow.Spec{
		PageWidth:    geom.PT(opt.Width),
		PageHeight:   geom.PT(opt.Height),
		MarginLeft:   geom.PT(opt.MarginLeft),
		MarginTop:    geom.PT(opt.MarginTop),
		MarginRight:  geom.PT(opt.MarginRight),
		MarginBottom: geom.PT(opt.MarginBottom),
		ColumnGap:    geom.PT(opt.ColumnGap),
		LineGap:      geom.PT(opt.LineGap),
		Columns:      opt.Columns,
	}
}

/*
Package cmdline parses the typesetter's command line: a flat list of
"-flag value" pairs, matched case-insensitively, with unknown flags
silently ignored. This mirrors the original tool's argv walk rather
than the standard library's flag package, since the original accepts
flags in any position and tolerates stray arguments between them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cmdline

import (
	"strconv"
	"strings"
)

// Options holds every value the typesetter needs to lay out and render
// a document, after flags have been parsed and defaults/minima applied.
type Options struct {
	FontSize float64
	RubySize float64
	Width    float64
	Height   float64
	Size     float64
	Ratio    float64

	Margin       float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
	LineGap      float64
	Columns      int
	ColumnGap    float64
	SVGPath      string
	FontFace     string
	RubyFontFace string
}

// defaults returns the option set before any flag or derived-value
// adjustment is applied.
func defaults() Options {
	return Options{
		FontSize: 16,
		RubySize: 0.5,
		Size:     5,
		Ratio:    9.0 / 16.0,
		Columns:  1,
		FontFace: "IPAexMincho",
	}
}

// Parse walks args (conventionally os.Args[1:]) looking for recognized
// flags, each consuming the immediately following argument as its
// value. Matching is case-insensitive; a recognized flag with no
// following argument is ignored, and unrecognized arguments are
// ignored wherever they appear. Once every flag is applied, derived
// dimensions and enforced minima are computed and returned.
func Parse(args []string) Options {
	opt := defaults()
	for i := 0; i < len(args); i++ {
		if i+1 >= len(args) {
			break
		}
		name := strings.ToLower(args[i])
		value := args[i+1]
		switch name {
		case "-fontsize":
			opt.FontSize = atof(value, opt.FontSize)
		case "-rubysize":
			opt.RubySize = atof(value, opt.RubySize)
		case "-height":
			opt.Height = atof(value, opt.Height)
		case "-width":
			opt.Width = atof(value, opt.Width)
		case "-size":
			opt.Size = atof(value, opt.Size)
		case "-ratio":
			opt.Ratio = atof(value, opt.Ratio)
		case "-margin":
			opt.Margin = atof(value, opt.Margin)
		case "-margintop":
			opt.MarginTop = atof(value, opt.MarginTop)
		case "-marginbottom":
			opt.MarginBottom = atof(value, opt.MarginBottom)
		case "-marginleft":
			opt.MarginLeft = atof(value, opt.MarginLeft)
		case "-marginright":
			opt.MarginRight = atof(value, opt.MarginRight)
		case "-columngap":
			opt.ColumnGap = atof(value, opt.ColumnGap)
		case "-columns":
			opt.Columns = atoi(value, opt.Columns)
		case "-svgpath":
			opt.SVGPath = value
		case "-fontface":
			opt.FontFace = value
		case "-rubyfontface":
			opt.RubyFontFace = value
		default:
			continue
		}
		i++
	}
	return normalize(opt)
}

// normalize fills in every dimension and minimum that depends on other
// flags, in the same order the original tool derives them: page size
// from size/ratio if unset, general margin fallback, then the two
// enforced minima (ruby gutter, baseline clearance), then line gap and
// column gap, then the ruby font face falling back to the body face.
func normalize(opt Options) Options {
	if opt.Height == 0 {
		opt.Height = opt.Size * 72
	}
	if opt.Width == 0 {
		opt.Width = opt.Height * opt.Ratio
	}
	if opt.Margin != 0 {
		if opt.MarginTop == 0 {
			opt.MarginTop = opt.Margin
		}
		if opt.MarginBottom == 0 {
			opt.MarginBottom = opt.Margin
		}
		if opt.MarginLeft == 0 {
			opt.MarginLeft = opt.Margin
		}
		if opt.MarginRight == 0 {
			opt.MarginRight = opt.Margin
		}
	}
	if opt.MarginRight < opt.FontSize*opt.RubySize {
		opt.MarginRight = opt.FontSize * opt.RubySize
	}
	if opt.MarginBottom < opt.FontSize/2 {
		opt.MarginBottom = opt.FontSize / 2
	}
	if opt.LineGap == 0 {
		opt.LineGap = opt.FontSize
	}
	if opt.Columns > 1 && opt.ColumnGap == 0 {
		opt.ColumnGap = opt.LineGap
	}
	if opt.RubyFontFace == "" {
		opt.RubyFontFace = opt.FontFace
	}
	return opt
}

func atof(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func atoi(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

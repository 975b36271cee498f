/*
Package aozora parses the Aozora-Bunko-style plain-text markup the
typesetting engine accepts: ruby annotations, emphasis tags and the
Latin/TateChuYoko rotation hints that drive vertical layout.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package aozora

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return gtrace.Select("tategumi.aozora")
}

// Range is a half-open byte range [Start,End) into a ParsedDocument's
// Parent bytes.
type Range struct {
	Start, End int
}

// Len is the byte length of the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Progression describes how a run of text advances across the page.
type Progression int

const (
	Vertical Progression = iota
	Horizontal
	TateChuYoko
)

func (p Progression) String() string {
	switch p {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	case TateChuYoko:
		return "tate-chu-yoko"
	}
	return "progression(?)"
}

// ProgressionRun is a contiguous, non-overlapping span of the parent
// document sharing one Progression. A ParsedDocument's Runs cover the
// whole of Parent, end to end.
type ProgressionRun struct {
	Range       Range
	Progression Progression
}

// RubySpan glosses a base range of the parent document with phonetic
// reading text. Text is never itself part of Parent.
type RubySpan struct {
	Range Range
	Text  string
}

// EmphasisSpan marks a base range of the parent document for sidebar
// emphasis dots, one per code point in the range.
type EmphasisSpan struct {
	Range Range
}

// ParsedDocument is the result of parsing Aozora-style markup: the
// plain parent text, plus the progression/ruby/emphasis annotations
// layered over it. Rubies and Emphases are ordered by Range.Start;
// Runs are contiguous and cover Parent end to end.
type ParsedDocument struct {
	Parent   []byte
	Runs     []ProgressionRun
	Rubies   []RubySpan
	Emphases []EmphasisSpan
}

/*
Package kihon lays out a page's basic print area: the outer sheet, its
margins, and the "kihon-hanmen" (基本版面) column grid the typesetting
engine flows text through.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package kihon

import "github.com/npillmayer/tategumi/core/geom"

// Page is a sheet of a given size with four margins; Inner is the
// typesetting area left after the margins are subtracted.
type Page struct {
	Outer geom.Rect
	Inner geom.Rect

	MarginTop, MarginBottom, MarginLeft, MarginRight geom.PT
}

// NewPage builds a page of the given size with the given margins.
func NewPage(width, height geom.PT, marginLeft, marginTop, marginRight, marginBottom geom.PT) Page {
	outer := geom.NewRect(geom.Origin, width, height)
	inner := geom.Rect{
		Start: geom.Point{X: marginLeft, Y: marginTop},
		End:   geom.Point{X: width - marginRight, Y: height - marginBottom},
	}
	return Page{
		Outer:        outer,
		Inner:        inner,
		MarginTop:    marginTop,
		MarginBottom: marginBottom,
		MarginLeft:   marginLeft,
		MarginRight:  marginRight,
	}
}

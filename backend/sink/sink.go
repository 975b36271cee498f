/*
Package sink defines the drawing surface the line painter draws onto,
and the two concrete backends (pdfsink, svgsink) that implement it. The
painter never imports a PDF or SVG library directly: it only knows
Surface, so adding a third backend never touches engine/paint.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sink

// FallbackDPI is the resolution a Surface falls back to when a caller
// doesn't pin one down explicitly; 72 DPI makes a device point equal to
// a PDF/PostScript point, so geom.PT values need no further conversion.
const FallbackDPI = 72.0

// Glyph is one positioned unit of text the painter hands to a Surface.
// Text carries the cluster's source runes so a Surface can let its own
// font engine pick glyphs, rather than drawing by raw glyph index --
// neither fpdf nor an SVG <text> element accept glyph ids directly.
type Glyph struct {
	Text       string
	X, Y       float64 // baseline origin, top-left page coordinates, Y grows downward
	FontFamily string
	FontSize   float64

	// Rotate is set for horizontal-in-vertical runs (rotated Latin,
	// tate-chū-yoko overflow): the glyph is drawn turned a quarter turn
	// so its own baseline runs along the page's vertical axis.
	Rotate bool
	// RotateOriginDelta offsets the glyph along its (pre-rotation)
	// vertical axis so a rotated glyph's visual center lands on the
	// column's centerline; see spec component G's rotation matrix.
	RotateOriginDelta float64
}

// Surface is a page-oriented drawing target. Implementations are not
// required to be safe for concurrent use.
type Surface interface {
	// NewPage starts a fresh page of the given size in points.
	NewPage(width, height float64) error

	// RegisterFont makes a font's raw bytes available to the surface
	// under family, so later glyphs naming that family resolve. Safe to
	// call multiple times with the same family; the surface may ignore
	// repeats.
	RegisterFont(family string, raw []byte) error

	// DrawGlyph paints one positioned unit of text onto the current page.
	DrawGlyph(g Glyph) error

	// FinishPage completes the current page. The PDF sink leaves the
	// page to be closed by the next NewPage or by Close; SVG sinks flush
	// the current file and prepare the next one.
	FinishPage() error

	// Close finalizes the document: PDF sinks stream bytes to their
	// writer, SVG sinks write the trailing info.json manifest.
	Close() error
}

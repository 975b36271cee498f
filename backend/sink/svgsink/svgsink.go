/*
Package svgsink implements backend/sink.Surface as one SVG file per
page in a named output directory, plus a trailing info.json manifest.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package svgsink

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tategumi/backend/sink"
	"github.com/npillmayer/tategumi/core"
)

func tracer() tracing.Trace {
	return gtrace.Select("tategumi.output")
}

type manifest struct {
	FileLeafs []string `json:"fileLeafs"`
}

// Surface writes one file per page as "%06d.svg" into Dir, and a final
// info.json manifest listing every page leaf on Close.
type Surface struct {
	dir string

	pageIndex int
	leafs     []string

	width, height float64
	elements      []svgText
	fontFamilies  map[string]bool
}

type svgText struct {
	text       string
	x, y       float64
	fontFamily string
	fontSize   float64
	transform  string
}

// New prepares an SVG sink writing pages into dir, creating dir if it
// doesn't already exist.
func New(dir string) (*Surface, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "svgsink: cannot create output dir %s", dir)
	}
	return &Surface{dir: dir, fontFamilies: make(map[string]bool)}, nil
}

// NewPage starts buffering a new page of the given size. Any page
// currently buffered but not yet finished is dropped; callers should
// call FinishPage first.
func (s *Surface) NewPage(width, height float64) error {
	s.width, s.height = width, height
	s.elements = nil
	return nil
}

// RegisterFont records family; raw is not used. SVG has no font
// embedding step comparable to fpdf's, and each <text> element takes
// its font-family attribute from the drawn Glyph's FontFamily.
func (s *Surface) RegisterFont(family string, raw []byte) error {
	s.fontFamilies[family] = true
	return nil
}

// DrawGlyph buffers one glyph's cluster text for the current page.
func (s *Surface) DrawGlyph(g sink.Glyph) error {
	el := svgText{text: g.Text, x: g.X, y: g.Y, fontFamily: g.FontFamily, fontSize: g.FontSize}
	if g.Rotate {
		el.transform = fmt.Sprintf("rotate(-90 %g %g)", g.X, g.Y-g.RotateOriginDelta)
		el.y -= g.RotateOriginDelta
	}
	s.elements = append(s.elements, el)
	return nil
}

// FinishPage writes the buffered page to "%06d.svg" and resets the
// buffer for the next page: the original's "destroy current surface,
// create a new one" translates to "write and clear" for an in-memory
// element buffer.
func (s *Surface) FinishPage() error {
	leaf := fmt.Sprintf("%06d.svg", s.pageIndex)
	path := filepath.Join(s.dir, leaf)
	if err := s.writePage(path); err != nil {
		return err
	}
	s.leafs = append(s.leafs, "/"+leaf)
	s.pageIndex++
	s.elements = nil
	tracer().Debugf("svgsink: wrote %s", path)
	return nil
}

func (s *Surface) writePage(path string) error {
	type textEl struct {
		XMLName   xml.Name `xml:"text"`
		X         float64  `xml:"x,attr"`
		Y         float64  `xml:"y,attr"`
		Font      string   `xml:"font-family,attr"`
		Size      float64  `xml:"font-size,attr"`
		Transform string   `xml:"transform,attr,omitempty"`
		Text      string   `xml:",chardata"`
	}
	type svg struct {
		XMLName xml.Name `xml:"svg"`
		Xmlns   string   `xml:"xmlns,attr"`
		Width   float64  `xml:"width,attr"`
		Height  float64  `xml:"height,attr"`
		Texts   []textEl `xml:"text"`
	}
	doc := svg{Xmlns: "http://www.w3.org/2000/svg", Width: s.width, Height: s.height}
	for _, el := range s.elements {
		doc.Texts = append(doc.Texts, textEl{
			X: el.x, Y: el.y, Font: el.fontFamily, Size: el.fontSize,
			Transform: el.transform, Text: el.text,
		})
	}
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "svgsink: cannot create %s", path)
	}
	defer f.Close()
	if _, err := f.WriteString(xml.Header); err != nil {
		return core.WrapError(err, core.EINTERNAL, "svgsink: cannot write %s", path)
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return core.WrapError(err, core.EINTERNAL, "svgsink: cannot encode %s", path)
	}
	return nil
}

// Close writes the trailing info.json manifest listing every page leaf
// written so far.
func (s *Surface) Close() error {
	path := filepath.Join(s.dir, "info.json")
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "svgsink: cannot create %s", path)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest{FileLeafs: s.leafs}); err != nil {
		return core.WrapError(err, core.EINTERNAL, "svgsink: cannot write %s", path)
	}
	return nil
}

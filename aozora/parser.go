package aozora

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	rsRubyBase  = '｜' // ｜
	rsRubyOpen  = '《' // 《
	rsRubyClose = '》' // 》
	rsTagOpen   = '［' // ［
	rsTagMarker = '＃' // ＃
	rsTagClose  = '］' // ］
	rsHTMLOpen  = '<'
	rsHTMLClose = '>'
	rsBang      = '!'
	rsQMark     = '?'

	ligDoubleBang = '‼' // ‼
	ligBangQMark  = '⁉' // ⁉
)

const (
	emphHeader = "＃「"   // ＃「
	emphFooter = "」に傍点" // 」に傍点
)

// runeRecord remembers the classification of one appended parent-document
// code point, so the Tr-backscan when opening a Horizontal run doesn't
// need to re-decode already-appended UTF-8.
type runeRecord struct {
	offset int
	prop   property
}

type parser struct {
	parent strings.Builder

	runs     []ProgressionRun
	rubies   []RubySpan
	emphases []EmphasisSpan

	progression Progression
	runStart    int

	history []runeRecord

	rubyParentSet bool
	rubyParent    int
	inRuby        bool
	rubyIdx       int // index into rubies of the open ruby, -1 if none

	inTag  bool
	tagBuf strings.Builder

	inHTML bool

	notSelected int

	errLog io.Writer
}

// Parse consumes raw Aozora-style markup and produces a ParsedDocument.
// raw is normalized to NFC first, so combining-character sequences a
// source text editor may have introduced collapse to the same code
// points the bundled fonts' cmaps expect. Malformed `［＃…］` tags are
// logged to tracer() and, when errLog is non-nil, appended to it as
// well (one line per failure) rather than aborting the parse.
func Parse(raw string, errLog io.Writer) (*ParsedDocument, error) {
	p := &parser{
		progression: Vertical,
		rubyIdx:     -1,
		errLog:      errLog,
	}
	runes := []rune(norm.NFC.String(raw))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		var peek rune
		if i+1 < len(runes) {
			peek = runes[i+1]
		}
		switch r {
		case rsRubyBase:
			p.rubyParent = p.parent.Len()
			p.rubyParentSet = true
			continue
		case rsRubyOpen:
			p.openRuby()
			continue
		case rsRubyClose:
			p.inRuby = false
			p.rubyIdx = -1
			continue
		case rsTagOpen:
			if peek == rsTagMarker {
				p.inTag = true
				continue
			}
		case rsTagClose:
			if p.inTag {
				p.closeTag()
				continue
			}
		case rsHTMLOpen:
			p.inHTML = true
			continue
		case rsHTMLClose:
			p.inHTML = false
			continue
		case rsBang:
			if peek == rsBang {
				p.dispatch(ligDoubleBang, r)
				i++
				continue
			}
			if peek == rsQMark {
				p.dispatch(ligBangQMark, r)
				i++
				continue
			}
		}
		p.dispatch(r, r)
	}
	// close the final open run at the end of the parent document.
	p.closeFinalRun()
	return &ParsedDocument{
		Parent:   []byte(p.parent.String()),
		Runs:     p.runs,
		Rubies:   p.rubies,
		Emphases: p.emphases,
	}, nil
}

// dispatch routes one effective code point (out is what gets appended,
// classify is what the property table and ligature detection is run
// against) to whichever destination the current mode selects.
func (p *parser) dispatch(out rune, classify rune) {
	switch {
	case p.inRuby:
		p.rubies[p.rubyIdx].Text += string(out)
	case p.inTag:
		p.tagBuf.WriteRune(out)
	case p.inHTML:
		// contents ignored
	default:
		p.appendContent(out, classify)
	}
}

// appendContent runs the progression state machine for one code point
// and appends it to the parent document.
func (p *parser) appendContent(out rune, classify rune) {
	prop := getProperty(classify)
	switch {
	case prop == propR && p.progression == Vertical &&
		classify != '\n' && classify != 0x2026 && classify != 0x2015:
		p.openHorizontalRun()
	case (prop == propTu || prop == propU) && p.progression == Horizontal && classify != '\n':
		p.closeHorizontalRun()
	}
	offset := p.parent.Len()
	p.parent.WriteRune(out)
	p.history = append(p.history, runeRecord{offset: offset, prop: prop})
	p.notSelected += utf8.RuneLen(out)
}

// openHorizontalRun closes the active Vertical run, pulling any
// trailing Tr code points back into the new Horizontal run, and opens
// the Horizontal run at the adjusted position.
func (p *parser) openHorizontalRun() {
	pos := p.parent.Len()
	j := len(p.history) - 1
	for j >= 0 && p.history[j].prop == propTr {
		pos = p.history[j].offset
		j--
	}
	p.runs = append(p.runs, ProgressionRun{Range{p.runStart, pos}, Vertical})
	p.runStart = pos
	p.progression = Horizontal
}

// closeHorizontalRun closes the active Horizontal run, deciding its
// final Progression by the rune count it contains, and opens a new
// Vertical run.
func (p *parser) closeHorizontalRun() {
	end := p.parent.Len()
	runeCount := utf8.RuneCountInString(p.parent.String()[p.runStart:end])
	prog := Horizontal
	switch {
	case runeCount < 2:
		prog = Vertical
	case runeCount == 2:
		prog = TateChuYoko
	}
	p.runs = append(p.runs, ProgressionRun{Range{p.runStart, end}, prog})
	p.runStart = end
	p.progression = Vertical
}

func (p *parser) closeFinalRun() {
	end := p.parent.Len()
	if end == p.runStart && len(p.runs) > 0 {
		return
	}
	prog := p.progression
	if prog == Horizontal {
		runeCount := utf8.RuneCountInString(p.parent.String()[p.runStart:end])
		switch {
		case runeCount < 2:
			prog = Vertical
		case runeCount == 2:
			prog = TateChuYoko
		}
	}
	p.runs = append(p.runs, ProgressionRun{Range{p.runStart, end}, prog})
}

// openRuby enters ruby-text mode, resolving the base range from an
// explicit ｜ marker if one was set, or else by backtracking over the
// trailing Han cluster.
func (p *parser) openRuby() {
	var start int
	if p.rubyParentSet {
		start = p.rubyParent
	} else {
		start = backtrackHan([]byte(p.parent.String()), p.notSelected)
	}
	p.rubies = append(p.rubies, RubySpan{Range: Range{start, p.parent.Len()}})
	p.rubyIdx = len(p.rubies) - 1
	p.rubyParentSet = false
	p.notSelected = 0
	p.inRuby = true
}

// closeTag exits tag mode and attempts to parse the buffered tag as an
// emphasis directive. Anything else is logged and dropped.
func (p *parser) closeTag() {
	tag := p.tagBuf.String()
	p.tagBuf.Reset()
	p.inTag = false
	if span, ok := parseEmphasisTag(tag, p.parent.Len()); ok {
		p.emphases = append(p.emphases, span)
		return
	}
	tracer().Errorf("aozora: unrecognized tag %q, dropped", tag)
	if p.errLog != nil {
		io.WriteString(p.errLog, "unrecognized tag: "+tag+"\n")
	}
}

// parseEmphasisTag recognizes the single supported tag form,
// "＃「X」に傍点", binding emphasis dots to the X immediately
// preceding the tag in the parent document. The boundary case where X
// would be empty is rejected.
func parseEmphasisTag(tag string, end int) (EmphasisSpan, bool) {
	if len(tag) <= len(emphHeader)+len(emphFooter) {
		return EmphasisSpan{}, false
	}
	if !strings.HasPrefix(tag, emphHeader) || !strings.HasSuffix(tag, emphFooter) {
		return EmphasisSpan{}, false
	}
	xLen := len(tag) - len(emphHeader) - len(emphFooter)
	return EmphasisSpan{Range{end - xLen, end}}, true
}

// backtrackHan finds the start offset of the longest trailing run of
// Han-script code points within the last notSelected bytes of parent,
// for use as an implicit ruby base. If the very last code point in
// that window isn't Han, it falls back to just that one code point.
func backtrackHan(parent []byte, notSelected int) int {
	if notSelected <= 0 || notSelected > len(parent) {
		return len(parent)
	}
	seg := string(parent[len(parent)-notSelected:])
	runes := []rune(seg)
	n := len(runes)
	if n == 0 {
		return len(parent)
	}
	i := n - 1
	for i > -1 && unicode.Is(unicode.Han, runes[i]) {
		i--
	}
	i++
	if i == n {
		i = n - 1
	}
	byteOff := 0
	for _, r := range runes[:i] {
		byteOff += utf8.RuneLen(r)
	}
	return len(parent) - notSelected + byteOff
}

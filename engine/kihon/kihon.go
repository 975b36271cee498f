package kihon

import (
	"github.com/npillmayer/tategumi/core"
	"github.com/npillmayer/tategumi/core/geom"
)

// KihonHanmen ("basic print area") partitions an inner rect into k
// equal columns along the vertical progression axis, separated by a
// gap. Each column spans the full width of the inner rect; successive
// columns are stacked top-to-bottom along Y.
type KihonHanmen struct {
	columns []geom.Rect
	index   int
}

// New partitions inner into k columns of equal size along the
// vertical (Y) axis, separated by gap. Every column rect is contained
// in inner and has strictly positive width and height.
func New(inner geom.Rect, gap geom.PT, k int) (*KihonHanmen, error) {
	if k < 1 {
		return nil, core.Error(core.EINVALID, "kihon: column count must be >= 1, is %d", k)
	}
	size := inner.Width()
	if size <= 0 {
		return nil, core.Error(core.EINVALID, "kihon: inner rect has non-positive width %v", size)
	}
	total := inner.Height()
	totalGap := gap * geom.PT(k-1)
	progress := (total - totalGap) / geom.PT(k)
	if progress <= 0 {
		return nil, core.Error(core.EINVALID,
			"kihon: column progress extent is non-positive (%v) for %d columns with gap %v", progress, k, gap)
	}
	columns := make([]geom.Rect, k)
	start := inner.Start
	delta := geom.Point{X: 0, Y: progress + gap}
	for i := 0; i < k; i++ {
		columns[i] = geom.NewRect(start, size, progress)
		start = start.Add(delta)
	}
	return &KihonHanmen{columns: columns}, nil
}

// Current returns the column the cursor currently points at.
func (kh *KihonHanmen) Current() geom.Rect {
	return kh.columns[kh.index]
}

// IsLast reports whether the cursor is on the final column.
func (kh *KihonHanmen) IsLast() bool {
	return kh.index == len(kh.columns)-1
}

// Advance moves the cursor to the next column, wrapping to the first
// column when the last one was current. wrapped signals the caller
// must start a new page before painting into the returned rect.
func (kh *KihonHanmen) Advance() (rect geom.Rect, wrapped bool) {
	wrapped = kh.IsLast()
	if wrapped {
		kh.index = 0
	} else {
		kh.index++
	}
	return kh.Current(), wrapped
}

// Reset returns the cursor to the first column, e.g. at the start of
// a fresh page.
func (kh *KihonHanmen) Reset() {
	kh.index = 0
}

// ColumnCount is k, the number of columns this hanmen was built with.
func (kh *KihonHanmen) ColumnCount() int {
	return len(kh.columns)
}

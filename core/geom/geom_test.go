package geom

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRectContainsPoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.core")
	defer teardown()
	//
	r := NewRect(Point{10, 10}, 100, 200)
	if !r.ContainsPoint(Point{10, 10}) {
		t.Errorf("expected top-left corner to be contained")
	}
	if r.ContainsPoint(Point{110, 10}) {
		t.Errorf("expected right edge to be excluded (half-open)")
	}
	if r.Width() != 100 || r.Height() != 200 {
		t.Errorf("unexpected width/height: %v/%v", r.Width(), r.Height())
	}
}

func TestRectContainsRect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tategumi.core")
	defer teardown()
	//
	outer := NewRect(Point{0, 0}, 100, 100)
	inner := NewRect(Point{10, 10}, 50, 50)
	if !outer.Contains(inner) {
		t.Errorf("expected inner to be contained in outer")
	}
	if outer.Contains(NewRect(Point{90, 90}, 50, 50)) {
		t.Errorf("did not expect overflowing rect to be contained")
	}
}

func TestMinMax(t *testing.T) {
	if Min(PT(3), PT(5)) != 3 {
		t.Errorf("expected Min(3,5) == 3")
	}
	if Max(PT(3), PT(5)) != 5 {
		t.Errorf("expected Max(3,5) == 5")
	}
}

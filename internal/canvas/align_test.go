package canvas

import (
	"testing"

	"draftboard/pkg/geometry"
)

func TestAlignRects(t *testing.T) {
	rects := []geometry.Rect{
		geometry.NewRect(10, 20, 40, 30),
		geometry.NewRect(100, 50, 20, 60),
		geometry.NewRect(-5, 0, 60, 10),
	}

	tests := []struct {
		name  string
		kind  Alignment
		check func(t *testing.T, out []geometry.Rect)
	}{
		{"left", AlignLeft, func(t *testing.T, out []geometry.Rect) {
			for _, r := range out {
				if r.X != -5 {
					t.Errorf("X = %v, want -5", r.X)
				}
			}
		}},
		{"right", AlignRight, func(t *testing.T, out []geometry.Rect) {
			for _, r := range out {
				if r.Right() != 120 {
					t.Errorf("right = %v, want 120", r.Right())
				}
			}
		}},
		{"top", AlignTop, func(t *testing.T, out []geometry.Rect) {
			for _, r := range out {
				if r.Y != 0 {
					t.Errorf("Y = %v, want 0", r.Y)
				}
			}
		}},
		{"bottom", AlignBottom, func(t *testing.T, out []geometry.Rect) {
			for _, r := range out {
				if r.Bottom() != 110 {
					t.Errorf("bottom = %v, want 110", r.Bottom())
				}
			}
		}},
		{"center-horizontal", AlignCenterH, func(t *testing.T, out []geometry.Rect) {
			want := out[0].Center().X
			for _, r := range out[1:] {
				if r.Center().X != want {
					t.Errorf("center X = %v, want %v", r.Center().X, want)
				}
			}
		}},
		{"center-vertical", AlignCenterV, func(t *testing.T, out []geometry.Rect) {
			want := out[0].Center().Y
			for _, r := range out[1:] {
				if r.Center().Y != want {
					t.Errorf("center Y = %v, want %v", r.Center().Y, want)
				}
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := AlignRects(tt.kind, rects)
			if len(out) != len(rects) {
				t.Fatalf("got %d rects, want %d", len(out), len(rects))
			}
			tt.check(t, out)
			// Sizes never change during alignment.
			for i := range out {
				if out[i].Width != rects[i].Width || out[i].Height != rects[i].Height {
					t.Errorf("rect %d size changed: %v", i, out[i])
				}
			}
		})
	}
}

func TestDistributeRects(t *testing.T) {
	rects := []geometry.Rect{
		geometry.NewRect(0, 0, 20, 20),
		geometry.NewRect(25, 0, 20, 20),
		geometry.NewRect(180, 0, 20, 20),
	}

	out := DistributeRects(false, rects)

	// First and last stay put.
	if out[0].X != 0 || out[2].X != 180 {
		t.Fatalf("extremes moved: %v", out)
	}
	// The middle rect centers the gaps: span 200, content 60, gap 70.
	if out[1].X != 90 {
		t.Errorf("middle X = %v, want 90", out[1].X)
	}
}

func TestDistributeRectsTooFew(t *testing.T) {
	rects := []geometry.Rect{
		geometry.NewRect(0, 0, 20, 20),
		geometry.NewRect(100, 0, 20, 20),
	}
	out := DistributeRects(false, rects)
	for i := range out {
		if out[i] != rects[i] {
			t.Errorf("rect %d moved with only two selected", i)
		}
	}
}

func TestDistributeRectsVertical(t *testing.T) {
	rects := []geometry.Rect{
		geometry.NewRect(0, 300, 10, 30),
		geometry.NewRect(0, 0, 10, 30),
		geometry.NewRect(0, 50, 10, 30),
	}

	out := DistributeRects(true, rects)

	// Sorted by Y the extremes are index 1 (top) and 0 (bottom); span
	// 330, content 90, gap 120.
	if out[1].Y != 0 || out[0].Y != 300 {
		t.Fatalf("extremes moved: %v", out)
	}
	if out[2].Y != 150 {
		t.Errorf("middle Y = %v, want 150", out[2].Y)
	}
}

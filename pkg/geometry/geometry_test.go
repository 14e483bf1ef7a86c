package geometry

import (
	"math"
	"testing"
)

func TestRectFromPoints(t *testing.T) {
	tests := []struct {
		name string
		a, b Point2D
		want Rect
	}{
		{"ordered", Point2D{10, 20}, Point2D{110, 70}, Rect{10, 20, 100, 50}},
		{"reversed", Point2D{110, 70}, Point2D{10, 20}, Rect{10, 20, 100, 50}},
		{"mixed", Point2D{110, 20}, Point2D{10, 70}, Rect{10, 20, 100, 50}},
		{"degenerate", Point2D{5, 5}, Point2D{5, 5}, Rect{5, 5, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RectFromPoints(tt.a, tt.b); got != tt.want {
				t.Errorf("RectFromPoints(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 100, 50)

	if !r.Contains(Point2D{50, 30}) {
		t.Error("interior point not contained")
	}
	if !r.Contains(Point2D{10, 10}) {
		t.Error("edge point not contained")
	}
	if r.Contains(Point2D{5, 30}) {
		t.Error("point left of rect reported as contained")
	}
	if r.Contains(Point2D{150, 30}) {
		t.Error("point right of rect reported as contained")
	}
}

func TestRectIntersects(t *testing.T) {
	r := NewRect(0, 0, 100, 100)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", NewRect(50, 50, 100, 100), true},
		{"contained", NewRect(25, 25, 50, 50), true},
		{"disjoint", NewRect(200, 200, 10, 10), false},
		{"touching edges only", NewRect(100, 0, 50, 50), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 50, 50)
	b := NewRect(100, 100, 50, 50)

	got := a.Union(b)
	want := NewRect(0, 0, 150, 150)
	if got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
}

func TestRectNormalized(t *testing.T) {
	r := Rect{X: 100, Y: 100, Width: -40, Height: -30}
	got := r.Normalized()
	want := Rect{X: 60, Y: 70, Width: 40, Height: 30}
	if got != want {
		t.Errorf("Normalized = %v, want %v", got, want)
	}
}

func TestAffineTransformInverse(t *testing.T) {
	tr := Translation(30, 40).Compose(Scale(2, 2))
	inv, ok := tr.Inverse()
	if !ok {
		t.Fatal("transform not invertible")
	}

	p := Point2D{X: 12.5, Y: -7.25}
	rt := inv.Apply(tr.Apply(p))
	if math.Abs(rt.X-p.X) > 1e-9 || math.Abs(rt.Y-p.Y) > 1e-9 {
		t.Errorf("round trip = %v, want %v", rt, p)
	}

	if _, ok := Scale(0, 0).Inverse(); ok {
		t.Error("degenerate transform reported invertible")
	}
}

func TestBoundingBox(t *testing.T) {
	points := []Point2D{{10, 40}, {-5, 12}, {30, 7}}
	got := BoundingBox(points)
	want := Rect{X: -5, Y: 7, Width: 35, Height: 33}
	if got != want {
		t.Errorf("BoundingBox = %v, want %v", got, want)
	}

	if got := BoundingBox(nil); got != (Rect{}) {
		t.Errorf("BoundingBox(nil) = %v, want zero rect", got)
	}
}

package canvas

import (
	"math"
	"testing"

	"draftboard/pkg/geometry"
)

func TestToDocument(t *testing.T) {
	tests := []struct {
		name   string
		view   ViewConfig
		device geometry.Point2D
		want   geometry.Point2D
	}{
		{
			name:   "identity view",
			view:   ViewConfig{Zoom: 1},
			device: geometry.NewPoint2D(100, 50),
			want:   geometry.NewPoint2D(100, 50),
		},
		{
			name:   "margin only",
			view:   ViewConfig{Zoom: 1, Margin: 20},
			device: geometry.NewPoint2D(120, 70),
			want:   geometry.NewPoint2D(100, 50),
		},
		{
			name:   "zoomed in",
			view:   ViewConfig{Zoom: 2, Margin: 20},
			device: geometry.NewPoint2D(220, 120),
			want:   geometry.NewPoint2D(100, 50),
		},
		{
			name:   "panned",
			view:   ViewConfig{Zoom: 1, Margin: 20, PanX: -30, PanY: 40},
			device: geometry.NewPoint2D(90, 110),
			want:   geometry.NewPoint2D(100, 50),
		},
		{
			name:   "zoom and pan together",
			view:   ViewConfig{Zoom: 0.5, Margin: 20, PanX: 10, PanY: -10},
			device: geometry.NewPoint2D(80, 35),
			want:   geometry.NewPoint2D(100, 50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.view.ToDocument(tt.device)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("ToDocument(%v) = %v, want %v", tt.device, got, tt.want)
			}
		})
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	views := []ViewConfig{
		{Zoom: 1},
		{Zoom: 1, Margin: 20},
		{Zoom: 2.5, Margin: 20, PanX: -137.5, PanY: 42},
		{Zoom: 0.25, Margin: 16, PanX: 3.25, PanY: -900},
		{Zoom: 8, Margin: 20, PanX: 1e4, PanY: -1e4},
	}
	points := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: 123.456, Y: -987.654},
		{X: -1, Y: 1},
		{X: 5000, Y: 0.001},
	}

	for _, v := range views {
		for _, p := range points {
			back := v.ToDocument(v.ToDevice(p))
			if math.Abs(back.X-p.X) > 1e-6 || math.Abs(back.Y-p.Y) > 1e-6 {
				t.Errorf("round trip %v with view %+v = %v", p, v, back)
			}
			dev := v.ToDevice(v.ToDocument(p))
			if math.Abs(dev.X-p.X) > 1e-6 || math.Abs(dev.Y-p.Y) > 1e-6 {
				t.Errorf("device round trip %v with view %+v = %v", p, v, dev)
			}
		}
	}
}

func TestDocumentRectToDevice(t *testing.T) {
	v := ViewConfig{Zoom: 2, Margin: 20, PanX: 10, PanY: 10}
	r := geometry.NewRect(50, 50, 100, 80)
	got := v.DocumentRectToDevice(r)
	want := geometry.NewRect(130, 130, 200, 160)
	if got != want {
		t.Errorf("DocumentRectToDevice(%v) = %v, want %v", r, got, want)
	}
}

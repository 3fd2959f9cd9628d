package jiggler

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stigoleg/jiggle/internal/platform"
)

func TestDeriveZones(t *testing.T) {
	screen := platform.Geometry{Width: 1920, Height: 1080}

	tests := []struct {
		name  string
		sizes ZoneSizes
		want  []Zone
	}{
		{
			name:  "defaults with bottom taskbar",
			sizes: DefaultZoneSizes(),
			want: []Zone{
				{Name: "window-controls", XMin: 1800, YMin: 0, XMax: 1919, YMax: 39},
				{Name: "taskbar", XMin: 0, YMin: 1040, XMax: 1919, YMax: 1079},
				{Name: "start-menu", XMin: 0, YMin: 1040, XMax: 59, YMax: 1079},
				{Name: "failsafe-corner", XMin: 0, YMin: 0, XMax: 3, YMax: 3},
			},
		},
		{
			name: "top taskbar",
			sizes: ZoneSizes{
				StartMenu:     Size{Width: 60, Height: 40},
				TaskbarHeight: 30,
				TaskbarEdge:   EdgeTop,
			},
			want: []Zone{
				{Name: "taskbar", XMin: 0, YMin: 0, XMax: 1919, YMax: 29},
				{Name: "start-menu", XMin: 0, YMin: 0, XMax: 59, YMax: 39},
			},
		},
		{
			name: "left taskbar",
			sizes: ZoneSizes{
				StartMenu:     Size{Width: 48, Height: 48},
				TaskbarHeight: 48,
				TaskbarEdge:   EdgeLeft,
			},
			want: []Zone{
				{Name: "taskbar", XMin: 0, YMin: 0, XMax: 47, YMax: 1079},
				{Name: "start-menu", XMin: 0, YMin: 0, XMax: 47, YMax: 47},
			},
		},
		{
			name: "right taskbar",
			sizes: ZoneSizes{
				StartMenu:     Size{Width: 48, Height: 48},
				TaskbarHeight: 48,
				TaskbarEdge:   EdgeRight,
			},
			want: []Zone{
				{Name: "taskbar", XMin: 1872, YMin: 0, XMax: 1919, YMax: 1079},
				{Name: "start-menu", XMin: 1872, YMin: 0, XMax: 1919, YMax: 47},
			},
		},
		{
			name:  "nothing configured",
			sizes: ZoneSizes{TaskbarEdge: EdgeBottom},
			want:  []Zone{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveZones(screen, tt.sizes)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DeriveZones() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeriveZonesClampsToSmallScreens(t *testing.T) {
	zones := DeriveZones(platform.Geometry{Width: 100, Height: 100}, DefaultZoneSizes())
	for _, z := range zones {
		if z.XMin < 0 || z.YMin < 0 || z.XMax > 99 || z.YMax > 99 {
			t.Errorf("zone %v exceeds the screen", z)
		}
	}
}

func TestZoneContains(t *testing.T) {
	z := Zone{XMin: 10, YMin: 20, XMax: 30, YMax: 40}
	tests := []struct {
		p    platform.Point
		want bool
	}{
		{platform.Point{X: 10, Y: 20}, true},
		{platform.Point{X: 30, Y: 40}, true},
		{platform.Point{X: 20, Y: 30}, true},
		{platform.Point{X: 9, Y: 30}, false},
		{platform.Point{X: 31, Y: 30}, false},
		{platform.Point{X: 20, Y: 19}, false},
		{platform.Point{X: 20, Y: 41}, false},
	}
	for _, tt := range tests {
		if got := z.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestEdgeValid(t *testing.T) {
	for _, e := range []Edge{EdgeBottom, EdgeTop, EdgeLeft, EdgeRight} {
		if !e.Valid() {
			t.Errorf("%q should be valid", e)
		}
	}
	if Edge("diagonal").Valid() {
		t.Error("unknown edge accepted")
	}
}

package quant

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPaletteIndex(t *testing.T) {
	pal := Palette{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 255, G: 0, B: 0},
	}
	tests := []struct {
		name string
		in   Color
		want int
	}{
		{name: "exact black", in: Color{}, want: 0},
		{name: "exact red", in: Color{R: 255}, want: 2},
		{name: "near white", in: Color{R: 200, G: 200, B: 200}, want: 1},
		{name: "dark gray", in: Color{R: 60, G: 60, B: 60}, want: 0},
		{name: "washed red", in: Color{R: 200, G: 30, B: 40}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pal.Index(tt.in); got != tt.want {
				t.Errorf("Index(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPaletteIndexTieBreak(t *testing.T) {
	pal := Palette{{R: 0}, {R: 20}}
	if got := pal.Index(Color{R: 10}); got != 0 {
		t.Errorf("Index() = %d, want 0 (first entry wins a tie)", got)
	}
}

func TestPaletteIndexDuplicateEntries(t *testing.T) {
	pal := Palette{{R: 9, G: 9, B: 9}, {R: 9, G: 9, B: 9}}
	if got := pal.Index(Color{R: 9, G: 9, B: 9}); got != 0 {
		t.Errorf("Index() = %d, want 0 (first of two equal entries)", got)
	}
}

func TestPaletteIndexEmpty(t *testing.T) {
	if got := Palette(nil).Index(Color{R: 1}); got != -1 {
		t.Errorf("Index() on empty palette = %d, want -1", got)
	}
}

func TestPaletteNearest(t *testing.T) {
	pal := Palette{{}, {R: 235, G: 235, B: 235}}
	got, err := pal.Nearest(Color{R: 200, G: 210, B: 190})
	if err != nil {
		t.Fatalf("Nearest() error = %v", err)
	}
	if want := (Color{R: 235, G: 235, B: 235}); got != want {
		t.Errorf("Nearest() = %v, want %v", got, want)
	}
}

func TestPaletteNearestEmpty(t *testing.T) {
	if _, err := (Palette{}).Nearest(Color{}); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("Nearest() error = %v, want ErrEmptyPalette", err)
	}
}

func TestColorPaletteRoundTrip(t *testing.T) {
	pal := Palette{{R: 1, G: 2, B: 3}, {R: 250, G: 251, B: 252}}
	got := FromColors(pal.ColorPalette())
	if diff := cmp.Diff(pal, got); diff != "" {
		t.Errorf("palette changed across conversion (-want +got):\n%s", diff)
	}
}

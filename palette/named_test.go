package palette

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"epdconv/quant"

	"github.com/google/go-cmp/cmp"
)

func TestLoadPaletteBuiltins(t *testing.T) {
	tests := []struct {
		name    string
		entries int
		first   quant.Color
	}{
		{name: "bw", entries: 2, first: quant.Color{}},
		{name: "bw-soft", entries: 2, first: quant.Color{R: 16, G: 16, B: 16}},
		{name: "vivid", entries: 7, first: quant.Color{}},
		{name: "saturated", entries: 7, first: quant.Color{}},
		{name: "datasheet", entries: 7, first: quant.Color{R: 50, G: 39, B: 56}},
		{name: "photo", entries: 7, first: quant.Color{R: 42, G: 45, B: 63}},
		{name: "classic", entries: 7, first: quant.Color{R: 57, G: 48, B: 57}},
		{name: "tuned25", entries: 7, first: quant.Color{R: 57, G: 48, B: 57}},
		{name: "tuned50", entries: 7, first: quant.Color{R: 57, G: 48, B: 57}},
		{name: "measured", entries: 7, first: quant.Color{R: 0x0C, G: 0x0C, B: 0x0E}},
		{name: "gray16", entries: 16, first: quant.Color{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pal, err := LoadPalette(tt.name)
			if err != nil {
				t.Fatalf("LoadPalette(%q) error = %v", tt.name, err)
			}
			if len(pal) != tt.entries {
				t.Errorf("LoadPalette(%q) has %d entries, want %d", tt.name, len(pal), tt.entries)
			}
			if pal[0] != tt.first {
				t.Errorf("LoadPalette(%q)[0] = %v, want %v", tt.name, pal[0], tt.first)
			}
		})
	}
}

func TestNamesCoverRegistry(t *testing.T) {
	names := Names()
	if len(names) != len(named) {
		t.Fatalf("Names() has %d entries, registry has %d", len(names), len(named))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestGrayRampEndpoints(t *testing.T) {
	if got := Gray16[0]; got != (quant.Color{}) {
		t.Errorf("Gray16[0] = %v, want black", got)
	}
	if got := Gray16[15]; got != (quant.Color{R: 255, G: 255, B: 255}) {
		t.Errorf("Gray16[15] = %v, want white", got)
	}
	for i := 1; i < len(Gray16); i++ {
		if Gray16[i-1].R >= Gray16[i].R {
			t.Fatalf("Gray16 not monotonic at %d: %d then %d", i, Gray16[i-1].R, Gray16[i].R)
		}
	}
}

func TestLoadPaletteUnknown(t *testing.T) {
	_, err := LoadPalette("no-such-palette")
	if err == nil {
		t.Fatal("LoadPalette() succeeded for an unknown name")
	}
	if !strings.Contains(err.Error(), "unknown palette") {
		t.Errorf("LoadPalette() error = %v, want it to name the unknown palette", err)
	}
}

func TestLoadPaletteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.pal")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("could not create fixture: %v", err)
	}
	if _, err := WriteTo(f, []quant.Palette{Measured}); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("could not close fixture: %v", err)
	}

	got, err := LoadPalette(path)
	if err != nil {
		t.Fatalf("LoadPalette(%q) error = %v", path, err)
	}
	if diff := cmp.Diff(Measured, got); diff != "" {
		t.Errorf("LoadPalette() mismatch (-want +got):\n%s", diff)
	}
}

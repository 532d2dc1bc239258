package palette

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"epdconv/quant"

	"github.com/google/go-cmp/cmp"
)

// palChunk builds one data chunk the way WriteTo lays it out, for streams
// WriteTo itself cannot produce.
func palChunk(pal quant.Palette) []byte {
	b := []byte("data")
	b = binary.LittleEndian.AppendUint32(b, uint32(4+len(pal)*4))
	b = append(b, 0, 0x03)
	b = binary.LittleEndian.AppendUint16(b, uint16(len(pal)))
	for _, c := range pal {
		b = append(b, c.R, c.G, c.B, 0x00)
	}
	return b
}

func TestRIFFRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		pals []quant.Palette
	}{
		{name: "single", pals: []quant.Palette{Measured}},
		{name: "multiple", pals: []quant.Palette{BW, Vivid, Gray16}},
		{name: "empty palette", pals: []quant.Palette{{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			wrote, err := WriteTo(&buf, tt.pals)
			if err != nil {
				t.Fatalf("WriteTo() error = %v", err)
			}
			var colors int64
			for _, pal := range tt.pals {
				colors += int64(len(pal))
			}
			if wrote != colors {
				t.Errorf("WriteTo() = %d colors, want %d", wrote, colors)
			}

			got, err := ReadFrom(&buf)
			if err != nil {
				t.Fatalf("ReadFrom() error = %v", err)
			}
			if diff := cmp.Diff(tt.pals, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRIFFLayout(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteTo(&buf, []quant.Palette{BW}); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	b := buf.Bytes()

	// RIFF header, form type, one data chunk: 2 colors at 4 bytes each
	// behind a 4-byte LOGPALETTE header.
	if got := string(b[0:4]); got != "RIFF" {
		t.Errorf("magic = %q, want RIFF", got)
	}
	if got := string(b[8:12]); got != "PAL " {
		t.Errorf("form type = %q, want \"PAL \"", got)
	}
	if got := string(b[12:16]); got != "data" {
		t.Errorf("chunk type = %q, want data", got)
	}
	if want := 4 + (4 + 4 + 4 + 2*4); int(b[4]) != want {
		t.Errorf("document size = %d, want %d", b[4], want)
	}
	if got, want := len(b), 8+4+8+4+2*4; got != want {
		t.Errorf("stream is %d bytes, want %d", got, want)
	}
}

func TestReadFromNestedList(t *testing.T) {
	// LIST chunks come from multi-palette editors; WriteTo emits flat
	// data chunks only, so the stream is built by hand.
	inner := append(palChunk(BW), palChunk(BWSoft)...)
	list := []byte("LIST")
	list = binary.LittleEndian.AppendUint32(list, uint32(4+len(inner)))
	list = append(list, "PAL "...)
	list = append(list, inner...)

	body := append(list, palChunk(Vivid)...)
	stream := []byte("RIFF")
	stream = binary.LittleEndian.AppendUint32(stream, uint32(4+len(body)))
	stream = append(stream, "PAL "...)
	stream = append(stream, body...)

	got, err := ReadFrom(bytes.NewReader(stream))
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}
	want := []quant.Palette{BW, BWSoft, Vivid}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("nested palettes out of document order (-want +got):\n%s", diff)
	}
}

func TestReadFromRejectsForeignStream(t *testing.T) {
	// A WAVE header is valid RIFF but not a palette.
	stream := []byte("RIFF\x04\x00\x00\x00WAVE")
	_, err := ReadFrom(bytes.NewReader(stream))
	if err == nil {
		t.Fatal("ReadFrom() accepted a WAVE stream")
	}
	if !strings.Contains(err.Error(), "unsupported RIFF content type") {
		t.Errorf("ReadFrom() error = %v, want content type complaint", err)
	}
}

func TestReadFromRejectsGarbage(t *testing.T) {
	if _, err := ReadFrom(bytes.NewReader([]byte("not a riff stream"))); err == nil {
		t.Fatal("ReadFrom() accepted garbage")
	}
}

func TestReadPaletteRejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteTo(&buf, []quant.Palette{BW}); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	b := buf.Bytes()
	b[20], b[21] = 0, 4 // palVersion, stored big endian

	_, err := ReadFrom(bytes.NewReader(b))
	if err == nil {
		t.Fatal("ReadFrom() accepted palette version 4")
	}
	if !strings.Contains(err.Error(), "unsupported palette version") {
		t.Errorf("ReadFrom() error = %v, want version complaint", err)
	}
}

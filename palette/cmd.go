package palette

import (
	"fmt"
	"image/color"
	"os"

	"epdconv/quant"

	"github.com/lucasb-eyer/go-colorful"
)

// CLICmd groups the palette inspection subcommands.
type CLICmd struct {
	Show   ShowCmd   `cmd:"" help:"Print a palette entry by entry"`
	Export ExportCmd `cmd:"" help:"Write a palette to a RIFF PAL file"`
}

type ShowCmd struct {
	Palette string `arg:"" help:"Palette name (${palette_names}) or PAL file in RIFF format"`
}

// Run prints one line per entry: index, hex, RGB and CIE Lab.
func (c *ShowCmd) Run() error {
	pal, err := LoadPalette(c.Palette)
	if err != nil {
		return err
	}

	for i, entry := range pal {
		cf, _ := colorful.MakeColor(color.NRGBA{R: entry.R, G: entry.G, B: entry.B, A: 0xff})
		l, a, b := cf.Lab()
		fmt.Printf("%2d  %s  rgb(%3d, %3d, %3d)  lab(%6.1f, %6.1f, %6.1f)\n",
			i, cf.Hex(), entry.R, entry.G, entry.B, l*100, a*100, b*100)
	}

	return nil
}

type ExportCmd struct {
	Palette string `arg:"" help:"Palette name (${palette_names}) or PAL file in RIFF format"`
	Out     string `arg:"" help:"Destination file" type:"path"`
}

func (c *ExportCmd) Run() error {
	pal, err := LoadPalette(c.Palette)
	if err != nil {
		return err
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", c.Out, err)
	}

	if _, err := WriteTo(f, []quant.Palette{pal}); err != nil {
		f.Close()
		return fmt.Errorf("could not export palette: %w", err)
	}

	return f.Close()
}

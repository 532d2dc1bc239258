package main

import (
	"log/slog"
	"os"
	"strings"

	"epdconv/convert"
	"epdconv/orient"
	"epdconv/palette"
	"epdconv/parallel"

	"github.com/alecthomas/kong"
)

var cli struct {
	Convert convert.CLICmd `cmd:"" help:"Convert photos into palette-constrained bitmaps for e-paper panels"`
	Orient  orient.CLICmd  `cmd:"" help:"Sort images into portrait and landscape folders"`
	Palette palette.CLICmd `cmd:"" help:"Inspect and export palettes"`

	Workers int  `help:"Number of parallel workers (0 uses every CPU)" default:"0"`
	Verbose bool `help:"Enable debug logging" short:"v"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("epdconv"),
		kong.Description("Prepares photos for 7-color e-paper panels."),
		kong.Vars{"palette_names": strings.Join(palette.Names(), ", ")},
		kong.BindToProvider(func() (*parallel.Pool, error) {
			return parallel.Start(cli.Workers), nil
		}),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	kctx.FatalIfErrorf(kctx.Run())
}

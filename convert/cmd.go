// Package convert turns photos into palette-constrained bitmaps sized for
// e-paper panels.
package convert

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"epdconv/palette"
	"epdconv/parallel"
	"epdconv/quant"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Scan        string  `help:"Image file or folder to scan" default:"."`
	Dest        string  `help:"Destination folder for converted pictures. Relative to scan dir if not absolute." default:"converted"`
	Width       int     `help:"Panel width in landscape orientation" default:"800" group:"layout"`
	Height      int     `help:"Panel height in landscape orientation" default:"480" group:"layout"`
	Orientation string  `help:"Panel orientation; auto follows each image" enum:"auto,landscape,portrait" default:"auto" group:"layout"`
	Mode        string  `help:"fit crops to fill the panel, pad letterboxes onto a solid background" enum:"fit,pad" default:"pad" group:"layout"`
	PadColor    string  `help:"Background color for pad mode (#RGB, #RGBA, #RRGGBB or #RRGGBBAA). Defaults to white, or black for dark images." group:"layout"`
	BW          bool    `help:"Black and white mode" group:"palette"`
	Palette     string  `help:"Palette name (${palette_names}) or PAL file in RIFF format" group:"palette"`
	Saturation  float64 `help:"Blend ratio between the vivid and saturated palettes for flat quantization" default:"0.3333333333333333" group:"palette"`
	Dither      bool    `help:"Apply error diffusion instead of flat quantization" group:"palette"`
	Algo        string  `help:"Error diffusion algorithm" enum:"diffuse,floyd-steinberg,false-floyd-steinberg,jarvis-judice-ninke,atkinson,stucki,burkes,sierra,sierra-lite" default:"diffuse" group:"palette"`
	Serpentine  bool    `help:"Serpentine scan, for the named matrix algorithms only" group:"palette"`
	Strength    float64 `help:"Error diffusion strength, for the named matrix algorithms only" default:"1.0" group:"palette"`
	Blur        float64 `help:"Gaussian blur sigma applied before color reduction (0 disables)" group:"palette"`
	Flip        bool    `help:"Mirror the output horizontally for panels scanned right to left" default:"true" negatable:""`
	Format      string  `help:"Output format. If prefixed with 'unsup:' will convert only unsupported formats" enum:"bmp,unsup:bmp,same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,tiff,unsup:tiff" default:"bmp"`

	// resolved during Validate
	scanFile    bool
	padColor    quant.Color
	padColorSet bool
	fixed       quant.Palette
	paletteTag  string
	blends      *quant.BlendCache
}

func (c *CLICmd) Validate() error {
	scanPath, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		info, err = os.Stat(scanPath)
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanPath
	c.scanFile = !info.IsDir()

	base := c.Scan
	if c.scanFile {
		base = filepath.Dir(c.Scan)
	}
	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(base, c.Dest)
	}

	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("invalid panel size: %dx%d", c.Width, c.Height)
	}

	if c.PadColor != "" {
		col, err := parseHexToColor(c.PadColor)
		if err != nil {
			return err
		}
		c.padColor = quant.FromColor(col)
		c.padColorSet = true
	}

	switch {
	case c.Palette != "":
		pal, err := palette.LoadPalette(c.Palette)
		if err != nil {
			return err
		}
		if len(pal) == 0 {
			return fmt.Errorf("palette %q has no colors", c.Palette)
		}
		if len(pal) > 256 {
			return fmt.Errorf("palette %q has %d colors, indexed output allows at most 256", c.Palette, len(pal))
		}
		c.fixed = pal
		name := filepath.Base(c.Palette)
		c.paletteTag = strings.TrimSuffix(name, filepath.Ext(name))
	case !c.BW && !c.Dither:
		if c.blends, err = quant.NewBlendCache(palette.Vivid, palette.Saturated); err != nil {
			return err
		}
	}

	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	scanDir := c.Scan
	var names []string
	if c.scanFile {
		scanDir = filepath.Dir(c.Scan)
		names = []string{filepath.Base(c.Scan)}
	} else {
		files, err := os.ReadDir(c.Scan)
		if err != nil {
			return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			names = append(names, file.Name())
		}
	}

	var processedCount, errCount atomic.Uint64
	for _, name := range names {
		pool.Do(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(scanDir, fileName)
				if err := c.convertOne(filePath); err != nil {
					errCount.Add(1)
					slog.Error("could not convert image", "file", filePath, "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(name))
	}

	pool.Wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

// convertOne runs the whole pipeline for a single file: decode, optional
// blur, scale to panel size, reduce to the palette, mirror, save.
func (c *CLICmd) convertOne(filePath string) error {
	logger := slog.Default().With("file", filePath)

	imgFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	img, imgType, err := image.Decode(imgFile)
	if closeErr := imgFile.Close(); closeErr != nil {
		logger.Error("could not close image", "error", closeErr)
	}
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}

	if c.Blur > 0 {
		img = blurImage(img, c.Blur)
	}

	w, h := targetSize(c.Orientation, c.Width, c.Height, img.Bounds())
	img = c.resizeToPanel(logger, img, w, h)

	pal, tag := c.filePalette()
	reduced, err := c.reduce(quant.FromImage(img), pal)
	if err != nil {
		return fmt.Errorf("could not reduce colors: %w", err)
	}

	out := reduced
	if c.Flip {
		out = imaging.FlipH(reduced)
	}

	name := outputName(filepath.Base(filePath), c.Mode, tag)
	if err := save(toPaletted(out, pal), imgType, c.Format, c.Dest, name); err != nil {
		return fmt.Errorf("could not save image: %w", err)
	}
	logger.Debug("converted", "dest", filepath.Join(c.Dest, name))
	return nil
}

// filePalette picks the palette for one file along with the tag embedded
// in the output name. Explicit --palette wins, then --bw, then the
// measured ink set for dithering; flat quantization gets the saturation
// blend.
func (c *CLICmd) filePalette() (quant.Palette, string) {
	switch {
	case c.fixed != nil:
		return c.fixed, c.paletteTag
	case c.BW:
		return palette.BW, "bw"
	case c.Dither:
		return palette.Measured, c.Algo
	default:
		return c.blends.Get(c.Saturation), fmt.Sprintf("%d", int(c.Saturation*100))
	}
}

// outputName builds the destination name without its extension; save
// appends one once the output format is settled.
func outputName(srcName, mode, tag string) string {
	stem := strings.TrimSuffix(srcName, filepath.Ext(srcName))
	return fmt.Sprintf("%s_%s_%s_converted", stem, mode, tag)
}

func parseHexToColor(s string) (color.Color, error) {
	var c color.RGBA
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient pad color fields: %d", n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A = 0xFF
	case 5:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x%x", &c.R, &c.G, &c.B, &c.A)
		if err != nil {
			return nil, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient pad color fields: %d", n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A |= c.A << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient pad color fields: %d", n)
		}

		c.A = 0xFF
	case 9:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
		if err != nil {
			return nil, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient pad color fields: %d", n)
		}
	default:
		return nil, fmt.Errorf("invalid pad color, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA")
	}

	return c, nil
}

// canEncode reports whether imgType is a format save knows how to write.
func canEncode(imgType string) bool {
	switch imgType {
	case "gif", "jpeg", "png", "bmp", "tiff":
		return true
	}
	return false
}

// save encodes img into destDir under baseName plus the settled extension,
// writing through a temporary file that is renamed into place only after a
// complete encode.
func save(img image.Image, imgType, outType, destDir, baseName string) (err error) {
	outType, unsupOnly := strings.CutPrefix(outType, "unsup:")
	if (unsupOnly && canEncode(imgType)) || (outType == "same") {
		outType = imgType
	}

	destName := fmt.Sprintf("%s.%s", baseName, outType)

	outFile, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if !canRename {
			if defErr := os.Remove(outFile.Name()); defErr != nil {
				slog.Error("could not remove temporary destination", "name", outFile.Name(), "error", defErr)
			}
			return
		}
		if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
			err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
		}
	}()

	switch outType {
	case "gif":
		if err = gif.Encode(outFile, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF destination %q: %w", destName, err)
		}
	case "jpeg":
		if err = jpeg.Encode(outFile, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG destination %q: %w", destName, err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err = enc.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode PNG destination %q: %w", destName, err)
		}
	case "bmp":
		if err = bmp.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode BMP destination %q: %w", destName, err)
		}
	case "tiff":
		if err = tiff.Encode(outFile, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF destination %q: %w", destName, err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", outType)
	}

	canRename = true
	return err
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}

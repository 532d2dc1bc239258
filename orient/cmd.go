// Package orient sorts mixed photo folders into portrait and landscape
// subfolders, one copy or move per decodable image.
package orient

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// OpParams is the flag set shared by the cp and mv subcommands.
type OpParams struct {
	Scan      string `help:"Source folder to scan" default:"."`
	Portrait  string `help:"Destination folder for portrait images. Relative to scan dir if not absolute." default:"portrait"`
	Landscape string `help:"Destination folder for landscape images. Relative to scan dir if not absolute." default:"landscape"`
}

func (p *OpParams) Validate() error {
	scanDir, err := filepath.Abs(p.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", p.Scan, err)
	}
	p.Scan = scanDir

	if !filepath.IsAbs(p.Portrait) {
		p.Portrait = filepath.Join(scanDir, p.Portrait)
	}

	if !filepath.IsAbs(p.Landscape) {
		p.Landscape = filepath.Join(scanDir, p.Landscape)
	}

	return nil
}

// CLICmd groups the orientation sorting subcommands.
type CLICmd struct {
	Cp CpCmd `cmd:"" help:"Copy images to their orientation folders"`
	Mv MvCmd `cmd:"" help:"Move images to their orientation folders"`
}

type CpCmd struct {
	OpParams
}

func (c *CpCmd) Run() error { return c.scatter(copyFile) }

type MvCmd struct {
	OpParams
}

func (c *MvCmd) Run() error { return c.scatter(moveFile) }

// scatter routes every regular file in the scan folder through fileOp,
// choosing the destination by decoded aspect ratio. Square images count as
// landscape. Files that fail to decode are logged and skipped; they do not
// count as errors.
func (p *OpParams) scatter(fileOp func(src, dest string) error) error {
	if err := os.MkdirAll(p.Portrait, 0o755); err != nil {
		return fmt.Errorf("unable to create portrait destination folder %q: %w", p.Portrait, err)
	}

	if err := os.MkdirAll(p.Landscape, 0o755); err != nil {
		return fmt.Errorf("unable to create landscape destination folder %q: %w", p.Landscape, err)
	}

	files, err := os.ReadDir(p.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", p.Scan, err)
	}

	var portraitCount, landscapeCount, errCount int
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		name := filepath.Join(p.Scan, file.Name())
		img, err := os.Open(name)
		if err != nil {
			slog.Error("could not open image", "file", name, "error", err)
			continue
		}

		imgConf, _, err := image.DecodeConfig(img)
		if err != nil {
			slog.Error("could not read image", "file", name, "error", err)
			img.Close()
			continue
		}
		if err = img.Close(); err != nil {
			slog.Error("could not close image", "file", name, "error", err)
		}

		var dest string
		if imgConf.Height > imgConf.Width {
			portraitCount++
			dest = filepath.Join(p.Portrait, file.Name())
		} else {
			landscapeCount++
			dest = filepath.Join(p.Landscape, file.Name())
		}

		if err = fileOp(name, dest); err != nil {
			errCount++
			slog.Error("could not place image", "from", name, "to", dest, "error", err)
		}
	}

	slog.Info("stats", "portraits", portraitCount, "landscapes", landscapeCount, "errors", errCount, "total",
		portraitCount+landscapeCount)

	if errCount > 0 {
		return fmt.Errorf("error processing %d files", errCount)
	}
	return nil
}

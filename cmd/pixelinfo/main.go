// Command pixelinfo reports the effective pixel format, the
// resulting unique color count, and the file offset under a given
// pixel coordinate, without writing an image out. It exists for
// scripted inspection of a capture where pixeldbg's BMP/TGA output
// would be discarded unread.
//
// pixelinfo registers the shared config flags, but it does not apply a
// -config overlay and does not load a -palette file: both are accepted
// and ignored.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/goopsie/pixeldbg/pkg/config"
	"github.com/goopsie/pixeldbg/pkg/decode"
	"github.com/goopsie/pixeldbg/pkg/raster"
	"github.com/goopsie/pixeldbg/pkg/window"
)

func main() {
	opts := config.Default()
	fs := flag.NewFlagSet("pixelinfo", flag.ExitOnError)
	opts.RegisterFlags(fs)

	var pickX, pickY int
	var hasPick bool
	fs.Func("pick", "report the file offset under pixel x,y (format \"x,y\")", func(v string) error {
		_, err := fmt.Sscanf(v, "%d,%d", &pickX, &pickY)
		hasPick = true
		return err
	})

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	format, err := opts.BuildFormat()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pixel format:", err)
		os.Exit(1)
	}
	mode, err := opts.BuildMode()
	if err != nil {
		fmt.Fprintln(os.Stderr, "mode:", err)
		os.Exit(1)
	}

	w, err := window.Open(opts.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer w.Close()

	fmt.Printf("file size:       %d bytes\n", w.Size())

	capacity := opts.Width * opts.Height * 4
	data, err := w.Read(opts.Offset, uint32(capacity))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	req := decode.Request{
		Input:       data,
		Width:       uint32(opts.Width),
		Height:      uint32(opts.Height),
		Format:      format,
		Mode:        mode,
		Tile:        opts.BuildTileSpec(),
		ChannelMask: opts.BuildChannelMask(),
	}
	effective := decode.EffectiveFormat(req)
	fmt.Printf("effective format: bits=%v order=%v pixel_size=%d\n",
		effective.BitsPerChannel, effective.ChannelOrder, effective.PixelSizeBytes)

	out := raster.New(int(opts.Width), int(opts.Height))
	if err := decode.Decode(req, out.Pix); err != nil {
		fmt.Fprintln(os.Stderr, "decode:", err)
		os.Exit(1)
	}
	fmt.Printf("unique colors:   %d\n", out.CountUniqueColors())

	if hasPick {
		offset, exact := window.Pick(pickX, pickY, uint32(opts.Width), uint32(opts.Height),
			opts.FlipVertical, opts.FlipHorizontal, mode, int(effective.PixelSizeBytes), opts.Offset)
		note := ""
		if !exact {
			note = " (not exact: mode has no reliable inverse mapping)"
		}
		fmt.Printf("pixel (%d,%d) -> file offset %d%s\n", pickX, pickY, offset, note)
	}
}

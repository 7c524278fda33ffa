// Command pixeldbg decodes a raw byte stream into a viewable BMP or
// TGA image according to a pixel format, decode mode, and bitwise
// pipeline, the same parameters the original GUI exposed as live
// widgets.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goopsie/pixeldbg/pkg/config"
	"github.com/goopsie/pixeldbg/pkg/decode"
	"github.com/goopsie/pixeldbg/pkg/imgfile"
	"github.com/goopsie/pixeldbg/pkg/pixfmt"
	"github.com/goopsie/pixeldbg/pkg/raster"
	"github.com/goopsie/pixeldbg/pkg/window"
)

var (
	batchDir   string
	pipeline   stringListFlag
	channelArg string
	verbose    bool
)

// stringListFlag collects repeated -pipeline flags in order, the way
// the pipeline's five stages are ordered.
type stringListFlag []string

func (s *stringListFlag) String() string { return strings.Join(*s, ",") }
func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	opts := config.Default()

	// A -config overlay is applied to opts's defaults before flags are
	// registered, so explicit command-line flags still win; flag.FlagSet
	// has no re-parse step, so this is a deliberate two-pass scan of
	// os.Args, the first pass looking for -config alone.
	var cfgPath string
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		name, val, hasVal := strings.Cut(strings.TrimLeft(args[i], "-"), "=")
		if !strings.HasPrefix(args[i], "-") || name != "config" {
			continue
		}
		if hasVal {
			cfgPath = val
		} else if i+1 < len(args) {
			cfgPath = args[i+1]
		}
	}
	if cfgPath != "" {
		if err := config.LoadOverlay(cfgPath, &opts); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fs := flag.NewFlagSet("pixeldbg", flag.ExitOnError)
	opts.RegisterFlags(fs)
	fs.StringVar(&batchDir, "batch", "", "decode every file in this directory instead of a single -input")
	fs.Var(&pipeline, "pipeline", "bitwise pipeline stage \"op:rr.gg.bb\", repeatable up to 5 times")
	fs.StringVar(&channelArg, "channel-order", "", "1-based channel order, e.g. 1,2,3,4")
	fs.BoolVar(&verbose, "verbose", false, "debug-level logging")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	if channelArg != "" {
		order, err := parseChannelOrder(channelArg)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -channel-order")
		}
		opts.ChannelOrder = order
	}

	opts.Pipeline = append(opts.Pipeline, pipeline...)

	if batchDir != "" {
		if err := runBatch(opts, batchDir); err != nil {
			log.Fatal().Err(err).Msg("batch decode failed")
		}
		return
	}

	if err := opts.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid options")
	}
	if err := decodeOne(opts, opts.Input, resolveOutput(opts)); err != nil {
		log.Fatal().Err(err).Msg("decode failed")
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func parseChannelOrder(s string) ([4]int, error) {
	var order [4]int
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return order, fmt.Errorf("expected four comma-separated values")
	}
	for i, p := range parts {
		var v int
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &v); err != nil {
			return order, fmt.Errorf("channel %d: %w", i, err)
		}
		order[i] = v
	}
	return order, nil
}

func resolveOutput(o config.Options) string {
	if o.Output != "" {
		return o.Output
	}
	return imgfile.SuggestedName(o.Input, int(o.Width), int(o.Height), o.Offset)
}

// decodeOne builds and runs a single decode.Request and writes the
// result to outPath.
func decodeOne(o config.Options, inputPath, outPath string) error {
	format, err := o.BuildFormat()
	if err != nil {
		return fmt.Errorf("pixel format: %w", err)
	}
	mode, err := o.BuildMode()
	if err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	pipelineStages, err := config.BuildPipeline(o.Pipeline)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	w, err := window.Open(inputPath)
	if err != nil {
		return err
	}
	defer w.Close()

	capacity := o.Width * o.Height * 4
	data, err := w.Read(o.Offset, uint32(capacity))
	if err != nil {
		return err
	}

	var palette *decode.Palette
	if o.PaletteFile != "" {
		palette, err = loadPalette(o.PaletteFile, format)
		if err != nil {
			return fmt.Errorf("palette: %w", err)
		}
	}

	out := raster.New(int(o.Width), int(o.Height))
	req := decode.Request{
		Input:       data,
		Width:       uint32(o.Width),
		Height:      uint32(o.Height),
		Format:      format,
		Mode:        mode,
		Tile:        o.BuildTileSpec(),
		ChannelMask: o.BuildChannelMask(),
		Palette:     palette,
		Pipeline:    pipelineStages,
	}
	if err := decode.Decode(req, out.Pix); err != nil {
		return err
	}

	if o.FlipVertical {
		out.FlipVertical()
	}
	if o.FlipHorizontal {
		out.FlipHorizontal()
	}

	var encoded []byte
	switch o.Format {
	case "tga":
		encoded = imgfile.EncodeTGA(out)
	default:
		encoded = imgfile.EncodeBMP(out)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	log.Info().Str("input", inputPath).Str("output", outPath).Int("colors", out.CountUniqueColors()).Msg("decoded")
	return nil
}

func loadPalette(path string, format pixfmt.Format) (*decode.Palette, error) {
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		if entries, err := imgfile.DecodeBMPPalette(path); err == nil {
			p := &decode.Palette{}
			copy(p.Entries[:], entries)
			return p, nil
		}
	}
	raw, err := imgfile.ReadPaletteSource(path, decode.PaletteSize*4)
	if err != nil {
		return nil, err
	}
	return decode.PaletteFromRaw(raw, format), nil
}

// runBatch walks dir decoding every regular file it contains, fanning
// the work out across a bounded worker pool sized to the machine, the
// same shape as the teacher's zstd frame-extraction pool.
func runBatch(o config.Options, dir string) error {
	if err := o.ValidateShared(); err != nil {
		return err
	}

	type job struct{ path string }
	numWorkers := runtime.NumCPU()
	jobs := make(chan job, numWorkers*2)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures int

	worker := func() {
		defer wg.Done()
		for j := range jobs {
			outPath := j.path + ".bmp"
			if o.Format == "tga" {
				outPath = j.path + ".tga"
			}
			if err := decodeOne(o, j.path, outPath); err != nil {
				log.Error().Err(err).Str("path", j.path).Msg("batch decode failed")
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}
	}
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker()
	}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		jobs <- job{path: path}
		return nil
	})
	close(jobs)
	wg.Wait()

	if err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("batch decode: %d file(s) failed", failures)
	}
	return nil
}

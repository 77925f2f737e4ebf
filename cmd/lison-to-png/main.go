// Command lison-to-png converts a lison image to PNG.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/benoitkugler/lison"
	"github.com/benoitkugler/lison/lisongg"
	"github.com/benoitkugler/lison/lisonraster"
)

func main() {
	var (
		output     = flag.String("o", "", "output file name (default <input>.png)")
		resolution = flag.Float64("r", 96, "resolution in ppi")
		scale      = flag.Float64("s", 1, "scale ratio")
		backend    = flag.String("backend", "rasterx", "rasterizer: rasterx or gg")
		verbose    = flag.Bool("v", false, "log rendering details to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: lison-to-png [-o output] [-r resolution] [-s scale] [-backend name] [-v] input")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		lison.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	input := flag.Arg(0)
	if *output == "" {
		*output = input + ".png"
	}

	img, err := lison.ReadImage(input)
	if err != nil {
		log.Fatalf("failed to read '%s': %v", input, err)
	}
	conf := lison.RenderConfig{Resolution: *resolution, Scale: *scale}
	if err := convert(img, *output, conf, *backend); err != nil {
		log.Fatal(err)
	}
}

// convert renders img, then writes the output file:
// nothing is created when rendering fails.
func convert(img *lison.Image, output string, conf lison.RenderConfig, backend string) error {
	var (
		buf bytes.Buffer
		err error
	)
	switch backend {
	case "rasterx":
		err = lisonraster.EncodePNG(&buf, img, conf)
	case "gg":
		err = lisongg.EncodePNG(&buf, img, conf)
	default:
		return fmt.Errorf("unknown backend '%s'", backend)
	}
	if err != nil {
		return fmt.Errorf("rendering operation failed: %w", err)
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write to '%s': %w", output, err)
	}
	return nil
}

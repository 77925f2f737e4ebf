// Command lison-to-pdf converts a lison image to a one page PDF document.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/benoitkugler/lison"
	"github.com/benoitkugler/lison/lisonpdf"
)

func main() {
	var (
		output  = flag.String("o", "", "output file name (default <input>.pdf)")
		scale   = flag.Float64("s", 1, "scale ratio")
		verbose = flag.Bool("v", false, "log rendering details to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: lison-to-pdf [-o output] [-s scale] [-v] input")
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
		*output = input + ".pdf"
	}

	img, err := lison.ReadImage(input)
	if err != nil {
		log.Fatalf("failed to read '%s': %v", input, err)
	}
	pdf, err := lisonpdf.NewPDF(img, lison.RenderConfig{Scale: *scale})
	if err != nil {
		log.Fatalf("rendering operation failed: %v", err)
	}
	if err := pdf.OutputFileAndClose(*output); err != nil {
		log.Fatalf("failed to write to '%s': %v", *output, err)
	}
}

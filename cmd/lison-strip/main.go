// Command lison-strip removes editing metadata from a lison image:
// groups are flattened and the editor tag is dropped.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/benoitkugler/lison"
)

func main() {
	var (
		output = flag.String("o", "", "output file name (default stripped-<input>)")
		format = flag.String("format", "json", "output encoding: json or cbor")
	)
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: lison-strip [-o output] [-format json|cbor] input")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)
	if *output == "" {
		dir, file := filepath.Split(input)
		*output = filepath.Join(dir, "stripped-"+file)
	}

	img, err := lison.ReadImage(input)
	if err != nil {
		log.Fatalf("failed to read '%s': %v", input, err)
	}
	stripped := lison.Strip(img)

	var out []byte
	switch *format {
	case "json":
		out, err = stripped.MarshalJSON()
	case "cbor":
		out, err = lison.MarshalCBOR(stripped)
	default:
		log.Fatalf("unknown format '%s'", *format)
	}
	if err != nil {
		log.Fatalf("failed to strip the image: %v", err)
	}
	if err := os.WriteFile(*output, out, 0o644); err != nil {
		log.Fatalf("failed to write to '%s': %v", *output, err)
	}
}

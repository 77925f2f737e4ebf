// Command lison-info prints a summary of lison images:
// dimensions, resources, shape counts and geometric bounds.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/benoitkugler/lison"
)

type stats struct {
	groups, curves, regions, subPaths, segments int
	depth                                       int
}

func collect(shapes []lison.Shape, depth int, st *stats) {
	if depth > st.depth {
		st.depth = depth
	}
	for _, s := range shapes {
		switch s := s.(type) {
		case lison.Group:
			st.groups++
			collect(s.Content, depth+1, st)
		case lison.Curve:
			st.curves++
			st.segments += len(s.Data.Segments)
		case lison.Region:
			st.regions++
			st.subPaths += len(s.Data)
			for _, cd := range s.Data {
				st.segments += len(cd.Segments)
			}
		}
	}
}

func main() {
	resolution := flag.Float64("r", 96, "resolution in ppi, for the raster size")
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("usage: lison-info [-r resolution] input...")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, input := range flag.Args() {
		img, err := lison.ReadImage(input)
		if err != nil {
			log.Fatalf("failed to read '%s': %v", input, err)
		}
		var st stats
		collect(img.Shapes, 0, &st)

		fmt.Fprintf(w, "%s\n", input)
		fmt.Fprintf(w, "  size\t%g x %g units, %g units per inch\n", img.Width, img.Height, img.UnitPerInch)
		if img.Editor != nil {
			fmt.Fprintf(w, "  editor\t%s\n", *img.Editor)
		}
		conf := lison.RenderConfig{Resolution: *resolution, Scale: 1}
		if pw, ph, err := conf.Dimensions(img); err != nil {
			fmt.Fprintf(w, "  raster\t%v\n", err)
		} else {
			fmt.Fprintf(w, "  raster\t%d x %d pixels at %g ppi\n", pw, ph, *resolution)
		}
		fmt.Fprintf(w, "  resources\t%d pens, %d brushes\n", len(img.Pens), len(img.Brushes))
		fmt.Fprintf(w, "  shapes\t%d curves, %d regions (%d sub-paths), %d groups, depth %d\n",
			st.curves, st.regions, st.subPaths, st.groups, st.depth)
		fmt.Fprintf(w, "  segments\t%d\n", st.segments)
		if bbox, ok := img.Bounds(); ok {
			fmt.Fprintf(w, "  bounds\t[%g %g %g %g]\n", bbox.X0, bbox.Y0, bbox.X1, bbox.Y1)
		}
		if err := img.Validate(); err != nil {
			fmt.Fprintf(w, "  invalid\t%v\n", err)
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}

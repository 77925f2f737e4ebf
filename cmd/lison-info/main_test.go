package main

import (
	"path/filepath"
	"testing"

	"github.com/benoitkugler/lison"
)

func TestCollect(t *testing.T) {
	img, err := lison.ReadImage(filepath.Join("..", "..", "testdata", "sample.json"))
	if err != nil {
		t.Fatal(err)
	}
	var st stats
	collect(img.Shapes, 0, &st)
	want := stats{groups: 2, curves: 1, regions: 2, subPaths: 3, segments: 10, depth: 2}
	if st != want {
		t.Errorf("expected %+v, got %+v", want, st)
	}
}

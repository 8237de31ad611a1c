// Command heightgen writes a synthetic height map that erode can take as input.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ob6160/DropletErosion/generators"
	"github.com/ob6160/DropletErosion/imageio"
	"gopkg.in/src-d/go-billy.v4/osfs"
)

func newGenerator(name string, width, height int, seed int64, spread, reduce float64) (generators.TerrainGenerator, error) {
	switch name {
	case "midpoint":
		var gen = generators.NewMidPointDisplacement(width, height, seed)
		gen.Spread = float32(spread)
		gen.Reduce = float32(reduce)
		return gen, nil
	case "perlin":
		return generators.NewPerlin(width, height, seed), nil
	case "ramp":
		return generators.Ramp{Width: width, Height: height, From: 0, To: 1, Horizontal: true}, nil
	}
	return nil, fmt.Errorf("unknown generator %q", name)
}

func main() {
	var (
		name   = flag.String("generator", "midpoint", "midpoint, perlin or ramp")
		width  = flag.Int("width", 256, "image width")
		height = flag.Int("height", 256, "image height")
		seed   = flag.Int64("seed", 0, "random seed")
		spread = flag.Float64("spread", 0.5, "midpoint displacement spread")
		reduce = flag.Float64("reduce", 0.5, "midpoint displacement spread reduction per level")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <output>\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}
	if *width <= 0 || *height <= 0 {
		log.Fatalf("invalid size %dx%d", *width, *height)
	}

	gen, err := newGenerator(*name, *width, *height, *seed, *spread, *reduce)
	if err != nil {
		log.Fatal(err)
	}
	var field = gen.Generate()
	generators.Normalize(field, 0, 255)

	output, err := filepath.Abs(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if err := imageio.Save(osfs.New("/"), output, field); err != nil {
		log.Fatalf("save height map: %v", err)
	}
	log.Printf("wrote %dx%d %s height map to %s", *width, *height, *name, output)
}

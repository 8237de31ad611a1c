package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ob6160/DropletErosion/erosion"
	"github.com/ob6160/DropletErosion/imageio"
	"github.com/ob6160/DropletErosion/terrain"
	"github.com/pkg/errors"
	"github.com/xlab/closer"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"
)

const (
	exitOK          = 0
	exitUsage       = 1
	exitEncode      = 2
	exitInterrupted = 130
	// The decoder failure keeps the historical -1 status, which the OS
	// reports as 255.
	exitDecode = 255
)

type options struct {
	configPath string
	seed       int64
	iterations int
	density    int
	brush      string
	progress   int
	set        map[string]bool
	input      string
	output     string
}

func parseFlags() (*options, error) {
	var opts = options{set: map[string]bool{}}
	flag.StringVar(&opts.configPath, "config", "", "yaml file with erosion parameters")
	flag.Int64Var(&opts.seed, "seed", 0, "random seed")
	flag.IntVar(&opts.iterations, "iterations", 0, "total number of droplets")
	flag.IntVar(&opts.density, "density", 0, "droplets per pixel, used when -iterations is not set")
	flag.StringVar(&opts.brush, "brush", "soft", "brush mode: soft or hard")
	flag.IntVar(&opts.progress, "progress", 0, "log progress every n droplets")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <input> <output>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	if flag.NArg() != 2 {
		return nil, errors.Errorf("Incorrect number of arguments given! Expected 2, got %d.", flag.NArg())
	}
	opts.input = flag.Arg(0)
	opts.output = flag.Arg(1)
	return &opts, nil
}

func loadConfig(fs billy.Filesystem, opts *options) (erosion.Config, error) {
	var cfg = erosion.DefaultConfig()
	if opts.configPath != "" {
		path, err := filepath.Abs(opts.configPath)
		if err != nil {
			return cfg, err
		}
		if cfg, err = erosion.LoadConfig(fs, path); err != nil {
			return cfg, err
		}
	}

	if opts.set["seed"] {
		cfg.Seed = opts.seed
	}
	if opts.set["iterations"] {
		cfg.Iterations = opts.iterations
	}
	if opts.set["density"] {
		cfg.Iterations = 0
		cfg.IterationsPerPixel = opts.density
	}
	if opts.set["brush"] {
		mode, err := terrain.ParseBrushMode(opts.brush)
		if err != nil {
			return cfg, err
		}
		cfg.Brush = mode
	}
	if opts.set["progress"] {
		cfg.ProgressInterval = opts.progress
	}
	return cfg, cfg.Validate()
}

// run returns the failure that decides the exit status, or nil.
func run(ctx context.Context, opts *options) error {
	var fs = osfs.New("/")

	cfg, err := loadConfig(fs, opts)
	if err != nil {
		log.Printf("config: %v", err)
		return err
	}

	input, err := filepath.Abs(opts.input)
	if err != nil {
		log.Printf("input: %v", err)
		return err
	}
	output, err := filepath.Abs(opts.output)
	if err != nil {
		log.Printf("output: %v", err)
		return err
	}

	field, err := imageio.Load(fs, input)
	if err != nil {
		reportIOError("decoder", err)
		return err
	}

	var eroder = erosion.NewEroder(field, cfg)
	var width, height = field.Dimensions()
	log.Printf("eroding %dx%d height field with %d droplets", width, height, eroder.Droplets())

	stats, err := eroder.Run(ctx)
	if err != nil {
		log.Printf("interrupted after %d droplets: %v", eroder.Iterations(), err)
		return errors.Wrap(err, "erode")
	}
	log.Printf("done: %s", stats)

	if err := imageio.Save(fs, output, eroder.Field()); err != nil {
		reportIOError("encoder", err)
		return err
	}
	return nil
}

// exitCode maps the result of run to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ioErr *imageio.Error
	if errors.As(err, &ioErr) {
		switch ioErr.Code {
		case imageio.CodeOpen, imageio.CodeDecode:
			return exitDecode
		default:
			return exitEncode
		}
	}
	if errors.Cause(err) == context.Canceled {
		return exitInterrupted
	}
	return exitUsage
}

func reportIOError(side string, err error) {
	var ioErr *imageio.Error
	if errors.As(err, &ioErr) {
		fmt.Printf("%s error %d: %v\n", side, int(ioErr.Code), err)
		return
	}
	fmt.Printf("%s error: %v\n", side, err)
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Println(err)
		flag.Usage()
		closer.Exit(exitUsage)
		return
	}

	// closer exits with 0 after a signal and with 1 for any other failure,
	// so the bound cleanup ends the process with the real status itself.
	var code = exitOK
	var ctx, cancel = context.WithCancel(context.Background())
	doneC := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-doneC
		if code != exitOK {
			os.Exit(code)
		}
	})

	code = exitCode(run(ctx, opts))
	close(doneC)
	closer.Exit(code)
}

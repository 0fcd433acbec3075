package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/ironsheep/image-segment-mcp/internal/config"
	"github.com/ironsheep/image-segment-mcp/internal/logger"
	"github.com/ironsheep/image-segment-mcp/internal/raster"
	"github.com/ironsheep/image-segment-mcp/internal/report"
	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// options holds the parsed command line. Flags left unset fall back to the
// config file, then to defaults.
type options struct {
	input      string
	configPath string
	writeConf  string
	logFile    string
	version    bool
	flags      *pflag.FlagSet

	output       string
	chart        string
	outline      string
	outlineColor string
	threshold    int
	order        string
	blur         float64
	maxDim       int
	top          int
	plain        bool
	verbose      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintf(stdout, "image-segment %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return nil
	}

	logger.Setup(stderr)
	if opts.logFile != "" {
		f, err := logger.Init(opts.logFile)
		if err != nil {
			return err
		}
		defer f.Close()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if opts.writeConf != "" {
		if err := config.SaveConfig(cfg, opts.writeConf); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Configuration written to %s\n", opts.writeConf)
		if opts.input == "" {
			return nil
		}
	}
	debug := cfg.Output.Verbose || logger.DebugEnabled()

	grower, err := cfg.Grower()
	if err != nil {
		return err
	}

	img, err := raster.LoadImage(opts.input)
	if err != nil {
		return err
	}
	src := raster.Prepare(img, cfg.PrepareOptions())
	if debug {
		log.Printf("Loaded %s: %s", opts.input, src)
		log.Printf("Threshold %d, neighbor order %s", grower.Threshold, segment.FormatOrder(grower.Order))
	}

	start := time.Now()
	res, err := segment.New(grower).Segment(src)
	if err != nil {
		return fmt.Errorf("segmentation failed: %w", err)
	}
	if debug {
		log.Printf("Found %d regions in %s", res.RegionCount(), time.Since(start))
	}

	summary, err := report.Summarize(res, cfg.Output.TopRegions)
	if err != nil {
		return err
	}
	if err := report.Write(stdout, summary, cfg.Output.Styled); err != nil {
		return err
	}

	if err := raster.Save(res.Output, cfg.Output.Path); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Segmented image written to %s\n", cfg.Output.Path)

	if cfg.Output.ChartPath != "" {
		if err := writeChart(cfg.Output.ChartPath, res); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Region size chart written to %s\n", cfg.Output.ChartPath)
	}

	if cfg.Output.OutlinePath != "" {
		c, err := cfg.OutlineColor()
		if err != nil {
			return err
		}
		outlined, err := segment.Outline(res, c)
		if err != nil {
			return err
		}
		if err := raster.Save(outlined, cfg.Output.OutlinePath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Region outlines written to %s\n", cfg.Output.OutlinePath)
	}
	return nil
}

// parseFlags defines and parses command-line flags.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("image-segment", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "image-segment - color region growing segmentation")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage: image-segment -i <image> [options]")
		fmt.Fprintln(stderr, "       image-segment --write-config <file> [options]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fmt.Fprint(stderr, fs.FlagUsages())
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Environment variables:")
		fmt.Fprintf(stderr, "  %s=debug    Enable debug logging\n", logger.EnvLogLevel)
	}

	fs.StringVarP(&opts.input, "input", "i", "", "Path to the input image.")
	fs.StringVarP(&opts.output, "output", "o", "", "Path of the segmented image (format from extension).")
	fs.StringVarP(&opts.configPath, "config", "c", "", "Optional YAML configuration file.")
	fs.IntVarP(&opts.threshold, "threshold", "t", segment.DefaultThreshold, "Exclusive color distance limit for joining a region.")
	fs.StringVar(&opts.order, "order", segment.FormatOrder(segment.DefaultOrder), "Neighbor visiting order.")
	fs.Float64Var(&opts.blur, "blur", 0, "Gaussian blur sigma applied before segmentation (0 = off).")
	fs.IntVar(&opts.maxDim, "max-dim", 0, "Shrink the image so no side exceeds this many pixels (0 = off).")
	fs.IntVar(&opts.top, "top", report.DefaultTopRegions, "Number of largest regions to list.")
	fs.StringVar(&opts.chart, "chart", "", "Write a PNG histogram of region sizes to this path.")
	fs.StringVar(&opts.outline, "outline", "", "Write the segmented image with region boundaries drawn to this path.")
	fs.StringVar(&opts.outlineColor, "outline-color", segment.DefaultOutlineColor.Hex(), "Boundary color for --outline.")
	fs.BoolVar(&opts.plain, "plain", false, "Disable colors in the report.")
	fs.StringVar(&opts.writeConf, "write-config", "", "Write the effective configuration as YAML to this path.")
	fs.StringVar(&opts.logFile, "log-file", "", "Append log output to this file instead of stderr.")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging.")
	fs.BoolVar(&opts.version, "version", false, "Print version information.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.flags = fs

	if !opts.version && opts.input == "" && opts.writeConf == "" {
		fs.Usage()
		return nil, fmt.Errorf("--input/-i flag is required")
	}
	return opts, nil
}

// loadConfig reads the config file, if any, and applies explicitly set
// flags on top of it.
func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		if _, err := os.Stat(opts.configPath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		var err error
		if cfg, err = config.LoadConfig(opts.configPath); err != nil {
			return nil, err
		}
	}

	fs := opts.flags
	if fs.Changed("output") {
		cfg.Output.Path = opts.output
	}
	if fs.Changed("threshold") {
		cfg.Segmentation.Threshold = opts.threshold
	}
	if fs.Changed("order") {
		cfg.Segmentation.NeighborOrder = opts.order
	}
	if fs.Changed("blur") {
		cfg.Preprocess.BlurSigma = opts.blur
	}
	if fs.Changed("max-dim") {
		cfg.Preprocess.MaxDimension = opts.maxDim
	}
	if fs.Changed("top") {
		cfg.Output.TopRegions = opts.top
	}
	if fs.Changed("chart") {
		cfg.Output.ChartPath = opts.chart
	}
	if fs.Changed("outline") {
		cfg.Output.OutlinePath = opts.outline
	}
	if fs.Changed("outline-color") {
		cfg.Output.OutlineColor = opts.outlineColor
	}
	if opts.plain {
		cfg.Output.Styled = false
	}
	if opts.verbose {
		cfg.Output.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

func writeChart(path string, res *segment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := report.WriteHistogram(f, res); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/jmylchreest/swatch/internal/pipeline"
	"github.com/jmylchreest/swatch/internal/seed"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// colourCount is a flag value restricted to the supported colour range.
type colourCount int

var _ pflag.Value = (*colourCount)(nil)

func (c *colourCount) String() string {
	return strconv.Itoa(int(*c))
}

func (c *colourCount) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number: %s", s)
	}
	if n < pipeline.MinColours || n > pipeline.MaxColours {
		return fmt.Errorf("must be between %d and %d", pipeline.MinColours, pipeline.MaxColours)
	}
	*c = colourCount(n)
	return nil
}

func (c *colourCount) Type() string {
	return "int"
}

// extractFlags holds the values of the extraction flags.
type extractFlags struct {
	numColours    colourCount
	save          bool
	open          bool
	png           bool
	output        string
	pngOutput     string
	outputDir     string
	maxSamples    int
	maxIterations int
	seedMode      string
	seed          int64
	json          bool
	noColour      bool
}

func newExtractFlags() *extractFlags {
	defaults := pipeline.DefaultConfig()
	return &extractFlags{
		numColours:    colourCount(defaults.NumColours),
		outputDir:     ".",
		maxSamples:    defaults.MaxSamples,
		maxIterations: defaults.MaxIterations,
		seedMode:      string(defaults.Seed.Mode),
	}
}

func (f *extractFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.VarP(&f.numColours, "num-colors", "n", fmt.Sprintf("number of colours to extract (%d-%d)", pipeline.MinColours, pipeline.MaxColours))
	fs.BoolVarP(&f.save, "save", "s", false, "save the palette to a text file")
	fs.BoolVarP(&f.open, "open", "o", false, "create the PNG swatch and open it")
	fs.BoolVar(&f.png, "png", false, "create the PNG swatch without opening it")
	fs.StringVar(&f.output, "output", "", "text report path (implies --save; default <image>_palette.txt)")
	fs.StringVar(&f.pngOutput, "png-output", "", "PNG swatch path (default <image>_palette.png)")
	fs.StringVar(&f.outputDir, "output-dir", f.outputDir, "directory for default output files")
	fs.IntVar(&f.maxSamples, "max-samples", f.maxSamples, "maximum number of pixels to cluster")
	fs.IntVar(&f.maxIterations, "max-iterations", f.maxIterations, "maximum k-means iterations")
	fs.StringVar(&f.seedMode, "seed-mode", f.seedMode, "k-means seed mode (random, content, filepath, manual)")
	fs.Int64Var(&f.seed, "seed", 0, "seed value (implies --seed-mode manual)")
	fs.BoolVar(&f.json, "json", false, "print the palette as JSON")
	fs.BoolVar(&f.noColour, "no-color", false, "disable 24-bit colour blocks")
}

// config builds the pipeline configuration: defaults, then environment,
// then flags the user set explicitly.
func (f *extractFlags) config(fs *pflag.FlagSet, getenv func(string) string) (pipeline.Config, error) {
	config := pipeline.DefaultConfig()
	if err := config.ApplyEnv(getenv); err != nil {
		return config, err
	}

	if fs.Changed("num-colors") {
		config.NumColours = int(f.numColours)
	}
	if fs.Changed("max-samples") {
		config.MaxSamples = f.maxSamples
	}
	if fs.Changed("max-iterations") {
		config.MaxIterations = f.maxIterations
	}
	if fs.Changed("seed") {
		config.Seed = seed.Config{Mode: seed.ModeManual, Value: f.seed}
	}
	if fs.Changed("seed-mode") {
		mode, err := seed.ParseMode(f.seedMode)
		if err != nil {
			return config, err
		}
		if fs.Changed("seed") && mode != seed.ModeManual {
			return config, fmt.Errorf("--seed requires --seed-mode %s, got %s", seed.ModeManual, mode)
		}
		config.Seed.Mode = mode
	}

	return config, nil
}

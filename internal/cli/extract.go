package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/opener"
	"github.com/jmylchreest/swatch/internal/pipeline"
	"github.com/jmylchreest/swatch/internal/render"
	"github.com/spf13/cobra"
)

// newLogger creates the command logger on stderr, honouring --verbose and --quiet.
func newLogger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Info
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = hclog.Debug
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})
}

// runExtract extracts the palette of imagePath and produces the requested outputs.
// Extraction errors abort before anything is printed; output file errors are
// collected so the remaining outputs are still produced.
func runExtract(cmd *cobra.Command, imagePath string, flags *extractFlags, opts Options) error {
	logger := newLogger(cmd)

	config, err := flags.config(cmd.Flags(), opts.Getenv)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	p, err := pipeline.New(config, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	palette, err := p.ExtractFile(imagePath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := printPalette(out, palette, flags, config, opts.Getenv); err != nil {
		return fmt.Errorf("failed to print palette: %w", err)
	}

	base := image.BaseName(imagePath)
	var errs []error

	if flags.open || flags.png {
		pngPath := flags.pngOutput
		if pngPath == "" {
			pngPath = filepath.Join(flags.outputDir, base+"_palette.png")
		}

		if err := render.WriteSwatch(pngPath, palette, config.Swatch); err != nil {
			logger.Error("failed to create palette image", "error", err)
			errs = append(errs, err)
		} else {
			fmt.Fprintf(out, "Color palette saved as: %s\n", pngPath)
			if flags.open {
				openSwatch(cmd, opts.Opener, logger, pngPath)
			}
		}
	}

	if flags.save || flags.output != "" {
		reportPath := flags.output
		if reportPath == "" {
			reportPath = filepath.Join(flags.outputDir, base+"_palette.txt")
		}

		if err := render.WriteReport(reportPath, imagePath, palette); err != nil {
			logger.Error("failed to save palette report", "error", err)
			errs = append(errs, err)
		} else {
			fmt.Fprintf(out, "Palette saved to: %s\n", reportPath)
		}
	}

	return errors.Join(errs...)
}

// printPalette writes the palette to out as JSON or terminal blocks.
func printPalette(out io.Writer, palette *colour.Palette, flags *extractFlags, config pipeline.Config, getenv func(string) string) error {
	if flags.json {
		data, err := palette.ToJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	trueColour := false
	if f, ok := out.(*os.File); ok && !flags.noColour {
		trueColour = render.DetectTrueColour(f, getenv)
	}

	return render.WriteTerminal(out, palette, render.TerminalOptions{
		TrueColour: trueColour,
		BlockWidth: config.BlockWidth,
	})
}

// openSwatch launches the viewer. A failure is only a warning: the swatch
// has already been written.
func openSwatch(cmd *cobra.Command, o opener.Opener, logger hclog.Logger, path string) {
	if o == nil {
		o = opener.New(logger)
	}
	if err := o.Open(cmd.Context(), path); err != nil {
		logger.Warn("could not open palette image", "path", path, "error", err)
		return
	}
	logger.Info("opening color palette", "path", path)
}

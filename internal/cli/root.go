// Package cli provides the command-line interface for swatch.
package cli

import (
	"fmt"
	"os"

	"github.com/jmylchreest/swatch/internal/opener"
	"github.com/jmylchreest/swatch/internal/version"
	"github.com/spf13/cobra"
)

// Options holds the collaborators the commands use.
type Options struct {
	// Opener launches the swatch viewer for --open. Nil selects the platform opener.
	Opener opener.Opener
	// Getenv reads configuration overrides. Nil selects os.Getenv.
	Getenv func(string) string
}

// NewRootCmd creates the root command with default collaborators.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithOptions(Options{})
}

// NewRootCmdWithOptions creates the root command.
func NewRootCmdWithOptions(opts Options) *cobra.Command {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	flags := newExtractFlags()
	rootCmd := &cobra.Command{
		Use:   "swatch <image>",
		Short: "Extract the dominant colours of an image",
		Long: `swatch extracts the most dominant colours of an image with k-means
clustering and prints them as a colour palette.

It can also render the palette as a PNG swatch and save a text report.

Supported image formats: JPEG, PNG, GIF, WebP, TIFF, BMP, optionally
compressed with gzip, bzip2 or xz.

Examples:
  # Extract 5 colours (default)
  swatch wallpaper.jpg

  # Extract 8 colours and save a text report
  swatch -n 8 -s wallpaper.jpg

  # Render the PNG swatch and open it
  swatch -o wallpaper.jpg

  # Reproducible output for the same image
  swatch --seed-mode content wallpaper.jpg`,
		Version:      version.Short(),
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], flags, opts)
		},
	}

	flags.register(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
	"golang.org/x/term"
)

// DefaultBlockWidth is the width in cells of a terminal colour block.
const DefaultBlockWidth = 10

// TerminalOptions controls terminal output.
type TerminalOptions struct {
	// TrueColour enables 24-bit colour blocks. Without it only the
	// RGB, hex and frequency values are printed.
	TrueColour bool
	BlockWidth int
}

// WriteTerminal prints the palette, one three-line block per colour.
func WriteTerminal(w io.Writer, p *colour.Palette, opts TerminalOptions) error {
	width := opts.BlockWidth
	if width <= 0 {
		width = DefaultBlockWidth
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nColor Palette (%d colors):\n", p.Len())
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	for i, e := range p.Entries {
		swatch := ""
		if opts.TrueColour {
			swatch = colour.ColourPreview(e.Centroid, width) + " "
		}
		number := fmt.Sprintf("%d.", i+1)
		indent := strings.Repeat(" ", len(number))

		fmt.Fprintf(&sb, "%s %sRGB: %s\n", number, swatch, e.Centroid)
		fmt.Fprintf(&sb, "%s %sHEX: %s\n", indent, swatch, e.Centroid.Hex())
		fmt.Fprintf(&sb, "%s %sFrequency: %.1f%%\n\n", indent, swatch, e.Percent())
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// DetectTrueColour reports whether f is a terminal that should receive
// 24-bit colour escapes. NO_COLOR disables colour; a non-terminal, or a
// terminal that does not advertise truecolour, gets plain text.
func DetectTrueColour(f *os.File, getenv func(string) string) bool {
	if getenv == nil {
		getenv = os.Getenv
	}
	if getenv("NO_COLOR") != "" {
		return false
	}
	if f == nil || !term.IsTerminal(int(f.Fd())) { // #nosec G115 -- file descriptors fit in int
		return false
	}
	return advertisesTrueColour(getenv)
}

// advertisesTrueColour checks COLORTERM for truecolor/24bit and TERM for a
// direct-colour or truecolor terminfo entry such as xterm-direct.
func advertisesTrueColour(getenv func(string) string) bool {
	switch strings.ToLower(getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return true
	}

	termName := strings.ToLower(getenv("TERM"))
	return strings.HasSuffix(termName, "-direct") ||
		strings.Contains(termName, "truecolor") ||
		strings.Contains(termName, "24bit")
}

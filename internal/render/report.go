package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
)

// FormatReport writes the plain-text palette report for source to w.
func FormatReport(w io.Writer, source string, p *colour.Palette) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Color Palette for: %s\n", source)
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for i, e := range p.Entries {
		fmt.Fprintf(&sb, "Color %d:\n", i+1)
		fmt.Fprintf(&sb, "  RGB: %s\n", e.Centroid)
		fmt.Fprintf(&sb, "  HEX: %s\n", e.Centroid.Hex())
		fmt.Fprintf(&sb, "  Frequency: %.1f%%\n\n", e.Percent())
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteReport atomically writes the text report to path.
// Failures are returned as *OutputWriteError.
func WriteReport(path, source string, p *colour.Palette) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return FormatReport(w, source, p)
	})
}

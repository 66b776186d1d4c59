package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for 24-bit terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 10
)

// ColourPreview returns a solid block of the colour, width cells wide,
// drawn with a truecolour background escape.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bgColour + strings.Repeat(" ", width) + ansiReset
}

// ContrastText returns black for backgrounds with luma above 128, white otherwise.
func ContrastText(bg RGB) RGB {
	if bg.Luma() > 128 {
		return RGB{}
	}
	return RGB{R: 255, G: 255, B: 255}
}

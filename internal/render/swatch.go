package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jmylchreest/swatch/internal/colour"
	"golang.org/x/image/font/gofont/goregular"
)

// Swatch defaults.
const (
	DefaultSwatchWidth  = 800
	DefaultSwatchHeight = 100
	DefaultLabelSize    = 14
)

// SwatchOptions controls the PNG swatch layout.
type SwatchOptions struct {
	// Width is divided equally between the colours; the image is
	// len(colours) * (Width / len(colours)) pixels wide.
	Width  int
	Height int
	// LabelSize is the hex label font size in points.
	LabelSize float64
}

// DefaultSwatchOptions returns the default swatch layout.
func DefaultSwatchOptions() SwatchOptions {
	return SwatchOptions{
		Width:     DefaultSwatchWidth,
		Height:    DefaultSwatchHeight,
		LabelSize: DefaultLabelSize,
	}
}

var labelFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// RenderSwatch draws the palette as equal-width vertical bars in rank order,
// left to right, each labelled with its hex code in black or white.
func RenderSwatch(p *colour.Palette, opts SwatchOptions) (image.Image, error) {
	if p == nil || p.Len() == 0 {
		return nil, fmt.Errorf("cannot render an empty palette")
	}
	if opts.Height < 1 {
		return nil, fmt.Errorf("swatch height must be positive, got %d", opts.Height)
	}
	segment := opts.Width / p.Len()
	if segment < 1 {
		return nil, fmt.Errorf("swatch width %d too small for %d colours", opts.Width, p.Len())
	}
	size := opts.LabelSize
	if size <= 0 {
		size = DefaultLabelSize
	}

	f, err := labelFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size})
	defer face.Close()

	dc := gg.NewContext(segment*p.Len(), opts.Height)
	dc.SetFontFace(face)

	for i, e := range p.Entries {
		x := float64(i * segment)
		c := e.Centroid

		dc.SetRGB255(int(c.R), int(c.G), int(c.B))
		dc.DrawRectangle(x, 0, float64(segment), float64(opts.Height))
		dc.Fill()

		fg := colour.ContrastText(c)
		dc.SetRGB255(int(fg.R), int(fg.G), int(fg.B))
		dc.DrawStringAnchored(c.Hex(), x+float64(segment)/2, float64(opts.Height)/2, 0.5, 0.5)
	}

	return dc.Image(), nil
}

// EncodeSwatch renders the palette and writes it to w as PNG.
func EncodeSwatch(w io.Writer, p *colour.Palette, opts SwatchOptions) error {
	img, err := RenderSwatch(p, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteSwatch atomically writes the PNG swatch to path.
// Failures are returned as *OutputWriteError.
func WriteSwatch(path string, p *colour.Palette, opts SwatchOptions) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return EncodeSwatch(w, p, opts)
	})
}

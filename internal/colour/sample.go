package colour

import (
	"fmt"
	"image"
)

// Sample flattens an image into a set of RGB pixels in row-major order.
// Images with more than maxSamples pixels are reduced to exactly maxSamples
// pixels taken at evenly spaced positions, so the result is deterministic
// for a given image and cap.
func Sample(img image.Image, maxSamples int) ([]RGB, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if maxSamples < 1 {
		return nil, fmt.Errorf("max samples must be at least 1, got %d", maxSamples)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}

	totalPixels := width * height
	at := func(i int) RGB {
		return ToRGB(img.At(bounds.Min.X+i%width, bounds.Min.Y+i/width))
	}

	if totalPixels <= maxSamples {
		pixels := make([]RGB, totalPixels)
		for i := range pixels {
			pixels[i] = at(i)
		}
		return pixels, nil
	}

	// i*total/max is strictly increasing because total > max.
	pixels := make([]RGB, maxSamples)
	for i := range pixels {
		pixels[i] = at(int(int64(i) * int64(totalPixels) / int64(maxSamples)))
	}
	return pixels, nil
}

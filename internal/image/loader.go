// Package image provides utilities for loading images from disk.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/swatch/internal/compression"
	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format
)

// ErrUnreadableImage is returned when a file cannot be opened or decoded as an image.
var ErrUnreadableImage = errors.New("unreadable image")

// Loader handles loading images.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct {
	logger hclog.Logger
}

// NewFileLoader creates a new FileLoader. A nil logger discards output.
func NewFileLoader(logger hclog.Logger) *FileLoader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FileLoader{logger: logger}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, TIFF, BMP, optionally wrapped in
// gzip, bzip2 or xz compression. Every failure wraps ErrUnreadableImage.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: image path cannot be empty", ErrUnreadableImage)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: image file not found: %s", ErrUnreadableImage, path)
		}
		return nil, fmt.Errorf("%w: failed to stat image file: %w", ErrUnreadableImage, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: path is a directory, not a file: %s", ErrUnreadableImage, path)
	}

	if ext := strings.ToLower(filepath.Ext(trimCompressionSuffix(path))); !slices.Contains(SupportedImageExtensions(), ext) {
		l.logger.Warn("unrecognised image extension, decoding by content", "path", path, "extension", ext)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image file: %w", ErrUnreadableImage, err)
	}
	defer file.Close()

	r, compressed, err := compression.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableImage, err)
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", ErrUnreadableImage, path, err)
	}

	bounds := img.Bounds()
	l.logger.Debug("decoded image", "path", path, "format", format, "compression", compressed,
		"width", bounds.Dx(), "height", bounds.Dy())

	return img, nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".tif", ".tiff", ".bmp"}
}

// BaseName returns the file name of path without directory, compression
// suffix or image extension, e.g. "photos/sunset.png.xz" -> "sunset".
func BaseName(path string) string {
	name := trimCompressionSuffix(filepath.Base(path))
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func trimCompressionSuffix(name string) string {
	for _, ext := range []string{".gz", ".bz2", ".xz"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// Package seed derives the random seed used to initialise k-means clustering.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Mode determines how the seed is generated.
type Mode string

const (
	// ModeRandom uses a fresh seed for every run (default).
	ModeRandom Mode = "random"
	// ModeContent hashes the image pixels, so identical images cluster identically.
	ModeContent Mode = "content"
	// ModeFilepath hashes the absolute file path.
	ModeFilepath Mode = "filepath"
	// ModeManual uses a caller-provided value.
	ModeManual Mode = "manual"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode
	Value int64 // only used by ModeManual
}

// Calculate determines the seed value for the configured mode.
func Calculate(img image.Image, imagePath string, config Config) (int64, error) {
	switch config.Mode {
	case ModeRandom, "":
		return GenerateRandomSeed(), nil
	case ModeContent:
		return CalculateContentSeed(img)
	case ModeFilepath:
		return CalculateFilepathSeed(imagePath)
	case ModeManual:
		return config.Value, nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// NewRand returns a deterministic random source for seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- clustering does not need crypto randomness
}

// CalculateContentSeed hashes the image dimensions and a grid of its pixels.
func CalculateContentSeed(img image.Image) (int64, error) {
	if img == nil {
		return 0, fmt.Errorf("image is required for content-based seed mode")
	}

	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are non-negative
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy())) // #nosec G115
	hasher.Write(dimBytes)

	// A 100x100 grid is enough to tell images apart.
	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixelBytes := make([]byte, 4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			pixelBytes[0] = byte(r >> 8)
			pixelBytes[1] = byte(g >> 8)
			pixelBytes[2] = byte(b >> 8)
			pixelBytes[3] = byte(a >> 8)
			hasher.Write(pixelBytes)
		}
	}

	return hashToSeed(hasher.Sum(nil)), nil
}

// CalculateFilepathSeed hashes the absolute form of imagePath.
func CalculateFilepathSeed(imagePath string) (int64, error) {
	if imagePath == "" {
		return 0, fmt.Errorf("image path is required for filepath-based seed mode")
	}

	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		absPath = imagePath
	}

	hash := sha256.Sum256([]byte(absPath))
	return hashToSeed(hash[:]), nil
}

func hashToSeed(hash []byte) int64 {
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}

// GenerateRandomSeed generates a non-deterministic seed.
func GenerateRandomSeed() int64 {
	// #nosec G404 -- Random seed generation is intentionally non-deterministic
	return time.Now().UnixNano() + int64(rand.Intn(1000000))
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeRandom, ModeContent, ModeFilepath, ModeManual}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: random, content, filepath, manual)", s)
}

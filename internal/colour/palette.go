// Package colour provides colour sampling, clustering and palette ranking.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"
)

// RGB represents a colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a tuple, e.g. "(255, 0, 0)".
func (rgb RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// RGBA returns the colour as an opaque color.RGBA.
func (rgb RGB) RGBA() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// Luma returns the Rec. 601 luma of the colour in the range [0, 255].
func (rgb RGB) Luma() float64 {
	return 0.299*float64(rgb.R) + 0.587*float64(rgb.G) + 0.114*float64(rgb.B)
}

// ToRGB converts a color.Color to RGB, dropping alpha.
// The colour is un-premultiplied first so translucent pixels keep their hue
// rather than being darkened towards black.
func ToRGB(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// ParseHex parses a "#rrggbb" or "rrggbb" string into RGB.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return RGB{
		R: uint8(v >> 16), // #nosec G115 -- masked to 24 bits by length check
		G: uint8(v >> 8),  // #nosec G115
		B: uint8(v),       // #nosec G115
	}, nil
}

// Cluster is one group of samples produced by the extractor.
type Cluster struct {
	// Index is the cluster's position in the extractor output.
	Index int
	// Centroid is the mean colour of the members, rounded to integers.
	Centroid RGB
	// Count is the number of samples assigned to the cluster.
	Count int
}

// Entry is a ranked cluster with its share of the sample set.
type Entry struct {
	Cluster
	Frequency float64
}

// Percent returns the frequency as a percentage.
func (e Entry) Percent() float64 {
	return e.Frequency * 100
}

// Palette is a ranked sequence of clusters, most frequent first.
type Palette struct {
	Entries []Entry
	// Total is the number of samples the clusters were built from.
	Total int
}

// Rank sorts clusters by member count, most populous first, and computes
// each cluster's frequency. Clusters with equal counts keep their input order.
func Rank(clusters []Cluster) (*Palette, error) {
	if len(clusters) == 0 {
		return nil, ErrEmptyClusterSet
	}

	total := 0
	for _, c := range clusters {
		if c.Count < 0 {
			return nil, fmt.Errorf("cluster %d has negative member count %d", c.Index, c.Count)
		}
		total += c.Count
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: clusters have no members", ErrEmptyClusterSet)
	}

	sorted := slices.Clone(clusters)
	slices.SortStableFunc(sorted, func(a, b Cluster) int {
		return b.Count - a.Count
	})

	entries := make([]Entry, len(sorted))
	for i, c := range sorted {
		entries[i] = Entry{
			Cluster:   c,
			Frequency: float64(c.Count) / float64(total),
		}
	}

	return &Palette{Entries: entries, Total: total}, nil
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Entries)
}

// Clusters returns the palette's clusters in rank order.
func (p *Palette) Clusters() []Cluster {
	clusters := make([]Cluster, len(p.Entries))
	for i, e := range p.Entries {
		clusters[i] = e.Cluster
	}
	return clusters
}

// ColourJSON represents a ranked colour in JSON output format.
type ColourJSON struct {
	Rank      int     `json:"rank"`
	Hex       string  `json:"hex"`
	RGB       RGB     `json:"rgb"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int          `json:"count"`
	Total  int          `json:"total"`
	Colors []ColourJSON `json:"colors"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	colours := make([]ColourJSON, len(p.Entries))
	for i, e := range p.Entries {
		colours[i] = ColourJSON{
			Rank:      i + 1,
			Hex:       e.Centroid.Hex(),
			RGB:       e.Centroid,
			Count:     e.Count,
			Frequency: e.Frequency,
		}
	}

	return json.MarshalIndent(PaletteJSON{
		Count:  len(p.Entries),
		Total:  p.Total,
		Colors: colours,
	}, "", "  ")
}

package colour

import (
	"fmt"
	"math"
	"slices"
)

// DefaultMaxIterations is the iteration cap used when none is configured.
const DefaultMaxIterations = 300

// RandomSource is the randomness k-means++ seeding needs.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// KMeans clusters samples in RGB space.
type KMeans struct {
	rng           RandomSource
	maxIterations int
}

// NewKMeans creates a KMeans extractor drawing its initial centroids from rng.
// A maxIterations below 1 selects DefaultMaxIterations.
func NewKMeans(rng RandomSource, maxIterations int) *KMeans {
	if maxIterations < 1 {
		maxIterations = DefaultMaxIterations
	}
	return &KMeans{
		rng:           rng,
		maxIterations: maxIterations,
	}
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

func pointOf(rgb RGB) point3D {
	return point3D{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)}
}

// distanceSq returns the squared Euclidean distance between two points.
func (p point3D) distanceSq(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

// rgb rounds the point to the nearest 8-bit colour.
func (p point3D) rgb() RGB {
	return RGB{R: roundChannel(p.R), G: roundChannel(p.G), B: roundChannel(p.B)}
}

func roundChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// Extract partitions samples into exactly k clusters.
// The returned clusters are in extractor order and their counts sum to
// len(samples). When samples hold fewer than k distinct colours some
// clusters are duplicates of others, possibly with zero members.
func (e *KMeans) Extract(samples []RGB, k int) ([]Cluster, error) {
	if k < 1 || k > len(samples) {
		return nil, fmt.Errorf("%w: k=%d with %d samples (need 1 <= k <= samples)", ErrInvalidClusterCount, k, len(samples))
	}
	if e.rng == nil {
		return nil, fmt.Errorf("k-means requires a random source")
	}

	points := make([]point3D, len(samples))
	for i, s := range samples {
		points[i] = pointOf(s)
	}

	centroids := e.initialiseCentroids(points, k)
	assignments := make([]int, len(points))
	assign(points, centroids, assignments)

	for iter := 0; iter < e.maxIterations; iter++ {
		reseeded := recalculateCentroids(points, assignments, centroids)
		if changed := assign(points, centroids, assignments); changed == 0 && !reseeded {
			break
		}
	}

	// Final centroids are the means of their final members.
	counts := fillEmptyClusters(points, assignments, centroids)

	clusters := make([]Cluster, k)
	for i := range clusters {
		clusters[i] = Cluster{
			Index:    i,
			Centroid: centroids[i].rgb(),
			Count:    counts[i],
		}
	}
	return clusters, nil
}

// initialiseCentroids picks k starting centroids with k-means++.
func (e *KMeans) initialiseCentroids(points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[e.rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for i, p := range points {
		distances[i] = p.distanceSq(centroids[0])
	}

	for len(centroids) < k {
		total := 0.0
		for _, d := range distances {
			total += d
		}

		var next point3D
		if total == 0 {
			// Every sample already sits on a centroid.
			next = points[e.rng.Intn(len(points))]
		} else {
			next = pickWeighted(points, distances, e.rng.Float64()*total)
		}
		centroids = append(centroids, next)

		for i, p := range points {
			if d := p.distanceSq(next); d < distances[i] {
				distances[i] = d
			}
		}
	}

	return centroids
}

// pickWeighted returns the first point whose cumulative weight reaches target,
// never choosing a point with zero weight.
func pickWeighted(points []point3D, weights []float64, target float64) point3D {
	cumulative := 0.0
	last := -1
	for i, w := range weights {
		if w == 0 {
			continue
		}
		cumulative += w
		last = i
		if cumulative >= target {
			return points[i]
		}
	}
	// Floating point drift can leave target just above the final sum.
	return points[last]
}

// assign moves every point to its nearest centroid and reports how many moved.
// Ties go to the lowest centroid index.
func assign(points, centroids []point3D, assignments []int) int {
	changed := 0
	for i, p := range points {
		nearest := 0
		minDist := math.MaxFloat64
		for c, centroid := range centroids {
			if d := p.distanceSq(centroid); d < minDist {
				minDist = d
				nearest = c
			}
		}
		if assignments[i] != nearest {
			assignments[i] = nearest
			changed++
		}
	}
	return changed
}

// updateMeans moves each centroid with members to the mean of those members
// and returns the member counts. Empty centroids are left in place.
func updateMeans(points []point3D, assignments []int, centroids []point3D) []int {
	sums := make([]point3D, len(centroids))
	counts := make([]int, len(centroids))
	for i, p := range points {
		c := assignments[i]
		sums[c].R += p.R
		sums[c].G += p.G
		sums[c].B += p.B
		counts[c]++
	}

	for c, n := range counts {
		if n == 0 {
			continue
		}
		centroids[c] = point3D{
			R: sums[c].R / float64(n),
			G: sums[c].G / float64(n),
			B: sums[c].B / float64(n),
		}
	}
	return counts
}

// recalculateCentroids updates the means and re-seeds every centroid left
// without members to the sample farthest from its own centroid, using each
// sample at most once per pass. It reports whether anything was re-seeded.
func recalculateCentroids(points []point3D, assignments []int, centroids []point3D) bool {
	counts := updateMeans(points, assignments, centroids)

	used := make(map[int]bool)
	reseeded := false
	for c, n := range counts {
		if n > 0 {
			continue
		}

		farthest, dist := -1, 0.0
		for i, p := range points {
			if used[i] {
				continue
			}
			if d := p.distanceSq(centroids[assignments[i]]); d > dist {
				farthest, dist = i, d
			}
		}
		if farthest < 0 {
			// Nothing is off-centre; keep the duplicate centroid.
			continue
		}
		used[farthest] = true
		centroids[c] = points[farthest]
		reseeded = true
	}

	return reseeded
}

// fillEmptyClusters updates the means and then, while a centroid has no
// members, moves the sample farthest from its centroid into it. Samples are
// only taken from clusters with at least two members, so no cluster is
// emptied in the process. It stops when every cluster has a member or when
// every sample sits on its centroid, which happens only when there are
// fewer distinct colours than clusters. It returns the member counts.
func fillEmptyClusters(points []point3D, assignments []int, centroids []point3D) []int {
	counts := updateMeans(points, assignments, centroids)

	for {
		empty := slices.Index(counts, 0)
		if empty < 0 {
			return counts
		}

		farthest, dist := -1, 0.0
		for i, p := range points {
			if counts[assignments[i]] < 2 {
				continue
			}
			if d := p.distanceSq(centroids[assignments[i]]); d > dist {
				farthest, dist = i, d
			}
		}
		if farthest < 0 {
			return counts
		}

		assignments[farthest] = empty
		counts = updateMeans(points, assignments, centroids)
	}
}

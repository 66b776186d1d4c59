package colour

import (
	"fmt"
)

// Extractor partitions a sample set into k clusters.
type Extractor interface {
	Extract(samples []RGB, k int) ([]Cluster, error)
}

// Algorithm represents the clustering algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses k-means clustering with k-means++ seeding.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmKMeans}
}

// NewExtractor creates an Extractor for the given algorithm.
func NewExtractor(alg Algorithm, rng RandomSource, maxIterations int) (Extractor, error) {
	switch alg {
	case AlgorithmKMeans:
		return NewKMeans(rng, maxIterations), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

package colour

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func newTestKMeans(seed int64) *KMeans {
	return NewKMeans(rand.New(rand.NewSource(seed)), 0) // #nosec G404 -- deterministic test seed
}

func randomSamples(rng *rand.Rand, n int) []RGB {
	samples := make([]RGB, n)
	for i := range samples {
		samples[i] = RGB{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
	}
	return samples
}

func sumCounts(clusters []Cluster) int {
	total := 0
	for _, c := range clusters {
		total += c.Count
	}
	return total
}

func TestKMeansReturnsKClustersCoveringAllSamples(t *testing.T) {
	rng := rand.New(rand.NewSource(7)) // #nosec G404
	for _, size := range []int{1, 2, 10, 257} {
		samples := randomSamples(rng, size)
		for _, k := range []int{1, 2, 5, 16, size} {
			if k > size {
				continue
			}
			clusters, err := newTestKMeans(int64(size*k)).Extract(samples, k)
			if err != nil {
				t.Fatalf("Extract(S=%d, k=%d) error: %v", size, k, err)
			}
			if len(clusters) != k {
				t.Errorf("Extract(S=%d, k=%d) returned %d clusters", size, k, len(clusters))
			}
			if got := sumCounts(clusters); got != size {
				t.Errorf("Extract(S=%d, k=%d) counts sum to %d", size, k, got)
			}
			for i, c := range clusters {
				if c.Index != i || c.Count < 0 {
					t.Errorf("cluster %d malformed: %+v", i, c)
				}
			}
		}
	}
}

func TestKMeansNoEmptyClustersWithEnoughColours(t *testing.T) {
	rng := rand.New(rand.NewSource(21)) // #nosec G404

	// distinctColours returns n colours that differ in the red channel.
	distinctColours := func(n int) []RGB {
		colours := make([]RGB, n)
		for i := range colours {
			colours[i] = RGB{R: uint8(i * 255 / n), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
		}
		return colours
	}

	assertNonEmpty := func(t *testing.T, clusters []Cluster, k, total int) {
		t.Helper()
		if len(clusters) != k {
			t.Fatalf("got %d clusters, want %d", len(clusters), k)
		}
		for _, c := range clusters {
			if c.Count <= 0 {
				t.Errorf("cluster %d has no members: %+v", c.Index, c)
			}
		}
		if got := sumCounts(clusters); got != total {
			t.Errorf("counts sum to %d, want %d", got, total)
		}
	}

	t.Run("skewed duplicates", func(t *testing.T) {
		for run := 0; run < 100; run++ {
			colours := distinctColours(2 + rng.Intn(15))

			// One dominant colour and a long tail of rare ones.
			var samples []RGB
			for i, c := range colours {
				repeat := 1 + rng.Intn(5)
				if i == 0 {
					repeat = 500
				}
				for iter := 0; iter < repeat; iter++ {
					samples = append(samples, c)
				}
			}
			rng.Shuffle(len(samples), func(i, j int) { samples[i], samples[j] = samples[j], samples[i] })

			for _, k := range []int{len(colours), 1 + rng.Intn(len(colours))} {
				clusters, err := NewKMeans(rand.New(rand.NewSource(int64(run))), 0).Extract(samples, k) // #nosec G404
				if err != nil {
					t.Fatalf("run %d: Extract(k=%d) error: %v", run, k, err)
				}
				assertNonEmpty(t, clusters, k, len(samples))
			}
		}
	})

	t.Run("single iteration", func(t *testing.T) {
		samples := make([]RGB, 300)
		for i := range samples {
			samples[i] = RGB{R: uint8(i % 256), G: uint8(i / 256 * 128), B: uint8(rng.Intn(256))}
		}

		for seed := int64(0); seed < 20; seed++ {
			for _, k := range []int{50, 150, 300} {
				clusters, err := NewKMeans(rand.New(rand.NewSource(seed)), 1).Extract(samples, k) // #nosec G404
				if err != nil {
					t.Fatalf("seed %d: Extract(k=%d) error: %v", seed, k, err)
				}
				assertNonEmpty(t, clusters, k, len(samples))
			}
		}
	})
}

func TestFillEmptyClusters(t *testing.T) {
	points := []point3D{{R: 0}, {R: 10}, {R: 200}}
	centroids := []point3D{{R: 5}, {R: 100}}
	assignments := []int{0, 0, 0}

	counts := fillEmptyClusters(points, assignments, centroids)
	if counts[0] != 2 || counts[1] != 1 {
		t.Fatalf("counts = %v, want [2 1]", counts)
	}
	if assignments[2] != 1 || centroids[1] != (point3D{R: 200}) {
		t.Errorf("farthest sample not moved: assignments %v, centroids %+v", assignments, centroids)
	}
	if centroids[0] != (point3D{R: 5}) {
		t.Errorf("remaining centroid = %+v, want mean R=5", centroids[0])
	}

	// Every sample on its centroid: duplicates are kept.
	points = []point3D{{R: 7}, {R: 7}}
	centroids = []point3D{{R: 7}, {R: 7}}
	assignments = []int{0, 0}
	if counts := fillEmptyClusters(points, assignments, centroids); counts[0] != 2 || counts[1] != 0 {
		t.Errorf("counts = %v, want [2 0]", counts)
	}
}

func TestKMeansSingleCluster(t *testing.T) {
	samples := []RGB{{R: 10}, {R: 20}, {R: 30}, {G: 60}}

	clusters, err := newTestKMeans(1).Extract(samples, 1)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(clusters) != 1 || clusters[0].Count != len(samples) {
		t.Fatalf("Extract() = %+v, want one cluster of %d", clusters, len(samples))
	}
	if want := (RGB{R: 15, G: 15}); clusters[0].Centroid != want {
		t.Errorf("centroid = %+v, want %+v", clusters[0].Centroid, want)
	}

	palette, err := Rank(clusters)
	if err != nil {
		t.Fatalf("Rank() error: %v", err)
	}
	if palette.Entries[0].Frequency != 1.0 {
		t.Errorf("frequency = %v, want exactly 1.0", palette.Entries[0].Frequency)
	}
}

func TestKMeansPrimaries(t *testing.T) {
	red := RGB{R: 255}
	green := RGB{G: 255}
	blue := RGB{B: 255}
	samples := []RGB{red, red, green, blue}

	for seed := int64(0); seed < 20; seed++ {
		clusters, err := newTestKMeans(seed).Extract(samples, 3)
		if err != nil {
			t.Fatalf("seed %d: Extract() error: %v", seed, err)
		}
		palette, err := Rank(clusters)
		if err != nil {
			t.Fatalf("seed %d: Rank() error: %v", seed, err)
		}

		first := palette.Entries[0]
		if first.Centroid != red || first.Frequency != 0.5 {
			t.Errorf("seed %d: first entry = %+v, want red at 0.5", seed, first)
		}

		rest := map[RGB]bool{}
		for _, e := range palette.Entries[1:] {
			if e.Frequency != 0.25 {
				t.Errorf("seed %d: entry %+v, want frequency 0.25", seed, e)
			}
			rest[e.Centroid] = true
		}
		if !rest[green] || !rest[blue] {
			t.Errorf("seed %d: singletons = %v, want green and blue", seed, rest)
		}
		if palette.Entries[1].Index > palette.Entries[2].Index {
			t.Errorf("seed %d: tied entries not in cluster order", seed)
		}
	}
}

func TestKMeansDeterministicForSeed(t *testing.T) {
	samples := randomSamples(rand.New(rand.NewSource(3)), 500) // #nosec G404

	a, err := newTestKMeans(42).Extract(samples, 6)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	b, err := newTestKMeans(42).Extract(samples, 6)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("cluster %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestKMeansAllBlack(t *testing.T) {
	samples := make([]RGB, 100)

	clusters, err := newTestKMeans(5).Extract(samples, 5)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(clusters) != 5 {
		t.Fatalf("got %d clusters, want 5", len(clusters))
	}
	for _, c := range clusters {
		if c.Centroid != (RGB{}) {
			t.Errorf("cluster %d centroid = %+v, want black", c.Index, c.Centroid)
		}
	}

	palette, err := Rank(clusters)
	if err != nil {
		t.Fatalf("Rank() error: %v", err)
	}
	sum := 0.0
	for _, e := range palette.Entries {
		sum += e.Frequency
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("frequencies sum to %v, want 1", sum)
	}
}

func TestKMeansMoreClustersThanColours(t *testing.T) {
	samples := []RGB{{R: 255}, {R: 255}, {B: 255}, {B: 255}, {B: 255}}

	clusters, err := newTestKMeans(9).Extract(samples, 4)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(clusters) != 4 {
		t.Fatalf("got %d clusters, want 4", len(clusters))
	}
	if got := sumCounts(clusters); got != len(samples) {
		t.Errorf("counts sum to %d, want %d", got, len(samples))
	}
	for _, c := range clusters {
		if c.Centroid != (RGB{R: 255}) && c.Centroid != (RGB{B: 255}) {
			t.Errorf("cluster %d centroid %+v is not one of the input colours", c.Index, c.Centroid)
		}
	}
}

func TestKMeansSeparatesDistinctGroups(t *testing.T) {
	var samples []RGB
	for i := 0; i < 50; i++ {
		samples = append(samples, RGB{R: uint8(250 - i%5), G: uint8(i % 3)})
		samples = append(samples, RGB{G: uint8(i % 4), B: uint8(250 - i%5)})
	}
	for i := 0; i < 20; i++ {
		samples = append(samples, RGB{R: uint8(i % 2), G: uint8(253 - i%3), B: 1})
	}

	clusters, err := newTestKMeans(11).Extract(samples, 3)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	palette, err := Rank(clusters)
	if err != nil {
		t.Fatalf("Rank() error: %v", err)
	}

	counts := []int{palette.Entries[0].Count, palette.Entries[1].Count, palette.Entries[2].Count}
	if counts[0] != 50 || counts[1] != 50 || counts[2] != 20 {
		t.Errorf("ranked counts = %v, want [50 50 20]", counts)
	}
	if palette.Entries[2].Centroid.G < 250 {
		t.Errorf("smallest cluster centroid = %+v, want green", palette.Entries[2].Centroid)
	}
}

func TestKMeansInvalidClusterCount(t *testing.T) {
	samples := []RGB{{R: 1}, {R: 2}}
	for _, k := range []int{-1, 0, 3} {
		_, err := newTestKMeans(1).Extract(samples, k)
		if !errors.Is(err, ErrInvalidClusterCount) {
			t.Errorf("Extract(k=%d) error = %v, want ErrInvalidClusterCount", k, err)
		}
	}

	if _, err := newTestKMeans(1).Extract(nil, 1); !errors.Is(err, ErrInvalidClusterCount) {
		t.Errorf("Extract(nil) error = %v, want ErrInvalidClusterCount", err)
	}
}

func TestRecalculateCentroidsReseedsEmpty(t *testing.T) {
	points := []point3D{{R: 0}, {R: 10}, {R: 200}}
	centroids := []point3D{{R: 5}, {R: 100}}
	assignments := []int{0, 0, 0}

	if !recalculateCentroids(points, assignments, centroids) {
		t.Fatal("expected empty centroid to be re-seeded")
	}
	if centroids[1] != (point3D{R: 200}) {
		t.Errorf("re-seeded centroid = %+v, want farthest sample", centroids[1])
	}
	if math.Abs(centroids[0].R-70) > 1e-9 {
		t.Errorf("mean centroid = %+v, want R=70", centroids[0])
	}
}

func TestNewExtractor(t *testing.T) {
	rng := rand.New(rand.NewSource(1)) // #nosec G404
	if _, err := NewExtractor(AlgorithmKMeans, rng, 10); err != nil {
		t.Errorf("NewExtractor(kmeans) error: %v", err)
	}
	if _, err := NewExtractor("mediancut", rng, 10); err == nil {
		t.Error("NewExtractor(mediancut) expected error")
	}
}

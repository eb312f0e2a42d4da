package kmeans

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/zoner/types"
)

// Seed picks n initial centroids with k-means++ D² weighting.
//
// The algorithm:
//  1. Choose the first centroid uniformly at random
//  2. Track, per point, the squared distance to its nearest chosen centroid
//  3. Choose every further centroid with probability proportional to that
//     distance, scanning the cumulative sum in point order; when every distance
//     is zero the choice falls back to a uniform draw
//
// Each returned cluster holds its seed point as the only member.
//
// Parameters:
//   - points: Points to seed from (order matters for reproducibility)
//   - n: Number of centroids, 1 <= n <= len(points)
//   - rng: Random source
//
// Returns:
//   - []*Cluster: n singleton clusters
//   - error: ErrNoPoints or ErrInvalidClusterCount
func Seed(points []types.Point, n int, rng types.RandomSource) ([]*Cluster, error) {
	if err := validateCount(len(points), n); err != nil {
		return nil, err
	}

	clusters := make([]*Cluster, n)
	for i := range clusters {
		clusters[i] = newCluster(i)
	}

	first := rng.IntN(len(points))
	clusters[0].add(points[first])
	clusters[0].updateCentroid()

	d2 := make([]float64, len(points))
	for j := range d2 {
		d2[j] = math.Inf(1)
	}
	updateMinSquaredDistances(d2, points, clusters[0])

	cum := make([]float64, len(points))
	for i := 1; i < n; i++ {
		floats.CumSum(cum, d2)
		sum := cum[len(cum)-1]

		var next int
		if sum == 0 {
			next = rng.IntN(len(points))
		} else {
			// First point whose running total reaches r.
			next = sort.SearchFloat64s(cum, rng.Float64()*sum)
		}

		clusters[i].add(points[next])
		clusters[i].updateCentroid()
		updateMinSquaredDistances(d2, points, clusters[i])
	}

	return clusters, nil
}

func updateMinSquaredDistances(d2 []float64, points []types.Point, c *Cluster) {
	for j, p := range points {
		d := distance(c, p)
		if dist2 := d * d; dist2 < d2[j] {
			d2[j] = dist2
		}
	}
}

func validateCount(pointCount, n int) error {
	if pointCount == 0 {
		return types.ErrNoPoints
	}
	if n <= 0 || n > pointCount {
		return fmt.Errorf("%w: n=%d must be in [1, %d]", types.ErrInvalidClusterCount, n, pointCount)
	}

	return nil
}

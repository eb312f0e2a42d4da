package kmeans

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/zoner/types"
)

// Iterate runs exactly rep Lloyd rounds over clusters in place.
//
// Each round clears every cluster, assigns each point to the cluster with the
// nearest centroid (ties go to the lowest index), then recomputes centroids.
// Clusters that receive no points keep their previous centroid. There is no
// convergence check.
//
// Parameters:
//   - clusters: Seeded clusters (must carry centroids)
//   - points: The full point set
//   - rep: Number of rounds, >= 0
//
// Returns:
//   - error: ErrInvalidRounds for negative rep, ErrInvalidClusterCount for no clusters
func Iterate(clusters []*Cluster, points []types.Point, rep int) error {
	if rep < 0 {
		return fmt.Errorf("%w: rep=%d", types.ErrInvalidRounds, rep)
	}
	if len(clusters) == 0 {
		return fmt.Errorf("%w: no clusters to refine", types.ErrInvalidClusterCount)
	}

	for range rep {
		for _, c := range clusters {
			c.clear()
		}
		for _, p := range points {
			nearest(clusters, p).add(p)
		}
		for _, c := range clusters {
			c.updateCentroid()
		}
	}

	return nil
}

func nearest(clusters []*Cluster, p types.Point) *Cluster {
	best := clusters[0]
	bestDist := math.Inf(1)
	for _, c := range clusters {
		if d := distance(c, p); d < bestDist {
			bestDist = d
			best = c
		}
	}

	return best
}

// distance is the Euclidean distance from the centroid of c to p.
func distance(c *Cluster, p types.Point) float64 {
	return floats.Distance([]float64{c.cx, c.cy}, []float64{p.X, p.Y}, 2)
}

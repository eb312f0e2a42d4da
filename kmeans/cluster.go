package kmeans

import "github.com/arloliu/zoner/types"

// Cluster is one group of points and its centroid.
//
// The centroid is the arithmetic mean of the current members. A cluster that
// loses every member keeps its previous centroid. Clusters rebuilt from persisted
// membership have no centroid at all.
type Cluster struct {
	index int

	cx, cy      float64
	hasCentroid bool

	members    []types.EntityID
	sumX, sumY float64
}

func newCluster(index int) *Cluster {
	return &Cluster{index: index}
}

func restoredCluster(index int, members []types.EntityID) *Cluster {
	c := &Cluster{index: index}
	c.members = append(make([]types.EntityID, 0, len(members)), members...)

	return c
}

// Index returns the cluster position in the clusterer result.
func (c *Cluster) Index() int { return c.index }

// Len returns the current member count.
func (c *Cluster) Len() int { return len(c.members) }

// Members returns a copy of the member IDs in assignment order.
func (c *Cluster) Members() []types.EntityID {
	out := make([]types.EntityID, len(c.members))
	copy(out, c.members)

	return out
}

// Centroid returns the cluster centre.
//
// Returns:
//   - x, y: Centroid coordinates
//   - bool: false for restored clusters, which carry no coordinates
func (c *Cluster) Centroid() (float64, float64, bool) {
	return c.cx, c.cy, c.hasCentroid
}

func (c *Cluster) add(p types.Point) {
	c.members = append(c.members, p.ID)
	c.sumX += p.X
	c.sumY += p.Y
}

func (c *Cluster) clear() {
	c.members = c.members[:0]
	c.sumX = 0
	c.sumY = 0
}

// updateCentroid recomputes the centre from the accumulator.
// Empty clusters keep their previous centre.
func (c *Cluster) updateCentroid() {
	if len(c.members) == 0 {
		return
	}
	size := float64(len(c.members))
	c.cx = c.sumX / size
	c.cy = c.sumY / size
	c.hasCentroid = true
}

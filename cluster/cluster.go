/*package cluster maintains the set of stuck particles and the spatial index
over their positions. The two structures are updated together inside Add and
Remove so callers can never observe a particle in one but not the other.

Particles are referenced by stable integer ids into an arena. Removal
tombstones the arena slot instead of shifting entries, so ids held elsewhere
(walker stick candidates, snapshot code) stay valid across pruning passes.
*/
package cluster

import (
	"math"

	"github.com/fractal-notebooks/dla/geom"
)

// Particle is a single stuck cluster member.
type Particle struct {
	Pos geom.Vec
	// Order is the aggregation sequence number, assigned when the particle
	// sticks and never reused.
	Order int32
	// Generation is the stick-order chain depth from the seed: a particle's
	// generation is one more than that of the neighbor it stuck to.
	Generation int32
}

type cellKey [3]int32

// Cluster is the arena of stuck particles plus a sparse uniform grid over
// their positions. The grid cell width equals the sticking distance, so a
// proximity query only ever has to visit the 3^d cells around a point.
type Cluster struct {
	particles []Particle
	dead      []bool
	deadCount int

	cellWidth float64
	cells     map[cellKey][]int32

	nextOrder int32
}

// New creates an empty Cluster whose index uses the given cell width. The
// cell width must be at least the radius used in NearestWithin queries.
func New(cellWidth float64) *Cluster {
	return &Cluster{
		cellWidth: cellWidth,
		cells:     make(map[cellKey][]int32),
	}
}

func (c *Cluster) key(pos *geom.Vec) cellKey {
	var k cellKey
	for i := 0; i < 3; i++ {
		k[i] = int32(math.Floor(float64(pos[i]) / c.cellWidth))
	}
	return k
}

// Add appends a stuck particle at pos, assigns it the next aggregation order
// and inserts it into the spatial index. It returns the particle's id.
func (c *Cluster) Add(pos geom.Vec, generation int32) int32 {
	id := int32(len(c.particles))
	c.particles = append(c.particles, Particle{
		Pos: pos, Order: c.nextOrder, Generation: generation,
	})
	c.dead = append(c.dead, false)
	c.nextOrder++

	k := c.key(&pos)
	c.cells[k] = append(c.cells[k], id)
	return id
}

// Remove tombstones the particle with the given id and deletes its index
// entry. Removing an already removed id is a no-op.
func (c *Cluster) Remove(id int32) {
	if c.dead[id] {
		return
	}
	c.dead[id] = true
	c.deadCount++

	k := c.key(&c.particles[id].Pos)
	bucket := c.cells[k]
	for i, bid := range bucket {
		if bid == id {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.cells, k)
	} else {
		c.cells[k] = bucket
	}
}

// NearestWithin returns the id of the closest live particle within radius of
// pos, and false if no particle is that close. Ties between equidistant
// particles break toward the lower id, which keeps query results independent
// of map iteration order.
func (c *Cluster) NearestWithin(pos *geom.Vec, radius float64) (int32, bool) {
	reach := int32(math.Ceil(radius / c.cellWidth))
	center := c.key(pos)

	best := int32(-1)
	bestDistSqr := radius * radius

	var k cellKey
	for dx := -reach; dx <= reach; dx++ {
		k[0] = center[0] + dx
		for dy := -reach; dy <= reach; dy++ {
			k[1] = center[1] + dy
			for dz := -reach; dz <= reach; dz++ {
				k[2] = center[2] + dz
				for _, id := range c.cells[k] {
					d := pos.DistSqr(&c.particles[id].Pos)
					if d < bestDistSqr ||
						(d == bestDistSqr && best >= 0 && id < best) {
						best = id
						bestDistSqr = d
					}
				}
			}
		}
	}

	if best < 0 {
		return -1, false
	}
	return best, true
}

// At returns the particle with the given id.
func (c *Cluster) At(id int32) Particle {
	return c.particles[id]
}

// Alive reports whether the particle with the given id has not been removed.
func (c *Cluster) Alive(id int32) bool {
	return !c.dead[id]
}

// Len returns the number of live particles.
func (c *Cluster) Len() int {
	return len(c.particles) - c.deadCount
}

// IDs appends the ids of all live particles to buf in id order and returns
// the extended slice. Passing a reused buffer avoids per-call allocation.
func (c *Cluster) IDs(buf []int32) []int32 {
	for id := range c.particles {
		if !c.dead[id] {
			buf = append(buf, int32(id))
		}
	}
	return buf
}

// IndexLen returns the number of particles currently held by the spatial
// index. The membership invariant is that this always equals Len(); the
// engine's tests check it at tick boundaries.
func (c *Cluster) IndexLen() int {
	n := 0
	for _, bucket := range c.cells {
		n += len(bucket)
	}
	return n
}

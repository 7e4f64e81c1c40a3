/*package dla grows diffusion-limited aggregation clusters. Walkers spawn on
an adaptive birth surface around the cluster, diffuse by biased random walk,
and stick to the cluster probabilistically on contact; walkers that wander
past the adaptive kill radius are discarded and replaced. The morphology of
the resulting cluster (radial blob, planar crust, column, filament) is
controlled entirely by the Policy, never by engine code paths.

A Simulation owns all mutable state: the cluster, its spatial index, the
domain extents and the random streams. External readers only ever receive
copies taken between ticks through Snapshot.
*/
package dla

import (
	"log"
	"sort"
	"time"

	"github.com/fractal-notebooks/dla/cluster"
	"github.com/fractal-notebooks/dla/geom"
	"github.com/fractal-notebooks/dla/math/rand"
)

// StepReport summarizes the work done by one Step call.
type StepReport struct {
	// Ticks is the number of ticks actually run, which is less than
	// requested if the run completed mid-call.
	Ticks int
	// Sticks is the number of walkers committed to the cluster.
	Sticks int
	// Kills is the number of walkers discarded at the kill radius or hard
	// boundary.
	Kills int
	// Pruned and Duplicated count the governor's deletions and clones.
	Pruned, Duplicated int
	// Dropped counts wandering walkers removed by the population cap.
	Dropped int

	// TotalParticles is the number of stuck particles after the call.
	TotalParticles int
	// Wandering is the number of active walkers after the call.
	Wandering int
	// ClusterExtent is the maximum distance of any stuck particle from the
	// origin, over the whole history of the run.
	ClusterExtent float64

	// BirthRadiusCollapsed warns that the birth radius is no closer than
	// one stick distance to the cluster. Growth can still proceed; the
	// offsets are probably misconfigured.
	BirthRadiusCollapsed bool
}

// SnapshotParticle is one stuck particle as seen by rendering and export
// collaborators.
type SnapshotParticle struct {
	Pos        geom.Vec
	Order      int32
	Generation int32
}

// birthSampler draws a walker spawn position for the current domain state.
type birthSampler func(gen *rand.Generator, out *geom.Vec)

// Simulation is a handle to a running aggregation. It is not safe for
// concurrent use; all methods must be called from one goroutine.
type Simulation struct {
	policy Policy
	seed   uint64

	gen   *rand.Generator
	clust *cluster.Cluster
	dom   domain
	birth birthSampler

	walkers      []walker
	outcomes     []outcome
	nextWalkerID int64

	tick     int
	complete bool

	idBuf []int32
}

// New validates the policy and builds a Simulation with its seed particles
// already stuck. Configuration errors are reported here and never reach the
// tick loop.
func New(policy Policy) (*Simulation, error) {
	if err := policy.checkInit(); err != nil {
		return nil, err
	}

	s := &Simulation{policy: policy, seed: policy.Seed}
	if s.seed == 0 {
		s.seed = uint64(time.Now().UnixNano())
	}
	s.gen = rand.New(rand.Xorshift, s.seed)

	s.clust = cluster.New(policy.StickDistance)
	s.dom = domain{
		geometry:    policy.BirthGeometry,
		axis:        policy.axis(),
		birthOffset: policy.BirthOffset,
		killOffset:  policy.KillOffset,
		boundary:    policy.BoundaryRadius,
	}

	seeds := geom.SeedPoints(
		policy.SeedGeometry, policy.Dims, policy.SeedCount, policy.SeedRadius,
	)
	for i := range seeds {
		s.clust.Add(seeds[i], 0)
		s.dom.onStick(&seeds[i])
	}

	s.birth = s.makeBirthSampler()

	if policy.Log {
		log.Printf(
			"dla: %dD %s growth from %d %s seeds, stickiness %g, seed %d",
			policy.Dims, policy.BirthGeometry, len(seeds),
			policy.SeedGeometry, policy.Stickiness, s.seed,
		)
	}
	return s, nil
}

func (s *Simulation) makeBirthSampler() birthSampler {
	p := &s.policy
	d := &s.dom
	dims, axis := p.Dims, p.axis()

	switch p.BirthGeometry {
	case geom.HemisphereUpper:
		return func(gen *rand.Generator, out *geom.Vec) {
			geom.HemisphereShell(gen, dims, axis, d.birthRadius(), out)
		}
	case geom.DiskAbove:
		return func(gen *rand.Generator, out *geom.Vec) {
			geom.DiskAt(
				gen, dims, axis,
				d.birthRadius(), d.axialExtent+p.BirthOffset, out,
			)
		}
	case geom.Cylinder:
		return func(gen *rand.Generator, out *geom.Vec) {
			geom.CylinderShell(
				gen, dims, axis,
				d.birthRadius(), d.axialExtent+p.BirthOffset, out,
			)
		}
	case geom.PlaneAbove:
		return func(gen *rand.Generator, out *geom.Vec) {
			geom.PlaneAt(
				gen, dims, axis,
				d.birthRadius(), d.axialExtent+p.BirthOffset, out,
			)
		}
	default:
		return func(gen *rand.Generator, out *geom.Vec) {
			geom.SphereShell(gen, dims, d.birthRadius(), out)
		}
	}
}

// Step runs up to nTicks simulation ticks and reports what happened. It
// returns early once the run completes; completion is only ever checked at
// tick boundaries, so no tick is left half applied.
func (s *Simulation) Step(nTicks int) StepReport {
	rep := StepReport{}

	for i := 0; i < nTicks && !s.complete; i++ {
		s.tickOnce(&rep)
		rep.Ticks++
	}

	rep.TotalParticles = s.clust.Len()
	rep.Wandering = len(s.walkers)
	rep.ClusterExtent = s.dom.radialExtent
	rep.BirthRadiusCollapsed = s.dom.birthRadius() <= s.policy.StickDistance

	if s.policy.Log {
		log.Printf(
			"dla: tick %d: %d stuck, %d wandering, extent %.4g",
			s.tick, rep.TotalParticles, rep.Wandering, rep.ClusterExtent,
		)
	}
	return rep
}

func (s *Simulation) tickOnce(rep *StepReport) {
	s.enforceCap(rep)
	s.spawn()

	// Phase (a): advance every wandering walker and gather stick
	// candidates. Workers only read the spatial index.
	if len(s.outcomes) < len(s.walkers) {
		s.outcomes = make([]outcome, len(s.walkers))
	}
	if s.policy.Workers == 1 || len(s.walkers) < 2*s.policy.Workers {
		for i := range s.walkers {
			s.advanceWalker(&s.walkers[i], &s.outcomes[i])
		}
	} else {
		out := make(chan int, s.policy.Workers)
		for w := 0; w < s.policy.Workers-1; w++ {
			go s.chanAdvance(w, out)
		}
		s.chanAdvance(s.policy.Workers-1, out)
		for w := 0; w < s.policy.Workers; w++ {
			<-out
		}
	}

	// Phase (b): serial commit in walker-id order.
	s.commit(rep)

	// Phase (c): stochastic pruning, after all commits for the tick.
	s.tick++
	if s.governorDue() {
		s.prune(rep)
	}

	if s.policy.TargetParticles > 0 &&
		s.clust.Len() >= s.policy.TargetParticles {
		s.complete = true
	}
	if s.policy.MaxTicks > 0 && s.tick >= s.policy.MaxTicks {
		s.complete = true
	}
}

// commit applies the tick's outcomes. Walkers appear in the walker list in
// ascending id order, so iterating it gives the deterministic tie-break the
// reproducibility guarantee needs. Candidate sticks within one stick
// distance of a stick already accepted this tick are deferred: the walker
// keeps wandering and gets another chance next tick.
func (s *Simulation) commit(rep *StepReport) {
	kept := s.walkers[:0]
	var accepted []geom.Vec

	for i := range s.walkers {
		o := &s.outcomes[i]
		w := &s.walkers[i]

		if o.killed {
			rep.Kills++
			continue
		}
		w.pos = o.pos
		if !o.stick {
			kept = append(kept, *w)
			continue
		}

		conflict := false
		for j := range accepted {
			if o.pos.Dist(&accepted[j]) < s.policy.StickDistance {
				conflict = true
				break
			}
		}
		if conflict {
			kept = append(kept, *w)
			continue
		}

		generation := s.clust.At(o.parent).Generation + 1
		s.clust.Add(o.pos, generation)
		s.dom.onStick(&o.pos)
		accepted = append(accepted, o.pos)
		rep.Sticks++
	}

	s.walkers = kept
}

// spawn tops the walker population up to the policy target, leaving room
// under the population cap. If the cap is exhausted by stuck particles the
// engine keeps servicing the walkers it already has.
func (s *Simulation) spawn() {
	room := s.policy.MaxActiveParticles - s.clust.Len() - len(s.walkers)
	want := s.policy.Walkers - len(s.walkers)
	if want > room {
		want = room
	}
	for i := 0; i < want; i++ {
		s.walkers = append(s.walkers, s.spawnWalker())
	}
}

// enforceCap drops the oldest wandering walkers while the total particle
// count exceeds the cap. Stuck particles are never dropped here; only the
// governor's deletion pass removes those.
func (s *Simulation) enforceCap(rep *StepReport) {
	over := s.clust.Len() + len(s.walkers) - s.policy.MaxActiveParticles
	if over <= 0 {
		return
	}
	if over > len(s.walkers) {
		over = len(s.walkers)
	}
	s.walkers = append(s.walkers[:0], s.walkers[over:]...)
	rep.Dropped += over
}

// Snapshot returns a copy of every stuck particle in aggregation order. It
// must be called between Step calls, which is the only time the cluster is
// quiescent.
func (s *Simulation) Snapshot() []SnapshotParticle {
	s.idBuf = s.clust.IDs(s.idBuf[:0])
	ps := make([]SnapshotParticle, len(s.idBuf))
	for i, id := range s.idBuf {
		p := s.clust.At(id)
		ps[i] = SnapshotParticle{
			Pos: p.Pos, Order: p.Order, Generation: p.Generation,
		}
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].Order < ps[j].Order })
	return ps
}

// Policy returns the validated policy the simulation was built with,
// defaults filled in.
func (s *Simulation) Policy() Policy {
	return s.policy
}

// IsComplete reports whether the run has hit its particle target or tick
// budget.
func (s *Simulation) IsComplete() bool {
	return s.complete
}

// Len returns the number of stuck particles.
func (s *Simulation) Len() int {
	return s.clust.Len()
}

// Tick returns the number of ticks run so far.
func (s *Simulation) Tick() int {
	return s.tick
}

// Extent returns the maximum distance any stuck particle has ever had from
// the origin.
func (s *Simulation) Extent() float64 {
	return s.dom.radialExtent
}

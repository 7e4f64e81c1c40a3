package dla

import (
	"github.com/fractal-notebooks/dla/geom"
	"github.com/fractal-notebooks/dla/math/rand"
)

// walker is a single diffusing particle. Each walker owns its random stream,
// so the sequence of positions it visits depends only on its id and the run
// seed, never on which worker goroutine advances it.
type walker struct {
	id  int64
	pos geom.Vec
	gen *rand.Generator
}

// outcome records the result of advancing one walker by one tick. The
// advance phase fills one outcome per walker with read-only access to the
// cluster; the commit phase applies them serially.
type outcome struct {
	pos    geom.Vec
	parent int32
	stick  bool
	killed bool
}

// advanceWalker moves w one biased random-walk step and runs the kill and
// stick tests against the new position. Sticking is a single probabilistic
// test for every stickiness value; stickiness = 1 is not a separate path.
func (s *Simulation) advanceWalker(w *walker, o *outcome) {
	var step geom.Vec
	geom.UnitStep(w.gen, s.policy.Dims, &step)
	step.ScaleSelf(s.policy.StepSize)

	o.pos = w.pos
	o.pos.AddSelf(&step)
	o.pos.AddSelf(&s.policy.BulkVelocity)
	o.stick, o.killed = false, false

	if s.dom.shouldKill(&o.pos) {
		o.killed = true
		return
	}

	id, ok := s.clust.NearestWithin(&o.pos, s.policy.StickDistance)
	if ok && w.gen.Uniform(0, 1) < s.policy.Stickiness {
		o.stick = true
		o.parent = id
	}
}

// chanAdvance advances the walkers assigned to one worker. Workers take
// strided slices of the walker list and write disjoint outcome entries, so
// the only shared state they touch is the read-only spatial index.
func (s *Simulation) chanAdvance(worker int, out chan<- int) {
	for i := worker; i < len(s.walkers); i += s.policy.Workers {
		s.advanceWalker(&s.walkers[i], &s.outcomes[i])
	}
	out <- worker
}

// spawnWalker creates a walker on the current birth surface. The walker's
// stream is derived from the run seed and the walker's id.
func (s *Simulation) spawnWalker() walker {
	id := s.nextWalkerID
	s.nextWalkerID++

	w := walker{
		id:  id,
		gen: rand.New(rand.Xorshift, s.seed+uint64(id)+1),
	}
	s.birth(w.gen, &w.pos)
	return w
}

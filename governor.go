package dla

import (
	"log"

	"github.com/fractal-notebooks/dla/geom"
)

// governorDue reports whether the pruning pass runs this tick. The pass is
// skipped entirely when both probabilities are zero.
func (s *Simulation) governorDue() bool {
	if s.policy.DeletionProbability == 0 &&
		s.policy.DuplicationProbability == 0 {
		return false
	}
	return s.tick%s.policy.PruneInterval == 0
}

// prune is the stochastic population governor. It deletes stuck particles
// with DeletionProbability and clones survivors at a small random offset
// with DuplicationProbability. Deletion draws no connectivity check:
// fragments cut off from the seed stay in the cluster, which is the intended
// lichen-model behavior rather than an oversight. All removals go through
// cluster.Remove, so the spatial index stays authoritative.
//
// The pass runs strictly after the tick's stick commits and works on an id
// list captured up front, so particles added by duplication are not
// re-visited within the same pass.
func (s *Simulation) prune(rep *StepReport) {
	s.idBuf = s.clust.IDs(s.idBuf[:0])
	pruned, duplicated := 0, 0

	if s.policy.DeletionProbability > 0 {
		for _, id := range s.idBuf {
			if s.gen.Uniform(0, 1) < s.policy.DeletionProbability {
				s.clust.Remove(id)
				pruned++
			}
		}
	}

	if s.policy.DuplicationProbability > 0 {
		// Clones count against MaxActiveParticles like any other particle.
		// Stuck particles can never be dropped to make room afterwards, so
		// the cap has to be respected here.
		room := s.policy.MaxActiveParticles - s.clust.Len() - len(s.walkers)

		var offset geom.Vec
		for _, id := range s.idBuf {
			if room <= 0 {
				break
			}
			if !s.clust.Alive(id) {
				continue
			}
			if s.gen.Uniform(0, 1) >= s.policy.DuplicationProbability {
				continue
			}

			// Secondary nucleation: a clone one particle radius away.
			geom.UnitStep(s.gen, s.policy.Dims, &offset)
			offset.ScaleSelf(s.policy.ParticleRadius)

			p := s.clust.At(id)
			pos := p.Pos
			pos.AddSelf(&offset)
			s.clust.Add(pos, p.Generation+1)
			s.dom.onStick(&pos)
			duplicated++
			room--
		}
	}

	rep.Pruned += pruned
	rep.Duplicated += duplicated
	if s.policy.Log && (pruned > 0 || duplicated > 0) {
		log.Printf(
			"dla: governor at tick %d: %d deleted, %d duplicated, %d live",
			s.tick, pruned, duplicated, s.clust.Len(),
		)
	}
}

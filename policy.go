package dla

import (
	"fmt"

	"github.com/fractal-notebooks/dla/geom"
)

// Policy is the immutable morphology configuration a Simulation is built
// from. The zero value of most fields means "use the default"; geometry and
// probability fields are validated by New and a bad value never reaches the
// tick loop.
type Policy struct {
	// Dims is the spatial dimension, 2 or 3. Default 3. The growth axis is
	// the last dimension: y in 2D, z in 3D.
	Dims int

	// Stickiness is the probability in (0, 1] that a walker in contact with
	// the cluster adheres. Lower values let walkers penetrate concavities
	// before sticking, raising the effective fractal dimension.
	Stickiness float64

	// ParticleRadius sets the length scale of the simulation. Default 0.5.
	ParticleRadius float64

	// StepSize is the random-walk step length. Default ParticleRadius.
	StepSize float64

	// StickDistance is the contact radius for the sticking test. Default
	// 2 * ParticleRadius.
	StickDistance float64

	// BirthGeometry selects where new walkers spawn.
	BirthGeometry geom.BirthGeometry
	// SeedGeometry, SeedCount and SeedRadius describe the initial stuck
	// particles. Defaults: a single point at the origin.
	SeedGeometry geom.SeedGeometry
	SeedCount    int
	SeedRadius   float64

	// BirthOffset and KillOffset are added to the cluster extent to derive
	// the spawn and discard radii. BirthOffset must be smaller than
	// KillOffset. Defaults: 5 and 15 particle radii.
	BirthOffset float64
	KillOffset  float64

	// BulkVelocity is a constant drift added to every walker step. Non-zero
	// values produce anisotropic, columnar or filamentous growth.
	BulkVelocity geom.Vec

	// Walkers is the target number of concurrently wandering walkers.
	// Default 64.
	Walkers int

	// MaxActiveParticles caps wandering walkers plus stuck particles.
	// Default 1 << 20. When the cap is hit the oldest wandering walkers are
	// dropped first; stuck particles are never dropped by the cap, so the
	// governor stops cloning once the cap is reached.
	MaxActiveParticles int

	// TargetParticles stops the run once the cluster holds this many stuck
	// particles. Zero means no particle-count bound.
	TargetParticles int
	// MaxTicks stops the run after this many ticks. Zero means no tick
	// bound. Both bounds are only checked at tick boundaries.
	MaxTicks int

	// DeletionProbability and DuplicationProbability drive the stochastic
	// pruning pass, which runs every PruneInterval ticks (default 100).
	// Deletion may disconnect downstream structure from the seed; fragments
	// are kept, matching lichen-style growth models.
	DeletionProbability    float64
	DuplicationProbability float64
	PruneInterval          int

	// BoundaryRadius is a hard spatial cutoff independent of the adaptive
	// kill radius. Zero means no hard boundary.
	BoundaryRadius float64

	// Seed seeds the run's random streams. Zero draws a seed from the wall
	// clock; runs with an explicit equal seed are reproducible.
	Seed uint64

	// Workers is the number of goroutines advancing walkers within a tick.
	// Results do not depend on it: every walker owns its random stream and
	// stick commits are ordered by walker id. Default 1.
	Workers int

	// Log enables progress lines through the standard logger.
	Log bool
}

// checkInit validates the policy and fills in defaults. It mutates the
// receiver, so New operates on its own copy.
func (p *Policy) checkInit() error {
	if p.Dims == 0 {
		p.Dims = 3
	}
	if p.Dims != 2 && p.Dims != 3 {
		return fmt.Errorf("Dims is %d, must be 2 or 3.", p.Dims)
	}

	if p.Stickiness <= 0 || p.Stickiness > 1 {
		return fmt.Errorf(
			"Stickiness is %g, must be in (0, 1].", p.Stickiness,
		)
	}

	if p.ParticleRadius == 0 {
		p.ParticleRadius = 0.5
	}
	if p.ParticleRadius < 0 {
		return fmt.Errorf(
			"ParticleRadius is %g, must be positive.", p.ParticleRadius,
		)
	}
	if p.StepSize == 0 {
		p.StepSize = p.ParticleRadius
	}
	if p.StepSize < 0 {
		return fmt.Errorf("StepSize is %g, must be positive.", p.StepSize)
	}
	if p.StickDistance == 0 {
		p.StickDistance = 2 * p.ParticleRadius
	}
	if p.StickDistance < 0 {
		return fmt.Errorf(
			"StickDistance is %g, must be positive.", p.StickDistance,
		)
	}

	if p.BirthGeometry < geom.Sphere || p.BirthGeometry > geom.PlaneAbove {
		return fmt.Errorf("Unrecognized birth geometry %d.", p.BirthGeometry)
	}
	if p.SeedGeometry < geom.Point || p.SeedGeometry > geom.Ring {
		return fmt.Errorf("Unrecognized seed geometry %d.", p.SeedGeometry)
	}
	if p.SeedCount == 0 {
		p.SeedCount = 1
	}
	if p.SeedCount < 0 {
		return fmt.Errorf("SeedCount is %d, must be positive.", p.SeedCount)
	}
	if p.SeedRadius < 0 {
		return fmt.Errorf(
			"SeedRadius is %g, must be non-negative.", p.SeedRadius,
		)
	}
	if p.SeedGeometry != geom.Point && p.SeedCount > 1 && p.SeedRadius == 0 {
		return fmt.Errorf(
			"Seed geometry %s with %d seeds needs a positive SeedRadius.",
			p.SeedGeometry, p.SeedCount,
		)
	}

	if p.BirthOffset == 0 {
		p.BirthOffset = 5 * p.ParticleRadius
	}
	if p.KillOffset == 0 {
		p.KillOffset = 3 * p.BirthOffset
	}
	if p.BirthOffset < 0 || p.KillOffset < 0 {
		return fmt.Errorf(
			"Birth and kill offsets must be positive (got %g and %g).",
			p.BirthOffset, p.KillOffset,
		)
	}
	if p.BirthOffset >= p.KillOffset {
		return fmt.Errorf(
			"BirthOffset (%g) must be smaller than KillOffset (%g).",
			p.BirthOffset, p.KillOffset,
		)
	}

	if p.Dims == 2 && p.BulkVelocity[2] != 0 {
		return fmt.Errorf(
			"BulkVelocity has a z component (%g) in a 2D simulation.",
			p.BulkVelocity[2],
		)
	}

	if p.Walkers == 0 {
		p.Walkers = 64
	}
	if p.Walkers < 0 {
		return fmt.Errorf("Walkers is %d, must be positive.", p.Walkers)
	}
	if p.MaxActiveParticles == 0 {
		p.MaxActiveParticles = 1 << 20
	}
	if p.MaxActiveParticles < 0 {
		return fmt.Errorf(
			"MaxActiveParticles is %d, must be positive.",
			p.MaxActiveParticles,
		)
	}
	if p.TargetParticles < 0 || p.MaxTicks < 0 {
		return fmt.Errorf(
			"TargetParticles and MaxTicks must be non-negative " +
				"(zero disables the bound).",
		)
	}
	if p.TargetParticles == 0 && p.MaxTicks == 0 {
		return fmt.Errorf(
			"Need a TargetParticles or MaxTicks bound, or the run would " +
				"never complete.",
		)
	}

	if p.DeletionProbability < 0 || p.DeletionProbability > 1 {
		return fmt.Errorf(
			"DeletionProbability is %g, must be in [0, 1].",
			p.DeletionProbability,
		)
	}
	if p.DuplicationProbability < 0 || p.DuplicationProbability > 1 {
		return fmt.Errorf(
			"DuplicationProbability is %g, must be in [0, 1].",
			p.DuplicationProbability,
		)
	}
	if p.PruneInterval == 0 {
		p.PruneInterval = 100
	}
	if p.PruneInterval < 0 {
		return fmt.Errorf(
			"PruneInterval is %d, must be positive.", p.PruneInterval,
		)
	}

	if p.BoundaryRadius < 0 {
		return fmt.Errorf(
			"BoundaryRadius is %g, must be non-negative.", p.BoundaryRadius,
		)
	}

	if p.Workers == 0 {
		p.Workers = 1
	}
	if p.Workers < 0 {
		return fmt.Errorf("Workers is %d, must be positive.", p.Workers)
	}

	return nil
}

// axis returns the growth axis index: y in 2D, z in 3D.
func (p *Policy) axis() int {
	return p.Dims - 1
}

/*package io reads run configuration files and writes cluster snapshots for
external collaborators. The simulation core itself has no file formats; these
are the CLI-facing adapters around dla.Policy and dla.Snapshot.
*/
package io

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"github.com/fractal-notebooks/dla"
	"github.com/fractal-notebooks/dla/geom"
)

const ExampleGrowFile = `[Grow]

#######################
# Required Parameters #
#######################

# Where the final snapshot is written.
Output = path/to/snapshot.csv

# Stop once the cluster holds this many stuck particles. At least one of
# TargetParticles and MaxTicks must be set.
TargetParticles = 20000

#######################
# Optional Parameters #
#######################

# Spatial dimension, 2 or 3. The growth axis is the last dimension.
# Dims = 3

# Probability in (0, 1] that a walker adheres on contact. 1.0 gives classic
# dendritic DLA; lower values give denser, higher-dimension clusters.
# Stickiness = 1.0

# Length scale of the simulation. The sticking distance defaults to twice
# this and the walk step length to exactly this.
# ParticleRadius = 0.5
# StepSize = 0.5
# StickDistance = 1.0

# Where new walkers spawn. One of:
# [ Sphere | HemisphereUpper | DiskAbove | Cylinder | PlaneAbove ]
# BirthGeometry = Sphere

# Initial stuck particles. SeedGeometry is one of
# [ Point | Line | Disk | Ring ]; SeedRadius and SeedCount size the
# arrangement (ignored by Point).
# SeedGeometry = Point
# SeedCount = 1
# SeedRadius = 0

# Spawn and discard radii are the cluster extent plus these offsets.
# BirthOffset must be smaller than KillOffset.
# BirthOffset = 2.5
# KillOffset = 7.5

# Constant drift added to every walker step. Non-zero values give columnar
# or filamentous growth.
# BulkVelocityX = 0
# BulkVelocityY = 0
# BulkVelocityZ = 0

# Concurrent walker target and the hard cap on walkers plus stuck particles.
# Walkers = 64
# MaxActiveParticles = 1048576

# Tick budget. Zero disables the bound.
# MaxTicks = 0

# Stochastic pruning: every PruneInterval ticks each stuck particle is
# deleted with DeletionProbability, and each survivor is cloned at a small
# offset with DuplicationProbability.
# DeletionProbability = 0
# DuplicationProbability = 0
# PruneInterval = 100

# Hard spatial cutoff independent of the adaptive kill radius. Zero disables.
# BoundaryRadius = 0

# RNG seed. Runs with the same non-zero seed are reproducible; zero seeds
# from the wall clock.
# Seed = 0

# Worker goroutines used to advance walkers. Results don't depend on this.
# Threads = 1

# Snapshot format, "csv", "ply" or "txt".
# Format = csv

# Ticks per progress report.
# ReportInterval = 1000

# Output files which are useful for profiling and debugging.
# LogFile = log.out
# ProfileFile = prof.out`

// Morphology presets. Each is a complete [Grow] file which only sets the
// fields that give the named growth habit; everything else keeps the
// defaults documented in ExampleGrowFile.

const ExampleCrustFile = `[Grow]

# Planar crust: walkers rain onto a disk-shaped seed bed from the upper
# hemisphere and the cluster spreads sideways instead of radially.

Output = crust.ply
Format = ply
TargetParticles = 20000

BirthGeometry = HemisphereUpper
SeedGeometry = Disk
SeedCount = 20
SeedRadius = 5`

const ExampleColumnFile = `[Grow]

# Column: a cylindrical spawn surface plus a downward drift grows a single
# vertical trunk with short side branches.

Output = column.ply
Format = ply
TargetParticles = 20000

BirthGeometry = Cylinder
BulkVelocityZ = -0.1`

const ExampleCoralFile = `[Grow]

# Coral: low stickiness lets walkers penetrate concavities before adhering,
# giving thick, dense branches instead of thin dendrites.

Output = coral.ply
Format = ply
TargetParticles = 20000

Stickiness = 0.1`

const ExampleLichenFile = `[Grow]

# Lichen: stochastic pruning deletes patches and secondary nucleation
# regrows them, producing a ragged, fragmented mat. Fragments cut off from
# the seed are kept.

Output = lichen.ply
Format = ply
TargetParticles = 20000

Stickiness = 0.5
DeletionProbability = 0.02
DuplicationProbability = 0.03
PruneInterval = 50`

// GrowConfig mirrors dla.Policy in configuration-friendly types, plus the
// run-level fields (output path and format, report cadence, utility files)
// that the engine itself doesn't know about.
type GrowConfig struct {
	// Required
	Output          string
	TargetParticles int

	// Optional
	Dims                   int
	Stickiness             float64
	ParticleRadius         float64
	StepSize               float64
	StickDistance          float64
	BirthGeometry          string
	SeedGeometry           string
	SeedCount              int
	SeedRadius             float64
	BirthOffset            float64
	KillOffset             float64
	BulkVelocityX          float64
	BulkVelocityY          float64
	BulkVelocityZ          float64
	Walkers                int
	MaxActiveParticles     int
	MaxTicks               int
	DeletionProbability    float64
	DuplicationProbability float64
	PruneInterval          int
	BoundaryRadius         float64
	Seed                   uint64
	Threads                int

	Format         string
	ReportInterval int

	LogFile, ProfileFile string
}

// GrowWrapper is the gcfg section wrapper around GrowConfig.
type GrowWrapper struct {
	Grow GrowConfig
}

// DefaultGrowWrapper returns a wrapper whose optional fields carry the
// defaults the config file comments describe.
func DefaultGrowWrapper() *GrowWrapper {
	con := GrowConfig{}
	con.Stickiness = 1.0
	con.BirthGeometry = "Sphere"
	con.SeedGeometry = "Point"
	con.Format = "csv"
	con.ReportInterval = 1000
	return &GrowWrapper{con}
}

// ReadGrowConfig parses a [Grow] configuration file.
func ReadGrowConfig(fname string) (*GrowConfig, error) {
	wrap := DefaultGrowWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	con := &wrap.Grow

	if con.Output == "" {
		return nil, fmt.Errorf("Grow config needs an Output path.")
	}
	if con.Format != "csv" && con.Format != "ply" && con.Format != "txt" {
		return nil, fmt.Errorf(
			"Format is '%s', must be 'csv', 'ply' or 'txt'.", con.Format,
		)
	}
	if con.ReportInterval <= 0 {
		return nil, fmt.Errorf(
			"ReportInterval is %d, must be positive.", con.ReportInterval,
		)
	}
	return con, nil
}

// Policy converts the parsed configuration into a dla.Policy. Field
// validation beyond type conversion is left to dla.New.
func (con *GrowConfig) Policy(logFlag bool) (dla.Policy, error) {
	birth, err := geom.ParseBirthGeometry(con.BirthGeometry)
	if err != nil {
		return dla.Policy{}, err
	}
	seed, err := geom.ParseSeedGeometry(con.SeedGeometry)
	if err != nil {
		return dla.Policy{}, err
	}

	return dla.Policy{
		Dims:           con.Dims,
		Stickiness:     con.Stickiness,
		ParticleRadius: con.ParticleRadius,
		StepSize:       con.StepSize,
		StickDistance:  con.StickDistance,
		BirthGeometry:  birth,
		SeedGeometry:   seed,
		SeedCount:      con.SeedCount,
		SeedRadius:     con.SeedRadius,
		BirthOffset:    con.BirthOffset,
		KillOffset:     con.KillOffset,
		BulkVelocity: geom.Vec{
			float32(con.BulkVelocityX),
			float32(con.BulkVelocityY),
			float32(con.BulkVelocityZ),
		},
		Walkers:                con.Walkers,
		MaxActiveParticles:     con.MaxActiveParticles,
		TargetParticles:        con.TargetParticles,
		MaxTicks:               con.MaxTicks,
		DeletionProbability:    con.DeletionProbability,
		DuplicationProbability: con.DuplicationProbability,
		PruneInterval:          con.PruneInterval,
		BoundaryRadius:         con.BoundaryRadius,
		Seed:                   con.Seed,
		Workers:                con.Threads,
		Log:                    logFlag,
	}, nil
}

package geom

import (
	"fmt"
	"math"

	"github.com/fractal-notebooks/dla/math/rand"
)

// BirthGeometry selects the surface new walkers are spawned on. Each variant
// has a documented support set: Sphere spawns anywhere on the shell,
// HemisphereUpper and DiskAbove and PlaneAbove only at growth-axis
// coordinates >= 0, Cylinder on a shell coaxial with the growth axis.
type BirthGeometry int

const (
	Sphere BirthGeometry = iota
	HemisphereUpper
	DiskAbove
	Cylinder
	PlaneAbove
)

// SeedGeometry selects the arrangement of the initial stuck particles.
// Point, Line and Disk lie in the plane orthogonal to the growth axis; Ring
// is a circle in the xy plane, which in two dimensions is the simulation
// plane itself.
type SeedGeometry int

const (
	Point SeedGeometry = iota
	Line
	Disk
	Ring
)

var birthGeometryNames = []string{
	"Sphere", "HemisphereUpper", "DiskAbove", "Cylinder", "PlaneAbove",
}

var seedGeometryNames = []string{"Point", "Line", "Disk", "Ring"}

func (g BirthGeometry) String() string {
	if g < 0 || int(g) >= len(birthGeometryNames) {
		return fmt.Sprintf("BirthGeometry(%d)", int(g))
	}
	return birthGeometryNames[g]
}

func (g SeedGeometry) String() string {
	if g < 0 || int(g) >= len(seedGeometryNames) {
		return fmt.Sprintf("SeedGeometry(%d)", int(g))
	}
	return seedGeometryNames[g]
}

// ParseBirthGeometry converts a configuration string into a BirthGeometry.
func ParseBirthGeometry(s string) (BirthGeometry, error) {
	for i, name := range birthGeometryNames {
		if s == name {
			return BirthGeometry(i), nil
		}
	}
	return 0, fmt.Errorf("Unrecognized birth geometry, '%s'.", s)
}

// ParseSeedGeometry converts a configuration string into a SeedGeometry.
func ParseSeedGeometry(s string) (SeedGeometry, error) {
	for i, name := range seedGeometryNames {
		if s == name {
			return SeedGeometry(i), nil
		}
	}
	return 0, fmt.Errorf("Unrecognized seed geometry, '%s'.", s)
}

// UnitStep stores an isotropically distributed unit vector in out. For two
// dimensional simulations the vector lies in the xy-plane.
func UnitStep(gen *rand.Generator, dims int, out *Vec) {
	theta := gen.Uniform(0, 2*math.Pi)
	if dims == 2 {
		*out = Vec{float32(math.Cos(theta)), float32(math.Sin(theta)), 0}
		return
	}
	z := gen.Uniform(-1, 1)
	r := math.Sqrt(1 - z*z)
	*out = Vec{
		float32(r * math.Cos(theta)), float32(r * math.Sin(theta)),
		float32(z),
	}
}

// SphereShell stores a point drawn uniformly from the origin-centered shell
// of the given radius in out. In two dimensions the shell is a circle.
func SphereShell(gen *rand.Generator, dims int, radius float64, out *Vec) {
	UnitStep(gen, dims, out)
	out.ScaleSelf(radius)
}

// HemisphereShell stores a point drawn uniformly from the half of the shell
// with a non-negative growth-axis coordinate in out.
func HemisphereShell(
	gen *rand.Generator, dims, axis int, radius float64, out *Vec,
) {
	SphereShell(gen, dims, radius, out)
	if out[axis] < 0 {
		out[axis] = -out[axis]
	}
}

// DiskAt stores a point drawn uniformly from a disk of the given radius in
// out. The disk is orthogonal to the growth axis at the given height. In two
// dimensions it degenerates to a segment along the x axis.
func DiskAt(
	gen *rand.Generator, dims, axis int, radius, height float64, out *Vec,
) {
	*out = Vec{}
	if dims == 2 {
		out[0] = float32(gen.Uniform(-radius, radius))
	} else {
		r := radius * math.Sqrt(gen.Uniform(0, 1))
		theta := gen.Uniform(0, 2*math.Pi)
		out[0] = float32(r * math.Cos(theta))
		out[1] = float32(r * math.Sin(theta))
	}
	out[axis] = float32(height)
}

// PlaneAt stores a point drawn uniformly from a square of the given half
// width in out. The square is orthogonal to the growth axis at the given
// height.
func PlaneAt(
	gen *rand.Generator, dims, axis int, half, height float64, out *Vec,
) {
	*out = Vec{}
	out[0] = float32(gen.Uniform(-half, half))
	if dims == 3 {
		out[1] = float32(gen.Uniform(-half, half))
	}
	out[axis] = float32(height)
}

// CylinderShell stores a point drawn uniformly from the side of a cylinder
// coaxial with the growth axis in out. The cylinder spans growth-axis
// coordinates [0, height].
func CylinderShell(
	gen *rand.Generator, dims, axis int, radius, height float64, out *Vec,
) {
	*out = Vec{}
	if dims == 2 {
		if gen.Uniform(0, 1) < 0.5 {
			out[0] = float32(-radius)
		} else {
			out[0] = float32(radius)
		}
	} else {
		theta := gen.Uniform(0, 2*math.Pi)
		out[0] = float32(radius * math.Cos(theta))
		out[1] = float32(radius * math.Sin(theta))
	}
	out[axis] = float32(gen.Uniform(0, height))
}

// SeedPoints returns the initial stuck-particle positions for the given seed
// arrangement. Point ignores count and radius and returns the origin. Line
// spaces count points evenly along the x axis over [-radius, +radius]. Disk
// fills a sunflower spiral of count points out to radius. Ring spaces count
// points evenly around a circle of the given radius in the xy plane, in two
// dimensions as well as three.
func SeedPoints(g SeedGeometry, dims, count int, radius float64) []Vec {
	if count < 1 {
		count = 1
	}

	switch g {
	case Point:
		return []Vec{{}}
	case Line:
		vs := make([]Vec, count)
		if count == 1 {
			return vs
		}
		spacing := 2 * radius / float64(count-1)
		for i := range vs {
			vs[i][0] = float32(-radius + float64(i)*spacing)
		}
		return vs
	case Disk:
		// Sunflower arrangement: radius grows as sqrt(i/n) with points
		// rotated by the golden angle, giving near-uniform area coverage.
		vs := make([]Vec, count)
		golden := math.Pi * (3 - math.Sqrt(5))
		for i := range vs {
			r := radius * math.Sqrt(float64(i)/float64(count))
			theta := float64(i) * golden
			vs[i][0] = float32(r * math.Cos(theta))
			if dims == 3 {
				vs[i][1] = float32(r * math.Sin(theta))
			}
		}
		return vs
	case Ring:
		vs := make([]Vec, count)
		for i := range vs {
			theta := 2 * math.Pi * float64(i) / float64(count)
			vs[i][0] = float32(radius * math.Cos(theta))
			vs[i][1] = float32(radius * math.Sin(theta))
		}
		return vs
	}
	return []Vec{{}}
}

package geom

import (
	"math"
	"testing"

	"github.com/fractal-notebooks/dla/math/rand"
)

const (
	genType = rand.Xorshift
	testEps = 1e-5
)

func almostEq(x, y float64) bool {
	return math.Abs(x-y) <= testEps
}

func TestVecOps(t *testing.T) {
	v := Vec{1, 2, 3}
	v2 := Vec{4, -2, 1}

	sum := v
	sum.AddSelf(&v2)
	if sum != (Vec{5, 0, 4}) {
		t.Errorf("AddSelf gave %v", sum)
	}

	diff := v
	diff.SubSelf(&v2)
	if diff != (Vec{-3, 4, 2}) {
		t.Errorf("SubSelf gave %v", diff)
	}

	scaled := v
	scaled.ScaleSelf(2)
	if scaled != (Vec{2, 4, 6}) {
		t.Errorf("ScaleSelf gave %v", scaled)
	}

	var out Vec
	v.AddAt(&v2, &out)
	if out != (Vec{5, 0, 4}) {
		t.Errorf("AddAt gave %v", out)
	}
	v.SubAt(&v2, &out)
	if out != (Vec{-3, 4, 2}) {
		t.Errorf("SubAt gave %v", out)
	}
}

func TestVecNorms(t *testing.T) {
	v := Vec{3, 4, 12}
	if !almostEq(v.Norm(), 13) {
		t.Errorf("Norm gave %g, not 13", v.Norm())
	}

	v2 := Vec{3, 4, 0}
	if !almostEq(v.Dist(&v2), 12) {
		t.Errorf("Dist gave %g, not 12", v.Dist(&v2))
	}
	if !almostEq(v.DistSqr(&v2), 144) {
		t.Errorf("DistSqr gave %g, not 144", v.DistSqr(&v2))
	}

	if !almostEq(v.LateralNorm(2), 5) {
		t.Errorf("LateralNorm(2) gave %g, not 5", v.LateralNorm(2))
	}
	if !almostEq(v.LateralNorm(0), math.Sqrt(160)) {
		t.Errorf("LateralNorm(0) gave %g", v.LateralNorm(0))
	}
}

func TestUnitStep(t *testing.T) {
	gen := rand.New(genType, 1)
	var v Vec

	for i := 0; i < 1000; i++ {
		UnitStep(gen, 3, &v)
		if !almostEq(v.Norm(), 1) {
			t.Fatalf("3D step %v has norm %g", v, v.Norm())
		}
	}
	for i := 0; i < 1000; i++ {
		UnitStep(gen, 2, &v)
		if !almostEq(v.Norm(), 1) {
			t.Fatalf("2D step %v has norm %g", v, v.Norm())
		}
		if v[2] != 0 {
			t.Fatalf("2D step %v has a z component", v)
		}
	}
}

func TestSphereShell(t *testing.T) {
	gen := rand.New(genType, 2)
	var v Vec

	for i := 0; i < 1000; i++ {
		SphereShell(gen, 3, 7, &v)
		if math.Abs(v.Norm()-7) > 1e-3 {
			t.Fatalf("shell point %v has radius %g, not 7", v, v.Norm())
		}
	}
}

func TestHemisphereShell(t *testing.T) {
	gen := rand.New(genType, 3)
	var v Vec

	for i := 0; i < 1000; i++ {
		HemisphereShell(gen, 3, 2, 5, &v)
		if math.Abs(v.Norm()-5) > 1e-3 {
			t.Fatalf("shell point %v has radius %g, not 5", v, v.Norm())
		}
		if v[2] < 0 {
			t.Fatalf("shell point %v is below the axis plane", v)
		}
	}

	for i := 0; i < 1000; i++ {
		HemisphereShell(gen, 2, 1, 5, &v)
		if v[1] < 0 {
			t.Fatalf("2D shell point %v is below the axis plane", v)
		}
		if v[2] != 0 {
			t.Fatalf("2D shell point %v has a z component", v)
		}
	}
}

func TestDiskAt(t *testing.T) {
	gen := rand.New(genType, 4)
	var v Vec

	for i := 0; i < 1000; i++ {
		DiskAt(gen, 3, 2, 4, 9, &v)
		if v[2] != 9 {
			t.Fatalf("disk point %v is not at height 9", v)
		}
		if v.LateralNorm(2) > 4+testEps {
			t.Fatalf("disk point %v is outside radius 4", v)
		}
	}

	for i := 0; i < 1000; i++ {
		DiskAt(gen, 2, 1, 4, 9, &v)
		if v[1] != 9 || v[2] != 0 {
			t.Fatalf("2D disk point %v is off the segment plane", v)
		}
		if v[0] < -4 || v[0] > 4 {
			t.Fatalf("2D disk point %v is outside the segment", v)
		}
	}
}

func TestPlaneAt(t *testing.T) {
	gen := rand.New(genType, 5)
	var v Vec

	for i := 0; i < 1000; i++ {
		PlaneAt(gen, 3, 2, 3, 6, &v)
		if v[2] != 6 {
			t.Fatalf("plane point %v is not at height 6", v)
		}
		if v[0] < -3 || v[0] > 3 || v[1] < -3 || v[1] > 3 {
			t.Fatalf("plane point %v is outside the square", v)
		}
	}
}

func TestCylinderShell(t *testing.T) {
	gen := rand.New(genType, 6)
	var v Vec

	for i := 0; i < 1000; i++ {
		CylinderShell(gen, 3, 2, 2, 10, &v)
		if math.Abs(v.LateralNorm(2)-2) > 1e-3 {
			t.Fatalf(
				"cylinder point %v has lateral radius %g, not 2",
				v, v.LateralNorm(2),
			)
		}
		if v[2] < 0 || v[2] > 10 {
			t.Fatalf("cylinder point %v is outside the height range", v)
		}
	}

	for i := 0; i < 1000; i++ {
		CylinderShell(gen, 2, 1, 2, 10, &v)
		if v[0] != 2 && v[0] != -2 {
			t.Fatalf("2D cylinder point %v is off the walls", v)
		}
	}
}

func TestSeedPoints(t *testing.T) {
	if vs := SeedPoints(Point, 3, 5, 1); len(vs) != 1 || vs[0] != (Vec{}) {
		t.Errorf("Point seeds gave %v", vs)
	}

	vs := SeedPoints(Line, 3, 3, 2)
	if len(vs) != 3 {
		t.Fatalf("Line seeds gave %d points", len(vs))
	}
	want := []Vec{{-2, 0, 0}, {0, 0, 0}, {2, 0, 0}}
	for i := range vs {
		if vs[i] != want[i] {
			t.Errorf("Line seed %d is %v, not %v", i, vs[i], want[i])
		}
	}

	vs = SeedPoints(Disk, 3, 50, 3)
	if len(vs) != 50 {
		t.Fatalf("Disk seeds gave %d points", len(vs))
	}
	for i := range vs {
		if vs[i].Norm() > 3+testEps {
			t.Errorf("Disk seed %d at %v is outside radius 3", i, vs[i])
		}
		if vs[i][2] != 0 {
			t.Errorf("Disk seed %d at %v is off the seed plane", i, vs[i])
		}
	}

	vs = SeedPoints(Ring, 3, 8, 4)
	if len(vs) != 8 {
		t.Fatalf("Ring seeds gave %d points", len(vs))
	}
	for i := range vs {
		if math.Abs(vs[i].Norm()-4) > 1e-3 {
			t.Errorf("Ring seed %d at %v is off the circle", i, vs[i])
		}
	}

	// The ring keeps its count in 2D: the circle lies in the simulation
	// plane.
	vs = SeedPoints(Ring, 2, 6, 4)
	if len(vs) != 6 {
		t.Fatalf("2D Ring seeds gave %d points", len(vs))
	}
	for i := range vs {
		if math.Abs(vs[i].Norm()-4) > 1e-3 {
			t.Errorf("2D Ring seed %d at %v is off the circle", i, vs[i])
		}
		if vs[i][2] != 0 {
			t.Errorf("2D Ring seed %d at %v has a z component", i, vs[i])
		}
	}
}

func TestParseGeometries(t *testing.T) {
	for i, name := range birthGeometryNames {
		g, err := ParseBirthGeometry(name)
		if err != nil || g != BirthGeometry(i) {
			t.Errorf("ParseBirthGeometry(%s) gave %v, %v", name, g, err)
		}
	}
	for i, name := range seedGeometryNames {
		g, err := ParseSeedGeometry(name)
		if err != nil || g != SeedGeometry(i) {
			t.Errorf("ParseSeedGeometry(%s) gave %v, %v", name, g, err)
		}
	}

	if _, err := ParseBirthGeometry("Cube"); err == nil {
		t.Errorf("ParseBirthGeometry accepted 'Cube'")
	}
	if _, err := ParseSeedGeometry("Blob"); err == nil {
		t.Errorf("ParseSeedGeometry accepted 'Blob'")
	}
}

func BenchmarkUnitStep3D(b *testing.B) {
	gen := rand.NewTimeSeed(genType)
	var v Vec
	for i := 0; i < b.N; i++ {
		UnitStep(gen, 3, &v)
	}
}

func BenchmarkUnitStep2D(b *testing.B) {
	gen := rand.NewTimeSeed(genType)
	var v Vec
	for i := 0; i < b.N; i++ {
		UnitStep(gen, 2, &v)
	}
}

func BenchmarkSphereShell(b *testing.B) {
	gen := rand.NewTimeSeed(genType)
	var v Vec
	for i := 0; i < b.N; i++ {
		SphereShell(gen, 3, 100, &v)
	}
}

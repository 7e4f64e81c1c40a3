package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fractal-notebooks/dla/geom"
)

// filledSquare returns an n x n unit-spaced grid of points in the xy-plane.
func filledSquare(n int) []geom.Vec {
	points := make([]geom.Vec, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			points = append(points, geom.Vec{float32(i), float32(j), 0})
		}
	}
	return points
}

// line returns n unit-spaced points along the x axis starting at 1.
func line(n int) []geom.Vec {
	points := make([]geom.Vec, n)
	for i := range points {
		points[i][0] = float32(i + 1)
	}
	return points
}

func TestBoxCountingFilledSquare(t *testing.T) {
	d, err := BoxCountingDimension(filledSquare(128), 2, 32)
	assert.NoError(t, err)
	assert.InDelta(t, 2.0, d, 0.05, "filled square")
}

func TestBoxCountingLine(t *testing.T) {
	d, err := BoxCountingDimension(line(1024), 2, 64)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, d, 0.05, "line")
}

func TestBoxCountingErrors(t *testing.T) {
	_, err := BoxCountingDimension([]geom.Vec{}, 1, 8)
	assert.Error(t, err, "empty point set")

	_, err = BoxCountingDimension(line(16), 8, 1)
	assert.Error(t, err, "inverted box range")

	_, err = BoxCountingDimension(line(16), 0, 8)
	assert.Error(t, err, "zero min box")

	_, err = BoxCountingDimension(line(16), 4, 6)
	assert.Error(t, err, "single box scale")
}

func TestMassRadiusLine(t *testing.T) {
	// N(<r) grows linearly along a line, so the fitted exponent is 1.
	d, err := MassRadiusDimension(line(1024), 8, 512)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, d, 0.05, "line")
}

func TestMassRadiusFilledDisk(t *testing.T) {
	points := []geom.Vec{}
	for i := -64; i <= 64; i++ {
		for j := -64; j <= 64; j++ {
			p := geom.Vec{float32(i), float32(j), 0}
			if p.Norm() <= 64 {
				points = append(points, p)
			}
		}
	}
	d, err := MassRadiusDimension(points, 4, 64)
	assert.NoError(t, err)
	assert.InDelta(t, 2.0, d, 0.1, "filled disk")
}

func TestMassRadiusErrors(t *testing.T) {
	_, err := MassRadiusDimension([]geom.Vec{}, 1, 8)
	assert.Error(t, err, "empty point set")

	_, err = MassRadiusDimension(line(16), -1, 8)
	assert.Error(t, err, "negative min radius")
}

func TestRadiusOfGyration(t *testing.T) {
	points := []geom.Vec{{1, 0, 0}, {-1, 0, 0}}
	assert.InDelta(t, 1.0, RadiusOfGyration(points), 1e-6, "symmetric pair")

	assert.Equal(t, 0.0, RadiusOfGyration(nil), "empty point set")
	assert.Equal(
		t, 0.0, RadiusOfGyration([]geom.Vec{{3, 4, 0}}), "single point",
	)
}

func TestMaxRadius(t *testing.T) {
	points := []geom.Vec{{1, 0, 0}, {3, 4, 0}, {0, 0, 2}}
	assert.InDelta(t, 5.0, MaxRadius(points), 1e-6)
	assert.Equal(t, 0.0, MaxRadius(nil))
}

func TestFitLine(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1, 3, 5, 7}
	slope, intercept := fitLine(xs, ys)
	assert.InDelta(t, 2.0, slope, 1e-12)
	assert.InDelta(t, 1.0, intercept, 1e-12)
}

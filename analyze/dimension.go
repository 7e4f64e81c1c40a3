/*package analyze estimates scaling properties of grown clusters: fractal
dimension by box counting or mass-radius scaling, and radius statistics.
These are the quantities the stickiness-morphology relationship is measured
with: lower stickiness packs the same mass into a smaller radius and raises
the box-counting dimension.
*/
package analyze

import (
	"fmt"
	"math"

	"github.com/fractal-notebooks/dla/geom"
)

// BoxCountingDimension estimates the fractal dimension of a point set. Boxes
// of geometrically spaced sizes between minBox and maxBox are laid over the
// points and the dimension is the fitted slope of log(occupied count)
// against log(1/size). At least two box scales must fit in [minBox, maxBox].
func BoxCountingDimension(points []geom.Vec, minBox, maxBox float64) (float64, error) {
	if len(points) == 0 {
		return 0, fmt.Errorf("Cannot estimate dimension of an empty cluster.")
	}
	if minBox <= 0 || maxBox <= minBox {
		return 0, fmt.Errorf(
			"Invalid box size range [%g, %g].", minBox, maxBox,
		)
	}

	logSizes, logCounts := []float64{}, []float64{}
	for size := minBox; size <= maxBox; size *= 2 {
		n := countBoxes(points, size)
		logSizes = append(logSizes, math.Log(1/size))
		logCounts = append(logCounts, math.Log(float64(n)))
	}
	if len(logSizes) < 2 {
		return 0, fmt.Errorf(
			"Only %d box scales fit in [%g, %g]; need at least 2.",
			len(logSizes), minBox, maxBox,
		)
	}

	slope, _ := fitLine(logSizes, logCounts)
	return slope, nil
}

func countBoxes(points []geom.Vec, size float64) int {
	boxes := make(map[[3]int32]struct{})
	for i := range points {
		var k [3]int32
		for j := 0; j < 3; j++ {
			k[j] = int32(math.Floor(float64(points[i][j]) / size))
		}
		boxes[k] = struct{}{}
	}
	return len(boxes)
}

// MassRadiusDimension estimates the fractal dimension from the scaling of
// enclosed mass with radius: the fitted slope of log N(<r) against log r at
// geometrically spaced radii between minR and maxR.
func MassRadiusDimension(points []geom.Vec, minR, maxR float64) (float64, error) {
	if len(points) == 0 {
		return 0, fmt.Errorf("Cannot estimate dimension of an empty cluster.")
	}
	if minR <= 0 || maxR <= minR {
		return 0, fmt.Errorf("Invalid radius range [%g, %g].", minR, maxR)
	}

	rs := make([]float64, len(points))
	for i := range points {
		rs[i] = points[i].Norm()
	}

	logRs, logNs := []float64{}, []float64{}
	for r := minR; r <= maxR; r *= 2 {
		n := 0
		for _, ri := range rs {
			if ri <= r {
				n++
			}
		}
		if n == 0 {
			continue
		}
		logRs = append(logRs, math.Log(r))
		logNs = append(logNs, math.Log(float64(n)))
	}
	if len(logRs) < 2 {
		return 0, fmt.Errorf(
			"Only %d radii have enclosed mass in [%g, %g]; need at least 2.",
			len(logRs), minR, maxR,
		)
	}

	slope, _ := fitLine(logRs, logNs)
	return slope, nil
}

// RadiusOfGyration returns the root mean square distance of the points from
// their center of mass.
func RadiusOfGyration(points []geom.Vec) float64 {
	if len(points) == 0 {
		return 0
	}

	var center geom.Vec
	for i := range points {
		center.AddSelf(&points[i])
	}
	center.ScaleSelf(1 / float64(len(points)))

	sum := 0.0
	for i := range points {
		sum += points[i].DistSqr(&center)
	}
	return math.Sqrt(sum / float64(len(points)))
}

// MaxRadius returns the largest distance of any point from the origin.
func MaxRadius(points []geom.Vec) float64 {
	max := 0.0
	for i := range points {
		if r := points[i].Norm(); r > max {
			max = r
		}
	}
	return max
}

// fitLine least-squares fits ys = slope*xs + intercept.
func fitLine(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sx, sy, sxx, sxy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}

	det := n*sxx - sx*sx
	if det == 0 {
		return 0, sy / n
	}
	slope = (n*sxy - sx*sy) / det
	intercept = (sy - slope*sx) / n
	return slope, intercept
}

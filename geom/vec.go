/*package geom contains the vector type used to represent particle and walker
positions along with the geometric sampling routines which generate walker
birth positions and cluster seeds.
*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector. Two dimensional simulations use the
// first two components and leave the third identically zero.
type Vec [3]float32

// AddSelf adds v2 to v in place and returns v for chaining.
func (v *Vec) AddSelf(v2 *Vec) *Vec {
	for i := 0; i < 3; i++ {
		v[i] += v2[i]
	}
	return v
}

// SubSelf subtracts v2 from v in place and returns v for chaining.
func (v *Vec) SubSelf(v2 *Vec) *Vec {
	for i := 0; i < 3; i++ {
		v[i] -= v2[i]
	}
	return v
}

// ScaleSelf multiplies every component of v by s in place and returns v for
// chaining.
func (v *Vec) ScaleSelf(s float64) *Vec {
	for i := 0; i < 3; i++ {
		v[i] = float32(float64(v[i]) * s)
	}
	return v
}

// AddAt stores v + v2 in out.
func (v *Vec) AddAt(v2, out *Vec) {
	for i := 0; i < 3; i++ {
		out[i] = v[i] + v2[i]
	}
}

// SubAt stores v - v2 in out.
func (v *Vec) SubAt(v2, out *Vec) {
	for i := 0; i < 3; i++ {
		out[i] = v[i] - v2[i]
	}
}

// Norm returns the Euclidean length of v.
func (v *Vec) Norm() float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		sum += float64(v[i]) * float64(v[i])
	}
	return math.Sqrt(sum)
}

// Dist returns the Euclidean distance between v and v2.
func (v *Vec) Dist(v2 *Vec) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		d := float64(v[i]) - float64(v2[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// DistSqr returns the squared Euclidean distance between v and v2. Proximity
// tests against a fixed radius should use this to skip the square root.
func (v *Vec) DistSqr(v2 *Vec) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		d := float64(v[i]) - float64(v2[i])
		sum += d * d
	}
	return sum
}

// LateralNorm returns the length of v projected onto the plane orthogonal to
// the given axis.
func (v *Vec) LateralNorm(axis int) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		sum += float64(v[i]) * float64(v[i])
	}
	return math.Sqrt(sum)
}

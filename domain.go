package dla

import (
	"github.com/fractal-notebooks/dla/geom"
)

// domain tracks how far the cluster has reached and derives the adaptive
// birth and kill radii from that reach. Reach is monotonically
// non-decreasing: pruning never revises it, so the derived radii cannot
// oscillate and starve growth.
//
// The reach metric depends on the birth geometry. Radial morphologies
// (Sphere, HemisphereUpper) measure distance from the origin; planar and
// columnar morphologies (DiskAbove, PlaneAbove, Cylinder) measure lateral
// distance from the growth axis and track the axial extent separately.
type domain struct {
	geometry    geom.BirthGeometry
	axis        int
	birthOffset float64
	killOffset  float64
	boundary    float64

	reach        float64
	radialExtent float64
	axialExtent  float64
}

func (d *domain) onStick(pos *geom.Vec) {
	if r := pos.Norm(); r > d.radialExtent {
		d.radialExtent = r
	}
	if h := float64(pos[d.axis]); h > d.axialExtent {
		d.axialExtent = h
	}

	var m float64
	switch d.geometry {
	case geom.Sphere, geom.HemisphereUpper:
		m = pos.Norm()
	default:
		m = pos.LateralNorm(d.axis)
	}
	if m > d.reach {
		d.reach = m
	}
}

func (d *domain) birthRadius() float64 {
	return d.reach + d.birthOffset
}

func (d *domain) killRadius() float64 {
	return d.reach + d.killOffset
}

// shouldKill reports whether a walker at pos has left the active region.
// Radial morphologies discard on radial excursion; planar morphologies
// discard on lateral or axial excursion and on crossing below the seed
// plane, which keeps their support sets one-sided.
func (d *domain) shouldKill(pos *geom.Vec) bool {
	if d.boundary > 0 && pos.Norm() > d.boundary {
		return true
	}

	switch d.geometry {
	case geom.Sphere:
		return pos.Norm() > d.killRadius()
	case geom.HemisphereUpper:
		return float64(pos[d.axis]) < 0 || pos.Norm() > d.killRadius()
	case geom.DiskAbove, geom.PlaneAbove:
		h := float64(pos[d.axis])
		return h < 0 || h > d.axialExtent+d.killOffset ||
			pos.LateralNorm(d.axis) > d.killRadius()
	case geom.Cylinder:
		h := float64(pos[d.axis])
		return h < -d.killOffset || h > d.axialExtent+d.killOffset ||
			pos.LateralNorm(d.axis) > d.killRadius()
	}
	return false
}

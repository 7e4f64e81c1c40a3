/*massradius reads a cluster snapshot table written in the "txt" format and
plots the enclosed-mass scaling N(<r) together with the fitted fractal
dimension.

Usage: $ massradius snapshot.txt out_plot.png
*/
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"sort"

	plt "github.com/phil-mansfield/pyplot"
	"github.com/phil-mansfield/table"

	"github.com/fractal-notebooks/dla/analyze"
	"github.com/fractal-notebooks/dla/geom"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("Required file use: $ %s snapshot.txt out.png", os.Args[0])
	}
	snapFile, outFile := os.Args[1], os.Args[2]

	points := readPoints(snapFile)
	if len(points) < 10 {
		log.Fatalf("Only %d particles in %s.", len(points), snapFile)
	}

	rs := make([]float64, len(points))
	for i := range points {
		rs[i] = points[i].Norm()
	}
	sort.Float64s(rs)

	maxR := rs[len(rs)-1]
	minR := maxR / 64
	dim, err := analyze.MassRadiusDimension(points, minR, maxR)
	if err != nil {
		log.Fatal(err.Error())
	}

	// N(<r) at geometrically spaced radii.
	plotRs, plotNs := []float64{}, []float64{}
	for r := minR; r <= maxR; r *= math.Sqrt2 {
		n := sort.SearchFloat64s(rs, r)
		if n == 0 {
			continue
		}
		plotRs = append(plotRs, r)
		plotNs = append(plotNs, float64(n))
	}

	fitNs := make([]float64, len(plotRs))
	for i, r := range plotRs {
		fitNs[i] = plotNs[len(plotNs)-1] *
			math.Pow(r/plotRs[len(plotRs)-1], dim)
	}

	plt.Reset()
	plt.Figure()
	plt.Plot(plotRs, plotNs, "ok")
	plt.Plot(plotRs, fitNs, "r", plt.LW(2))
	plt.XScale("log")
	plt.YScale("log")
	plt.XLabel(`$r$`, plt.FontSize(16))
	plt.YLabel(`$N(<r)$`, plt.FontSize(16))
	plt.Title(fmt.Sprintf(`Mass-radius scaling: $D = %.2f$`, dim))
	plt.SaveFig(outFile)
	plt.Execute()

	log.Printf("Fitted dimension %.3f from %d particles.", dim, len(points))
}

// readPoints reads the position columns of a snapshot table.
func readPoints(file string) []geom.Vec {
	cols, err := table.ReadTable(file, []int{0, 1, 2}, nil)
	if err != nil {
		log.Fatal(err.Error())
	}

	xs, ys, zs := cols[0], cols[1], cols[2]
	points := make([]geom.Vec, len(xs))
	for i := range points {
		points[i] = geom.Vec{
			float32(xs[i]), float32(ys[i]), float32(zs[i]),
		}
	}
	return points
}

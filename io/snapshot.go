package io

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fractal-notebooks/dla"
)

// WriteSnapshot writes particles to fname in the given format: "csv", "ply"
// (ASCII point cloud) or "txt" (whitespace table). All formats carry the
// aggregation order and generation scalars so downstream tools can color by
// growth time or branch depth.
func WriteSnapshot(
	fname, format string, particles []dla.SnapshotParticle,
) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	switch format {
	case "csv":
		err = writeCSV(w, particles)
	case "ply":
		err = writePLY(w, particles)
	case "txt":
		err = writeTable(w, particles)
	default:
		return fmt.Errorf("Unrecognized snapshot format, '%s'.", format)
	}
	if err != nil {
		return err
	}
	return w.Flush()
}

func writeCSV(w *bufio.Writer, particles []dla.SnapshotParticle) error {
	if _, err := fmt.Fprintln(w, "x,y,z,order,generation"); err != nil {
		return err
	}
	for i := range particles {
		p := &particles[i]
		_, err := fmt.Fprintf(
			w, "%g,%g,%g,%d,%d\n",
			p.Pos[0], p.Pos[1], p.Pos[2], p.Order, p.Generation,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeTable writes a whitespace-separated column table, the format the
// analysis scripts read back.
func writeTable(w *bufio.Writer, particles []dla.SnapshotParticle) error {
	_, err := fmt.Fprintln(w, "# Columns: x y z order generation")
	if err != nil {
		return err
	}
	for i := range particles {
		p := &particles[i]
		_, err := fmt.Fprintf(
			w, "%12g %12g %12g %8d %8d\n",
			p.Pos[0], p.Pos[1], p.Pos[2], p.Order, p.Generation,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func writePLY(w *bufio.Writer, particles []dla.SnapshotParticle) error {
	_, err := fmt.Fprintf(w, `ply
format ascii 1.0
comment DLA cluster snapshot
element vertex %d
property float x
property float y
property float z
property int order
property int generation
end_header
`, len(particles))
	if err != nil {
		return err
	}

	for i := range particles {
		p := &particles[i]
		_, err := fmt.Fprintf(
			w, "%g %g %g %d %d\n",
			p.Pos[0], p.Pos[1], p.Pos[2], p.Order, p.Generation,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

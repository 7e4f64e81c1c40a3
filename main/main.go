package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/fractal-notebooks/dla"
	"github.com/fractal-notebooks/dla/analyze"
	"github.com/fractal-notebooks/dla/geom"
	"github.com/fractal-notebooks/dla/io"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		grow, exampleConfig string
		threads             int
	)
	vars := map[string]*string{
		"Grow":          &grow,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&threads, "Threads", 0,
		"Number of worker goroutines advancing walkers. Overrides the "+
			"config file. Default is the config value, or 1.",
	)
	flag.StringVar(
		&grow, "Grow", "",
		"Configuration file for [Grow] mode.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. Accepted arguments are 'Grow' and the preset names "+
			"'Crust', 'Column', 'Coral', and 'Lichen'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Grow":
		con, err := io.ReadGrowConfig(grow)
		if err != nil {
			log.Fatal(err.Error())
		}
		if threads > 0 {
			con.Threads = threads
		}
		growMain(con)
	case "ExampleConfig":
		switch exampleConfig {
		case "Grow":
			fmt.Println(io.ExampleGrowFile)
		case "Crust":
			fmt.Println(io.ExampleCrustFile)
		case "Column":
			fmt.Println(io.ExampleColumnFile)
		case "Coral":
			fmt.Println(io.ExampleCoralFile)
		case "Lichen":
			fmt.Println(io.ExampleLichenFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Recognized " +
					"arguments are 'Grow', 'Crust', 'Column', 'Coral', " +
					"and 'Lichen'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but dla_cmd only accepts "+
				"one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func setupFileGroup(con *io.GrowConfig) *FileGroup {
	fg := &FileGroup{}

	if con.LogFile != "" {
		f, err := os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(f)
		fg.log = f
	}

	if con.ProfileFile != "" {
		f, err := os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err = pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err.Error())
		}
		fg.prof = f
	}

	return fg
}

// growMain runs one aggregation to completion and writes the final
// snapshot.
func growMain(con *io.GrowConfig) {
	fg := setupFileGroup(con)
	defer fg.Close()

	policy, err := con.Policy(true)
	if err != nil {
		log.Fatal(err.Error())
	}

	sim, err := dla.New(policy)
	if err != nil {
		log.Fatal(err.Error())
	}

	ms := &runtime.MemStats{}
	for !sim.IsComplete() {
		rep := sim.Step(con.ReportInterval)
		if rep.BirthRadiusCollapsed {
			log.Printf(
				"Warning: the birth radius is within one stick distance "+
					"of the cluster (extent %.4g).",
				rep.ClusterExtent,
			)
		}

		runtime.ReadMemStats(ms)
		log.Printf(
			"Alloc: %5d MB, Sys: %5d MB",
			ms.Alloc>>20, ms.Sys>>20,
		)
	}

	particles := sim.Snapshot()
	logDimension(sim.Policy(), particles)

	if err := io.WriteSnapshot(con.Output, con.Format, particles); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf(
		"Wrote %d particles to %s", len(particles), con.Output,
	)
}

// logDimension reports a box-counting dimension estimate for the finished
// cluster.
func logDimension(policy dla.Policy, particles []dla.SnapshotParticle) {
	points := make([]geom.Vec, len(particles))
	for i := range particles {
		points[i] = particles[i].Pos
	}

	minBox := policy.StickDistance
	maxBox := analyze.MaxRadius(points) / 4

	dim, err := analyze.BoxCountingDimension(points, minBox, maxBox)
	if err != nil {
		log.Printf("Skipping dimension estimate: %s", err.Error())
		return
	}
	log.Printf("Box-counting dimension estimate: %.3f", dim)
}

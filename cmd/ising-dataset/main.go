package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"ising-mc/internal/chart"
	"ising-mc/internal/core"
	"ising-mc/internal/dataset"
	"ising-mc/internal/mc"
)

func main() {
	rows := flag.Int("rows", 20, "lattice rows")
	cols := flag.Int("cols", 20, "lattice columns")
	half := flag.Int("half", 10, "samples per split and temperature regime")
	steps := flag.Int("steps", 1000000, "heat-bath updates per sample")
	topology := flag.String("topology", "square", "neighbor pattern: square, triangle, rhombus, hexagonal")
	seed := flag.Int64("seed", 1, "seed for temperatures and sampling")
	dir := flag.String("dir", "isingdata", "output directory")
	preview := flag.Bool("preview", false, "write a heat map PNG of the first training sample")
	flag.Parse()

	cfg := dataset.DefaultConfig()
	cfg.Rows, cfg.Cols = *rows, *cols
	cfg.HalfCount = *half
	cfg.Steps = *steps
	cfg.Seed = *seed
	topo, err := mc.ParseTopology(*topology)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Topology = topo
	cfg.Progress = func(i int, t float64) {
		fmt.Printf("%d\t%g\n", i, t)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	set, err := dataset.Generate(ctx, cfg)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	if err := set.Save(*dir); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Printf("Wrote %d train and %d test samples to %s in %s\n",
		len(set.TrainX), len(set.TestX), *dir, time.Since(start).Round(time.Millisecond))

	if *preview && len(set.TrainX) > 0 {
		l := core.NewLattice[bool](cfg.Rows, cfg.Cols)
		for i, v := range set.TrainX[0] {
			l.Cells()[i] = v != 0
		}
		path := filepath.Join(*dir, "train_x_0.png")
		if err := chart.SavePNG(chart.Lattice("first training sample", l), 5, 5, path); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote %s\n", path)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"ising-mc/internal/app"
	"ising-mc/internal/chart"
	"ising-mc/internal/ising"
	"ising-mc/internal/mc"
	"ising-mc/internal/sweep"
)

func main() {
	rows := flag.Int("rows", 20, "lattice rows")
	cols := flag.Int("cols", 20, "lattice columns")
	method := flag.String("method", "metropolis", "update rule: metropolis or heatbath")
	topology := flag.String("topology", "square", "heat-bath neighbor pattern: square, triangle, rhombus, hexagonal")
	steps := flag.Int("steps", 100000, "updates per temperature")
	tmax := flag.Float64("tmax", 4, "upper temperature bound in units of Tc")
	tstep := flag.Float64("tstep", 0.005, "temperature increment")
	seed := flag.Int64("seed", 1, "base seed")
	fixedSeed := flag.Bool("fixed-seed", false, "reuse the seed at every temperature and start from all-up and all-down states")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	out := flag.String("out", "sweep.csv", "CSV output path")
	plotPath := flag.String("plot", "", "optional PNG chart of the average spin")
	ascii := flag.Bool("ascii", true, "print a terminal chart of the average spin")
	var overrides app.KVList
	flag.Var(&overrides, "set", "model parameter override in key=value form (j, kb, z, n; repeatable)")
	flag.Parse()

	cfg := sweep.DefaultConfig()
	cfg.Rows, cfg.Cols = *rows, *cols
	cfg.Steps = *steps
	cfg.TMaxFactor = *tmax
	cfg.TStep = *tstep
	cfg.Seed = *seed
	cfg.FixedSeed = *fixedSeed
	cfg.Workers = *workers

	var err error
	if cfg.Method, err = mc.ParseMethod(*method); err != nil {
		log.Fatal(err)
	}
	if cfg.Topology, err = mc.ParseTopology(*topology); err != nil {
		log.Fatal(err)
	}
	if err := applyOverrides(&cfg.Params, overrides.Map()); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	total := len(sweep.Temperatures(cfg))
	fmt.Printf("Sweeping %d temperatures on %dx%d (%s/%s, %d steps, %d workers)\n",
		total, cfg.Rows, cfg.Cols, cfg.Method, cfg.Topology, cfg.Steps, cfg.Workers)

	next := 10
	cfg.Progress = func(done, total int) {
		if pct := done * 100 / total; pct >= next {
			fmt.Printf("  %3d%% (%d/%d)\n", pct, done, total)
			next = pct/10*10 + 10
		}
	}

	start := time.Now()
	points, err := sweep.Run(ctx, cfg)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}
	fmt.Printf("Done in %s\n", time.Since(start).Round(time.Millisecond))

	if err := writeCSV(*out, points); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote %s\n", *out)

	xs, ys := sweep.Curve(points)
	if *ascii {
		fmt.Println(chart.ASCII(ys, 70, 12, "average spin vs T/Tc"))
	}
	if *plotPath != "" {
		series := []chart.Series{{Name: "<s>", X: xs, Y: ys}}
		if cfg.FixedSeed {
			down := make([]float64, len(points))
			for i, p := range points {
				down[i] = p.AverageSpinDown
			}
			series[0].Name = "<s> from up"
			series = append(series, chart.Series{Name: "<s> from down", X: xs, Y: down})
		}
		p, err := chart.Curves(fmt.Sprintf("%s, %dx%d", cfg.Method, cfg.Rows, cfg.Cols), "T/Tc", "<s>", series...)
		if err != nil {
			log.Fatal(err)
		}
		if err := chart.SavePNG(p, 8, 5, *plotPath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote %s\n", *plotPath)
	}
}

func writeCSV(path string, points []sweep.Point) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := sweep.WriteCSV(f, points); err != nil {
		f.Close()
		return errors.Wrapf(err, "%s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

func applyOverrides(p *ising.Params, kv map[string]string) error {
	for key, value := range kv {
		switch key {
		case "j", "kb":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return errors.Wrapf(err, "-set %s", key)
			}
			if key == "j" {
				p.J = v
			} else {
				p.Kb = v
			}
		case "z", "n":
			v, err := strconv.Atoi(value)
			if err != nil {
				return errors.Wrapf(err, "-set %s", key)
			}
			if key == "z" {
				p.Z = v
			} else {
				p.N = v
			}
		default:
			return errors.Errorf("-set: unknown parameter %q", key)
		}
	}
	return nil
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"ising-mc/internal/chart"
	"ising-mc/internal/ising"
	"ising-mc/internal/meanfield"
)

type job struct {
	name   string
	file   string
	xLabel string
	labels []string
	run    func(ising.Params) []meanfield.Row
}

func main() {
	runs := flag.String("run", "all", "comma-separated runs: compare, scan, free, loss or all")
	dir := flag.String("dir", ".", "output directory")
	plot := flag.Bool("plot", false, "also write a PNG chart per run")
	z := flag.Int("z", 1, "coordination number")
	j := flag.Float64("j", 1, "coupling strength")
	flag.Parse()

	params := ising.DefaultParams()
	params.Z = *z
	params.J = *j

	free := meanfield.DefaultFreeEnergyConfig()
	loss := meanfield.DefaultLossConfig()
	jobs := []job{
		{
			name: "compare", file: "compare_optimizer.csv", xLabel: "step",
			labels: []string{"SGD", "Momentum", "AdaGrad"},
			run: func(p ising.Params) []meanfield.Row {
				return meanfield.CompareOptimizers(p, meanfield.DefaultCompareConfig())
			},
		},
		{
			name: "scan", file: "sgd-optimization.csv", xLabel: "step",
			labels: []string{"lr 0.01", "lr 0.1", "lr 0.15"},
			run: func(p ising.Params) []meanfield.Row {
				return meanfield.LearningRateScan(p, meanfield.DefaultScanConfig())
			},
		},
		{
			name: "free", file: fmt.Sprintf("solve_selfconsistent_sgd%d.csv", free.Steps), xLabel: "T/Tc",
			labels: []string{"SGD", "Momentum", "AdaGrad"},
			run:    func(p ising.Params) []meanfield.Row { return meanfield.SolveFreeEnergy(p, free) },
		},
		{
			name: "loss", file: fmt.Sprintf("solve_selfconsistent_loss%d.csv", loss.Steps), xLabel: "T/Tc",
			labels: []string{"SGD", "Momentum", "AdaGrad"},
			run:    func(p ising.Params) []meanfield.Row { return meanfield.SolveLoss(p, loss) },
		},
	}

	selected := map[string]bool{}
	for _, name := range strings.Split(*runs, ",") {
		selected[strings.TrimSpace(name)] = true
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("create %s: %v", *dir, err)
	}
	for _, jb := range jobs {
		if !selected["all"] && !selected[jb.name] {
			continue
		}
		rows := jb.run(params)
		path := filepath.Join(*dir, jb.file)
		if err := writeCSV(path, rows); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%-8s %d rows -> %s\n", jb.name, len(rows), path)

		if *plot {
			png := strings.TrimSuffix(path, ".csv") + ".png"
			if err := plotRows(png, jb, rows); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%-8s chart -> %s\n", jb.name, png)
		}
	}
}

func writeCSV(path string, rows []meanfield.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := meanfield.WriteCSV(f, rows); err != nil {
		f.Close()
		return errors.Wrapf(err, "%s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

func plotRows(path string, jb job, rows []meanfield.Row) error {
	xs := make([]float64, len(rows))
	series := make([]chart.Series, len(jb.labels))
	for k := range series {
		series[k] = chart.Series{Name: jb.labels[k], X: xs, Y: make([]float64, len(rows))}
	}
	for i, row := range rows {
		xs[i] = row[0]
		for k := range series {
			series[k].Y[i] = row[k+1]
		}
	}
	p, err := chart.Curves("mean-field magnetization ("+jb.name+")", jb.xLabel, "m", series...)
	if err != nil {
		return err
	}
	return chart.SavePNG(p, 8, 5, path)
}

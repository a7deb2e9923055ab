package sweep

import (
	"bytes"
	"context"
	"math"
	"slices"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/mc"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Rows = 6
	cfg.Cols = 6
	cfg.Steps = 3000
	cfg.TStep = 0.5
	cfg.Seed = 42
	return cfg
}

func TestTemperaturesDefaultGrid(t *testing.T) {
	temps := Temperatures(DefaultConfig())
	require.Len(t, temps, 800)
	assert.Equal(t, 0.0, temps[0])
	assert.InDelta(t, 0.005, temps[1], 1e-12)
	assert.InDelta(t, 3.995, temps[799], 1e-9)
}

func TestTemperaturesSmallGrids(t *testing.T) {
	cfg := smallConfig()
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}, Temperatures(cfg))

	cfg.TStep = 10
	assert.Equal(t, []float64{0}, Temperatures(cfg))

	cfg.TStep = 0
	assert.Empty(t, Temperatures(cfg))
}

func TestRunIndependentOfWorkerCount(t *testing.T) {
	for _, method := range mc.Methods {
		cfg := smallConfig()
		cfg.Method = method
		cfg.Topology = mc.Triangle

		cfg.Workers = 1
		serial, err := Run(context.Background(), cfg)
		require.NoError(t, err)

		cfg.Workers = 4
		parallel, err := Run(context.Background(), cfg)
		require.NoError(t, err)

		require.Len(t, parallel, len(serial))
		xs1, ys1 := Curve(serial)
		xs2, ys2 := Curve(parallel)
		assert.True(t, slices.Equal(xs1, xs2), method.String())
		assert.True(t, slices.Equal(ys1, ys2), method.String())
		for i, p := range parallel {
			assert.Equal(t, i, p.Index)
			assert.Equal(t, serial[i].Energy, p.Energy)
			assert.True(t, math.IsNaN(p.AverageSpinDown))
		}
	}
}

func TestRunFixedSeedStartsFromBothPolarisations(t *testing.T) {
	cfg := smallConfig()
	cfg.Method = mc.MethodHeatBath
	cfg.FixedSeed = true
	cfg.Workers = 2

	points, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, points, 8)

	// At T = 0 heat-bath sampling cannot leave a fully aligned state.
	assert.Equal(t, 1.0, points[0].AverageSpin)
	assert.Equal(t, -1.0, points[0].AverageSpinDown)
	assert.Equal(t, -50.0, points[0].Energy)

	hot := points[7]
	assert.InDelta(t, 3.5, hot.Reduced, 1e-12)
	assert.Less(t, math.Abs(hot.AverageSpin), 1.0)
	assert.Less(t, math.Abs(hot.AverageSpinDown), 1.0)
}

func TestRunReportsProgress(t *testing.T) {
	cfg := smallConfig()
	cfg.Steps = 10
	var calls []int
	cfg.Progress = func(done, total int) {
		assert.Equal(t, 8, total)
		calls = append(calls, done)
	}
	_, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, calls)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Rows = 0
	_, err := Run(context.Background(), cfg)
	assert.Error(t, err)

	cfg = smallConfig()
	cfg.Method = mc.Method(9)
	_, err = Run(context.Background(), cfg)
	assert.True(t, errors.Is(err, mc.ErrUnknownMethod))

	cfg = smallConfig()
	cfg.Topology = mc.Topology(9)
	_, err = Run(context.Background(), cfg)
	assert.True(t, errors.Is(err, mc.ErrUnknownTopology))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, smallConfig())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	points := []Point{
		{Reduced: 0.5, AverageSpin: 1, AverageSpinDown: math.NaN(), Energy: -2},
		{Index: 1, Reduced: 1, AverageSpin: 0.25, AverageSpinDown: -1, Energy: 3},
	}
	require.NoError(t, WriteCSV(&buf, points))
	assert.Equal(t, "0.5,1,-2\n1,0.25,-1,3\n", buf.String())
}

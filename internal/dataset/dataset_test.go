package dataset

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/core"
)

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Matrix{{1, 0, 0.5}, {-2, 1.0 / 3, 1e-5}}))
	assert.Equal(t, "2,3\n1,0,0.5,-2,0.333333,1e-05,\n", buf.String())
}

func TestWriteRejectsRaggedAndEmpty(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, nil))
	assert.Error(t, Write(&bytes.Buffer{}, Matrix{{1, 2}, {3}}))
	assert.Error(t, Write(&bytes.Buffer{}, Matrix{{}}))
}

func TestFlattenWriteReadRoundTrip(t *testing.T) {
	l := core.NewLattice[bool](5, 7)
	l.SetSeed(3)
	l.InitRand(false, true)

	m := Matrix{l.Flatten(), l.Flatten()}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestFloatRoundTripWithinPrecision(t *testing.T) {
	l := core.NewLattice[float64](3, 4)
	l.SetSeed(11)
	l.InitRand(-1, 1)
	want := l.Flatten()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Matrix{want}))
	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDeltaSlice(t, want, got[0], 1e-5)
}

func TestReadMalformed(t *testing.T) {
	for name, in := range map[string]string{
		"empty":      "",
		"header":     "3\n1,2,3,\n",
		"rows":       "x,2\n1,2,\n",
		"short":      "2,2\n1,2,3,\n",
		"unfinished": "1,2\n1,2\n",
		"value":      "1,2\n1,b,\n",
		"overflow":   "4611686018427387904,4\n\n",
		"no columns": "9223372036854775807,0\n\n",
	} {
		_, err := Read(strings.NewReader(in))
		assert.True(t, errors.Is(err, ErrMalformed), name)
	}
}

func TestReadIgnoresTrailingValues(t *testing.T) {
	m, err := Read(strings.NewReader("1,2\n4,5,6,\n"))
	require.NoError(t, err)
	assert.Equal(t, Matrix{{4, 5}}, m)
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Rows = 4
	cfg.Cols = 4
	cfg.HalfCount = 2
	cfg.Steps = 200
	cfg.Seed = 9
	return cfg
}

func TestGenerateSplitsAndLabels(t *testing.T) {
	var temps []float64
	cfg := smallConfig()
	cfg.Progress = func(i int, temp float64) {
		assert.Equal(t, len(temps), i)
		temps = append(temps, temp)
	}
	set, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, set.TrainX, 4)
	require.Len(t, set.TestX, 4)
	assert.Equal(t, Matrix{LabelOrdered, LabelOrdered, LabelDisordered, LabelDisordered}, set.TrainT)
	assert.Equal(t, Matrix{LabelOrdered, LabelOrdered, LabelDisordered, LabelDisordered}, set.TestT)
	for _, x := range append(set.TrainX, set.TestX...) {
		assert.Len(t, x, 16)
	}

	require.Len(t, temps, 8)
	tc := 2 / 0.8813735870195430
	for i, temp := range temps {
		if i < 4 {
			assert.Less(t, temp, tc)
		} else {
			assert.GreaterOrEqual(t, temp, tc)
			assert.Less(t, temp, 2*tc)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(context.Background(), smallConfig())
	require.NoError(t, err)
	b, err := Generate(context.Background(), smallConfig())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, smallConfig())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSaveLoad(t *testing.T) {
	set, err := Generate(context.Background(), smallConfig())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, set.Save(dir))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, set, got)

	x, err := ReadFile(filepath.Join(dir, "train_x.txt"))
	require.NoError(t, err)
	assert.Equal(t, set.TrainX, x)
}

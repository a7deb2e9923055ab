package app

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ising", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)

	require.NoError(t, fs.Parse([]string{
		"-scale", "4",
		"-seed", "9",
		"-set", "kbt=2.5",
		"-set", "method = heatbath",
		"-set", "broken",
		"-set", "kbt=3",
	}))
	assert.Equal(t, "ising", cfg.Sim)
	assert.Equal(t, 4, cfg.Scale)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, map[string]string{"kbt": "3", "method": "heatbath"}, cfg.Set.Map())
	assert.Equal(t, "kbt=2.5,method = heatbath,broken,kbt=3", cfg.Set.String())
}

package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/morph/config"
)

const autoplayYAML = `
morph:
  duration: 0.5
autoplay:
  enabled: true
  interval: 1
  sequence: [2, 1, 9]
telemetry:
  stats_window: 1
`

// newHeadlessGame builds a windowless session on the procedural shapes.
func newHeadlessGame(t *testing.T, yamlText string) (*Game, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlText), 0o644))
	require.NoError(t, config.Init(cfgPath))

	out := filepath.Join(dir, "out")
	g, err := NewGame(Options{Seed: 7, Headless: true, OutputDir: out, StatsWindowSec: 1})
	require.NoError(t, err)
	return g, out
}

func run(g *Game, frames int) {
	for i := 0; i < frames; i++ {
		g.UpdateHeadless()
	}
}

func TestHeadlessAutoplayAdvancesCurrent(t *testing.T) {
	g, out := newHeadlessGame(t, autoplayYAML)

	run(g, 30)
	assert.Equal(t, 0, g.Engine().State().CurrentIndex, "no trigger before the interval")
	assert.False(t, g.Engine().Active())

	// First trigger near 1s, ramp done half a second later
	run(g, 70)
	assert.Equal(t, 2, g.Engine().State().CurrentIndex)
	assert.Equal(t, float32(1), g.Engine().State().Progress)

	// Second trigger near 2s
	run(g, 70)
	assert.Equal(t, 1, g.Engine().State().CurrentIndex)

	// Out-of-range entries were dropped, so the sequence wraps to 2
	run(g, 60)
	assert.Equal(t, 2, g.Engine().State().CurrentIndex)

	assert.Equal(t, int64(230), g.Frame())
	g.Unload()

	events, err := os.ReadFile(filepath.Join(out, "events.csv"))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(events), ",started,"))
	assert.Equal(t, 3, strings.Count(string(events), ",completed,"))

	perf, err := os.ReadFile(filepath.Join(out, "perf.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(perf), "compute_ns_per_slot")
}

func TestUpdateHeadlessComputesPositions(t *testing.T) {
	g, _ := newHeadlessGame(t, "")
	defer g.Unload()

	g.morphToKey(1)
	run(g, 15)

	set := g.Engine().Set()
	require.Len(t, g.positions, set.Capacity)
	for slot := 0; slot < set.Capacity; slot += 97 {
		assert.Equal(t, g.Engine().ComputePosition(slot), g.positions[slot], "slot %d", slot)
	}
}

func TestMorphToKey(t *testing.T) {
	g, _ := newHeadlessGame(t, autoplayYAML)
	defer g.Unload()

	run(g, 30)
	auto := g.autoplayMap.Get(g.cloud)
	require.NotNil(t, auto)
	require.Greater(t, auto.Elapsed, float32(0))

	// Invalid keys leave the session alone
	g.morphToKey(8)
	assert.False(t, g.Engine().Active())
	assert.Greater(t, auto.Elapsed, float32(0))

	// A manual morph restarts the autoplay timer
	g.morphToKey(3)
	assert.True(t, g.Engine().Active())
	assert.Equal(t, 3, g.Engine().State().TargetIndex)
	assert.Zero(t, auto.Elapsed)
}

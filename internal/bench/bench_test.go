package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kb9jwq/aclink/core"
)

func TestPercentileLinearInterpolation(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 3.0, percentile(xs, 0.5))
	assert.Equal(t, 1.0, percentile(xs, 0))
	assert.Equal(t, 5.0, percentile(xs, 1))
}

func TestPercentileSingleElement(t *testing.T) {
	assert.Equal(t, 7.0, percentile([]float64{7}, 0.9))
}

func TestPercentileEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, percentile(nil, 0.5))
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	xs := []float64{5, 1, 3}
	_ = percentile(xs, 0.5)
	assert.Equal(t, []float64{5, 1, 3}, xs)
}

func TestAverageOfEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, average(nil))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 2.0, average([]float64{1, 2, 3}))
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("payload: \"hello\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "snw", cfg.Variant)
	assert.Equal(t, []int{16}, cfg.MaxPayloads)
	assert.Equal(t, []int64{200}, cfg.TimeoutsMs)
	assert.Equal(t, []int{4}, cfg.Windows)
	assert.Equal(t, []int64{1}, cfg.Seeds)
	assert.Equal(t, 30, cfg.MaxRetries)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigHonorsExplicitValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.yaml")
	yamlBody := "payload: \"hi\"\nvariant: gbn\nmax_payloads: [8]\ntimeouts_ms: [50]\nwindows: [2]\nseeds: [7, 8]\nmax_retries: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gbn", cfg.Variant)
	assert.Equal(t, []int{8}, cfg.MaxPayloads)
	assert.Equal(t, []int64{50}, cfg.TimeoutsMs)
	assert.Equal(t, []int{2}, cfg.Windows)
	assert.Equal(t, []int64{7, 8}, cfg.Seeds)
	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestRunNoLossGridAlwaysSucceeds(t *testing.T) {
	cfg := Config{
		Payload:     "hello world",
		Variant:     "snw",
		MaxPayloads: []int{4, 16},
		TimeoutsMs:  []int64{50},
		Windows:     []int{1},
		MaxRetries:  10,
		Seeds:       []int64{1, 2, 3},
	}

	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel + 1)

	var seen []core.RunResult
	cells := Run(cfg, logger, func(res core.RunResult) {
		seen = append(seen, res)
	})

	require.Len(t, cells, 2)
	for _, c := range cells {
		assert.Equal(t, 3, c.Runs)
		assert.Equal(t, 1.0, c.SuccessRate)
		assert.Greater(t, c.GoodputAvg, 0.0)
	}
	assert.Len(t, seen, 6)
}

func TestRunGBNVariantNoLossSucceeds(t *testing.T) {
	cfg := Config{
		Payload:     "go back n",
		Variant:     "gbn",
		MaxPayloads: []int{4},
		TimeoutsMs:  []int64{50},
		Windows:     []int{3},
		MaxRetries:  10,
		Seeds:       []int64{42},
	}

	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel + 1)

	cells := Run(cfg, logger, nil)
	require.Len(t, cells, 1)
	assert.Equal(t, 1, cells[0].Runs)
	assert.Equal(t, 1.0, cells[0].SuccessRate)
}

func TestRandomSeedsDeterministic(t *testing.T) {
	a := RandomSeeds(99, 5)
	b := RandomSeeds(99, 5)
	assert.Equal(t, a, b)
	assert.Len(t, a, 5)
}

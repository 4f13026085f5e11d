package bench

/*------------------------------------------------------------------
 *
 * Purpose:	Grid runner: sweep RunOnce across (max_payload, timeout,
 *		seed, ...) combinations and tabulate percentiles, the Go
 *		equivalent of original_source/scripts/measure_arq.py and
 *		measure_arq_fast_sim.py's "max_pl timeout success
 *		goodput_avg time_p50 time_p90 retries_avg" report line.
 *
 * Description:	Config is loaded from YAML (gopkg.in/yaml.v3), the same
 *		library family the teacher's config.go would reach for
 *		if config.go weren't hand-rolled C-style key/value
 *		parsing; here we use the real ecosystem library instead.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/kb9jwq/aclink/core"
)

// Config describes one benchmark grid, loaded from a YAML file.
type Config struct {
	Payload       string  `yaml:"payload"`
	PayloadRepeat int     `yaml:"payload_repeat"`
	Variant       string  `yaml:"variant"` // "snw" or "gbn"
	MaxPayloads   []int   `yaml:"max_payloads"`
	TimeoutsMs    []int64 `yaml:"timeouts_ms"`
	Windows       []int   `yaml:"windows"`
	DropData      float64 `yaml:"drop_data"`
	DropAck       float64 `yaml:"drop_ack"`
	CorruptData   float64 `yaml:"corrupt_data"`
	CorruptAck    float64 `yaml:"corrupt_ack"`
	MaxRetries    int     `yaml:"max_retries"`
	Seeds         []int64 `yaml:"seeds"`
}

// LoadConfig reads a grid config from path and fills in defaults for
// omitted fields. Field values are not otherwise checked.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("bench: read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("bench: parse config %s: %w", path, err)
	}

	if len(cfg.MaxPayloads) == 0 {
		cfg.MaxPayloads = []int{16}
	}
	if len(cfg.TimeoutsMs) == 0 {
		cfg.TimeoutsMs = []int64{200}
	}
	if len(cfg.Windows) == 0 {
		cfg.Windows = []int{4}
	}
	if len(cfg.Seeds) == 0 {
		cfg.Seeds = []int64{1}
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 30
	}
	if cfg.Variant == "" {
		cfg.Variant = "snw"
	}
	return cfg, nil
}

// payload reconstructs the grid's message body.
func (c Config) payload() []byte {
	repeat := c.PayloadRepeat
	if repeat <= 0 {
		repeat = 1
	}
	return []byte(strings.Repeat(c.Payload, repeat))
}

// Cell is one (max_payload, timeout, window) grid point's aggregated
// results.
type Cell struct {
	MaxPayload  int
	TimeoutMs   int64
	Window      int
	SuccessRate float64
	GoodputAvg  float64
	TimeP50     float64
	TimeP90     float64
	RetriesAvg  float64
	CRCFailAvg  float64
	Runs        int
}

// Run sweeps cfg's grid, running len(cfg.Seeds) trials per cell, and
// returns one Cell per (max_payload, timeout, window) combination.
// onRun, if non-nil, is invoked with every individual trial's
// RunResult as it completes (e.g. to append it to a CSV report log).
func Run(cfg Config, logger *log.Logger, onRun func(core.RunResult)) []Cell {
	payload := cfg.payload()
	variant := core.VariantSnW
	if strings.EqualFold(cfg.Variant, "gbn") {
		variant = core.VariantGBN
	}

	var cells []Cell
	for _, maxPayload := range cfg.MaxPayloads {
		for _, timeoutMs := range cfg.TimeoutsMs {
			for _, window := range cfg.Windows {
				cell := Cell{MaxPayload: maxPayload, TimeoutMs: timeoutMs, Window: window}
				var times, retries, crcFails []float64
				successes := 0

				for _, seed := range cfg.Seeds {
					opts := core.RunOptions{
						Variant:     variant,
						MaxPayload:  maxPayload,
						TimeoutMs:   timeoutMs,
						MaxRetries:  cfg.MaxRetries,
						Window:      window,
						DropData:    cfg.DropData,
						DropAck:     cfg.DropAck,
						CorruptData: cfg.CorruptData,
						CorruptAck:  cfg.CorruptAck,
						Seed:        seed,
						MsgID:       uint16(seed % 0xFFFF),
						Log:         logger,
					}

					res, err := core.RunOnce(payload, opts)
					if err != nil {
						logger.Warn("bench: run_once argument error", "err", err, "seed", seed)
						continue
					}
					if onRun != nil {
						onRun(res)
					}

					cell.Runs++
					times = append(times, res.WallSeconds)
					retry := float64(res.RetriesTotal)
					if variant == core.VariantGBN {
						retry = float64(res.TimeoutsTotal)
					}
					retries = append(retries, retry)
					crcFails = append(crcFails, float64(res.CRCFailTotal))
					if res.OK {
						successes++
						cell.GoodputAvg += res.GoodputBps
					}
				}

				if successes > 0 {
					cell.GoodputAvg /= float64(successes)
				}
				if cell.Runs > 0 {
					cell.SuccessRate = float64(successes) / float64(cell.Runs)
					cell.RetriesAvg = average(retries)
					cell.CRCFailAvg = average(crcFails)
					cell.TimeP50 = percentile(times, 0.50)
					cell.TimeP90 = percentile(times, 0.90)
				}

				cells = append(cells, cell)
			}
		}
	}
	return cells
}

func average(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// percentile returns the p-th percentile (0..1) of xs using linear
// interpolation between closest ranks, matching the behavior the
// original measure_arq.py's "time_p50"/"time_p90" columns report.
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// RandomSeeds generates n seeds deterministically from base, for
// configs that want many trials without listing every seed by hand.
func RandomSeeds(base int64, n int) []int64 {
	r := rand.New(rand.NewSource(base))
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = r.Int63()
	}
	return seeds
}

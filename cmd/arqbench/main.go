package main

/*------------------------------------------------------------------
 *
 * Purpose:	Command-line driver for the reliable-delivery benchmark
 *		grid, the Go counterpart of
 *		original_source/scripts/measure_arq.py and
 *		measure_arq_fast_sim.py's command-line entry points.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/kb9jwq/aclink/core"
	"github.com/kb9jwq/aclink/internal/bench"
	"github.com/kb9jwq/aclink/internal/reportlog"
)

func main() {
	var configFile = pflag.StringP("config", "c", "", "YAML grid config file. Required.")
	var logDir = pflag.StringP("log-dir", "l", "", "Directory for a daily CSV report log. Empty disables logging.")
	var quiet = pflag.BoolP("quiet", "q", false, "Suppress per-cell progress output.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: arqbench -c grid.yaml [-l logdir]")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || *configFile == "" {
		pflag.Usage()
		if *configFile == "" {
			os.Exit(1)
		}
		return
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *quiet {
		logger.SetLevel(log.WarnLevel)
	}

	cfg, err := bench.LoadConfig(*configFile)
	if err != nil {
		logger.Fatal("arqbench: load config", "err", err)
	}

	var writer *reportlog.Writer
	if *logDir != "" {
		if err := os.MkdirAll(*logDir, 0o755); err != nil {
			logger.Fatal("arqbench: create log dir", "err", err)
		}
		path, err := reportlog.DailyPath(*logDir, "arqbench-%Y%m%d.csv", time.Now())
		if err != nil {
			logger.Fatal("arqbench: daily path", "err", err)
		}
		writer, err = reportlog.Open(path)
		if err != nil {
			logger.Fatal("arqbench: open report log", "err", err)
		}
		defer writer.Close()
	}

	onRun := func(core.RunResult) {}
	if writer != nil {
		onRun = func(res core.RunResult) {
			if err := writer.Append(time.Now(), res); err != nil {
				logger.Warn("arqbench: report log append", "err", err)
			}
		}
	}

	cells := bench.Run(cfg, logger, onRun)

	fmt.Println("max_pl  timeout_ms  window  success  goodput_avg  time_p50  time_p90  retries_avg  crc_fail_avg")
	for _, c := range cells {
		fmt.Printf("%6d  %10d  %6d  %7.2f  %11.2f  %8.4f  %8.4f  %11.2f  %11.2f\n",
			c.MaxPayload, c.TimeoutMs, c.Window, c.SuccessRate, c.GoodputAvg,
			c.TimeP50, c.TimeP90, c.RetriesAvg, c.CRCFailAvg)
	}
}

package reportlog

/*------------------------------------------------------------------
 *
 * Purpose:	Save one CSV row per RunOnce result, the benchmark
 *		counterpart of the teacher's log.go (which writes one CSV
 *		row per received packet). Daily-named log files use the
 *		same "-l logdir" idea, spelled with a real strftime
 *		implementation (github.com/lestrrat-go/strftime) instead
 *		of the teacher's hand-rolled C strftime call.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/kb9jwq/aclink/core"
)

var header = []string{
	"timestamp", "scenario", "variant", "seed", "ok",
	"wall_seconds", "goodput_Bps", "frames_total",
	"retries_total", "timeouts_total", "crc_fail_total",
	"data_sent", "data_dropped", "ack_sent", "ack_dropped",
	"phy_seconds", "virtual_seconds", "virtual_goodput_Bps",
}

// Writer appends RunResult rows to a CSV file, creating the file and
// header row on first use.
type Writer struct {
	f   *os.File
	csv *csv.Writer
}

// Open opens (creating if needed) the CSV file at path, writing the
// header row only if the file is new.
func Open(path string) (*Writer, error) {
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("reportlog: open %s: %w", path, err)
	}

	w := &Writer{f: f, csv: csv.NewWriter(f)}
	if isNew {
		if err := w.csv.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("reportlog: write header: %w", err)
		}
		w.csv.Flush()
	}
	return w, nil
}

// DailyPath renders a daily log file name from pattern (a strftime
// pattern, e.g. "arqbench-%Y%m%d.csv") rooted at dir.
func DailyPath(dir, pattern string, at time.Time) (string, error) {
	f, err := strftime.New(pattern)
	if err != nil {
		return "", fmt.Errorf("reportlog: bad strftime pattern %q: %w", pattern, err)
	}
	return filepath.Join(dir, f.FormatString(at)), nil
}

// Append writes one RunResult row, labeled with a timestamp.
func (w *Writer) Append(at time.Time, res core.RunResult) error {
	row := []string{
		at.UTC().Format(time.RFC3339),
		res.ScenarioLabel,
		string(res.Variant),
		fmt.Sprintf("%d", res.Seed),
		fmt.Sprintf("%t", res.OK),
		fmt.Sprintf("%.6f", res.WallSeconds),
		fmt.Sprintf("%.3f", res.GoodputBps),
		fmt.Sprintf("%d", res.FramesTotal),
		fmt.Sprintf("%d", res.RetriesTotal),
		fmt.Sprintf("%d", res.TimeoutsTotal),
		fmt.Sprintf("%d", res.CRCFailTotal),
		fmt.Sprintf("%d", res.DataSent),
		fmt.Sprintf("%d", res.DataDropped),
		fmt.Sprintf("%d", res.AckSent),
		fmt.Sprintf("%d", res.AckDropped),
		fmt.Sprintf("%.6f", res.PhySeconds),
		fmt.Sprintf("%.6f", res.VirtualSeconds),
		fmt.Sprintf("%.3f", res.VirtualGoodputBps),
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("reportlog: write row: %w", err)
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

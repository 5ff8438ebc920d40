package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/orbit/config"
)

// TraceWriter handles headless run output: trace.csv, perf.csv and
// summary.csv plus the effective config.
type TraceWriter struct {
	dir       string
	traceFile *os.File
	perfFile  *os.File

	traceHeaderWritten bool
	perfHeaderWritten  bool
}

// NewTraceWriter creates the output directory and opens the CSV files.
// Returns nil if dir is empty (output disabled).
func NewTraceWriter(dir string) (*TraceWriter, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	tw := &TraceWriter{dir: dir}

	f, err := os.Create(filepath.Join(dir, "trace.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating trace.csv: %w", err)
	}
	tw.traceFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		tw.traceFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	tw.perfFile = f

	return tw, nil
}

// WriteConfig saves the effective configuration as YAML.
func (tw *TraceWriter) WriteConfig(cfg *config.Config) error {
	if tw == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(tw.dir, "config.yaml"))
}

// WriteTrace appends trace records to trace.csv.
func (tw *TraceWriter) WriteTrace(records []TraceRecord) error {
	if tw == nil || len(records) == 0 {
		return nil
	}
	if err := writeRows(tw.traceFile, records, &tw.traceHeaderWritten); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// WritePerf appends a performance stats record to perf.csv.
func (tw *TraceWriter) WritePerf(stats PerfStats, tick int32) error {
	if tw == nil {
		return nil
	}
	records := []PerfStatsCSV{stats.ToCSV(tick)}
	if err := writeRows(tw.perfFile, records, &tw.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteSummary writes summary.csv in one go.
func (tw *TraceWriter) WriteSummary(summaries []Summary) error {
	if tw == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(tw.dir, "summary.csv"))
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(summaries, f); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// writeRows writes the header with the first batch only.
func writeRows(f *os.File, records any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Dir returns the output directory path.
func (tw *TraceWriter) Dir() string {
	if tw == nil {
		return ""
	}
	return tw.dir
}

// Close closes all output files.
func (tw *TraceWriter) Close() error {
	if tw == nil {
		return nil
	}

	var firstErr error
	if tw.traceFile != nil {
		if err := tw.traceFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if tw.perfFile != nil {
		if err := tw.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/seeds/config"
)

// OutputManager writes yearly census and perf rows as CSV into a run directory.
type OutputManager struct {
	dir    string
	census *csvFile
	perf   *csvFile
}

// csvFile appends gocsv rows, emitting the header with the first one.
type csvFile struct {
	f      *os.File
	header bool
}

func (c *csvFile) write(rows any) error {
	if !c.header {
		c.header = true
		return gocsv.Marshal(rows, c.f)
	}
	return gocsv.MarshalWithoutHeaders(rows, c.f)
}

// NewOutputManager creates the output directory and its files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	census, err := os.Create(filepath.Join(dir, "census.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating census.csv: %w", err)
	}
	perf, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		census.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}

	return &OutputManager{
		dir:    dir,
		census: &csvFile{f: census},
		perf:   &csvFile{f: perf},
	}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteYear appends a row to census.csv.
func (om *OutputManager) WriteYear(s YearStats) error {
	if om == nil {
		return nil
	}
	if err := om.census.write([]YearStats{s}); err != nil {
		return fmt.Errorf("writing census: %w", err)
	}
	return nil
}

// WritePerf appends a row to perf.csv.
func (om *OutputManager) WritePerf(s PerfStats, year int) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{s.ToCSV(year)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.census.f.Close(), om.perf.f.Close())
}

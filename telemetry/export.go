package telemetry

import (
	"os"

	"github.com/gocarina/gocsv"
)

// WriteWindowCSV writes the accumulated window rows to path under a
// header row, creating the file or truncating an existing one; it does
// not append to earlier contents.
func WriteWindowCSV(path string, rows []WindowStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}

// WritePerfCSV writes accumulated perf-stats rows to path under a header
// row, truncating any existing file.
func WritePerfCSV(path string, rows []PerfStatsCSV) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}

package pipeline

import "github.com/sirupsen/logrus"

// Output table formats.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Options configures one conversion run.
type Options struct {
	FitPath   string
	OutPrefix string
	Format    string // csv|parquet ("" = csv)
	Logger    *logrus.Logger
}

// Result reports the generated tables.
type Result struct {
	RunID       string `json:"run_id"`
	RecordsPath string `json:"records_path"`
	LapsPath    string `json:"laps_path"`
	RecordCount int    `json:"record_count"`
	LapCount    int    `json:"lap_count"`
}

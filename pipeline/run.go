// Package pipeline drives one FIT-to-table conversion: extract laps, build
// the interval index, classify the record stream, write both tables.
package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fitcsv"
	"fitcsv/fitfile"
)

// Run decodes opts.FitPath and writes the two output tables next to
// opts.OutPrefix.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.FitPath) == "" {
		return nil, fmt.Errorf("fit path is required")
	}

	src, err := fitfile.Open(opts.FitPath)
	if err != nil {
		return nil, err
	}
	return RunSource(src, opts)
}

// RunSource runs the conversion against an already opened message source.
// Lap extraction completes fully before the record stream is touched: the
// cursor-based classifier needs the whole sorted interval sequence up
// front. Tables are written to temporary files and renamed into place only
// on success, so a failed run leaves no partial table behind.
func RunSource(src fitcsv.MessageSource, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.OutPrefix) == "" {
		return nil, fmt.Errorf("output prefix is required")
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatParquet {
		return nil, fmt.Errorf("unsupported format %q (expected csv|parquet)", opts.Format)
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	runID := uuid.NewString()

	lapMsgs, err := src.LapMessages()
	if err != nil {
		return nil, fmt.Errorf("read lap messages: %w", err)
	}
	laps := fitcsv.ExtractLaps(lapMsgs)
	index := fitcsv.NewIntervalIndex(laps)
	log.WithFields(logrus.Fields{
		"run_id": runID,
		"laps":   len(laps),
	}).Debug("laps extracted")

	samples, err := src.RecordMessages()
	if err != nil {
		return nil, fmt.Errorf("read record messages: %w", err)
	}
	records := fitcsv.NewClassifier(index).ClassifyAll(samples)

	unmatched := 0
	for _, rec := range records {
		if rec.LapIndex == nil {
			unmatched++
		}
	}
	log.WithFields(logrus.Fields{
		"run_id":    runID,
		"samples":   len(records),
		"unmatched": unmatched,
	}).Debug("samples classified")

	recordsPath := opts.OutPrefix + "_records." + format
	lapsPath := opts.OutPrefix + "_laps." + format

	switch format {
	case FormatCSV:
		if err := writeAtomic(recordsPath, func(f *os.File) error {
			return writeRecordsCSV(f, records)
		}); err != nil {
			return nil, fmt.Errorf("write records table: %w", err)
		}
		if err := writeAtomic(lapsPath, func(f *os.File) error {
			return writeLapsCSV(f, laps)
		}); err != nil {
			return nil, fmt.Errorf("write laps table: %w", err)
		}
	case FormatParquet:
		if err := writeRecordsParquet(recordsPath, records); err != nil {
			return nil, fmt.Errorf("write records table: %w", err)
		}
		if err := writeLapsParquet(lapsPath, laps); err != nil {
			return nil, fmt.Errorf("write laps table: %w", err)
		}
	}

	log.WithFields(logrus.Fields{
		"run_id":  runID,
		"records": recordsPath,
		"laps":    lapsPath,
	}).Info("conversion complete")

	return &Result{
		RunID:       runID,
		RecordsPath: recordsPath,
		LapsPath:    lapsPath,
		RecordCount: len(records),
		LapCount:    len(laps),
	}, nil
}

// writeAtomic writes through a sibling temp file renamed over path once the
// write fully succeeds.
func writeAtomic(path string, write func(*os.File) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

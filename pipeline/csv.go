package pipeline

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"fitcsv"
)

var recordColumns = []string{
	"timestamp", "power", "heart_rate", "cadence", "distance_m", "lap_index",
}

var lapColumns = []string{
	"lap_index", "lap_start_time", "lap_end_time", "lap_duration_s",
	"lap_avg_power", "lap_avg_heart_rate", "lap_avg_cadence", "lap_total_distance_m",
}

func writeRecordsCSV(w io.Writer, records []fitcsv.EnrichedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordColumns); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			formatTime(rec.Timestamp),
			formatIntPtr(rec.Power),
			formatIntPtr(rec.HeartRate),
			formatIntPtr(rec.Cadence),
			formatFloatPtr(rec.DistanceM),
			formatIntPtr(rec.LapIndex),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeLapsCSV(w io.Writer, laps []fitcsv.Lap) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(lapColumns); err != nil {
		return err
	}
	for _, lap := range laps {
		row := []string{
			strconv.Itoa(lap.LapIndex),
			formatTime(lap.Start),
			formatTime(lap.End),
			formatFloatPtr(lap.DurationS),
			formatIntPtr(lap.AvgPower),
			formatIntPtr(lap.AvgHeartRate),
			formatIntPtr(lap.AvgCadence),
			formatFloatPtr(lap.TotalDistanceM),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

package pipeline

import (
	"math"
	"os"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"fitcsv"
)

// Absent numeric values land as NaN in DOUBLE columns; absent timestamps as
// empty strings, matching the CSV contract.

type recordParquetRow struct {
	Timestamp string  `parquet:"name=timestamp, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Power     float64 `parquet:"name=power, type=DOUBLE"`
	HeartRate float64 `parquet:"name=heart_rate, type=DOUBLE"`
	Cadence   float64 `parquet:"name=cadence, type=DOUBLE"`
	DistanceM float64 `parquet:"name=distance_m, type=DOUBLE"`
	LapIndex  float64 `parquet:"name=lap_index, type=DOUBLE"`
}

type lapParquetRow struct {
	LapIndex       int64   `parquet:"name=lap_index, type=INT64"`
	LapStartTime   string  `parquet:"name=lap_start_time, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	LapEndTime     string  `parquet:"name=lap_end_time, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	LapDurationS   float64 `parquet:"name=lap_duration_s, type=DOUBLE"`
	AvgPower       float64 `parquet:"name=lap_avg_power, type=DOUBLE"`
	AvgHeartRate   float64 `parquet:"name=lap_avg_heart_rate, type=DOUBLE"`
	AvgCadence     float64 `parquet:"name=lap_avg_cadence, type=DOUBLE"`
	TotalDistanceM float64 `parquet:"name=lap_total_distance_m, type=DOUBLE"`
}

func writeRecordsParquet(path string, records []fitcsv.EnrichedRecord) error {
	return writeParquet(path, new(recordParquetRow), func(pw *writer.ParquetWriter) error {
		for _, rec := range records {
			row := recordParquetRow{
				Timestamp: formatTime(rec.Timestamp),
				Power:     intOrNaN(rec.Power),
				HeartRate: intOrNaN(rec.HeartRate),
				Cadence:   intOrNaN(rec.Cadence),
				DistanceM: valueOrNaN(rec.DistanceM),
				LapIndex:  intOrNaN(rec.LapIndex),
			}
			if err := pw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeLapsParquet(path string, laps []fitcsv.Lap) error {
	return writeParquet(path, new(lapParquetRow), func(pw *writer.ParquetWriter) error {
		for _, lap := range laps {
			row := lapParquetRow{
				LapIndex:       int64(lap.LapIndex),
				LapStartTime:   formatTime(lap.Start),
				LapEndTime:     formatTime(lap.End),
				LapDurationS:   valueOrNaN(lap.DurationS),
				AvgPower:       intOrNaN(lap.AvgPower),
				AvgHeartRate:   intOrNaN(lap.AvgHeartRate),
				AvgCadence:     intOrNaN(lap.AvgCadence),
				TotalDistanceM: valueOrNaN(lap.TotalDistanceM),
			}
			if err := pw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeParquet(path string, schema any, writeRows func(*writer.ParquetWriter) error) error {
	tmp := path + ".tmp"
	fw, err := local.NewLocalFileWriter(tmp)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, schema, 4)
	if err != nil {
		_ = fw.Close()
		_ = os.Remove(tmp)
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	if err := writeRows(pw); err != nil {
		_ = pw.WriteStop()
		_ = fw.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := fw.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func intOrNaN(v *int) float64 {
	if v == nil {
		return math.NaN()
	}
	return float64(*v)
}

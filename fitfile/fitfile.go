// Package fitfile adapts a decoded FIT activity file to the message
// streams the converter core consumes. The whole file is decoded up front,
// so the lap and record streams can be walked independently any number of
// times without re-reading the source.
package fitfile

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/tormoder/fit"

	"fitcsv"
)

// File is one decoded activity.
type File struct {
	activity *fit.ActivityFile
}

var _ fitcsv.MessageSource = (*File)(nil)

// Open decodes the FIT file at path.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode decodes a FIT activity from r.
func Decode(r io.Reader) (*File, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}
	return &File{activity: activity}, nil
}

// LapMessages returns one message per lap, in file order. FIT invalid
// sentinels degrade to absent fields rather than failing the run.
func (f *File) LapMessages() ([]fitcsv.LapMessage, error) {
	out := make([]fitcsv.LapMessage, 0, len(f.activity.Laps))
	for _, lap := range f.activity.Laps {
		if lap == nil {
			continue
		}
		out = append(out, fitcsv.LapMessage{
			StartTime:      validTimeOrZero(lap.StartTime),
			Timestamp:      validTimeOrZero(lap.Timestamp),
			TimerTimeS:     scaledPtr(lap.GetTotalTimerTimeScaled()),
			ElapsedTimeS:   scaledPtr(lap.GetTotalElapsedTimeScaled()),
			AvgPower:       u16Ptr(lap.AvgPower),
			AvgHeartRate:   u8Ptr(lap.AvgHeartRate),
			AvgCadence:     u8Ptr(lap.AvgCadence),
			TotalDistanceM: scaledPtr(lap.GetTotalDistanceScaled()),
		})
	}
	return out, nil
}

// RecordMessages returns one sample per record message, in file order.
func (f *File) RecordMessages() ([]fitcsv.Sample, error) {
	out := make([]fitcsv.Sample, 0, len(f.activity.Records))
	for _, rec := range f.activity.Records {
		if rec == nil {
			continue
		}
		out = append(out, fitcsv.Sample{
			Timestamp: validTimeOrZero(rec.Timestamp),
			Power:     u16Ptr(rec.Power),
			HeartRate: u8Ptr(rec.HeartRate),
			Cadence:   u8Ptr(rec.Cadence),
			DistanceM: scaledPtr(rec.GetDistanceScaled()),
		})
	}
	return out, nil
}

func validTimeOrZero(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t.UTC()
}

// Scaled getters report invalid raw values as NaN.
func scaledPtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	out := v
	return &out
}

func u16Ptr(v uint16) *int {
	if v == math.MaxUint16 {
		return nil
	}
	out := int(v)
	return &out
}

func u8Ptr(v uint8) *int {
	if v == math.MaxUint8 {
		return nil
	}
	out := int(v)
	return &out
}

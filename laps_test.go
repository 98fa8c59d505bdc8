package fitcsv

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestExtractLapsEndFromTimerTime(t *testing.T) {
	laps := ExtractLaps([]LapMessage{{
		StartTime:    t0,
		Timestamp:    t0.Add(20 * time.Minute),
		TimerTimeS:   floatPtr(600),
		ElapsedTimeS: floatPtr(900),
	}})
	if len(laps) != 1 {
		t.Fatalf("expected 1 lap, got %d", len(laps))
	}
	lap := laps[0]
	if want := t0.Add(10 * time.Minute); !lap.End.Equal(want) {
		t.Fatalf("end = %v, want %v", lap.End, want)
	}
	if lap.DurationS == nil || *lap.DurationS != 600 {
		t.Fatalf("duration = %v, want 600", lap.DurationS)
	}
}

func TestExtractLapsEndFromElapsedTime(t *testing.T) {
	laps := ExtractLaps([]LapMessage{{
		StartTime:    t0,
		ElapsedTimeS: floatPtr(900),
	}})
	lap := laps[0]
	if want := t0.Add(15 * time.Minute); !lap.End.Equal(want) {
		t.Fatalf("end = %v, want %v", lap.End, want)
	}
	if lap.DurationS == nil || *lap.DurationS != 900 {
		t.Fatalf("duration = %v, want 900", lap.DurationS)
	}
}

func TestExtractLapsEndFromMessageTimestamp(t *testing.T) {
	end := t0.Add(7 * time.Minute)
	laps := ExtractLaps([]LapMessage{{
		StartTime: t0,
		Timestamp: end,
	}})
	lap := laps[0]
	if !lap.End.Equal(end) {
		t.Fatalf("end = %v, want %v", lap.End, end)
	}
	// No explicit timer/elapsed fields: duration falls back to end-start.
	if lap.DurationS == nil || *lap.DurationS != 420 {
		t.Fatalf("duration = %v, want 420", lap.DurationS)
	}
}

func TestExtractLapsTimerWithoutStartFallsThrough(t *testing.T) {
	end := t0.Add(5 * time.Minute)
	laps := ExtractLaps([]LapMessage{{
		TimerTimeS: floatPtr(300),
		Timestamp:  end,
	}})
	lap := laps[0]
	if !lap.End.Equal(end) {
		t.Fatalf("end = %v, want message timestamp %v", lap.End, end)
	}
	// The duration chain is independent of the end chain.
	if lap.DurationS == nil || *lap.DurationS != 300 {
		t.Fatalf("duration = %v, want 300", lap.DurationS)
	}
}

func TestExtractLapsNoUsableFields(t *testing.T) {
	laps := ExtractLaps([]LapMessage{{StartTime: t0}})
	lap := laps[0]
	if !lap.End.IsZero() {
		t.Fatalf("expected absent end, got %v", lap.End)
	}
	if lap.DurationS != nil {
		t.Fatalf("expected absent duration, got %v", *lap.DurationS)
	}
}

func TestExtractLapsSortKeepsExtractionOrderIndexes(t *testing.T) {
	laps := ExtractLaps([]LapMessage{
		{StartTime: t0.Add(10 * time.Minute), TimerTimeS: floatPtr(60)},
		{StartTime: t0, TimerTimeS: floatPtr(60)},
		{StartTime: t0.Add(5 * time.Minute), TimerTimeS: floatPtr(60)},
	})
	wantOrder := []int{2, 3, 1}
	for i, want := range wantOrder {
		if laps[i].LapIndex != want {
			t.Fatalf("position %d: lap_index = %d, want %d", i, laps[i].LapIndex, want)
		}
	}
	for i := 1; i < len(laps); i++ {
		if laps[i].Start.Before(laps[i-1].Start) {
			t.Fatalf("laps not sorted by start at position %d", i)
		}
	}
}

func TestExtractLapsAbsentStartSortsFirst(t *testing.T) {
	laps := ExtractLaps([]LapMessage{
		{StartTime: t0, TimerTimeS: floatPtr(60)},
		{Timestamp: t0.Add(time.Hour)},
	})
	if !laps[0].Start.IsZero() {
		t.Fatalf("expected lap without start first, got start %v", laps[0].Start)
	}
	if laps[0].LapIndex != 2 {
		t.Fatalf("lap_index = %d, want 2", laps[0].LapIndex)
	}
}

func TestExtractLapsDuplicateStartIsStable(t *testing.T) {
	laps := ExtractLaps([]LapMessage{
		{StartTime: t0, TimerTimeS: floatPtr(60)},
		{StartTime: t0, TimerTimeS: floatPtr(120)},
	})
	if laps[0].LapIndex != 1 || laps[1].LapIndex != 2 {
		t.Fatalf("duplicate starts reordered: got %d, %d", laps[0].LapIndex, laps[1].LapIndex)
	}
}

func TestExtractLapsCopiesAverages(t *testing.T) {
	msg := LapMessage{
		StartTime:      t0,
		TimerTimeS:     floatPtr(600),
		AvgPower:       intPtr(245),
		AvgHeartRate:   intPtr(152),
		AvgCadence:     intPtr(91),
		TotalDistanceM: floatPtr(8123.5),
	}
	lap := ExtractLaps([]LapMessage{msg})[0]
	if lap.AvgPower == nil || *lap.AvgPower != 245 {
		t.Fatalf("avg power = %v", lap.AvgPower)
	}
	if lap.AvgHeartRate == nil || *lap.AvgHeartRate != 152 {
		t.Fatalf("avg heart rate = %v", lap.AvgHeartRate)
	}
	if lap.AvgCadence == nil || *lap.AvgCadence != 91 {
		t.Fatalf("avg cadence = %v", lap.AvgCadence)
	}
	if lap.TotalDistanceM == nil || *lap.TotalDistanceM != 8123.5 {
		t.Fatalf("total distance = %v", lap.TotalDistanceM)
	}
}

func TestExtractLapsEmptyInput(t *testing.T) {
	if laps := ExtractLaps(nil); len(laps) != 0 {
		t.Fatalf("expected no laps, got %d", len(laps))
	}
}

func intPtr(v int) *int {
	out := v
	return &out
}

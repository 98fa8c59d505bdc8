package fitcsv

import (
	"sort"
	"time"
)

// ExtractLaps builds lap summaries from lap messages, one per message.
//
// The lap end time prefers start+total_timer_time, then
// start+total_elapsed_time; some FIT writers only record the lap's own
// timestamp as its end, so that is the final fallback. The duration prefers
// the explicit timer/elapsed fields and otherwise falls back to end-start
// when both instants are known.
//
// The returned slice is stably sorted by start time with absent starts
// first, the order NewIntervalIndex requires. Sorting never renumbers
// LapIndex: the extraction-order index travels with its lap.
func ExtractLaps(msgs []LapMessage) []Lap {
	laps := make([]Lap, 0, len(msgs))
	for i, msg := range msgs {
		lap := Lap{
			LapIndex:       i + 1,
			Start:          msg.StartTime,
			AvgPower:       msg.AvgPower,
			AvgHeartRate:   msg.AvgHeartRate,
			AvgCadence:     msg.AvgCadence,
			TotalDistanceM: msg.TotalDistanceM,
		}

		switch {
		case msg.TimerTimeS != nil && !msg.StartTime.IsZero():
			lap.End = msg.StartTime.Add(secondsDuration(*msg.TimerTimeS))
		case msg.ElapsedTimeS != nil && !msg.StartTime.IsZero():
			lap.End = msg.StartTime.Add(secondsDuration(*msg.ElapsedTimeS))
		default:
			lap.End = msg.Timestamp
		}

		switch {
		case msg.TimerTimeS != nil:
			lap.DurationS = floatPtr(*msg.TimerTimeS)
		case msg.ElapsedTimeS != nil:
			lap.DurationS = floatPtr(*msg.ElapsedTimeS)
		case !lap.Start.IsZero() && !lap.End.IsZero():
			lap.DurationS = floatPtr(lap.End.Sub(lap.Start).Seconds())
		}

		laps = append(laps, lap)
	}

	sort.SliceStable(laps, func(i, j int) bool {
		return laps[i].Start.Before(laps[j].Start)
	})
	return laps
}

func secondsDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func floatPtr(v float64) *float64 {
	out := v
	return &out
}

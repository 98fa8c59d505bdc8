package fitcsv

import "time"

// Sample is one sensor reading from a record message. A zero Timestamp
// means the device omitted it; optional sensor fields are nil when absent,
// which is distinct from a present zero reading.
type Sample struct {
	Timestamp time.Time
	Power     *int
	HeartRate *int
	Cadence   *int
	DistanceM *float64
}

// LapMessage is the raw lap message view handed over by the decoder
// boundary, before any end-time or duration derivation.
type LapMessage struct {
	StartTime      time.Time
	Timestamp      time.Time
	TimerTimeS     *float64
	ElapsedTimeS   *float64
	AvgPower       *int
	AvgHeartRate   *int
	AvgCadence     *int
	TotalDistanceM *float64
}

// Lap is one extracted lap summary. LapIndex is the 1-based position of the
// originating message in the input stream and never changes afterwards,
// even when laps are re-sorted by start time.
type Lap struct {
	LapIndex       int
	Start          time.Time
	End            time.Time
	DurationS      *float64
	AvgPower       *int
	AvgHeartRate   *int
	AvgCadence     *int
	TotalDistanceM *float64
}

// EnrichedRecord is a Sample annotated with the lap it falls into. LapIndex
// is nil when no lap interval contains the sample.
type EnrichedRecord struct {
	Sample
	LapIndex *int
}

// MessageSource yields the two message streams of one decoded activity.
// Both methods must be callable independently and in any order; the
// converter walks laps fully before it touches the record stream.
type MessageSource interface {
	LapMessages() ([]LapMessage, error)
	RecordMessages() ([]Sample, error)
}

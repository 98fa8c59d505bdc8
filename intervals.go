package fitcsv

import "time"

// Interval is the minimal (lap index, start, end) projection of a Lap used
// for membership testing.
type Interval struct {
	LapIndex int
	Start    time.Time
	End      time.Time
}

// IntervalIndex answers "which lap contains this timestamp" for a
// non-decreasing timestamp sequence. Queries carry an explicit cursor: pass
// 0 for the first sample and the returned cursor for every one after, so
// classifying N samples against M laps costs O(N+M) overall even though a
// single query may scan forward past several intervals.
type IntervalIndex struct {
	intervals []Interval
}

// NewIntervalIndex projects laps into intervals, preserving order. The laps
// must already be sorted by start time as ExtractLaps returns them.
func NewIntervalIndex(laps []Lap) *IntervalIndex {
	intervals := make([]Interval, 0, len(laps))
	for _, lap := range laps {
		intervals = append(intervals, Interval{
			LapIndex: lap.LapIndex,
			Start:    lap.Start,
			End:      lap.End,
		})
	}
	return &IntervalIndex{intervals: intervals}
}

// Len returns the number of intervals in the index.
func (ix *IntervalIndex) Len() int {
	return len(ix.intervals)
}

// Classify returns the 1-based lap index whose interval contains ts, or 0
// when none does, plus the cursor to pass to the next call.
//
// Bounds are inclusive on both ends, so a timestamp on a shared boundary
// belongs to the earlier lap. An interval with a start but no known end
// matches every timestamp at or after its start: the lap is open-ended and
// runs to the end of the recording. An interval with no start cannot be
// matched reliably and is skipped. A zero ts never matches and leaves the
// cursor unchanged.
func (ix *IntervalIndex) Classify(ts time.Time, cursor int) (int, int) {
	if ts.IsZero() || len(ix.intervals) == 0 {
		return 0, cursor
	}

	n := len(ix.intervals)
	i := cursor
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	for i < n {
		iv := ix.intervals[i]
		switch {
		case !iv.Start.IsZero() && !iv.End.IsZero():
			if !ts.Before(iv.Start) && !ts.After(iv.End) {
				return iv.LapIndex, i
			}
			if ts.After(iv.End) {
				i++
				continue
			}
		case !iv.Start.IsZero():
			if !ts.Before(iv.Start) {
				return iv.LapIndex, i
			}
		default:
			i++
			continue
		}
		break
	}
	return 0, i
}

// Classifier attaches lap indexes to a sample stream. It keeps the scan
// cursor across calls, so samples must be fed in arrival order; the cursor
// is never reset mid-stream.
type Classifier struct {
	index  *IntervalIndex
	cursor int
}

// NewClassifier returns a classifier over a fully built index.
func NewClassifier(index *IntervalIndex) *Classifier {
	return &Classifier{index: index}
}

// Classify wraps one sample into an EnrichedRecord.
func (c *Classifier) Classify(s Sample) EnrichedRecord {
	lap, cursor := c.index.Classify(s.Timestamp, c.cursor)
	c.cursor = cursor

	rec := EnrichedRecord{Sample: s}
	if lap > 0 {
		rec.LapIndex = &lap
	}
	return rec
}

// ClassifyAll enriches every sample in order, producing exactly one output
// row per input sample.
func (c *Classifier) ClassifyAll(samples []Sample) []EnrichedRecord {
	out := make([]EnrichedRecord, 0, len(samples))
	for _, s := range samples {
		out = append(out, c.Classify(s))
	}
	return out
}

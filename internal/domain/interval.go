package domain

import "time"

// Interval is a half-open time range [Start, End). It is derived from an
// event's start time and duration and is never persisted.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds the interval [start, start+minutes*time.Minute).
func NewInterval(start time.Time, minutes int) Interval {
	return Interval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}
}

// Overlaps reports whether two half-open intervals intersect. Ranges that
// only touch at a boundary (a.End == b.Start) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

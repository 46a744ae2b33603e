package conflict

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// Interval is a half-open [Start, End) wall-clock range expressed in minutes
// since midnight. Granularity is one minute; there is no timezone handling,
// all scheduling is local-campus time.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two intervals on the same day intersect. The
// strict double inequality means back-to-back slots (A.End == B.Start) do
// not conflict while partial overlaps, containment and exact matches do.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// Valid reports whether the interval is well-formed within a single day.
func (i Interval) Valid() bool {
	return i.Start >= 0 && i.End <= minutesPerDay && i.Start < i.End
}

// Minutes returns the interval duration in minutes.
func (i Interval) Minutes() int {
	return i.End - i.Start
}

// String renders the interval as "HH:MM-HH:MM".
func (i Interval) String() string {
	return FormatClock(i.Start) + "-" + FormatClock(i.End)
}

// ParseClock converts a zero-padded "HH:MM" string to minutes since midnight.
func ParseClock(raw string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", raw, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", raw, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", raw)
	}
	return hour*60 + minute, nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseInterval builds an Interval from "HH:MM" boundaries.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

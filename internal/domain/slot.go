package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Location identifies a physical lab
type Location string

// ErrBadSlotLabel is returned when a slot label cannot be parsed back into a
// slot. A label that fails to parse indicates corrupted stored data, not a
// booked or past slot.
var ErrBadSlotLabel = errors.New("domain: malformed slot label")

// Slot is one bookable 15-minute interval at one location.
// The struct value is the slot's identity; the label is derived for display
// and export only.
type Slot struct {
	Location Location
	Start    time.Time // wall-clock start in the lab timezone
	End      time.Time
}

// NewSlot builds a slot starting at start with the standard duration
func NewSlot(location Location, start time.Time) Slot {
	return Slot{
		Location: location,
		Start:    start,
		End:      start.Add(SlotDurationMinutes * time.Minute),
	}
}

// Date returns the slot's calendar date at midnight
func (s Slot) Date() time.Time {
	y, m, d := s.Start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.Start.Location())
}

// SameInterval reports whether two slots occupy the same interval at the
// same location. Used for membership tests against booked slots.
func (s Slot) SameInterval(other Slot) bool {
	return s.Location == other.Location &&
		s.Start.Equal(other.Start) &&
		s.End.Equal(other.End)
}

// DayLabel formats the slot's day as "Monday 09/09/25"
func (s Slot) DayLabel() string {
	return fmt.Sprintf("%s %s", s.Start.Weekday(), s.Start.Format(LabelDateFormat))
}

// Label formats the slot as "Monday 09/09/25 9:00–9:15 AM".
// Hours carry no leading zero; only the end time carries the meridiem.
// The en-dash separator is part of the format.
func (s Slot) Label() string {
	return fmt.Sprintf("%s %s–%s",
		s.DayLabel(),
		s.Start.Format(labelClock),
		s.End.Format(labelClockAMPM),
	)
}

// ParseSlotLabel reverses Label for the given location. The start time
// carries no meridiem of its own: it takes the end's meridiem unless that
// would put the start after the end (a block crossing noon).
func ParseSlotLabel(label string, location Location, loc *time.Location) (Slot, error) {
	parts := strings.Fields(label)
	if len(parts) != 4 {
		return Slot{}, fmt.Errorf("%w: %q", ErrBadSlotLabel, label)
	}

	date, err := time.ParseInLocation(LabelDateFormat, parts[1], loc)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q: %v", ErrBadSlotLabel, label, err)
	}

	clocks := strings.SplitN(parts[2], "–", 2)
	if len(clocks) != 2 {
		return Slot{}, fmt.Errorf("%w: %q", ErrBadSlotLabel, label)
	}

	end, err := time.ParseInLocation(labelClockAMPM, clocks[1]+" "+parts[3], loc)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q: %v", ErrBadSlotLabel, label, err)
	}

	startClock, err := time.ParseInLocation(labelClock, clocks[0], loc)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q: %v", ErrBadSlotLabel, label, err)
	}

	// The start hour is on a 12-hour clock with no meridiem of its own.
	// Prefer the end's meridiem; fall back to the morning reading when the
	// block crosses noon (e.g. "11:45–12:00 PM").
	startHour := startClock.Hour() % 12
	endMins := end.Hour()*60 + end.Minute()
	if end.Hour() >= 12 {
		if (startHour+12)*60+startClock.Minute() <= endMins {
			startHour += 12
		}
	}
	startMins := startHour*60 + startClock.Minute()
	if startMins >= endMins {
		return Slot{}, fmt.Errorf("%w: %q: start is not before end", ErrBadSlotLabel, label)
	}

	y, m, d := date.Date()
	slot := Slot{
		Location: location,
		Start:    time.Date(y, m, d, startHour, startClock.Minute(), 0, 0, loc),
		End:      time.Date(y, m, d, end.Hour(), end.Minute(), 0, 0, loc),
	}

	if parts[0] != slot.Start.Weekday().String() {
		return Slot{}, fmt.Errorf("%w: %q: weekday does not match date", ErrBadSlotLabel, label)
	}

	return slot, nil
}

// DoubleBlock is a pair of chronologically adjacent slots treated as one
// reservation unit for DSPS accommodation.
type DoubleBlock struct {
	First  Slot
	Second Slot
}

// Contiguous reports whether the block is valid: both slots at the same
// location, on the same day, with the second starting exactly when the
// first ends.
func (b DoubleBlock) Contiguous() bool {
	return b.First.Location == b.Second.Location &&
		b.First.Date().Equal(b.Second.Date()) &&
		b.First.End.Equal(b.Second.Start)
}

// Slots returns the block's members in order
func (b DoubleBlock) Slots() []Slot {
	return []Slot{b.First, b.Second}
}

// Label joins the member labels with " and ", the display convention for
// double bookings.
func (b DoubleBlock) Label() string {
	return b.First.Label() + " and " + b.Second.Label()
}

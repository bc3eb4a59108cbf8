package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DayHours is one weekday's operating window, minutes from midnight
type DayHours struct {
	Open  int
	Close int
}

// WeekHours maps weekdays to operating windows for one location.
// A weekday absent from the map is closed.
type WeekHours map[time.Weekday]DayHours

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseWeekHours builds a WeekHours table from config input:
// lowercase weekday name -> ["HH:MM", "HH:MM"] open/close pair.
// A window with close <= open is rejected so slot generation can never loop
// forever or run backwards.
func ParseWeekHours(raw map[string][]string) (WeekHours, error) {
	hours := make(WeekHours, len(raw))

	for day, pair := range raw {
		weekday, ok := weekdayNames[strings.ToLower(day)]
		if !ok {
			return nil, fmt.Errorf("domain: unknown weekday %q", day)
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("domain: %s: want [open, close] pair, got %d values", day, len(pair))
		}

		open, err := parseClock(pair[0])
		if err != nil {
			return nil, fmt.Errorf("domain: %s open: %w", day, err)
		}
		closeAt, err := parseClock(pair[1])
		if err != nil {
			return nil, fmt.Errorf("domain: %s close: %w", day, err)
		}
		if closeAt <= open {
			return nil, fmt.Errorf("domain: %s: close %s must be after open %s", day, pair[1], pair[0])
		}

		hours[weekday] = DayHours{Open: open, Close: closeAt}
	}

	return hours, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return 0, fmt.Errorf("parse %q as HH:MM: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// SlotsForDate generates the day's slots for one location, in order.
// Slots step every SlotDurationMinutes from open; a slot is generated only
// while it ends at or before close, so a window that is not a clean multiple
// of the slot length drops the partial tail. A closed day yields nil.
func (h WeekHours) SlotsForDate(location Location, date time.Time) []Slot {
	window, open := h[date.Weekday()]
	if !open {
		return nil
	}

	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, date.Location())

	var slots []Slot
	for at := window.Open; at+SlotDurationMinutes <= window.Close; at += SlotDurationMinutes {
		slots = append(slots, NewSlot(location, midnight.Add(time.Duration(at)*time.Minute)))
	}
	return slots
}

// DaySlots is one day's ordered slot sequence
type DaySlots struct {
	Date  time.Time
	Slots []Slot
}

// Label formats the day as "Monday 09/09/25"
func (d DaySlots) Label() string {
	return fmt.Sprintf("%s %s", d.Date.Weekday(), d.Date.Format(LabelDateFormat))
}

// GenerateSchedule derives every bookable slot for each location over
// horizonDays consecutive dates starting at reference. The reference time of
// day is discarded; days are computed at midnight in reference's zone. Days a
// location is closed are omitted. Output is deterministic for a fixed
// reference and hours table, ordered chronologically, and consults no
// booking state.
func GenerateSchedule(hours map[Location]WeekHours, reference time.Time, horizonDays int) map[Location][]DaySlots {
	y, m, d := reference.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, reference.Location())

	schedule := make(map[Location][]DaySlots, len(hours))

	locations := make([]Location, 0, len(hours))
	for location := range hours {
		locations = append(locations, location)
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i] < locations[j] })

	for _, location := range locations {
		days := make([]DaySlots, 0, horizonDays)
		for i := 0; i < horizonDays; i++ {
			date := today.AddDate(0, 0, i)
			slots := hours[location].SlotsForDate(location, date)
			if len(slots) == 0 {
				continue
			}
			days = append(days, DaySlots{Date: date, Slots: slots})
		}
		schedule[location] = days
	}

	return schedule
}

// DoubleBlocksForDay pairs each slot with its immediate successor when the
// two are contiguous. Gaps in the day (none occur with the standard
// templates, but ragged windows can create them) break pairing.
func DoubleBlocksForDay(slots []Slot) []DoubleBlock {
	var blocks []DoubleBlock
	for i := 0; i+1 < len(slots); i++ {
		block := DoubleBlock{First: slots[i], Second: slots[i+1]}
		if block.Contiguous() {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

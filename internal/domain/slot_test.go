package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pacific(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)
	return loc
}

func TestSlotLabel(t *testing.T) {
	loc := pacific(t)

	tests := []struct {
		name  string
		start time.Time
		want  string
	}{
		{
			name:  "morning slot without leading zero",
			start: time.Date(2025, 9, 8, 9, 0, 0, 0, loc),
			want:  "Monday 09/08/25 9:00–9:15 AM",
		},
		{
			name:  "afternoon slot",
			start: time.Date(2025, 9, 10, 14, 30, 0, 0, loc),
			want:  "Wednesday 09/10/25 2:30–2:45 PM",
		},
		{
			name:  "block crossing noon keeps end meridiem only",
			start: time.Date(2025, 9, 9, 11, 45, 0, 0, loc),
			want:  "Tuesday 09/09/25 11:45–12:00 PM",
		},
		{
			name:  "evening slot",
			start: time.Date(2025, 9, 11, 20, 15, 0, 0, loc),
			want:  "Thursday 09/11/25 8:15–8:30 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := NewSlot(LocationSLO, tt.start)
			assert.Equal(t, tt.want, slot.Label())
		})
	}
}

func TestParseSlotLabel(t *testing.T) {
	loc := pacific(t)

	t.Run("round trip", func(t *testing.T) {
		starts := []time.Time{
			time.Date(2025, 9, 8, 9, 0, 0, 0, loc),
			time.Date(2025, 9, 9, 11, 45, 0, 0, loc), // crosses noon
			time.Date(2025, 9, 10, 12, 0, 0, 0, loc),
			time.Date(2025, 9, 11, 20, 15, 0, 0, loc),
		}

		for _, start := range starts {
			slot := NewSlot(LocationNCC, start)

			parsed, err := ParseSlotLabel(slot.Label(), LocationNCC, loc)
			require.NoError(t, err, "label %q", slot.Label())
			assert.True(t, slot.SameInterval(parsed), "label %q", slot.Label())
		}
	})

	t.Run("malformed labels", func(t *testing.T) {
		labels := []string{
			"",
			"garbage",
			"Monday 09/08/25 9:00",
			"Monday 09/08/25 9:00-9:15 AM",  // hyphen instead of en-dash
			"Tuesday 09/08/25 9:00–9:15 AM", // weekday does not match date
			"Monday 99/99/99 9:00–9:15 AM",
			"Monday 09/08/25 9:15–9:00 AM", // start after end
		}

		for _, label := range labels {
			_, err := ParseSlotLabel(label, LocationSLO, loc)
			assert.ErrorIs(t, err, ErrBadSlotLabel, "label %q", label)
		}
	})
}

func TestSlotDate(t *testing.T) {
	loc := pacific(t)

	slot := NewSlot(LocationSLO, time.Date(2025, 9, 8, 20, 45, 0, 0, loc))
	assert.Equal(t, time.Date(2025, 9, 8, 0, 0, 0, 0, loc), slot.Date())
}

func TestDoubleBlock(t *testing.T) {
	loc := pacific(t)
	start := time.Date(2025, 9, 8, 9, 0, 0, 0, loc)

	first := NewSlot(LocationSLO, start)
	second := NewSlot(LocationSLO, first.End)

	t.Run("contiguous pair", func(t *testing.T) {
		block := DoubleBlock{First: first, Second: second}
		assert.True(t, block.Contiguous())
		assert.Equal(t,
			"Monday 09/08/25 9:00–9:15 AM and Monday 09/08/25 9:15–9:30 AM",
			block.Label(),
		)
		assert.Equal(t, []Slot{first, second}, block.Slots())
	})

	t.Run("gap breaks contiguity", func(t *testing.T) {
		third := NewSlot(LocationSLO, second.End)
		block := DoubleBlock{First: first, Second: third}
		assert.False(t, block.Contiguous())
	})

	t.Run("different locations never pair", func(t *testing.T) {
		other := NewSlot(LocationNCC, first.End)
		block := DoubleBlock{First: first, Second: other}
		assert.False(t, block.Contiguous())
	})
}

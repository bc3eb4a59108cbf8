package domain

import (
	"strings"
	"time"
)

// Booking represents one persisted appointment row.
// A DSPS booking is exactly two rows sharing GroupID, exam number and
// location, whose slots form a contiguous double block at creation time.
type Booking struct {
	ID        int64
	GroupID   string // stable booking reference; shared by both rows of a DSPS pair
	Name      string
	Email     string
	StudentID string
	DSPS      bool
	Slot      Slot
	Exam      string
	Grade     *string
	GradedBy  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location returns the lab the booking is at
func (b *Booking) Location() Location {
	return b.Slot.Location
}

// IsGraded returns true if a grade has been entered
func (b *Booking) IsGraded() bool {
	return b.Grade != nil && *b.Grade != ""
}

// WeekWindow is the ISO calendar week a slot's date falls into.
// Two bookings for the same (email, exam) pair conflict when their windows
// are equal.
type WeekWindow struct {
	Year int
	Week int
}

// WeekOf computes the booking's week window from its slot date
func (b *Booking) WeekOf() WeekWindow {
	return WeekWindowOf(b.Slot.Start)
}

// WeekWindowOf computes the ISO week window of a point in time
func WeekWindowOf(t time.Time) WeekWindow {
	year, week := t.ISOWeek()
	return WeekWindow{Year: year, Week: week}
}

// BookingKey is the (email, exam) pair the weekly-frequency rule is scoped
// to. Derived per query, never stored.
type BookingKey struct {
	Email string
	Exam  string
}

// Key derives the booking's frequency key. Emails compare case-insensitively.
func (b *Booking) Key() BookingKey {
	return BookingKey{Email: strings.ToLower(b.Email), Exam: b.Exam}
}

// BookingsFilter narrows staff booking queries. Nil fields are unbounded.
type BookingsFilter struct {
	Location  *Location
	Email     *string
	StartDate *time.Time
	EndDate   *time.Time
}

// SiblingRows returns the rows in snapshot sharing the booking's group
func SiblingRows(snapshot []*Booking, groupID string) []*Booking {
	var rows []*Booking
	for _, row := range snapshot {
		if row.GroupID == groupID {
			rows = append(rows, row)
		}
	}
	return rows
}

// IsValidEmail checks the institutional email suffix requirement
func IsValidEmail(email string, suffixes []string) bool {
	lower := strings.ToLower(strings.TrimSpace(email))
	for _, suffix := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// IsValidStudentID checks the student ID prefix requirement
func IsValidStudentID(id string, prefix string) bool {
	id = strings.TrimSpace(id)
	return id != "" && strings.HasPrefix(id, prefix)
}

// IsValidExam checks the exam number against the allowed set
func IsValidExam(exam string, allowed []string) bool {
	for _, e := range allowed {
		if exam == e {
			return true
		}
	}
	return false
}

package domain

// Slot timing constants
const (
	SlotDurationMinutes = 15
	HorizonDays         = 21
)

// Time format constants
const (
	TimeFormat      = "15:04"          // HH:MM, config and API input
	DateFormat      = "2006-01-02"     // YYYY-MM-DD, API input
	LabelDateFormat = "01/02/06"       // MM/DD/YY, slot label
	labelClock      = "3:04"           // hour without leading zero
	labelClockAMPM  = "3:04 PM"        // hour without leading zero, meridiem suffix
)

// DefaultTimezone is the fixed zone all date and time comparisons use.
// The labs are in one place; the service does not model timezones generically.
const DefaultTimezone = "US/Pacific"

// Eligibility defaults, overridable from config
var (
	DefaultStudentIDPrefix = "900"
	DefaultEmailSuffixes   = []string{"@my.cuesta.edu", "@cuesta.edu"}

	// DefaultExamNumbers oral exams students can sign up for
	DefaultExamNumbers = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10"}
)

// Known lab locations
const (
	LocationSLO Location = "SLO AT Lab"
	LocationNCC Location = "NCC AT Lab"
)

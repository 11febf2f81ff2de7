package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SlotStepMinutes is the booking granularity for generalist schedules.
const SlotStepMinutes = 20

// ParseClock parses a 24-hour "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return hour*60 + minute, nil
}

// ParseLabel parses a 12-hour display label ("9:20 AM", "12:00 PM") into
// minutes since midnight. Leading zeros in the hour are accepted so that
// "09:20 AM" and "9:20 AM" resolve to the same key.
func ParseLabel(s string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid time label %q: expected \"h:mm AM/PM\"", s)
	}
	period := strings.ToUpper(fields[1])
	if period != "AM" && period != "PM" {
		return 0, fmt.Errorf("invalid period in time label %q", s)
	}
	parts := strings.SplitN(fields[0], ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time label %q: expected \"h:mm AM/PM\"", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in time label %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in time label %q: %w", s, err)
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time label %q out of range", s)
	}
	if hour == 12 {
		hour = 0
	}
	if period == "PM" {
		hour += 12
	}
	return hour*60 + minute, nil
}

// FormatLabel renders minutes since midnight as a 12-hour display label:
// 560 -> "9:20 AM", 0 -> "12:00 AM", 720 -> "12:00 PM".
func FormatLabel(minutes int) string {
	hour := minutes / 60
	minute := minutes % 60
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// DateOnly strips the time-of-day component, keeping the location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two instants fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// WeekdayName returns the lowercase day name used as a weekly schedule key.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[int(d)]
}

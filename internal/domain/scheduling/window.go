package scheduling

import (
	"sync"
	"time"
)

// HorizonDays is the length of the rolling booking calendar.
const HorizonDays = 30

// Horizon returns HorizonDays consecutive calendar dates starting today.
func Horizon(now time.Time) []time.Time {
	today := DateOnly(now)
	dates := make([]time.Time, HorizonDays)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, i)
	}
	return dates
}

// DateWindow filters candidate calendar dates down to the weekdays a doctor
// works at all. While the weekday data has not loaded yet it is permissive
// and returns the full list, so the calendar does not flash empty during a
// fetch; once loaded, filtering applies uniformly to both doctor kinds.
type DateWindow struct {
	mu       sync.RWMutex
	loaded   bool
	weekdays WeekdaySet
}

// SetWeekdays installs the doctor's working weekdays and marks the window
// loaded.
func (w *DateWindow) SetWeekdays(set WeekdaySet) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.weekdays = set
	w.loaded = true
}

// Reset returns the window to the unloaded, permissive state.
func (w *DateWindow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.weekdays = WeekdaySet{}
	w.loaded = false
}

// Loaded reports whether weekday data has been installed.
func (w *DateWindow) Loaded() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loaded
}

// Filter returns the subsequence of dates the doctor could plausibly work.
// An empty weekday set after load means no bookable dates at all.
func (w *DateWindow) Filter(dates []time.Time) []time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !w.loaded {
		out := make([]time.Time, len(dates))
		copy(out, dates)
		return out
	}

	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if w.weekdays.Contains(int(d.Weekday())) {
			out = append(out, d)
		}
	}
	return out
}

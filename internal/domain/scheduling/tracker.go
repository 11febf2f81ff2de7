package scheduling

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SelectionTracker guards against stale async results when the user changes
// the selected doctor or date before an in-flight availability fetch
// resolves. Each new selection bumps a generation counter; a result is only
// applied if its generation still matches the current one.
type SelectionTracker struct {
	mu       sync.Mutex
	gen      int64
	doctorID uuid.UUID
	date     time.Time
}

// Begin records a new (doctor, date) selection and returns its generation.
func (t *SelectionTracker) Begin(doctorID uuid.UUID, date time.Time) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	t.doctorID = doctorID
	t.date = DateOnly(date)
	return t.gen
}

// Valid reports whether a result produced under gen is still current.
func (t *SelectionTracker) Valid(gen int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gen == t.gen
}

// Selection returns the current selection and its generation.
func (t *SelectionTracker) Selection() (uuid.UUID, time.Time, int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.doctorID, t.date, t.gen
}

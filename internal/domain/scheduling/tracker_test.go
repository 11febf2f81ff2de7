package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSelectionTracker_StaleGeneration(t *testing.T) {
	var tracker SelectionTracker

	first := tracker.Begin(uuid.New(), mustDate("2026-03-02"))
	if !tracker.Valid(first) {
		t.Fatal("a freshly begun selection should be valid")
	}

	second := tracker.Begin(uuid.New(), mustDate("2026-03-04"))
	if tracker.Valid(first) {
		t.Error("superseded selection must be invalid")
	}
	if !tracker.Valid(second) {
		t.Error("latest selection must be valid")
	}
	if second <= first {
		t.Errorf("generation must increase: %d then %d", first, second)
	}
}

func TestSelectionTracker_Selection(t *testing.T) {
	var tracker SelectionTracker

	doctorID := uuid.New()
	gen := tracker.Begin(doctorID, mustDate("2026-03-02").Add(13*time.Hour))

	gotDoctor, gotDate, gotGen := tracker.Selection()
	if gotDoctor != doctorID {
		t.Errorf("doctor = %v, want %v", gotDoctor, doctorID)
	}
	if !gotDate.Equal(mustDate("2026-03-02")) {
		t.Errorf("date should be normalized to midnight, got %v", gotDate)
	}
	if gotGen != gen {
		t.Errorf("generation = %d, want %d", gotGen, gen)
	}
}

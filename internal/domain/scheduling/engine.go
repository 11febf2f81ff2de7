package scheduling

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Engine combines candidate slots from the schedule adapter with occupied
// times from the conflict resolver, producing the final annotated slot list.
type Engine struct {
	adapter   *ScheduleAdapter
	conflicts *ConflictResolver
	logger    zerolog.Logger
}

func NewEngine(adapter *ScheduleAdapter, conflicts *ConflictResolver, logger zerolog.Logger) *Engine {
	return &Engine{adapter: adapter, conflicts: conflicts, logger: logger}
}

// ComputeAvailability returns the doctor's slots for a date, each tagged
// booked or free. The schedule fetch and the booking fetch are independent
// and run concurrently; both must complete before annotation. Candidate
// order is preserved, and an empty candidate list yields an empty result —
// a specialist with no active schedule never falls back to a default window.
func (e *Engine) ComputeAvailability(ctx context.Context, doctor *Doctor, date time.Time) ([]Slot, error) {
	var (
		candidates []Slot
		booked     map[int]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = e.adapter.DaySlots(gctx, doctor, date)
		return err
	})
	g.Go(func() error {
		var err error
		booked, err = e.conflicts.BookedMinutes(gctx, doctor.ID, date, doctor.IsSpecialist)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slots := make([]Slot, len(candidates))
	for i, c := range candidates {
		c.IsBooked = booked[c.Minutes]
		slots[i] = c
	}

	e.logger.Debug().
		Str("doctor_id", doctor.ID.String()).
		Str("date", date.Format("2006-01-02")).
		Int("slots", len(slots)).
		Int("booked", len(booked)).
		Msg("computed availability")

	return slots, nil
}

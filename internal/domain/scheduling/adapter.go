package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Default window offered when a generalist has no explicit schedule for a
// weekday: 9:00 AM through 5:00 PM in 20-minute steps, end exclusive.
const (
	defaultWindowStart = 9 * 60
	defaultWindowEnd   = 17 * 60
)

// ScheduleAdapter normalizes the two schedule representations — a
// generalist's weekly recurring availability and a specialist's discrete
// schedule records — into a canonical per-date slot list, independent of
// booking state.
type ScheduleAdapter struct {
	schedules ScheduleRepository
	logger    zerolog.Logger
}

func NewScheduleAdapter(schedules ScheduleRepository, logger zerolog.Logger) *ScheduleAdapter {
	return &ScheduleAdapter{schedules: schedules, logger: logger}
}

// DaySlots returns the candidate slots a doctor could offer on the given
// date, in offer order. For a specialist with no schedule active on the date
// it returns ErrNoScheduleForDate; missing generalist data falls back to the
// default daytime window instead.
func (a *ScheduleAdapter) DaySlots(ctx context.Context, doctor *Doctor, date time.Time) ([]Slot, error) {
	if doctor.IsSpecialist {
		return a.specialistDaySlots(ctx, doctor, date)
	}
	return a.generalistDaySlots(doctor, date), nil
}

func (a *ScheduleAdapter) specialistDaySlots(ctx context.Context, doctor *Doctor, date time.Time) ([]Slot, error) {
	schedules, err := a.schedules.ListBySpecialist(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScheduleFetch, err)
	}

	var active *SpecialistSchedule
	for _, s := range schedules {
		if s.ActiveOn(date) {
			active = s
			break
		}
	}
	if active == nil {
		return nil, ErrNoScheduleForDate
	}

	slots := make([]Slot, 0, len(active.SlotTemplate))
	for _, ts := range active.SlotTemplate {
		minutes, err := ParseLabel(ts.Time)
		if err != nil {
			a.logger.Warn().
				Str("doctor_id", doctor.ID.String()).
				Str("schedule_id", active.ID.String()).
				Str("time", ts.Time).
				Msg("skipping malformed template slot")
			continue
		}
		slots = append(slots, Slot{
			Time:            FormatLabel(minutes),
			Minutes:         minutes,
			DurationMinutes: ts.DurationMinutes,
		})
	}
	return slots, nil
}

func (a *ScheduleAdapter) generalistDaySlots(doctor *Doctor, date time.Time) []Slot {
	day, ok := doctor.Weekly[WeekdayName(date.Weekday())]
	if !ok || !day.hasValidRange() {
		return expandRange(defaultWindowStart, defaultWindowEnd)
	}

	var slots []Slot
	for _, r := range day.TimeSlots {
		if !r.valid() {
			a.logger.Warn().
				Str("doctor_id", doctor.ID.String()).
				Str("start", r.StartTime).
				Str("end", r.EndTime).
				Msg("skipping malformed time range")
			continue
		}
		start, _ := ParseClock(r.StartTime)
		end, _ := ParseClock(r.EndTime)
		slots = append(slots, expandRange(start, end)...)
	}
	return slots
}

// expandRange steps through [start, end) in 20-minute increments.
func expandRange(start, end int) []Slot {
	var slots []Slot
	for m := start; m < end; m += SlotStepMinutes {
		slots = append(slots, Slot{
			Time:            FormatLabel(m),
			Minutes:         m,
			DurationMinutes: SlotStepMinutes,
		})
	}
	return slots
}

// AvailableWeekdays returns the weekdays on which the doctor works at all,
// used to narrow the bookable calendar before any slot computation. For a
// specialist the weekday match of individual dates is deliberately not
// applied here; only activity and validity as of today count.
func (a *ScheduleAdapter) AvailableWeekdays(ctx context.Context, doctor *Doctor, today time.Time) (WeekdaySet, error) {
	var set WeekdaySet

	if doctor.IsSpecialist {
		schedules, err := a.schedules.ListBySpecialist(ctx, doctor.ID)
		if err != nil {
			return set, fmt.Errorf("%w: %v", ErrScheduleFetch, err)
		}
		for _, s := range schedules {
			if !s.IsActive || DateOnly(s.ValidFrom).After(DateOnly(today)) {
				continue
			}
			for _, d := range s.DaysOfWeek {
				set.Add(d)
			}
		}
		return set, nil
	}

	for day, name := range weekdayNames {
		if doctor.Weekly[name].hasValidRange() {
			set.Add(day)
		}
	}
	return set, nil
}

package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FetchErrorPolicy controls what a booking-source fetch failure means for
// availability. FailClosed surfaces the error so no slot is offered on
// partial data; FailOpen treats the doctor/date as having zero booked slots.
// FailClosed is the default: a transient fetch failure must not open the
// door to a double booking.
type FetchErrorPolicy int

const (
	FailClosed FetchErrorPolicy = iota
	FailOpen
)

// ParseFetchErrorPolicy maps a config string to a policy.
func ParseFetchErrorPolicy(s string) (FetchErrorPolicy, error) {
	switch s {
	case "", "fail-closed":
		return FailClosed, nil
	case "fail-open":
		return FailOpen, nil
	}
	return FailClosed, fmt.Errorf("invalid booking fetch policy %q", s)
}

// ConflictResolver computes the set of already-occupied times for a doctor
// and date, merging direct appointments with specialist referrals.
type ConflictResolver struct {
	appointments AppointmentRepository
	referrals    ReferralRepository
	policy       FetchErrorPolicy
	logger       zerolog.Logger
}

func NewConflictResolver(appointments AppointmentRepository, referrals ReferralRepository, policy FetchErrorPolicy, logger zerolog.Logger) *ConflictResolver {
	return &ConflictResolver{
		appointments: appointments,
		referrals:    referrals,
		policy:       policy,
		logger:       logger,
	}
}

// BookedMinutes returns the occupied times keyed by minutes since midnight.
// Appointments count unless cancelled; referrals count while pending,
// confirmed, or completed, and are only consulted for specialists —
// generalists are not referral targets. The result is a set; callers only
// test membership.
func (r *ConflictResolver) BookedMinutes(ctx context.Context, doctorID uuid.UUID, date time.Time, isSpecialist bool) (map[int]bool, error) {
	booked := make(map[int]bool)

	appointments, err := r.appointments.ListByDoctorDate(ctx, doctorID, date)
	if err != nil {
		if failure := r.onFetchError(doctorID, date, "appointments", err); failure != nil {
			return nil, failure
		}
		appointments = nil
	}
	for _, a := range appointments {
		if !a.CountsAsBooked() {
			continue
		}
		r.mark(booked, a.TimeLabel, doctorID)
	}

	if !isSpecialist {
		return booked, nil
	}

	referrals, err := r.referrals.ListBySpecialistDate(ctx, doctorID, date)
	if err != nil {
		if failure := r.onFetchError(doctorID, date, "referrals", err); failure != nil {
			return nil, failure
		}
		referrals = nil
	}
	for _, ref := range referrals {
		if !ref.CountsAsBooked() {
			continue
		}
		r.mark(booked, ref.TimeLabel, doctorID)
	}

	return booked, nil
}

func (r *ConflictResolver) mark(booked map[int]bool, label string, doctorID uuid.UUID) {
	minutes, err := ParseLabel(label)
	if err != nil {
		r.logger.Warn().
			Str("doctor_id", doctorID.String()).
			Str("time", label).
			Msg("ignoring booking with malformed time label")
		return
	}
	booked[minutes] = true
}

func (r *ConflictResolver) onFetchError(doctorID uuid.UUID, date time.Time, source string, err error) error {
	if r.policy == FailOpen {
		r.logger.Warn().
			Err(err).
			Str("doctor_id", doctorID.String()).
			Str("date", date.Format("2006-01-02")).
			Str("source", source).
			Msg("booking fetch failed, treating as unbooked (fail-open)")
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrBookingFetch, source, err)
}

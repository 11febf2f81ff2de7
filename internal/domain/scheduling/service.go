package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service is the booking-facing surface over the availability engine and
// the repositories. All slot-state decisions go through ComputeAvailability
// so the four former per-screen variants of this logic share one path.
type Service struct {
	doctors      DoctorRepository
	appointments AppointmentRepository
	referrals    ReferralRepository
	clinics      ClinicRepository
	adapter      *ScheduleAdapter
	engine       *Engine
	logger       zerolog.Logger
	now          func() time.Time
}

func NewService(
	doctors DoctorRepository,
	schedules ScheduleRepository,
	appointments AppointmentRepository,
	referrals ReferralRepository,
	clinics ClinicRepository,
	policy FetchErrorPolicy,
	logger zerolog.Logger,
) *Service {
	adapter := NewScheduleAdapter(schedules, logger)
	conflicts := NewConflictResolver(appointments, referrals, policy, logger)
	return &Service{
		doctors:      doctors,
		appointments: appointments,
		referrals:    referrals,
		clinics:      clinics,
		adapter:      adapter,
		engine:       NewEngine(adapter, conflicts, logger),
		logger:       logger,
		now:          time.Now,
	}
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	return s.clinics.GetByID(ctx, id)
}

// Availability returns the annotated slot list for a doctor and date.
func (s *Service) Availability(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]Slot, error) {
	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return s.engine.ComputeAvailability(ctx, doctor, date)
}

// BookableDates returns the dates within the rolling horizon on which the
// doctor works, for both generalists and specialists.
func (s *Service) BookableDates(ctx context.Context, doctorID uuid.UUID) ([]time.Time, error) {
	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	weekdays, err := s.adapter.AvailableWeekdays(ctx, doctor, today)
	if err != nil {
		return nil, err
	}

	var window DateWindow
	window.SetWeekdays(weekdays)
	return window.Filter(Horizon(today)), nil
}

// checkSlotFree recomputes availability and verifies the requested time is
// offered and free. The booking write itself is a single atomic call; this
// check closes the window on a user selecting a slot that was taken while
// their screen was stale.
func (s *Service) checkSlotFree(ctx context.Context, doctor *Doctor, date time.Time, label string) (string, error) {
	minutes, err := ParseLabel(label)
	if err != nil {
		return "", fmt.Errorf("invalid appointment time: %w", err)
	}

	slots, err := s.engine.ComputeAvailability(ctx, doctor, date)
	if err != nil {
		return "", err
	}
	for _, slot := range slots {
		if slot.Minutes != minutes {
			continue
		}
		if slot.IsBooked {
			return "", fmt.Errorf("%w: %s", ErrSlotTaken, slot.Time)
		}
		return slot.Time, nil
	}
	return "", fmt.Errorf("%w: %s", ErrSlotNotOffered, FormatLabel(minutes))
}

// BookAppointment creates a direct appointment after verifying the slot is
// still free. The stored time label is normalized to the canonical display
// form.
func (s *Service) BookAppointment(ctx context.Context, a *Appointment) error {
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("appointment_date is required")
	}

	doctor, err := s.doctors.GetByID(ctx, a.DoctorID)
	if err != nil {
		return err
	}

	label, err := s.checkSlotFree(ctx, doctor, a.Date, a.TimeLabel)
	if err != nil {
		return err
	}
	a.TimeLabel = label
	a.Date = DateOnly(a.Date)
	if a.Status == "" {
		a.Status = AppointmentStatusPending
	}
	if !validAppointmentStatuses[a.Status] {
		return fmt.Errorf("invalid appointment status: %s", a.Status)
	}
	return s.appointments.Create(ctx, a)
}

// BookReferral creates a referral against a specialist after verifying the
// slot is still free.
func (s *Service) BookReferral(ctx context.Context, r *Referral) error {
	if r.AssignedSpecialistID == uuid.Nil {
		return fmt.Errorf("assigned_specialist_id is required")
	}
	if r.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("appointment_date is required")
	}

	doctor, err := s.doctors.GetByID(ctx, r.AssignedSpecialistID)
	if err != nil {
		return err
	}
	if !doctor.IsSpecialist {
		return ErrNotSpecialist
	}

	label, err := s.checkSlotFree(ctx, doctor, r.Date, r.TimeLabel)
	if err != nil {
		return err
	}
	r.TimeLabel = label
	r.Date = DateOnly(r.Date)
	if r.Status == "" {
		r.Status = ReferralStatusPending
	}
	if !validReferralStatuses[r.Status] {
		return fmt.Errorf("invalid referral status: %s", r.Status)
	}
	return s.referrals.Create(ctx, r)
}

var validAppointmentStatuses = map[string]bool{
	AppointmentStatusPending: true, AppointmentStatusConfirmed: true,
	AppointmentStatusCompleted: true, AppointmentStatusCancelled: true,
}

var validReferralStatuses = map[string]bool{
	ReferralStatusPending: true, ReferralStatusConfirmed: true,
	ReferralStatusCompleted: true, ReferralStatusDeclined: true,
	ReferralStatusCancelled: true,
}

// CancelAppointment marks an appointment cancelled, freeing its slot.
func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.appointments.GetByID(ctx, id); err != nil {
		return err
	}
	return s.appointments.UpdateStatus(ctx, id, AppointmentStatusCancelled)
}

// UpdateReferralStatus moves a referral through its lifecycle.
func (s *Service) UpdateReferralStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validReferralStatuses[status] {
		return fmt.Errorf("invalid referral status: %s", status)
	}
	if _, err := s.referrals.GetByID(ctx, id); err != nil {
		return err
	}
	return s.referrals.UpdateStatus(ctx, id, status)
}

// ListDoctorAppointments returns a doctor's appointments, newest date first.
func (s *Service) ListDoctorAppointments(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByDoctor(ctx, doctorID, limit, offset)
}

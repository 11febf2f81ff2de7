package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var testLogger = zerolog.Nop()

// -- Mock Repositories --

type mockDoctorRepo struct {
	doctors map[uuid.UUID]*Doctor
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockDoctorRepo) add(d *Doctor) *Doctor {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	m.doctors[d.ID] = d
	return d
}

func (m *mockDoctorRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	return d, nil
}

type mockScheduleRepo struct {
	schedules map[uuid.UUID][]*SpecialistSchedule
	err       error
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[uuid.UUID][]*SpecialistSchedule)}
}

func (m *mockScheduleRepo) add(s *SpecialistSchedule) *SpecialistSchedule {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.schedules[s.SpecialistID] = append(m.schedules[s.SpecialistID], s)
	return s
}

func (m *mockScheduleRepo) ListBySpecialist(_ context.Context, specialistID uuid.UUID) ([]*SpecialistSchedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.schedules[specialistID], nil
}

type mockAppointmentRepo struct {
	appointments map[uuid.UUID]*Appointment
	err          error
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{appointments: make(map[uuid.UUID]*Appointment)}
}

func (m *mockAppointmentRepo) add(a *Appointment) *Appointment {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.appointments[a.ID] = a
	return a
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *Appointment) error {
	if m.err != nil {
		return m.err
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	m.appointments[a.ID] = a
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return a, nil
}

func (m *mockAppointmentRepo) ListByDoctorDate(_ context.Context, doctorID uuid.UUID, date time.Time) ([]*Appointment, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*Appointment
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && SameDate(a.Date, date) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockAppointmentRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var result []*Appointment
	for _, a := range m.appointments {
		if a.DoctorID == doctorID {
			result = append(result, a)
		}
	}
	return result, len(result), nil
}

func (m *mockAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	a, ok := m.appointments[id]
	if !ok {
		return ErrAppointmentNotFound
	}
	a.Status = status
	return nil
}

type mockReferralRepo struct {
	referrals map[uuid.UUID]*Referral
	err       error
}

func newMockReferralRepo() *mockReferralRepo {
	return &mockReferralRepo{referrals: make(map[uuid.UUID]*Referral)}
}

func (m *mockReferralRepo) add(r *Referral) *Referral {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.referrals[r.ID] = r
	return r
}

func (m *mockReferralRepo) Create(_ context.Context, r *Referral) error {
	if m.err != nil {
		return m.err
	}
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	m.referrals[r.ID] = r
	return nil
}

func (m *mockReferralRepo) GetByID(_ context.Context, id uuid.UUID) (*Referral, error) {
	r, ok := m.referrals[id]
	if !ok {
		return nil, ErrReferralNotFound
	}
	return r, nil
}

func (m *mockReferralRepo) ListBySpecialistDate(_ context.Context, specialistID uuid.UUID, date time.Time) ([]*Referral, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*Referral
	for _, r := range m.referrals {
		if r.AssignedSpecialistID == specialistID && SameDate(r.Date, date) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockReferralRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r, ok := m.referrals[id]
	if !ok {
		return ErrReferralNotFound
	}
	r.Status = status
	return nil
}

type mockClinicRepo struct {
	clinics map[uuid.UUID]*Clinic
}

func newMockClinicRepo() *mockClinicRepo {
	return &mockClinicRepo{clinics: make(map[uuid.UUID]*Clinic)}
}

func (m *mockClinicRepo) add(c *Clinic) *Clinic {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.clinics[c.ID] = c
	return c
}

func (m *mockClinicRepo) GetByID(_ context.Context, id uuid.UUID) (*Clinic, error) {
	c, ok := m.clinics[id]
	if !ok {
		return nil, ErrClinicNotFound
	}
	return c, nil
}

// -- Fixtures --

// weekdayOnly builds a weekly schedule with one enabled day and range.
func weekdayOnly(day, start, end string) WeeklySchedule {
	return WeeklySchedule{
		day: DaySchedule{
			Enabled:   true,
			TimeSlots: []TimeRange{{StartTime: start, EndTime: end}},
		},
	}
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(fmt.Sprintf("bad test date %q: %v", s, err))
	}
	return t
}

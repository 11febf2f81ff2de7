package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
}

type ScheduleRepository interface {
	ListBySpecialist(ctx context.Context, specialistID uuid.UUID) ([]*SpecialistSchedule, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListByDoctorDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type ReferralRepository interface {
	Create(ctx context.Context, r *Referral) error
	GetByID(ctx context.Context, id uuid.UUID) (*Referral, error)
	ListBySpecialistDate(ctx context.Context, specialistID uuid.UUID, date time.Time) ([]*Referral, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type ClinicRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Clinic, error)
}

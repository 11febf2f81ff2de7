package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	var (
		d          Doctor
		weeklyJSON []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, specialty, is_specialist, weekly_schedule, clinic_ids, created_at, updated_at
		FROM doctors WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Specialty, &d.IsSpecialist, &weeklyJSON, &d.ClinicIDs, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(weeklyJSON) > 0 {
		if err := json.Unmarshal(weeklyJSON, &d.Weekly); err != nil {
			return nil, fmt.Errorf("decode weekly schedule for doctor %s: %w", id, err)
		}
	}
	return &d, nil
}

// =========== Specialist Schedule Repository ===========

type scheduleRepoPG struct{ pool *pgxpool.Pool }

func NewScheduleRepoPG(pool *pgxpool.Pool) ScheduleRepository { return &scheduleRepoPG{pool: pool} }

func (r *scheduleRepoPG) ListBySpecialist(ctx context.Context, specialistID uuid.UUID) ([]*SpecialistSchedule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, specialist_id, is_active, valid_from, days_of_week, slot_template,
			clinic_id, room_or_unit, created_at, updated_at
		FROM specialist_schedules
		WHERE specialist_id = $1
		ORDER BY created_at ASC`, specialistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*SpecialistSchedule
	for rows.Next() {
		var (
			s            SpecialistSchedule
			days         []int32
			templateJSON []byte
		)
		if err := rows.Scan(&s.ID, &s.SpecialistID, &s.IsActive, &s.ValidFrom, &days, &templateJSON,
			&s.Location.ClinicID, &s.Location.RoomOrUnit, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.DaysOfWeek = make([]int, len(days))
		for i, d := range days {
			s.DaysOfWeek[i] = int(d)
		}
		if len(templateJSON) > 0 {
			if err := json.Unmarshal(templateJSON, &s.SlotTemplate); err != nil {
				return nil, fmt.Errorf("decode slot template for schedule %s: %w", s.ID, err)
			}
		}
		items = append(items, &s)
	}
	return items, rows.Err()
}

// =========== Appointment Repository ===========

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

const appointmentCols = `id, doctor_id, patient_id, appointment_date,
	appointment_time, status, notes, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.Date,
		&a.TimeLabel, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, doctor_id, patient_id, appointment_date,
			appointment_time, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		a.ID, a.DoctorID, a.PatientID, a.Date, a.TimeLabel, a.Status, a.Notes).
		Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := scanAppointment(r.pool.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *appointmentRepoPG) ListByDoctorDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentCols+` FROM appointments
		WHERE doctor_id = $1 AND appointment_date = $2
		ORDER BY appointment_time ASC`, doctorID, DateOnly(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE doctor_id = $1`, doctorID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentCols+` FROM appointments
		WHERE doctor_id = $1
		ORDER BY appointment_date DESC, appointment_time ASC
		LIMIT $2 OFFSET $3`, doctorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *appointmentRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// =========== Referral Repository ===========

type referralRepoPG struct{ pool *pgxpool.Pool }

func NewReferralRepoPG(pool *pgxpool.Pool) ReferralRepository { return &referralRepoPG{pool: pool} }

const referralCols = `id, assigned_specialist_id, referring_doctor_id, patient_id,
	appointment_date, appointment_time, status, reason, created_at, updated_at`

func scanReferral(row pgx.Row) (*Referral, error) {
	var ref Referral
	err := row.Scan(&ref.ID, &ref.AssignedSpecialistID, &ref.ReferringDoctorID, &ref.PatientID,
		&ref.Date, &ref.TimeLabel, &ref.Status, &ref.Reason, &ref.CreatedAt, &ref.UpdatedAt)
	return &ref, err
}

func (r *referralRepoPG) Create(ctx context.Context, ref *Referral) error {
	ref.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO referrals (id, assigned_specialist_id, referring_doctor_id, patient_id,
			appointment_date, appointment_time, status, reason)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		ref.ID, ref.AssignedSpecialistID, ref.ReferringDoctorID, ref.PatientID,
		ref.Date, ref.TimeLabel, ref.Status, ref.Reason).
		Scan(&ref.CreatedAt, &ref.UpdatedAt)
}

func (r *referralRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Referral, error) {
	ref, err := scanReferral(r.pool.QueryRow(ctx,
		`SELECT `+referralCols+` FROM referrals WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReferralNotFound
	}
	if err != nil {
		return nil, err
	}
	return ref, nil
}

func (r *referralRepoPG) ListBySpecialistDate(ctx context.Context, specialistID uuid.UUID, date time.Time) ([]*Referral, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+referralCols+` FROM referrals
		WHERE assigned_specialist_id = $1 AND appointment_date = $2
		ORDER BY appointment_time ASC`, specialistID, DateOnly(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Referral
	for rows.Next() {
		ref, err := scanReferral(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, ref)
	}
	return items, rows.Err()
}

func (r *referralRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE referrals SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReferralNotFound
	}
	return nil
}

// =========== Clinic Repository ===========

type clinicRepoPG struct{ pool *pgxpool.Pool }

func NewClinicRepoPG(pool *pgxpool.Pool) ClinicRepository { return &clinicRepoPG{pool: pool} }

func (r *clinicRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	var cl Clinic
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, address, created_at, updated_at
		FROM clinics WHERE id = $1`, id).
		Scan(&cl.ID, &cl.Name, &cl.Address, &cl.CreatedAt, &cl.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClinicNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

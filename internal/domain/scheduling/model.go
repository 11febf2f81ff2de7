package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a practitioner patients can book against. Generalists carry a
// recurring weekly schedule; specialists carry discrete schedule records
// (see SpecialistSchedule) and an empty Weekly map.
type Doctor struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Specialty    string         `db:"specialty" json:"specialty,omitempty"`
	IsSpecialist bool           `db:"is_specialist" json:"is_specialist"`
	Weekly       WeeklySchedule `db:"weekly_schedule" json:"weekly_schedule,omitempty"`
	ClinicIDs    []uuid.UUID    `db:"clinic_ids" json:"clinic_ids,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// WeeklySchedule maps lowercase day names ("sunday".."saturday") to that
// day's recurring availability.
type WeeklySchedule map[string]DaySchedule

// DaySchedule is one weekday's recurring availability for a generalist.
type DaySchedule struct {
	Enabled   bool        `json:"enabled"`
	TimeSlots []TimeRange `json:"time_slots,omitempty"`
}

// TimeRange is a half-open working window in 24-hour "HH:MM" form.
type TimeRange struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// valid reports whether both endpoints are present and parseable. Ranges
// that fail this check are skipped during expansion rather than aborting it.
func (r TimeRange) valid() bool {
	if r.StartTime == "" || r.EndTime == "" {
		return false
	}
	if _, err := ParseClock(r.StartTime); err != nil {
		return false
	}
	if _, err := ParseClock(r.EndTime); err != nil {
		return false
	}
	return true
}

// hasValidRange reports whether the day contributes availability: it must be
// enabled and have at least one well-formed time range.
func (d DaySchedule) hasValidRange() bool {
	if !d.Enabled {
		return false
	}
	for _, r := range d.TimeSlots {
		if r.valid() {
			return true
		}
	}
	return false
}

// SpecialistSchedule is one recurring booking pattern for a specialist.
// A specialist may hold several, e.g. different clinics on different days.
type SpecialistSchedule struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	SpecialistID uuid.UUID        `db:"specialist_id" json:"specialist_id"`
	IsActive     bool             `db:"is_active" json:"is_active"`
	ValidFrom    time.Time        `db:"valid_from" json:"valid_from"`
	DaysOfWeek   []int            `db:"days_of_week" json:"days_of_week"`
	SlotTemplate []TemplateSlot   `db:"slot_template" json:"slot_template"`
	Location     PracticeLocation `db:"location" json:"location"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

// TemplateSlot is one entry of a specialist's slot template. Template order
// is the order slots are offered in; it is never re-sorted.
type TemplateSlot struct {
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
}

// PracticeLocation scopes a specialist schedule to a clinic room or unit.
type PracticeLocation struct {
	ClinicID   uuid.UUID `json:"clinic_id"`
	RoomOrUnit string    `json:"room_or_unit,omitempty"`
}

// ActiveOn reports whether this schedule applies to the given date: the
// record is active, became valid on or before the date (date-only compare),
// and the date's weekday is in the recurrence.
func (s *SpecialistSchedule) ActiveOn(date time.Time) bool {
	if !s.IsActive {
		return false
	}
	if DateOnly(s.ValidFrom).After(DateOnly(date)) {
		return false
	}
	weekday := int(date.Weekday())
	for _, d := range s.DaysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}

// Appointment statuses.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment is a direct booking against a doctor.
type Appointment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Date      time.Time `db:"appointment_date" json:"appointment_date"`
	TimeLabel string    `db:"appointment_time" json:"appointment_time"`
	Status    string    `db:"status" json:"status"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CountsAsBooked reports whether this appointment occupies its slot.
func (a *Appointment) CountsAsBooked() bool {
	return a.Status != AppointmentStatusCancelled
}

// Referral statuses.
const (
	ReferralStatusPending   = "pending"
	ReferralStatusConfirmed = "confirmed"
	ReferralStatusCompleted = "completed"
	ReferralStatusDeclined  = "declined"
	ReferralStatusCancelled = "cancelled"
)

// Referral is a booking routed to a specialist by another doctor. It shares
// the (doctor, date, time) slot space with direct appointments.
type Referral struct {
	ID                   uuid.UUID `db:"id" json:"id"`
	AssignedSpecialistID uuid.UUID `db:"assigned_specialist_id" json:"assigned_specialist_id"`
	ReferringDoctorID    uuid.UUID `db:"referring_doctor_id" json:"referring_doctor_id"`
	PatientID            uuid.UUID `db:"patient_id" json:"patient_id"`
	Date                 time.Time `db:"appointment_date" json:"appointment_date"`
	TimeLabel            string    `db:"appointment_time" json:"appointment_time"`
	Status               string    `db:"status" json:"status"`
	Reason               *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// CountsAsBooked reports whether this referral occupies its slot.
func (r *Referral) CountsAsBooked() bool {
	switch r.Status {
	case ReferralStatusPending, ReferralStatusConfirmed, ReferralStatusCompleted:
		return true
	}
	return false
}

// Clinic is a practice location, looked up for display only.
type Clinic struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   *string   `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Slot is a derived bookable time unit for one doctor on one date. Minutes
// is the canonical minutes-since-midnight key; Time is the display label,
// produced from Minutes at the boundary.
type Slot struct {
	Time            string `json:"time"`
	Minutes         int    `json:"minutes"`
	DurationMinutes int    `json:"duration_minutes"`
	IsBooked        bool   `json:"is_booked"`
}

// WeekdaySet is a set of weekday indices, 0 = Sunday through 6 = Saturday.
type WeekdaySet [7]bool

// Add marks a weekday as present; out-of-range indices are ignored.
func (w *WeekdaySet) Add(day int) {
	if day >= 0 && day < 7 {
		w[day] = true
	}
}

// Contains reports membership of a weekday index.
func (w WeekdaySet) Contains(day int) bool {
	return day >= 0 && day < 7 && w[day]
}

// IsEmpty reports whether no weekday is present.
func (w WeekdaySet) IsEmpty() bool {
	for _, set := range w {
		if set {
			return false
		}
	}
	return true
}

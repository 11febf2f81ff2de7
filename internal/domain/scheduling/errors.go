package scheduling

import "errors"

// Sentinel errors returned by the availability and booking services.
var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrClinicNotFound      = errors.New("clinic not found")
	ErrNoScheduleForDate   = errors.New("no available schedule for this date")
	ErrScheduleFetch       = errors.New("failed to load schedule data")
	ErrBookingFetch        = errors.New("failed to load booking data")
	ErrSlotNotOffered      = errors.New("slot is not offered on this date")
	ErrSlotTaken           = errors.New("slot is already booked")
	ErrNotSpecialist       = errors.New("doctor is not a specialist")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrReferralNotFound    = errors.New("referral not found")
)

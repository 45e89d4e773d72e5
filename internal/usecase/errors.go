package usecase

import "errors"

// Business outcomes of the booking engine. Handlers switch on these; anything
// else returned by a usecase is an infrastructure failure.
var (
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrDoctorUnavailable   = errors.New("doctor is not available on this date")
	ErrSlotNotOffered      = errors.New("doctor does not offer this time")
	ErrSlotAlreadyTaken    = errors.New("this time slot is already booked")
	ErrPatientDoubleBooked = errors.New("you already have an appointment at this time")
	ErrDoctorMismatch      = errors.New("doctor not found or specialization does not match")
	ErrPastBooking         = errors.New("cannot book a time in the past")
	ErrPastAppointment     = errors.New("cannot cancel an appointment that has already started")
	ErrAlreadyCancelled    = errors.New("appointment is already cancelled")
	ErrAlreadyCompleted    = errors.New("appointment is already completed")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidDate         = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeLabel    = errors.New("invalid time format, use HH:MM")
	ErrInvalidDateRange    = errors.New("from date must not be after to date")
	ErrInvalidStatusFilter = errors.New("status must be one of scheduled, completed, cancelled")
)

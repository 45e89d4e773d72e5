package entity

import "github.com/google/uuid"

// AppointmentFilter is a domain-level filter for listing appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    AppointmentStatus // empty = any
	Date      *Date
}

// ScheduleRange selects a doctor's day schedules between two dates, inclusive.
type ScheduleRange struct {
	DoctorID uuid.UUID
	From     Date
	To       Date
}

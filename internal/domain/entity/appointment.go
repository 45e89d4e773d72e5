package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment is a patient booking of one doctor slot.
//
// Only one scheduled appointment may exist per (doctor, date, time) and per
// (patient, date, time); both rules are enforced by partial unique indexes.
type Appointment struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SpecializationID   uuid.UUID         `gorm:"type:uuid;not null" json:"specialization_id"`
	AppointmentDate    Date              `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime    string            `gorm:"type:varchar(5);not null" json:"appointment_time"`
	Status             AppointmentStatus `gorm:"type:appointment_status;not null;default:'scheduled';index" json:"status"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	Prescription       string            `gorm:"type:text" json:"prescription,omitempty"`
	CancelledBy        *uuid.UUID        `gorm:"type:uuid" json:"cancelled_by,omitempty"`
	CancellationReason string            `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time        `json:"completed_at,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient        *User           `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor         *User           `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Specialization *Specialization `gorm:"foreignKey:SpecializationID" json:"specialization,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if appointment is still active
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCompleted checks if appointment is completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// StartsAt returns the instant the appointment begins in loc.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return a.AppointmentDate.At(a.AppointmentTime, loc)
}

// Cancel moves a scheduled appointment to cancelled.
func (a *Appointment) Cancel(by uuid.UUID, reason string) {
	a.Status = AppointmentStatusCancelled
	a.CancelledBy = &by
	a.CancellationReason = reason
}

// Complete moves a scheduled appointment to completed.
func (a *Appointment) Complete(at time.Time, prescription, notes string) {
	a.Status = AppointmentStatusCompleted
	a.CompletedAt = &at
	a.Prescription = prescription
	a.Notes = notes
}

// OwnedBy reports whether the actor may act on the appointment: a patient owns
// it as the patient, a doctor as the assigned doctor. Other roles never own it.
func (a *Appointment) OwnedBy(actor Actor) bool {
	switch {
	case actor.IsPatient():
		return a.PatientID == actor.ID
	case actor.IsDoctor():
		return a.DoctorID == actor.ID
	default:
		return false
	}
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID         uuid.UUID `json:"doctor_id" validate:"required"`
	SpecializationID uuid.UUID `json:"specialization_id" validate:"required"`
	Date             string    `json:"date" validate:"required,calendar_date"` // Format: YYYY-MM-DD
	Time             string    `json:"time" validate:"required,time_label"`    // Format: HH:MM
	Notes            string    `json:"notes" validate:"omitempty,max=2000"`
}

type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellation_reason" validate:"omitempty,max=500"`
}

type CompleteAppointmentRequest struct {
	Prescription string `json:"prescription" validate:"omitempty,max=5000"`
	Notes        string `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type UserSummaryResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
}

type SpecializationResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type AppointmentResponse struct {
	ID                 uuid.UUID               `json:"id"`
	PatientID          uuid.UUID               `json:"patient_id"`
	DoctorID           uuid.UUID               `json:"doctor_id"`
	SpecializationID   uuid.UUID               `json:"specialization_id"`
	Date               string                  `json:"date"`
	Time               string                  `json:"time"`
	Status             string                  `json:"status"`
	Notes              string                  `json:"notes,omitempty"`
	Prescription       string                  `json:"prescription,omitempty"`
	CancelledBy        *uuid.UUID              `json:"cancelled_by,omitempty"`
	CancellationReason string                  `json:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time              `json:"completed_at,omitempty"`
	Patient            *UserSummaryResponse    `json:"patient,omitempty"`
	Doctor             *UserSummaryResponse    `json:"doctor,omitempty"`
	Specialization     *SpecializationResponse `json:"specialization,omitempty"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

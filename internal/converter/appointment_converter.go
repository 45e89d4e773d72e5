package converter

import (
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		PatientID:          appointment.PatientID,
		DoctorID:           appointment.DoctorID,
		SpecializationID:   appointment.SpecializationID,
		Date:               appointment.AppointmentDate.String(),
		Time:               appointment.AppointmentTime,
		Status:             string(appointment.Status),
		Notes:              appointment.Notes,
		Prescription:       appointment.Prescription,
		CancelledBy:        appointment.CancelledBy,
		CancellationReason: appointment.CancellationReason,
		CompletedAt:        appointment.CompletedAt,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	// Include references if preloaded
	response.Patient = UserToSummary(appointment.Patient)
	response.Doctor = UserToSummary(appointment.Doctor)
	if appointment.Specialization != nil {
		response.Specialization = &dto.SpecializationResponse{
			ID:   appointment.Specialization.ID,
			Name: appointment.Specialization.Name,
		}
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		if resp := AppointmentToResponse(&appointments[i]); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

package handler

import (
	"net/http"

	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
)

// writeUsecaseError renders a business error with its status code. Anything
// not recognised is an infrastructure failure and becomes a 500 with fallback.
func writeUsecaseError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrScheduleNotFound:
		response.NotFound(w, "Schedule not found")
	case usecase.ErrSlotAlreadyTaken,
		usecase.ErrPatientDoubleBooked,
		usecase.ErrAlreadyCancelled,
		usecase.ErrAlreadyCompleted:
		response.Conflict(w, err.Error())
	case usecase.ErrPastBooking,
		usecase.ErrPastAppointment,
		usecase.ErrInvalidDate,
		usecase.ErrInvalidTimeLabel,
		usecase.ErrInvalidDateRange,
		usecase.ErrInvalidStatusFilter:
		response.BadRequest(w, err.Error())
	case usecase.ErrDoctorMismatch,
		usecase.ErrDoctorUnavailable,
		usecase.ErrSlotNotOffered:
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

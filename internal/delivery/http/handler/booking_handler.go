package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/delivery/http/middleware"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
	"clinic-booking-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// BookingHandler serves the patient side of appointments.
type BookingHandler struct {
	bookingUsecase      usecase.BookingUsecase
	cancellationUsecase usecase.CancellationUsecase
	queryUsecase        usecase.AppointmentQueryUsecase
	validator           *validator.CustomValidator
}

func NewBookingHandler(
	bookingUsecase usecase.BookingUsecase,
	cancellationUsecase usecase.CancellationUsecase,
	queryUsecase usecase.AppointmentQueryUsecase,
	validator *validator.CustomValidator,
) *BookingHandler {
	return &BookingHandler{
		bookingUsecase:      bookingUsecase,
		cancellationUsecase: cancellationUsecase,
		queryUsecase:        queryUsecase,
		validator:           validator,
	}
}

func (h *BookingHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.Book(r.Context(), patientID, &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *BookingHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointments, err := h.queryUsecase.ListForPatient(r.Context(), patientID, r.URL.Query().Get("status"))
	if err != nil {
		writeUsecaseError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *BookingHandler) GetMyAppointment(w http.ResponseWriter, r *http.Request) {
	getAppointment(w, r, h.queryUsecase)
}

func (h *BookingHandler) CancelMyAppointment(w http.ResponseWriter, r *http.Request) {
	cancelAppointment(w, r, h.cancellationUsecase, h.validator)
}

// Shared by the patient and doctor routes; ownership is decided by the usecase.

func getAppointment(w http.ResponseWriter, r *http.Request, queryUsecase usecase.AppointmentQueryUsecase) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := queryUsecase.GetForActor(r.Context(), appointmentID, actor)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func cancelAppointment(w http.ResponseWriter, r *http.Request, cancellationUsecase usecase.CancellationUsecase, v *validator.CustomValidator) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	// The body is optional; a bare PUT cancels without a reason.
	var req dto.CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := v.Validate(&req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return
	}

	appointment, err := cancellationUsecase.Cancel(r.Context(), appointmentID, actor, &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

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

// DoctorHandler serves the doctor side of appointments.
type DoctorHandler struct {
	cancellationUsecase usecase.CancellationUsecase
	completionUsecase   usecase.CompletionUsecase
	queryUsecase        usecase.AppointmentQueryUsecase
	validator           *validator.CustomValidator
}

func NewDoctorHandler(
	cancellationUsecase usecase.CancellationUsecase,
	completionUsecase usecase.CompletionUsecase,
	queryUsecase usecase.AppointmentQueryUsecase,
	validator *validator.CustomValidator,
) *DoctorHandler {
	return &DoctorHandler{
		cancellationUsecase: cancellationUsecase,
		completionUsecase:   completionUsecase,
		queryUsecase:        queryUsecase,
		validator:           validator,
	}
}

func (h *DoctorHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	query := r.URL.Query()
	appointments, err := h.queryUsecase.ListForDoctor(r.Context(), doctorID, query.Get("status"), query.Get("date"))
	if err != nil {
		writeUsecaseError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *DoctorHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	getAppointment(w, r, h.queryUsecase)
}

func (h *DoctorHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	cancelAppointment(w, r, h.cancellationUsecase, h.validator)
}

func (h *DoctorHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.CompleteAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.completionUsecase.Complete(r.Context(), appointmentID, doctorID, &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to complete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", appointment)
}

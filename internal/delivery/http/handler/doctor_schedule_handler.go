package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/delivery/http/middleware"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
	"clinic-booking-service/pkg/validator"
)

type DoctorScheduleHandler struct {
	scheduleUsecase usecase.DoctorScheduleUsecase
	validator       *validator.CustomValidator
}

func NewDoctorScheduleHandler(scheduleUsecase usecase.DoctorScheduleUsecase, validator *validator.CustomValidator) *DoctorScheduleHandler {
	return &DoctorScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

func (h *DoctorScheduleHandler) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.SaveScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.SaveSchedule(r.Context(), doctorID, &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to save schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule saved successfully", schedule)
}

func (h *DoctorScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	schedule, err := h.scheduleUsecase.GetSchedule(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		writeUsecaseError(w, err, "Failed to get schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

func (h *DoctorScheduleHandler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	query := r.URL.Query()
	schedules, err := h.scheduleUsecase.ListSchedules(r.Context(), doctorID, query.Get("from"), query.Get("to"))
	if err != nil {
		writeUsecaseError(w, err, "Failed to get schedules")
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

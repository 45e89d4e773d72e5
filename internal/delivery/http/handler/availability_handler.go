package handler

import (
	"net/http"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUsecase: availabilityUsecase}
}

// GetAvailability lists the free slots of a doctor on a date. A date the
// doctor never published is reported as having no slots.
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required")
		return
	}

	availability, err := h.availabilityUsecase.Resolve(r.Context(), doctorID, date)
	if err == usecase.ErrScheduleNotFound {
		availability = &dto.AvailabilityResponse{DoctorID: doctorID, Date: date, Slots: []string{}}
		err = nil
	}
	if err != nil {
		writeUsecaseError(w, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

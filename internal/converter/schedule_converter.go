package converter

import (
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
)

// ScheduleToResponse converts a DaySchedule entity to ScheduleResponse DTO
func ScheduleToResponse(schedule *entity.DaySchedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	times := []string(schedule.AvailableTimes)
	if times == nil {
		times = []string{}
	}

	response := &dto.ScheduleResponse{
		ID:             schedule.ID,
		DoctorID:       schedule.DoctorID,
		Date:           schedule.ScheduleDate.String(),
		IsWorkingDay:   schedule.IsWorkingDay,
		AvailableTimes: times,
	}
	if !schedule.CreatedAt.IsZero() {
		createdAt := schedule.CreatedAt
		response.CreatedAt = &createdAt
	}
	if !schedule.UpdatedAt.IsZero() {
		updatedAt := schedule.UpdatedAt
		response.UpdatedAt = &updatedAt
	}

	return response
}

// SchedulesToResponses converts a slice of DaySchedule entities to slice of ScheduleResponse DTOs
func SchedulesToResponses(schedules []entity.DaySchedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *ScheduleToResponse(&schedules[i])
	}
	return responses
}

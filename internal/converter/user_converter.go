package converter

import (
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
)

// UserToSummary converts a preloaded User to the contact summary embedded in
// appointment responses. Returns nil when the relation was not loaded.
func UserToSummary(user *entity.User) *dto.UserSummaryResponse {
	if user == nil {
		return nil
	}
	return &dto.UserSummaryResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Phone:    user.Phone,
	}
}

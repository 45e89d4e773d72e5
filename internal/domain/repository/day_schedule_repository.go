package repository

import (
	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DayScheduleRepository interface {
	// Upsert writes the schedule for (doctor, date); the last writer wins.
	Upsert(db *gorm.DB, schedule *entity.DaySchedule) error
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date entity.Date) (*entity.DaySchedule, error)
	FindInRange(db *gorm.DB, scheduleRange entity.ScheduleRange) ([]entity.DaySchedule, error)
}

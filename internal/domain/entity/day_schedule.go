package entity

import (
	"time"

	"github.com/google/uuid"
)

// DaySchedule is a doctor's published availability for one calendar date.
// One row per (doctor, date); upserted by the owning doctor and never deleted.
type DaySchedule struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_day_schedules_doctor_date" json:"doctor_id"`
	ScheduleDate   Date       `gorm:"type:date;not null;uniqueIndex:uq_day_schedules_doctor_date" json:"schedule_date"`
	IsWorkingDay   bool       `gorm:"not null" json:"is_working_day"`
	AvailableTimes TimeLabels `gorm:"type:jsonb;not null" json:"available_times"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DaySchedule) TableName() string {
	return "day_schedules"
}

// Offers reports whether the label is bookable on this day.
func (s *DaySchedule) Offers(label string) bool {
	return s.IsWorkingDay && s.AvailableTimes.Contains(label)
}

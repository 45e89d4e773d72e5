package repository

import (
	"errors"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dayScheduleRepository struct{}

func NewDayScheduleRepository() domainRepo.DayScheduleRepository {
	return &dayScheduleRepository{}
}

func (r *dayScheduleRepository) Upsert(db *gorm.DB, schedule *entity.DaySchedule) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "schedule_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_working_day", "available_times", "updated_at"}),
	}).Create(schedule).Error
}

func (r *dayScheduleRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date entity.Date) (*entity.DaySchedule, error) {
	var schedule entity.DaySchedule
	err := db.Where("doctor_id = ? AND schedule_date = ?", doctorID, date).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *dayScheduleRepository) FindInRange(db *gorm.DB, scheduleRange entity.ScheduleRange) ([]entity.DaySchedule, error) {
	var schedules []entity.DaySchedule
	err := db.Where("doctor_id = ? AND schedule_date >= ? AND schedule_date <= ?",
		scheduleRange.DoctorID, scheduleRange.From, scheduleRange.To).
		Order("schedule_date ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

package repository

import (
	"errors"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conflict signals raised by Create when a uniqueness rule rejects the insert.
var (
	ErrDoctorSlotConflict  = errors.New("doctor already has a scheduled appointment at this time")
	ErrPatientSlotConflict = errors.New("patient already has a scheduled appointment at this time")
)

type AppointmentRepository interface {
	// Create inserts a scheduled appointment. It is the serialization point for
	// booking: a concurrent conflicting insert fails with ErrDoctorSlotConflict
	// or ErrPatientSlotConflict.
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindScheduledByPatientSlot(db *gorm.DB, patientID uuid.UUID, date entity.Date, time string) (*entity.Appointment, error)
	ScheduledTimes(db *gorm.DB, doctorID uuid.UUID, date entity.Date) ([]string, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// Transition applies the status change carried by appointment only if the
	// stored row is still scheduled. Returns affected rows: 1 = applied, 0 = lost race.
	Transition(db *gorm.DB, appointment *entity.Appointment) (int64, error)
}

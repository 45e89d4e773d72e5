package repository

import (
	"errors"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Partial unique indexes created by the migrations; both only cover status = 'scheduled'.
const (
	DoctorSlotConstraint  = "uq_appointments_doctor_slot_scheduled"
	PatientSlotConstraint = "uq_appointments_patient_slot_scheduled"

	sqlStateUniqueViolation = "23505"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	err := db.Omit(clause.Associations).Create(appointment).Error
	return TranslateSlotConflict(err)
}

// TranslateSlotConflict maps a unique violation on one of the slot indexes to
// the matching domain conflict. Any other error is returned unchanged.
func TranslateSlotConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != sqlStateUniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case DoctorSlotConstraint:
		return domainRepo.ErrDoctorSlotConflict
	case PatientSlotConstraint:
		return domainRepo.ErrPatientSlotConflict
	default:
		return err
	}
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").Preload("Specialization").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindScheduledByPatientSlot(db *gorm.DB, patientID uuid.UUID, date entity.Date, time string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("patient_id = ? AND appointment_date = ? AND appointment_time = ? AND status = ?",
		patientID, date, time, entity.AppointmentStatusScheduled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) ScheduledTimes(db *gorm.DB, doctorID uuid.UUID, date entity.Date) ([]string, error) {
	var times []string
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status = ?", doctorID, date, entity.AppointmentStatusScheduled).
		Pluck("appointment_time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

// FindAll lists appointments matching the filter. Patient listings are newest
// first; doctor listings run in calendar order.
func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Doctor").Preload("Patient").Preload("Specialization")
	order := "appointment_date ASC, appointment_time ASC"

	if filter != nil {
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
			order = "appointment_date DESC, appointment_time DESC"
		}
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Date != nil {
			query = query.Where("appointment_date = ?", *filter.Date)
		}
	}

	if err := query.Order(order).Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// Transition atomically moves a scheduled appointment to the status carried by
// appointment. The status guard in the WHERE clause makes this a compare-and-set:
// 1 = applied, 0 = the row already left the scheduled state.
func (r *appointmentRepository) Transition(db *gorm.DB, appointment *entity.Appointment) (int64, error) {
	updates := map[string]interface{}{
		"status": appointment.Status,
	}
	switch appointment.Status {
	case entity.AppointmentStatusCancelled:
		updates["cancelled_by"] = appointment.CancelledBy
		updates["cancellation_reason"] = appointment.CancellationReason
	case entity.AppointmentStatusCompleted:
		updates["completed_at"] = appointment.CompletedAt
		updates["prescription"] = appointment.Prescription
		updates["notes"] = appointment.Notes
	}

	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", appointment.ID, entity.AppointmentStatusScheduled).
		Updates(updates)
	return result.RowsAffected, result.Error
}

package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/infrastructure/database"
	"clinic-booking-service/internal/service"
	"clinic-booking-service/pkg/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BookingUsecase interface {
	Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
}

type bookingUsecase struct {
	tx              database.TxManager
	log             *logrus.Logger
	clock           clock.Clock
	loc             *time.Location
	doctorRepo      repository.DoctorProfileRepository
	scheduleRepo    repository.DayScheduleRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	effects         postCommit
}

func NewBookingUsecase(
	tx database.TxManager,
	log *logrus.Logger,
	clk clock.Clock,
	loc *time.Location,
	doctorRepo repository.DoctorProfileRepository,
	scheduleRepo repository.DayScheduleRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	cache service.AvailabilityCache,
	publisher service.EventPublisher,
) BookingUsecase {
	return &bookingUsecase{
		tx:              tx,
		log:             log,
		clock:           clk,
		loc:             loc,
		doctorRepo:      doctorRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		effects:         postCommit{log: log, cache: cache, publisher: publisher},
	}
}

// Book reserves a doctor's time for a patient.
//
// Flow:
// 1. Doctor must be active and practise the requested specialization
// 2. The slot must not be in the past
// 3. Patient must not already hold a scheduled appointment at that time
// 4. Doctor must have published a working day for the date
// 5. The time must be one the doctor offers
// 6. Insert inside a transaction; the slot unique indexes settle any race
func (u *bookingUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	label, err := entity.NormalizeTimeLabel(req.Time)
	if err != nil {
		return nil, ErrInvalidTimeLabel
	}

	db := u.tx.Conn(ctx)

	// Step 1: doctor and specialization
	doctor, err := u.doctorRepo.FindByUserID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.Practices(req.SpecializationID) {
		return nil, ErrDoctorMismatch
	}

	// Step 2: not in the past
	startsAt, err := date.At(label, u.loc)
	if err != nil {
		return nil, ErrInvalidTimeLabel
	}
	if startsAt.Before(u.clock.Now()) {
		return nil, ErrPastBooking
	}

	// Step 3: patient is free at that time
	existing, err := u.appointmentRepo.FindScheduledByPatientSlot(db, patientID, date, label)
	if err != nil {
		u.log.Warnf("Failed to check existing appointment for patient %s: %+v", patientID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPatientDoubleBooked
	}

	// Step 4: doctor works that day
	schedule, err := u.scheduleRepo.FindByDoctorAndDate(db, req.DoctorID, date)
	if err != nil {
		u.log.Warnf("Failed to find schedule for doctor %s on %s: %+v", req.DoctorID, date, err)
		return nil, err
	}
	if schedule == nil || !schedule.IsWorkingDay {
		return nil, ErrDoctorUnavailable
	}

	// Step 5: time is offered
	if !schedule.Offers(label) {
		return nil, ErrSlotNotOffered
	}

	// Step 6: constrained insert
	appointment := &entity.Appointment{
		ID:               uuid.New(),
		PatientID:        patientID,
		DoctorID:         req.DoctorID,
		SpecializationID: req.SpecializationID,
		AppointmentDate:  date,
		AppointmentTime:  label,
		Status:           entity.AppointmentStatusScheduled,
		Notes:            req.Notes,
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentBook,
			"appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment))
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDoctorSlotConflict):
			return nil, ErrSlotAlreadyTaken
		case errors.Is(err, repository.ErrPatientSlotConflict):
			return nil, ErrPatientDoubleBooked
		}
		u.log.Errorf("Failed to create appointment for patient %s: %+v", patientID, err)
		return nil, err
	}

	u.effects.run(appointment.DoctorID, appointment.AppointmentDate,
		service.AppointmentEvent(service.EventAppointmentBooked, patientID, appointment, u.clock.Now()))

	return u.reload(db, appointment, doctor), nil
}

// reload fetches the committed row with its references. The insert already
// succeeded, so a failed read falls back to the in-memory copy.
func (u *bookingUsecase) reload(db *gorm.DB, appointment *entity.Appointment, doctor *entity.DoctorProfile) *dto.AppointmentResponse {
	full, err := u.appointmentRepo.FindByID(db, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		full = appointment
		full.Doctor = &doctor.User
		full.Specialization = &doctor.Specialization
	}
	return converter.AppointmentToResponse(full)
}

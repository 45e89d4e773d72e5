package usecase

import (
	"context"
	"errors"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/infrastructure/database"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var errTransitionLost = errors.New("appointment left the scheduled state concurrently")

// terminalStateError maps a non-scheduled appointment to its business error.
func terminalStateError(appointment *entity.Appointment) error {
	switch {
	case appointment.IsCancelled():
		return ErrAlreadyCancelled
	case appointment.IsCompleted():
		return ErrAlreadyCompleted
	default:
		return nil
	}
}

// appointmentTransition persists a status change already applied to the
// in-memory appointment. The update only lands if the row is still scheduled.
type appointmentTransition struct {
	tx              database.TxManager
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func (t appointmentTransition) apply(ctx context.Context, appointment *entity.Appointment, previous entity.AppointmentStatus, actorID uuid.UUID, action string) error {
	oldValue := map[string]interface{}{"status": previous}

	err := t.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		affected, err := t.appointmentRepo.Transition(tx, appointment)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errTransitionLost
		}
		return t.auditService.LogUpdate(ctx, tx, &actorID, action,
			"appointment", appointment.ID.String(), oldValue, converter.AppointmentToResponse(appointment))
	})
	if err == nil {
		return nil
	}

	if !errors.Is(err, errTransitionLost) {
		t.log.Errorf("Failed to transition appointment %s to %s: %+v", appointment.ID, appointment.Status, err)
		return err
	}

	// Another request moved the row first; report what it became.
	current, err := t.appointmentRepo.FindByID(t.tx.Conn(ctx), appointment.ID)
	if err != nil {
		t.log.Warnf("Failed to re-read appointment %s: %+v", appointment.ID, err)
		return err
	}
	if current == nil {
		return ErrAppointmentNotFound
	}
	if stateErr := terminalStateError(current); stateErr != nil {
		return stateErr
	}
	return ErrAlreadyCancelled
}

// reload returns the committed row, or the in-memory copy if the read fails.
func (t appointmentTransition) reload(ctx context.Context, appointment *entity.Appointment) *entity.Appointment {
	full, err := t.appointmentRepo.FindByID(t.tx.Conn(ctx), appointment.ID)
	if err != nil || full == nil {
		t.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return appointment
	}
	return full
}

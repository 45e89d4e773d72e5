package usecase

import (
	"context"
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
)

type CancellationUsecase interface {
	Cancel(ctx context.Context, appointmentID uuid.UUID, actor entity.Actor, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
}

type cancellationUsecase struct {
	log             *logrus.Logger
	clock           clock.Clock
	loc             *time.Location
	appointmentRepo repository.AppointmentRepository
	transition      appointmentTransition
	effects         postCommit
}

func NewCancellationUsecase(
	tx database.TxManager,
	log *logrus.Logger,
	clk clock.Clock,
	loc *time.Location,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	cache service.AvailabilityCache,
	publisher service.EventPublisher,
) CancellationUsecase {
	return &cancellationUsecase{
		log:             log,
		clock:           clk,
		loc:             loc,
		appointmentRepo: appointmentRepo,
		transition: appointmentTransition{
			tx:              tx,
			log:             log,
			appointmentRepo: appointmentRepo,
			auditService:    auditService,
		},
		effects: postCommit{log: log, cache: cache, publisher: publisher},
	}
}

// Cancel frees the slot held by a scheduled appointment. Patients and doctors
// may only cancel their own appointments, and only before they start.
func (u *cancellationUsecase) Cancel(ctx context.Context, appointmentID uuid.UUID, actor entity.Actor, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.transition.tx.Conn(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil || !appointment.OwnedBy(actor) {
		return nil, ErrAppointmentNotFound
	}

	if stateErr := terminalStateError(appointment); stateErr != nil {
		return nil, stateErr
	}

	startsAt, err := appointment.StartsAt(u.loc)
	if err != nil {
		u.log.Warnf("Appointment %s has a malformed time %q: %+v", appointment.ID, appointment.AppointmentTime, err)
		return nil, err
	}
	if startsAt.Before(u.clock.Now()) {
		return nil, ErrPastAppointment
	}

	reason := ""
	if req != nil {
		reason = req.CancellationReason
	}

	previous := appointment.Status
	appointment.Cancel(actor.ID, reason)

	if err := u.transition.apply(ctx, appointment, previous, actor.ID, entity.AuditActionAppointmentCancel); err != nil {
		return nil, err
	}

	u.effects.run(appointment.DoctorID, appointment.AppointmentDate,
		service.AppointmentEvent(service.EventAppointmentCancelled, actor.ID, appointment, u.clock.Now()))

	return converter.AppointmentToResponse(u.transition.reload(ctx, appointment)), nil
}

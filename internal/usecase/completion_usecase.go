package usecase

import (
	"context"

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

type CompletionUsecase interface {
	Complete(ctx context.Context, appointmentID uuid.UUID, doctorID uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error)
}

type completionUsecase struct {
	log             *logrus.Logger
	clock           clock.Clock
	appointmentRepo repository.AppointmentRepository
	transition      appointmentTransition
	effects         postCommit
}

func NewCompletionUsecase(
	tx database.TxManager,
	log *logrus.Logger,
	clk clock.Clock,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	cache service.AvailabilityCache,
	publisher service.EventPublisher,
) CompletionUsecase {
	return &completionUsecase{
		log:             log,
		clock:           clk,
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

// Complete records the outcome of a visit. Only the assigned doctor may do it.
func (u *completionUsecase) Complete(ctx context.Context, appointmentID uuid.UUID, doctorID uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.transition.tx.Conn(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil || appointment.DoctorID != doctorID {
		return nil, ErrAppointmentNotFound
	}

	if stateErr := terminalStateError(appointment); stateErr != nil {
		return nil, stateErr
	}

	prescription, notes := "", appointment.Notes
	if req != nil {
		prescription = req.Prescription
		if req.Notes != "" {
			notes = req.Notes
		}
	}

	previous := appointment.Status
	appointment.Complete(u.clock.Now().UTC(), prescription, notes)

	if err := u.transition.apply(ctx, appointment, previous, doctorID, entity.AuditActionAppointmentComplete); err != nil {
		return nil, err
	}

	u.effects.run(appointment.DoctorID, appointment.AppointmentDate,
		service.AppointmentEvent(service.EventAppointmentCompleted, doctorID, appointment, u.clock.Now()))

	return converter.AppointmentToResponse(u.transition.reload(ctx, appointment)), nil
}

package usecase

import (
	"context"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AppointmentQueryUsecase interface {
	ListForPatient(ctx context.Context, patientID uuid.UUID, status string) (*dto.AppointmentListResponse, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID, status string, date string) (*dto.AppointmentListResponse, error)
	GetForActor(ctx context.Context, appointmentID uuid.UUID, actor entity.Actor) (*dto.AppointmentResponse, error)
}

type appointmentQueryUsecase struct {
	tx              database.TxManager
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
}

func NewAppointmentQueryUsecase(
	tx database.TxManager,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
) AppointmentQueryUsecase {
	return &appointmentQueryUsecase{
		tx:              tx,
		log:             log,
		appointmentRepo: appointmentRepo,
	}
}

// ListForPatient returns the patient's appointments, newest first.
func (u *appointmentQueryUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID, status string) (*dto.AppointmentListResponse, error) {
	filter := &entity.AppointmentFilter{PatientID: &patientID}
	if err := applyStatusFilter(filter, status); err != nil {
		return nil, err
	}
	return u.list(ctx, filter)
}

// ListForDoctor returns the doctor's appointments in calendar order.
func (u *appointmentQueryUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID, status string, date string) (*dto.AppointmentListResponse, error) {
	filter := &entity.AppointmentFilter{DoctorID: &doctorID}
	if err := applyStatusFilter(filter, status); err != nil {
		return nil, err
	}
	if date != "" {
		day, err := entity.ParseDate(date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		filter.Date = &day
	}
	return u.list(ctx, filter)
}

func (u *appointmentQueryUsecase) GetForActor(ctx context.Context, appointmentID uuid.UUID, actor entity.Actor) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.tx.Conn(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil || !appointment.OwnedBy(actor) {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentQueryUsecase) list(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.tx.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func applyStatusFilter(filter *entity.AppointmentFilter, status string) error {
	if status == "" {
		return nil
	}
	s := entity.AppointmentStatus(status)
	if !s.Valid() {
		return ErrInvalidStatusFilter
	}
	filter.Status = s
	return nil
}

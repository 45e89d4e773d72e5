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
	"gorm.io/gorm"
)

// defaultScheduleWindow is the number of days listed when no end date is given.
const defaultScheduleWindow = 7

type DoctorScheduleUsecase interface {
	SaveSchedule(ctx context.Context, doctorID uuid.UUID, req *dto.SaveScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, doctorID uuid.UUID, date string) (*dto.ScheduleResponse, error)
	ListSchedules(ctx context.Context, doctorID uuid.UUID, from, to string) (*dto.ScheduleListResponse, error)
}

type doctorScheduleUsecase struct {
	tx           database.TxManager
	log          *logrus.Logger
	clock        clock.Clock
	loc          *time.Location
	scheduleRepo repository.DayScheduleRepository
	auditService service.AuditService
	effects      postCommit
}

func NewDoctorScheduleUsecase(
	tx database.TxManager,
	log *logrus.Logger,
	clk clock.Clock,
	loc *time.Location,
	scheduleRepo repository.DayScheduleRepository,
	auditService service.AuditService,
	cache service.AvailabilityCache,
	publisher service.EventPublisher,
) DoctorScheduleUsecase {
	return &doctorScheduleUsecase{
		tx:           tx,
		log:          log,
		clock:        clk,
		loc:          loc,
		scheduleRepo: scheduleRepo,
		auditService: auditService,
		effects:      postCommit{log: log, cache: cache, publisher: publisher},
	}
}

// SaveSchedule publishes the doctor's availability for one date, replacing
// whatever was there. Existing appointments are left untouched even when their
// time is no longer offered.
func (u *doctorScheduleUsecase) SaveSchedule(ctx context.Context, doctorID uuid.UUID, req *dto.SaveScheduleRequest) (*dto.ScheduleResponse, error) {
	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	times, err := entity.NormalizeTimeLabels(req.AvailableTimes)
	if err != nil {
		return nil, ErrInvalidTimeLabel
	}

	schedule := &entity.DaySchedule{
		DoctorID:       doctorID,
		ScheduleDate:   date,
		IsWorkingDay:   req.IsWorkingDay,
		AvailableTimes: times,
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.scheduleRepo.Upsert(tx, schedule); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionScheduleSave,
			"day_schedule", date.String(), converter.ScheduleToResponse(schedule))
	})
	if err != nil {
		u.log.Errorf("Failed to save schedule for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	u.effects.run(doctorID, date, service.ScheduleEvent(doctorID, schedule, u.clock.Now()))

	saved, err := u.scheduleRepo.FindByDoctorAndDate(u.tx.Conn(ctx), doctorID, date)
	if err != nil || saved == nil {
		u.log.Warnf("Failed to reload schedule for doctor %s on %s: %+v", doctorID, date, err)
		saved = schedule
	}

	return converter.ScheduleToResponse(saved), nil
}

// GetSchedule returns the stored schedule, or an unsaved working day with no
// times when the doctor has not published one yet.
func (u *doctorScheduleUsecase) GetSchedule(ctx context.Context, doctorID uuid.UUID, date string) (*dto.ScheduleResponse, error) {
	day, err := entity.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	schedule, err := u.scheduleRepo.FindByDoctorAndDate(u.tx.Conn(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find schedule for doctor %s on %s: %+v", doctorID, day, err)
		return nil, err
	}
	if schedule == nil {
		schedule = &entity.DaySchedule{
			DoctorID:       doctorID,
			ScheduleDate:   day,
			IsWorkingDay:   true,
			AvailableTimes: entity.TimeLabels{},
		}
	}

	return converter.ScheduleToResponse(schedule), nil
}

// ListSchedules lists the doctor's schedules between from and to inclusive.
// An empty from means today in the clinic timezone; an empty to means a week
// starting at from.
func (u *doctorScheduleUsecase) ListSchedules(ctx context.Context, doctorID uuid.UUID, from, to string) (*dto.ScheduleListResponse, error) {
	fromDate := entity.DateOf(u.clock.Now(), u.loc)
	if from != "" {
		parsed, err := entity.ParseDate(from)
		if err != nil {
			return nil, ErrInvalidDate
		}
		fromDate = parsed
	}

	toDate := fromDate.AddDays(defaultScheduleWindow - 1)
	if to != "" {
		parsed, err := entity.ParseDate(to)
		if err != nil {
			return nil, ErrInvalidDate
		}
		toDate = parsed
	}

	if fromDate.After(toDate) {
		return nil, ErrInvalidDateRange
	}

	schedules, err := u.scheduleRepo.FindInRange(u.tx.Conn(ctx), entity.ScheduleRange{
		DoctorID: doctorID,
		From:     fromDate,
		To:       toDate,
	})
	if err != nil {
		u.log.Warnf("Failed to list schedules for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ScheduleListResponse{
		Schedules: converter.SchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}
